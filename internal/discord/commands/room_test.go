package commands

import (
	"testing"

	"github.com/pssfleet/starbot/internal/discord"
	"github.com/pssfleet/starbot/internal/pssapi"
	"github.com/pssfleet/starbot/internal/rooms"
)

func newTestRoomCommands() *RoomCommands {
	client := pssapi.NewClient(pssapi.Config{})
	return NewRoomCommands(rooms.NewService(client, rooms.Config{}), client, false)
}

func TestRoomDefinition(t *testing.T) {
	t.Parallel()

	def := newTestRoomCommands().Definition()
	if def.Name != "room" {
		t.Errorf("Name = %q, want %q", def.Name, "room")
	}
	if len(def.Options) != 1 {
		t.Fatalf("option count = %d, want 1", len(def.Options))
	}
	nameOpt := def.Options[0]
	if nameOpt.Name != "name" {
		t.Errorf("option name = %q, want %q", nameOpt.Name, "name")
	}
	if !nameOpt.Required {
		t.Error("name option should be required")
	}
	if !nameOpt.Autocomplete {
		t.Error("name option should have Autocomplete = true")
	}
}

func TestRoomRegister(t *testing.T) {
	t.Parallel()

	router := discord.NewCommandRouter()
	newTestRoomCommands().Register(router)

	cmds := router.ApplicationCommands()
	found := false
	for _, cmd := range cmds {
		if cmd.Name == "room" {
			found = true
			break
		}
	}
	if !found {
		t.Error("room command not registered with router")
	}
}
