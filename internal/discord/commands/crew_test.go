package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/pssfleet/starbot/internal/crew"
	"github.com/pssfleet/starbot/internal/discord"
	"github.com/pssfleet/starbot/internal/pssapi"
)

func newTestCrewCommands() *CrewCommands {
	client := pssapi.NewClient(pssapi.Config{})
	return NewCrewCommands(crew.NewService(client, crew.Config{}), client, false)
}

func TestCrewDefinition(t *testing.T) {
	t.Parallel()

	def := newTestCrewCommands().Definition()
	if def.Name != "crew" {
		t.Errorf("Name = %q, want %q", def.Name, "crew")
	}

	wantSubs := []string{"stats", "prestige-from", "prestige-to", "level"}
	if len(def.Options) != len(wantSubs) {
		t.Fatalf("subcommand count = %d, want %d", len(def.Options), len(wantSubs))
	}
	for i, want := range wantSubs {
		if def.Options[i].Name != want {
			t.Errorf("subcommand[%d] = %q, want %q", i, def.Options[i].Name, want)
		}
	}
}

func TestCrewDefinition_StatsOptions(t *testing.T) {
	t.Parallel()

	def := newTestCrewCommands().Definition()

	var statsOpt *discordgo.ApplicationCommandOption
	for _, opt := range def.Options {
		if opt.Name == "stats" {
			statsOpt = opt
			break
		}
	}
	if statsOpt == nil {
		t.Fatal("stats subcommand not found")
	}
	if len(statsOpt.Options) != 2 {
		t.Fatalf("stats options = %d, want 2", len(statsOpt.Options))
	}

	nameOpt := statsOpt.Options[0]
	if nameOpt.Name != "name" || !nameOpt.Required || !nameOpt.Autocomplete {
		t.Errorf("name option = %+v", nameOpt)
	}

	levelOpt := statsOpt.Options[1]
	if levelOpt.Name != "level" || levelOpt.Required {
		t.Errorf("level option = %+v", levelOpt)
	}
	if levelOpt.MinValue == nil || *levelOpt.MinValue != 1 || levelOpt.MaxValue != 40 {
		t.Errorf("level bounds = %v..%v, want 1..40", levelOpt.MinValue, levelOpt.MaxValue)
	}
}

func TestCrewDefinition_LevelOptions(t *testing.T) {
	t.Parallel()

	def := newTestCrewCommands().Definition()

	var levelOpt *discordgo.ApplicationCommandOption
	for _, opt := range def.Options {
		if opt.Name == "level" {
			levelOpt = opt
			break
		}
	}
	if levelOpt == nil {
		t.Fatal("level subcommand not found")
	}
	if len(levelOpt.Options) != 2 {
		t.Fatalf("level options = %d, want 2", len(levelOpt.Options))
	}
	if levelOpt.Options[0].Name != "from" || !levelOpt.Options[0].Required {
		t.Errorf("from option = %+v", levelOpt.Options[0])
	}
	if levelOpt.Options[1].Name != "to" || levelOpt.Options[1].Required {
		t.Errorf("to option = %+v", levelOpt.Options[1])
	}
}

func TestCrewRegister(t *testing.T) {
	t.Parallel()

	router := discord.NewCommandRouter()
	newTestCrewCommands().Register(router)

	cmds := router.ApplicationCommands()
	found := false
	for _, cmd := range cmds {
		if cmd.Name == "crew" {
			found = true
			break
		}
	}
	if !found {
		t.Error("crew command not registered with router")
	}
	if len(cmds) != 1 {
		t.Errorf("got %d top-level commands, want 1 (subcommands nest)", len(cmds))
	}
}
