package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/pssfleet/starbot/internal/entity"
)

func TestSubcommandOptions(t *testing.T) {
	t.Parallel()

	t.Run("with subcommand options", func(t *testing.T) {
		t.Parallel()
		i := &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{
					Name: "crew",
					Options: []*discordgo.ApplicationCommandInteractionDataOption{
						{
							Name: "stats",
							Type: discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandInteractionDataOption{
								{
									Name:  "name",
									Type:  discordgo.ApplicationCommandOptionString,
									Value: "Zombie",
								},
							},
						},
					},
				},
			},
		}

		opts := subcommandOptions(i)
		if len(opts) != 1 {
			t.Fatalf("got %d options, want 1", len(opts))
		}
		if got := optionString(opts, "name"); got != "Zombie" {
			t.Errorf("name option = %q, want %q", got, "Zombie")
		}
	})

	t.Run("no subcommand", func(t *testing.T) {
		t.Parallel()
		i := &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{
					Name: "room",
				},
			},
		}

		if opts := subcommandOptions(i); opts != nil {
			t.Errorf("expected nil, got %v", opts)
		}
	})
}

func TestCommandOptions_TopLevel(t *testing.T) {
	t.Parallel()

	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "room",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name:  "name",
						Type:  discordgo.ApplicationCommandOptionString,
						Value: "Laser Cannon",
					},
				},
			},
		},
	}

	opts := commandOptions(i)
	if got := optionString(opts, "name"); got != "Laser Cannon" {
		t.Errorf("name option = %q, want %q", got, "Laser Cannon")
	}
}

func TestOptionInt(t *testing.T) {
	t.Parallel()

	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "from", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(38)},
	}
	if got := optionInt(opts, "from"); got != 38 {
		t.Errorf("from = %d, want 38", got)
	}
	if got := optionInt(opts, "to"); got != 0 {
		t.Errorf("absent option = %d, want 0", got)
	}
}

func TestFocusedValue(t *testing.T) {
	t.Parallel()

	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommandAutocomplete,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "room",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name:    "name",
						Type:    discordgo.ApplicationCommandOptionString,
						Value:   "Las",
						Focused: true,
					},
				},
			},
		},
	}

	if got := focusedValue(i); got != "las" {
		t.Errorf("focusedValue = %q, want %q", got, "las")
	}
}

func TestNameChoices_FilterAndCap(t *testing.T) {
	t.Parallel()

	names := []string{"Laser Cannon", "Mineral Storage", "Plasma Cannon"}
	choices := nameChoices(names, "cannon")
	if len(choices) != 2 {
		t.Fatalf("got %d choices, want 2", len(choices))
	}
	if choices[0].Value != "Laser Cannon" || choices[1].Value != "Plasma Cannon" {
		t.Errorf("choices = %v", choices)
	}

	var many []string
	for range 40 {
		many = append(many, "Room")
	}
	if got := len(nameChoices(many, "")); got != maxChoices {
		t.Errorf("got %d choices, want %d", got, maxChoices)
	}
}

func TestNotFoundMessage(t *testing.T) {
	t.Parallel()

	msg, ok := notFoundMessage(&entity.NotFoundError{Family: "room", Query: "zzz"})
	if !ok {
		t.Fatal("expected ok for NotFoundError")
	}
	if msg != "Could not find a room named **zzz**." {
		t.Errorf("msg = %q", msg)
	}

	if _, ok := notFoundMessage(entity.ErrFetchFailed); ok {
		t.Error("expected ok=false for unrelated error")
	}
	if _, ok := notFoundMessage(nil); ok {
		t.Error("expected ok=false for nil error")
	}
}

func TestBuildEmbed(t *testing.T) {
	t.Parallel()

	fields := []entity.Field{
		{Name: "", Value: "**Laser Cannon Lv1** **[LC]**"},
		{Name: "", Value: "[Weapon] Fires a laser."},
		{Name: "Size (WxH)", Value: "1x2"},
		{Name: "Max power used", Value: "2"},
	}

	embed := buildEmbed("Laser Cannon Lv1", fields, "https://example.test/sprite/9")
	if embed.Title != "Laser Cannon Lv1" {
		t.Errorf("Title = %q", embed.Title)
	}
	if embed.Description != "**Laser Cannon Lv1** **[LC]**\n[Weapon] Fires a laser." {
		t.Errorf("Description = %q", embed.Description)
	}
	if len(embed.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(embed.Fields))
	}
	if embed.Fields[0].Name != "Size (WxH)" || !embed.Fields[0].Inline {
		t.Errorf("field 0 = %+v", embed.Fields[0])
	}
	if embed.Thumbnail == nil || embed.Thumbnail.URL != "https://example.test/sprite/9" {
		t.Errorf("Thumbnail = %+v", embed.Thumbnail)
	}

	plain := buildEmbed("x", nil, "")
	if plain.Thumbnail != nil {
		t.Error("expected no thumbnail for empty URL")
	}
}
