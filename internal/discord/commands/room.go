package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pssfleet/starbot/internal/discord"
	"github.com/pssfleet/starbot/internal/observe"
	"github.com/pssfleet/starbot/internal/pssapi"
	"github.com/pssfleet/starbot/internal/rooms"
)

// RoomCommands holds the dependencies for the /room slash command.
type RoomCommands struct {
	rooms     *rooms.Service
	client    *pssapi.Client
	useEmbeds bool
	metrics   *observe.Metrics
}

// NewRoomCommands creates a RoomCommands.
func NewRoomCommands(svc *rooms.Service, client *pssapi.Client, useEmbeds bool) *RoomCommands {
	return &RoomCommands{
		rooms:     svc,
		client:    client,
		useEmbeds: useEmbeds,
		metrics:   observe.DefaultMetrics(),
	}
}

// Register registers the /room command with the router.
func (rc *RoomCommands) Register(router *discord.CommandRouter) {
	router.RegisterCommand("room", rc.Definition(), rc.handle)
	router.RegisterAutocomplete("room", rc.autocomplete)
}

// Definition returns the /room ApplicationCommand for Discord registration.
func (rc *RoomCommands) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "room",
		Description: "Look up a room design by name or short code",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "name",
				Description:  "Room name (e.g. Laser Cannon Lv2) or short code (e.g. lc2)",
				Required:     true,
				Autocomplete: true,
			},
		},
	}
}

func (rc *RoomCommands) handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := optionString(commandOptions(i), "name")
	if name == "" {
		discord.RespondEphemeral(s, i, "Please provide a room name.")
		return
	}

	discord.DeferReply(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	start := time.Now()
	err := rc.reply(ctx, s, i, name)
	if msg, ok := notFoundMessage(err); ok {
		// A miss is an answer, not a failure.
		discord.FollowUp(s, i, msg)
		err = nil
	}
	rc.metrics.RecordCommand(ctx, "room", time.Since(start).Seconds(), err)

	if err != nil {
		slog.Error("room command failed", "query", name, "err", err)
		discord.FollowUp(s, i, "Something went wrong looking that up. Try again in a moment.")
	}
}

func (rc *RoomCommands) reply(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string) error {
	if rc.useEmbeds {
		fields, rec, err := rc.rooms.DetailsFields(ctx, name)
		if err != nil {
			return err
		}
		title, _ := rec.String(rooms.NameField)
		sprite, _ := rec.String("ImageSpriteId")
		discord.FollowUpEmbed(s, i, buildEmbed(title, fields, rc.client.SpriteURL(sprite)))
		return nil
	}

	lines, err := rc.rooms.Details(ctx, name)
	if err != nil {
		return err
	}
	discord.FollowUpLines(s, i, lines)
	return nil
}

func (rc *RoomCommands) autocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	names, err := rc.rooms.Names(ctx)
	if err != nil {
		slog.Warn("room autocomplete failed", "err", err)
		respondChoices(s, i, nil)
		return
	}
	respondChoices(s, i, nameChoices(names, focusedValue(i)))
}
