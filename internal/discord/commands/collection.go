package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pssfleet/starbot/internal/crew"
	"github.com/pssfleet/starbot/internal/discord"
	"github.com/pssfleet/starbot/internal/observe"
)

// CollectionCommands holds the dependencies for the /collection slash command.
type CollectionCommands struct {
	crew    *crew.Service
	metrics *observe.Metrics
}

// NewCollectionCommands creates a CollectionCommands.
func NewCollectionCommands(svc *crew.Service) *CollectionCommands {
	return &CollectionCommands{
		crew:    svc,
		metrics: observe.DefaultMetrics(),
	}
}

// Register registers the /collection command with the router.
func (cc *CollectionCommands) Register(router *discord.CommandRouter) {
	router.RegisterCommand("collection", cc.Definition(), cc.handle)
	router.RegisterAutocomplete("collection", cc.autocomplete)
}

// Definition returns the /collection ApplicationCommand for Discord
// registration.
func (cc *CollectionCommands) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "collection",
		Description: "Look up a crew collection and its members",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "name",
				Description:  "Collection name (e.g. Federation)",
				Required:     true,
				Autocomplete: true,
			},
		},
	}
}

func (cc *CollectionCommands) handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := optionString(commandOptions(i), "name")
	if name == "" {
		discord.RespondEphemeral(s, i, "Please provide a collection name.")
		return
	}

	discord.DeferReply(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	start := time.Now()
	lines, err := cc.crew.CollectionDetails(ctx, name)
	if msg, ok := notFoundMessage(err); ok {
		discord.FollowUp(s, i, msg)
		err = nil
	}
	cc.metrics.RecordCommand(ctx, "collection", time.Since(start).Seconds(), err)

	if err != nil {
		slog.Error("collection command failed", "query", name, "err", err)
		discord.FollowUp(s, i, "Something went wrong looking that up. Try again in a moment.")
		return
	}
	if lines != nil {
		discord.FollowUpLines(s, i, lines)
	}
}

func (cc *CollectionCommands) autocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	names, err := cc.crew.CollectionNames(ctx)
	if err != nil {
		slog.Warn("collection autocomplete failed", "err", err)
		respondChoices(s, i, nil)
		return
	}
	respondChoices(s, i, nameChoices(names, focusedValue(i)))
}
