package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pssfleet/starbot/internal/crew"
	"github.com/pssfleet/starbot/internal/discord"
	"github.com/pssfleet/starbot/internal/observe"
	"github.com/pssfleet/starbot/internal/pssapi"
)

// CrewCommands holds the dependencies for the /crew slash command group.
type CrewCommands struct {
	crew      *crew.Service
	client    *pssapi.Client
	useEmbeds bool
	metrics   *observe.Metrics
}

// NewCrewCommands creates a CrewCommands.
func NewCrewCommands(svc *crew.Service, client *pssapi.Client, useEmbeds bool) *CrewCommands {
	return &CrewCommands{
		crew:      svc,
		client:    client,
		useEmbeds: useEmbeds,
		metrics:   observe.DefaultMetrics(),
	}
}

// Register registers the /crew command group with the router.
func (cc *CrewCommands) Register(router *discord.CommandRouter) {
	def := cc.Definition()
	router.RegisterCommand("crew", def, func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		discord.RespondEphemeral(s, i, "Please use a subcommand: `/crew stats`, `/crew prestige-from`, `/crew prestige-to`, or `/crew level`.")
	})
	router.RegisterHandler("crew/stats", cc.handleStats)
	router.RegisterHandler("crew/prestige-from", cc.handlePrestigeFrom)
	router.RegisterHandler("crew/prestige-to", cc.handlePrestigeTo)
	router.RegisterHandler("crew/level", cc.handleLevel)

	router.RegisterAutocomplete("crew/stats", cc.autocompleteName)
	router.RegisterAutocomplete("crew/prestige-from", cc.autocompleteName)
	router.RegisterAutocomplete("crew/prestige-to", cc.autocompleteName)
}

// Definition returns the /crew ApplicationCommand for Discord registration.
func (cc *CrewCommands) Definition() *discordgo.ApplicationCommand {
	minLevel, maxLevel := float64(1), float64(40)
	nameOpt := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "name",
			Description:  desc,
			Required:     true,
			Autocomplete: true,
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        "crew",
		Description: "Look up crew stats, prestige combinations and level costs",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stats",
				Description: "Show a crew member's stat sheet",
				Options: []*discordgo.ApplicationCommandOption{
					nameOpt("Crew name (e.g. Zombie)"),
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "level",
						Description: "Show stats at this level instead of the min-max range",
						MinValue:    &minLevel,
						MaxValue:    maxLevel,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "prestige-from",
				Description: "Show what this crew member can prestige into",
				Options: []*discordgo.ApplicationCommandOption{
					nameOpt("Crew name"),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "prestige-to",
				Description: "Show which pairs prestige into this crew member",
				Options: []*discordgo.ApplicationCommandOption{
					nameOpt("Crew name"),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "level",
				Description: "Show gas and XP costs for levelling crew",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "from",
						Description: "Target level, or the range start when 'to' is given",
						Required:    true,
						MinValue:    &minLevel,
						MaxValue:    maxLevel,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "to",
						Description: "Range end level",
						MinValue:    &minLevel,
						MaxValue:    maxLevel,
					},
				},
			},
		},
	}
}

func (cc *CrewCommands) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := subcommandOptions(i)
	name := optionString(opts, "name")
	if name == "" {
		discord.RespondEphemeral(s, i, "Please provide a crew name.")
		return
	}
	level := optionInt(opts, "level")

	discord.DeferReply(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	start := time.Now()
	err := cc.replyStats(ctx, s, i, name, level)
	if msg, ok := notFoundMessage(err); ok {
		discord.FollowUp(s, i, msg)
		err = nil
	}
	cc.metrics.RecordCommand(ctx, "crew_stats", time.Since(start).Seconds(), err)

	if err != nil {
		slog.Error("crew stats command failed", "query", name, "err", err)
		discord.FollowUp(s, i, "Something went wrong looking that up. Try again in a moment.")
	}
}

func (cc *CrewCommands) replyStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string, level int) error {
	if cc.useEmbeds {
		fields, rec, err := cc.crew.DetailsFields(ctx, name, level)
		if err != nil {
			return err
		}
		title, _ := rec.String(crew.NameField)
		sprite, _ := rec.String("ProfileSpriteId")
		discord.FollowUpEmbed(s, i, buildEmbed(title, fields, cc.client.SpriteURL(sprite)))
		return nil
	}

	lines, err := cc.crew.Details(ctx, name, level)
	if err != nil {
		return err
	}
	discord.FollowUpLines(s, i, lines)
	return nil
}

func (cc *CrewCommands) handlePrestigeFrom(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cc.handlePrestige(s, i, "crew_prestige_from", cc.crew.PrestigeFrom)
}

func (cc *CrewCommands) handlePrestigeTo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cc.handlePrestige(s, i, "crew_prestige_to", cc.crew.PrestigeTo)
}

func (cc *CrewCommands) handlePrestige(s *discordgo.Session, i *discordgo.InteractionCreate, command string,
	lookup func(context.Context, string) ([]string, error)) {

	name := optionString(subcommandOptions(i), "name")
	if name == "" {
		discord.RespondEphemeral(s, i, "Please provide a crew name.")
		return
	}

	discord.DeferReply(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	start := time.Now()
	lines, err := lookup(ctx, name)
	if msg, ok := notFoundMessage(err); ok {
		discord.FollowUp(s, i, msg)
		err = nil
	}
	cc.metrics.RecordCommand(ctx, command, time.Since(start).Seconds(), err)

	if err != nil {
		slog.Error("crew prestige command failed", "command", command, "query", name, "err", err)
		discord.FollowUp(s, i, "Something went wrong looking that up. Try again in a moment.")
		return
	}
	if lines != nil {
		discord.FollowUpLines(s, i, lines)
	}
}

func (cc *CrewCommands) handleLevel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := subcommandOptions(i)
	from := optionInt(opts, "from")
	to := optionInt(opts, "to")

	start := time.Now()
	lines, err := crew.LevelCosts(from, to)
	if err != nil {
		var argErr *crew.LevelCostArgsError
		if errors.As(err, &argErr) {
			discord.RespondEphemeral(s, i, argErr.Error())
			return
		}
		discord.RespondError(s, i, err)
		return
	}

	// Level cost tables for wide ranges exceed one message.
	discord.DeferReply(s, i)
	discord.FollowUpLines(s, i, lines)
	cc.metrics.RecordCommand(context.Background(), "crew_level", time.Since(start).Seconds(), nil)
}

func (cc *CrewCommands) autocompleteName(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	names, err := cc.crew.Names(ctx)
	if err != nil {
		slog.Warn("crew autocomplete failed", "err", err)
		respondChoices(s, i, nil)
		return
	}
	respondChoices(s, i, nameChoices(names, focusedValue(i)))
}
