// Package commands implements the starbot slash commands: /room, /crew
// and /collection. Each command struct carries its service dependencies,
// exposes its ApplicationCommand definition and registers handlers with
// the router.
package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pssfleet/starbot/internal/entity"
)

// lookupTimeout bounds a single command's data access. Lookups hit warm
// in-memory caches; the timeout only matters on a cold start.
const lookupTimeout = 10 * time.Second

// maxChoices is the Discord cap on autocomplete choices per response.
const maxChoices = 25

// subcommandOptions extracts the options from the first subcommand in an
// interaction's application command data. Returns nil if no subcommand exists.
func subcommandOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	data := i.ApplicationCommandData()
	if len(data.Options) > 0 && data.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		return data.Options[0].Options
	}
	return nil
}

// commandOptions returns the interaction's option list, descending into the
// first subcommand when present.
func commandOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	if opts := subcommandOptions(i); opts != nil {
		return opts
	}
	return i.ApplicationCommandData().Options
}

// optionString returns the named string option, empty when absent.
func optionString(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// optionInt returns the named integer option, zero when absent.
func optionInt(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	for _, opt := range opts {
		if opt.Name == name {
			return int(opt.IntValue())
		}
	}
	return 0
}

// focusedValue returns the lowercased value of the option currently being
// typed, empty if none is focused.
func focusedValue(i *discordgo.InteractionCreate) string {
	for _, opt := range commandOptions(i) {
		if opt.Focused {
			return strings.ToLower(opt.StringValue())
		}
	}
	return ""
}

// nameChoices filters names by the typed prefix or substring and shapes them
// as autocomplete choices, capped at the Discord limit.
func nameChoices(names []string, typed string) []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, name := range names {
		if typed != "" && !strings.Contains(strings.ToLower(name), typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
		if len(choices) >= maxChoices {
			break
		}
	}
	return choices
}

// respondChoices sends an autocomplete result. Errors are dropped; a failed
// autocomplete response just leaves the user without suggestions.
func respondChoices(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// notFoundMessage converts an [entity.NotFoundError] into the user-facing
// reply, reporting ok=false for any other error.
func notFoundMessage(err error) (string, bool) {
	var nf *entity.NotFoundError
	if !errors.As(err, &nf) {
		return "", false
	}
	return fmt.Sprintf("Could not find a %s named **%s**.", nf.Family, nf.Query), true
}

// buildEmbed shapes rendered fields into a Discord embed. Unlabeled fields
// become description lines; labeled ones become inline embed fields, capped
// at the Discord limit of 25.
func buildEmbed(title string, fields []entity.Field, thumbnailURL string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: title}

	var desc []string
	for _, f := range fields {
		if f.Name == "" {
			desc = append(desc, f.Value)
			continue
		}
		if len(embed.Fields) >= 25 {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: true,
		})
	}
	embed.Description = strings.Join(desc, "\n")

	if thumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnailURL}
	}
	return embed
}
