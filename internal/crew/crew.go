// Package crew implements lookup and display of crew (character) designs,
// crew collections, prestige combination paths and level training costs: the
// data layer behind the /crew and /collection commands.
package crew

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pssfleet/starbot/internal/entity"
	"github.com/pssfleet/starbot/internal/pssapi"
)

// Family field names for character and collection design records.
const (
	Family    = "characters"
	KeyField  = "CharacterDesignId"
	NameField = "CharacterDesignName"

	CollectionFamily    = "collections"
	CollectionKeyField  = "CollectionDesignId"
	CollectionNameField = "CollectionName"
)

const (
	characterPath       = "CharacterService/ListAllCharacterDesigns2?languageKey=en"
	characterContainer  = "CharacterDesigns"
	collectionPath      = "CollectionService/ListAllCollectionDesigns?languageKey=en"
	collectionContainer = "CollectionDesigns"

	prestigeFromPath = "CharacterService/PrestigeCharacterFrom?languagekey=en&characterDesignId="
	prestigeToPath   = "CharacterService/PrestigeCharacterTo?languagekey=en&characterDesignId="
)

// Config carries the per-family cache intervals.
type Config struct {
	// RefreshInterval for the character and collection caches; zero selects
	// the cache default.
	RefreshInterval time.Duration
}

// Service owns the crew family caches and renders crew details.
type Service struct {
	client      *pssapi.Client
	characters  *entity.Retriever
	collections *entity.Retriever
	renderer    *entity.Renderer
	prestige    *prestigeCaches
	interval    time.Duration
}

// NewService wires the character and collection caches onto the given API
// client. Prestige caches are created lazily per character.
func NewService(client *pssapi.Client, cfg Config) *Service {
	characters := entity.NewRetriever(
		entity.NewCache(Family, KeyField, cfg.RefreshInterval,
			client.FetchFunc(characterPath, characterContainer, nil)),
		NameField, nil)
	collections := entity.NewRetriever(
		entity.NewCache(CollectionFamily, CollectionKeyField, cfg.RefreshInterval,
			client.FetchFunc(collectionPath, collectionContainer, nil)),
		CollectionNameField, nil)

	s := &Service{
		client:      client,
		characters:  characters,
		collections: collections,
		prestige:    newPrestigeCaches(),
		interval:    cfg.RefreshInterval,
	}
	s.renderer = entity.NewRenderer(newTable(collections), characters, 0)
	return s
}

// Retriever exposes the character retriever for autocomplete and health
// checks.
func (s *Service) Retriever() *entity.Retriever {
	return s.characters
}

// Collections exposes the collection retriever.
func (s *Service) Collections() *entity.Retriever {
	return s.collections
}

// Caches returns the family caches for startup warmup. Lazily created
// prestige caches are excluded.
func (s *Service) Caches() []*entity.Cache {
	return []*entity.Cache{s.characters.Cache(), s.collections.Cache()}
}

// find returns the best-matching character record for a query, or nil.
func (s *Service) find(ctx context.Context, query string) (entity.Record, error) {
	recs, err := s.characters.ByName(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// Details renders a character's stat sheet. level 0 renders every stat as its
// "min - max" range; levels 1..40 interpolate. A miss returns
// [entity.NotFoundError].
func (s *Service) Details(ctx context.Context, query string, level int) ([]string, error) {
	rec, err := s.find(ctx, query)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &entity.NotFoundError{Family: "crew", Query: query}
	}
	data, err := s.characters.Data(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderLong(ctx, rec, entity.RenderContext{Data: data, Level: level}), nil
}

// DetailsFields renders a character as embed-shaped fields plus the matched
// record for thumbnail selection.
func (s *Service) DetailsFields(ctx context.Context, query string, level int) ([]entity.Field, entity.Record, error) {
	rec, err := s.find(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, &entity.NotFoundError{Family: "crew", Query: query}
	}
	data, err := s.characters.Data(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s.renderer.RenderFields(ctx, rec, entity.RenderContext{Data: data, Level: level}), rec, nil
}

// Names returns all character names for autocomplete.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	return s.characters.Names(ctx)
}

// CollectionNames returns all collection names for autocomplete.
func (s *Service) CollectionNames(ctx context.Context) ([]string, error) {
	return s.collections.Names(ctx)
}

// CollectionDetails renders a collection: identity, combo bounds, perk values
// and the member crew sorted by name.
func (s *Service) CollectionDetails(ctx context.Context, query string) ([]string, error) {
	recs, err := s.collections.ByName(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &entity.NotFoundError{Family: "collection", Query: query}
	}
	rec := recs[0]

	name, _ := rec.String(CollectionNameField)
	description, _ := rec.String("CollectionDescription")
	minCombo, _ := rec.String("MinCombo")
	maxCombo, _ := rec.String("MaxCombo")
	baseValue, _ := rec.String("BaseEnhancementValue")
	stepValue, _ := rec.String("StepEnhancementValue")
	perk, _ := rec.String("EnhancementType")

	members, err := s.collectionMembers(ctx, rec)
	if err != nil {
		return nil, err
	}

	lines := []string{
		"**" + name + "**",
		"_" + description + "_",
		fmt.Sprintf("Combo Min...Max = %s...%s", minCombo, maxCombo),
		fmt.Sprintf("%s = %s (Base), %s (Step)", perkName(perk), baseValue, stepValue),
		"Characters = " + strings.Join(members, ", "),
	}
	return lines, nil
}

// collectionMembers returns the names of all crew in the collection, sorted.
func (s *Service) collectionMembers(ctx context.Context, collection entity.Record) ([]string, error) {
	collectionID, _ := collection.String(CollectionKeyField)
	data, err := s.characters.Data(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, rec := range data.Records() {
		if id, _ := rec.String(CollectionKeyField); id != collectionID {
			continue
		}
		if name, _ := rec.String(NameField); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
