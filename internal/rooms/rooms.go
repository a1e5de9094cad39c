// Package rooms implements lookup and display of ship room designs: the
// /room command's data layer. Room records come from the game server's room
// design list; details render through the declarative property table in
// table.go, with per-room-type label overrides and a compact summary form for
// ambiguous queries.
package rooms

import (
	"context"
	"strings"
	"time"

	"github.com/pssfleet/starbot/internal/entity"
	"github.com/pssfleet/starbot/internal/pssapi"
)

// Family field names for room design records.
const (
	Family         = "rooms"
	KeyField       = "RoomDesignId"
	NameField      = "RoomName"
	ShortNameField = "RoomShortName"
	TypeField      = "RoomType"
)

const (
	designPath        = "RoomService/ListRoomDesigns2?languageKey=en"
	designContainer   = "RoomDesigns"
	purchaseContainer = "RoomDesignPurchases"
	purchaseKeyField  = "RoomDesignPurchaseId"

	itemPath      = "ItemService/ListItemDesigns2?languageKey=en"
	itemContainer = "ItemDesigns"

	researchPath      = "ResearchService/ListAllResearchDesigns2?languageKey=en"
	researchContainer = "ResearchDesigns"
)

// PurchaseRefreshInterval is the refresh interval for the purchase catalog.
// Offers rotate far more often than designs change, hence the short interval.
const PurchaseRefreshInterval = time.Hour

// Config carries the per-family cache intervals.
type Config struct {
	// RefreshInterval for the design caches; zero selects the cache default.
	RefreshInterval time.Duration

	// PurchaseRefreshInterval for the purchase catalog; zero selects
	// [PurchaseRefreshInterval].
	PurchaseRefreshInterval time.Duration
}

// Service owns the room family caches and renders room details.
type Service struct {
	rooms     *entity.Retriever
	purchases *entity.Cache
	items     *entity.Retriever
	research  *entity.Retriever
	renderer  *entity.Renderer
}

// NewService wires the room, purchase, item and research caches onto the
// given API client.
func NewService(client *pssapi.Client, cfg Config) *Service {
	purchaseInterval := cfg.PurchaseRefreshInterval
	if purchaseInterval <= 0 {
		purchaseInterval = PurchaseRefreshInterval
	}

	rooms := entity.NewRetriever(
		entity.NewCache(Family, KeyField, cfg.RefreshInterval,
			client.FetchFunc(designPath, designContainer, nil)),
		NameField, SortKey)
	purchases := entity.NewCache("room_purchases", purchaseKeyField, purchaseInterval,
		client.FetchFunc(designPath, purchaseContainer, nil))
	items := entity.NewRetriever(
		entity.NewCache("items", "ItemDesignId", cfg.RefreshInterval,
			client.FetchFunc(itemPath, itemContainer, nil)),
		"ItemDesignName", nil)
	research := entity.NewRetriever(
		entity.NewCache("research", "ResearchDesignId", cfg.RefreshInterval,
			client.FetchFunc(researchPath, researchContainer, nil)),
		"ResearchName", nil)

	s := &Service{
		rooms:     rooms,
		purchases: purchases,
		items:     items,
		research:  research,
	}
	s.renderer = entity.NewRenderer(newTable(items, research), rooms, 0)
	return s
}

// Retriever exposes the room retriever for autocomplete and health checks.
func (s *Service) Retriever() *entity.Retriever {
	return s.rooms
}

// Caches returns every cache the service owns, for startup warmup.
func (s *Service) Caches() []*entity.Cache {
	return []*entity.Cache{
		s.rooms.Cache(), s.purchases, s.items.Cache(), s.research.Cache(),
	}
}

// Find returns the room records matching query. The query is tried against
// the room name first, then against the raw short name; short-name queries
// containing a digit identify one exact room ("mst:3"), so that pass stops at
// the first hit. When both exact passes miss, the fuzzy name fallback runs.
func (s *Service) Find(ctx context.Context, query string) ([]entity.Record, *entity.Data, error) {
	data, err := s.rooms.Data(ctx)
	if err != nil {
		return nil, nil, err
	}

	ids := entity.IDsForPropertyValue(data, NameField, query, false)
	if len(ids) == 0 {
		ids = entity.IDsForPropertyValue(data, ShortNameField, query, strings.ContainsAny(query, "0123456789"))
	}
	if len(ids) > 0 {
		recs := make([]entity.Record, 0, len(ids))
		for _, id := range ids {
			if rec, ok := data.Get(id); ok {
				recs = append(recs, rec)
			}
		}
		return recs, data, nil
	}

	recs, err := s.rooms.ByName(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	return recs, data, nil
}

// Details renders the matching rooms as display lines: long form for a single
// match, short form when the query is too ambiguous. A miss returns
// [entity.NotFoundError].
func (s *Service) Details(ctx context.Context, query string) ([]string, error) {
	recs, data, err := s.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &entity.NotFoundError{Family: "room", Query: query}
	}
	return s.renderer.RenderAll(ctx, recs, entity.RenderContext{Data: data}), nil
}

// DetailsFields renders the best match as embed-shaped fields, with the
// record returned for thumbnail selection. Ambiguous queries pick the first
// room in sort order.
func (s *Service) DetailsFields(ctx context.Context, query string) ([]entity.Field, entity.Record, error) {
	recs, data, err := s.Find(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	if len(recs) == 0 {
		return nil, nil, &entity.NotFoundError{Family: "room", Query: query}
	}
	rec := s.renderer.Sort(recs, data)[0]
	return s.renderer.RenderFields(ctx, rec, entity.RenderContext{Data: data}), rec, nil
}

// Names returns all room names for autocomplete.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	return s.rooms.Names(ctx)
}

// Purchase returns the purchase-catalog record for a room design, if the room
// is currently offered.
func (s *Service) Purchase(ctx context.Context, roomDesignID string) (entity.Record, bool, error) {
	data, err := s.purchases.Data(ctx)
	if err != nil {
		return nil, false, err
	}
	ids := entity.IDsForPropertyValue(data, KeyField, roomDesignID, true)
	if len(ids) == 0 {
		return nil, false, nil
	}
	rec, ok := data.Get(ids[0])
	return rec, ok, nil
}
