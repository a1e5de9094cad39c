package crew

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pssfleet/starbot/internal/entity"
)

// prestigeCaches memoizes the per-character prestige combination caches. The
// game server only serves prestige paths per character, so each character
// gets its own lazily created cache the first time it is asked about.
type prestigeCaches struct {
	mu   sync.Mutex
	from map[string]*entity.Cache
	to   map[string]*entity.Cache
}

func newPrestigeCaches() *prestigeCaches {
	return &prestigeCaches{
		from: make(map[string]*entity.Cache),
		to:   make(map[string]*entity.Cache),
	}
}

func (p *prestigeCaches) get(m map[string]*entity.Cache, id string, create func() *entity.Cache) *entity.Cache {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := m[id]; ok {
		return c
	}
	c := create()
	m[id] = c
	return c
}

// prestigeFromCache returns the cache of combinations using the character as
// an ingredient. Combination rows have no natural key; index keys are used.
func (s *Service) prestigeFromCache(characterID string) *entity.Cache {
	return s.prestige.get(s.prestige.from, characterID, func() *entity.Cache {
		return entity.NewCache("prestige_from_"+characterID, "", s.interval,
			s.client.FetchFunc(prestigeFromPath+characterID, "", nil))
	})
}

// prestigeToCache returns the cache of combinations producing the character.
func (s *Service) prestigeToCache(characterID string) *entity.Cache {
	return s.prestige.get(s.prestige.to, characterID, func() *entity.Cache {
		return entity.NewCache("prestige_to_"+characterID, "", s.interval,
			s.client.FetchFunc(prestigeToPath+characterID, "", nil))
	})
}

// PrestigeFrom renders the prestige paths that use the named character as an
// ingredient, grouped by resulting character:
//
//	**Alpaco** has **3** prestige combinations:
//	**Barracuda** with:
//	> Burrito, Huge Hellaloya
//	**Cat** with:
//	> Burrito
func (s *Service) PrestigeFrom(ctx context.Context, query string) ([]string, error) {
	rec, err := s.find(ctx, query)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &entity.NotFoundError{Family: "crew", Query: query}
	}
	id, _ := rec.String(KeyField)
	name, _ := rec.String(NameField)

	combos, err := s.prestigeFromCache(id).Data(ctx)
	if err != nil {
		return nil, err
	}
	characters, err := s.characters.Data(ctx)
	if err != nil {
		return nil, err
	}

	lines := []string{fmt.Sprintf("**%s** has **%d** prestige combinations:", name, combos.Len())}

	// Group partner names by the resulting character.
	targets := make(map[string][]string)
	for _, combo := range combos.Records() {
		partner := characterName(characters, combo, "CharacterDesignId2")
		target := characterName(characters, combo, "ToCharacterDesignId")
		if partner == "" || target == "" {
			continue
		}
		targets[target] = append(targets[target], partner)
	}

	if len(targets) == 0 {
		return append(lines, noPrestigeMessage(rec, false)), nil
	}

	targetNames := make([]string, 0, len(targets))
	for target := range targets {
		targetNames = append(targetNames, target)
	}
	sort.Strings(targetNames)
	for _, target := range targetNames {
		partners := targets[target]
		sort.Strings(partners)
		lines = append(lines,
			fmt.Sprintf("**%s** with:", target),
			"> "+strings.Join(partners, ", "))
	}
	return lines, nil
}

// PrestigeTo renders the prestige paths producing the named character, one
// "A + B" pair per line, sorted by both partners.
func (s *Service) PrestigeTo(ctx context.Context, query string) ([]string, error) {
	rec, err := s.find(ctx, query)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &entity.NotFoundError{Family: "crew", Query: query}
	}
	id, _ := rec.String(KeyField)
	name, _ := rec.String(NameField)

	combos, err := s.prestigeToCache(id).Data(ctx)
	if err != nil {
		return nil, err
	}
	characters, err := s.characters.Data(ctx)
	if err != nil {
		return nil, err
	}

	lines := []string{fmt.Sprintf("**There are %d ways to prestige %s from:**", combos.Len(), name)}

	type pair struct{ first, second string }
	var pairs []pair
	for _, combo := range combos.Records() {
		first := characterName(characters, combo, "CharacterDesignId1")
		second := characterName(characters, combo, "CharacterDesignId2")
		if first == "" || second == "" {
			continue
		}
		pairs = append(pairs, pair{first, second})
	}

	if len(pairs) == 0 {
		return append(lines, noPrestigeMessage(rec, true)), nil
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].first != pairs[j].first {
			return pairs[i].first < pairs[j].first
		}
		return pairs[i].second < pairs[j].second
	})
	for _, p := range pairs {
		lines = append(lines, p.first+" + "+p.second)
	}
	return lines, nil
}

// noPrestigeMessage explains an empty combination set. Special crew cannot
// prestige at all; Legendary crew are the end of every path; Common crew are
// only ever ingredients.
func noPrestigeMessage(rec entity.Record, to bool) string {
	rarity, _ := rec.String("Rarity")
	switch {
	case rarity == "Special" && to:
		return "One cannot prestige to **Special** crew."
	case rarity == "Special":
		return "One cannot prestige **Special** crew."
	case rarity == "Legendary" && !to:
		return "One cannot prestige **Legendary** crew."
	case rarity == "Common" && to:
		return "One cannot prestige to **Common** crew."
	}
	return "No prestige combinations found."
}

// characterName resolves a combination record's character reference field to
// the character's display name.
func characterName(characters *entity.Data, combo entity.Record, refField string) string {
	id, _ := combo.String(refField)
	rec, ok := characters.Get(id)
	if !ok {
		return ""
	}
	name, _ := rec.String(NameField)
	return name
}
