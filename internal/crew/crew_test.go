package crew

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pssfleet/starbot/internal/entity"
	"github.com/pssfleet/starbot/internal/pssapi"
)

const charactersXML = `<?xml version="1.0" encoding="utf-8"?>
<CharacterService>
  <ListAllCharacterDesigns>
    <CharacterDesigns>
      <CharacterDesign CharacterDesignId="1" CharacterDesignName="Alpaco" CharacterDesignDescription="A fluffy alpaca."
        Rarity="Epic" RaceType="Animal" GenderType="Male" CollectionDesignId="3"
        ProgressionType="Linear" Hp="100" FinalHp="200" Attack="5" FinalAttack="10"
        SpecialAbilityType="DeductReload" SpecialAbilityArgument="10" SpecialAbilityFinalArgument="20"
        EquipmentMask="5" WalkingSpeed="2" RunSpeed="4" FireResistance="0" TrainingCapacity="10" />
      <CharacterDesign CharacterDesignId="2" CharacterDesignName="Burrito" Rarity="Common" CollectionDesignId="3" />
      <CharacterDesign CharacterDesignId="3" CharacterDesignName="Cat" Rarity="Legendary" CollectionDesignId="0" />
      <CharacterDesign CharacterDesignId="4" CharacterDesignName="Ghost" Rarity="Special" CollectionDesignId="0" />
    </CharacterDesigns>
  </ListAllCharacterDesigns>
</CharacterService>`

const collectionsXML = `<?xml version="1.0" encoding="utf-8"?>
<CollectionService>
  <ListAllCollectionDesigns>
    <CollectionDesigns>
      <CollectionDesign CollectionDesignId="3" CollectionName="Alpaca Family" CollectionDescription="Fluffy."
        EnhancementType="FireResistance" MinCombo="2" MaxCombo="5"
        BaseEnhancementValue="4" StepEnhancementValue="2" />
    </CollectionDesigns>
  </ListAllCollectionDesigns>
</CollectionService>`

const prestigeFromXML = `<CharacterService>
  <PrestigeCharacterFrom>
    <Prestiges>
      <Prestige CharacterDesignId1="1" CharacterDesignId2="2" ToCharacterDesignId="3" />
      <Prestige CharacterDesignId1="1" CharacterDesignId2="4" ToCharacterDesignId="3" />
    </Prestiges>
  </PrestigeCharacterFrom>
</CharacterService>`

const prestigeToXML = `<CharacterService>
  <PrestigeCharacterTo>
    <Prestiges>
      <Prestige CharacterDesignId1="2" CharacterDesignId2="4" ToCharacterDesignId="3" />
      <Prestige CharacterDesignId1="1" CharacterDesignId2="2" ToCharacterDesignId="3" />
    </Prestiges>
  </PrestigeCharacterTo>
</CharacterService>`

const emptyPrestigeXML = `<CharacterService>
  <PrestigeCharacterFrom>
    <Prestiges></Prestiges>
  </PrestigeCharacterFrom>
</CharacterService>`

func testService(t *testing.T) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		switch {
		case strings.Contains(r.URL.Path, "PrestigeCharacterFrom"):
			if r.URL.Query().Get("characterDesignId") == "1" {
				w.Write([]byte(prestigeFromXML))
			} else {
				w.Write([]byte(emptyPrestigeXML))
			}
		case strings.Contains(r.URL.Path, "PrestigeCharacterTo"):
			if r.URL.Query().Get("characterDesignId") == "3" {
				w.Write([]byte(prestigeToXML))
			} else {
				w.Write([]byte(emptyPrestigeXML))
			}
		case strings.HasPrefix(r.URL.Path, "/CharacterService/"):
			w.Write([]byte(charactersXML))
		case strings.HasPrefix(r.URL.Path, "/CollectionService/"):
			w.Write([]byte(collectionsXML))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return NewService(pssapi.NewClient(pssapi.Config{BaseURL: srv.URL}), Config{})
}

func TestDetailsUnleveled(t *testing.T) {
	t.Parallel()

	s := testService(t)
	lines, err := s.Details(context.Background(), "Alpaco", 0)
	if err != nil {
		t.Fatalf("Details error: %v", err)
	}

	want := []string{
		"**Alpaco**",
		"_A fluffy alpaca._",
		"Rarity: Epic",
		"Race: Animal",
		"Collection: Alpaca Family",
		"Gender: Male",
		"Ability: 10.0 - 20.0 (System Hack)",
		"HP: 100.0 - 200.0",
		"Attack: 5.0 - 10.0",
		"Walk/run speed: 2/4",
		"Fire resist: 0",
		"Training cap: 10",
		"Slots: Head, Leg",
	}
	for _, w := range want {
		if !containsLine(lines, w) {
			t.Errorf("Details missing %q in %v", w, lines)
		}
	}
	// No level was requested; the Level line must be absent.
	for _, l := range lines {
		if strings.HasPrefix(l, "Level:") {
			t.Errorf("unleveled details rendered %q", l)
		}
	}
}

func TestDetailsAtLevel(t *testing.T) {
	t.Parallel()

	s := testService(t)
	lines, err := s.Details(context.Background(), "Alpaco", 20)
	if err != nil {
		t.Fatalf("Details error: %v", err)
	}

	// Linear progression, level 20: min + (max-min) * 19/39.
	want := []string{
		"Level: 20",
		"HP: 148.7",
		"Ability: 14.9 (System Hack)",
	}
	for _, w := range want {
		if !containsLine(lines, w) {
			t.Errorf("Details missing %q in %v", w, lines)
		}
	}
}

func TestDetailsFuzzyAndMiss(t *testing.T) {
	t.Parallel()

	s := testService(t)
	lines, err := s.Details(context.Background(), "alpacco", 0)
	if err != nil {
		t.Fatalf("fuzzy Details error: %v", err)
	}
	if !containsLine(lines, "**Alpaco**") {
		t.Errorf("fuzzy Details = %v", lines)
	}

	_, err = s.Details(context.Background(), "zzzzzz", 0)
	var nf *entity.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestCollectionDetails(t *testing.T) {
	t.Parallel()

	s := testService(t)
	lines, err := s.CollectionDetails(context.Background(), "Alpaca Family")
	if err != nil {
		t.Fatalf("CollectionDetails error: %v", err)
	}

	want := []string{
		"**Alpaca Family**",
		"_Fluffy._",
		"Combo Min...Max = 2...5",
		"Fire resistance = 4 (Base), 2 (Step)",
		"Characters = Alpaco, Burrito",
	}
	if len(lines) != len(want) {
		t.Fatalf("CollectionDetails = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPrestigeFromGroupsByTarget(t *testing.T) {
	t.Parallel()

	s := testService(t)
	lines, err := s.PrestigeFrom(context.Background(), "Alpaco")
	if err != nil {
		t.Fatalf("PrestigeFrom error: %v", err)
	}

	want := []string{
		"**Alpaco** has **2** prestige combinations:",
		"**Cat** with:",
		"> Burrito, Ghost",
	}
	if len(lines) != len(want) {
		t.Fatalf("PrestigeFrom = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPrestigeToSortedPairs(t *testing.T) {
	t.Parallel()

	s := testService(t)
	lines, err := s.PrestigeTo(context.Background(), "Cat")
	if err != nil {
		t.Fatalf("PrestigeTo error: %v", err)
	}

	want := []string{
		"**There are 2 ways to prestige Cat from:**",
		"Alpaco + Burrito",
		"Burrito + Ghost",
	}
	if len(lines) != len(want) {
		t.Fatalf("PrestigeTo = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPrestigeSpecialCrewMessage(t *testing.T) {
	t.Parallel()

	s := testService(t)
	lines, err := s.PrestigeFrom(context.Background(), "Ghost")
	if err != nil {
		t.Fatalf("PrestigeFrom error: %v", err)
	}
	if !containsLine(lines, "One cannot prestige **Special** crew.") {
		t.Errorf("PrestigeFrom(Ghost) = %v, want the Special message", lines)
	}

	lines, err = s.PrestigeTo(context.Background(), "Burrito")
	if err != nil {
		t.Fatalf("PrestigeTo error: %v", err)
	}
	if !containsLine(lines, "One cannot prestige to **Common** crew.") {
		t.Errorf("PrestigeTo(Burrito) = %v, want the Common message", lines)
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
