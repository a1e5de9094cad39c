package rooms

import (
	"testing"

	"github.com/pssfleet/starbot/internal/entity"
)

func TestPrettyShortName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"MST:3", "MST"},
		{"MST", "MST"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PrettyShortName(tt.in); got != tt.want {
			t.Errorf("PrettyShortName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	r := entity.Record{NameField: "Mineral Storage Lv2", ShortNameField: "MST:2"}
	if got := displayName(r); got != "**Mineral Storage Lv2** **[MST]**" {
		t.Errorf("displayName = %q", got)
	}

	r = entity.Record{NameField: "Bedroom"}
	if got := displayName(r); got != "**Bedroom**" {
		t.Errorf("displayName without short name = %q", got)
	}
}

func TestDescription(t *testing.T) {
	t.Parallel()

	r := entity.Record{TypeField: "Laser", "RoomDescription": "Fires a laser."}
	if got := description(r); got != "[Laser] Fires a laser." {
		t.Errorf("description = %q", got)
	}

	r = entity.Record{TypeField: "None", "RoomDescription": "Cosy."}
	if got := description(r); got != "Cosy." {
		t.Errorf("description with None type = %q", got)
	}
}

func TestCompactValue(t *testing.T) {
	t.Parallel()

	r := entity.Record{"Capacity": "2000", "MinShipLevel": "0", "EnhancementType": "None", "Odd": "n/a"}
	if got := compactValue(r, "Capacity"); got != "2k" {
		t.Errorf("compactValue(Capacity) = %q, want 2k", got)
	}
	if got := compactValue(r, "MinShipLevel"); got != "" {
		t.Errorf("compactValue(zero) = %q, want empty", got)
	}
	if got := compactValue(r, "EnhancementType"); got != "" {
		t.Errorf("compactValue(None) = %q, want empty", got)
	}
	if got := compactValue(r, "Odd"); got != "n/a" {
		t.Errorf("compactValue(non-numeric) = %q, want passthrough", got)
	}
}

func TestInnateArmor(t *testing.T) {
	t.Parallel()

	r := entity.Record{"DefaultDefenceBonus": "20"}
	if got := innateArmor(r); got != "20 (16.67% dmg reduction)" {
		t.Errorf("innateArmor = %q", got)
	}

	r = entity.Record{"DefaultDefenceBonus": "0"}
	if got := innateArmor(r); got != "" {
		t.Errorf("innateArmor(0) = %q, want empty", got)
	}
}

func TestDamage(t *testing.T) {
	t.Parallel()

	// 400 ticks reload = 10s; single shot; 5 dmg; 2 power.
	r := entity.Record{
		"ReloadTime":     "400",
		"MaxSystemPower": "2",
		"MissileDesign": entity.Record{
			"SystemDamage": "5",
			"Volley":       "1",
			"VolleyDelay":  "0",
		},
	}
	if got := damage(r, "MissileDesign.SystemDamage", false); got != "5.0 (dps: 0.50, per power: 0.25)" {
		t.Errorf("damage = %q", got)
	}

	// Volley weapon adds the per-volley part and the volley delay to reload.
	r = entity.Record{
		"ReloadTime":     "400",
		"MaxSystemPower": "2",
		"MissileDesign": entity.Record{
			"SystemDamage": "5",
			"Volley":       "2",
			"VolleyDelay":  "10",
		},
	}
	if got := damage(r, "MissileDesign.SystemDamage", false); got != "10.0 (per volley: 5.0, dps: 0.98, per power: 0.49)" {
		t.Errorf("volley damage = %q", got)
	}

	// Percent-typed damage carries % on every number.
	r = entity.Record{
		"ReloadTime":     "400",
		"MaxSystemPower": "1",
		"MissileDesign": entity.Record{
			"DirectSystemDamage": "8",
			"Volley":             "1",
		},
	}
	if got := damage(r, "MissileDesign.DirectSystemDamage", true); got != "8.0% (dps: 0.80%, per power: 0.80%)" {
		t.Errorf("percent damage = %q", got)
	}

	// No missile design at all: weapon lines are omitted.
	if got := damage(entity.Record{"ReloadTime": "400"}, "MissileDesign.SystemDamage", false); got != "" {
		t.Errorf("damage without MissileDesign = %q, want empty", got)
	}
}

func TestReloadSpeed(t *testing.T) {
	t.Parallel()

	r := entity.Record{"ReloadTime": "400"}
	if got := reloadSpeed(r); got != "10s (~ 6/min)" {
		t.Errorf("reloadSpeed = %q", got)
	}
}

func TestShotsFired(t *testing.T) {
	t.Parallel()

	r := entity.Record{"Volley": "2", "VolleyDelay": "10"}
	if got := shotsFired(r); got != "2, delay: 0.25" {
		t.Errorf("shotsFired = %q", got)
	}

	r = entity.Record{"Volley": "1"}
	if got := shotsFired(r); got != "" {
		t.Errorf("shotsFired(single) = %q, want empty", got)
	}
}

func TestMaxStorage(t *testing.T) {
	t.Parallel()

	r := entity.Record{"Capacity": "2000", "ManufactureType": "Mineral"}
	if got := maxStorage(r); got != "2k Minerals" {
		t.Errorf("maxStorage = %q", got)
	}

	// Walls have a bare capacity (relabeled "Armor value" by the table).
	r = entity.Record{"Capacity": "20"}
	if got := maxStorage(r); got != "20" {
		t.Errorf("maxStorage without type = %q", got)
	}
}

func TestManufactureSpeed(t *testing.T) {
	t.Parallel()

	r := entity.Record{"ManufactureRate": "0.1"}
	if got := manufactureSpeed(r); got != "10s (360/hour)" {
		t.Errorf("manufactureSpeed = %q", got)
	}
}

func TestBuildCost(t *testing.T) {
	t.Parallel()

	r := entity.Record{"PriceString": "mineral:1500000"}
	if got := buildCost(r); got != "1.5M Minerals" {
		t.Errorf("buildCost = %q", got)
	}

	r = entity.Record{"PriceString": "starbux:500"}
	if got := buildCost(r); got != "500 Starbux" {
		t.Errorf("buildCost = %q", got)
	}
}

func TestBuildTime(t *testing.T) {
	t.Parallel()

	r := entity.Record{"ConstructionTime": "90061"}
	if got := buildTime(r); got != "1d 1h 1m 1s" {
		t.Errorf("buildTime = %q", got)
	}
}

func TestEmpDuration(t *testing.T) {
	t.Parallel()

	r := entity.Record{"MissileDesign": entity.Record{"EMPLength": "2400"}}
	if got := empDuration(r); got != "0d 0h 1m 0s" {
		t.Errorf("empDuration = %q", got)
	}
}
