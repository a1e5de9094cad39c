package rooms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pssfleet/starbot/internal/entity"
	"github.com/pssfleet/starbot/internal/format"
)

// PrettyShortName truncates a raw RoomShortName at the first ":" — the server
// encodes the level suffix after it ("MST:3" displays as "MST").
func PrettyShortName(shortName string) string {
	if shortName == "" {
		return ""
	}
	name, _, _ := strings.Cut(shortName, ":")
	return name
}

// displayName renders the bold name line: "**Name** **[SN]**".
func displayName(r entity.Record) string {
	name, _ := r.String(NameField)
	if name == "" {
		return ""
	}
	result := "**" + name + "**"
	if sn, _ := r.String(ShortNameField); sn != "" {
		result += " **[" + PrettyShortName(sn) + "]**"
	}
	return result
}

// description prefixes the room description with its type: "[Laser] Fires...".
func description(r entity.Record) string {
	desc, _ := r.String("RoomDescription")
	roomType, _ := r.String(TypeField)
	if roomType != "" && !strings.EqualFold(roomType, "none") {
		return "[" + roomType + "] " + desc
	}
	return desc
}

// size renders "WxH" from the column and row counts.
func size(r entity.Record) string {
	cols, _ := r.String("Columns")
	rows, _ := r.String("Rows")
	if cols == "" || rows == "" {
		return ""
	}
	return cols + "x" + rows
}

// compactValue renders a numeric field in compact form. Zero, empty and
// "None" values render as empty (the line is omitted); non-numeric values
// pass through unchanged.
func compactValue(r entity.Record, path string) string {
	raw, ok := r.Resolve(path)
	if !ok || raw == "" || strings.EqualFold(raw, "none") {
		return ""
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if v == 0 {
		return ""
	}
	return format.Compact(v, format.DefaultMaxDecimals)
}

// innateArmor renders the defence bonus with its effective damage reduction:
// "20 (16.67% dmg reduction)". Reduction follows 1 - 1/(1 + bonus/100).
func innateArmor(r entity.Record) string {
	raw, _ := r.String("DefaultDefenceBonus")
	if raw == "" || raw == "0" {
		return ""
	}
	bonus, err := strconv.ParseFloat(raw, 64)
	if err != nil || bonus == 0 {
		return ""
	}
	reduction := (1.0 - 1.0/(1.0+bonus/100.0)) * 100
	return fmt.Sprintf("%s (%s%% dmg reduction)", raw, format.UpToDecimals(reduction, 2))
}

// damage renders one damage type of a weapon room as total damage plus DPS
// and DPS per power: "10.0 (per volley: 5.0, dps: 0.95, per power: 0.48)".
// The per-volley part only appears when the weapon fires volleys. percent
// appends a % to each number for percentage-typed damage.
func damage(r entity.Record, dmgPath string, percent bool) string {
	raw, ok := r.Resolve(dmgPath)
	if !ok || raw == "" {
		return ""
	}
	dmg, err := strconv.ParseFloat(raw, 64)
	if err != nil || dmg == 0 {
		return ""
	}

	reloadTicks, _ := r.Float("ReloadTime")
	volley, _ := r.Int("MissileDesign.Volley")
	volleyDelay, _ := r.Int("MissileDesign.VolleyDelay")
	maxPower, _ := r.Int("MaxSystemPower")
	if volley < 1 {
		volley = 1
	}
	if maxPower < 1 {
		maxPower = 1
	}

	reloadSeconds := reloadTicks/format.TicksPerSecond +
		format.TicksToSeconds((volley-1)*volleyDelay)
	if reloadSeconds <= 0 {
		return ""
	}

	fullVolleyDmg := dmg * float64(volley)
	dps := fullVolleyDmg / reloadSeconds
	dpsPerPower := dps / float64(maxPower)

	pct := ""
	if percent {
		pct = "%"
	}
	perVolley := ""
	if volley > 1 {
		perVolley = fmt.Sprintf("per volley: %0.1f, ", dmg)
	}
	return fmt.Sprintf("%0.1f%s (%sdps: %0.2f%s, per power: %0.2f%s)",
		fullVolleyDmg, pct, perVolley, dps, pct, dpsPerPower, pct)
}

// empDuration renders the EMP length (stored in ticks) as a duration.
func empDuration(r entity.Record) string {
	raw, ok := r.Resolve("MissileDesign.EMPLength")
	if !ok || raw == "" || raw == "0" {
		return ""
	}
	ticks, err := strconv.Atoi(raw)
	if err != nil {
		return ""
	}
	seconds := format.TicksToSeconds(ticks)
	return format.Duration(time.Duration(seconds * float64(time.Second)))
}

// reloadSpeed renders the reload time in seconds with the resulting rate:
// "10s (~ 6/min)".
func reloadSpeed(r entity.Record) string {
	raw, _ := r.String("ReloadTime")
	if raw == "" || raw == "0" {
		return ""
	}
	ticks, err := strconv.ParseFloat(raw, 64)
	if err != nil || ticks == 0 {
		return ""
	}
	seconds := ticks / format.TicksPerSecond
	perMinute := 60.0 / seconds
	return fmt.Sprintf("%ss (~ %s/min)",
		format.UpToDecimals(seconds, format.DefaultMaxDecimals),
		format.UpToDecimals(perMinute, format.DefaultMaxDecimals))
}

// shotsFired renders the volley count and inter-shot delay for rooms that
// fire more than one shot per reload.
func shotsFired(r entity.Record) string {
	volleyRaw, _ := r.String("Volley")
	if volleyRaw == "" || volleyRaw == "1" || volleyRaw == "0" {
		return ""
	}
	delayTicks, _ := r.Int("VolleyDelay")
	delaySeconds := format.TicksToSeconds(delayTicks)
	return fmt.Sprintf("%s, delay: %s", volleyRaw,
		format.UpToDecimals(delaySeconds, format.DefaultMaxDecimals))
}

// maxStorage renders the capacity with the stored resource's label:
// "2k Minerals". Walls reuse this line as their armor value.
func maxStorage(r entity.Record) string {
	capacity := compactValue(r, "Capacity")
	if capacity == "" {
		return ""
	}
	mfType, _ := r.String("ManufactureType")
	if label := CurrencyLabel(mfType); label != "" {
		return capacity + " " + label
	}
	return capacity
}

// manufactureSpeed renders seconds per unit with the hourly rate:
// "6s (600/hour)".
func manufactureSpeed(r entity.Record) string {
	raw, _ := r.String("ManufactureRate")
	if raw == "" || raw == "0" {
		return ""
	}
	ratePerSecond, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratePerSecond == 0 {
		return ""
	}
	secondsPerUnit := 1.0 / ratePerSecond
	perHour := ratePerSecond * 3600
	return fmt.Sprintf("%ss (%s/hour)",
		format.UpToDecimals(secondsPerUnit, format.DefaultMaxDecimals),
		format.UpToDecimals(perHour, format.DefaultMaxDecimals))
}

// buildTime renders the construction time as a duration.
func buildTime(r entity.Record) string {
	raw, _ := r.String("ConstructionTime")
	if raw == "" || raw == "0" {
		return ""
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return ""
	}
	return format.Duration(time.Duration(seconds) * time.Second)
}

// buildCost renders a "resource:amount" price string in compact form with the
// currency label: "1.5M Minerals".
func buildCost(r entity.Record) string {
	raw, _ := r.String("PriceString")
	if raw == "" {
		return ""
	}
	resourceType, amountRaw, ok := strings.Cut(raw, ":")
	if !ok {
		return raw
	}
	amount, err := strconv.ParseFloat(amountRaw, 64)
	if err != nil {
		return raw
	}
	return format.Compact(amount, format.DefaultMaxDecimals) + " " + CurrencyLabel(resourceType)
}
