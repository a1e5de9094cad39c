package rooms

import (
	"context"
	"fmt"
	"strings"

	"github.com/pssfleet/starbot/internal/entity"
)

func prop(path string) entity.TransformFunc {
	return func(_ context.Context, r entity.Record, _ entity.RenderContext) string {
		return compactValue(r, path)
	}
}

func static(fn func(entity.Record) string) entity.TransformFunc {
	return func(_ context.Context, r entity.Record, _ entity.RenderContext) string {
		return fn(r)
	}
}

func dmg(path string, percent bool) entity.TransformFunc {
	return func(_ context.Context, r entity.Record, _ entity.RenderContext) string {
		return damage(r, path, percent)
	}
}

// newTable builds the declarative room details table. Line order matches the
// in-game stat screen: identity first, then combat, then economy. The items
// and research retrievers serve build-requirement name lookups.
func newTable(items, research *entity.Retriever) *entity.Table {
	return &entity.Table{
		SubtypeField: TypeField,
		Props: []entity.PropertyDef{
			{IncludeLabel: false, Transform: static(displayName)},
			{IncludeLabel: false, Transform: static(description)},
			{Label: "Size (WxH)", IncludeLabel: true, Transform: static(size)},
			{Label: "Max power used", IncludeLabel: true, Transform: prop("MaxSystemPower")},
			{Label: "Power generated", IncludeLabel: true, Transform: prop("MaxPowerGenerated")},
			{Label: "Innate armor", IncludeLabel: true, Transform: static(innateArmor)},
			{Label: "Enhanced By", IncludeLabel: true, Transform: prop("EnhancementType")},
			{Label: "Min hull lvl", IncludeLabel: true, Transform: prop("MinShipLevel")},
			{Label: "System dmg", IncludeLabel: true, Transform: dmg("MissileDesign.SystemDamage", false)},
			{Label: "Shield dmg", IncludeLabel: true, Transform: dmg("MissileDesign.ShieldDamage", false)},
			{Label: "Crew dmg", IncludeLabel: true, Transform: dmg("MissileDesign.CharacterDamage", false)},
			{Label: "Hull dmg", IncludeLabel: true, Transform: dmg("MissileDesign.HullDamage", false)},
			{Label: "Direct System dmg", IncludeLabel: true, Transform: dmg("MissileDesign.DirectSystemDamage", true)},
			{Label: "EMP duration", IncludeLabel: true, Transform: static(empDuration)},
			{Label: "Reload (Speed)", IncludeLabel: true, Transform: static(reloadSpeed)},
			{Label: "Shots fired", IncludeLabel: true, Transform: static(shotsFired)},
			{
				Label:          "Max storage",
				IncludeLabel:   true,
				LabelOverrides: map[string]string{"Wall": "Armor value"},
				Transform:      static(maxStorage),
			},
			{Label: "Manufacture speed", IncludeLabel: true, Transform: static(manufactureSpeed)},
			{Label: "Queue Limit", IncludeLabel: true, Transform: prop("ManufactureCapacity")},
			{
				Label:          "Manufacture type",
				IncludeLabel:   true,
				LabelOverrides: map[string]string{"Storage": "Storage type"},
				Transform: static(func(r entity.Record) string {
					mfType, _ := r.String("ManufactureType")
					if mfType == "" || strings.EqualFold(mfType, "none") {
						return ""
					}
					return CurrencyLabel(mfType)
				}),
			},
			{Label: "Build time", IncludeLabel: true, Transform: static(buildTime)},
			{Label: "Build cost", IncludeLabel: true, Transform: static(buildCost)},
			{
				Label:        "Build requirement",
				IncludeLabel: true,
				Transform: func(ctx context.Context, r entity.Record, _ entity.RenderContext) string {
					raw, _ := r.String("RequirementString")
					return buildRequirement(ctx, raw, items, research)
				},
			},
			{
				Label:        "Grid types",
				IncludeLabel: true,
				Transform: static(func(r entity.Record) string {
					mask, _ := r.String("SupportedGridTypes")
					if allowedInExtensionGrids(mask) {
						return "Allowed in extension grids"
					}
					return ""
				}),
			},
			{
				IncludeLabel: false,
				ShortOnly:    true,
				Transform:    static(shortSummary),
			},
		},
	}
}

// shortSummary is the one-line form used when a query matches many rooms:
// "Name [SN] (Enhanced by: X, Ship lvl: N)".
func shortSummary(r entity.Record) string {
	name, _ := r.String(NameField)
	if name == "" {
		return ""
	}
	if sn, _ := r.String(ShortNameField); sn != "" {
		name += " [" + PrettyShortName(sn) + "]"
	}
	enhancement, _ := r.String("EnhancementType")
	minLevel, _ := r.String("MinShipLevel")
	return fmt.Sprintf("%s (Enhanced by: %s, Ship lvl: %s)", name, enhancement, minLevel)
}

// buildRequirement decodes a "type:id", "type:idxN" or "type:id>=N"
// requirement into a human-readable line, resolving item and research IDs to
// their names. Unknown requirement types pass through verbatim.
func buildRequirement(ctx context.Context, raw string, items, research *entity.Retriever) string {
	if raw == "" {
		return ""
	}
	reqType, rest, ok := strings.Cut(strings.ToLower(raw), ":")
	if !ok {
		return raw
	}
	id, amount, ok := strings.Cut(rest, ">=")
	if !ok {
		id, amount, ok = strings.Cut(rest, "x")
	}
	if !ok {
		amount = "1"
	}

	var rt *entity.Retriever
	var nameField string
	switch reqType {
	case "item":
		rt, nameField = items, "ItemDesignName"
	case "research":
		rt, nameField = research, "ResearchName"
	default:
		return raw
	}
	if rt == nil {
		return raw
	}

	data, err := rt.Data(ctx)
	if err != nil {
		return raw
	}
	rec, ok := data.Get(id)
	if !ok {
		return raw
	}
	name, _ := rec.String(nameField)
	if name == "" {
		return raw
	}
	return amount + "x " + name
}
