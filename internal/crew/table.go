package crew

import (
	"context"
	"strconv"

	"github.com/pssfleet/starbot/internal/entity"
)

func static(fn func(entity.Record) string) entity.TransformFunc {
	return func(_ context.Context, r entity.Record, _ entity.RenderContext) string {
		return fn(r)
	}
}

func field(name string) entity.TransformFunc {
	return func(_ context.Context, r entity.Record, _ entity.RenderContext) string {
		v, _ := r.String(name)
		return v
	}
}

// stat builds a transform rendering a leveled stat: the record's base value
// interpolated towards its Final<name> counterpart at the context level, or
// the "min - max" range when no level was requested.
func stat(name string) entity.TransformFunc {
	return func(_ context.Context, r entity.Record, rc entity.RenderContext) string {
		return statValue(r, name, rc.Level)
	}
}

func statValue(r entity.Record, name string, level int) string {
	maxName := "Final" + name
	if name == "SpecialAbilityArgument" {
		maxName = "SpecialAbilityFinalArgument"
	}
	minValue, ok := r.Float(name)
	if !ok {
		return ""
	}
	maxValue, ok := r.Float(maxName)
	if !ok {
		return ""
	}
	progression, _ := r.String("ProgressionType")
	return entity.StatValue(minValue, maxValue, level, entity.ProgressionType(progression))
}

// newTable builds the crew details table. The collections retriever resolves
// the crew's collection membership by ID.
func newTable(collections *entity.Retriever) *entity.Table {
	return &entity.Table{
		Props: []entity.PropertyDef{
			{
				IncludeLabel: false,
				Short:        true,
				Transform: static(func(r entity.Record) string {
					name, _ := r.String(NameField)
					if name == "" {
						return ""
					}
					return "**" + name + "**"
				}),
			},
			{IncludeLabel: false, Transform: static(func(r entity.Record) string {
				desc, _ := r.String("CharacterDesignDescription")
				if desc == "" {
					return ""
				}
				return "_" + desc + "_"
			})},
			{
				Label:        "Level",
				IncludeLabel: true,
				Transform: func(_ context.Context, _ entity.Record, rc entity.RenderContext) string {
					if rc.Level < entity.MinLevel || rc.Level > entity.MaxLevel {
						return ""
					}
					return strconv.Itoa(rc.Level)
				},
			},
			{Label: "Rarity", IncludeLabel: true, Short: true, Transform: field("Rarity")},
			{Label: "Race", IncludeLabel: true, Transform: field("RaceType")},
			{
				Label:        "Collection",
				IncludeLabel: true,
				Short:        true,
				Transform: func(ctx context.Context, r entity.Record, _ entity.RenderContext) string {
					return collectionName(ctx, r, collections)
				},
			},
			{Label: "Gender", IncludeLabel: true, Transform: field("GenderType")},
			{
				Label:        "Ability",
				IncludeLabel: true,
				Short:        true,
				Transform: func(_ context.Context, r entity.Record, rc entity.RenderContext) string {
					return ability(r, rc.Level)
				},
			},
			{Label: "HP", IncludeLabel: true, Transform: stat("Hp")},
			{Label: "Attack", IncludeLabel: true, Transform: stat("Attack")},
			{Label: "Repair", IncludeLabel: true, Transform: stat("Repair")},
			{Label: "Pilot", IncludeLabel: true, Transform: stat("Pilot")},
			{Label: "Science", IncludeLabel: true, Transform: stat("Science")},
			{Label: "Engine", IncludeLabel: true, Transform: stat("Engine")},
			{Label: "Weapon", IncludeLabel: true, Transform: stat("Weapon")},
			{
				Label:        "Walk/run speed",
				IncludeLabel: true,
				Transform: static(func(r entity.Record) string {
					walk, _ := r.String("WalkingSpeed")
					run, _ := r.String("RunSpeed")
					if walk == "" && run == "" {
						return ""
					}
					return walk + "/" + run
				}),
			},
			{Label: "Fire resist", IncludeLabel: true, Transform: field("FireResistance")},
			{Label: "Training cap", IncludeLabel: true, Transform: field("TrainingCapacity")},
			{
				Label:        "Slots",
				IncludeLabel: true,
				Transform: static(func(r entity.Record) string {
					mask, ok := r.Int("EquipmentMask")
					if !ok {
						return ""
					}
					return equipmentMask(mask)
				}),
			},
		},
	}
}

// ability renders the special ability stat with its name appended:
// "12.5 (Critical Strike)".
func ability(r entity.Record, level int) string {
	value := statValue(r, "SpecialAbilityArgument", level)
	if value == "" {
		return ""
	}
	abilityType, _ := r.String("SpecialAbilityType")
	if name := abilityName(abilityType); name != "" {
		value += " (" + name + ")"
	}
	return value
}

// collectionName resolves the crew's CollectionDesignId against the
// collections family. Crew outside any collection ("0") render nothing.
func collectionName(ctx context.Context, r entity.Record, collections *entity.Retriever) string {
	id, _ := r.String(CollectionKeyField)
	if id == "" || id == "0" {
		return ""
	}
	data, err := collections.Data(ctx)
	if err != nil {
		return ""
	}
	rec, ok := data.Get(id)
	if !ok {
		return ""
	}
	name, _ := rec.String(CollectionNameField)
	return name
}
