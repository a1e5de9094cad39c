package crew

// Equipment slot bitmask values from EquipmentMask.
var equipmentSlots = []struct {
	flag int
	name string
}{
	{1, "Head"},
	{2, "Body"},
	{4, "Leg"},
	{8, "Weapon"},
	{16, "Accessory"},
	{32, "Pet"},
}

// specialAbilityNames maps SpecialAbilityType values to their in-game names.
var specialAbilityNames = map[string]string{
	"AddReload":                   "Rush Command",
	"DamageToCurrentEnemy":        "Critical Strike",
	"DamageToRoom":                "Ultra Dismantle",
	"DamageToSameRoomCharacters":  "Poison Gas",
	"DeductReload":                "System Hack",
	"FireWalk":                    "Fire Walk",
	"Freeze":                      "Freeze",
	"HealRoomHp":                  "Urgent Repair",
	"HealSameRoomCharacters":      "Healing Rain",
	"HealSelfHp":                  "First Aid",
	"ProtectRoom":                 "Stasis Shield",
	"SetFire":                     "Arson",
}

// collectionPerkNames maps a collection's EnhancementType to its display name.
var collectionPerkNames = map[string]string{
	"Ability":        "Ability",
	"Attack":         "Attack",
	"Engine":         "Engine",
	"FireResistance": "Fire resistance",
	"Hp":             "HP",
	"Pilot":          "Pilot",
	"Repair":         "Repair",
	"Science":        "Science",
	"Stamina":        "Stamina",
	"Weapon":         "Weapon",
}

// Per-level training costs for regular crew, indexed by target level - 1
// (level 1 costs nothing). Values assume maxed research discounts.
var gasCosts = [40]int{
	0, 30, 60, 90, 120, 180, 240, 300, 360, 420,
	540, 660, 780, 900, 1020, 1200, 1380, 1560, 1740, 1920,
	2160, 2400, 2640, 2880, 3120, 3480, 3840, 4200, 4560, 4920,
	5400, 5880, 6360, 6840, 7320, 7920, 8520, 9120, 9720, 10320,
}

var xpCosts = [40]int{
	0, 90, 180, 270, 360, 540, 720, 900, 1080, 1260,
	1620, 1980, 2340, 2700, 3060, 3600, 4140, 4680, 5220, 5760,
	6480, 7200, 7920, 8640, 9360, 10440, 11520, 12600, 13680, 14760,
	16200, 17640, 19080, 20520, 21960, 23760, 25560, 27360, 29160, 30960,
}

// Legendary crew pay triple gas and double XP per level.
var (
	gasCostsLegendary = scaleCosts(gasCosts, 3)
	xpCostsLegendary  = scaleCosts(xpCosts, 2)
)

func scaleCosts(costs [40]int, factor int) [40]int {
	var out [40]int
	for i, c := range costs {
		out[i] = c * factor
	}
	return out
}

// equipmentMask decodes an EquipmentMask bitmask into the joined slot names.
// Crew without any slot render "-".
func equipmentMask(mask int) string {
	result := ""
	for _, slot := range equipmentSlots {
		if mask&slot.flag == 0 {
			continue
		}
		if result != "" {
			result += ", "
		}
		result += slot.name
	}
	if result == "" {
		return "-"
	}
	return result
}

// abilityName returns the display name of a crew's special ability, or ""
// when the type is unknown or "None".
func abilityName(abilityType string) string {
	return specialAbilityNames[abilityType]
}

// perkName returns the display name of a collection perk, falling back to the
// raw EnhancementType for unknown perks.
func perkName(enhancementType string) string {
	if name, ok := collectionPerkNames[enhancementType]; ok {
		return name
	}
	return enhancementType
}
