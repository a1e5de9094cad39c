package rooms

import (
	"strconv"
	"strings"
)

// Currency labels for the resource types appearing in PriceString and
// ManufactureType values.
var currencyLabels = map[string]string{
	"starbux": "Starbux",
	"mineral": "Minerals",
	"gas":     "Gas",
	"supply":  "Supplies",
}

// CurrencyLabel maps a resource type to its display label. Unknown types are
// returned unchanged so new server-side currencies still render.
func CurrencyLabel(resourceType string) string {
	if resourceType == "" {
		return ""
	}
	if label, ok := currencyLabels[strings.ToLower(resourceType)]; ok {
		return label
	}
	return resourceType
}

// Grid type bitmask values from SupportedGridTypes.
const (
	gridDefault   = 1
	gridExtension = 2
)

// allowedInExtensionGrids reports whether the mask carries the extension grid
// flag.
func allowedInExtensionGrids(mask string) bool {
	flags, err := strconv.Atoi(mask)
	if err != nil {
		return false
	}
	return flags&gridExtension != 0
}
