// Package format holds the shared numeric and duration formatting rules for
// game reference data. All display values across entity families go through
// these helpers so that rounding behaves identically everywhere: values show
// the minimum number of decimals needed up to a configured maximum, with
// trailing zeros dropped.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TicksPerSecond is the game's internal clock rate: 40 ticks equal one second.
const TicksPerSecond = 40

// DefaultMaxDecimals is the default precision cap for [UpToDecimals] and the
// compact number helpers.
const DefaultMaxDecimals = 3

// TicksToSeconds converts a duration expressed in game ticks to seconds.
func TicksToSeconds(ticks int) float64 {
	return float64(ticks) / TicksPerSecond
}

// UpToDecimals formats v with at most maxDecimals decimal places, dropping
// trailing zeros (and a trailing decimal point). maxDecimals <= 0 falls back
// to [DefaultMaxDecimals].
func UpToDecimals(v float64, maxDecimals int) string {
	if maxDecimals <= 0 {
		maxDecimals = DefaultMaxDecimals
	}
	s := strconv.FormatFloat(v, 'f', maxDecimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// Reduced scales a large value down to a compact magnitude, returning the
// scaled value and the matching suffix: millions get "M", thousands get "k",
// smaller values are returned unchanged with an empty suffix.
func Reduced(v float64) (float64, string) {
	av := math.Abs(v)
	switch {
	case av >= 1e6:
		return v / 1e6, "M"
	case av >= 1e3:
		return v / 1e3, "k"
	default:
		return v, ""
	}
}

// Compact renders v in compact form ("1.5M", "800k", "42") with at most
// maxDecimals decimal places on the scaled value.
func Compact(v float64, maxDecimals int) string {
	reduced, suffix := Reduced(v)
	return UpToDecimals(reduced, maxDecimals) + suffix
}

// Duration renders a second count in the game's customary "1w 2d 3h 4m 5s"
// shape. The weeks component is only printed when non-zero; days, hours,
// minutes and seconds are always printed.
func Duration(d time.Duration) string {
	total := int64(d.Round(time.Second).Seconds())
	if total < 0 {
		total = -total
	}

	seconds := total % 60
	minutes := total / 60 % 60
	hours := total / 3600 % 24
	days := total / 86400 % 7
	weeks := total / (7 * 86400)

	var b strings.Builder
	if weeks > 0 {
		fmt.Fprintf(&b, "%dw ", weeks)
	}
	fmt.Fprintf(&b, "%dd %dh %dm %ds", days, hours, minutes, seconds)
	return b.String()
}

// Thousands renders n with "," as the thousands separator (e.g. 1234567 →
// "1,234,567").
func Thousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
