package crew

import (
	"fmt"

	"github.com/pssfleet/starbot/internal/entity"
	"github.com/pssfleet/starbot/internal/format"
)

// LevelCostArgsError reports an invalid level range request.
type LevelCostArgsError struct {
	From, To int
}

func (e *LevelCostArgsError) Error() string {
	return fmt.Sprintf("invalid level range %d..%d: levels span 1..40 and the range must ascend", e.From, e.To)
}

// LevelCosts renders the gas and XP needed to train crew across a level
// range, for regular and legendary crew. With to == 0 the single argument is
// the target level: the result covers level 1 up to it and additionally shows
// the last single step. Levels span 1..40 and the range must ascend.
func LevelCosts(from, to int) ([]string, error) {
	singleTarget := to == 0
	if singleTarget {
		if from < 2 || from > entity.MaxLevel {
			return nil, &LevelCostArgsError{From: from, To: to}
		}
		to = from
		from = 1
	} else if from < 1 || to > entity.MaxLevel || from >= to {
		return nil, &LevelCostArgsError{From: from, To: to}
	}

	lines := []string{"**Level costs** (non-legendary crew, max research)"}
	lines = append(lines, costLines(from, to, gasCosts, xpCosts)...)
	lines = append(lines, entity.EmptyLine, "**Level costs** (legendary crew, max research)")
	lines = append(lines, costLines(from, to, gasCostsLegendary, xpCostsLegendary)...)
	return lines, nil
}

// costLines renders the cost summary for one cost table pair. Ranges starting
// at level 1 additionally show the final single step, which is what players
// usually want to know when they name just a target level.
func costLines(from, to int, gas, xp [40]int) []string {
	gasSum, xpSum := 0, 0
	for lvl := from + 1; lvl <= to; lvl++ {
		gasSum += gas[lvl-1]
		xpSum += xp[lvl-1]
	}

	var lines []string
	if from == 1 {
		lines = append(lines, fmt.Sprintf("Getting from level %d to %d requires %s XP and %s Gas.",
			to-1, to, format.Thousands(xp[to-1]), format.Thousands(gas[to-1])))
	}
	lines = append(lines, fmt.Sprintf("Getting from level %d to %d requires %s XP and %s Gas.",
		from, to, format.Thousands(xpSum), format.Thousands(gasSum)))
	return lines
}
