package dice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Notation is a parsed dice expression like "2d6+3"
type Notation struct {
	Count int
	Sides int
	Bonus int
}

// Parse parses a dice expression of the form "NdS", "NdS+B" or "NdS-B".
// A missing count defaults to 1.
func Parse(expr string) (Notation, error) {
	trimmed := strings.ReplaceAll(strings.ToLower(expr), " ", "")
	if trimmed == "" {
		return Notation{}, fmt.Errorf("empty dice expression")
	}

	var n Notation
	dicePart := trimmed

	if idx := strings.IndexAny(trimmed, "+-"); idx > 0 {
		bonus, err := strconv.Atoi(trimmed[idx:])
		if err != nil {
			return Notation{}, fmt.Errorf("invalid bonus in dice expression %q", expr)
		}
		n.Bonus = bonus
		dicePart = trimmed[:idx]
	}

	parts := strings.Split(dicePart, "d")
	if len(parts) != 2 {
		return Notation{}, fmt.Errorf("invalid dice expression %q", expr)
	}

	if parts[0] == "" {
		n.Count = 1
	} else {
		count, err := strconv.Atoi(parts[0])
		if err != nil || count < 1 {
			return Notation{}, fmt.Errorf("invalid dice count in %q", expr)
		}
		n.Count = count
	}

	sides, err := strconv.Atoi(parts[1])
	if err != nil || sides < 1 {
		return Notation{}, fmt.Errorf("invalid dice size in %q", expr)
	}
	n.Sides = sides

	return n, nil
}

func (n Notation) String() string {
	switch {
	case n.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Sides, n.Bonus)
	case n.Bonus < 0:
		return fmt.Sprintf("%dd%d-%d", n.Count, n.Sides, -n.Bonus)
	default:
		return fmt.Sprintf("%dd%d", n.Count, n.Sides)
	}
}

// AverageOptions adjust how an expected damage value is computed
type AverageOptions struct {
	// Crit doubles the number of dice, never the flat bonus
	Crit bool
	// RerollLow models rerolling 1s and 2s once (Great Weapon Fighting)
	RerollLow bool
}

// Average returns the expected value of a dice expression plus a flat bonus,
// rounded to one decimal place. A plain number (no "d") is returned as the
// bonus alone, matching how flat unarmed damage is displayed.
func Average(expr string, bonus int, opts AverageOptions) float64 {
	if !strings.Contains(expr, "d") {
		return float64(bonus)
	}

	n, err := Parse(expr)
	if err != nil {
		return float64(bonus)
	}

	count := n.Count
	if opts.Crit {
		count *= 2
	}

	perDie := (1 + float64(n.Sides)) / 2.0
	if opts.RerollLow {
		// Rerolled die keeps its normal average; faces 3..S are kept.
		sumHigh := 0
		for face := 3; face <= n.Sides; face++ {
			sumHigh += face
		}
		perDie = (2*perDie + float64(sumHigh)) / float64(n.Sides)
	}

	total := float64(count)*perDie + float64(bonus) + float64(n.Bonus)
	return math.Round(total*10) / 10
}
