package stats

import (
	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// HitPointBonusLine is one feature's contribution to maximum hit points
type HitPointBonusLine struct {
	Source string `json:"source"`
	Amount int    `json:"amount"`
}

// HitPointBreakdown itemizes the maximum hit point total
type HitPointBreakdown struct {
	Base         int                 `json:"base"`          // full die at level 1, die average rounded up per later level
	Constitution int                 `json:"constitution"`  // Constitution modifier per level
	FeatureBonus int                 `json:"feature_bonus"` // total from bonus hit point effects
	Features     []HitPointBonusLine `json:"features,omitempty"`
	Total        int                 `json:"total"`
}

// HitPoints computes maximum hit points: a full hit die at level 1, the
// die's average rounded up for every level after, the Constitution
// modifier per level, and any bonus_hp effects (flat or per-level).
func HitPoints(s *character.State, hitDie int) int {
	return HitPointsBreakdown(s, hitDie).Total
}

// HitPointsBreakdown computes maximum hit points and itemizes where each
// point came from, one bonus line per contributing feature.
func HitPointsBreakdown(s *character.State, hitDie int) HitPointBreakdown {
	level := s.Level
	if level < 1 {
		level = 1
	}

	conMod := s.Abilities.Mod(character.AbilityConstitution)
	breakdown := HitPointBreakdown{
		Base:         hitDie + (hitDie/2+1)*(level-1),
		Constitution: conMod * level,
	}

	for _, applied := range s.EffectsOfType(rulebook.EffectBonusHP) {
		bonus := applied.Effect.FlatValue()
		if applied.Effect.Scaling == rulebook.ScalingPerLevel {
			bonus *= level
		}
		breakdown.FeatureBonus += bonus
		breakdown.Features = append(breakdown.Features, HitPointBonusLine{
			Source: applied.Source,
			Amount: bonus,
		})
	}

	breakdown.Total = breakdown.Base + breakdown.Constitution + breakdown.FeatureBonus

	// A character always has at least one hit point per level
	if breakdown.Total < level {
		breakdown.Total = level
	}
	return breakdown
}
