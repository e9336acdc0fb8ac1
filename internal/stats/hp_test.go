package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/rulebook"
	"github.com/wyrmforge/charbuild/internal/stats"
)

func bonus(n int) *rulebook.BonusValue {
	return &rulebook.BonusValue{Flat: n}
}

func TestProficiencyBonus(t *testing.T) {
	cases := map[int]int{1: 2, 4: 2, 5: 3, 8: 3, 9: 4, 12: 4, 13: 5, 16: 5, 17: 6, 20: 6}
	for level, expected := range cases {
		assert.Equal(t, expected, stats.ProficiencyBonus(level), "level %d", level)
	}
}

func TestHitPointsFighterLevelOne(t *testing.T) {
	s := character.New()
	s.Level = 1
	s.Abilities.Base = map[string]int{character.AbilityConstitution: 15}

	assert.Equal(t, 12, stats.HitPoints(s, 10))
}

func TestHitPointsBarbarianLevelFive(t *testing.T) {
	s := character.New()
	s.Level = 5
	s.Abilities.Base = map[string]int{character.AbilityConstitution: 16}

	// 12 + 4*7 + 5*3
	assert.Equal(t, 55, stats.HitPoints(s, 12))
}

func TestHitPointsBreakdown(t *testing.T) {
	s := character.New()
	s.Level = 5
	s.Abilities.Base = map[string]int{character.AbilityConstitution: 16}

	breakdown := stats.HitPointsBreakdown(s, 12)
	assert.Equal(t, 40, breakdown.Base)
	assert.Equal(t, 15, breakdown.Constitution)
	assert.Equal(t, 0, breakdown.FeatureBonus)
	assert.Empty(t, breakdown.Features)
	assert.Equal(t, 55, breakdown.Total)
}

func TestHitPointsBreakdownFeatureLines(t *testing.T) {
	s := character.New()
	s.Level = 5
	s.Abilities.Base = map[string]int{character.AbilityConstitution: 16}
	s.Effects = []character.AppliedEffect{
		{
			Type:   rulebook.EffectBonusHP,
			Source: "Dwarven Toughness",
			Effect: rulebook.Effect{Type: rulebook.EffectBonusHP, Value: bonus(1), Scaling: rulebook.ScalingPerLevel},
		},
		{
			Type:   rulebook.EffectBonusHP,
			Source: "Tough",
			Effect: rulebook.Effect{Type: rulebook.EffectBonusHP, Value: bonus(10)},
		},
	}

	breakdown := stats.HitPointsBreakdown(s, 12)
	assert.Equal(t, 40, breakdown.Base)
	assert.Equal(t, 15, breakdown.Constitution)
	assert.Equal(t, 15, breakdown.FeatureBonus)
	assert.Equal(t, []stats.HitPointBonusLine{
		{Source: "Dwarven Toughness", Amount: 5},
		{Source: "Tough", Amount: 10},
	}, breakdown.Features)
	assert.Equal(t, 70, breakdown.Total)
	assert.Equal(t, breakdown.Total, stats.HitPoints(s, 12))
}

func TestHitPointsBonusEffects(t *testing.T) {
	s := character.New()
	s.Level = 3
	s.Abilities.Base = map[string]int{character.AbilityConstitution: 10}
	s.Effects = []character.AppliedEffect{
		{Type: rulebook.EffectBonusHP, Effect: rulebook.Effect{Type: rulebook.EffectBonusHP, Value: bonus(5)}},
		{Type: rulebook.EffectBonusHP, Effect: rulebook.Effect{Type: rulebook.EffectBonusHP, Value: bonus(1), Scaling: rulebook.ScalingPerLevel}},
	}

	// 8 + 2*5 + 0 con, plus 5 flat and 1 per level
	assert.Equal(t, 26, stats.HitPoints(s, 8))
}

func TestHitPointsFloor(t *testing.T) {
	s := character.New()
	s.Level = 2
	s.Abilities.Base = map[string]int{character.AbilityConstitution: 1}

	// 6 + 4 - 2*5 would be 0; floored to one per level
	assert.Equal(t, 2, stats.HitPoints(s, 6))
}

func TestAbilities(t *testing.T) {
	s := character.New()
	s.Level = 5
	s.Abilities.Base = map[string]int{
		character.AbilityStrength: 16, character.AbilityDexterity: 14,
		character.AbilityConstitution: 13, character.AbilityIntelligence: 8,
		character.AbilityWisdom: 10, character.AbilityCharisma: 12,
	}
	s.AddProficiency(character.ProficiencySavingThrows, "Strength", "Fighter")
	s.AddProficiency(character.ProficiencySavingThrows, "Constitution", "Fighter")

	lines := stats.Abilities(s)
	byName := make(map[string]stats.AbilityLine, len(lines))
	for _, line := range lines {
		byName[line.Name] = line
	}

	assert.Equal(t, 16, byName[character.AbilityStrength].Score)
	assert.Equal(t, 3, byName[character.AbilityStrength].Modifier)
	assert.True(t, byName[character.AbilityStrength].SaveProficient)
	assert.Equal(t, 6, byName[character.AbilityStrength].Save)

	assert.False(t, byName[character.AbilityDexterity].SaveProficient)
	assert.Equal(t, 2, byName[character.AbilityDexterity].Save)
	assert.Equal(t, -1, byName[character.AbilityIntelligence].Modifier)
	assert.Equal(t, -1, byName[character.AbilityIntelligence].Save)
}

func TestAbilitiesLayeredScores(t *testing.T) {
	s := character.New()
	s.Abilities.Base = map[string]int{character.AbilityIntelligence: 8}
	s.Abilities.BackgroundBonus = map[string]int{character.AbilityIntelligence: 2}

	for _, line := range stats.Abilities(s) {
		if line.Name == character.AbilityIntelligence {
			assert.Equal(t, 10, line.Score)
			assert.Equal(t, 0, line.Modifier)
		}
	}
}
