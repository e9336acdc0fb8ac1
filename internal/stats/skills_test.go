package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/rulebook"
	"github.com/wyrmforge/charbuild/internal/stats"
)

func skillByName(t *testing.T, lines []stats.SkillLine, name string) stats.SkillLine {
	t.Helper()
	for _, line := range lines {
		if line.Name == name {
			return line
		}
	}
	t.Fatalf("skill %q not found", name)
	return stats.SkillLine{}
}

func TestSkillsBaseline(t *testing.T) {
	s := character.New()
	s.Level = 1
	s.Abilities.Base = map[string]int{
		character.AbilityStrength: 15, character.AbilityDexterity: 14,
		character.AbilityConstitution: 13, character.AbilityIntelligence: 8,
		character.AbilityWisdom: 10, character.AbilityCharisma: 12,
	}
	s.AddProficiency(character.ProficiencySkills, "Athletics", "Fighter")

	lines := stats.Skills(s)
	require.Len(t, lines, 18)

	athletics := skillByName(t, lines, "Athletics")
	assert.True(t, athletics.Proficient)
	assert.Equal(t, 4, athletics.Modifier) // +2 str, +2 proficiency
	assert.Equal(t, character.AbilityStrength, athletics.Ability)

	stealth := skillByName(t, lines, "Stealth")
	assert.False(t, stealth.Proficient)
	assert.Equal(t, 2, stealth.Modifier)

	arcana := skillByName(t, lines, "Arcana")
	assert.Equal(t, -1, arcana.Modifier)
}

func TestSkillsExpertise(t *testing.T) {
	s := character.New()
	s.Level = 1
	s.Abilities.Base = map[string]int{character.AbilityDexterity: 16}
	s.AddProficiency(character.ProficiencySkills, "Stealth", "Rogue")
	s.AddProficiency(character.ProficiencySkills, "Acrobatics", "Rogue")
	s.Choices["Expertise"] = []string{"Stealth"}

	lines := stats.Skills(s)

	stealth := skillByName(t, lines, "Stealth")
	assert.True(t, stealth.Expertise)
	assert.Equal(t, 7, stealth.Modifier) // +3 dex, +2 proficiency twice

	acrobatics := skillByName(t, lines, "Acrobatics")
	assert.False(t, acrobatics.Expertise)
	assert.Equal(t, 5, acrobatics.Modifier)

	// Expertise never applies without the underlying proficiency
	sleight := skillByName(t, lines, "Sleight of Hand")
	assert.Equal(t, 3, sleight.Modifier)
}

func TestSkillsAbilityBonusResolvedLazily(t *testing.T) {
	s := character.New()
	s.Level = 1
	s.Abilities.Base = map[string]int{
		character.AbilityIntelligence: 10,
		character.AbilityWisdom:       16,
	}
	s.Effects = []character.AppliedEffect{{
		Type:   rulebook.EffectAbilityBonus,
		Source: "Thaumaturge",
		Effect: rulebook.Effect{
			Type:    rulebook.EffectAbilityBonus,
			Skills:  []string{"Arcana", "Religion"},
			Value:   &rulebook.BonusValue{AbilityRef: "wisdom"},
			Minimum: 1,
		},
	}}

	lines := stats.Skills(s)

	arcana := skillByName(t, lines, "Arcana")
	assert.Equal(t, 3, arcana.Modifier) // +0 int, +3 wis bonus
	assert.Equal(t, "Thaumaturge", arcana.BonusSource)

	religion := skillByName(t, lines, "Religion")
	assert.Equal(t, 3, religion.Modifier)

	history := skillByName(t, lines, "History")
	assert.Equal(t, 0, history.Modifier)
	assert.Empty(t, history.BonusSource)

	// The bonus re-resolves when the referenced score changes
	s.Abilities.Base[character.AbilityWisdom] = 8
	arcana = skillByName(t, stats.Skills(s), "Arcana")
	assert.Equal(t, 1, arcana.Modifier, "minimum of +1 floors a negative modifier")
}

func TestSkillsFlatBonus(t *testing.T) {
	s := character.New()
	s.Abilities.Base = map[string]int{character.AbilityWisdom: 10}
	s.Effects = []character.AppliedEffect{{
		Type:   rulebook.EffectAbilityBonus,
		Source: "Observant",
		Effect: rulebook.Effect{
			Type:   rulebook.EffectAbilityBonus,
			Skills: []string{"Perception"},
			Value:  bonus(5),
		},
	}}

	perception := skillByName(t, stats.Skills(s), "Perception")
	assert.Equal(t, 5, perception.Modifier)
}
