package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/rulebook"
	"github.com/wyrmforge/charbuild/internal/stats"
	"github.com/wyrmforge/charbuild/internal/testutils"
)

func acByLabel(t *testing.T, options []stats.ACOption, label string) stats.ACOption {
	t.Helper()
	for _, option := range options {
		if option.Label == label {
			return option
		}
	}
	t.Fatalf("AC option %q not found", label)
	return stats.ACOption{}
}

func newFighterState() *character.State {
	s := character.New()
	s.Level = 1
	s.Abilities.Base = map[string]int{
		character.AbilityStrength: 15, character.AbilityDexterity: 14,
		character.AbilityConstitution: 13,
	}
	s.AddProficiency(character.ProficiencyArmor, "Light Armor", "Fighter")
	s.AddProficiency(character.ProficiencyArmor, "Medium Armor", "Fighter")
	s.AddProficiency(character.ProficiencyArmor, "Heavy Armor", "Fighter")
	s.AddProficiency(character.ProficiencyArmor, "Shields", "Fighter")
	return s
}

func TestArmorClassCombinations(t *testing.T) {
	catalog := testutils.NewTestCatalog()
	s := newFighterState()
	s.Inventory().AddArmor("Chain Mail", 1)
	s.Inventory().AddArmor("Leather Armor", 1)
	s.Inventory().AddShield("Shield", 1)

	options := stats.ArmorClass(s, catalog)

	assert.Equal(t, 12, acByLabel(t, options, "Unarmored").AC)
	assert.Equal(t, 14, acByLabel(t, options, "Unarmored + Shield").AC)
	assert.Equal(t, 16, acByLabel(t, options, "Chain Mail").AC)
	assert.Equal(t, 18, acByLabel(t, options, "Chain Mail + Shield").AC)
	assert.Equal(t, 13, acByLabel(t, options, "Leather Armor").AC) // 11 + full Dex
	assert.Equal(t, 15, acByLabel(t, options, "Leather Armor + Shield").AC)

	// Best option first
	require.NotEmpty(t, options)
	assert.Equal(t, "Chain Mail + Shield", options[0].Label)
}

func TestArmorClassMediumArmorCapsDex(t *testing.T) {
	catalog := testutils.NewTestCatalog()
	s := newFighterState()
	s.Abilities.Base[character.AbilityDexterity] = 18
	s.Inventory().AddArmor("Half Plate Armor", 1)

	halfPlate := acByLabel(t, stats.ArmorClass(s, catalog), "Half Plate Armor")
	assert.Equal(t, 17, halfPlate.AC) // 15 + min(+4, +2)
	assert.Contains(t, halfPlate.Warnings, "disadvantage on Stealth checks")
}

func TestArmorClassWarnings(t *testing.T) {
	catalog := testutils.NewTestCatalog()
	s := character.New()
	s.Abilities.Base = map[string]int{
		character.AbilityStrength:  10,
		character.AbilityDexterity: 14,
	}
	s.AddProficiency(character.ProficiencyArmor, "Light Armor", "Rogue")
	s.Inventory().AddArmor("Chain Mail", 1)
	s.Inventory().AddShield("Shield", 1)

	options := stats.ArmorClass(s, catalog)

	chainMail := acByLabel(t, options, "Chain Mail")
	assert.False(t, chainMail.Valid)
	assert.Contains(t, chainMail.Warnings, "not proficient with heavy armor")
	assert.Contains(t, chainMail.Warnings, "requires Strength 13 (speed reduced by 10 feet)")

	shielded := acByLabel(t, options, "Unarmored + Shield")
	assert.False(t, shielded.Valid)
	assert.Contains(t, shielded.Warnings, "not proficient with shields")

	// Valid options sort ahead of invalid ones at the same AC
	unarmoredShield := acByLabel(t, options, "Unarmored + Shield")
	assert.Equal(t, 14, unarmoredShield.AC)
}

func TestUnarmoredDefenseBarbarian(t *testing.T) {
	catalog := testutils.NewTestCatalog()
	s := character.New()
	s.Abilities.Base = map[string]int{
		character.AbilityDexterity:    14,
		character.AbilityConstitution: 16,
	}
	s.AddProficiency(character.ProficiencyArmor, "Shields", "Barbarian")
	s.Features.Class = append(s.Features.Class, character.Feature{
		Name:        "Unarmored Defense",
		Description: "While you aren't wearing any armor, your base Armor Class equals 10 plus your Dexterity and Constitution modifiers. You can use a Shield and still gain this benefit.",
	})
	s.Inventory().AddShield("Shield", 1)

	options := stats.ArmorClass(s, catalog)

	assert.Equal(t, 15, acByLabel(t, options, "Unarmored").AC)          // 10 + 2 + 3
	assert.Equal(t, 17, acByLabel(t, options, "Unarmored + Shield").AC) // shield keeps the benefit
}

func TestUnarmoredDefenseWisdomDropsWithShield(t *testing.T) {
	catalog := testutils.NewTestCatalog()
	s := character.New()
	s.Abilities.Base = map[string]int{
		character.AbilityDexterity: 16,
		character.AbilityWisdom:    14,
	}
	s.AddProficiency(character.ProficiencyArmor, "Shields", "Monk")
	s.Features.Class = append(s.Features.Class, character.Feature{
		Name:        "Unarmored Defense",
		Description: "While you aren't wearing armor or wielding a Shield, your base Armor Class equals 10 plus your Dexterity and Wisdom modifiers.",
	})
	s.Inventory().AddShield("Shield", 1)

	options := stats.ArmorClass(s, catalog)

	assert.Equal(t, 15, acByLabel(t, options, "Unarmored").AC) // 10 + 3 + 2
	// The Wisdom bonus is lost when holding a shield
	assert.Equal(t, 15, acByLabel(t, options, "Unarmored + Shield").AC) // 10 + 3 + 2 shield, no Wis
}

func TestDefenseStyleAppliesArmoredOnly(t *testing.T) {
	catalog := testutils.NewTestCatalog()
	s := newFighterState()
	s.Inventory().AddArmor("Chain Mail", 1)
	s.Effects = []character.AppliedEffect{{
		Type:   rulebook.EffectBonusAC,
		Source: "Defense",
		Effect: rulebook.Effect{
			Type:      rulebook.EffectBonusAC,
			Value:     bonus(1),
			Condition: "while wearing armor",
		},
	}}

	options := stats.ArmorClass(s, catalog)
	assert.Equal(t, 17, acByLabel(t, options, "Chain Mail").AC)
	assert.Equal(t, 12, acByLabel(t, options, "Unarmored").AC, "Defense must not apply unarmored")
}
