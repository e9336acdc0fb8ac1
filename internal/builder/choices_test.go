package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrmforge/charbuild/internal/character"
	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

func TestApplyFightingStyleChoice(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Fighter", 1))
	require.NoError(t, b.ApplyChoice(ctx, "Fighting Style", "Dueling"))

	effects := b.State().EffectsOfType(rulebook.EffectBonusDamage)
	require.Len(t, effects, 1)
	assert.Equal(t, "Dueling", effects[0].Source)
	assert.Equal(t, "class_choice", effects[0].SourceType)
	assert.Equal(t, 2, effects[0].Effect.FlatValue())
	assert.Equal(t, "one handed melee weapon", effects[0].Effect.Condition)
}

func TestApplyChoiceRejectsUnknownOption(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Fighter", 1))
	err := b.ApplyChoice(ctx, "Fighting Style", "Interception")
	require.Error(t, err)
	assert.True(t, cberr.IsInvalidSelection(err))
	assert.NotContains(t, b.State().Choices, "Fighting Style")
	assert.Empty(t, b.State().EffectsOfType(rulebook.EffectBonusDamage))
}

func TestApplyChoicesRejectsBatchWithInvalidEntry(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Fighter", 1))
	err := b.ApplyChoices(ctx, map[string]any{
		"Fighting Style": "Archery",
		"skill_choices":  []string{"Athletics", "Basketweaving"},
	})
	require.Error(t, err)
	assert.True(t, cberr.IsInvalidSelection(err))

	// Nothing from the batch may land
	assert.NotContains(t, b.State().Choices, "Fighting Style")
	assert.NotContains(t, b.State().Choices, "skill_choices")
}

func TestSkillChoiceValidationCoversBothSpellings(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Fighter", 1))

	err := b.ApplyChoice(ctx, "skills", []string{"Arcana"})
	require.Error(t, err, "Arcana is not a Fighter skill option")
	assert.True(t, cberr.IsInvalidSelection(err))

	require.NoError(t, b.ApplyChoice(ctx, "skills", []string{"Athletics", "Perception"}))
	assert.True(t, b.State().HasProficiency(character.ProficiencySkills, "Athletics"))
	assert.True(t, b.State().HasProficiency(character.ProficiencySkills, "Perception"))
}

func TestApplySpeciesTraitChoice(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetSpecies(ctx, "Elf"))
	require.NoError(t, b.ApplyChoice(ctx, "species_trait_Keen Senses", "Perception"))
	s := b.State()

	assert.True(t, s.HasProficiency(character.ProficiencySkills, "Perception"))
	// Species-driven grants carry the species name as provenance
	assert.Equal(t, "Elf", s.ProficiencySources.Skills["Perception"])

	effects := s.EffectsOfType(rulebook.EffectGrantSkillProficiency)
	require.Len(t, effects, 1)
	assert.Equal(t, "Keen Senses: Perception", effects[0].Source)
	assert.Equal(t, "species_choice", effects[0].SourceType)
}

func TestSpeciesTraitChoiceRejectsUnknownOption(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetSpecies(ctx, "Elf"))
	err := b.ApplyChoice(ctx, "species_trait_Keen Senses", "Arcana")
	require.Error(t, err)
	assert.True(t, cberr.IsInvalidSelection(err))
}

func TestApplyDivineOrderChoice(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Cleric", 1))
	require.NoError(t, b.ApplyChoice(ctx, "Divine Order", "Thaumaturge"))
	s := b.State()

	effects := s.EffectsOfType(rulebook.EffectAbilityBonus)
	require.Len(t, effects, 1)
	e := effects[0].Effect
	assert.ElementsMatch(t, []string{"Arcana", "Religion"}, e.Skills)
	require.NotNil(t, e.Value)
	assert.Equal(t, "wisdom", e.Value.AbilityRef)
	assert.Equal(t, 1, e.Minimum)
}

func TestProtectorGrantsProficiencies(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Cleric", 1))
	require.NoError(t, b.ApplyChoice(ctx, "Divine Order", "Protector"))
	s := b.State()

	assert.True(t, s.HasProficiency(character.ProficiencyWeapons, "Martial weapons"))
	assert.True(t, s.HasProficiency(character.ProficiencyArmor, "Heavy Armor"))
	assert.Equal(t, "Protector", s.ProficiencySources.Weapons["Martial weapons"])
}

func TestBonusCantripChoice(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Cleric", 1))
	require.NoError(t, b.ApplyChoices(ctx, map[string]any{
		"Divine Order":              "Thaumaturge",
		"Thaumaturge_bonus_cantrip": []string{"Guidance"},
	}))
	s := b.State()

	require.Contains(t, s.Spells.AlwaysPrepared, "Guidance")
	meta := s.Spells.AlwaysPrepared["Guidance"]
	assert.Equal(t, "Thaumaturge (Cleric)", meta.Source)
	assert.Equal(t, 0, meta.Level)
	assert.True(t, meta.AlwaysPrepared)
}

func TestBonusCantripRejectsUnknownSpell(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Cleric", 1))
	err := b.ApplyChoice(ctx, "Thaumaturge_bonus_cantrip", []string{"Fireball"})
	require.Error(t, err)
	assert.True(t, cberr.IsInvalidSelection(err))
}

func TestSpellSelections(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Cleric", 1))
	require.NoError(t, b.ApplyChoice(ctx, "spell_selections", map[string]any{
		"cantrips": []any{"Guidance", "Sacred Flame"},
		"spells":   []any{"Bless", "Cure Wounds"},
	}))
	s := b.State()

	assert.Contains(t, s.Spells.Cantrips, "Guidance")
	assert.Contains(t, s.Spells.Cantrips, "Sacred Flame")
	assert.Contains(t, s.Spells.Prepared, "Bless")
	assert.Contains(t, s.Spells.Prepared, "Cure Wounds")
}

func TestSpellcastingFeatureListsCantrips(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Cleric", 1))
	require.NoError(t, b.ApplyChoice(ctx, "Spellcasting", []string{"Guidance", "Light", "Sacred Flame"}))

	var spellcasting *character.Feature
	for i, f := range b.State().Features.Class {
		if f.Name == "Spellcasting" {
			spellcasting = &b.State().Features.Class[i]
		}
	}
	require.NotNil(t, spellcasting)
	assert.Contains(t, spellcasting.Description, "Cantrips Known: Guidance, Light, Sacred Flame")
}

func TestWeaponMasterySelections(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetClass(ctx, "Fighter", 1))
	require.NoError(t, b.ApplyChoice(ctx, "weapon_mastery_selections", []string{"Greatsword", "Longbow", "Spear"}))

	s := b.State()
	assert.Equal(t, []string{"Greatsword", "Longbow", "Spear"}, s.WeaponMasteries.Selected)
	assert.Equal(t, 3, s.WeaponMasteries.MaxCount)
	for _, problem := range b.Validate().Errors {
		assert.NotContains(t, problem, "weapon masteries")
	}
}

func TestLanguageChoices(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.SetBackground(ctx, "Sage"))
	require.NoError(t, b.ApplyChoice(ctx, "languages", []string{"Draconic", "Giant"}))
	s := b.State()

	assert.True(t, s.HasProficiency(character.ProficiencyLanguages, "Draconic"))
	assert.True(t, s.HasProficiency(character.ProficiencyLanguages, "Giant"))
	assert.Equal(t, "Choice", s.ProficiencySources.Languages["Draconic"])

	assert.Empty(t, b.Validate().Errors)
	assert.NotContains(t, b.Validate().Warnings, "0 of 2 bonus languages selected")
}

func TestAlignmentAndNameChoices(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t)

	require.NoError(t, b.ApplyChoices(ctx, map[string]any{
		"character_name": "Borin",
		"alignment":      "Neutral Good",
	}))
	assert.Equal(t, "Borin", b.State().Name)
	assert.Equal(t, "Neutral Good", b.State().Alignment)
}
