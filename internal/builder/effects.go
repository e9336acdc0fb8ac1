package builder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// sourceKind tags where a feature or effect came from; it drives feature
// categorization, provenance labels, and selective clearing.
type sourceKind string

const (
	sourceSpecies       sourceKind = "species"
	sourceLineage       sourceKind = "lineage"
	sourceClass         sourceKind = "class"
	sourceSubclass      sourceKind = "subclass"
	sourceBackground    sourceKind = "background"
	sourceClassChoice   sourceKind = "class_choice"
	sourceSpeciesChoice sourceKind = "species_choice"
)

// featureList returns the feature category a source writes into
func (b *Builder) featureList(src sourceKind) *[]character.Feature {
	f := &b.state.Features
	switch src {
	case sourceSpecies:
		return &f.Species
	case sourceLineage:
		return &f.Lineage
	case sourceSubclass:
		return &f.Subclass
	case sourceBackground:
		return &f.Background
	default:
		return &f.Class
	}
}

// sourceDisplay maps a source kind to the name shown on the sheet
func (b *Builder) sourceDisplay(src sourceKind, fallback string) string {
	s := b.state
	switch src {
	case sourceClass:
		return orDefault(s.Class, fallback)
	case sourceSubclass:
		return orDefault(s.Subclass, fallback)
	case sourceSpecies, sourceSpeciesChoice:
		return orDefault(s.Species, fallback)
	case sourceLineage:
		return orDefault(s.Lineage, fallback)
	case sourceBackground:
		return orDefault(s.Background, fallback)
	default:
		return fallback
	}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// applyTraits applies every trait in a species or lineage trait block
func (b *Builder) applyTraits(ctx context.Context, traits *rulebook.OrderedMap[rulebook.FeatureData], src sourceKind) {
	traits.Range(func(name string, data rulebook.FeatureData) bool {
		b.applyFeature(ctx, name, data, src, 0)
		return true
	})
}

// applyFeature processes a single feature or trait: scaling substitution,
// choice-placeholder suppression, display-name decoration from made
// choices, and effect application.
func (b *Builder) applyFeature(ctx context.Context, name string, data rulebook.FeatureData, src sourceKind, level int) {
	description := data.Description

	// Scaling placeholders are a class-feature concern; species traits
	// never carry them.
	if src == sourceClass && len(data.Scaling) > 0 {
		description = applyScaling(description, data.Scaling, b.state.Level)
	}

	// Choice placeholders with no real description grant their effects but
	// never appear as sheet features; the choice itself shows up instead.
	if len(data.Choices) > 0 && isPlaceholderDescription(description) {
		for _, effect := range data.Effects {
			b.applyEffect(ctx, effect, name, src)
		}
		return
	}

	// Bare "Choose ..." prompts are wizard text, not features
	if strings.HasPrefix(strings.ToLower(description), "choose") {
		return
	}

	displayName := name
	if len(data.Choices) > 0 {
		if value, ok := b.lookupFeatureChoice(name, data.Choices[0]); ok {
			displayName = name + ": " + joinChoiceValue(value)
			if chosen := b.choiceDescription(ctx, data, data.Choices[0], value); chosen != "" {
				description = chosen
			}
		}
	}

	// The Spellcasting feature lists chosen cantrips inline
	if name == "Spellcasting" {
		if picks := asStringSlice(b.state.Choices["Spellcasting"]); len(picks) > 0 {
			description += "\n\nCantrips Known: " + strings.Join(picks, ", ")
		}
	}

	description += grantedSpellSummary(data.Effects, b.state.Level)

	list := b.featureList(src)
	duplicate := false
	for _, existing := range *list {
		if strings.HasPrefix(existing.Name, name) {
			duplicate = true
			break
		}
	}
	if !duplicate {
		*list = append(*list, character.Feature{
			Name:        displayName,
			Description: description,
			Source:      b.sourceDisplay(src, string(src)),
			Level:       level,
		})
	}

	for _, effect := range data.Effects {
		b.applyEffect(ctx, effect, name, src)
	}
}

// isPlaceholderDescription reports whether a choice-bearing feature has no
// description worth showing
func isPlaceholderDescription(description string) bool {
	return description == "" ||
		len(description) < 20 ||
		strings.HasPrefix(strings.ToLower(description), "choose")
}

// lookupFeatureChoice finds a recorded choice for a feature, trying the
// key spellings the wizard uses
func (b *Builder) lookupFeatureChoice(featureName string, spec rulebook.ChoiceSpec) (any, bool) {
	key := spec.Name
	if key == "" {
		key = underscore(featureName)
	}
	for _, candidate := range []string{
		key,
		featureName,
		underscore(featureName),
		"species_trait_" + featureName,
		"species_trait_" + strings.ReplaceAll(featureName, " ", "_"),
	} {
		if value, ok := b.state.Choices[candidate]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

// choiceDescription resolves the option-specific description for a made
// choice, from the external file or the trait's internal list.
func (b *Builder) choiceDescription(ctx context.Context, data rulebook.FeatureData, spec rulebook.ChoiceSpec, value any) string {
	var list *rulebook.OrderedMap[rulebook.Option]

	switch spec.Source.Type {
	case rulebook.ChoiceSourceExternal:
		if spec.Source.File == "" || spec.Source.List == "" {
			return ""
		}
		loaded, err := b.repo.OptionList(ctx, spec.Source.File, spec.Source.List)
		if err != nil {
			return ""
		}
		list = loaded
	case rulebook.ChoiceSourceInternal:
		internal, ok := data.Lists[spec.Source.List]
		if !ok {
			return ""
		}
		list = internal
	default:
		return ""
	}

	values := asStringSlice(value)
	var descriptions []string
	for _, v := range values {
		if option, ok := list.Get(v); ok && option.Description != "" {
			descriptions = append(descriptions, option.Description)
		}
	}
	return strings.Join(descriptions, "\n\n")
}

// grantedSpellSummary appends the always-prepared spells a feature grants.
// Features granting spells at several levels render a per-level breakdown.
func grantedSpellSummary(effects []rulebook.Effect, level int) string {
	byLevel := map[int][]string{}
	for _, effect := range effects {
		if effect.Type != rulebook.EffectGrantSpell || effect.Spell == "" {
			continue
		}
		minLevel := effect.MinLevel
		if minLevel == 0 {
			minLevel = 1
		}
		byLevel[minLevel] = append(byLevel[minLevel], effect.Spell)
	}
	if len(byLevel) == 0 {
		return ""
	}

	if len(byLevel) == 1 {
		for _, spells := range byLevel {
			return "\n\nSpells Always Prepared: " + strings.Join(spells, ", ")
		}
	}

	levels := make([]int, 0, len(byLevel))
	for l := range byLevel {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var sb strings.Builder
	sb.WriteString("\n\nSpells by Level:")
	for _, l := range levels {
		marker := "(locked)"
		if level >= l {
			marker = "(unlocked)"
		}
		fmt.Fprintf(&sb, "\nLevel %d %s: %s", l, marker, strings.Join(byLevel[l], ", "))
	}
	return sb.String()
}

// applyScaling substitutes {placeholder} variables using the last scaling
// step at or below the current level
func applyScaling(description string, scaling rulebook.Scaling, level int) string {
	for name, steps := range scaling {
		var value string
		found := false
		for _, step := range steps {
			if level >= step.MinLevel {
				value = string(step.Value)
				found = true
			}
		}
		if found {
			description = strings.ReplaceAll(description, "{"+name+"}", value)
		}
	}
	return description
}

// applyEffect applies one effect to the state and logs it with provenance
func (b *Builder) applyEffect(ctx context.Context, effect rulebook.Effect, sourceName string, src sourceKind) {
	s := b.state

	switch effect.Type {
	case rulebook.EffectGrantCantrip:
		if effect.Spell != "" {
			s.Spells.AddAlwaysPrepared(effect.Spell, character.SpellMeta{
				Level:      0,
				Source:     b.sourceDisplay(src, sourceName),
				SourceType: string(src),
			})
		}

	case rulebook.EffectGrantCantripChoice:
		// Resolved when the nested bonus-cantrip choice is applied

	case rulebook.EffectGrantSpell:
		minLevel := effect.MinLevel
		if minLevel == 0 {
			minLevel = 1
		}
		if effect.Spell != "" && s.Level >= minLevel {
			spellLevel := 1
			if def, err := b.repo.Spell(ctx, effect.Spell); err == nil {
				spellLevel = def.Level
			}
			s.Spells.AddAlwaysPrepared(effect.Spell, character.SpellMeta{
				Level:      spellLevel,
				Source:     b.sourceDisplay(src, sourceName),
				SourceType: string(src),
				OncePerDay: src == sourceSpecies || src == sourceLineage,
			})
		}

	case rulebook.EffectGrantWeaponProficiency:
		for _, prof := range effect.Proficiencies {
			s.AddProficiency(character.ProficiencyWeapons, prof, b.grantSource(src, sourceName))
		}

	case rulebook.EffectGrantArmorProficiency:
		for _, prof := range effect.Proficiencies {
			s.AddProficiency(character.ProficiencyArmor, prof, b.grantSource(src, sourceName))
		}

	case rulebook.EffectGrantSkillProficiency:
		for _, skill := range effect.Skills {
			s.AddProficiency(character.ProficiencySkills, skill, b.grantSource(src, sourceName))
		}

	case rulebook.EffectGrantDamageResistance:
		if effect.DamageType != "" && !contains(s.Resistances, effect.DamageType) {
			s.Resistances = append(s.Resistances, effect.DamageType)
		}

	case rulebook.EffectGrantDarkvision:
		r := effect.Range
		if r == 0 {
			r = 60
		}
		if r > s.Darkvision {
			s.Darkvision = r
		}

	case rulebook.EffectIncreaseSpeed:
		s.Speed += effect.FlatValue()

	default:
		// Combat and calculation effects (bonus_hp, bonus_ac, bonus_attack,
		// bonus_damage, ability_bonus, fighting-style modifiers, save
		// advantage) carry no immediate state change; the calculators read
		// them from the effect log.
	}

	s.Effects = append(s.Effects, character.AppliedEffect{
		Type:       effect.Type,
		Source:     sourceName,
		SourceType: string(src),
		Effect:     effect,
	})
}

// grantSource labels proficiency provenance: species-driven grants show the
// species name, everything else the granting feature or choice.
func (b *Builder) grantSource(src sourceKind, sourceName string) string {
	switch src {
	case sourceSpecies, sourceLineage, sourceSpeciesChoice:
		return orDefault(b.state.Species, sourceName)
	default:
		return sourceName
	}
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func underscore(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

func joinChoiceValue(value any) string {
	if items := asStringSlice(value); len(items) > 0 {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%v", value)
}
