package builder

import (
	"context"
	"sort"
	"strings"

	"github.com/wyrmforge/charbuild/internal/character"
	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// ApplyChoice records one choice and re-derives the character. Feature
// choices whose option list resolves are validated against it; a value
// outside the list is rejected before anything is recorded. Keys the
// engine has no option list for are accepted as-is.
func (b *Builder) ApplyChoice(ctx context.Context, key string, value any) error {
	if err := b.validateChoice(ctx, key, value); err != nil {
		return err
	}
	return b.commit(ctx, map[string]any{key: value})
}

// ApplyChoices records a batch of choices and re-derives once
func (b *Builder) ApplyChoices(ctx context.Context, choices map[string]any) error {
	for key, value := range choices {
		if err := b.validateChoice(ctx, key, value); err != nil {
			return err
		}
	}
	return b.commit(ctx, choices)
}

// validateChoice checks a feature-choice value against its resolved option
// list when one resolves. Core selection keys are validated by their
// appliers; unresolvable keys pass through.
func (b *Builder) validateChoice(ctx context.Context, key string, value any) error {
	options := b.resolvableOptions(ctx, key)
	if len(options) == 0 {
		return nil
	}

	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[option] = struct{}{}
	}
	for _, v := range asStringSlice(value) {
		if _, ok := allowed[v]; !ok {
			return cberr.InvalidSelectionf("%q is not a valid option for %q", v, key)
		}
	}
	return nil
}

// applyChoiceValue dispatches one recorded choice during replay
func (b *Builder) applyChoiceValue(ctx context.Context, key string, value any) error {
	switch strings.ToLower(key) {
	case ChoiceSpecies:
		return b.applySpecies(ctx, asString(value))

	case ChoiceLineage:
		return b.applyLineage(ctx, asString(value))

	case ChoiceClass:
		return b.applyClass(ctx, asString(value))

	case ChoiceSubclass:
		return b.applySubclass(ctx, asString(value))

	case ChoiceBackground:
		return b.applyBackground(ctx, asString(value))

	case ChoiceLevel:
		if level, ok := asInt(value); ok {
			b.state.Level = level
		}
		return nil

	case ChoiceCastingAbility:
		// Consumed when the lineage record applies
		return nil

	case ChoiceAbilityScores, ChoiceAbilities:
		if scores := asIntMap(value); len(scores) > 0 {
			b.applyAbilities(scores)
			return nil
		}
		if asString(value) == "standard_array_recommended" && b.class != nil && len(b.class.StandardArrayAssignment) > 0 {
			b.applyAbilities(b.class.StandardArrayAssignment)
		}
		return nil

	case ChoiceAbilityMethod:
		if asString(value) == "recommended" {
			if b.class == nil || len(b.class.StandardArrayAssignment) == 0 {
				return cberr.InvalidArgumentf("no recommended ability assignment available")
			}
			b.applyAbilities(b.class.StandardArrayAssignment)
		}
		return nil

	case ChoiceBackgroundAssign, ChoiceBackgroundBonuses:
		if bonuses := asIntMap(value); len(bonuses) > 0 {
			b.state.Abilities.BackgroundBonus = bonuses
		}
		return nil

	case ChoiceBackgroundMethod:
		if asString(value) == "suggested" && b.background != nil && b.background.AbilityScoreIncrease != nil {
			if suggested := b.background.AbilityScoreIncrease.Suggested; len(suggested) > 0 {
				b.state.Abilities.BackgroundBonus = suggested
			}
		}
		return nil

	case ChoiceSpeciesBonuses:
		if bonuses := asIntMap(value); len(bonuses) > 0 {
			b.state.Abilities.SpeciesBonus = bonuses
		}
		return nil

	case ChoiceLanguages:
		for _, lang := range asStringSlice(value) {
			b.state.AddProficiency(character.ProficiencyLanguages, lang, "Choice")
		}
		return nil

	case ChoiceSkillChoices, ChoiceSkills:
		source := orDefault(b.state.Class, "Class")
		for _, skill := range asStringSlice(value) {
			b.state.AddProficiency(character.ProficiencySkills, skill, source)
		}
		return nil

	case ChoiceSpellcasting:
		// Legacy wizard key; cantrip selection moved post-creation
		return nil

	case ChoiceSpellSelections:
		b.applySpellSelections(value)
		return nil

	case ChoiceMasteryLegacy:
		return nil

	case ChoiceMasterySelections:
		b.state.WeaponMasteries.Selected = asStringSlice(value)
		return nil

	case ChoiceCharacterName, ChoiceName:
		b.state.Name = asString(value)
		return nil

	case ChoiceAlignment:
		b.state.Alignment = asString(value)
		return nil

	case ChoiceEquipment:
		if selections, ok := value.(map[string]any); ok {
			b.processEquipmentSelections(selections)
		}
		return nil
	}

	if strings.Contains(strings.ToLower(key), "_bonus_cantrip") {
		b.applyBonusCantrip(key, value)
		return nil
	}

	// Feature choice: decorate the matching feature and apply the chosen
	// option's effects from whichever record declares it
	b.updateFeatureChoiceDisplay(ctx, key, value)
	if b.class != nil {
		if b.applyRuleSetChoiceEffects(ctx, key, value, &b.class.RuleSet) {
			return nil
		}
	}
	if b.subclass != nil {
		if b.applyRuleSetChoiceEffects(ctx, key, value, &b.subclass.RuleSet) {
			return nil
		}
	}
	if b.species != nil {
		if b.applyTraitChoiceEffects(ctx, key, value, b.species.Traits) {
			return nil
		}
	}
	if b.lineage != nil {
		b.applyTraitChoiceEffects(ctx, key, value, b.lineage.Traits)
	}
	return nil
}

// applySpellSelections restores the user's prepared-spell picks
func (b *Builder) applySpellSelections(value any) {
	selections, ok := value.(map[string]any)
	if !ok {
		return
	}
	book := &b.state.Spells

	for _, cantrip := range asStringSlice(selections["cantrips"]) {
		book.AddCantrip(cantrip, character.SpellMeta{})
	}
	for _, spell := range asStringSlice(selections["spells"]) {
		if book.Prepared == nil {
			book.Prepared = make(map[string]character.SpellMeta)
		}
		book.Prepared[spell] = character.SpellMeta{}
	}
	for _, cantrip := range asStringSlice(selections["background_cantrips"]) {
		book.AddCantrip(cantrip, character.SpellMeta{Level: 0, SourceType: "background"})
	}
	for _, spell := range asStringSlice(selections["background_spells"]) {
		if book.Prepared == nil {
			book.Prepared = make(map[string]character.SpellMeta)
		}
		book.Prepared[spell] = character.SpellMeta{Level: 1, SourceType: "background"}
	}
}

// applyBonusCantrip handles nested bonus-cantrip keys like
// "thaumaturge_bonus_cantrip": the cantrips become always-prepared and the
// parent feature's description gains a bonus-cantrip line.
func (b *Builder) applyBonusCantrip(key string, value any) {
	base, _, _ := strings.Cut(key, "_bonus_cantrip")
	parent := titleCase(strings.ReplaceAll(base, "_", " "))
	className := orDefault(b.state.Class, "Class")

	cantrips := asStringSlice(value)
	for _, cantrip := range cantrips {
		b.state.Spells.AddAlwaysPrepared(cantrip, character.SpellMeta{
			Level:  0,
			Source: parent + " (" + className + ")",
		})
	}
	if len(cantrips) == 0 {
		return
	}

	bonusText := "\n\nBonus Cantrip: " + strings.Join(cantrips, ", ")
	for _, list := range []*[]character.Feature{
		&b.state.Features.Class,
		&b.state.Features.Subclass,
		&b.state.Features.Species,
		&b.state.Features.Lineage,
	} {
		for i := range *list {
			feature := &(*list)[i]
			if strings.Contains(feature.Name, parent) {
				if !strings.Contains(feature.Description, bonusText) {
					feature.Description += bonusText
				}
				return
			}
		}
	}
}

// updateFeatureChoiceDisplay renames a feature to include the chosen value
// and swaps in the option-specific description when one is declared
func (b *Builder) updateFeatureChoiceDisplay(ctx context.Context, key string, value any) {
	chosen := asString(value)
	if chosen == "" {
		return
	}

	base := strings.TrimPrefix(key, "species_trait_")
	variants := []string{
		base,
		titleCase(strings.ReplaceAll(base, "_", " ")),
		strings.ReplaceAll(base, "_", " "),
		key,
		titleCase(strings.ReplaceAll(key, "_", " ")),
		strings.ReplaceAll(key, "_", " "),
	}

	description, scaling := b.findChoiceOptionDetail(ctx, variants, chosen)

	for _, list := range []*[]character.Feature{
		&b.state.Features.Class,
		&b.state.Features.Subclass,
		&b.state.Features.Species,
		&b.state.Features.Lineage,
		&b.state.Features.Background,
		&b.state.Features.Feats,
	} {
		for i := range *list {
			feature := &(*list)[i]
			for _, variant := range variants {
				if feature.Name != variant && !strings.HasPrefix(feature.Name, variant+":") {
					continue
				}
				name := variant
				if feature.Name != variant {
					name, _, _ = strings.Cut(feature.Name, ":")
				}
				feature.Name = name + ": " + joinChoiceValue(value)
				if description != "" {
					if len(scaling) > 0 {
						description = applyScaling(description, scaling, b.state.Level)
					}
					feature.Description = description
				}
				return
			}
		}
	}
}

// findChoiceOptionDetail looks up the chosen option's description and
// scaling: first through feature-declared external sources, then through
// the record's internal option lists.
func (b *Builder) findChoiceOptionDetail(ctx context.Context, featureVariants []string, chosen string) (string, rulebook.Scaling) {
	for _, rs := range b.activeRuleSets() {
		for _, levelKey := range sortedKeys(rs.FeaturesByLevel) {
			var foundDesc string
			var foundScaling rulebook.Scaling
			rs.FeaturesByLevel[levelKey].Range(func(name string, data rulebook.FeatureData) bool {
				if !contains(featureVariants, name) || len(data.Choices) == 0 {
					return true
				}
				src := data.Choices[0].Source
				if src.Type != rulebook.ChoiceSourceExternal || src.File == "" || src.List == "" {
					return true
				}
				list, err := b.repo.OptionList(ctx, src.File, src.List)
				if err != nil {
					return true
				}
				if option, ok := list.Get(chosen); ok {
					foundDesc = option.Description
					foundScaling = option.Scaling
					return false
				}
				return true
			})
			if foundDesc != "" {
				return foundDesc, foundScaling
			}
		}
	}

	for _, rs := range b.activeRuleSets() {
		if found, ok := rs.FindOption(chosen); ok {
			return found.Option.Description, found.Option.Scaling
		}
	}
	return "", nil
}

func (b *Builder) activeRuleSets() []*rulebook.RuleSet {
	var sets []*rulebook.RuleSet
	if b.class != nil {
		sets = append(sets, &b.class.RuleSet)
	}
	if b.subclass != nil {
		sets = append(sets, &b.subclass.RuleSet)
	}
	return sets
}

// applyRuleSetChoiceEffects applies the effects of a chosen class or
// subclass option. It first honors a feature-declared external source,
// then falls back to the record's option index. Reports whether effects
// were applied.
func (b *Builder) applyRuleSetChoiceEffects(ctx context.Context, key string, value any, rs *rulebook.RuleSet) bool {
	chosen := asString(value)
	if chosen == "" {
		return false
	}

	for _, levelKey := range sortedKeys(rs.FeaturesByLevel) {
		applied := false
		rs.FeaturesByLevel[levelKey].Range(func(name string, data rulebook.FeatureData) bool {
			if name != key || len(data.Choices) == 0 {
				return true
			}
			src := data.Choices[0].Source
			if src.Type != rulebook.ChoiceSourceExternal || src.File == "" || src.List == "" {
				return true
			}
			list, err := b.repo.OptionList(ctx, src.File, src.List)
			if err != nil {
				return true
			}
			option, ok := list.Get(chosen)
			if !ok || len(option.Effects) == 0 {
				return true
			}
			for _, effect := range option.Effects {
				b.applyEffect(ctx, effect, chosen, sourceClassChoice)
			}
			applied = true
			return false
		})
		if applied {
			return true
		}
	}

	if found, ok := rs.FindOption(chosen); ok && len(found.Option.Effects) > 0 {
		for _, effect := range found.Option.Effects {
			b.applyEffect(ctx, effect, chosen, sourceClassChoice)
		}
		return true
	}
	return false
}

// applyTraitChoiceEffects applies a species or lineage trait's
// choice_effects entry for the chosen value
func (b *Builder) applyTraitChoiceEffects(ctx context.Context, key string, value any, traits *rulebook.OrderedMap[rulebook.FeatureData]) bool {
	chosen := asString(value)
	if chosen == "" {
		return false
	}

	trait, ok := traits.Get(strings.TrimPrefix(key, "species_trait_"))
	if !ok {
		trait, ok = traits.Get(key)
	}
	if !ok || len(trait.ChoiceEffects) == 0 {
		return false
	}

	effects, ok := trait.ChoiceEffects[chosen]
	if !ok {
		return false
	}
	traitName := strings.TrimPrefix(key, "species_trait_")
	for _, effect := range effects {
		b.applyEffect(ctx, effect, traitName+": "+chosen, sourceSpeciesChoice)
	}
	return true
}

// ---- value coercion helpers ----
// Choice values arrive as decoded JSON (string, float64, []any,
// map[string]any) or as native Go values from setters.

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		var n int
		for _, c := range v {
			if c < '0' || c > '9' {
				return 0, false
			}
			n = n*10 + int(c-'0')
		}
		if v == "" {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func asIntMap(value any) map[string]int {
	switch v := value.(type) {
	case map[string]int:
		return v
	case map[string]any:
		out := make(map[string]int, len(v))
		for key, item := range v {
			if n, ok := asInt(item); ok {
				out[key] = n
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

func intMapToAny(m map[string]int) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
