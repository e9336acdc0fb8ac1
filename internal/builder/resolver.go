package builder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// allSkills is the option pool when a class lists "Any" skill
var allSkills = []string{
	"Acrobatics", "Animal Handling", "Arcana", "Athletics", "Deception",
	"History", "Insight", "Intimidation", "Investigation", "Medicine",
	"Nature", "Perception", "Performance", "Persuasion", "Religion",
	"Sleight of Hand", "Stealth", "Survival",
}

// PendingChoices enumerates every decision point the current selections
// open up: the class skill pick, feature choices through the current
// level, species and lineage trait choices, and nested bonus-cantrip
// choices. Option lists that fail to resolve degrade to empty rather than
// failing the enumeration.
func (b *Builder) PendingChoices(ctx context.Context) []rulebook.Choice {
	var choices []rulebook.Choice

	if b.class != nil && b.class.SkillProficienciesCount > 0 && len(b.class.SkillOptions) > 0 {
		options := b.class.SkillOptions
		if len(options) == 1 && options[0] == "Any" {
			options = allSkills
		}
		choices = append(choices, rulebook.Choice{
			Key:         ChoiceSkillChoices,
			Title:       "Skill Proficiencies",
			Description: fmt.Sprintf("Choose %d skill proficiencies from the available options.", b.class.SkillProficienciesCount),
			Options:     options,
			Count:       b.class.SkillProficienciesCount,
			Required:    true,
			Level:       1,
		})
	}

	if b.class != nil {
		choices = append(choices, b.ruleSetChoices(ctx, &b.class.RuleSet, "Class", "")...)
	}
	if b.subclass != nil {
		choices = append(choices, b.ruleSetChoices(ctx, &b.subclass.RuleSet, b.subclass.Name, "subclass_")...)
	}
	if b.species != nil {
		choices = append(choices, b.traitChoices(ctx, b.species.Traits, b.species.Name)...)
	}
	if b.lineage != nil {
		choices = append(choices, b.traitChoices(ctx, b.lineage.Traits, b.lineage.Name)...)
	}

	choices = append(choices, b.nestedCantripChoices(ctx, choices)...)
	return choices
}

// ruleSetChoices collects feature choices from a class or subclass record
// through the current level
func (b *Builder) ruleSetChoices(ctx context.Context, rs *rulebook.RuleSet, sourceName, keyPrefix string) []rulebook.Choice {
	var choices []rulebook.Choice

	for _, levelKey := range rs.FeaturesThroughLevel(b.state.Level) {
		level, _ := strconv.Atoi(levelKey)
		rs.FeaturesByLevel[levelKey].Range(func(featureName string, data rulebook.FeatureData) bool {
			if len(data.Choices) == 0 {
				return true
			}

			// Class records sometimes mention the subclass pick as a
			// feature; the subclass setter owns that decision.
			if keyPrefix == "" && strings.Contains(strings.ToLower(featureName), "subclass") {
				return true
			}

			for idx, spec := range data.Choices {
				key := featureName
				title := fmt.Sprintf("%s (%s, Level %d)", featureName, sourceName, level)
				if len(data.Choices) > 1 {
					suffix := spec.Name
					if suffix == "" {
						suffix = fmt.Sprintf("choice_%d", idx)
					}
					key = featureName + "_" + suffix
					title = fmt.Sprintf("%s - %s (%s, Level %d)", featureName, suffix, sourceName, level)
				}
				key = keyPrefix + key

				options, descriptions := b.resolveChoiceSpec(ctx, spec, data)
				count := spec.Count
				if count == 0 {
					count = 1
				}
				choices = append(choices, rulebook.Choice{
					Key:          key,
					Title:        title,
					Description:  data.Description,
					Options:      options,
					Descriptions: descriptions,
					Count:        count,
					Required:     true,
					Level:        level,
					DependsOn:    spec.Source.DependsOn,
				})
			}
			return true
		})
	}
	return choices
}

// traitChoices collects choices declared by species or lineage traits
func (b *Builder) traitChoices(ctx context.Context, traits *rulebook.OrderedMap[rulebook.FeatureData], sourceName string) []rulebook.Choice {
	var choices []rulebook.Choice
	traits.Range(func(traitName string, data rulebook.FeatureData) bool {
		for _, spec := range data.Choices {
			options, descriptions := b.resolveChoiceSpec(ctx, spec, data)
			count := spec.Count
			if count == 0 {
				count = 1
			}
			choices = append(choices, rulebook.Choice{
				Key:          "species_trait_" + traitName,
				Title:        fmt.Sprintf("%s (%s)", traitName, sourceName),
				Description:  data.Description,
				Options:      options,
				Descriptions: descriptions,
				Count:        count,
				Required:     true,
				Level:        1,
			})
		}
		return true
	})
	return choices
}

// nestedCantripChoices synthesizes bonus-cantrip choices for options that
// carry a grant_cantrip_choice effect, dependent on their parent option
// being picked.
func (b *Builder) nestedCantripChoices(ctx context.Context, existing []rulebook.Choice) []rulebook.Choice {
	if b.class == nil {
		return nil
	}

	present := make(map[string]struct{}, len(existing))
	for _, choice := range existing {
		present[choice.Key] = struct{}{}
	}

	var nested []rulebook.Choice
	for _, listName := range sortedKeys(b.class.Lists) {
		b.class.Lists[listName].Range(func(optionName string, option rulebook.Option) bool {
			for _, effect := range option.Effects {
				if effect.Type != rulebook.EffectGrantCantripChoice {
					continue
				}

				count := effect.Count
				if count == 0 {
					count = 1
				}
				spellList := effect.SpellList
				if spellList == "" {
					spellList = b.class.Name
				}

				key := optionName + "_bonus_cantrip"
				if _, dup := present[key]; dup {
					continue
				}
				present[key] = struct{}{}

				file := "spells/class_lists/" + strings.ToLower(spellList) + ".json"
				options, descriptions := b.externalOptions(ctx, file, "cantrips")

				nested = append(nested, rulebook.Choice{
					Key:            key,
					Title:          fmt.Sprintf("%s - Bonus Cantrip (Level 1)", optionName),
					Description:    fmt.Sprintf("Choose %d additional cantrip from the %s spell list.", count, spellList),
					Options:        options,
					Descriptions:   descriptions,
					Count:          count,
					Required:       true,
					Level:          1,
					DependsOn:      strings.TrimSuffix(listName, "s"),
					DependsOnValue: optionName,
					Nested:         true,
				})
			}
			return true
		})
	}
	return nested
}

// resolveChoiceSpec materializes a choice's option list from its source
func (b *Builder) resolveChoiceSpec(ctx context.Context, spec rulebook.ChoiceSpec, data rulebook.FeatureData) ([]string, map[string]string) {
	switch spec.Source.Type {
	case rulebook.ChoiceSourceInternal:
		list := b.internalList(spec.Source.List, data)
		if list == nil {
			return nil, nil
		}
		return list.Keys(), overrideDescriptions(data, listDescriptions(list))

	case rulebook.ChoiceSourceExternal:
		options, descriptions := b.externalOptions(ctx, spec.Source.File, spec.Source.List)
		return options, overrideDescriptions(data, descriptions)

	case rulebook.ChoiceSourceExternalDynamic:
		depValue := asString(b.state.Choices[spec.Source.DependsOn])
		if depValue == "" || spec.Source.FilePattern == "" {
			return nil, nil
		}
		file := strings.ReplaceAll(spec.Source.FilePattern, "{"+spec.Source.DependsOn+"}", strings.ToLower(depValue))
		options, descriptions := b.externalOptions(ctx, file, spec.Source.List)
		return options, overrideDescriptions(data, descriptions)

	case rulebook.ChoiceSourceFixedList:
		return spec.Source.Options, overrideDescriptions(data, nil)

	default:
		return nil, nil
	}
}

// internalList finds a named option list: subclass record first, then
// class, then the feature's own embedded lists
func (b *Builder) internalList(name string, data rulebook.FeatureData) *rulebook.OrderedMap[rulebook.Option] {
	if b.subclass != nil {
		if list, ok := b.subclass.List(name); ok {
			return list
		}
	}
	if b.class != nil {
		if list, ok := b.class.List(name); ok {
			return list
		}
	}
	if list, ok := data.Lists[name]; ok {
		return list
	}
	return nil
}

// externalOptions loads a named list from a rule file; failures degrade to
// an empty list
func (b *Builder) externalOptions(ctx context.Context, file, list string) ([]string, map[string]string) {
	if file == "" || list == "" {
		return nil, nil
	}
	options, err := b.repo.OptionList(ctx, file, list)
	if err != nil {
		return nil, nil
	}
	return options.Keys(), listDescriptions(options)
}

func listDescriptions(list *rulebook.OrderedMap[rulebook.Option]) map[string]string {
	descriptions := make(map[string]string)
	list.Range(func(name string, option rulebook.Option) bool {
		if option.Description != "" {
			descriptions[name] = option.Description
		}
		return true
	})
	if len(descriptions) == 0 {
		return nil
	}
	return descriptions
}

// overrideDescriptions prefers a feature's explicit option_descriptions
// block over descriptions pulled from the option list
func overrideDescriptions(data rulebook.FeatureData, resolved map[string]string) map[string]string {
	if len(data.OptionDescriptions) > 0 {
		return data.OptionDescriptions
	}
	return resolved
}

// resolvableOptions returns the option list for a choice key when one of
// the pending choices declares it; empty means unvalidatable.
func (b *Builder) resolvableOptions(ctx context.Context, key string) []string {
	for _, choice := range b.PendingChoices(ctx) {
		if choice.Key == key {
			return choice.Options
		}
		// Skill picks arrive under both spellings
		if choice.Key == ChoiceSkillChoices && key == ChoiceSkills {
			return choice.Options
		}
	}
	return nil
}
