package builder

import (
	"fmt"

	"github.com/wyrmforge/charbuild/internal/character"
)

// ValidationResult separates build-blocking problems from advisories
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid reports whether the character has no blocking errors
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks the character for completeness and legality. Nothing is
// enforced on setters; this is the one place the whole build is judged.
func (b *Builder) Validate() ValidationResult {
	var result ValidationResult
	s := b.state

	if s.Species == "" {
		result.Errors = append(result.Errors, "no species selected")
	}
	if s.Class == "" {
		result.Errors = append(result.Errors, "no class selected")
	}
	if s.Background == "" {
		result.Errors = append(result.Errors, "no background selected")
	}
	if !s.Abilities.HasBase() {
		result.Errors = append(result.Errors, "ability scores not assigned")
	}

	if s.Level < 1 || s.Level > 20 {
		result.Errors = append(result.Errors, fmt.Sprintf("level %d is out of range 1-20", s.Level))
	}

	for _, name := range character.AbilityNames {
		score, ok := s.Abilities.Base[name]
		if !ok {
			if s.Abilities.HasBase() {
				result.Errors = append(result.Errors, fmt.Sprintf("missing base score for %s", name))
			}
			continue
		}
		if score < 1 || score > 20 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s score %d is out of range 1-20", name, score))
		}
	}

	if b.class != nil && b.class.SkillProficienciesCount > 0 {
		picked := asStringSlice(s.Choices[ChoiceSkillChoices])
		if len(picked) == 0 {
			picked = asStringSlice(s.Choices[ChoiceSkills])
		}
		if len(picked) < b.class.SkillProficienciesCount {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%d of %d class skill proficiencies selected",
				len(picked), b.class.SkillProficienciesCount))
		}
	}

	if max := s.WeaponMasteries.MaxCount; max > 0 && len(s.WeaponMasteries.Selected) > max {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"%d weapon masteries selected, class allows %d",
			len(s.WeaponMasteries.Selected), max))
	}

	if picks, ok := asInt(s.Choices["language_choices_needed"]); ok && picks > 0 {
		chosen := asStringSlice(s.Choices[ChoiceLanguages])
		if len(chosen) < picks {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%d of %d bonus languages selected", len(chosen), picks))
		}
	}

	if s.Subclass == "" && b.class != nil {
		subclassLevel := b.class.SubclassSelectionLevel
		if subclassLevel == 0 {
			subclassLevel = 3
		}
		if s.Level >= subclassLevel {
			result.Warnings = append(result.Warnings, "subclass selection available but not made")
		}
	}

	return result
}
