package stats

import (
	"strings"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// skillAbilities fixes each skill to its governing ability
var skillAbilities = []struct {
	Skill   string
	Ability string
}{
	{"Acrobatics", character.AbilityDexterity},
	{"Animal Handling", character.AbilityWisdom},
	{"Arcana", character.AbilityIntelligence},
	{"Athletics", character.AbilityStrength},
	{"Deception", character.AbilityCharisma},
	{"History", character.AbilityIntelligence},
	{"Insight", character.AbilityWisdom},
	{"Intimidation", character.AbilityCharisma},
	{"Investigation", character.AbilityIntelligence},
	{"Medicine", character.AbilityWisdom},
	{"Nature", character.AbilityIntelligence},
	{"Perception", character.AbilityWisdom},
	{"Performance", character.AbilityCharisma},
	{"Persuasion", character.AbilityCharisma},
	{"Religion", character.AbilityIntelligence},
	{"Sleight of Hand", character.AbilityDexterity},
	{"Stealth", character.AbilityDexterity},
	{"Survival", character.AbilityWisdom},
}

// SkillLine is one row of the skill block
type SkillLine struct {
	Name       string `json:"name"`
	Ability    string `json:"ability"`
	Modifier   int    `json:"modifier"`
	Proficient bool   `json:"proficient"`
	Expertise  bool   `json:"expertise,omitempty"`

	// BonusSource names the effect source when an ability_bonus effect
	// contributes to this skill (e.g. a Thaumaturge's Wisdom bonus)
	BonusSource string `json:"bonus_source,omitempty"`
}

// Skills derives the eighteen-skill block. Ability-modifier bonus
// references (e.g. "wisdom_modifier" with a minimum) are resolved here
// against the current scores, never stored.
func Skills(s *character.State) []SkillLine {
	pb := ProficiencyBonus(s.Level)
	expertise := expertiseSkills(s)
	bonusEffects := s.EffectsOfType(rulebook.EffectAbilityBonus)

	lines := make([]SkillLine, 0, len(skillAbilities))
	for _, entry := range skillAbilities {
		line := SkillLine{
			Name:     entry.Skill,
			Ability:  entry.Ability,
			Modifier: s.Abilities.Mod(entry.Ability),
		}

		if hasSkillProficiency(s, entry.Skill) {
			line.Proficient = true
			line.Modifier += pb
			if _, ok := expertise[strings.ToLower(entry.Skill)]; ok {
				line.Expertise = true
				line.Modifier += pb
			}
		}

		for _, applied := range bonusEffects {
			if !matchesSkill(applied.Effect.Skills, entry.Skill) {
				continue
			}
			line.Modifier += resolveBonus(s, applied.Effect)
			line.BonusSource = applied.Source
		}

		lines = append(lines, line)
	}
	return lines
}

// resolveBonus materializes an effect's bonus value: flat values pass
// through, ability references read the current modifier, and the
// effect's minimum floors the result.
func resolveBonus(s *character.State, effect rulebook.Effect) int {
	if effect.Value == nil {
		return 0
	}
	value := effect.Value.Flat
	if effect.Value.IsAbilityRef() {
		value = s.Abilities.Mod(effect.Value.AbilityRef)
	}
	if value < effect.Minimum {
		value = effect.Minimum
	}
	return value
}

// expertiseSkills collects expertise picks from the recorded choices
func expertiseSkills(s *character.State) map[string]struct{} {
	picked := make(map[string]struct{})
	for key, value := range s.Choices {
		if !strings.Contains(strings.ToLower(key), "expertise") {
			continue
		}
		switch v := value.(type) {
		case []string:
			for _, skill := range v {
				picked[strings.ToLower(skill)] = struct{}{}
			}
		case []any:
			for _, item := range v {
				if skill, ok := item.(string); ok {
					picked[strings.ToLower(skill)] = struct{}{}
				}
			}
		case string:
			picked[strings.ToLower(v)] = struct{}{}
		}
	}
	return picked
}

func hasSkillProficiency(s *character.State, skill string) bool {
	for _, prof := range s.Proficiencies.Skills {
		if strings.EqualFold(prof, skill) {
			return true
		}
	}
	return false
}

func matchesSkill(skills []string, skill string) bool {
	for _, candidate := range skills {
		if strings.EqualFold(candidate, skill) {
			return true
		}
	}
	return false
}
