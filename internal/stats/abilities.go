package stats

import (
	"strings"

	"github.com/wyrmforge/charbuild/internal/character"
)

// AbilityLine is one row of the ability block: the final score, its
// modifier, and the saving throw derived from it.
type AbilityLine struct {
	Name           string `json:"name"`
	Score          int    `json:"score"`
	Modifier       int    `json:"modifier"`
	Save           int    `json:"save"`
	SaveProficient bool   `json:"save_proficient"`
}

// Abilities derives the six-ability block in standard order
func Abilities(s *character.State) []AbilityLine {
	pb := ProficiencyBonus(s.Level)

	lines := make([]AbilityLine, 0, len(character.AbilityNames))
	for _, name := range character.AbilityNames {
		score := s.Abilities.Score(name)
		mod := character.Modifier(score)

		save := mod
		proficient := hasSaveProficiency(s, name)
		if proficient {
			save += pb
		}

		lines = append(lines, AbilityLine{
			Name:           name,
			Score:          score,
			Modifier:       mod,
			Save:           save,
			SaveProficient: proficient,
		})
	}
	return lines
}

// hasSaveProficiency matches the lowercase ability name against the
// capitalized save entries rule data grants
func hasSaveProficiency(s *character.State, ability string) bool {
	for _, save := range s.Proficiencies.SavingThrows {
		if strings.EqualFold(save, ability) {
			return true
		}
	}
	return false
}
