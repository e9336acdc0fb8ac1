// Package stats derives presentation-ready numbers from a character
// state: hit points, ability and skill blocks, armor class options, and
// weapon attacks. Everything here is a pure read of the state and the
// equipment catalog; nothing mutates the character.
package stats

// ProficiencyBonus returns the proficiency bonus for a character level
func ProficiencyBonus(level int) int {
	switch {
	case level >= 17:
		return 6
	case level >= 13:
		return 5
	case level >= 9:
		return 4
	case level >= 5:
		return 3
	default:
		return 2
	}
}
