package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/equipment"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// ACOption is one wearable combination of armor and shield with its
// derived armor class
type ACOption struct {
	Label     string   `json:"label"`
	AC        int      `json:"ac"`
	Armor     string   `json:"armor,omitempty"`
	Shield    string   `json:"shield,omitempty"`
	Unarmored bool     `json:"unarmored,omitempty"`
	Valid     bool     `json:"valid"`
	Warnings  []string `json:"warnings,omitempty"`
}

// unarmoredDefense describes an Unarmored Defense feature found on the
// sheet: which ability supplements Dexterity and whether a shield keeps
// the benefit.
type unarmoredDefense struct {
	ability  string
	shieldOK bool
}

// ArmorClass derives every AC combination the inventory supports: each
// armor with and without each shield, plus the unarmored options.
// Results are sorted best-first.
func ArmorClass(s *character.State, catalog *equipment.Catalog) []ACOption {
	dexMod := s.Abilities.Mod(character.AbilityDexterity)
	strScore := s.Abilities.Score(character.AbilityStrength)

	flatBonus, armoredBonus := acBonuses(s)
	ud := findUnarmoredDefense(s)

	var options []ACOption

	// Unarmored, with and without each shield
	unarmoredBase := 10 + dexMod + udBonus(s, ud, false)
	options = append(options, ACOption{
		Label:     "Unarmored",
		AC:        unarmoredBase + flatBonus,
		Unarmored: true,
		Valid:     true,
	})
	for _, shield := range s.Inventory().Shields {
		ac := 10 + dexMod + udBonus(s, ud, true) + flatBonus + shieldBonus(catalog, shield.Name)
		option := ACOption{
			Label:     "Unarmored + " + shield.Name,
			AC:        ac,
			Shield:    shield.Name,
			Unarmored: true,
			Valid:     true,
		}
		if !s.HasProficiency(character.ProficiencyArmor, "Shields") {
			option.Valid = false
			option.Warnings = append(option.Warnings, "not proficient with shields")
		}
		options = append(options, option)
	}

	// Each armor, with and without each shield
	for _, owned := range s.Inventory().Armor {
		armor, known := catalog.Armor(owned.Name)
		if !known || armor.IsShield() {
			continue
		}

		base := armor.ACBase + armor.DexBonus(dexMod) + flatBonus + armoredBonus
		valid, warnings := armorFit(s, armor, strScore)

		options = append(options, ACOption{
			Label:    armor.Name,
			AC:       base,
			Armor:    armor.Name,
			Valid:    valid,
			Warnings: warnings,
		})

		for _, shield := range s.Inventory().Shields {
			shielded := ACOption{
				Label:    armor.Name + " + " + shield.Name,
				AC:       base + shieldBonus(catalog, shield.Name),
				Armor:    armor.Name,
				Shield:   shield.Name,
				Valid:    valid,
				Warnings: append([]string(nil), warnings...),
			}
			if !s.HasProficiency(character.ProficiencyArmor, "Shields") {
				shielded.Valid = false
				shielded.Warnings = append(shielded.Warnings, "not proficient with shields")
			}
			options = append(options, shielded)
		}
	}

	for i := range options {
		if options[i].AC < 5 {
			options[i].AC = 5
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		a, b := options[i], options[j]
		if a.AC != b.AC {
			return a.AC > b.AC
		}
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Unarmored && !b.Unarmored
	})
	return options
}

// acBonuses splits bonus_ac effects into unconditional bonuses and ones
// gated on wearing armor (the Defense fighting style)
func acBonuses(s *character.State) (flat, armoredOnly int) {
	for _, applied := range s.EffectsOfType(rulebook.EffectBonusAC) {
		if strings.Contains(strings.ToLower(applied.Effect.Condition), "armor") {
			armoredOnly += applied.Effect.FlatValue()
		} else {
			flat += applied.Effect.FlatValue()
		}
	}
	return flat, armoredOnly
}

// findUnarmoredDefense looks for an Unarmored Defense feature and reads
// its flavor from the description text
func findUnarmoredDefense(s *character.State) *unarmoredDefense {
	for _, feature := range s.Features.All() {
		if !strings.HasPrefix(feature.Name, "Unarmored Defense") {
			continue
		}
		ud := &unarmoredDefense{
			shieldOK: strings.Contains(feature.Description, "use a Shield"),
		}
		switch {
		case strings.Contains(feature.Description, "Constitution"):
			ud.ability = character.AbilityConstitution
		case strings.Contains(feature.Description, "Wisdom"):
			ud.ability = character.AbilityWisdom
		default:
			return nil
		}
		return ud
	}
	return nil
}

// udBonus returns the Unarmored Defense ability contribution, dropped
// when a shield is held and the feature does not allow one
func udBonus(s *character.State, ud *unarmoredDefense, withShield bool) int {
	if ud == nil {
		return 0
	}
	if withShield && !ud.shieldOK {
		return 0
	}
	return s.Abilities.Mod(ud.ability)
}

func shieldBonus(catalog *equipment.Catalog, name string) int {
	if armor, ok := catalog.Armor(name); ok && armor.ACBonus > 0 {
		return armor.ACBonus
	}
	return 2
}

// armorFit checks proficiency and strength requirements for one armor
func armorFit(s *character.State, armor equipment.Armor, strScore int) (bool, []string) {
	valid := true
	var warnings []string

	if armor.ProficiencyRequired != "" && !s.HasProficiency(character.ProficiencyArmor, armor.ProficiencyRequired) {
		valid = false
		warnings = append(warnings, "not proficient with "+strings.ToLower(armor.ProficiencyRequired))
	}
	if armor.StrengthRequired > 0 && strScore < armor.StrengthRequired {
		warnings = append(warnings, fmt.Sprintf("requires Strength %d (speed reduced by 10 feet)", armor.StrengthRequired))
	}
	if armor.StealthDisadvantage {
		warnings = append(warnings, "disadvantage on Stealth checks")
	}
	return valid, warnings
}
