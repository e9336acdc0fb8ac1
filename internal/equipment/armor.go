package equipment

import "strings"

// ArmorCategory groups armor by how it interacts with the wearer's
// Dexterity modifier.
type ArmorCategory string

const (
	ArmorCategoryLight  ArmorCategory = "Light Armor"
	ArmorCategoryMedium ArmorCategory = "Medium Armor"
	ArmorCategoryHeavy  ArmorCategory = "Heavy Armor"
	ArmorCategoryShield ArmorCategory = "Shield"
)

// Armor is a single armor or shield record from the equipment catalog.
// Body armor sets a base AC; shields add a flat bonus instead.
type Armor struct {
	Name                string        `json:"name"`
	Category            ArmorCategory `json:"category"`
	ACBase              int           `json:"ac_base,omitempty"`
	ACBonus             int           `json:"ac_bonus,omitempty"`
	StrengthRequired    int           `json:"str_minimum,omitempty"`
	StealthDisadvantage bool          `json:"stealth_disadvantage,omitempty"`
	ProficiencyRequired string        `json:"proficiency_required,omitempty"`
	Weight              float64       `json:"weight,omitempty"`
	Cost                string        `json:"cost,omitempty"`
}

func (a *Armor) IsShield() bool {
	return a.Category == ArmorCategoryShield || strings.EqualFold(a.Name, "Shield")
}

func (a *Armor) IsLight() bool {
	return a.Category == ArmorCategoryLight
}

func (a *Armor) IsMedium() bool {
	return a.Category == ArmorCategoryMedium
}

func (a *Armor) IsHeavy() bool {
	return a.Category == ArmorCategoryHeavy
}

// DexBonus returns the Dexterity contribution this armor allows for the
// given modifier: Light armor passes it through, Medium caps it at +2,
// Heavy armor and shields allow none.
func (a *Armor) DexBonus(dexMod int) int {
	switch a.Category {
	case ArmorCategoryLight:
		return dexMod
	case ArmorCategoryMedium:
		return min(dexMod, 2)
	default:
		return 0
	}
}
