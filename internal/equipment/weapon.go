// Package equipment defines the weapon and armor catalog records used by
// the derived-stat calculators. Items are data, not behavior: an inventory
// holds every item a character owns, and the calculators enumerate what
// each item could do rather than tracking a single equipped loadout.
package equipment

import "strings"

// WeaponCategory combines simple/martial with melee/ranged,
// e.g. "Martial Melee Weapons".
type WeaponCategory string

const (
	CategorySimpleMelee   WeaponCategory = "Simple Melee Weapons"
	CategorySimpleRanged  WeaponCategory = "Simple Ranged Weapons"
	CategoryMartialMelee  WeaponCategory = "Martial Melee Weapons"
	CategoryMartialRanged WeaponCategory = "Martial Ranged Weapons"
)

// Weapon is a single weapon record from the equipment catalog
type Weapon struct {
	Name                string         `json:"name"`
	Category            WeaponCategory `json:"category"`
	Damage              string         `json:"damage"`
	DamageType          string         `json:"damage_type"`
	Properties          []string       `json:"properties,omitempty"`
	Mastery             string         `json:"mastery,omitempty"`
	Range               string         `json:"range,omitempty"`
	ProficiencyRequired string         `json:"proficiency_required,omitempty"`
	Weight              float64        `json:"weight,omitempty"`
	Cost                string         `json:"cost,omitempty"`
}

// HasProperty reports whether the weapon carries the named property.
// Matching is by prefix so parameterized properties like "Versatile (1d10)"
// and "Thrown (range 20/60)" match their bare names.
func (w *Weapon) HasProperty(prop string) bool {
	for _, p := range w.Properties {
		if strings.EqualFold(p, prop) || strings.HasPrefix(strings.ToLower(p), strings.ToLower(prop)) {
			return true
		}
	}
	return false
}

func (w *Weapon) IsRanged() bool {
	return strings.Contains(string(w.Category), "Ranged")
}

func (w *Weapon) IsMelee() bool {
	return strings.Contains(string(w.Category), "Melee")
}

func (w *Weapon) IsMartial() bool {
	return strings.Contains(string(w.Category), "Martial")
}

func (w *Weapon) IsFinesse() bool {
	return w.HasProperty("Finesse")
}

func (w *Weapon) IsLight() bool {
	return w.HasProperty("Light")
}

func (w *Weapon) IsTwoHanded() bool {
	return w.HasProperty("Two-Handed")
}

func (w *Weapon) IsThrown() bool {
	return w.HasProperty("Thrown")
}

func (w *Weapon) IsVersatile() bool {
	return w.HasProperty("Versatile")
}

// VersatileDamage returns the two-handed damage dice for a versatile
// weapon, extracted from its "Versatile (1d10)" property. Returns ""
// when the weapon is not versatile.
func (w *Weapon) VersatileDamage() string {
	for _, p := range w.Properties {
		if !strings.HasPrefix(strings.ToLower(p), "versatile") {
			continue
		}
		start := strings.Index(p, "(")
		end := strings.Index(p, ")")
		if start >= 0 && end > start {
			return strings.TrimSpace(p[start+1 : end])
		}
	}
	return ""
}
