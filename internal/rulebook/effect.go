package rulebook

import (
	"encoding/json"
	"strings"

	cberr "github.com/wyrmforge/charbuild/internal/errors"
)

// EffectType identifies a declarative rule consequence. The set is closed:
// rule data carrying an unknown type is rejected at decode time rather than
// silently ignored when applied.
type EffectType string

const (
	EffectGrantCantrip           EffectType = "grant_cantrip"
	EffectGrantCantripChoice     EffectType = "grant_cantrip_choice"
	EffectGrantSpell             EffectType = "grant_spell"
	EffectGrantWeaponProficiency EffectType = "grant_weapon_proficiency"
	EffectGrantArmorProficiency  EffectType = "grant_armor_proficiency"
	EffectGrantSkillProficiency  EffectType = "grant_skill_proficiency"
	EffectGrantDamageResistance  EffectType = "grant_damage_resistance"
	EffectGrantDarkvision        EffectType = "grant_darkvision"
	EffectIncreaseSpeed          EffectType = "increase_speed"
	EffectAbilityBonus           EffectType = "ability_bonus"
	EffectBonusHP                EffectType = "bonus_hp"
	EffectGrantSaveAdvantage     EffectType = "grant_save_advantage"
	EffectBonusAC                EffectType = "bonus_ac"
	EffectBonusAttack            EffectType = "bonus_attack"
	EffectBonusDamage            EffectType = "bonus_damage"
	EffectGreatWeaponFighting    EffectType = "great_weapon_fighting"
	EffectTwoWeaponFighting      EffectType = "two_weapon_fighting_modifier"
	EffectUnarmedFighting        EffectType = "unarmed_fighting"
)

var knownEffectTypes = map[EffectType]struct{}{
	EffectGrantCantrip:           {},
	EffectGrantCantripChoice:     {},
	EffectGrantSpell:             {},
	EffectGrantWeaponProficiency: {},
	EffectGrantArmorProficiency:  {},
	EffectGrantSkillProficiency:  {},
	EffectGrantDamageResistance:  {},
	EffectGrantDarkvision:        {},
	EffectIncreaseSpeed:          {},
	EffectAbilityBonus:           {},
	EffectBonusHP:                {},
	EffectGrantSaveAdvantage:     {},
	EffectBonusAC:                {},
	EffectBonusAttack:            {},
	EffectBonusDamage:            {},
	EffectGreatWeaponFighting:    {},
	EffectTwoWeaponFighting:      {},
	EffectUnarmedFighting:        {},
}

// IsValid reports whether t is a known effect type
func (t EffectType) IsValid() bool {
	_, ok := knownEffectTypes[t]
	return ok
}

// ScalingKind distinguishes flat HP bonuses from per-level ones
const (
	ScalingFlat     = "flat"
	ScalingPerLevel = "per_level"
)

// BonusValue is either a flat integer or a reference to another ability's
// modifier, written in data as e.g. "wisdom_modifier". The reference form is
// resolved lazily at skill-calculation time against the current scores.
type BonusValue struct {
	Flat       int
	AbilityRef string
}

// IsAbilityRef reports whether the value refers to an ability modifier
func (v BonusValue) IsAbilityRef() bool {
	return v.AbilityRef != ""
}

// UnmarshalJSON accepts either a JSON number or an "<ability>_modifier" string
func (v *BonusValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = BonusValue{Flat: n}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return cberr.InvalidArgumentf("bonus value must be a number or modifier reference, got %s", string(data))
	}
	ability, ok := strings.CutSuffix(s, "_modifier")
	if !ok || ability == "" {
		return cberr.InvalidArgumentf("unrecognized bonus value %q", s)
	}
	*v = BonusValue{AbilityRef: strings.ToLower(ability)}
	return nil
}

// MarshalJSON emits the same shape the data files use
func (v BonusValue) MarshalJSON() ([]byte, error) {
	if v.IsAbilityRef() {
		return json.Marshal(v.AbilityRef + "_modifier")
	}
	return json.Marshal(v.Flat)
}

// Effect is one declarative rule consequence. Fields are a union across the
// effect kinds; only the ones relevant to Type are populated.
type Effect struct {
	Type EffectType `json:"type"`

	// grant_cantrip / grant_spell / grant_cantrip_choice
	Spell              string `json:"spell,omitempty"`
	SpellList          string `json:"spell_list,omitempty"`
	Count              int    `json:"count,omitempty"`
	Level              int    `json:"level,omitempty"`
	MinLevel           int    `json:"min_level,omitempty"`
	CountsAgainstLimit bool   `json:"counts_against_limit,omitempty"`

	// proficiency grants
	Proficiencies []string `json:"proficiencies,omitempty"`
	Skills        []string `json:"skills,omitempty"`

	// grant_damage_resistance
	DamageType string `json:"damage_type,omitempty"`

	// grant_darkvision
	Range int `json:"range,omitempty"`

	// numeric bonuses (increase_speed, bonus_hp, bonus_ac, bonus_attack,
	// bonus_damage, ability_bonus)
	Value   *BonusValue `json:"value,omitempty"`
	Scaling string      `json:"scaling,omitempty"`
	Ability string      `json:"ability,omitempty"`
	Minimum int         `json:"minimum,omitempty"`

	// conditions gating bonus_* effects ("one handed melee weapon",
	// "thrown weapon ranged attack", "while wearing armor")
	Condition      string `json:"condition,omitempty"`
	WeaponProperty string `json:"weapon_property,omitempty"`

	// grant_save_advantage
	Abilities []string `json:"abilities,omitempty"`
	Display   string   `json:"display,omitempty"`
}

// FlatValue returns the flat numeric value of the effect, or 0 when the
// effect carries none or an ability reference instead
func (e Effect) FlatValue() int {
	if e.Value == nil || e.Value.IsAbilityRef() {
		return 0
	}
	return e.Value.Flat
}

type effectAlias Effect

// UnmarshalJSON rejects unknown effect types at decode time
func (e *Effect) UnmarshalJSON(data []byte) error {
	var alias effectAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	if !EffectType(alias.Type).IsValid() {
		return cberr.InvalidArgumentf("unknown effect type %q", alias.Type)
	}
	*e = Effect(alias)
	return nil
}
