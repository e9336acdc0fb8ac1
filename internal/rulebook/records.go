package rulebook

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ScaleValue is a scaling-table value; rule data writes both numbers and
// dice strings ("1d8"), so it is kept as its textual form.
type ScaleValue string

// UnmarshalJSON accepts a JSON string or number
func (v *ScaleValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = ScaleValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("scaling value must be a string or number, got %s", string(data))
	}
	*v = ScaleValue(n.String())
	return nil
}

// MarshalJSON writes numeric-looking values back as numbers
func (v ScaleValue) MarshalJSON() ([]byte, error) {
	if _, err := strconv.Atoi(string(v)); err == nil {
		return []byte(v), nil
	}
	return json.Marshal(string(v))
}

// ScalingStep is one row of a level-indexed scaling table
type ScalingStep struct {
	MinLevel int        `json:"min_level"`
	Value    ScaleValue `json:"value"`
}

// Scaling maps a description placeholder name to its per-level values
type Scaling map[string][]ScalingStep

// Option is one selectable entry in an option list, carrying the effects
// applied when the player picks it. Plain-string options decode into the
// description alone.
type Option struct {
	Description string   `json:"description,omitempty"`
	Effects     []Effect `json:"effects,omitempty"`
	Scaling     Scaling  `json:"scaling,omitempty"`
}

// UnmarshalJSON accepts a bare string or an object
func (o *Option) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = Option{Description: s}
		return nil
	}

	type optionAlias Option
	var alias optionAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*o = Option(alias)
	return nil
}

// FeatureData is the body of one feature or trait entry. A bare string in
// rule data is just the description.
type FeatureData struct {
	Description        string              `json:"description,omitempty"`
	Effects            []Effect            `json:"effects,omitempty"`
	Choices            ChoiceSpecs         `json:"choices,omitempty"`
	Scaling            Scaling             `json:"scaling,omitempty"`
	ChoiceEffects      map[string][]Effect `json:"choice_effects,omitempty"`
	OptionDescriptions map[string]string   `json:"option_descriptions,omitempty"`

	// Lists holds any internal option lists declared alongside the feature
	// (used by internal choice sources scoped to a trait)
	Lists map[string]*OrderedMap[Option] `json:"-"`
}

var featureDataKnownKeys = map[string]struct{}{
	"description":         {},
	"effects":             {},
	"choices":             {},
	"scaling":             {},
	"choice_effects":      {},
	"option_descriptions": {},
}

// UnmarshalJSON accepts a bare string or an object; object keys outside the
// known set that decode as option lists are captured in Lists.
func (f *FeatureData) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FeatureData{Description: s}
		return nil
	}

	type featureAlias FeatureData
	var alias featureAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*f = FeatureData(alias)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if _, known := featureDataKnownKeys[key]; known {
			continue
		}
		list := NewOrderedMap[Option]()
		if err := json.Unmarshal(value, list); err != nil {
			continue
		}
		if list.Len() > 0 {
			if f.Lists == nil {
				f.Lists = make(map[string]*OrderedMap[Option])
			}
			f.Lists[key] = list
		}
	}
	return nil
}

// IndexedOption locates an option value inside a record: the list that owns
// it and the option body itself.
type IndexedOption struct {
	List   string
	Option Option
}

// RuleSet is the shared shape of class and subclass records: level-gated
// feature blocks plus named option lists, with a reverse index from option
// value to its owning list built once per record at load.
type RuleSet struct {
	FeaturesByLevel map[string]*OrderedMap[FeatureData] `json:"features_by_level,omitempty"`

	// Lists holds the record's named option lists (fighting_styles,
	// divine_orders, ...) keyed by their data name
	Lists map[string]*OrderedMap[Option] `json:"-"`

	optionIndex map[string]IndexedOption
}

// List returns the named option list, if present
func (r *RuleSet) List(name string) (*OrderedMap[Option], bool) {
	if r == nil || r.Lists == nil {
		return nil, false
	}
	list, ok := r.Lists[name]
	return list, ok
}

// BuildIndex builds the reverse option index. Called once after the record
// is decoded; records are immutable afterwards.
func (r *RuleSet) BuildIndex() {
	r.optionIndex = make(map[string]IndexedOption)
	for listName, list := range r.Lists {
		list.Range(func(optionName string, option Option) bool {
			if _, taken := r.optionIndex[optionName]; !taken {
				r.optionIndex[optionName] = IndexedOption{List: listName, Option: option}
			}
			return true
		})
	}
}

// FindOption looks up an option value across every list in the record
func (r *RuleSet) FindOption(value string) (IndexedOption, bool) {
	if r == nil {
		return IndexedOption{}, false
	}
	if r.optionIndex == nil {
		r.BuildIndex()
	}
	found, ok := r.optionIndex[value]
	return found, ok
}

// FeaturesThroughLevel returns level keys 1..level that exist in the record,
// in ascending numeric order.
func (r *RuleSet) FeaturesThroughLevel(level int) []string {
	if r == nil || r.FeaturesByLevel == nil {
		return nil
	}
	var keys []string
	for lvl := 1; lvl <= level; lvl++ {
		key := strconv.Itoa(lvl)
		if _, ok := r.FeaturesByLevel[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// captureLists pulls option lists out of a record's unclaimed top-level keys
func captureLists(data []byte, claimed map[string]struct{}) map[string]*OrderedMap[Option] {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var lists map[string]*OrderedMap[Option]
	for key, value := range raw {
		if _, known := claimed[key]; known {
			continue
		}
		list := NewOrderedMap[Option]()
		if err := json.Unmarshal(value, list); err != nil {
			continue
		}
		if list.Len() == 0 {
			continue
		}
		if lists == nil {
			lists = make(map[string]*OrderedMap[Option])
		}
		lists[key] = list
	}
	return lists
}

// Class is a class record
type Class struct {
	RuleSet

	Name                     string         `json:"name"`
	HitDie                   int            `json:"hit_die"`
	SubclassSelectionLevel   int            `json:"subclass_selection_level,omitempty"`
	SavingThrowProficiencies []string       `json:"saving_throw_proficiencies,omitempty"`
	ArmorProficiencies       []string       `json:"armor_proficiencies,omitempty"`
	WeaponProficiencies      []string       `json:"weapon_proficiencies,omitempty"`
	SkillOptions             []string       `json:"skill_options,omitempty"`
	SkillProficienciesCount  int            `json:"skill_proficiencies_count,omitempty"`
	SpellcastingAbility      string         `json:"spellcasting_ability,omitempty"`
	SpellcastingType         string         `json:"spellcasting_type,omitempty"`
	RitualCasting            bool           `json:"ritual_casting,omitempty"`
	StandardArrayAssignment  map[string]int `json:"standard_array_assignment,omitempty"`
	WeaponMasterySlots       map[string]int `json:"weapon_mastery_slots,omitempty"`

	StartingEquipment *OrderedMap[EquipmentOption] `json:"starting_equipment,omitempty"`
}

var classKnownKeys = map[string]struct{}{
	"name": {}, "hit_die": {}, "subclass_selection_level": {},
	"saving_throw_proficiencies": {}, "armor_proficiencies": {},
	"weapon_proficiencies": {}, "skill_options": {}, "skill_proficiencies_count": {},
	"spellcasting_ability": {}, "spellcasting_type": {}, "ritual_casting": {},
	"standard_array_assignment": {}, "weapon_mastery_slots": {},
	"features_by_level": {}, "subclasses": {}, "starting_equipment": {},
}

// UnmarshalJSON decodes the typed fields and captures option lists from the
// remaining top-level keys
func (c *Class) UnmarshalJSON(data []byte) error {
	type classAlias Class
	var alias classAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*c = Class(alias)
	c.Lists = captureLists(data, classKnownKeys)
	c.BuildIndex()
	return nil
}

// Subclass is a subclass record
type Subclass struct {
	RuleSet

	Name  string `json:"name"`
	Class string `json:"class,omitempty"`
}

var subclassKnownKeys = map[string]struct{}{
	"name": {}, "class": {}, "features_by_level": {},
}

// UnmarshalJSON decodes the typed fields and captures option lists
func (s *Subclass) UnmarshalJSON(data []byte) error {
	type subclassAlias Subclass
	var alias subclassAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*s = Subclass(alias)
	s.Lists = captureLists(data, subclassKnownKeys)
	s.BuildIndex()
	return nil
}

// Species is a species record
type Species struct {
	Name         string                   `json:"name"`
	Speed        int                      `json:"speed,omitempty"`
	Darkvision   int                      `json:"darkvision,omitempty"`
	Size         string                   `json:"size,omitempty"`
	CreatureType string                   `json:"creature_type,omitempty"`
	Languages    []string                 `json:"languages,omitempty"`
	Traits       *OrderedMap[FeatureData] `json:"traits,omitempty"`
	Lineages     []string                 `json:"lineages,omitempty"`
}

// Lineage is a species sub-variant; its traits override or extend the
// parent species
type Lineage struct {
	Name          string                   `json:"name"`
	ParentSpecies string                   `json:"parent_species,omitempty"`
	Speed         int                      `json:"speed,omitempty"`
	Darkvision    int                      `json:"darkvision,omitempty"`
	Traits        *OrderedMap[FeatureData] `json:"traits,omitempty"`
}

// LanguageGrant is a background's language entry: either a fixed list or a
// count of free picks
type LanguageGrant struct {
	Fixed []string
	Picks int
}

// UnmarshalJSON accepts an array of names or a number of free choices
func (l *LanguageGrant) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*l = LanguageGrant{Fixed: names}
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("languages must be a list or a count, got %s", string(data))
	}
	*l = LanguageGrant{Picks: n}
	return nil
}

// MarshalJSON mirrors the two data forms
func (l LanguageGrant) MarshalJSON() ([]byte, error) {
	if l.Picks > 0 {
		return json.Marshal(l.Picks)
	}
	return json.Marshal(l.Fixed)
}

// AbilityScoreIncrease is a background's +2/+1 allocation block
type AbilityScoreIncrease struct {
	Options   []string       `json:"options,omitempty"`
	Suggested map[string]int `json:"suggested,omitempty"`
}

// Background is a background record
type Background struct {
	Name                 string                       `json:"name"`
	SkillProficiencies   []string                     `json:"skill_proficiencies,omitempty"`
	ToolProficiencies    []string                     `json:"tool_proficiencies,omitempty"`
	Languages            *LanguageGrant               `json:"languages,omitempty"`
	Features             *OrderedMap[FeatureData]     `json:"features,omitempty"`
	Feat                 string                       `json:"feat,omitempty"`
	AbilityScoreIncrease *AbilityScoreIncrease        `json:"ability_score_increase,omitempty"`
	StartingEquipment    *OrderedMap[EquipmentOption] `json:"starting_equipment,omitempty"`
}

// EquipmentOption is one starting-equipment package
type EquipmentOption struct {
	Items []string `json:"items,omitempty"`
	Gold  int      `json:"gold,omitempty"`
}

// Spell is a spell definition
type Spell struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	School      string `json:"school,omitempty"`
	CastingTime string `json:"casting_time,omitempty"`
	Range       string `json:"range,omitempty"`
	Components  string `json:"components,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// SpellList is a per-class spell list file: cantrips plus leveled spells
type SpellList struct {
	Cantrips []string           `json:"cantrips,omitempty"`
	Spells   *OrderedMap[Spell] `json:"spells,omitempty"`
}
