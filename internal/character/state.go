// Package character holds the mutable build state for one character.
// The state is plain data: it records identity, selections, granted
// features and effects, and an inventory. All rules logic lives in the
// builder and the stat calculators; nothing here touches rule records.
//
// A State is exclusively owned by one in-flight request or session.
// Callers sharing a state across goroutines must serialize access.
package character

import (
	"encoding/json"

	"github.com/wyrmforge/charbuild/internal/equipment"
	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// Ability names as they appear in rule data and choice payloads
const (
	AbilityStrength     = "strength"
	AbilityDexterity    = "dexterity"
	AbilityConstitution = "constitution"
	AbilityIntelligence = "intelligence"
	AbilityWisdom       = "wisdom"
	AbilityCharisma     = "charisma"
)

// AbilityNames lists the six abilities in standard order
var AbilityNames = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// Modifier converts an ability score to its modifier, rounding down
// for odd scores below 10.
func Modifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// AbilityScores keeps the three layers of a score separate so bonuses can
// be reassigned without losing the base roll. Final scores are always
// derived, never stored.
type AbilityScores struct {
	Base            map[string]int `json:"base,omitempty"`
	SpeciesBonus    map[string]int `json:"species_bonuses,omitempty"`
	BackgroundBonus map[string]int `json:"background_bonuses,omitempty"`
}

// Score returns the final value for one ability
func (a *AbilityScores) Score(name string) int {
	return a.Base[name] + a.SpeciesBonus[name] + a.BackgroundBonus[name]
}

// Mod returns the final modifier for one ability
func (a *AbilityScores) Mod(name string) int {
	return Modifier(a.Score(name))
}

// Final returns all six derived scores
func (a *AbilityScores) Final() map[string]int {
	scores := make(map[string]int, len(AbilityNames))
	for _, name := range AbilityNames {
		scores[name] = a.Score(name)
	}
	return scores
}

// HasBase reports whether base scores have been assigned
func (a *AbilityScores) HasBase() bool {
	return len(a.Base) > 0
}

// Feature is one granted feature or trait as it appears on the sheet
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	Level       int    `json:"level,omitempty"`
}

// FeatureSet groups features by where they came from, in grant order
type FeatureSet struct {
	Class      []Feature `json:"class"`
	Subclass   []Feature `json:"subclass"`
	Species    []Feature `json:"species"`
	Lineage    []Feature `json:"lineage"`
	Background []Feature `json:"background"`
	Feats      []Feature `json:"feats"`
}

// All returns every feature across the six lists, class first
func (f *FeatureSet) All() []Feature {
	var all []Feature
	all = append(all, f.Class...)
	all = append(all, f.Subclass...)
	all = append(all, f.Species...)
	all = append(all, f.Lineage...)
	all = append(all, f.Background...)
	all = append(all, f.Feats...)
	return all
}

// ProficiencyKind names one of the six proficiency sets
type ProficiencyKind string

const (
	ProficiencyArmor        ProficiencyKind = "armor"
	ProficiencyWeapons      ProficiencyKind = "weapons"
	ProficiencyTools        ProficiencyKind = "tools"
	ProficiencySkills       ProficiencyKind = "skills"
	ProficiencyLanguages    ProficiencyKind = "languages"
	ProficiencySavingThrows ProficiencyKind = "saving_throws"
)

// Proficiencies holds the six proficiency sets. Entries stay in grant
// order; the source of each grant lives in ProficiencySources.
type Proficiencies struct {
	Armor        []string `json:"armor"`
	Weapons      []string `json:"weapons"`
	Tools        []string `json:"tools"`
	Skills       []string `json:"skills"`
	Languages    []string `json:"languages"`
	SavingThrows []string `json:"saving_throws"`
}

func (p *Proficiencies) set(kind ProficiencyKind) *[]string {
	switch kind {
	case ProficiencyArmor:
		return &p.Armor
	case ProficiencyWeapons:
		return &p.Weapons
	case ProficiencyTools:
		return &p.Tools
	case ProficiencySkills:
		return &p.Skills
	case ProficiencyLanguages:
		return &p.Languages
	case ProficiencySavingThrows:
		return &p.SavingThrows
	default:
		return nil
	}
}

// List returns the entries of one proficiency set
func (p *Proficiencies) List(kind ProficiencyKind) []string {
	if set := p.set(kind); set != nil {
		return *set
	}
	return nil
}

// ProficiencySources maps each proficiency to the source that granted it,
// keyed the same way as Proficiencies.
type ProficiencySources struct {
	Armor        map[string]string `json:"armor,omitempty"`
	Weapons      map[string]string `json:"weapons,omitempty"`
	Tools        map[string]string `json:"tools,omitempty"`
	Skills       map[string]string `json:"skills,omitempty"`
	Languages    map[string]string `json:"languages,omitempty"`
	SavingThrows map[string]string `json:"saving_throws,omitempty"`
}

func (p *ProficiencySources) table(kind ProficiencyKind) *map[string]string {
	switch kind {
	case ProficiencyArmor:
		return &p.Armor
	case ProficiencyWeapons:
		return &p.Weapons
	case ProficiencyTools:
		return &p.Tools
	case ProficiencySkills:
		return &p.Skills
	case ProficiencyLanguages:
		return &p.Languages
	case ProficiencySavingThrows:
		return &p.SavingThrows
	default:
		return nil
	}
}

// SpellMeta records where a spell came from and how it is prepared
type SpellMeta struct {
	Source         string `json:"source,omitempty"`
	SourceType     string `json:"source_type,omitempty"`
	Level          int    `json:"level,omitempty"`
	AlwaysPrepared bool   `json:"always_prepared,omitempty"`
	OncePerDay     bool   `json:"once_per_day,omitempty"`
}

// Spellbook tracks the character's spells by preparation kind
type Spellbook struct {
	AlwaysPrepared map[string]SpellMeta `json:"always_prepared,omitempty"`
	Cantrips       map[string]SpellMeta `json:"cantrips,omitempty"`
	Prepared       map[string]SpellMeta `json:"prepared,omitempty"`
	Known          map[string]SpellMeta `json:"known,omitempty"`
}

// AddAlwaysPrepared records a spell that is always available
func (s *Spellbook) AddAlwaysPrepared(name string, meta SpellMeta) {
	if s.AlwaysPrepared == nil {
		s.AlwaysPrepared = make(map[string]SpellMeta)
	}
	meta.AlwaysPrepared = true
	s.AlwaysPrepared[name] = meta
}

// AddCantrip records a cantrip
func (s *Spellbook) AddCantrip(name string, meta SpellMeta) {
	if s.Cantrips == nil {
		s.Cantrips = make(map[string]SpellMeta)
	}
	s.Cantrips[name] = meta
}

// RemoveBySourceType drops every spell granted by the given source type,
// used when a class or subclass is swapped out.
func (s *Spellbook) RemoveBySourceType(sourceType string) {
	for _, book := range []map[string]SpellMeta{s.AlwaysPrepared, s.Cantrips, s.Prepared, s.Known} {
		for name, meta := range book {
			if meta.SourceType == sourceType {
				delete(book, name)
			}
		}
	}
}

// AppliedEffect is one effect from rule data, logged with its provenance
// so it can be removed when its source selection changes.
type AppliedEffect struct {
	Type       rulebook.EffectType `json:"type"`
	Source     string              `json:"source"`
	SourceType string              `json:"source_type,omitempty"`
	Effect     rulebook.Effect     `json:"effect"`
}

// WeaponMasteries tracks mastery selections against a class-derived cap.
// Selection only; masteries carry no automatic combat math.
type WeaponMasteries struct {
	Selected  []string `json:"selected,omitempty"`
	Available []string `json:"available,omitempty"`
	MaxCount  int      `json:"max_count,omitempty"`
}

// Step marks how far through the creation wizard this character is
type Step string

const (
	StepSpecies    Step = "species"
	StepLineage    Step = "lineage"
	StepClass      Step = "class"
	StepSubclass   Step = "subclass"
	StepBackground Step = "background"
	StepAbilities  Step = "abilities"
	StepComplete   Step = "complete"
)

// State is the full build state of one character
type State struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Alignment string `json:"alignment,omitempty"`

	Species    string `json:"species,omitempty"`
	Lineage    string `json:"lineage,omitempty"`
	Class      string `json:"class,omitempty"`
	Subclass   string `json:"subclass,omitempty"`
	Background string `json:"background,omitempty"`
	Level      int    `json:"level"`

	// SpellcastingAbility is the caster ability chosen with a spellcasting
	// lineage (e.g. High Elf), not the class's own casting ability.
	SpellcastingAbility string `json:"spellcasting_ability,omitempty"`

	Abilities AbilityScores  `json:"abilities"`
	Features  FeatureSet     `json:"features"`
	Choices   map[string]any `json:"choices_made"`

	Spells          Spellbook       `json:"spells"`
	WeaponMasteries WeaponMasteries `json:"weapon_masteries"`

	Proficiencies      Proficiencies      `json:"proficiencies"`
	ProficiencySources ProficiencySources `json:"proficiency_sources"`

	Speed        int      `json:"speed"`
	Darkvision   int      `json:"darkvision"`
	Size         string   `json:"size,omitempty"`
	CreatureType string   `json:"creature_type,omitempty"`
	Resistances  []string `json:"resistances"`
	Immunities   []string `json:"immunities"`

	Equipment *equipment.Inventory `json:"equipment,omitempty"`

	Effects []AppliedEffect `json:"effects"`

	Step Step `json:"step"`
}

// New creates an empty character at the start of the wizard
func New() *State {
	return &State{
		Level:       1,
		Speed:       30,
		Choices:     make(map[string]any),
		Resistances: []string{},
		Immunities:  []string{},
		Step:        StepSpecies,
	}
}

// AddProficiency adds a proficiency if absent and records its source.
// Returns false when the proficiency was already present.
func (s *State) AddProficiency(kind ProficiencyKind, name, source string) bool {
	set := s.Proficiencies.set(kind)
	if set == nil || name == "" {
		return false
	}
	for _, existing := range *set {
		if existing == name {
			return false
		}
	}
	*set = append(*set, name)

	table := s.ProficiencySources.table(kind)
	if *table == nil {
		*table = make(map[string]string)
	}
	(*table)[name] = source
	return true
}

// HasProficiency reports whether the named proficiency is present
func (s *State) HasProficiency(kind ProficiencyKind, name string) bool {
	for _, existing := range s.Proficiencies.List(kind) {
		if existing == name {
			return true
		}
	}
	return false
}

// EffectsOfType returns all applied effects of one type, in apply order
func (s *State) EffectsOfType(t rulebook.EffectType) []AppliedEffect {
	var matched []AppliedEffect
	for _, e := range s.Effects {
		if e.Type == t {
			matched = append(matched, e)
		}
	}
	return matched
}

// RemoveEffectsBySourceType drops applied effects from the given source
// types, keeping the rest in order.
func (s *State) RemoveEffectsBySourceType(sourceTypes ...string) {
	kept := s.Effects[:0]
	for _, e := range s.Effects {
		drop := false
		for _, st := range sourceTypes {
			if e.SourceType == st {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, e)
		}
	}
	s.Effects = kept
}

// Inventory returns the equipment inventory, creating it on first use
func (s *State) Inventory() *equipment.Inventory {
	if s.Equipment == nil {
		s.Equipment = &equipment.Inventory{}
	}
	return s.Equipment
}

// ToJSON serializes the state. Key order inside maps is sorted by the
// encoder, so serializing the same state twice yields identical bytes.
func (s *State) ToJSON() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, cberr.Wrap(err, "failed to serialize character state")
	}
	return data, nil
}

// FromJSON deserializes a state previously produced by ToJSON
func FromJSON(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, cberr.WrapWithCode(err, cberr.CodeInvalidArgument, "failed to parse character state")
	}
	if s.Choices == nil {
		s.Choices = make(map[string]any)
	}
	return &s, nil
}

// Clone deep-copies the state through its JSON form
func (s *State) Clone() (*State, error) {
	data, err := s.ToJSON()
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}
