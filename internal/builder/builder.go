// Package builder turns rule records and recorded choices into a complete
// character state. The engine is re-derivation based: every selection is
// recorded in the character's choices_made map, and any mutation replays
// the full choice set against fresh state. Setters and choice application
// are therefore idempotent, and a saved choice map is sufficient to
// reconstruct the whole character.
package builder

import (
	"context"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/equipment"
	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/rulebook"
	"github.com/wyrmforge/charbuild/internal/uuid"
)

// Choice keys with dedicated handling
const (
	ChoiceSpecies           = "species"
	ChoiceLineage           = "lineage"
	ChoiceClass             = "class"
	ChoiceSubclass          = "subclass"
	ChoiceBackground        = "background"
	ChoiceLevel             = "level"
	ChoiceAbilityScores     = "ability_scores"
	ChoiceAbilities         = "abilities"
	ChoiceAbilityMethod     = "ability_scores_method"
	ChoiceBackgroundAssign  = "background_ability_score_assignment"
	ChoiceBackgroundBonuses = "background_bonuses"
	ChoiceBackgroundMethod  = "background_bonuses_method"
	ChoiceSpeciesBonuses    = "species_bonuses"
	ChoiceLanguages         = "languages"
	ChoiceSkillChoices      = "skill_choices"
	ChoiceSkills            = "skills"
	ChoiceSpellcasting      = "spellcasting"
	ChoiceSpellSelections   = "spell_selections"
	ChoiceMasteryLegacy     = "weapon mastery"
	ChoiceMasterySelections = "weapon_mastery_selections"
	ChoiceCharacterName     = "character_name"
	ChoiceName              = "name"
	ChoiceAlignment         = "alignment"
	ChoiceEquipment         = "equipment_selections"
	ChoiceCastingAbility    = "spellcasting_ability"
)

// applyOrder is the dependency-safe replay order for recorded choices.
// Keys not listed are applied afterwards in sorted order.
var applyOrder = []string{
	ChoiceCharacterName,
	ChoiceName,
	ChoiceLevel,
	ChoiceSpecies,
	ChoiceCastingAbility,
	ChoiceLineage,
	ChoiceClass,
	ChoiceSubclass,
	ChoiceBackground,
	ChoiceAbilityMethod,
	ChoiceAbilityScores,
	ChoiceAbilities,
	ChoiceSpeciesBonuses,
	ChoiceBackgroundAssign,
	ChoiceBackgroundMethod,
	ChoiceBackgroundBonuses,
	ChoiceSkillChoices,
	ChoiceSkills,
	ChoiceSpellcasting,
	ChoiceSpellSelections,
	ChoiceMasteryLegacy,
	ChoiceMasterySelections,
	ChoiceAlignment,
}

// Builder owns one character state and derives it from rule records
type Builder struct {
	repo    rulebook.Repository
	catalog *equipment.Catalog
	state   *character.State

	// records for the current selections, reloaded on each rebuild
	species    *rulebook.Species
	lineage    *rulebook.Lineage
	class      *rulebook.Class
	subclass   *rulebook.Subclass
	background *rulebook.Background
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithCatalog sets the equipment catalog used for starting-equipment
// classification
func WithCatalog(catalog *equipment.Catalog) BuilderOption {
	return func(b *Builder) { b.catalog = catalog }
}

// WithState resumes a builder from a previously saved state. The state's
// derived data is trusted as-is; the next mutation re-derives it from the
// recorded choices.
func WithState(state *character.State) BuilderOption {
	return func(b *Builder) { b.state = state }
}

// WithIDGenerator assigns the character ID from the given generator
func WithIDGenerator(gen uuid.Generator) BuilderOption {
	return func(b *Builder) {
		if b.state.ID == "" {
			b.state.ID = gen.New()
		}
	}
}

// New creates a builder over an empty character
func New(repo rulebook.Repository, opts ...BuilderOption) *Builder {
	b := &Builder{
		repo:    repo,
		catalog: equipment.NewStaticCatalog(nil, nil),
		state:   character.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current character state. The builder retains
// ownership; treat the result as read-only.
func (b *Builder) State() *character.State {
	return b.state
}

// commit records a set of choices and re-derives the state. On any
// failure both the derived state and the choice map are rolled back, so
// every mutation is all-or-nothing.
func (b *Builder) commit(ctx context.Context, updates map[string]any) error {
	prior := make(map[string]any, len(updates))
	existed := make(map[string]bool, len(updates))
	for key, value := range updates {
		if old, ok := b.state.Choices[key]; ok {
			prior[key] = old
			existed[key] = true
		}
		b.state.Choices[key] = value
	}

	if err := b.rebuild(ctx); err != nil {
		for key := range updates {
			if existed[key] {
				b.state.Choices[key] = prior[key]
			} else {
				delete(b.state.Choices, key)
			}
		}
		return err
	}
	return nil
}

// SetSpecies selects the character's species. Fails without touching
// state when the species is unknown.
func (b *Builder) SetSpecies(ctx context.Context, name string) error {
	if _, err := b.repo.Species(ctx, name); err != nil {
		return err
	}
	return b.commit(ctx, map[string]any{ChoiceSpecies: name})
}

// SetLineage selects a lineage of the current species. The optional
// spellcasting ability is for lineages that let the player pick one.
func (b *Builder) SetLineage(ctx context.Context, name, spellcastingAbility string) error {
	if b.state.Species == "" {
		return cberr.InvalidArgumentf("species must be selected before a lineage")
	}
	if _, err := b.repo.Lineage(ctx, name); err != nil {
		return err
	}
	updates := map[string]any{ChoiceLineage: name}
	if spellcastingAbility != "" {
		updates[ChoiceCastingAbility] = spellcastingAbility
	}
	return b.commit(ctx, updates)
}

// SetClass selects the character's class and level
func (b *Builder) SetClass(ctx context.Context, name string, level int) error {
	if level < 1 || level > 20 {
		return cberr.InvalidArgumentf("level must be between 1 and 20, got %d", level)
	}
	if _, err := b.repo.Class(ctx, name); err != nil {
		return err
	}
	return b.commit(ctx, map[string]any{ChoiceClass: name, ChoiceLevel: level})
}

// SetSubclass selects a subclass of the current class
func (b *Builder) SetSubclass(ctx context.Context, name string) error {
	if b.state.Class == "" {
		return cberr.InvalidArgumentf("class must be selected before a subclass")
	}
	if _, err := b.repo.Subclass(ctx, b.state.Class, name); err != nil {
		return err
	}
	return b.commit(ctx, map[string]any{ChoiceSubclass: name})
}

// SetBackground selects the character's background
func (b *Builder) SetBackground(ctx context.Context, name string) error {
	if _, err := b.repo.Background(ctx, name); err != nil {
		return err
	}
	return b.commit(ctx, map[string]any{ChoiceBackground: name})
}

// SetAbilities assigns base ability scores with optional species and
// background bonuses
func (b *Builder) SetAbilities(ctx context.Context, base, speciesBonus, backgroundBonus map[string]int) error {
	if len(base) == 0 {
		return cberr.InvalidArgumentf("base ability scores are required")
	}
	updates := map[string]any{ChoiceAbilityScores: intMapToAny(base)}
	if len(speciesBonus) > 0 {
		updates[ChoiceSpeciesBonuses] = intMapToAny(speciesBonus)
	}
	if len(backgroundBonus) > 0 {
		updates[ChoiceBackgroundBonuses] = intMapToAny(backgroundBonus)
	}
	return b.commit(ctx, updates)
}

// rebuild replays the recorded choices against fresh state. On failure the
// previous state is kept, so every mutation is all-or-nothing.
func (b *Builder) rebuild(ctx context.Context) error {
	previous := b.state
	prevRecords := [5]any{b.species, b.lineage, b.class, b.subclass, b.background}

	fresh := character.New()
	fresh.ID = previous.ID
	fresh.Name = previous.Name
	fresh.Alignment = previous.Alignment

	// Replay works on its own copy of the choice map, so a side-write made
	// while applying one choice cannot leak into the previous state if a
	// later choice fails.
	fresh.Choices = make(map[string]any, len(previous.Choices))
	for key, value := range previous.Choices {
		fresh.Choices[key] = value
	}

	b.state = fresh
	b.species, b.lineage, b.class, b.subclass, b.background = nil, nil, nil, nil, nil

	if err := b.replay(ctx); err != nil {
		b.state = previous
		b.species, _ = prevRecords[0].(*rulebook.Species)
		b.lineage, _ = prevRecords[1].(*rulebook.Lineage)
		b.class, _ = prevRecords[2].(*rulebook.Class)
		b.subclass, _ = prevRecords[3].(*rulebook.Subclass)
		b.background, _ = prevRecords[4].(*rulebook.Background)
		return err
	}
	return nil
}

// replay applies every recorded choice in dependency order
func (b *Builder) replay(ctx context.Context) error {
	choices := b.state.Choices

	// An explicit score assignment wins over the method that would
	// generate one.
	_, hasScores := choices[ChoiceAbilityScores]
	_, hasAbilities := choices[ChoiceAbilities]
	skipMethod := hasScores || hasAbilities

	applied := make(map[string]struct{}, len(choices))
	for _, key := range applyOrder {
		value, ok := choices[key]
		if !ok {
			continue
		}
		if key == ChoiceAbilityMethod && skipMethod {
			applied[key] = struct{}{}
			continue
		}
		if err := b.applyChoiceValue(ctx, key, value); err != nil {
			return err
		}
		applied[key] = struct{}{}
	}

	for _, key := range sortedKeys(choices) {
		if _, done := applied[key]; done {
			continue
		}
		if err := b.applyChoiceValue(ctx, key, choices[key]); err != nil {
			return err
		}
	}
	return nil
}
