package builder

import (
	"context"

	"github.com/wyrmforge/charbuild/internal/character"
)

// Snapshot serializes the current character state. The snapshot contains
// the derived data as well as the recorded choices, so loading it back
// does not require rule records.
func (b *Builder) Snapshot() ([]byte, error) {
	return b.state.ToJSON()
}

// Restore replaces the builder's state with a previously taken snapshot.
// The snapshot's derived data is used as-is; serializing immediately after
// restoring yields the same bytes. The next mutation re-derives everything
// from the recorded choices.
func (b *Builder) Restore(data []byte) error {
	state, err := character.FromJSON(data)
	if err != nil {
		return err
	}
	b.state = state
	b.species, b.lineage, b.class, b.subclass, b.background = nil, nil, nil, nil, nil
	return nil
}

// Rebuild re-derives the full state from the recorded choices. Useful
// after Restore when the caller wants freshly derived data (e.g. the rule
// records changed).
func (b *Builder) Rebuild(ctx context.Context) error {
	return b.rebuild(ctx)
}

// QuickCreateInput is the minimal set of picks for a playable character
type QuickCreateInput struct {
	Name       string
	Species    string
	Lineage    string
	Class      string
	Level      int
	Background string
}

// QuickCreate builds a character in one call using the class's
// recommended ability assignment and the background's suggested bonuses
func (b *Builder) QuickCreate(ctx context.Context, in QuickCreateInput) error {
	level := in.Level
	if level == 0 {
		level = 1
	}

	choices := map[string]any{
		ChoiceName:             in.Name,
		ChoiceSpecies:          in.Species,
		ChoiceClass:            in.Class,
		ChoiceLevel:            level,
		ChoiceBackground:       in.Background,
		ChoiceAbilityMethod:    "recommended",
		ChoiceBackgroundMethod: "suggested",
	}
	if in.Lineage != "" {
		choices[ChoiceLineage] = in.Lineage
	}
	return b.ApplyChoices(ctx, choices)
}
