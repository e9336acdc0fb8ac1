package rulebook

import "context"

//go:generate mockgen -destination=mock/mock_repository.go -package=mockrulebook -source=repository.go

// Repository provides read access to immutable rule records by name.
// Implementations may cache process-wide; records must never be mutated
// after they are returned.
type Repository interface {
	// Species returns the species record for the given name
	Species(ctx context.Context, name string) (*Species, error)

	// Lineage returns the lineage record for the given name
	Lineage(ctx context.Context, name string) (*Lineage, error)

	// Class returns the class record for the given name
	Class(ctx context.Context, name string) (*Class, error)

	// Subclass returns the subclass record for a class
	Subclass(ctx context.Context, className, name string) (*Subclass, error)

	// Background returns the background record for the given name
	Background(ctx context.Context, name string) (*Background, error)

	// SpellList returns the spell list for a class name (e.g. "wizard")
	SpellList(ctx context.Context, listName string) (*SpellList, error)

	// Spell returns a single spell definition by name
	Spell(ctx context.Context, name string) (*Spell, error)

	// OptionList resolves a named option list from an arbitrary rule file,
	// as referenced by external choice sources
	OptionList(ctx context.Context, file, list string) (*OrderedMap[Option], error)
}
