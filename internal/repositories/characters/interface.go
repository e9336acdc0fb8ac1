package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"
	"time"

	"github.com/wyrmforge/charbuild/internal/character"
)

// Sheet couples a character state with its owner and storage bookkeeping.
// In-progress sheets (Step != complete) are stored with a TTL and expire
// if the owner never finishes them.
type Sheet struct {
	ID        string
	OwnerID   string
	State     *character.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Complete reports whether the sheet has finished the creation wizard.
func (s *Sheet) Complete() bool {
	return s.State != nil && s.State.Step == character.StepComplete
}

// Repository defines the interface for character sheet persistence
type Repository interface {
	// Create stores a new sheet, assigning an ID when it has none
	Create(ctx context.Context, sheet *Sheet) error

	// Get retrieves a sheet by ID
	Get(ctx context.Context, id string) (*Sheet, error)

	// GetByOwner retrieves all sheets for a specific owner
	GetByOwner(ctx context.Context, ownerID string) ([]*Sheet, error)

	// Update updates an existing sheet
	Update(ctx context.Context, sheet *Sheet) error

	// Delete removes a sheet
	Delete(ctx context.Context, id string) error
}
