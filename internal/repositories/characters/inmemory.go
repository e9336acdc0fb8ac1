package characters

import (
	"context"
	"sync"

	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the sheet
// repository. Useful for testing and development. Drafts never expire.
type InMemoryRepository struct {
	mu            sync.RWMutex
	sheets        map[string]*Sheet
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		sheets:        make(map[string]*Sheet),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
		timeProvider:  realClock{},
	}
}

// copySheet clones the stored sheet so callers cannot mutate the
// repository's copy through the returned state.
func copySheet(sheet *Sheet) (*Sheet, error) {
	state, err := sheet.State.Clone()
	if err != nil {
		return nil, err
	}
	clone := *sheet
	clone.State = state
	return &clone, nil
}

// Create stores a new sheet
func (r *InMemoryRepository) Create(ctx context.Context, sheet *Sheet) error {
	if err := validateSheet(sheet); err != nil {
		return err
	}
	if sheet.ID == "" {
		if sheet.State.ID != "" {
			sheet.ID = sheet.State.ID
		} else {
			sheet.ID = r.uuidGenerator.New()
		}
	}
	sheet.State.ID = sheet.ID

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sheets[sheet.ID]; exists {
		return cberr.AlreadyExistsf("character with ID '%s' already exists", sheet.ID).
			WithMeta("character_id", sheet.ID)
	}

	now := r.timeProvider.Now()
	sheet.CreatedAt = now
	sheet.UpdatedAt = now

	stored, err := copySheet(sheet)
	if err != nil {
		return err
	}
	r.sheets[sheet.ID] = stored
	return nil
}

// Get retrieves a sheet by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Sheet, error) {
	if id == "" {
		return nil, cberr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, exists := r.sheets[id]
	if !exists {
		return nil, cberr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return copySheet(sheet)
}

// GetByOwner retrieves all sheets for a specific owner
func (r *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*Sheet, error) {
	if ownerID == "" {
		return nil, cberr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var sheets []*Sheet
	for _, sheet := range r.sheets {
		if sheet.OwnerID != ownerID {
			continue
		}
		clone, err := copySheet(sheet)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, clone)
	}
	return sheets, nil
}

// Update updates an existing sheet
func (r *InMemoryRepository) Update(ctx context.Context, sheet *Sheet) error {
	if err := validateSheet(sheet); err != nil {
		return err
	}
	if sheet.ID == "" {
		return cberr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.sheets[sheet.ID]
	if !exists {
		return cberr.NotFoundf("character with ID '%s' not found", sheet.ID).
			WithMeta("character_id", sheet.ID)
	}

	sheet.CreatedAt = existing.CreatedAt
	sheet.UpdatedAt = r.timeProvider.Now()

	stored, err := copySheet(sheet)
	if err != nil {
		return err
	}
	r.sheets[sheet.ID] = stored
	return nil
}

// Delete removes a sheet
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return cberr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sheets[id]; !exists {
		return cberr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	delete(r.sheets, id)
	return nil
}
