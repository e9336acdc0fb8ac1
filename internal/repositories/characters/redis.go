package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/wyrmforge/charbuild/internal/character"
	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/uuid"
)

// Data represents the serialized form of a sheet in Redis. The state
// itself is stored as the JSON produced by character.State.ToJSON, so a
// stored sheet round-trips byte for byte.
type Data struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	State     json.RawMessage `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
	draftTTL      time.Duration
}

// RedisRepoConfig holds the configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
	TimeProvider  TimeProvider
	DraftTTL      time.Duration
}

// NewRedisRepository creates a Redis-backed sheet repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	repo := &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
		draftTTL:      cfg.DraftTTL,
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if repo.timeProvider == nil {
		repo.timeProvider = realClock{}
	}
	if repo.draftTTL == 0 {
		repo.draftTTL = 24 * time.Hour
	}
	return repo
}

// NewRedis creates a sheet repository with default generator, clock and TTL
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// ownerKey generates the Redis key for an owner's sheet index
func (r *redisRepo) ownerKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

// ttlFor returns the expiration for a sheet: drafts expire, finished
// sheets are kept until deleted.
func (r *redisRepo) ttlFor(sheet *Sheet) time.Duration {
	if sheet.Complete() {
		return 0
	}
	return r.draftTTL
}

func (r *redisRepo) marshal(sheet *Sheet) (string, error) {
	stateJSON, err := sheet.State.ToJSON()
	if err != nil {
		return "", fmt.Errorf("failed to serialize character state: %w", err)
	}
	jsonData, err := json.Marshal(Data{
		ID:        sheet.ID,
		OwnerID:   sheet.OwnerID,
		State:     stateJSON,
		CreatedAt: sheet.CreatedAt,
		UpdatedAt: sheet.UpdatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sheet: %w", err)
	}
	return string(jsonData), nil
}

func validateSheet(sheet *Sheet) error {
	if sheet == nil {
		return cberr.InvalidArgument("sheet cannot be nil")
	}
	if sheet.OwnerID == "" {
		return cberr.InvalidArgument("sheet owner ID is required")
	}
	if sheet.State == nil {
		return cberr.InvalidArgument("sheet state is required")
	}
	return nil
}

// Create stores a new sheet
func (r *redisRepo) Create(ctx context.Context, sheet *Sheet) error {
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

	exists, err := r.client.Exists(ctx, r.key(sheet.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check sheet existence: %w", err)
	}
	if exists > 0 {
		return cberr.AlreadyExistsf("character with ID '%s' already exists", sheet.ID).
			WithMeta("character_id", sheet.ID)
	}

	now := r.timeProvider.Now()
	sheet.CreatedAt = now
	sheet.UpdatedAt = now

	jsonData, err := r.marshal(sheet)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(sheet.ID), jsonData, r.ttlFor(sheet))
	pipe.SAdd(ctx, r.ownerKey(sheet.OwnerID), sheet.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	return nil
}

// Get retrieves a sheet by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*Sheet, error) {
	if id == "" {
		return nil, cberr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, cberr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}

	var data Data
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet: %w", unmarshalErr)
	}
	state, err := character.FromJSON(data.State)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize character state: %w", err)
	}

	return &Sheet{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		State:     state,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}, nil
}

// GetByOwner retrieves all sheets for a specific owner. Index entries
// whose draft expired are skipped.
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*Sheet, error) {
	if ownerID == "" {
		return nil, cberr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sheet IDs: %w", err)
	}

	found := make([]*Sheet, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			sheet, err := r.Get(ctx, id)
			if cberr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get sheet %s: %w", id, err)
			}
			found[i] = sheet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sheets := make([]*Sheet, 0, len(found))
	for _, sheet := range found {
		if sheet != nil {
			sheets = append(sheets, sheet)
		}
	}
	return sheets, nil
}

// Update updates an existing sheet
func (r *redisRepo) Update(ctx context.Context, sheet *Sheet) error {
	if err := validateSheet(sheet); err != nil {
		return err
	}
	if sheet.ID == "" {
		return cberr.InvalidArgument("character ID is required")
	}

	existingData, err := r.client.Get(ctx, r.key(sheet.ID)).Result()
	if err == redis.Nil {
		return cberr.NotFoundf("character with ID '%s' not found", sheet.ID).
			WithMeta("character_id", sheet.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to get existing sheet: %w", err)
	}

	var existing Data
	if unmarshalErr := json.Unmarshal([]byte(existingData), &existing); unmarshalErr != nil {
		return fmt.Errorf("failed to unmarshal existing sheet: %w", unmarshalErr)
	}

	sheet.CreatedAt = existing.CreatedAt
	sheet.UpdatedAt = r.timeProvider.Now()

	jsonData, err := r.marshal(sheet)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(sheet.ID), jsonData, r.ttlFor(sheet))
	if existing.OwnerID != sheet.OwnerID {
		pipe.SRem(ctx, r.ownerKey(existing.OwnerID), sheet.ID)
		pipe.SAdd(ctx, r.ownerKey(sheet.OwnerID), sheet.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update sheet: %w", err)
	}
	return nil
}

// Delete removes a sheet and its index entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	sheet, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerKey(sheet.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	return nil
}
