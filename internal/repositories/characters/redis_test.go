package characters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/wyrmforge/charbuild/internal/character"
	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/repositories/characters/mocks"
	mockuuid "github.com/wyrmforge/charbuild/internal/uuid/mocks"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mock          redismock.ClientMock
	repo          *redisRepo
	mockCtrl      *gomock.Controller
	timeProvider  *mocks.MockTimeProvider
	uuidGenerator *mockuuid.MockGenerator
}

func (s *RedisRepoTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mocks.NewMockTimeProvider(s.mockCtrl)
	s.uuidGenerator = mockuuid.NewMockGenerator(s.mockCtrl)
	s.repo = &redisRepo{
		client:        client,
		uuidGenerator: s.uuidGenerator,
		timeProvider:  s.timeProvider,
		draftTTL:      24 * time.Hour,
	}
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) newDraftSheet() *Sheet {
	state := character.New()
	state.ID = "sheet-1"
	state.Name = "Kithri"
	state.Species = "Elf"
	return &Sheet{OwnerID: "owner-1", State: state}
}

// marshalData builds the exact bytes the repository writes for a sheet.
func (s *RedisRepoTestSuite) marshalData(sheet *Sheet, created, updated time.Time) string {
	stateJSON, err := sheet.State.ToJSON()
	s.Require().NoError(err)

	jsonData, err := json.Marshal(Data{
		ID:        sheet.ID,
		OwnerID:   sheet.OwnerID,
		State:     stateJSON,
		CreatedAt: created,
		UpdatedAt: updated,
	})
	s.Require().NoError(err)
	return string(jsonData)
}

func (s *RedisRepoTestSuite) TestCreateDraft() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.timeProvider.EXPECT().Now().Return(now)

	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"
	expected := s.marshalData(sheet, now, now)

	s.mock.ExpectExists("character:sheet-1").SetVal(0)
	s.mock.ExpectSet("character:sheet-1", expected, 24*time.Hour).SetVal("OK")
	s.mock.ExpectSAdd("owner:owner-1:characters", "sheet-1").SetVal(1)

	err := s.repo.Create(ctx, sheet)
	s.NoError(err)
	s.Equal(now, sheet.CreatedAt)
}

func (s *RedisRepoTestSuite) TestCreateCompleteSheetHasNoExpiry() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.timeProvider.EXPECT().Now().Return(now)

	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"
	sheet.State.Step = character.StepComplete
	expected := s.marshalData(sheet, now, now)

	s.mock.ExpectExists("character:sheet-1").SetVal(0)
	s.mock.ExpectSet("character:sheet-1", expected, 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:owner-1:characters", "sheet-1").SetVal(1)

	s.NoError(s.repo.Create(ctx, sheet))
}

func (s *RedisRepoTestSuite) TestCreateGeneratesID() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.timeProvider.EXPECT().Now().Return(now)
	s.uuidGenerator.EXPECT().New().Return("generated-id")

	sheet := s.newDraftSheet()
	sheet.State.ID = ""

	s.mock.ExpectExists("character:generated-id").SetVal(0)
	s.mock.Regexp().ExpectSet("character:generated-id", `.*"id":"generated-id".*`, 24*time.Hour).SetVal("OK")
	s.mock.ExpectSAdd("owner:owner-1:characters", "generated-id").SetVal(1)

	err := s.repo.Create(ctx, sheet)
	s.NoError(err)
	s.Equal("generated-id", sheet.ID)
	s.Equal("generated-id", sheet.State.ID)
}

func (s *RedisRepoTestSuite) TestCreateAlreadyExists() {
	ctx := context.Background()
	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"

	s.mock.ExpectExists("character:sheet-1").SetVal(1)

	err := s.repo.Create(ctx, sheet)
	s.Error(err)
	s.True(cberr.IsAlreadyExists(err))
}

func (s *RedisRepoTestSuite) TestCreateValidation() {
	ctx := context.Background()

	s.True(cberr.IsInvalidArgument(s.repo.Create(ctx, nil)))
	s.True(cberr.IsInvalidArgument(s.repo.Create(ctx, &Sheet{State: character.New()})))
	s.True(cberr.IsInvalidArgument(s.repo.Create(ctx, &Sheet{OwnerID: "owner-1"})))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"
	stored := s.marshalData(sheet, now, now)

	s.mock.ExpectGet("character:sheet-1").SetVal(stored)

	got, err := s.repo.Get(ctx, "sheet-1")
	s.Require().NoError(err)
	s.Equal("sheet-1", got.ID)
	s.Equal("owner-1", got.OwnerID)
	s.Equal("Kithri", got.State.Name)
	s.Equal("Elf", got.State.Species)
	s.Equal(now, got.CreatedAt)
}

func (s *RedisRepoTestSuite) TestGetNotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("character:missing").RedisNil()

	_, err := s.repo.Get(ctx, "missing")
	s.Error(err)
	s.True(cberr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGetByOwnerSkipsExpiredDrafts() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"
	stored := s.marshalData(sheet, now, now)

	// Sheets load concurrently, so command order is not fixed
	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectSMembers("owner:owner-1:characters").SetVal([]string{"sheet-1", "expired-draft"})
	s.mock.ExpectGet("character:sheet-1").SetVal(stored)
	s.mock.ExpectGet("character:expired-draft").RedisNil()

	sheets, err := s.repo.GetByOwner(ctx, "owner-1")
	s.Require().NoError(err)
	s.Require().Len(sheets, 1)
	s.Equal("sheet-1", sheets[0].ID)
}

func (s *RedisRepoTestSuite) TestUpdatePreservesCreatedAt() {
	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.timeProvider.EXPECT().Now().Return(now)

	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"
	existing := s.marshalData(sheet, created, created)

	sheet.State.Class = "Fighter"
	updated := s.marshalData(sheet, created, now)

	s.mock.ExpectGet("character:sheet-1").SetVal(existing)
	s.mock.ExpectSet("character:sheet-1", updated, 24*time.Hour).SetVal("OK")

	err := s.repo.Update(ctx, sheet)
	s.NoError(err)
	s.Equal(created, sheet.CreatedAt)
	s.Equal(now, sheet.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestUpdateMovesOwnerIndex() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.timeProvider.EXPECT().Now().Return(now)

	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"
	existing := s.marshalData(sheet, now, now)

	sheet.OwnerID = "owner-2"
	updated := s.marshalData(sheet, now, now)

	s.mock.ExpectGet("character:sheet-1").SetVal(existing)
	s.mock.ExpectSet("character:sheet-1", updated, 24*time.Hour).SetVal("OK")
	s.mock.ExpectSRem("owner:owner-1:characters", "sheet-1").SetVal(1)
	s.mock.ExpectSAdd("owner:owner-2:characters", "sheet-1").SetVal(1)

	s.NoError(s.repo.Update(ctx, sheet))
}

func (s *RedisRepoTestSuite) TestUpdateNotFound() {
	ctx := context.Background()
	sheet := s.newDraftSheet()
	sheet.ID = "missing"

	s.mock.ExpectGet("character:missing").RedisNil()

	err := s.repo.Update(ctx, sheet)
	s.Error(err)
	s.True(cberr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"
	stored := s.marshalData(sheet, now, now)

	s.mock.ExpectGet("character:sheet-1").SetVal(stored)
	s.mock.ExpectDel("character:sheet-1").SetVal(1)
	s.mock.ExpectSRem("owner:owner-1:characters", "sheet-1").SetVal(1)

	s.NoError(s.repo.Delete(ctx, "sheet-1"))
}

func (s *RedisRepoTestSuite) TestDeleteNotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("character:missing").RedisNil()

	err := s.repo.Delete(ctx, "missing")
	s.Error(err)
	s.True(cberr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestSetFailurePropagates() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.timeProvider.EXPECT().Now().Return(now)

	sheet := s.newDraftSheet()
	sheet.ID = "sheet-1"
	expected := s.marshalData(sheet, now, now)

	s.mock.ExpectExists("character:sheet-1").SetVal(0)
	s.mock.ExpectSet("character:sheet-1", expected, 24*time.Hour).SetErr(errors.New("redis error"))

	err := s.repo.Create(ctx, sheet)
	s.Error(err)
}
