package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/dice"
	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/repositories/characters"
	mockcharacters "github.com/wyrmforge/charbuild/internal/repositories/characters/mock"
	"github.com/wyrmforge/charbuild/internal/rulebook"
	mockrulebook "github.com/wyrmforge/charbuild/internal/rulebook/mock"
)

func TestRollAbilityScoresFollowsClassPriorities(t *testing.T) {
	ctrl := gomock.NewController(t)
	rules := mockrulebook.NewMockRepository(ctrl)
	rules.EXPECT().Class(gomock.Any(), "Fighter").Return(&rulebook.Class{
		Name: "Fighter",
		StandardArrayAssignment: map[string]int{
			"strength": 15, "constitution": 14, "dexterity": 13,
			"wisdom": 12, "charisma": 10, "intelligence": 8,
		},
	}, nil)

	roller := dice.NewMockRoller()
	roller.SetRolls([]int{
		6, 6, 6, 1, // 18
		3, 3, 3, 3, // 9
		5, 5, 5, 1, // 15
		4, 4, 4, 2, // 12
		2, 2, 2, 1, // 6
		6, 6, 2, 1, // 14
	})

	scores, err := rollAbilityScores(context.Background(), rules, roller, "Fighter")
	require.NoError(t, err)
	require.Len(t, scores, 6)

	// Sorted rolls land on abilities in the class's priority order.
	assert.Equal(t, map[string]int{
		"strength":     18,
		"constitution": 15,
		"dexterity":    14,
		"wisdom":       12,
		"charisma":     9,
		"intelligence": 6,
	}, scores)
}

func TestRollAbilityScoresUnknownClass(t *testing.T) {
	ctrl := gomock.NewController(t)
	rules := mockrulebook.NewMockRepository(ctrl)
	rules.EXPECT().Class(gomock.Any(), "Samurai").Return(nil, cberr.NotFoundf("class %q not found", "Samurai"))

	roller := dice.NewMockRoller()
	roller.SetRolls([]int{
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	})

	_, err := rollAbilityScores(context.Background(), rules, roller, "Samurai")
	assert.True(t, cberr.IsNotFound(err))
}

func TestSaveSheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockcharacters.NewMockRepository(ctrl)
	state := character.New()
	state.Name = "Kithri"

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sheet *characters.Sheet) error {
			assert.Equal(t, "owner-1", sheet.OwnerID)
			assert.Equal(t, "Kithri", sheet.State.Name)
			sheet.ID = "assigned-id"
			return nil
		})

	id, err := saveSheet(context.Background(), repo, "owner-1", state)
	require.NoError(t, err)
	assert.Equal(t, "assigned-id", id)
}

func TestSaveSheetCreateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockcharacters.NewMockRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(cberr.AlreadyExistsf("sheet exists"))

	_, err := saveSheet(context.Background(), repo, "owner-1", character.New())
	assert.True(t, cberr.IsAlreadyExists(err))
}
