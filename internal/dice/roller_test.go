package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		result, err := Roll(3, 6, 2)
		require.NoError(t, err)
		assert.Len(t, result.Rolls, 3)
		assert.GreaterOrEqual(t, result.RawTotal, 3)
		assert.LessOrEqual(t, result.RawTotal, 18)
		assert.Equal(t, result.RawTotal+2, result.Total)
	}
}

func TestRollInvalidInput(t *testing.T) {
	_, err := Roll(0, 6, 0)
	assert.Error(t, err)

	_, err = Roll(1, 0, 0)
	assert.Error(t, err)
}

func TestRollString(t *testing.T) {
	result, err := RollString("2d6+3")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 6, result.Sides)
	assert.Equal(t, 3, result.Bonus)

	_, err = RollString("not dice")
	assert.Error(t, err)
}

func TestMockRoller(t *testing.T) {
	roller := NewMockRoller()
	roller.SetRolls([]int{4, 2, 6})

	result, err := roller.Roll(3, 6, 1)
	require.NoError(t, err)
	assert.Equal(t, 13, result.Total)
	assert.Equal(t, []int{4, 2, 6}, result.Rolls)
	assert.Equal(t, 6, result.Highest)
	assert.Equal(t, 2, result.Lowest)

	_, err = roller.Roll(1, 6, 0)
	assert.Error(t, err, "rolls exhausted")
}

func TestMockRollerAdvantage(t *testing.T) {
	roller := NewMockRoller()
	roller.SetRolls([]int{8, 17})

	result, err := roller.RollWithAdvantage(20, 5)
	require.NoError(t, err)
	assert.Equal(t, 22, result.Total)
	assert.False(t, result.IsCrit)

	roller.SetRolls([]int{20, 3})
	result, err = roller.RollWithAdvantage(20, 0)
	require.NoError(t, err)
	assert.True(t, result.IsCrit)
}

func TestMockRollerDisadvantage(t *testing.T) {
	roller := NewMockRoller()
	roller.SetRolls([]int{1, 15})

	result, err := roller.RollWithDisadvantage(20, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.True(t, result.IsFumble)
}
