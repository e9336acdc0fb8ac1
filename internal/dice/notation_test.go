package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    Notation
		wantErr bool
	}{
		{name: "plain", expr: "2d6", want: Notation{Count: 2, Sides: 6}},
		{name: "with bonus", expr: "1d8+3", want: Notation{Count: 1, Sides: 8, Bonus: 3}},
		{name: "negative bonus", expr: "1d4-1", want: Notation{Count: 1, Sides: 4, Bonus: -1}},
		{name: "implicit count", expr: "d20", want: Notation{Count: 1, Sides: 20}},
		{name: "spaces tolerated", expr: "2d6 + 3", want: Notation{Count: 2, Sides: 6, Bonus: 3}},
		{name: "empty", expr: "", wantErr: true},
		{name: "no dice", expr: "banana", wantErr: true},
		{name: "zero sides", expr: "1d0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotationString(t *testing.T) {
	assert.Equal(t, "2d6", Notation{Count: 2, Sides: 6}.String())
	assert.Equal(t, "1d8+3", Notation{Count: 1, Sides: 8, Bonus: 3}.String())
	assert.Equal(t, "1d4-1", Notation{Count: 1, Sides: 4, Bonus: -1}.String())
}

func TestAverage(t *testing.T) {
	t.Run("greatsword", func(t *testing.T) {
		assert.InDelta(t, 10.0, Average("2d6", 3, AverageOptions{}), 0.01)
	})

	t.Run("greatsword with reroll", func(t *testing.T) {
		assert.InDelta(t, 11.3, Average("2d6", 3, AverageOptions{RerollLow: true}), 0.01)
	})

	t.Run("crit doubles dice not bonus", func(t *testing.T) {
		// 2d6+3 crit -> 4d6+3 = 17.0
		assert.InDelta(t, 17.0, Average("2d6", 3, AverageOptions{Crit: true}), 0.01)
	})

	t.Run("flat damage passes through", func(t *testing.T) {
		assert.InDelta(t, 4.0, Average("4", 0, AverageOptions{}), 0.01)
	})

	t.Run("malformed expression degrades to bonus", func(t *testing.T) {
		assert.InDelta(t, 2.0, Average("dd", 2, AverageOptions{}), 0.01)
	})
}

func TestAverageRerollPerDie(t *testing.T) {
	// Reroll-1s-and-2s per-die expectations.
	assert.InDelta(t, 4.2, Average("1d6", 0, AverageOptions{RerollLow: true}), 0.01)
	assert.InDelta(t, 5.3, Average("1d8", 0, AverageOptions{RerollLow: true}), 0.01)
}
