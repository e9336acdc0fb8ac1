package dice

// randomRoller implements Roller using math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	return Roll(count, sides, bonus)
}

// RollWithAdvantage implements Roller.RollWithAdvantage
func (r *randomRoller) RollWithAdvantage(sides, bonus int) (*RollResult, error) {
	result1, err := Roll(1, sides, 0)
	if err != nil {
		return nil, err
	}

	result2, err := Roll(1, sides, 0)
	if err != nil {
		return nil, err
	}

	roll1 := result1.Rolls[0]
	roll2 := result2.Rolls[0]
	higher := roll1
	if roll2 > roll1 {
		higher = roll2
	}

	result := &RollResult{
		Total:    higher + bonus,
		Rolls:    []int{roll1, roll2},
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
		RawTotal: higher,
		Highest:  higher,
		Lowest:   min(roll1, roll2),
	}

	if sides == 20 {
		result.IsCrit = higher == 20
		result.IsFumble = higher == 1
	}

	return result, nil
}

// RollWithDisadvantage implements Roller.RollWithDisadvantage
func (r *randomRoller) RollWithDisadvantage(sides, bonus int) (*RollResult, error) {
	result1, err := Roll(1, sides, 0)
	if err != nil {
		return nil, err
	}

	result2, err := Roll(1, sides, 0)
	if err != nil {
		return nil, err
	}

	roll1 := result1.Rolls[0]
	roll2 := result2.Rolls[0]
	lower := roll1
	if roll2 < roll1 {
		lower = roll2
	}

	result := &RollResult{
		Total:    lower + bonus,
		Rolls:    []int{roll1, roll2},
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
		RawTotal: lower,
		Highest:  max(roll1, roll2),
		Lowest:   lower,
	}

	if sides == 20 {
		result.IsCrit = lower == 20
		result.IsFumble = lower == 1
	}

	return result, nil
}
