package main

import (
	"context"
	"sort"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/dice"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// rollAbilityScores rolls 4d6-drop-lowest six times and assigns the
// results along the class's recommended priorities, highest first.
func rollAbilityScores(ctx context.Context, rules rulebook.Repository, roller dice.Roller, className string) (map[string]int, error) {
	rolled := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		result, err := roller.Roll(4, 6, 0)
		if err != nil {
			return nil, err
		}
		rolled = append(rolled, result.Total-result.Lowest)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rolled)))

	class, err := rules.Class(ctx, className)
	if err != nil {
		return nil, err
	}

	order := append([]string(nil), character.AbilityNames...)
	if len(class.StandardArrayAssignment) > 0 {
		sort.SliceStable(order, func(i, j int) bool {
			return class.StandardArrayAssignment[order[i]] > class.StandardArrayAssignment[order[j]]
		})
	}

	scores := make(map[string]int, len(order))
	for i, ability := range order {
		scores[ability] = rolled[i]
	}
	return scores, nil
}
