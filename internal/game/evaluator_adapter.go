package game

import (
	"github.com/paschalwilson9-ops/mitsukis-room/internal/deck"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/evaluator"
)

// evalResult is the showdown-relevant half of evaluator.Value: the category
// name for history records, plus the raw value for comparison.
type evalResult struct {
	category string
	value    evaluator.Value
}

func evaluateHand(cards []deck.Card) (evalResult, error) {
	v, err := evaluator.Evaluate(cards)
	if err != nil {
		return evalResult{}, err
	}
	return evalResult{category: v.Category.String(), value: v}, nil
}

func compareEval(a, b evalResult) int {
	return evaluator.Compare(a.value, b.value)
}
