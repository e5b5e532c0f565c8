package game

import "math"

// EloKFactor and EloDefault mirror the configuration defaults from the
// specification. resolveShowdown takes the K-factor from the table's Config
// rather than from these constants, and NewPlayer takes the starting rating
// as an argument.
const (
	EloKFactor = 32
	EloDefault = 1000
)

// updateElo applies the pairwise rating update for one showdown: every
// contender is matched against every other contender, scoring 1 if it was
// among the winners and 0 otherwise (tied winners each score 1).
func updateElo(contenders []*Player, winners map[*Player]bool, k float64) {
	if len(contenders) < 2 {
		return
	}
	deltas := make(map[*Player]float64, len(contenders))
	for _, pi := range contenders {
		for _, pj := range contenders {
			if pi == pj {
				continue
			}
			expected := 1.0 / (1.0 + math.Pow(10, (pj.Elo-pi.Elo)/400))
			actual := 0.0
			if winners[pi] {
				actual = 1.0
			}
			deltas[pi] += k * (actual - expected)
		}
	}
	for p, d := range deltas {
		p.Elo += d
	}
}
