package game

import "time"

// Config is the process-wide configuration surface every table is built
// from. Tables hold an immutable snapshot for the hands they run; nothing
// reaches into global state.
type Config struct {
	MinPlayers int
	MaxPlayers int

	SmallBlind int
	BigBlind   int

	MinBuyIn     int
	MaxBuyIn     int
	DefaultBuyIn int

	TurnTimer       time.Duration
	TimeBankSeconds int

	HandStartDelay time.Duration
	ShowdownDelay  time.Duration

	SitOutAutoRemove time.Duration

	MaxHandHistory int

	EloKFactor float64
	DefaultElo float64
}

// DefaultConfig returns the configuration defaults from the specification's
// configuration table.
func DefaultConfig() Config {
	return Config{
		MinPlayers: 2,
		MaxPlayers: 9,

		SmallBlind: 1,
		BigBlind:   2,

		MinBuyIn:     40,
		MaxBuyIn:     400,
		DefaultBuyIn: 200,

		TurnTimer:       15 * time.Second,
		TimeBankSeconds: 30,

		HandStartDelay: 3 * time.Second,
		ShowdownDelay:  2 * time.Second,

		SitOutAutoRemove: 10 * time.Minute,

		MaxHandHistory: 100,

		EloKFactor: 32,
		DefaultElo: 1000,
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.MinPlayers < 2 || c.MinPlayers > c.MaxPlayers {
		return ErrIllegalStateTransition("min_players must be at least 2 and at most max_players")
	}
	if c.MaxPlayers > MaxSeats {
		return ErrIllegalStateTransition("max_players cannot exceed the seat count")
	}
	if c.SmallBlind <= 0 || c.BigBlind <= c.SmallBlind {
		return ErrIllegalStateTransition("big_blind must be greater than a positive small_blind")
	}
	if c.MinBuyIn <= 0 || c.MaxBuyIn < c.MinBuyIn {
		return ErrIllegalStateTransition("buy-in range is invalid")
	}
	if c.DefaultBuyIn < c.MinBuyIn || c.DefaultBuyIn > c.MaxBuyIn {
		return ErrIllegalStateTransition("default_buy_in must fall within the buy-in range")
	}
	if c.MaxHandHistory < 0 {
		return ErrIllegalStateTransition("max_hand_history cannot be negative")
	}
	return nil
}
