package config

import "testing"

func TestDefaultServerConfigValidates(t *testing.T) {
	t.Parallel()
	if err := DefaultServerConfig().Validate(); err != nil {
		t.Fatalf("expected the defaults to validate, got %v", err)
	}
}

func TestGameConfigConvertsDurationsFromMilliseconds(t *testing.T) {
	t.Parallel()
	gc, err := DefaultServerConfig().GameConfig()
	if err != nil {
		t.Fatalf("GameConfig: %v", err)
	}
	if gc.TurnTimer.Seconds() != 15 {
		t.Fatalf("expected a 15s turn timer, got %v", gc.TurnTimer)
	}
	if gc.BigBlind != 2 || gc.SmallBlind != 1 {
		t.Fatalf("expected the specification's default blinds, got sb=%d bb=%d", gc.SmallBlind, gc.BigBlind)
	}
}

func TestInvalidBlindsFailValidation(t *testing.T) {
	t.Parallel()
	cfg := DefaultServerConfig()
	cfg.Table.BigBlind = cfg.Table.SmallBlind
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected a big blind equal to the small blind to fail validation")
	}
}
