// Package config loads the process-wide configuration surface from an HCL
// file, the same shape the teacher's server config uses: a struct tagged
// with `hcl:"...,block"`/`hcl:"...,attr"`, a package-level default
// constructor, and a Validate pass before anything is wired up.
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/game"
)

// ServerConfig is the root of the HCL document: one `table` block holding
// every key from the specification's configuration table, plus a `listen`
// attribute for the transport layer.
type ServerConfig struct {
	Listen string      `hcl:"listen,optional"`
	Table  TableConfig `hcl:"table,block"`
}

// TableConfig mirrors game.Config field for field, in HCL attribute form so
// a deployment can override any of it without touching code.
type TableConfig struct {
	MinPlayers int `hcl:"min_players,optional"`
	MaxPlayers int `hcl:"max_players,optional"`

	SmallBlind int `hcl:"small_blind,optional"`
	BigBlind   int `hcl:"big_blind,optional"`

	MinBuyIn     int `hcl:"min_buy_in,optional"`
	MaxBuyIn     int `hcl:"max_buy_in,optional"`
	DefaultBuyIn int `hcl:"default_buy_in,optional"`

	TurnTimerMS        int `hcl:"turn_timer_ms,optional"`
	TimeBankSeconds    int `hcl:"time_bank_seconds,optional"`
	HandStartDelayMS   int `hcl:"hand_start_delay_ms,optional"`
	ShowdownDelayMS    int `hcl:"showdown_delay_ms,optional"`
	SitOutAutoRemoveMS int `hcl:"sit_out_auto_remove_ms,optional"`

	MaxHandHistory int `hcl:"max_hand_history,optional"`

	EloKFactor float64 `hcl:"elo_k_factor,optional"`
	DefaultElo float64 `hcl:"default_elo,optional"`
}

// DefaultServerConfig returns the specification's defaults. The `table`
// block is required in an HCL document; one holding only an empty
// `table {}` block decodes to exactly this.
func DefaultServerConfig() ServerConfig {
	d := game.DefaultConfig()
	return ServerConfig{
		Listen: ":4242",
		Table: TableConfig{
			MinPlayers:         d.MinPlayers,
			MaxPlayers:         d.MaxPlayers,
			SmallBlind:         d.SmallBlind,
			BigBlind:           d.BigBlind,
			MinBuyIn:           d.MinBuyIn,
			MaxBuyIn:           d.MaxBuyIn,
			DefaultBuyIn:       d.DefaultBuyIn,
			TurnTimerMS:        int(d.TurnTimer / time.Millisecond),
			TimeBankSeconds:    d.TimeBankSeconds,
			HandStartDelayMS:   int(d.HandStartDelay / time.Millisecond),
			ShowdownDelayMS:    int(d.ShowdownDelay / time.Millisecond),
			SitOutAutoRemoveMS: int(d.SitOutAutoRemove / time.Millisecond),
			MaxHandHistory:     d.MaxHandHistory,
			EloKFactor:         d.EloKFactor,
			DefaultElo:         d.DefaultElo,
		},
	}
}

// LoadServerConfig parses the HCL file at path over the defaults: any
// attribute the file omits keeps its default value.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return ServerConfig{}, fmt.Errorf("parsing %s: %w", path, diags)
	}
	if diags := gohcl.DecodeBody(f.Body, nil, &cfg); diags.HasErrors() {
		return ServerConfig{}, fmt.Errorf("decoding %s: %w", path, diags)
	}
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// Validate checks internal consistency by delegating to game.Config's own
// Validate, after converting units.
func (c ServerConfig) Validate() error {
	_, err := c.GameConfig()
	return err
}

// GameConfig converts the HCL-shaped configuration into the game package's
// Config, validating it in the process.
func (c ServerConfig) GameConfig() (game.Config, error) {
	gc := game.Config{
		MinPlayers:       c.Table.MinPlayers,
		MaxPlayers:       c.Table.MaxPlayers,
		SmallBlind:       c.Table.SmallBlind,
		BigBlind:         c.Table.BigBlind,
		MinBuyIn:         c.Table.MinBuyIn,
		MaxBuyIn:         c.Table.MaxBuyIn,
		DefaultBuyIn:     c.Table.DefaultBuyIn,
		TurnTimer:        time.Duration(c.Table.TurnTimerMS) * time.Millisecond,
		TimeBankSeconds:  c.Table.TimeBankSeconds,
		HandStartDelay:   time.Duration(c.Table.HandStartDelayMS) * time.Millisecond,
		ShowdownDelay:    time.Duration(c.Table.ShowdownDelayMS) * time.Millisecond,
		SitOutAutoRemove: time.Duration(c.Table.SitOutAutoRemoveMS) * time.Millisecond,
		MaxHandHistory:   c.Table.MaxHandHistory,
		EloKFactor:       c.Table.EloKFactor,
		DefaultElo:       c.Table.DefaultElo,
	}
	if err := gc.Validate(); err != nil {
		return game.Config{}, err
	}
	return gc, nil
}
