// Command pokerd runs the table registry behind a websocket listener.
package main

import (
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/config"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/registry"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/transport"
)

var cli struct {
	Config   string `help:"Path to an HCL configuration file." default:""`
	Addr     string `help:"Override the listen address from the config file." default:""`
	LogLevel string `help:"Log level: debug, info, warn, error." default:"info" enum:"debug,info,warn,error"`
}

func main() {
	kong.Parse(&cli, kong.Description("mitsukis-room table server"))

	engineLog := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		engineLog.Fatal("invalid log level", "level", cli.LogLevel, "err", err)
	}
	engineLog.SetLevel(level)

	serverLog := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerologLevel(level))

	cfg := config.DefaultServerConfig()
	if cli.Config != "" {
		cfg, err = config.LoadServerConfig(cli.Config)
		if err != nil {
			engineLog.Fatal("loading configuration", "path", cli.Config, "err", err)
		}
	}
	if cli.Addr != "" {
		cfg.Listen = cli.Addr
	}

	gameCfg, err := cfg.GameConfig()
	if err != nil {
		engineLog.Fatal("invalid configuration", "err", err)
	}

	// The registry needs a Broadcaster before it exists, and the transport
	// server needs a Registry before it exists; wire the transport server
	// first with a nil Registry and fill it in once the registry is built,
	// same two-phase construction its own tests use.
	server := transport.New(nil, serverLog)
	reg := registry.New(gameCfg, quartz.NewReal(), serverLog, server)
	server.SetRegistry(reg)

	engineLog.Info("listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, server); err != nil {
		engineLog.Fatal("server exited", "err", err)
	}
}

func zerologLevel(l log.Level) zerolog.Level {
	switch l {
	case log.DebugLevel:
		return zerolog.DebugLevel
	case log.WarnLevel:
		return zerolog.WarnLevel
	case log.ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
