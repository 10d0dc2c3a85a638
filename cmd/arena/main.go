package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/pokerbots/arena/internal/server"
)

// version is set by ldflags during build
var version = "dev"

const (
	exitBadInput      = 2
	exitNoConnections = 3
)

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`

	Port                    *int `help:"Port to listen on."`
	AcceptanceWindowSeconds *int `help:"Seconds to wait for connections before the game starts."`
	ReadDeadlineMs          *int `help:"Milliseconds a seat gets to answer each turn."`

	NCallBots   *int `help:"Number of in-process bots that always call."`
	NRandomBots *int `help:"Number of in-process bots that act at random."`
	NFailBots   *int `help:"Number of in-process bots that never answer with a valid action."`

	DisableLogging bool   `help:"Suppress all log output."`
	Config         string `type:"path" help:"Path to an HCL config file."`
	Seed           *int64 `help:"Deterministic RNG seed (optional)."`
	Debug          bool   `help:"Enable debug logging."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("arena"),
		kong.Description("Poker arena that plays connected bots against each other until one holds all the money"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	ctx.Exit(run(cli))
}

func run(cli CLI) int {
	cfg, err := loadConfig(cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitBadInput
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitBadInput
	}

	logger := setupLogger(cfg.DisableLogging, cli.Debug)

	var seed int64
	if cli.Seed != nil {
		seed = *cli.Seed
		logger.Info("using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, quartz.NewReal(), rng)
	results, err := srv.Run(ctx)
	switch {
	case errors.Is(err, server.ErrNoConnections):
		logger.Error("no players connected within the acceptance window")
		return exitNoConnections
	case err != nil:
		logger.Error("server failed", "error", err)
		return 1
	}

	fmt.Printf("Game is over! Results are included below:\n%s", results)
	return 0
}

// loadConfig layers explicit CLI flags over the config file over the
// defaults.
func loadConfig(cli CLI) (server.Config, error) {
	cfg := server.DefaultConfig()
	if cli.Config != "" {
		loaded, err := server.LoadConfig(cli.Config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cli.Port != nil {
		cfg.Port = *cli.Port
	}
	if cli.AcceptanceWindowSeconds != nil {
		cfg.AcceptanceWindow = time.Duration(*cli.AcceptanceWindowSeconds) * time.Second
	}
	if cli.ReadDeadlineMs != nil {
		cfg.ReadDeadline = time.Duration(*cli.ReadDeadlineMs) * time.Millisecond
	}
	if cli.NCallBots != nil {
		cfg.CallBots = *cli.NCallBots
	}
	if cli.NRandomBots != nil {
		cfg.RandomBots = *cli.NRandomBots
	}
	if cli.NFailBots != nil {
		cfg.FailBots = *cli.NFailBots
	}
	if cli.DisableLogging {
		cfg.DisableLogging = true
	}
	return cfg, nil
}

func setupLogger(disabled, debug bool) *log.Logger {
	if disabled {
		return log.New(io.Discard)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
