package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/pokerbots/arena/internal/game"
)

// Config holds everything the server needs to run one game.
type Config struct {
	Port int

	// AcceptanceWindow is how long the server waits for connections
	// before starting the game with whoever showed up.
	AcceptanceWindow time.Duration

	// ReadDeadline is how long a seat gets to answer a turn before the
	// server folds for it.
	ReadDeadline time.Duration

	CallBots   int
	RandomBots int
	FailBots   int

	DisableLogging bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Port:             10100,
		AcceptanceWindow: 30 * time.Second,
		ReadDeadline:     10 * time.Second,
	}
}

// fileConfig is the HCL shape of a config file.
type fileConfig struct {
	Server *struct {
		Port                    int `hcl:"port,optional"`
		AcceptanceWindowSeconds int `hcl:"acceptance_window_seconds,optional"`
		ReadDeadlineMs          int `hcl:"read_deadline_ms,optional"`
	} `hcl:"server,block"`
	Bots *struct {
		Call   int `hcl:"call,optional"`
		Random int `hcl:"random,optional"`
		Fail   int `hcl:"fail,optional"`
	} `hcl:"bots,block"`
	DisableLogging bool `hcl:"disable_logging,optional"`
}

// LoadConfig reads an HCL config file over the defaults. A missing
// file is not an error, it just yields the defaults.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if raw.Server != nil {
		if raw.Server.Port != 0 {
			cfg.Port = raw.Server.Port
		}
		if raw.Server.AcceptanceWindowSeconds != 0 {
			cfg.AcceptanceWindow = time.Duration(raw.Server.AcceptanceWindowSeconds) * time.Second
		}
		if raw.Server.ReadDeadlineMs != 0 {
			cfg.ReadDeadline = time.Duration(raw.Server.ReadDeadlineMs) * time.Millisecond
		}
	}
	if raw.Bots != nil {
		cfg.CallBots = raw.Bots.Call
		cfg.RandomBots = raw.Bots.Random
		cfg.FailBots = raw.Bots.Fail
	}
	cfg.DisableLogging = raw.DisableLogging

	return cfg, nil
}

// Validate rejects configurations that could never produce a game.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.CallBots < 0 || c.RandomBots < 0 || c.FailBots < 0 {
		return fmt.Errorf("bot counts cannot be negative")
	}
	// At least one seat must remain for an external connection.
	if c.CallBots+c.RandomBots+c.FailBots >= game.MaxPlayers {
		return fmt.Errorf("%w: %d bots configured, at most %d allowed",
			ErrBadBotCount, c.CallBots+c.RandomBots+c.FailBots, game.MaxPlayers-1)
	}
	return nil
}

// BotCount is the number of in-process bots the server will spawn.
func (c Config) BotCount() int {
	return c.CallBots + c.RandomBots + c.FailBots
}
