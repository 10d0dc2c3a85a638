package server

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pokerbots/arena/internal/bot"
	"github.com/pokerbots/arena/internal/evaluator"
	"github.com/pokerbots/arena/internal/game"
)

// Server runs exactly one game: open the port, wait out the
// acceptance window, seat whoever connected, and drive the table
// until a single player holds all the money.
type Server struct {
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand
}

// New creates a server. The clock is injected so tests can collapse
// the acceptance window and action deadlines.
func New(cfg Config, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("server"),
		clock:  clock,
		rng:    rng,
	}
}

// Run listens on the configured port and plays one game to
// completion, returning the final standings.
func (s *Server) Run(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return "", fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}
	return s.RunListener(ctx, ln)
}

// RunListener runs one game on an already open listener. The listener
// is closed when the game ends.
func (s *Server) RunListener(ctx context.Context, ln net.Listener) (string, error) {
	gameID := uuid.New()
	logger := s.logger.With("game", gameID.String())

	acceptor := NewAcceptor(logger, game.MaxPlayers)
	httpServer := &http.Server{Handler: acceptor}
	go func() { _ = httpServer.Serve(ln) }()
	defer func() { _ = httpServer.Close() }()

	logger.Info("waiting for players",
		"addr", ln.Addr().String(),
		"window", s.cfg.AcceptanceWindow,
		"bots", s.cfg.BotCount())

	bots, botCtx := errgroup.WithContext(ctx)
	s.spawnBots(botCtx, bots, fmt.Sprintf("ws://%s/", ln.Addr().String()))

	seats := acceptor.Collect(ctx, s.clock, s.cfg.AcceptanceWindow, game.MaxPlayers)
	if len(seats) == 0 {
		return "", ErrNoConnections
	}

	table := game.NewTable(len(seats), evaluator.New(), s.rng, logger)
	transport := NewTransport(s.clock, s.cfg.ReadDeadline, logger)

	results := RunGame(table, seats, transport, logger)
	logger.Info("final standings", "results", "\n"+results)

	for _, seat := range seats {
		_ = seat.Close()
	}
	_ = bots.Wait()

	return results, nil
}

// spawnBots launches the configured in-process bots against the
// server's own address. Their goroutines exit when their sockets
// close at the end of the game.
func (s *Server) spawnBots(ctx context.Context, g *errgroup.Group, url string) {
	for i := 0; i < s.cfg.CallBots; i++ {
		g.Go(func() error { return bot.RunCall(ctx, url, s.logger) })
	}
	for i := 0; i < s.cfg.RandomBots; i++ {
		seed := s.rng.Int63()
		g.Go(func() error { return bot.RunRandom(ctx, url, seed, s.logger) })
	}
	for i := 0; i < s.cfg.FailBots; i++ {
		g.Go(func() error { return bot.RunBroken(ctx, url, s.logger) })
	}
}
