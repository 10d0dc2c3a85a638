package server

import "errors"

var (
	// ErrNoConnections means the acceptance window closed without a
	// single seat being filled, so there is no game to run.
	ErrNoConnections = errors.New("no connections were accepted")

	// ErrBadBotCount means the configured bots alone would overflow
	// the table.
	ErrBadBotCount = errors.New("bot count must leave room at the table")

	// ErrSeatClosed is returned by seat operations after the
	// underlying connection has gone away.
	ErrSeatClosed = errors.New("seat connection is closed")
)
