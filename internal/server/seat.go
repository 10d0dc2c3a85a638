package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Maximum frame size allowed from a peer. Action frames are tiny.
	maxFrameSize = 8192

	frameBuffer = 16
)

// Seat is one accepted connection at the table. A read pump feeds
// every incoming text frame into Frames; the channel closes when the
// peer goes away.
type Seat struct {
	conn      *websocket.Conn
	frames    chan string
	logger    *log.Logger
	writeMu   sync.Mutex
	closeOnce sync.Once
}

// NewSeat wraps an upgraded connection and starts its read pump.
func NewSeat(conn *websocket.Conn, logger *log.Logger) *Seat {
	s := &Seat{
		conn:   conn,
		frames: make(chan string, frameBuffer),
		logger: logger.WithPrefix("seat").With("remote", conn.RemoteAddr().String()),
	}
	go s.readPump()
	return s
}

// Frames returns the channel of incoming frames. It is closed once
// the connection dies.
func (s *Seat) Frames() <-chan string {
	return s.frames
}

// Send writes one text frame to the peer.
func (s *Seat) Send(payload []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.logger.Debug("write failed", "error", err)
		_ = s.Close()
		return ErrSeatClosed
	}
	return nil
}

// Close tears the connection down. Safe to call more than once; the
// read pump exits and closes Frames.
func (s *Seat) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}

func (s *Seat) readPump() {
	defer close(s.frames)
	defer func() { _ = s.Close() }()

	s.conn.SetReadLimit(maxFrameSize)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read failed", "error", err)
			}
			return
		}
		s.frames <- string(data)
	}
}
