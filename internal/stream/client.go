package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"tile-raycaster/internal/viewer"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = time.Second
	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Frames arriving faster than this are skipped; the next one supersedes them.
	publishInterval = time.Second / 30
	pingInterval    = 500 * time.Millisecond
	// Number of pings to tolerate losing before concluding the peer is gone.
	pongWait = pingInterval * 4
)

var ErrPongDeadlineExceeded = errors.New("client disconnect, pong deadline exceeded")

// keyMessage is what the page sends on keydown and keyup.
type keyMessage struct {
	Key     string `json:"key"`
	Pressed bool   `json:"pressed"`
}

// client is one websocket peer. updates holds at most the latest frame.
type client struct {
	conn    *websocket.Conn
	remote  string
	updates chan []byte
	held    map[viewer.Key]bool
}

// offer replaces any unsent frame with data.
func (c *client) offer(data []byte) {
	select {
	case c.updates <- data:
		return
	default:
	}
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- data:
	default:
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("stream: upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{
		conn:    conn,
		remote:  r.RemoteAddr,
		updates: make(chan []byte, 1),
		held:    make(map[viewer.Key]bool),
	}
	if data := s.Latest(); data != nil {
		c.offer(data)
	}
	s.join(c)
	defer s.leave(c)

	if err := s.sync(r.Context(), c); err != nil {
		s.logger.Warn("stream: client error", "remote", c.remote, "error", err)
	}
}

// sync runs the reader, the pinger and the publisher until one of them
// stops, then tears the connection down. It returns nil on a clean close.
func (s *Server) sync(ctx context.Context, c *client) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer s.releaseHeld(c)
		return s.readMessages(groupCtx, c)
	})
	group.Go(func() error {
		return c.pingPong(groupCtx)
	})
	group.Go(func() error {
		return c.publish(groupCtx)
	})
	// Unblocks the reader once any routine has finished.
	group.Go(func() error {
		<-groupCtx.Done()
		return c.conn.Close()
	})

	err := group.Wait()
	if isClosure(err) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// readMessages forwards key events to the tick loop. Malformed messages
// and unknown keys are ignored; read errors are permanent.
func (s *Server) readMessages(ctx context.Context, c *client) error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var msg keyMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Debug("stream: bad message", "remote", c.remote, "error", err)
			continue
		}
		key := viewer.ParseKey(msg.Key)
		if key == viewer.KeyNone {
			continue
		}
		if msg.Pressed {
			c.held[key] = true
		} else {
			delete(c.held, key)
		}
		s.send(ctx, control{key: key, pressed: msg.Pressed})
	}
}

// releaseHeld lets go of every key the client still holds, so a dropped
// connection does not leave the viewer walking.
func (s *Server) releaseHeld(c *client) {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	for key := range c.held {
		s.send(ctx, control{key: key})
	}
	clear(c.held)
}

// pingPong checks liveness. It relies on readMessages running so the pong
// handler gets called.
func (c *client) pingPong(ctx context.Context) error {
	var lastPong atomic.Int64
	lastPong.Store(time.Now().UnixNano())
	c.conn.SetPongHandler(func(string) error {
		lastPong.Store(time.Now().UnixNano())
		return nil
	})

	for range channerics.NewTicker(ctx.Done(), pingInterval) {
		if time.Since(time.Unix(0, lastPong.Load())) > pongWait {
			return ErrPongDeadlineExceeded
		}
		if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("ping failed: %w", err)
		}
	}
	return nil
}

// publish writes the latest frame at most once per publishInterval.
func (c *client) publish(ctx context.Context) error {
	var lastSync time.Time
	var updates <-chan []byte = c.updates
	for data := range channerics.OrDone(ctx.Done(), updates) {
		if time.Since(lastSync) < publishInterval {
			continue
		}
		lastSync = time.Now()
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return fmt.Errorf("failed to set deadline: %w", err)
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("publish failed: %w", err)
		}
	}
	return nil
}

func isClosure(err error) bool {
	return err != nil && websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
