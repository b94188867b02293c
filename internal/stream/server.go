// Package stream publishes raycaster frames to browsers over websockets and
// takes key events back. One simulation is shared by every client.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"

	"tile-raycaster/internal/sim"
	"tile-raycaster/internal/viewer"
)

// control is one key transition from a client.
type control struct {
	key     viewer.Key
	pressed bool
}

// Server owns the simulation and fans its frames out to clients. The
// simulation is only touched by Run.
type Server struct {
	sim    *sim.Sim
	tick   time.Duration
	logger *slog.Logger

	upgrader websocket.Upgrader
	inputs   chan control
	mapJSON  []byte

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
}

type mapInfo struct {
	Rows     int      `json:"rows"`
	Cols     int      `json:"cols"`
	TileSize float64  `json:"tile_size"`
	Layout   []string `json:"layout"`
	FOV      float64  `json:"fov"`
}

// New builds a server around a fresh simulation.
func New(cfg *sim.Config, logger *slog.Logger) (*Server, error) {
	s, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := s.Grid()
	info, err := json.Marshal(mapInfo{
		Rows:     g.Rows(),
		Cols:     g.Cols(),
		TileSize: g.TileSize(),
		Layout:   g.Layout(),
		FOV:      s.Field().FOV(),
	})
	if err != nil {
		return nil, err
	}
	return &Server{
		sim:     s,
		tick:    cfg.TickInterval(),
		logger:  logger,
		inputs:  make(chan control, 64),
		mapJSON: info,
		clients: make(map[*client]struct{}),
	}, nil
}

// Handler returns the HTTP routes: the viewer page, the map, the latest
// frame and the websocket.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.servePage).Methods(http.MethodGet)
	r.HandleFunc("/map", s.serveMap).Methods(http.MethodGet)
	r.HandleFunc("/frame", s.serveFrame).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.serveWS)
	return r
}

// Run ticks the simulation until ctx is done, publishing every frame.
// Connected clients are disconnected when it returns.
func (s *Server) Run(ctx context.Context) error {
	defer s.closeClients()

	var controls viewer.Controls
	ticks := channerics.NewTicker(ctx.Done(), s.tick)
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-s.inputs:
			if c.pressed {
				controls.Press(c.key)
			} else {
				controls.Release(c.key)
			}
		case <-ticks:
			s.sim.Apply(&controls)
			data, err := json.Marshal(s.sim.Tick())
			if err != nil {
				return err
			}
			s.publish(data)
		}
	}
}

// Latest returns the most recent encoded frame, or nil before the first
// tick.
func (s *Server) Latest() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

func (s *Server) publish(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = data
	for c := range s.clients {
		c.offer(data)
	}
}

func (s *Server) join(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	s.logger.Info("stream: client joined", "remote", c.remote, "clients", n)
}

func (s *Server) leave(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	n := len(s.clients)
	s.mu.Unlock()
	s.logger.Info("stream: client left", "remote", c.remote, "clients", n)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.conn.Close()
	}
}

// send queues a key transition for the tick loop.
func (s *Server) send(ctx context.Context, c control) {
	select {
	case s.inputs <- c:
	case <-ctx.Done():
	}
}

func (s *Server) servePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page)) //nolint:errcheck
}

func (s *Server) serveMap(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(s.mapJSON) //nolint:errcheck
}

func (s *Server) serveFrame(w http.ResponseWriter, _ *http.Request) {
	data := s.Latest()
	if data == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck
}
