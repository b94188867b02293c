// raycaster-server serves the terminal raycaster over SSH. Every connection
// gets its own map and viewer. Build:
//
//	go build -o raycaster-server ./cmd/server
//
// Usage:
//
//	./raycaster-server [-port 2222] [-key server_host_key] [-config raycaster.yaml] [-max-sessions 16]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"tile-raycaster/internal/game"
	"tile-raycaster/internal/sim"
	internalssh "tile-raycaster/internal/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	configPath := flag.String("config", "", "JSON or YAML simulation config")
	maxSessions := flag.Int("max-sessions", 16, "Maximum concurrent sessions")
	flag.Parse()

	cfg, err := sim.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	signer, err := loadOrCreateHostKey(*keyFile)
	if err != nil {
		log.Fatal(err)
	}

	h := &host{cfg: cfg, slots: make(chan struct{}, *maxSessions), logger: slog.Default()}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: every user name gets a session.
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("raycaster SSH server listening on :%d", *port)
	log.Printf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", *port)
	log.Fatal(srv.ListenAndServe())
}

// host runs one game per SSH session, up to cap(slots) at a time.
type host struct {
	cfg    *sim.Config
	slots  chan struct{}
	logger *slog.Logger
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the duration of the game so the SSH session stays open.
func (h *host) handleSession(s gossh.Session) {
	select {
	case h.slots <- struct{}{}:
		defer func() { <-h.slots }()
	default:
		fmt.Fprintln(s, "Server full, try again later.")
		return
	}

	screen, err := internalssh.NewScreen(s)
	if err != nil {
		if errors.Is(err, internalssh.ErrNoPty) {
			fmt.Fprintln(s, "The raycaster needs a PTY. Connect with: ssh -t -p 2222 <host>")
		} else {
			fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		}
		return
	}

	name := internalssh.SanitizeName(s.User())
	g, err := game.NewWithScreen(screen, h.cfg, h.logger.With("player", name))
	if err != nil {
		screen.Fini()
		fmt.Fprintf(s, "Game setup failed: %v\n", err)
		return
	}
	g.SetPlayer("ssh", name)

	log.Printf("session opened: %s from %s", name, s.RemoteAddr())
	if err := g.Run(s.Context()); err != nil {
		log.Printf("session %s: %v", name, err)
	}
	log.Printf("session closed: %s (%d ticks)", name, g.Sim().Stats().Ticks)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer, nil
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "tile-raycaster server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	return signer, nil
}
