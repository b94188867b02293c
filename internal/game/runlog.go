package game

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tile-raycaster/internal/sim"
)

// SessionLog records one session from start to quit.
type SessionLog struct {
	Timestamp time.Time `json:"timestamp"`
	Frontend  string    `json:"frontend"`
	Player    string    `json:"player,omitempty"`
	Seconds   float64   `json:"seconds"`
	sim.Stats
}

// SaveSessionLog appends the session as a single JSON line to
// sessions.jsonl. Errors are logged but never returned, so a disk problem
// never ends a session badly.
func SaveSessionLog(entry SessionLog, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := sessionLogDir()
	if err != nil {
		logger.Warn("session log: cannot determine data dir", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("session log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "sessions.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("session log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(entry)
	if err != nil {
		logger.Warn("session log: cannot marshal JSON", "error", err)
		return
	}
	f.Write(append(data, '\n')) //nolint:errcheck
}

// sessionLogDir returns the directory where session logs are stored.
// Follows the XDG Base Directory spec: $XDG_DATA_HOME/tile-raycaster,
// defaulting to ~/.local/share/tile-raycaster.
func sessionLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "tile-raycaster"), nil
}
