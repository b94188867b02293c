// Package ssh hosts terminal sessions over gliderlabs/ssh channels.
package ssh

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPty is returned for sessions that did not request a PTY.
var ErrNoPty = errors.New("session has no pty")

// SessionTty implements tcell.Tty on top of one SSH session. Reads, writes
// and Close go straight to the channel.
type SessionTty struct {
	gossh.Session

	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()
}

// NewSessionTty wraps s, which must have requested a PTY, and starts
// tracking its window-change requests for the life of the session.
func NewSessionTty(s gossh.Session) (*SessionTty, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPty
	}
	t := &SessionTty{Session: s, size: windowSize(pty.Window)}
	go t.watch(winCh)
	return t, nil
}

func windowSize(w gossh.Window) tcell.WindowSize {
	return tcell.WindowSize{Width: w.Width, Height: w.Height}
}

// watch applies window changes until the channel closes with the session.
func (t *SessionTty) watch(winCh <-chan gossh.Window) {
	for win := range winCh {
		t.mu.Lock()
		t.size = windowSize(win)
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

// The channel is opened and flushed by the SSH server, so the lifecycle
// hooks have nothing to do.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the last size the client reported.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

// NotifyResize registers the callback tcell uses to learn about resizes.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()
}
