package ssh

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is used when the client sends no TERM or one we do not trust.
const DefaultTerm = "xterm-256color"

// maxNameBytes bounds player names shown in logs and the HUD.
const maxNameBytes = 16

// AllowedTerms lists the terminfo entries a client may select. TERM ends up
// in the process environment, so anything else falls back to DefaultTerm.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// Term picks the terminal type from a session environment.
func Term(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok {
			if AllowedTerms[term] {
				return term
			}
			break
		}
	}
	return DefaultTerm
}

// SanitizeName strips control characters and cuts the name to at most
// maxNameBytes without splitting a rune.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == utf8.RuneError || unicode.IsControl(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// termMu serialises os.Setenv("TERM") with terminfo lookup: tcell reads the
// terminal type from the process environment.
var termMu sync.Mutex

// NewScreen builds and initialises a tcell screen drawing to s.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	tty, err := NewSessionTty(s)
	if err != nil {
		return nil, err
	}
	term := Term(s.Environ())

	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal %s: %w", term, err)
	}
	if err := initScreen(screen, tty); err != nil {
		return nil, err
	}
	return screen, nil
}

// initScreen initialises screen and closes tty if that fails. Fini panics
// when Init stops before the screen is set up, so the tty is closed directly.
func initScreen(screen tcell.Screen, tty io.Closer) error {
	if err := screen.Init(); err != nil {
		_ = tty.Close()
		return fmt.Errorf("init screen: %w", err)
	}
	return nil
}
