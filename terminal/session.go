// Package terminal owns the full-screen terminal session the simulation
// draws into: alternate screen, hidden cursor, raw key input and teardown.
package terminal

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// PausePollInterval bounds each wait for input while paused
const PausePollInterval = 75 * time.Millisecond

// Command is what a key press asks the game loop to do
type Command int

const (
	CommandPass Command = iota
	CommandQuit
	CommandPause
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandPause:
		return "pause"
	default:
		return "pass"
	}
}

// Session is an initialized screen plus the goroutine pumping its events
type Session struct {
	screen    tcell.Screen
	events    chan tcell.Event
	done      chan struct{}
	closeOnce sync.Once
}

// Open switches the controlling terminal into full-screen raw mode.
// It fails if stdin or stdout is not a terminal.
func Open() (*Session, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New("[Open] stdin and stdout must be a terminal")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[Open] failed to create screen")
	}
	return NewSession(screen)
}

// NewSession initializes screen, hides the cursor and clears it. The caller
// must Close the session on every exit path.
func NewSession(screen tcell.Screen) (*Session, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewSession] failed to initialize screen")
	}
	screen.HideCursor()
	screen.Clear()

	s := &Session{
		screen: screen,
		events: make(chan tcell.Event, 100),
		done:   make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

func (s *Session) pump() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Screen returns the underlying screen for drawing
func (s *Session) Screen() tcell.Screen {
	return s.screen
}

// Size returns the terminal dimensions in cells
func (s *Session) Size() (width, height int) {
	return s.screen.Size()
}

// Poll returns the command for the oldest pending key press without blocking
func (s *Session) Poll() Command {
	for {
		select {
		case ev := <-s.events:
			if cmd := commandFor(ev); cmd != CommandPass {
				return cmd
			}
		default:
			return CommandPass
		}
	}
}

// WaitResume blocks while paused. It returns CommandPass when space is
// pressed again and CommandQuit on a quit key or when ctx is done.
func (s *Session) WaitResume(ctx context.Context) Command {
	ticker := time.NewTicker(PausePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return CommandQuit
		case ev := <-s.events:
			switch commandFor(ev) {
			case CommandPause:
				return CommandPass
			case CommandQuit:
				return CommandQuit
			}
		case <-ticker.C:
		}
	}
}

// Close restores the original terminal mode, cursor and screen. It is safe
// to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.screen.Fini()
	})
}

func commandFor(ev tcell.Event) Command {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return CommandPass
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CommandQuit
	case tcell.KeyRune:
		if key.Modifiers() != tcell.ModNone {
			return CommandPass
		}
		switch key.Rune() {
		case 'q':
			return CommandQuit
		case ' ':
			return CommandPause
		}
	}
	return CommandPass
}
