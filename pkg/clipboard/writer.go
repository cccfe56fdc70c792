// Package clipboard copies generated code to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Writer places text on a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, text string) error

func (f WriterFunc) Write(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Mode selects how the OSC 52 sequence reaches the outer terminal.
type Mode int

const (
	ModeDefault Mode = iota
	ModeTmux
	ModeScreen
)

func (m Mode) String() string {
	switch m {
	case ModeTmux:
		return "tmux"
	case ModeScreen:
		return "screen"
	default:
		return "default"
	}
}

// DetectMode picks a passthrough mode from the environment lookup.
func DetectMode(getenv func(string) string) Mode {
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("TMUX") != "" {
		return ModeTmux
	}
	if getenv("STY") != "" || strings.HasPrefix(getenv("TERM"), "screen") {
		return ModeScreen
	}
	return ModeDefault
}

// OSC52Writer emits an OSC 52 escape sequence, which terminals that support it
// turn into a clipboard write.
type OSC52Writer struct {
	mu   sync.Mutex
	out  io.Writer
	mode Mode
}

// NewOSC52Writer writes sequences to out, usually the controlling terminal.
func NewOSC52Writer(out io.Writer, mode Mode) *OSC52Writer {
	return &OSC52Writer{out: out, mode: mode}
}

// Sequence returns the escape sequence that copies text in the writer's mode.
func (w *OSC52Writer) Sequence(text string) osc52.Sequence {
	seq := osc52.New(text)
	switch w.mode {
	case ModeTmux:
		seq = seq.Tmux()
	case ModeScreen:
		seq = seq.Screen()
	}
	return seq
}

func (w *OSC52Writer) Write(ctx context.Context, text string) error {
	if w == nil || w.out == nil {
		return errors.New("clipboard: no terminal output")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.Sequence(text).WriteTo(w.out); err != nil {
		return fmt.Errorf("clipboard: write osc52: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard. The zero value is ready to use.
type Memory struct {
	mu     sync.Mutex
	last   string
	writes int
	err    error
}

func (m *Memory) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.last = text
	m.writes++
	return nil
}

// Last returns the most recently copied text.
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Writes counts successful copies.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// FailWith makes subsequent writes return err; nil restores success.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
