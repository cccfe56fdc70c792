package clipboard

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// DefaultMessage is shown after a successful copy.
const DefaultMessage = "Copied to clipboard!"

// Notifier tells the user a copy succeeded.
type Notifier func(message string)

// FailureHandler observes a failed copy.
type FailureHandler func(err error)

// ExporterOption customises an Exporter.
type ExporterOption func(*Exporter)

// WithNotifier sets the success notification.
func WithNotifier(fn Notifier) ExporterOption {
	return func(e *Exporter) {
		e.notify = fn
	}
}

// WithMessage overrides the success message.
func WithMessage(message string) ExporterOption {
	return func(e *Exporter) {
		if message != "" {
			e.message = message
		}
	}
}

// WithFailureHandler observes copy failures in addition to the returned error.
func WithFailureHandler(fn FailureHandler) ExporterOption {
	return func(e *Exporter) {
		e.onFailure = fn
	}
}

// WithLogger logs failures at warn level.
func WithLogger(logger zerolog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// Exporter copies text and reports the outcome.
type Exporter struct {
	writer    Writer
	message   string
	notify    Notifier
	onFailure FailureHandler
	logger    zerolog.Logger
}

// NewExporter wraps writer.
func NewExporter(writer Writer, options ...ExporterOption) *Exporter {
	e := &Exporter{
		writer:  writer,
		message: DefaultMessage,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Copy writes text and notifies on success. Failures skip the notification and
// are returned.
func (e *Exporter) Copy(ctx context.Context, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if e == nil || e.writer == nil {
		return errors.New("clipboard: no writer configured")
	}
	if err := e.writer.Write(ctx, text); err != nil {
		e.logger.Warn().Err(err).Int("bytes", len(text)).Msg("clipboard copy failed")
		if e.onFailure != nil {
			e.onFailure(err)
		}
		return err
	}
	if e.notify != nil {
		e.notify(e.message)
	}
	return nil
}

// Go runs Copy on its own goroutine. The channel receives the result once and
// is closed. Concurrent calls are independent and may finish in any order.
func (e *Exporter) Go(ctx context.Context, text string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- e.Copy(ctx, text)
	}()
	return done
}
