// Package prompt walks a generator's fields in the terminal, then prints the
// generated snippets and optionally copies one to the clipboard.
package prompt

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/clipboard"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/urlsync"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// Option configures a Session.
type Option func(*Session)

// WithExporter enables the copy step.
func WithExporter(exporter *clipboard.Exporter) Option {
	return func(s *Session) {
		s.exporter = exporter
	}
}

// WithLogger records field changes at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithPreview prints extra output, such as a terminal preview, after the
// snippets.
func WithPreview(fn func(widget.Result) string) Option {
	return func(s *Session) {
		s.preview = fn
	}
}

// Session drives one generator through a PromptDriver.
type Session struct {
	driver   PromptDriver
	exporter *clipboard.Exporter
	logger   zerolog.Logger
	preview  func(widget.Result) string
}

// New builds a session over driver.
func New(driver PromptDriver, opts ...Option) (*Session, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: missing driver")
	}
	s := &Session{driver: driver, logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Run asks for every field of v, starting from the state found in loc, and
// mirrors each answer back into loc. It returns the final result.
func (s *Session) Run(ctx context.Context, v widget.Variant, loc urlsync.Location) (widget.Result, error) {
	live, err := v.Open(loc)
	if err != nil {
		return widget.Result{}, err
	}
	defer live.Close()

	for _, field := range v.Fields() {
		current := live.Values()[field.Param]
		if current == "" {
			current = field.Default
		}
		value, err := s.ask(ctx, field, current)
		if err != nil {
			return widget.Result{}, err
		}
		if err := live.Set(field.Param, value); err != nil {
			return widget.Result{}, err
		}
		s.logger.Debug().Str("variant", v.Name()).Str("param", field.Param).Str("value", value).Msg("field updated")
	}

	res, err := live.Result()
	if err != nil {
		return widget.Result{}, err
	}
	if err := s.report(ctx, res); err != nil {
		return res, err
	}
	if err := s.offerCopy(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

func (s *Session) ask(ctx context.Context, field formstate.Field, current string) (string, error) {
	if field.Kind == formstate.KindEnum && len(field.Options) > 0 {
		labels := make([]string, len(field.Options))
		for i, opt := range field.Options {
			labels[i] = opt.Name
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: optionIndex(field.Options, current),
			Help:         field.Placeholder,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", fmt.Errorf("%w for %s", ErrNoChoice, field.Label)
		}
		return field.Options[idx].Value, nil
	}

	help := field.Placeholder
	if field.Kind == formstate.KindNumber && field.Max > 0 {
		help = fmt.Sprintf("%d to %d", field.Min, field.Max)
	}
	return s.driver.Input(ctx, InputConfig{
		Message:   field.Label,
		Default:   current,
		Help:      help,
		Validator: field.Check,
	})
}

func (s *Session) report(ctx context.Context, res widget.Result) error {
	for _, snip := range res.Snippets {
		if err := s.driver.Info(ctx, headingStyle.Render(snip.Label)); err != nil {
			return err
		}
		if err := s.driver.Info(ctx, snip.Code); err != nil {
			return err
		}
	}
	if s.preview != nil {
		if err := s.driver.Info(ctx, s.preview(res)); err != nil {
			return err
		}
	}
	return s.driver.Info(ctx, "?"+res.QueryString)
}

func (s *Session) offerCopy(ctx context.Context, res widget.Result) error {
	if s.exporter == nil || len(res.Snippets) == 0 {
		return nil
	}
	ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Copy to clipboard?", Default: true})
	if err != nil || !ok {
		return err
	}
	snip := res.Snippets[0]
	if len(res.Snippets) > 1 {
		labels := make([]string, len(res.Snippets))
		for i, sn := range res.Snippets {
			labels[i] = sn.Label
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "Snippet", Options: labels})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(res.Snippets) {
			return fmt.Errorf("%w for snippet", ErrNoChoice)
		}
		snip = res.Snippets[idx]
	}
	return s.exporter.Copy(ctx, snip.Code)
}

func optionIndex(options []catalog.Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
