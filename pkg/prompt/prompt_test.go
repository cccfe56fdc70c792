package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/clipboard"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/urlsync"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

// scriptedDriver answers prompts by message.
type scriptedDriver struct {
	answers map[string]string
	confirm bool
	abortOn string
	inputs  map[string]InputConfig
	selects map[string]SelectConfig
	info    []string
}

func newScriptedDriver(answers map[string]string) *scriptedDriver {
	return &scriptedDriver{
		answers: answers,
		inputs:  map[string]InputConfig{},
		selects: map[string]SelectConfig{},
	}
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.inputs[cfg.Message] = cfg
	if cfg.Message == d.abortOn {
		return "", ErrAborted
	}
	if v, ok := d.answers[cfg.Message]; ok {
		return v, nil
	}
	return cfg.Default, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	return d.confirm, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.selects[cfg.Message] = cfg
	if v, ok := d.answers[cfg.Message]; ok {
		return indexOf(cfg.Options, v), nil
	}
	return cfg.DefaultIndex, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func variant(t *testing.T, name string) widget.Variant {
	t.Helper()
	deps, err := widget.NewDeps(catalog.MustDefault(), formstate.PolicyStrict)
	require.NoError(t, err)
	reg, err := widget.NewRegistryFromDeps(deps)
	require.NoError(t, err)
	v, err := reg.Get(name)
	require.NoError(t, err)
	return v
}

func TestSession_BorderCopiesSnippet(t *testing.T) {
	driver := newScriptedDriver(map[string]string{
		"Border Color":      "Red",
		"Border Style":      "Dashed",
		"Border Width (px)": "4",
		"Content":           "Framed",
	})
	driver.confirm = true
	mem := &clipboard.Memory{}
	var notified string
	s, err := New(driver, WithExporter(clipboard.NewExporter(mem, clipboard.WithNotifier(func(msg string) { notified = msg }))))
	require.NoError(t, err)

	loc, err := urlsync.NewMemoryLocation("")
	require.NoError(t, err)
	res, err := s.Run(context.Background(), variant(t, widget.NameBorder), loc)
	require.NoError(t, err)

	css, ok := res.Snippet("css")
	require.True(t, ok)
	require.Equal(t, "border: 4px dashed red;", css.Code)
	require.Equal(t, css.Code, mem.Last())
	require.Equal(t, clipboard.DefaultMessage, notified)
	require.Equal(t, "color=red&content=Framed&style=dashed&width=4", loc.Query().Encode())
	require.Contains(t, strings.Join(driver.info, "\n"), "border: 4px dashed red;")
}

func TestSession_StartsFromLocation(t *testing.T) {
	driver := newScriptedDriver(nil)
	s, err := New(driver)
	require.NoError(t, err)

	loc, err := urlsync.NewMemoryLocation("?color=blue&width=7")
	require.NoError(t, err)
	res, err := s.Run(context.Background(), variant(t, widget.NameBorder), loc)
	require.NoError(t, err)

	require.Equal(t, "blue", res.Values["color"])
	require.Equal(t, "7", driver.inputs["Border Width (px)"].Default)
	require.Equal(t, "1 to 20", driver.inputs["Border Width (px)"].Help)
	colors := driver.selects["Border Color"]
	require.Equal(t, "Blue", colors.Options[colors.DefaultIndex])
}

func TestSession_WidthValidatorMirrorsStrictPolicy(t *testing.T) {
	driver := newScriptedDriver(nil)
	s, err := New(driver)
	require.NoError(t, err)
	loc, err := urlsync.NewMemoryLocation("")
	require.NoError(t, err)
	_, err = s.Run(context.Background(), variant(t, widget.NameBorder), loc)
	require.NoError(t, err)

	validate := driver.inputs["Border Width (px)"].Validator
	require.NotNil(t, validate)
	require.NoError(t, validate("5"))
	require.Error(t, validate("99"))
	require.Nil(t, driver.inputs["Content"].Validator)
}

func TestSession_TubeChoosesSnippet(t *testing.T) {
	driver := newScriptedDriver(map[string]string{
		"Snippet": "HTML <head>",
	})
	driver.confirm = true
	mem := &clipboard.Memory{}
	s, err := New(driver, WithExporter(clipboard.NewExporter(mem)))
	require.NoError(t, err)
	loc, err := urlsync.NewMemoryLocation("?tube=blue")
	require.NoError(t, err)

	_, err = s.Run(context.Background(), variant(t, widget.NameTube), loc)
	require.NoError(t, err)
	require.Equal(t, `<link rel="stylesheet" href="https://css.fart.tools/tubes/blue.css">`, mem.Last())
}

func TestSession_DeclinedCopyWritesNothing(t *testing.T) {
	driver := newScriptedDriver(nil)
	mem := &clipboard.Memory{}
	s, err := New(driver, WithExporter(clipboard.NewExporter(mem)))
	require.NoError(t, err)
	loc, err := urlsync.NewMemoryLocation("")
	require.NoError(t, err)

	_, err = s.Run(context.Background(), variant(t, widget.NameBorder), loc)
	require.NoError(t, err)
	require.Equal(t, 0, mem.Writes())
}

func TestSession_AbortStopsRun(t *testing.T) {
	driver := newScriptedDriver(nil)
	driver.abortOn = "Content"
	s, err := New(driver)
	require.NoError(t, err)
	loc, err := urlsync.NewMemoryLocation("")
	require.NoError(t, err)

	_, err = s.Run(context.Background(), variant(t, widget.NameBorder), loc)
	require.True(t, errors.Is(err, ErrAborted))
}

func TestSession_PreviewPrinted(t *testing.T) {
	driver := newScriptedDriver(nil)
	s, err := New(driver, WithPreview(func(res widget.Result) string { return "preview:" + res.Variant }))
	require.NoError(t, err)
	loc, err := urlsync.NewMemoryLocation("")
	require.NoError(t, err)

	_, err = s.Run(context.Background(), variant(t, widget.NameBorder), loc)
	require.NoError(t, err)
	require.Contains(t, driver.info, "preview:border")
}

func TestNew_RequiresDriver(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}
