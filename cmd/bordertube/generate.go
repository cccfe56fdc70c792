package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/border"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/clipboard"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/preview"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/tube"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

var labelStyle = lipgloss.NewStyle().Bold(true)

// paramFlag binds a CLI flag to a query parameter.
type paramFlag struct {
	flag  string
	param string
	usage string
}

var variantFlags = map[string][]paramFlag{
	widget.NameBorder: {
		{"color", border.ParamColor, "Border color"},
		{"style", border.ParamStyle, "Border style"},
		{"width", border.ParamWidth, "Border width in pixels"},
		{"content", border.ParamContent, "Text shown inside the border"},
	},
	widget.NameTube: {
		{"tube", tube.ParamTube, "Tube stylesheet id"},
		{"content", tube.ParamContent, "HTML placed inside the tube"},
		{"bg-color", tube.ParamBgColor, "Background color"},
		{"padding", tube.ParamPaddingStyle, "Padding length, 0 for none"},
	},
}

type generateOptions struct {
	values  map[string]*string
	copy    bool
	url     bool
	preview bool
	minify  bool
	only    string
}

func newVariantCmd(flags *rootFlags, name string) *cobra.Command {
	opts := &generateOptions{values: map[string]*string{}}

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Print the %s snippets for the given values", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.load(cmd)
			if err != nil {
				return err
			}
			reg, err := a.registry(a.catalog, opts.minify)
			if err != nil {
				return err
			}
			variant, err := reg.Get(name)
			if err != nil {
				return err
			}

			q := url.Values{}
			for _, pf := range variantFlags[name] {
				if cmd.Flags().Changed(pf.flag) {
					q.Set(pf.param, *opts.values[pf.flag])
				}
			}
			res, err := variant.Resolve(q)
			if err != nil {
				return err
			}
			return writeResult(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), res, opts)
		},
	}

	for _, pf := range variantFlags[name] {
		opts.values[pf.flag] = cmd.Flags().String(pf.flag, "", pf.usage)
	}
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the snippet to the clipboard over OSC 52")
	cmd.Flags().BoolVar(&opts.url, "url", false, "Also print the shareable query string")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Draw a terminal preview")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify the snippets")
	cmd.Flags().StringVar(&opts.only, "only", "", "Print a single snippet by name (css, head, body)")

	return cmd
}

func writeResult(ctx context.Context, out, errOut io.Writer, res widget.Result, opts *generateOptions) error {
	snippets := res.Snippets
	if opts.only != "" {
		snip, ok := res.Snippet(opts.only)
		if !ok {
			return fmt.Errorf("no %q snippet for %s", opts.only, res.Variant)
		}
		snippets = []widget.Snippet{snip}
	}

	for _, snip := range snippets {
		if len(snippets) > 1 {
			fmt.Fprintln(out, labelStyle.Render(snip.Label))
		}
		fmt.Fprintln(out, snip.Code)
	}
	if opts.url {
		fmt.Fprintln(out, "?"+res.QueryString)
	}
	if opts.preview {
		fmt.Fprintln(out, terminalPreview(res))
	}

	if !opts.copy {
		return nil
	}
	text := snippets[0].Code
	for _, snip := range snippets[1:] {
		text += "\n" + snip.Code
	}
	writer := clipboard.NewOSC52Writer(errOut, clipboard.DetectMode(os.Getenv))
	exporter := clipboard.NewExporter(writer, clipboard.WithNotifier(func(msg string) {
		fmt.Fprintln(errOut, msg)
	}))
	return exporter.Copy(ctx, text)
}

// terminalPreview draws a result with lipgloss boxes.
func terminalPreview(res widget.Result) string {
	v := res.Values
	switch res.Variant {
	case widget.NameBorder:
		return preview.Terminal(border.State{
			Color:   v[border.ParamColor],
			Style:   v[border.ParamStyle],
			Width:   v[border.ParamWidth],
			Content: v[border.ParamContent],
		})
	case widget.NameTube:
		return preview.TerminalTube(tube.State{
			Tube:         v[tube.ParamTube],
			Content:      v[tube.ParamContent],
			BgColor:      v[tube.ParamBgColor],
			PaddingStyle: v[tube.ParamPaddingStyle],
		})
	}
	return ""
}
