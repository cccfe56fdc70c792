package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/clipboard"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/prompt"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/urlsync"
)

type promptOptions struct {
	query   string
	copy    bool
	preview bool
}

func newPromptCmd(flags *rootFlags) *cobra.Command {
	opts := &promptOptions{}

	cmd := &cobra.Command{
		Use:   "prompt <border|tube>",
		Short: "Fill in a generator interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.load(cmd)
			if err != nil {
				return err
			}
			reg, err := a.registry(a.catalog, false)
			if err != nil {
				return err
			}
			variant, err := reg.Get(args[0])
			if err != nil {
				return fmt.Errorf("%w (choose one of %s)", err, strings.Join(reg.List(), ", "))
			}

			driver := flags.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.OutOrStdout())
			}
			sessionOpts := []prompt.Option{prompt.WithLogger(a.logger)}
			if opts.copy {
				writer := clipboard.NewOSC52Writer(cmd.ErrOrStderr(), clipboard.DetectMode(os.Getenv))
				sessionOpts = append(sessionOpts, prompt.WithExporter(clipboard.NewExporter(writer,
					clipboard.WithLogger(a.logger),
					clipboard.WithNotifier(func(msg string) { fmt.Fprintln(cmd.ErrOrStderr(), msg) }),
				)))
			}
			if opts.preview {
				sessionOpts = append(sessionOpts, prompt.WithPreview(terminalPreview))
			}
			session, err := prompt.New(driver, sessionOpts...)
			if err != nil {
				return err
			}

			loc, err := urlsync.NewMemoryLocation("?" + strings.TrimPrefix(opts.query, "?"))
			if err != nil {
				return err
			}
			_, err = session.Run(cmd.Context(), variant, loc)
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.query, "query", "", "Start from a shared query string")
	cmd.Flags().BoolVar(&opts.copy, "copy", true, "Offer to copy a snippet when done")
	cmd.Flags().BoolVar(&opts.preview, "preview", true, "Draw a terminal preview")

	return cmd
}
