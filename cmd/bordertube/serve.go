package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/EthanThatOneKid/border-tube-code-generator/components/generator"
	"github.com/EthanThatOneKid/border-tube-code-generator/internal/server"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
)

type serveOptions struct {
	addr     string
	basePath string
	minify   bool
	watch    bool
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator pages and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.load(cmd)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("addr") {
				a.cfg.Addr = opts.addr
			}
			if f.Changed("base-path") {
				a.cfg.BasePath = opts.basePath
			}
			if f.Changed("minify") {
				a.cfg.Minify = opts.minify
			}
			if f.Changed("watch") {
				a.cfg.Watch = opts.watch
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default :8080)")
	cmd.Flags().StringVar(&opts.basePath, "base-path", "", "Path prefix the generator is served under")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify pages and assets")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the catalog file when it changes")

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	reg, err := a.registry(a.catalog, false)
	if err != nil {
		return err
	}
	component := generator.New(
		generator.WithBasePath(a.cfg.BasePath),
		generator.WithRegistry(reg),
		generator.WithTheme(nil, a.cfg.Theme, a.cfg.ThemeVariant),
		generator.WithMinify(a.cfg.Minify),
		generator.WithLogger(a.logger),
	)

	srv, err := server.New(component, server.Options{
		Addr:          a.cfg.Addr,
		ShutdownGrace: a.cfg.ShutdownGrace,
		Logger:        a.logger,
	})
	if err != nil {
		return err
	}

	if a.cfg.Watch && a.cfg.Catalog != "" {
		go func() {
			err := catalog.Watch(ctx, a.cfg.Catalog,
				func(cat *catalog.Catalog) {
					next, err := a.registry(cat, false)
					if err != nil {
						a.logger.Error().Err(err).Msg("catalog reload rejected")
						return
					}
					component.SwapRegistry(next)
					a.logger.Info().Str("catalog", a.cfg.Catalog).Msg("catalog reloaded")
				},
				func(err error) {
					a.logger.Warn().Err(err).Str("catalog", a.cfg.Catalog).Msg("catalog reload failed")
				},
			)
			if err != nil {
				a.logger.Error().Err(err).Msg("catalog watch stopped")
			}
		}()
	}

	return srv.ListenAndServe(ctx)
}
