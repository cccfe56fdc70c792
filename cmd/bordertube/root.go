package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/EthanThatOneKid/border-tube-code-generator/internal/config"
	"github.com/EthanThatOneKid/border-tube-code-generator/internal/logging"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/prompt"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/snippet"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

type rootFlags struct {
	configPath string
	catalog    string
	lenient    bool
	logLevel   string
	logHuman   bool

	// lookup reads environment overrides and driver answers prompts; tests
	// replace both.
	lookup func(string) (string, bool)
	driver prompt.PromptDriver
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootFlags{lookup: os.LookupEnv})
}

func newRootCmdWith(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bordertube",
		Short:         "Generate CSS border declarations and tube HTML snippets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&flags.catalog, "catalog", "", "YAML catalog overriding the built-in values")
	cmd.PersistentFlags().BoolVar(&flags.lenient, "lenient", false, "Accept any non-empty value instead of catalog members only")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.logHuman, "log-human", false, "Human readable logs")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVariantCmd(flags, widget.NameBorder))
	cmd.AddCommand(newVariantCmd(flags, widget.NameTube))
	cmd.AddCommand(newPromptCmd(flags))
	cmd.AddCommand(newCatalogCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// app is the state shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	catalog *catalog.Catalog
}

// load merges config file, environment and persistent flags, in that order.
func (f *rootFlags) load(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(f.configPath, f.lookup)
	if err != nil {
		return nil, err
	}
	persistent := cmd.Flags()
	if persistent.Changed("catalog") {
		cfg.Catalog = f.catalog
	}
	if persistent.Changed("lenient") {
		cfg.Strict = !f.lenient
	}
	if persistent.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if persistent.Changed("log-human") {
		cfg.Log.Human = f.logHuman
	}

	logger, err := logging.New(logging.Options{
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.Human,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	cat, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, catalog: cat}, nil
}

// registry builds both variants over cat.
func (a *app) registry(cat *catalog.Catalog, minify bool) (*widget.Registry, error) {
	deps, err := widget.NewDeps(cat, formstate.ParsePolicy(a.cfg.Policy()),
		snippet.WithStylesheetBase(a.cfg.StylesheetBase),
		snippet.WithMinify(minify),
	)
	if err != nil {
		return nil, err
	}
	deps.Logger = a.logger
	return widget.NewRegistryFromDeps(deps)
}
