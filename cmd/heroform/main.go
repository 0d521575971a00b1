// Command heroform serves the superhero create/edit pages and offers the same
// form in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-heroform/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// app holds state shared by the subcommands once the root pre-run hook has
// loaded configuration and built the logger.
type app struct {
	configPath string
	verbose    bool
	storeKind  string
	baseURL    string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "heroform",
		Short: "Create and edit superheroes",
		Long: `heroform serves the superhero create and edit pages backed by a record
store, and offers the same form as an interactive terminal prompt.

Configuration is read from --config (YAML or JSON) and HEROFORM_* environment
variables. Flags override both.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML or JSON)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.storeKind, "store", "", "record store: memory or http")
	flags.StringVar(&a.baseURL, "api", "", "hero API base URL for the http store")

	root.AddCommand(newServeCmd(a), newCreateCmd(a), newEditCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	zcfg := zap.NewProductionConfig()
	if a.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Kind = a.storeKind
	}
	if flags.Changed("api") {
		cfg.Store.BaseURL = a.baseURL
		if !flags.Changed("store") {
			cfg.Store.Kind = config.StoreHTTP
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("store", cfg.Store.Kind),
		zap.String("theme", cfg.Theme.Name))
	return nil
}
