package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/learnspan"
	"github.com/iw2rmb/learnspan/config"
	"github.com/iw2rmb/learnspan/internal/logger"
	"github.com/iw2rmb/learnspan/lm"
	"github.com/iw2rmb/learnspan/lm/sqlitestore"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "learnspan",
	Short:             "Learn the text you type for word prediction",
	Long:              `learnspan tracks which parts of a text were edited and teaches them to a word prediction model.`,
	Version:           learnspan.Version(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/learnspan/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level from the config")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(log)
	cmd.SetContext(logger.NewContext(cmd.Context(), log))
	return nil
}

// openModel returns a model loaded from cfg.Model.Path. The store is nil
// when no path is configured.
func openModel(ctx context.Context) (*lm.Memory, *sqlitestore.Store, error) {
	mem := lm.NewMemory(lm.MemoryOptions{AccentInsensitive: cfg.Typing.AccentInsensitive})
	if cfg.Model.Path == "" {
		return mem, nil, nil
	}

	store, err := sqlitestore.Open(cfg.Model.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening model %s: %w", cfg.Model.Path, err)
	}
	if err := store.Load(ctx, mem); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("loading model %s: %w", cfg.Model.Path, err)
	}
	logger.L(ctx).Debug("model loaded", zap.String("path", cfg.Model.Path), zap.Int("words", len(mem.Unigrams())))
	return mem, store, nil
}

func main() {
	defer func() { _ = zap.L().Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
