package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"geoquiz/internal/config"
	"geoquiz/internal/i18n"
	"geoquiz/internal/platform/logger"
)

var (
	cfg      *config.Config
	log      *slog.Logger
	messages *i18n.Bundle

	logLevel string
	langFlag string
	dbPath   string
)

func Execute() error {
	root := &cobra.Command{
		Use:           "geoquiz",
		Short:         "Geography quiz: flags, countries and capitals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if langFlag != "" {
				cfg.Game.Language = langFlag
			}
			if dbPath != "" {
				cfg.Storage.DBPath = dbPath
			}

			log, err = logger.Setup(cfg.Logging)
			if err != nil {
				return fmt.Errorf("set up logger: %w", err)
			}

			messages, err = i18n.LoadEmbedded()
			if err != nil {
				return fmt.Errorf("load message catalogs: %w", err)
			}
			return nil
		},
	}

	// Accept underscore spellings like --log_level for flag names.
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&langFlag, "language", "l", "", "interface language (e.g. es, en)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to the saved-games database")

	root.AddCommand(playCmd(), savesCmd(), flagsCmd())

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}
