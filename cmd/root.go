package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/mathgen/internal/logging"
	"github.com/abhisek/mathgen/internal/settings"
	"github.com/abhisek/mathgen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathgen",
	Short: "Practice math question generator",
	Long: "Mathgen generates age-appropriate math practice questions for school years 1-6.\n" +
		"Without a subcommand it opens the interactive generator.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("backend-url", "", "Generator service base URL (overrides MATHGEN_BACKEND_URL)")
	flags.String("db", "", "Path to SQLite database file (overrides MATHGEN_DB env var)")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("config", "", "Config file (default ./mathgen.yaml or ~/.config/mathgen/mathgen.yaml)")
	flags.StringSlice("env-file", nil, "Dotenv files to load (default .env)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings reads configuration with the persistent flags of cmd bound
// on top.
func loadSettings(cmd *cobra.Command) (*settings.Settings, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	return settings.Load(settings.Options{
		ConfigFile:  configFile,
		DotEnvFiles: envFiles,
		Bind: func(v *viper.Viper) error {
			for key, flag := range map[string]string{
				"backend_url": "backend-url",
				"db":          "db",
				"log_file":    "log-file",
				"log_level":   "log-level",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// newLogger builds the logger for s. discard selects a no-op logger when no
// log file is set, for the TUI.
func newLogger(s *settings.Settings, discard bool) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Production: s.IsProduction(),
		Level:      s.LogLevel,
		File:       s.LogFile,
		Discard:    discard,
	})
}

// resolveDBPath returns the database path from settings (--db flag or
// MATHGEN_DB), then the default XDG path.
func resolveDBPath(s *settings.Settings) (string, error) {
	if s.DBPath != "" {
		return s.DBPath, store.EnsureDir(s.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store. History is optional, so callers that
// can run without it get a nil store and a warning on stderr.
func openStore(s *settings.Settings, required bool) (*store.Store, error) {
	dbPath, err := resolveDBPath(s)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			return st, nil
		}
	}
	if required {
		return nil, fmt.Errorf("open store: %w", err)
	}
	fmt.Fprintln(os.Stderr, "History unavailable:", err)
	return nil, nil
}
