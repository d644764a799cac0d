package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathgen/internal/app"
	"github.com/abhisek/mathgen/internal/backend"
	"github.com/abhisek/mathgen/internal/generation"
	"github.com/abhisek/mathgen/internal/settings"
	"github.com/abhisek/mathgen/internal/store"
)

// runApp loads settings, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(s, true)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := s.InitialConfig()
	if err != nil {
		return err
	}
	if s.BackendURL == "" {
		fmt.Fprintln(os.Stderr, "Backend URL not configured: set MATHGEN_BACKEND_URL or --backend-url.")
		fmt.Fprintln(os.Stderr, "Generating questions will fail until it is set.")
	}

	st, _ := openStore(s, false)
	var repo store.EventRepo
	if st != nil {
		defer st.Close()
		repo = st.EventRepo()
	}

	ctrl := newController(s, repo, logger)
	return app.Run(cmd.Context(), app.Options{
		Controller: ctrl,
		Config:     cfg,
		EventRepo:  repo,
		Logger:     logger,
	})
}

// newController wires the backend client and, when repo is set, attempt
// recording into a generation controller.
func newController(s *settings.Settings, repo store.EventRepo, logger *zap.Logger) *generation.Controller {
	client := backend.New(s.BackendURL,
		backend.WithTimeout(s.RequestTimeout),
		backend.WithLogger(logger.Named("backend")),
	)
	opts := []generation.Option{generation.WithLogger(logger.Named("generation"))}
	if repo != nil {
		opts = append(opts, generation.WithRecorder(generation.NewStoreRecorder(repo)))
	}
	return generation.New(client, opts...)
}
