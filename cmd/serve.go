package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/server"
	"github.com/abhisek/mathgen/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question generation API",
	Long: "Serve POST " + server.GeneratePath + " backed by the configured LLM provider.\n" +
		"Set MATHGEN_LLM_PROVIDER or a vendor key such as DEEPSEEK_API_KEY; without one,\n" +
		"built-in sample questions are served.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			s.Server.Addr = addr
		}
		logger, err := newLogger(s, false)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx := cmd.Context()
		st, _ := openStore(s, false)
		var repo store.EventRepo
		if st != nil {
			defer st.Close()
			repo = st.EventRepo()
		}

		sample, _ := cmd.Flags().GetBool("sample")
		var gen problemgen.Generator
		if sample {
			gen = problemgen.NewSampleGenerator()
		} else {
			provider, llmCfg, err := llm.NewProviderFromEnv(ctx, repo, logger.Named("llm"))
			switch {
			case errors.Is(err, llm.ErrNotConfigured):
				fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
				fmt.Fprintln(os.Stderr, "Serving built-in sample questions.")
				gen = problemgen.NewSampleGenerator()
			case err != nil:
				return fmt.Errorf("initialize LLM provider: %w", err)
			case llmCfg.Provider == "mock":
				gen = problemgen.NewSampleGenerator()
			default:
				logger.Info("using LLM provider",
					zap.String("provider", llmCfg.Provider),
					zap.String("model", provider.ModelID()),
					zap.Bool("structured", llm.SupportsStructured(provider)))
				gen = problemgen.New(provider, problemgen.DefaultConfig(), logger.Named("problemgen"))
			}
		}

		srv := server.New(server.Config{
			Addr:            s.Server.Addr,
			ReadTimeout:     s.Server.ReadTimeout,
			WriteTimeout:    s.Server.WriteTimeout,
			ShutdownTimeout: s.Server.ShutdownTimeout,
		}, gen, logger.Named("server"))
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8000, or server.addr in config)")
	serveCmd.Flags().Bool("sample", false, "Serve built-in sample questions without an LLM")
}
