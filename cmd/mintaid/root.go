package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mintai/internal/config"
	"mintai/internal/download"
	"mintai/internal/manager"
	"mintai/internal/modelpath"
)

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	getenv     func(string) string
	configPath string
	logLevel   string
	cfg        config.Config
	log        zerolog.Logger
	newManager func(config.Config, zerolog.Logger) *manager.Manager
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	return newRootCmdWith(&app{getenv: getenv, newManager: buildManager})
}

// newRootCmdWith constructs the command tree around a.
func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "mintaid",
		Short:         "Local text generation with a single GGUF model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (.yaml, .json or .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults MINTAI_LOG_LEVEL or info)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(a.configPath, a.getenv)
		if err != nil {
			return err
		}
		if a.logLevel != "" {
			cfg.LogLevel = a.logLevel
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		a.cfg = cfg
		a.log = newLogger(cmd.ErrOrStderr(), cfg.Level())
		return nil
	}

	root.AddCommand(
		newServeCmd(a),
		newGenerateCmd(a),
		newStatusCmd(a),
		newRuntimeCmd(a),
		newFetchCmd(a),
		newRemoveCmd(a),
	)
	return root
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	if f, ok := w.(*os.File); !ok || f != os.Stderr {
		out.NoColor = true
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// buildManager wires the manager from resolved configuration.
func buildManager(cfg config.Config, log zerolog.Logger) *manager.Manager {
	paths := modelpath.WithConfigDir(cfg.ConfigDir, cfg.ModelFile, log)
	paths.AppID = cfg.AppID
	var expected int64
	if cfg.DownloadURL == download.DefaultURL {
		expected = download.ExpectedSizeBytes
	}
	return manager.NewWithConfig(manager.Config{
		Paths:              paths,
		Fetcher:            download.New(cfg.DownloadURL, log),
		ExpectedModelBytes: expected,
		Log:                log,
	})
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// splitCSV splits a comma-separated flag value, dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
