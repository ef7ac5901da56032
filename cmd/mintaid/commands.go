package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mintai/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr     string
		origins  string
		preload  bool
		waitSecs int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			corsList := a.cfg.CORSOrigins
			if origins != "" {
				corsList = splitCSV(origins)
			}
			mgr := a.newManager(a.cfg, a.log)

			httpapi.SetLogger(a.log)
			httpapi.SetDefaultLogLevel(strings.ToLower(a.cfg.LogLevel))
			httpapi.SetMaxBodyBytes(a.cfg.MaxBodyBytes)
			httpapi.SetWaitTimeout(time.Duration(waitSecs) * time.Second)
			httpapi.SetCORSOptions(len(corsList) > 0, corsList, nil, nil)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			httpapi.SetBaseContext(ctx)

			if preload {
				go func() {
					if err := <-mgr.Preload(); err == nil {
						a.log.Info().Msg("model preloaded")
					}
				}()
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewMux(mgr),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", addr).Str("models_dir", mgr.Paths().ModelsDir()).
					Str("backend", mgr.Backend().Name()).Msg("mintaid listening")
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Warn().Err(err).Msg("graceful shutdown error")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (defaults MINTAI_ADDR or config)")
	cmd.Flags().StringVar(&origins, "cors-origins", "", "Comma-separated origins allowed by CORS")
	cmd.Flags().BoolVar(&preload, "preload", false, "Load the default model in the background at startup")
	cmd.Flags().IntVar(&waitSecs, "wait-timeout", 0, "Seconds a request may wait for the model (0 = unbounded)")
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:     "generate <prompt>",
		Short:   "Run one prompt against the local model",
		Example: "  mintaid generate \"Where did my money go in May?\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := a.newManager(a.cfg, a.log)
			text, err := mgr.Generate(cmd.Context(), strings.Join(args, " "), modelPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&modelPath, "model-path", "", "Explicit model file (defaults to <config dir>/models/<model file>)")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the resolved model path and whether it exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), a.newManager(a.cfg, a.log).Status(modelPath))
		},
	}
	cmd.Flags().StringVar(&modelPath, "model-path", "", "Explicit model file to check")
	return cmd
}

func newRuntimeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "runtime",
		Short: "Check the compiled runtime and the default model without loading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), a.newManager(a.cfg, a.log).Preflight())
		},
	}
}

func newFetchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the default model into the models directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := a.newManager(a.cfg, a.log)
			errw := cmd.ErrOrStderr()
			path, err := mgr.DownloadModel(cmd.Context(), func(loaded, total int64) {
				if total > 0 {
					fmt.Fprintf(errw, "\r%s / %s", humanBytes(loaded), humanBytes(total))
					return
				}
				fmt.Fprintf(errw, "\r%s", humanBytes(loaded))
			})
			fmt.Fprintln(errw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the default model file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.newManager(a.cfg, a.log).RemoveModel()
		},
	}
}

func humanBytes(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1f GB", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1f MB", float64(n)/1e6)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
