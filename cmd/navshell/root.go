package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tnguyen21/navshell/internal/app"
	"github.com/tnguyen21/navshell/internal/config"
	"github.com/tnguyen21/navshell/internal/navview"
	"github.com/tnguyen21/navshell/internal/server"
)

const shutdownTimeout = 30 * time.Second

// cli holds the flags and the config loaded before any subcommand runs.
type cli struct {
	configPath string
	verbose    bool
	mode       string
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "navshell",
		Short:         "Adaptive navigation shell for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load()
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultConfigPath, "path to config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.mode, "mode", "", "override display_mode (auto, top, compact, open, minimal)")

	root.AddCommand(c.runCommand(), c.serveCommand())
	return root
}

func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.mode != "" {
		if _, err := navview.ParseDisplayMode(c.mode); err != nil {
			return fmt.Errorf("--mode: %w", err)
		}
		cfg.DisplayMode = c.mode
	}
	if c.verbose {
		cfg.LogLevel = "debug"
	}
	c.cfg = cfg
	return nil
}

func (c *cli) logger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

func (c *cli) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the shell in this terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The terminal belongs to the TUI; logs go to log_file or nowhere.
			var w io.Writer = io.Discard
			if c.cfg.LogFile != "" {
				f, err := os.OpenFile(c.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return runTUI(cmd.Context(), c.cfg, c.logger(w))
		},
	}
}

func runTUI(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	m := app.New(cfg, logger)
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func (c *cli) serveCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shell over SSH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port > 0 {
				c.cfg.Port = port
			}
			return serve(cmd.Context(), c.cfg, c.logger(os.Stderr))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override listen port")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	srv, err := server.New(&cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start()
	}()
	logger.Info("navshell listening", "port", cfg.Port)

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("navshell stopped")
	return nil
}
