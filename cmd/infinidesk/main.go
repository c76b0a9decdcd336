// SPDX-License-Identifier: Unlicense OR MIT

// Command infinidesk runs the infinidesk compositor (spec.md §6).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ThatOtherAndrew/Infinidesk/internal/config"
	"github.com/ThatOtherAndrew/Infinidesk/internal/server"
)

const (
	defaultOutputWidth  = 1920
	defaultOutputHeight = 1080
	// waylandSocketName is published via WAYLAND_DISPLAY for forked
	// children (spec.md §6); the socket it names is created by the
	// out-of-scope wire-protocol collaborator named in spec.md §1.
	waylandSocketName = "wayland-1"
)

var (
	startupCmds []string
	debug       bool
)

func main() {
	root := &cobra.Command{
		Use:   "infinidesk",
		Short: "An infinite-canvas Wayland compositor",
		RunE:  run,
	}
	root.Flags().StringArrayVar(&startupCmds, "startup", nil, "shell command to run once after initialisation (repeatable)")
	root.Flags().BoolVar(&debug, "debug", false, "enable verbose (debug-level) logging")

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("infinidesk: init failed")
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Logger = logger

	cfg, keybinds, err := config.Load(func(msg string) { logger.Warn().Str("component", "config").Msg(msg) })
	if err != nil {
		return fmt.Errorf("infinidesk: loading config: %w", err)
	}

	backend, err := newRenderBackend()
	if err != nil {
		return fmt.Errorf("infinidesk: initialising renderer: %w", err)
	}

	srv := server.New(cfg, keybinds, backend, logger, defaultOutputWidth, defaultOutputHeight)

	if err := srv.PublishWaylandDisplay(waylandSocketName); err != nil {
		return fmt.Errorf("infinidesk: %w", err)
	}
	srv.RunStartup(append(append([]string{}, cfg.Startup...), startupCmds...))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info().Str("component", "server").Msg("infinidesk started")
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("infinidesk: event loop: %w", err)
	}
	logger.Info().Str("component", "server").Msg("infinidesk shut down cleanly")
	return nil
}
