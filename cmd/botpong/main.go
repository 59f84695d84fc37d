package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diegok/botpong/internal/app"
	"github.com/diegok/botpong/internal/config"
	"github.com/diegok/botpong/internal/logging"
)

var (
	configFile string
	ticks      int
	flagged    = config.DefaultConfig()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "botpong",
		Short: "terminal pong against a tracking bot",
		Long: "Play pong in the terminal. Drag the left paddle with the mouse or move it with\n" +
			"the arrow keys (w/s); the right paddle chases the ball on its own.\n" +
			"Keys: p pause, m mute, q quit.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := prepare(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()
			return app.NewApp(cfg, log).Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	config.BindFlags(rootCmd.PersistentFlags(), flagged)

	replayCmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "play back a recorded match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := prepare(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()
			return app.NewApp(cfg, log).Replay(args[0])
		},
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run the match headless and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks < 1 {
				return fmt.Errorf("--ticks must be at least 1, got %d", ticks)
			}
			cfg, log, closer, err := prepare(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()

			sum, err := app.Simulate(cfg, ticks, log)
			if err != nil {
				return err
			}
			return sum.Write(cmd.OutOrStdout())
		},
	}
	simulateCmd.Flags().IntVar(&ticks, "ticks", 3000, "number of ticks to run")

	rootCmd.AddCommand(replayCmd, simulateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// prepare resolves the config for cmd and opens the logger
func prepare(cmd *cobra.Command) (*config.Config, zerolog.Logger, io.Closer, error) {
	cfg, err := config.Resolve(configFile, cmd.Flags(), flagged)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, closer, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	log.Debug().Str("config", configFile).Msg("configuration loaded")
	return cfg, log, closer, nil
}
