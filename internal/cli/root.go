package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "glitchbet",
		Short: "CLI tool for the glitchbet wagering API",
		Long: `glitchbet is a CLI tool for interacting with the glitchbet JSON API.

It supports player accounts, the bet flow, and the coinflip and mines games,
including the fairness proofs published with every result.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: GLITCHBET_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "Player ID (env: GLITCHBET_PLAYER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newBetCmd())
	rootCmd.AddCommand(newCoinflipCmd())
	rootCmd.AddCommand(newMinesCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// requirePlayer returns the configured player ID or an error
func requirePlayer() (string, error) {
	if cfg.PlayerID == "" {
		return "", errors.New("player ID required: set --player or GLITCHBET_PLAYER")
	}
	return cfg.PlayerID, nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
