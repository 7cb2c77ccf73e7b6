package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	playerID   string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "compass",
		Short: "Summoner's Compass CLI - manage players, items and trades",
		Long: `Summoner's Compass CLI provides commands to manage the companion
game's resource economy: player accounts, item inventories, crafting
and two-party trades.

Examples:
  compass player register --name Teemo --email teemo@example.com
  compass inventory list --player-id <id>
  compass inventory combine --player-id <id> --item-a 1058 --item-b 1011
  compass trade propose --player-id <id> --email rival@example.com \
      --offer 1038 --request 1058 --lat 40.4168 --lng -3.7038
  compass trade accept --player-id <id> --proposer-id <other-id>
  compass friends list --player-id <id>`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&playerID, "player-id", "",
		"Acting player id")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewPlayerCommand())
	rootCmd.AddCommand(NewInventoryCommand())
	rootCmd.AddCommand(NewTradeCommand())
	rootCmd.AddCommand(NewFriendsCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
