package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	"github.com/summonerscompass/compass-go/internal/application/player"
)

// NewPlayerCommand creates the player command with subcommands
func NewPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage player accounts",
		Long: `Manage player accounts in the database.

A player owns an inventory, a cumulative power total with its derived
level, and a glossary of discovered champion names.

Examples:
  compass player register --name Teemo --email teemo@example.com
  compass player info --player-id <id>`,
	}

	cmd.AddCommand(newPlayerRegisterCommand())
	cmd.AddCommand(newPlayerInfoCommand())

	return cmd
}

// newPlayerRegisterCommand creates the player register subcommand
func newPlayerRegisterCommand() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new player",
		Long: `Register a new player account.

The account starts with zero power, an empty inventory and an empty
glossary. Emails are unique; registering a taken email fails.

Example:
  compass player register --name Teemo --email teemo@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}
			if email == "" {
				return fmt.Errorf("--email flag is required")
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			playerRepo := persistence.NewGormPlayerRepository(db)
			handler := player.NewRegisterPlayerHandler(playerRepo)

			ctx := context.Background()
			response, err := handler.Handle(ctx, &player.RegisterPlayerCommand{
				Name:  name,
				Email: email,
			})
			if err != nil {
				return fmt.Errorf("failed to register player: %w", err)
			}

			result := response.(*player.RegisterPlayerResponse)

			fmt.Println("✓ Player registered successfully")
			fmt.Printf("  Player ID: %s\n", result.PlayerID)
			fmt.Printf("  Email:     %s\n", email)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")

	return cmd
}

// newPlayerInfoCommand creates the player info subcommand
func newPlayerInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show player profile",
		Long: `Show a player's profile: power, derived level with progress
towards the next one, and the discovered glossary.

Example:
  compass player info --player-id <id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			playerRepo := persistence.NewGormPlayerRepository(db)
			handler := player.NewGetPlayerHandler(playerRepo)

			ctx := context.Background()
			response, err := handler.Handle(ctx, &player.GetPlayerQuery{PlayerID: id})
			if err != nil {
				return fmt.Errorf("failed to get player: %w", err)
			}

			result := response.(*player.GetPlayerResponse)

			fmt.Printf("Player Information\n")
			fmt.Printf("==================\n\n")
			fmt.Printf("Player ID: %s\n", result.PlayerID)
			fmt.Printf("Name:      %s\n", result.Name)
			fmt.Printf("Email:     %s\n", result.Email)
			fmt.Printf("Power:     %d\n", result.Power)
			fmt.Printf("Level:     %d (%.0f%% to next)\n", result.Level, result.Progress*100)

			if len(result.Glossary) > 0 {
				fmt.Printf("\nGlossary (%d):\n", len(result.Glossary))
				for _, name := range result.Glossary {
					fmt.Printf("  - %s\n", name)
				}
			}

			return nil
		},
	}

	return cmd
}
