package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/summonerscompass/compass-go/internal/adapters/api"
	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	apptrading "github.com/summonerscompass/compass-go/internal/application/trading"
)

// NewTradeCommand creates the trade command with subcommands
func NewTradeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Negotiate two-party item trades",
		Long: `Negotiate item trades with other players.

A trade starts as an offer to a counterparty identified by email. The
counterparty accepts or rejects it; an accepted trade stays active for
both players until either one confirms it after the exchange.

Examples:
  compass trade propose --player-id <id> --email rival@example.com \
      --offer 1038 --request 1058 --lat 40.4168 --lng -3.7038 \
      --date 2026-09-01 --time 18:30
  compass trade requests --player-id <id>
  compass trade accept --player-id <id> --proposer-id <other-id>
  compass trade reject --player-id <id> --proposer-id <other-id>
  compass trade active --player-id <id>
  compass trade confirm --player-id <id> --other-id <other-id>`,
	}

	cmd.AddCommand(newTradeProposeCommand())
	cmd.AddCommand(newTradeRequestsCommand())
	cmd.AddCommand(newTradeAcceptCommand())
	cmd.AddCommand(newTradeRejectCommand())
	cmd.AddCommand(newTradeActiveCommand())
	cmd.AddCommand(newTradeConfirmCommand())

	return cmd
}

// newTradeProposeCommand creates the trade propose subcommand
func newTradeProposeCommand() *cobra.Command {
	var (
		email       string
		offerItem   string
		requestItem string
		lat         float64
		lng         float64
		date        string
		timeOfDay   string
	)

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Propose a trade to another player",
		Long: `Propose a trade to another player, resolved by email.

The offer names the item you hand over, the item you want back, and
the meeting point where the exchange happens. Re-proposing to the same
player replaces your prior pending offer.

Example:
  compass trade propose --player-id <id> --email rival@example.com \
      --offer 1038 --request 1058 --lat 40.4168 --lng -3.7038`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if email == "" {
				return fmt.Errorf("--email flag is required")
			}
			if offerItem == "" || requestItem == "" {
				return fmt.Errorf("--offer and --request flags are required")
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			tradeRepo := persistence.NewGormTradeRepository(db)
			directory := persistence.NewGormSocialDirectory(db)
			handler := apptrading.NewProposeTradeHandler(tradeRepo, directory)

			ctx := context.Background()
			response, err := handler.Handle(ctx, &apptrading.ProposeTradeCommand{
				ProposerID:        id,
				CounterpartyEmail: email,
				OfferedItemID:     offerItem,
				RequestedItemID:   requestItem,
				Lat:               lat,
				Lng:               lng,
				Date:              date,
				Time:              timeOfDay,
			})
			if err != nil {
				return fmt.Errorf("failed to propose trade: %w", err)
			}

			result := response.(*apptrading.ProposeTradeResponse)

			fmt.Println("✓ Trade proposed")
			fmt.Printf("  Counterparty: %s\n", result.CounterpartyID)
			fmt.Printf("  You send:     %s\n", offerItem)
			fmt.Printf("  You get:      %s\n", requestItem)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Counterparty email (required)")
	cmd.Flags().StringVar(&offerItem, "offer", "", "Item id you hand over (required)")
	cmd.Flags().StringVar(&requestItem, "request", "", "Item id you want back (required)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Meeting point latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Meeting point longitude")
	cmd.Flags().StringVar(&date, "date", "", "Meeting date, e.g. 2026-09-01")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Meeting time, e.g. 18:30")

	return cmd
}

// newTradeRequestsCommand creates the trade requests subcommand
func newTradeRequestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List pending offers addressed to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			return listTrades(&apptrading.ListTradeRequestsQuery{PlayerID: id},
				"No pending trade requests.")
		},
	}

	return cmd
}

// newTradeActiveCommand creates the trade active subcommand
func newTradeActiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "active",
		Short: "List your accepted, unconfirmed trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			return listTrades(&apptrading.ListActiveTradesQuery{PlayerID: id},
				"No active trades.")
		},
	}

	return cmd
}

// listTrades runs a trade listing query and renders the result table
func listTrades(query interface{}, emptyMessage string) error {
	_, db, err := connect()
	if err != nil {
		return err
	}

	tradeRepo := persistence.NewGormTradeRepository(db)
	playerRepo := persistence.NewGormPlayerRepository(db)
	catalogClient := api.NewDataDragonClient()
	handler := apptrading.NewListTradesHandler(tradeRepo, playerRepo, catalogClient)

	ctx := context.Background()
	response, err := handler.Handle(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to list trades: %w", err)
	}

	result := response.(*apptrading.ListTradesResponse)

	if len(result.Trades) == 0 {
		fmt.Println(emptyMessage)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WITH\tYOU SEND\tYOU GET\tWHERE\tWHEN")
	fmt.Fprintln(w, "----\t--------\t-------\t-----\t----")
	for _, trade := range result.Trades {
		fmt.Fprintf(w, "%s <%s>\t%s\t%s\t%.4f,%.4f\t%s %s\n",
			trade.OtherName, trade.OtherEmail,
			trade.SendItemName, trade.GetItemName,
			trade.Lat, trade.Lng, trade.Date, trade.Time)
	}
	w.Flush()

	return nil
}

// newTradeAcceptCommand creates the trade accept subcommand
func newTradeAcceptCommand() *cobra.Command {
	var proposerID string

	cmd := &cobra.Command{
		Use:   "accept",
		Short: "Accept a pending offer",
		Long: `Accept a pending offer addressed to you.

The proposer must still hold the item they offered; otherwise the
accept fails and the offer is gone. On success the trade becomes active
for both players.

Example:
  compass trade accept --player-id <id> --proposer-id <other-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if proposerID == "" {
				return fmt.Errorf("--proposer-id flag is required")
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			tradeRepo := persistence.NewGormTradeRepository(db)
			handler := apptrading.NewAcceptTradeHandler(tradeRepo)

			ctx := context.Background()
			response, err := handler.Handle(ctx, &apptrading.AcceptTradeCommand{
				CounterpartyID: id,
				ProposerID:     proposerID,
			})
			if err != nil {
				return fmt.Errorf("failed to accept trade: %w", err)
			}

			result := response.(*apptrading.AcceptTradeResponse)

			fmt.Println("✓ Trade accepted")
			fmt.Printf("  You get:  %s\n", result.OfferedItemID)
			fmt.Printf("  You send: %s\n", result.RequestedItemID)

			return nil
		},
	}

	cmd.Flags().StringVar(&proposerID, "proposer-id", "", "Proposer player id (required)")

	return cmd
}

// newTradeRejectCommand creates the trade reject subcommand
func newTradeRejectCommand() *cobra.Command {
	var proposerID string

	cmd := &cobra.Command{
		Use:   "reject",
		Short: "Reject a pending offer",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if proposerID == "" {
				return fmt.Errorf("--proposer-id flag is required")
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			tradeRepo := persistence.NewGormTradeRepository(db)
			handler := apptrading.NewRejectTradeHandler(tradeRepo)

			ctx := context.Background()
			if _, err := handler.Handle(ctx, &apptrading.RejectTradeCommand{
				CounterpartyID: id,
				ProposerID:     proposerID,
			}); err != nil {
				return fmt.Errorf("failed to reject trade: %w", err)
			}

			fmt.Println("✓ Trade rejected")

			return nil
		},
	}

	cmd.Flags().StringVar(&proposerID, "proposer-id", "", "Proposer player id (required)")

	return cmd
}

// newTradeConfirmCommand creates the trade confirm subcommand
func newTradeConfirmCommand() *cobra.Command {
	var otherID string

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm an active trade as completed",
		Long: `Confirm an active trade as completed, clearing it for both
players. With trading.swap_on_confirm enabled in config, the two items
are also moved between the inventories.

Example:
  compass trade confirm --player-id <id> --other-id <other-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if otherID == "" {
				return fmt.Errorf("--other-id flag is required")
			}

			cfg, db, err := connect()
			if err != nil {
				return err
			}

			tradeRepo := persistence.NewGormTradeRepository(db)
			handler := apptrading.NewConfirmTradeHandler(tradeRepo, cfg.Trading.SwapOnConfirm)

			ctx := context.Background()
			if _, err := handler.Handle(ctx, &apptrading.ConfirmTradeCommand{
				PlayerID: id,
				OtherID:  otherID,
			}); err != nil {
				return fmt.Errorf("failed to confirm trade: %w", err)
			}

			fmt.Println("✓ Trade confirmed")

			return nil
		},
	}

	cmd.Flags().StringVar(&otherID, "other-id", "", "Trade partner player id (required)")

	return cmd
}
