package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/summonerscompass/compass-go/internal/adapters/api"
	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	appcrafting "github.com/summonerscompass/compass-go/internal/application/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// NewInventoryCommand creates the inventory command with subcommands
func NewInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage item inventories",
		Long: `Manage a player's item inventory.

Items are held as count stacks. Two held items can be combined into
their crafted result when a recipe exists for the pair.

Examples:
  compass inventory list --player-id <id>
  compass inventory add --player-id <id> --item 1038
  compass inventory combine --player-id <id> --item-a 1058 --item-b 1011`,
	}

	cmd.AddCommand(newInventoryListCommand())
	cmd.AddCommand(newInventoryAddCommand())
	cmd.AddCommand(newInventoryCombineCommand())

	return cmd
}

// newInventoryListCommand creates the inventory list subcommand
func newInventoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a player's holdings",
		Long: `List a player's holdings enriched with catalog names and prices.

Example:
  compass inventory list --player-id <id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			inventoryRepo := persistence.NewGormInventoryRepository(db)
			catalogClient := api.NewDataDragonClient()
			handler := appcrafting.NewListInventoryHandler(inventoryRepo, catalogClient)

			ctx := context.Background()
			response, err := handler.Handle(ctx, &appcrafting.ListInventoryQuery{PlayerID: id})
			if err != nil {
				return fmt.Errorf("failed to list inventory: %w", err)
			}

			result := response.(*appcrafting.ListInventoryResponse)

			if len(result.Entries) == 0 {
				fmt.Println("Inventory is empty.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ITEM ID\tNAME\tCOUNT\tGOLD")
			fmt.Fprintln(w, "-------\t----\t-----\t----")
			for _, entry := range result.Entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
					entry.ItemID, entry.Name, entry.Count, entry.Gold)
			}
			w.Flush()

			return nil
		},
	}

	return cmd
}

// newInventoryAddCommand creates the inventory add subcommand
func newInventoryAddCommand() *cobra.Command {
	var (
		itemID string
		count  int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Credit an item to a player",
		Long: `Credit units of an item to a player's inventory, creating the
stack if absent.

Example:
  compass inventory add --player-id <id> --item 1038 --count 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if itemID == "" {
				return fmt.Errorf("--item flag is required")
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			inventoryRepo := persistence.NewGormInventoryRepository(db)

			ctx := context.Background()
			pid, err := shared.NewPlayerID(id)
			if err != nil {
				return err
			}
			if err := inventoryRepo.Add(ctx, pid, itemID, count); err != nil {
				return fmt.Errorf("failed to add item: %w", err)
			}

			fmt.Printf("✓ Added %d x %s\n", count, itemID)

			return nil
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "Item id (required)")
	cmd.Flags().IntVar(&count, "count", 1, "Units to add")

	return cmd
}

// newInventoryCombineCommand creates the inventory combine subcommand
func newInventoryCombineCommand() *cobra.Command {
	var (
		itemA string
		itemB string
	)

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Combine two held items into their crafted result",
		Long: `Combine two held items into their crafted result.

The pair is order-independent. Combining an item with itself requires
holding at least two of it. On success both ingredients are debited and
the result credited in one atomic update.

Example:
  compass inventory combine --player-id <id> --item-a 1058 --item-b 1011`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if itemA == "" || itemB == "" {
				return fmt.Errorf("--item-a and --item-b flags are required")
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			inventoryRepo := persistence.NewGormInventoryRepository(db)
			handler := appcrafting.NewCombineItemsHandler(inventoryRepo, crafting.DefaultRecipeBook())

			ctx := context.Background()
			response, err := handler.Handle(ctx, &appcrafting.CombineItemsCommand{
				PlayerID: id,
				ItemA:    itemA,
				ItemB:    itemB,
			})
			if err != nil {
				return fmt.Errorf("failed to combine items: %w", err)
			}

			result := response.(*appcrafting.CombineItemsResponse)

			fmt.Printf("✓ Crafted %s from %s + %s\n", result.ResultItemID, itemA, itemB)

			return nil
		},
	}

	cmd.Flags().StringVar(&itemA, "item-a", "", "First ingredient item id (required)")
	cmd.Flags().StringVar(&itemB, "item-b", "", "Second ingredient item id (required)")

	return cmd
}
