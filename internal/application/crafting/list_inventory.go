package crafting

import (
	"context"
	"fmt"

	"github.com/summonerscompass/compass-go/internal/application/common"
	"github.com/summonerscompass/compass-go/internal/domain/catalog"
	"github.com/summonerscompass/compass-go/internal/domain/inventory"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
)

// ListInventoryQuery returns the player's holdings enriched with catalog
// descriptors for display. Enrichment tolerates partial failure: an item
// missing from the catalog is skipped and logged, never aborts the listing.
type ListInventoryQuery struct {
	PlayerID string
}

// InventoryEntry is one enriched stack in the listing
type InventoryEntry struct {
	ItemID   string
	Count    int
	Name     string
	ImageRef string
	Gold     int
}

// ListInventoryResponse contains the enriched holdings
type ListInventoryResponse struct {
	Entries []InventoryEntry
}

// ListInventoryHandler reads holdings and joins them with the catalog
type ListInventoryHandler struct {
	inventoryRepo inventory.Repository
	catalogClient catalog.Client
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(inventoryRepo inventory.Repository, catalogClient catalog.Client) *ListInventoryHandler {
	return &ListInventoryHandler{inventoryRepo: inventoryRepo, catalogClient: catalogClient}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListInventoryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, err
	}

	inv, err := h.inventoryRepo.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	items, err := h.catalogClient.GetItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	entries := make([]InventoryEntry, 0, len(inv))
	for _, stack := range inv.Stacks() {
		descriptor, found := items[stack.ItemID]
		if !found {
			logger.Log("warn", "item missing from catalog, skipping", map[string]interface{}{
				"item_id": stack.ItemID,
			})
			continue
		}
		entries = append(entries, InventoryEntry{
			ItemID:   stack.ItemID,
			Count:    stack.Count,
			Name:     descriptor.Name,
			ImageRef: descriptor.ImageRef,
			Gold:     descriptor.GoldTotal,
		})
	}

	return &ListInventoryResponse{Entries: entries}, nil
}
