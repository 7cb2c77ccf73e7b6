package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	appcrafting "github.com/summonerscompass/compass-go/internal/application/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/test/helpers"
)

type craftingContext struct {
	inventoryRepo *persistence.GormInventoryRepository
	handler       *appcrafting.CombineItemsHandler
	resultItemID  string
	err           error
}

func (cc *craftingContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	cc.inventoryRepo = persistence.NewGormInventoryRepository(helpers.SharedTestDB)
	cc.handler = appcrafting.NewCombineItemsHandler(cc.inventoryRepo, crafting.DefaultRecipeBook())
	cc.resultItemID = ""
	cc.err = nil
	return nil
}

func (cc *craftingContext) playerIsHoldingOfItem(playerID string, count int, itemID string) error {
	return cc.inventoryRepo.Add(context.Background(), shared.MustNewPlayerID(playerID), itemID, count)
}

func (cc *craftingContext) playerCombinesWith(playerID, itemA, itemB string) error {
	response, err := cc.handler.Handle(context.Background(), &appcrafting.CombineItemsCommand{
		PlayerID: playerID,
		ItemA:    itemA,
		ItemB:    itemB,
	})
	cc.err = err
	if err == nil {
		cc.resultItemID = response.(*appcrafting.CombineItemsResponse).ResultItemID
	}
	return nil
}

func (cc *craftingContext) theCombinationShouldYield(itemID string) error {
	if cc.err != nil {
		return fmt.Errorf("expected success but got error: %v", cc.err)
	}
	if cc.resultItemID != itemID {
		return fmt.Errorf("expected result %s but got %s", itemID, cc.resultItemID)
	}
	return nil
}

func (cc *craftingContext) theCombinationShouldFailWith(message string) error {
	if cc.err == nil {
		return fmt.Errorf("expected failure but the combination succeeded")
	}
	if !strings.Contains(cc.err.Error(), message) {
		return fmt.Errorf("expected error containing %q but got %q", message, cc.err.Error())
	}
	return nil
}

func (cc *craftingContext) playerShouldBeHoldingOfItem(playerID string, count int, itemID string) error {
	inv, err := cc.inventoryRepo.Get(context.Background(), shared.MustNewPlayerID(playerID))
	if err != nil {
		return err
	}
	if inv.Count(itemID) != count {
		return fmt.Errorf("expected %d of %s but found %d", count, itemID, inv.Count(itemID))
	}
	return nil
}

// InitializeCraftingScenario registers the item combination steps
func InitializeCraftingScenario(ctx *godog.ScenarioContext) {
	cc := &craftingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, cc.reset()
	})

	ctx.Step(`^player "([^"]*)" is holding (\d+) of item "([^"]*)"$`, cc.playerIsHoldingOfItem)
	ctx.Step(`^player "([^"]*)" combines "([^"]*)" with "([^"]*)"$`, cc.playerCombinesWith)
	ctx.Step(`^the combination should yield "([^"]*)"$`, cc.theCombinationShouldYield)
	ctx.Step(`^the combination should fail with "([^"]*)"$`, cc.theCombinationShouldFailWith)
	ctx.Step(`^player "([^"]*)" should be holding (\d+) of item "([^"]*)"$`, cc.playerShouldBeHoldingOfItem)
}
