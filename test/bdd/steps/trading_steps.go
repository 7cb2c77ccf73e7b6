package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	apptrading "github.com/summonerscompass/compass-go/internal/application/trading"
	"github.com/summonerscompass/compass-go/internal/domain/player"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/test/helpers"
)

type tradingContext struct {
	tradeRepo     *persistence.GormTradeRepository
	inventoryRepo *persistence.GormInventoryRepository
	playerRepo    *persistence.GormPlayerRepository
	directory     *persistence.GormSocialDirectory
	err           error
}

func (tc *tradingContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	db := helpers.SharedTestDB
	tc.tradeRepo = persistence.NewGormTradeRepository(db)
	tc.inventoryRepo = persistence.NewGormInventoryRepository(db)
	tc.playerRepo = persistence.NewGormPlayerRepository(db)
	tc.directory = persistence.NewGormSocialDirectory(db)
	tc.err = nil
	return nil
}

func (tc *tradingContext) aRegisteredPlayerWithEmail(playerID, email string) error {
	p, err := player.NewPlayer(shared.MustNewPlayerID(playerID), playerID, email)
	if err != nil {
		return err
	}
	return tc.playerRepo.Register(context.Background(), p)
}

func (tc *tradingContext) playerHoldsOneOf(playerID, itemID string) error {
	return tc.inventoryRepo.Add(context.Background(), shared.MustNewPlayerID(playerID), itemID, 1)
}

func (tc *tradingContext) playerProposesToTradeForWith(proposerID, offered, requested, email string) error {
	handler := apptrading.NewProposeTradeHandler(tc.tradeRepo, tc.directory)
	_, tc.err = handler.Handle(context.Background(), &apptrading.ProposeTradeCommand{
		ProposerID:        proposerID,
		CounterpartyEmail: email,
		OfferedItemID:     offered,
		RequestedItemID:   requested,
		Lat:               40.4168,
		Lng:               -3.7038,
		Date:              "2026-09-01",
		Time:              "18:30",
	})
	return nil
}

func (tc *tradingContext) playerAcceptsTheOfferFrom(counterpartyID, proposerID string) error {
	handler := apptrading.NewAcceptTradeHandler(tc.tradeRepo)
	_, tc.err = handler.Handle(context.Background(), &apptrading.AcceptTradeCommand{
		CounterpartyID: counterpartyID,
		ProposerID:     proposerID,
	})
	return nil
}

func (tc *tradingContext) playerRejectsTheOfferFrom(counterpartyID, proposerID string) error {
	handler := apptrading.NewRejectTradeHandler(tc.tradeRepo)
	_, tc.err = handler.Handle(context.Background(), &apptrading.RejectTradeCommand{
		CounterpartyID: counterpartyID,
		ProposerID:     proposerID,
	})
	return nil
}

func (tc *tradingContext) playerConfirmsTheTradeWith(playerID, otherID string) error {
	handler := apptrading.NewConfirmTradeHandler(tc.tradeRepo, false)
	_, tc.err = handler.Handle(context.Background(), &apptrading.ConfirmTradeCommand{
		PlayerID: playerID,
		OtherID:  otherID,
	})
	return nil
}

func (tc *tradingContext) theTradeOperationShouldSucceed() error {
	if tc.err != nil {
		return fmt.Errorf("expected success but got error: %v", tc.err)
	}
	return nil
}

func (tc *tradingContext) theTradeOperationShouldFailWith(message string) error {
	if tc.err == nil {
		return fmt.Errorf("expected failure but the operation succeeded")
	}
	if !strings.Contains(tc.err.Error(), message) {
		return fmt.Errorf("expected error containing %q but got %q", message, tc.err.Error())
	}
	return nil
}

func (tc *tradingContext) playerShouldHavePendingOffers(playerID string, count int) error {
	offers, err := tc.tradeRepo.ListOffersFor(context.Background(), shared.MustNewPlayerID(playerID))
	if err != nil {
		return err
	}
	if len(offers) != count {
		return fmt.Errorf("expected %d pending offers but found %d", count, len(offers))
	}
	return nil
}

func (tc *tradingContext) playerShouldHaveActiveTrades(playerID string, count int) error {
	trades, err := tc.tradeRepo.ListActiveTrades(context.Background(), shared.MustNewPlayerID(playerID))
	if err != nil {
		return err
	}
	if len(trades) != count {
		return fmt.Errorf("expected %d active trades but found %d", count, len(trades))
	}
	return nil
}

// InitializeTradingScenario registers the trade negotiation steps
func InitializeTradingScenario(ctx *godog.ScenarioContext) {
	tc := &tradingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})

	ctx.Step(`^a registered player "([^"]*)" with email "([^"]*)"$`, tc.aRegisteredPlayerWithEmail)
	ctx.Step(`^player "([^"]*)" holds one "([^"]*)"$`, tc.playerHoldsOneOf)
	ctx.Step(`^player "([^"]*)" proposes to trade "([^"]*)" for "([^"]*)" with "([^"]*)"$`, tc.playerProposesToTradeForWith)
	ctx.Step(`^player "([^"]*)" accepts the offer from "([^"]*)"$`, tc.playerAcceptsTheOfferFrom)
	ctx.Step(`^player "([^"]*)" rejects the offer from "([^"]*)"$`, tc.playerRejectsTheOfferFrom)
	ctx.Step(`^player "([^"]*)" confirms the trade with "([^"]*)"$`, tc.playerConfirmsTheTradeWith)
	ctx.Step(`^the trade operation should succeed$`, tc.theTradeOperationShouldSucceed)
	ctx.Step(`^the trade operation should fail with "([^"]*)"$`, tc.theTradeOperationShouldFailWith)
	ctx.Step(`^player "([^"]*)" should have (\d+) pending offers?$`, tc.playerShouldHavePendingOffers)
	ctx.Step(`^player "([^"]*)" should have (\d+) active trades?$`, tc.playerShouldHaveActiveTrades)
}
