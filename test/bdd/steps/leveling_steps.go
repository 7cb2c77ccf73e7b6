package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/summonerscompass/compass-go/internal/domain/collectibles"
)

type levelingContext struct {
	power    int
	level    int
	progress float64
}

func (lc *levelingContext) reset() {
	lc.power = 0
	lc.level = 0
	lc.progress = 0
}

func (lc *levelingContext) aPlayerWithCumulativePower(power int) error {
	lc.power = power
	return nil
}

func (lc *levelingContext) theLevelIsProjected() error {
	lc.level = collectibles.Level(lc.power)
	lc.progress = collectibles.Progress(lc.power)
	return nil
}

func (lc *levelingContext) theLevelShouldBe(expected int) error {
	if lc.level != expected {
		return fmt.Errorf("expected level %d but got %d", expected, lc.level)
	}
	return nil
}

func (lc *levelingContext) theProgressShouldBe(expected float64) error {
	if math.Abs(lc.progress-expected) > 1e-9 {
		return fmt.Errorf("expected progress %.4f but got %.4f", expected, lc.progress)
	}
	return nil
}

// InitializeLevelingScenario registers the leveling projection steps
func InitializeLevelingScenario(ctx *godog.ScenarioContext) {
	lc := &levelingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		lc.reset()
		return ctx, nil
	})

	ctx.Step(`^a player with cumulative power (\d+)$`, lc.aPlayerWithCumulativePower)
	ctx.Step(`^the level is projected$`, lc.theLevelIsProjected)
	ctx.Step(`^the level should be (\d+)$`, lc.theLevelShouldBe)
	ctx.Step(`^the progress should be ([0-9.]+)$`, lc.theProgressShouldBe)
}
