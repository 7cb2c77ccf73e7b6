package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/summonerscompass/compass-go/test/bdd/steps"
	"github.com/summonerscompass/compass-go/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Register all step definitions
	steps.InitializeLevelingScenario(sc)
	steps.InitializeCraftingScenario(sc)
	steps.InitializeTradingScenario(sc)
}

func TestMain(m *testing.M) {
	// Initialize shared test database for all integration tests
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}
	defer helpers.CloseSharedTestDB()

	os.Exit(m.Run())
}
