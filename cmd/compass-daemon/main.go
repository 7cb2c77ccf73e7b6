package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/summonerscompass/compass-go/internal/adapters/api"
	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	"github.com/summonerscompass/compass-go/internal/adapters/position"
	appcollectibles "github.com/summonerscompass/compass-go/internal/application/collectibles"
	"github.com/summonerscompass/compass-go/internal/application/common"
	appcrafting "github.com/summonerscompass/compass-go/internal/application/crafting"
	appplayer "github.com/summonerscompass/compass-go/internal/application/player"
	appsocial "github.com/summonerscompass/compass-go/internal/application/social"
	apptrading "github.com/summonerscompass/compass-go/internal/application/trading"
	"github.com/summonerscompass/compass-go/internal/domain/collectibles"
	"github.com/summonerscompass/compass-go/internal/domain/crafting"
	"github.com/summonerscompass/compass-go/internal/domain/shared"
	"github.com/summonerscompass/compass-go/internal/infrastructure/config"
	"github.com/summonerscompass/compass-go/internal/infrastructure/database"
	"github.com/summonerscompass/compass-go/internal/infrastructure/logging"
)

// positionFix is one NDJSON line on stdin. Plain fixes drive the session;
// teleport/reset lines drive the location-pinning transform.
type positionFix struct {
	Cmd     string  `json:"cmd,omitempty"` // "", "teleport" or "reset"
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Bearing float64 `json:"bearing"`
}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	playerID := flag.String("player-id", "", "Player to run the collectible session for")
	flag.Parse()

	fmt.Println("Compass Session Daemon v0.1.0")
	fmt.Println("=============================")

	if *playerID == "" {
		log.Fatal("--player-id flag is required")
	}

	cfg := config.MustLoadConfig(*configPath)

	if err := run(cfg, *playerID); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config, rawPlayerID string) error {
	// 1. Setup logging
	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	// 2. Setup database connection
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// 3. Initialize repositories and the catalog client
	playerRepo := persistence.NewGormPlayerRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)
	tradeRepo := persistence.NewGormTradeRepository(db)
	directory := persistence.NewGormSocialDirectory(db)
	catalogClient := api.NewDataDragonClientWithConfig(
		cfg.Catalog.BaseURL,
		cfg.Catalog.Retry.MaxAttempts,
		cfg.Catalog.Retry.BackoffBase,
		nil, // RealClock
	)
	fmt.Println("Repositories and catalog client initialized")

	// 4. Initialize mediator (CQRS dispatcher) and register handlers
	med := common.NewMediator()

	registrations := []struct {
		name     string
		register func() error
	}{
		{"RegisterPlayer", func() error {
			return common.RegisterHandler[*appplayer.RegisterPlayerCommand](med, appplayer.NewRegisterPlayerHandler(playerRepo))
		}},
		{"GetPlayer", func() error {
			return common.RegisterHandler[*appplayer.GetPlayerQuery](med, appplayer.NewGetPlayerHandler(playerRepo))
		}},
		{"CombineItems", func() error {
			return common.RegisterHandler[*appcrafting.CombineItemsCommand](med, appcrafting.NewCombineItemsHandler(inventoryRepo, crafting.DefaultRecipeBook()))
		}},
		{"ListInventory", func() error {
			return common.RegisterHandler[*appcrafting.ListInventoryQuery](med, appcrafting.NewListInventoryHandler(inventoryRepo, catalogClient))
		}},
		{"ProposeTrade", func() error {
			return common.RegisterHandler[*apptrading.ProposeTradeCommand](med, apptrading.NewProposeTradeHandler(tradeRepo, directory))
		}},
		{"AcceptTrade", func() error {
			return common.RegisterHandler[*apptrading.AcceptTradeCommand](med, apptrading.NewAcceptTradeHandler(tradeRepo))
		}},
		{"RejectTrade", func() error {
			return common.RegisterHandler[*apptrading.RejectTradeCommand](med, apptrading.NewRejectTradeHandler(tradeRepo))
		}},
		{"ConfirmTrade", func() error {
			return common.RegisterHandler[*apptrading.ConfirmTradeCommand](med, apptrading.NewConfirmTradeHandler(tradeRepo, cfg.Trading.SwapOnConfirm))
		}},
	}
	for _, registration := range registrations {
		if err := registration.register(); err != nil {
			return fmt.Errorf("failed to register %s handler: %w", registration.name, err)
		}
	}

	listTradesHandler := apptrading.NewListTradesHandler(tradeRepo, playerRepo, catalogClient)
	if err := common.RegisterHandler[*apptrading.ListTradeRequestsQuery](med, listTradesHandler); err != nil {
		return fmt.Errorf("failed to register ListTradeRequests handler: %w", err)
	}
	if err := common.RegisterHandler[*apptrading.ListActiveTradesQuery](med, listTradesHandler); err != nil {
		return fmt.Errorf("failed to register ListActiveTrades handler: %w", err)
	}

	friendsHandler := appsocial.NewFriendsHandler(directory, playerRepo)
	if err := common.RegisterHandler[*appsocial.ListFriendsQuery](med, friendsHandler); err != nil {
		return fmt.Errorf("failed to register ListFriends handler: %w", err)
	}
	fmt.Println("Mediator initialized")

	// 5. Resolve the session player
	pid, err := shared.NewPlayerID(rawPlayerID)
	if err != nil {
		return err
	}
	ctx := common.WithLogger(context.Background(), logger)
	if _, err := med.Send(ctx, &appplayer.GetPlayerQuery{PlayerID: rawPlayerID}); err != nil {
		return fmt.Errorf("unknown session player: %w", err)
	}

	// 6. Start the collectible session fed from stdin position fixes
	source := position.NewChannelSource()
	sessionConfig := appcollectibles.SessionConfig{
		SpawnInterval:  cfg.Game.SpawnInterval,
		ConsumeRadiusM: cfg.Game.ConsumeRadiusM,
		Policy: collectibles.SpawnPolicy{
			CountPerKind: cfg.Game.CountPerKind,
			JitterDeg:    cfg.Game.JitterDeg,
			MinPoolPower: cfg.Game.MinPoolPower,
			MaxPoolPower: cfg.Game.MaxPoolPower,
		},
	}
	session := appcollectibles.NewSession(pid, playerRepo, catalogClient, source, sessionConfig, nil)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	session.Start(ctx)

	go readFixes(source, session)

	fmt.Println("\n✓ Session is running")
	fmt.Println(`Feed NDJSON fixes on stdin, e.g. {"lat":40.4168,"lng":-3.7038,"bearing":90}`)
	fmt.Println("Press Ctrl+C to stop")

	// 7. Block until shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	cancel()
	if err := session.Close(); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	fmt.Println("\nDaemon stopped")
	return nil
}

// readFixes feeds stdin NDJSON lines into the session until EOF
func readFixes(source *position.ChannelSource, session *appcollectibles.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var fix positionFix
		if err := json.Unmarshal(line, &fix); err != nil {
			fmt.Fprintf(os.Stderr, "skipping malformed fix: %v\n", err)
			continue
		}

		switch fix.Cmd {
		case "teleport":
			target, err := shared.NewCoordinate(fix.Lat, fix.Lng)
			if err != nil {
				fmt.Fprintf(os.Stderr, "skipping teleport: %v\n", err)
				continue
			}
			session.Teleport(target)
		case "reset":
			session.ResetTeleport()
		default:
			coordinate, err := shared.NewCoordinate(fix.Lat, fix.Lng)
			if err != nil {
				fmt.Fprintf(os.Stderr, "skipping fix: %v\n", err)
				continue
			}
			source.Publish(coordinate, fix.Bearing)
		}
	}
	source.Close()
}
