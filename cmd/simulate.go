package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openwager/betchain/internal/app"
	"github.com/openwager/betchain/internal/evaluators"
	"github.com/openwager/betchain/pkg/config"
	"github.com/openwager/betchain/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a scripted game lifecycle and print the outcome",
	Long: `Runs one full game lifecycle against a fresh engine without
starting the HTTP surface: create a game, place two opposing bets that
match, start the game, post results, then print the winners and the
final ledger balances.

Blocks are applied with synthetic timestamps, so repeated runs produce
identical matching and settlement.`,
	RunE: runSimulation,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(simulateCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	engine, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer func() {
		_ = engine.Shutdown()
	}()

	base := time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC)
	step := cfg.BlockInterval
	gameID := uuid.New()

	engine.Deposit("alice", 10_000)
	engine.Deposit("bob", 10_000)

	// Block 1: create the game.
	if err := submit(engine, evaluators.CreateGameOp{
		UUID:             gameID,
		Moderator:        cfg.BettingModerator,
		Name:             "simulated derby",
		Kind:             types.SoccerGame,
		Start:            base.Add(2 * step),
		AutoResolveDelay: time.Hour,
		Markets: []types.Market{
			{Kind: types.MarketResultHome},
			{Kind: types.MarketTotal, Threshold: 2500},
		},
	}); err != nil {
		return err
	}
	engine.ProcessBlock(base)

	// Block 2: two opposing bets at coupled odds; they match in full.
	if err := submit(engine, evaluators.PostBetOp{
		BetUUID:  uuid.New(),
		Better:   "alice",
		GameUUID: gameID,
		Wincase:  types.Wincase{Kind: types.ResultHome},
		Odds:     types.MustOdds(3, 1),
		Stake:    types.NewAsset(1000),
		Live:     false,
	}); err != nil {
		return err
	}
	if err := submit(engine, evaluators.PostBetOp{
		BetUUID:  uuid.New(),
		Better:   "bob",
		GameUUID: gameID,
		Wincase:  types.Wincase{Kind: types.ResultDrawAway},
		Odds:     types.MustOdds(3, 2),
		Stake:    types.NewAsset(2000),
		Live:     false,
	}); err != nil {
		return err
	}
	engine.ProcessBlock(base.Add(step))

	// Block 3: the game starts.
	engine.ProcessBlock(base.Add(2 * step))

	// Block 4: the moderator posts the result.
	if err := submit(engine, evaluators.PostGameResultsOp{
		GameUUID:  gameID,
		Moderator: cfg.BettingModerator,
		Wincases: []types.Wincase{
			{Kind: types.ResultHome},
			{Kind: types.TotalOver, Threshold: 2500},
		},
	}); err != nil {
		return err
	}
	engine.ProcessBlock(base.Add(3 * step))

	winners, err := engine.Winners(gameID)
	if err != nil {
		return fmt.Errorf("query winners: %w", err)
	}

	fmt.Println("winners:")
	for _, w := range winners {
		fmt.Printf("  %s: %s beats %s (stake %s vs %s)\n",
			w.Market, w.Winner.Better, w.Loser.Better, w.Winner.Stake, w.Loser.Stake)
	}

	fmt.Println("balances:")
	for _, account := range []string{"alice", "bob"} {
		fmt.Printf("  %s: %s\n", account, engine.Balance(account))
	}

	return nil
}

func submit(engine *app.App, op any) error {
	if err := engine.Submit(op); err != nil {
		return fmt.Errorf("submit %T: %w", op, err)
	}

	return nil
}
