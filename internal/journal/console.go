package journal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openwager/betchain/pkg/types"
)

// ConsoleJournal implements Journal by pretty-printing to console.
type ConsoleJournal struct {
	logger *zap.Logger
}

// NewConsoleJournal creates a new console journal.
func NewConsoleJournal(logger *zap.Logger) *ConsoleJournal {
	logger.Info("console-journal-initialized")
	return &ConsoleJournal{
		logger: logger,
	}
}

// RecordMatch pretty-prints a matched bet to console.
func (c *ConsoleJournal) RecordMatch(ctx context.Context, mb *types.MatchedBet) error {
	fmt.Println("\n" + "────────────────────────────────────────────────────────────")
	fmt.Printf("BETS MATCHED #%d\n", mb.ID)
	fmt.Println("────────────────────────────────────────────────────────────")
	fmt.Printf("Game:    %s\n", mb.GameUUID)
	fmt.Printf("Market:  %s\n", mb.Market)
	fmt.Printf("Time:    %s\n", mb.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("Side 1:  %s on %s @ %s, stake %s, pays %s\n",
		mb.Bet1Data.Better, mb.Bet1Data.Wincase, mb.Bet1Data.Odds, mb.Bet1Data.Stake, mb.Bet1Payout)
	fmt.Printf("Side 2:  %s on %s @ %s, stake %s, pays %s\n",
		mb.Bet2Data.Better, mb.Bet2Data.Wincase, mb.Bet2Data.Odds, mb.Bet2Data.Stake, mb.Bet2Payout)
	fmt.Println("────────────────────────────────────────────────────────────")

	return nil
}

// RecordResults pretty-prints a game's outcome set to console.
func (c *ConsoleJournal) RecordResults(ctx context.Context, g *types.Game) error {
	fmt.Println("\n" + "────────────────────────────────────────────────────────────")
	fmt.Printf("GAME FINISHED: %s\n", g.Name)
	fmt.Println("────────────────────────────────────────────────────────────")
	fmt.Printf("Game:    %s\n", g.UUID)
	for _, w := range g.Results {
		fmt.Printf("Winner:  %s\n", w)
	}
	fmt.Println("────────────────────────────────────────────────────────────")

	return nil
}

// Close is a no-op for console journal.
func (c *ConsoleJournal) Close() error {
	c.logger.Info("closing-console-journal")
	return nil
}
