package journal

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openwager/betchain/pkg/types"
)

func testMatchedBet() *types.MatchedBet {
	created := time.Date(2024, 5, 12, 18, 30, 0, 0, time.UTC)

	return &types.MatchedBet{
		ID:       7,
		GameUUID: uuid.MustParse("e629f9aa-6b2c-46aa-8fa8-36d8109d2542"),
		Market:   types.Market{Kind: types.MarketTotal, Threshold: 2500},
		Created:  created,
		Bet1Data: types.BetData{
			UUID:    uuid.MustParse("9e331b08-0d82-4b3e-b8c4-05be26eed347"),
			Better:  "alice",
			Created: created,
			Wincase: types.Wincase{Kind: types.TotalOver, Threshold: 2500},
			Odds:    types.MustOdds(3, 2),
			Stake:   types.NewAsset(1000),
		},
		Bet2Data: types.BetData{
			UUID:    uuid.MustParse("f327fa2a-9868-4f87-9f93-c53b485def12"),
			Better:  "bob",
			Created: created,
			Wincase: types.Wincase{Kind: types.TotalUnder, Threshold: 2500},
			Odds:    types.MustOdds(3, 1),
			Stake:   types.NewAsset(500),
		},
		Bet1Payout: types.NewAsset(1500),
		Bet2Payout: types.NewAsset(1500),
	}
}

func testFinishedGame() *types.Game {
	return &types.Game{
		ID:         3,
		UUID:       uuid.MustParse("e629f9aa-6b2c-46aa-8fa8-36d8109d2542"),
		Name:       "moscow derby",
		Status:     types.GameFinished,
		LastUpdate: time.Date(2024, 5, 12, 20, 0, 0, 0, time.UTC),
		Results: []types.Wincase{
			{Kind: types.ResultHome},
			{Kind: types.TotalOver, Threshold: 2500},
		},
	}
}

func TestConsoleJournal_New(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	j := NewConsoleJournal(logger)

	if j == nil {
		t.Fatal("expected non-nil journal")
	}
	if j.logger == nil {
		t.Error("expected non-nil logger")
	}
}

func TestConsoleJournal_RecordMatch(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	j := NewConsoleJournal(logger)
	mb := testMatchedBet()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := j.RecordMatch(context.Background(), mb)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	output := buf.String()

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if !bytes.Contains([]byte(output), []byte("BETS MATCHED")) {
		t.Error("expected output to contain 'BETS MATCHED'")
	}
	if !bytes.Contains([]byte(output), []byte(mb.Bet1Data.Better)) {
		t.Errorf("expected output to contain better %s", mb.Bet1Data.Better)
	}
	if !bytes.Contains([]byte(output), []byte(mb.Bet2Data.Better)) {
		t.Errorf("expected output to contain better %s", mb.Bet2Data.Better)
	}
}

func TestConsoleJournal_Close(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	j := NewConsoleJournal(logger)

	if err := j.Close(); err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}
}

func TestPostgresJournal_RecordMatch(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	j := &PostgresJournal{
		db:     db,
		logger: logger,
	}

	mb := testMatchedBet()

	mock.ExpectExec("INSERT INTO matched_bets").
		WithArgs(
			mb.ID,
			mb.GameUUID.String(),
			mb.Market.String(),
			sqlmock.AnyArg(), // created_at
			mb.Bet1Data.UUID.String(),
			mb.Bet1Data.Better,
			mb.Bet1Data.Wincase.String(),
			mb.Bet1Data.Odds.String(),
			mb.Bet1Data.Stake.Amount,
			mb.Bet1Payout.Amount,
			mb.Bet2Data.UUID.String(),
			mb.Bet2Data.Better,
			mb.Bet2Data.Wincase.String(),
			mb.Bet2Data.Odds.String(),
			mb.Bet2Data.Stake.Amount,
			mb.Bet2Payout.Amount,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = j.RecordMatch(context.Background(), mb)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresJournal_RecordMatch_Error(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	j := &PostgresJournal{
		db:     db,
		logger: logger,
	}

	mock.ExpectExec("INSERT INTO matched_bets").
		WillReturnError(sqlmock.ErrCancelled)

	err = j.RecordMatch(context.Background(), testMatchedBet())
	if err == nil {
		t.Error("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresJournal_RecordResults(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	j := &PostgresJournal{
		db:     db,
		logger: logger,
	}

	g := testFinishedGame()

	for _, w := range g.Results {
		mock.ExpectExec("INSERT INTO game_results").
			WithArgs(
				g.UUID.String(),
				g.Name,
				w.String(),
				sqlmock.AnyArg(), // finished_at
			).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	err = j.RecordResults(context.Background(), g)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresJournal_Close(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	j := &PostgresJournal{
		db:     db,
		logger: logger,
	}

	mock.ExpectClose()

	if err := j.Close(); err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestJournal_Interface(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	var _ Journal = NewConsoleJournal(logger)

	db, _, _ := sqlmock.New()
	defer db.Close()

	var _ Journal = &PostgresJournal{db: db, logger: logger}
}
