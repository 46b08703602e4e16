package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/openwager/betchain/pkg/types"
)

// PostgresJournal implements Journal using PostgreSQL.
type PostgresJournal struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresJournal creates a new PostgreSQL journal.
func NewPostgresJournal(cfg *PostgresConfig) (*PostgresJournal, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-journal-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresJournal{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// RecordMatch inserts one matched bet with both side snapshots.
func (p *PostgresJournal) RecordMatch(ctx context.Context, mb *types.MatchedBet) error {
	query := `
		INSERT INTO matched_bets (
			id, game_uuid, market, created_at,
			bet1_uuid, bet1_better, bet1_wincase, bet1_odds, bet1_stake, bet1_payout,
			bet2_uuid, bet2_better, bet2_wincase, bet2_odds, bet2_stake, bet2_payout
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		mb.ID,
		mb.GameUUID.String(),
		mb.Market.String(),
		mb.Created,
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
	)

	if err != nil {
		return fmt.Errorf("insert matched bet: %w", err)
	}

	p.logger.Debug("matched-bet-journaled",
		zap.Int64("matched-bet-id", mb.ID),
		zap.String("game-uuid", mb.GameUUID.String()))

	return nil
}

// RecordResults inserts one row per winning wincase of the game.
func (p *PostgresJournal) RecordResults(ctx context.Context, g *types.Game) error {
	query := `
		INSERT INTO game_results (game_uuid, game_name, wincase, finished_at)
		VALUES ($1, $2, $3, $4)
	`

	for _, w := range g.Results {
		_, err := p.db.ExecContext(ctx, query,
			g.UUID.String(),
			g.Name,
			w.String(),
			g.LastUpdate,
		)
		if err != nil {
			return fmt.Errorf("insert game result: %w", err)
		}
	}

	p.logger.Debug("game-results-journaled",
		zap.String("game-uuid", g.UUID.String()),
		zap.Int("wincases", len(g.Results)))

	return nil
}

// Close closes the database connection.
func (p *PostgresJournal) Close() error {
	p.logger.Info("closing-postgres-journal")
	return p.db.Close()
}
