// Package store persists completed match results to Postgres. It is a
// collaborator of the engine, never a dependency of it: the simulation emits
// result records and this package happens to be listening.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/volley/game"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS match_results (
	id          UUID PRIMARY KEY,
	match_id    TEXT NOT NULL,
	winner_name TEXT NOT NULL,
	winner_id   TEXT NOT NULL DEFAULT '',
	score_delta INT  NOT NULL,
	won         BOOLEAN NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const insertResult = `
INSERT INTO match_results (id, match_id, winner_name, winner_id, score_delta, won, recorded_at)
VALUES (:id, :match_id, :winner_name, :winner_id, :score_delta, :won, :recorded_at)`

// ResultRow is the persisted shape of a game.Result.
type ResultRow struct {
	ID         string    `db:"id"`
	MatchID    string    `db:"match_id"`
	WinnerName string    `db:"winner_name"`
	WinnerID   string    `db:"winner_id"`
	ScoreDelta int       `db:"score_delta"`
	Won        bool      `db:"won"`
	RecordedAt time.Time `db:"recorded_at"`
}

// Store writes match results to Postgres.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database and ensures the results table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// SaveResult records one completed match. Implements server.ResultSink.
func (s *Store) SaveResult(ctx context.Context, matchID string, result game.Result) error {
	row := NewResultRow(matchID, result)
	if _, err := s.db.NamedExecContext(ctx, insertResult, row); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// NewResultRow stamps a result record for insertion.
func NewResultRow(matchID string, result game.Result) ResultRow {
	return ResultRow{
		ID:         uuid.NewString(),
		MatchID:    matchID,
		WinnerName: result.WinnerName,
		WinnerID:   result.WinnerID,
		ScoreDelta: result.ScoreDelta,
		Won:        result.Won,
		RecordedAt: time.Now().UTC(),
	}
}
