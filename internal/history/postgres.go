package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/caseharbor/placement-cli/internal/db"
	"github.com/caseharbor/placement-cli/internal/model"
)

// PostgresStore implements Store using pgxpool, for deployments that share
// a database with the surrounding case-management application.
type PostgresStore struct {
	pool db.Pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS match_history (
	id           TEXT PRIMARY KEY,
	recorded_at  TIMESTAMPTZ NOT NULL,
	profile_hash TEXT NOT NULL,
	top_matches  JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_match_history_recorded_at ON match_history(recorded_at);
CREATE INDEX IF NOT EXISTS idx_match_history_profile_hash ON match_history(profile_hash);
`

// NewPostgres creates a PostgresStore with a connection pool and runs the
// migration.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	s := &PostgresStore{pool: pool}
	if _, err := pool.Exec(ctx, postgresMigration); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: migrate")
	}
	return s, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) LoadHistory(ctx context.Context) ([]model.HistoryRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT recorded_at, profile_hash, top_matches FROM match_history ORDER BY recorded_at`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load history")
	}
	defer rows.Close()

	var records []model.HistoryRecord
	for rows.Next() {
		var rec model.HistoryRecord
		var topJSON []byte
		if err := rows.Scan(&rec.RecordedAt, &rec.ProfileHash, &topJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan history record")
		}
		if err := json.Unmarshal(topJSON, &rec.TopMatches); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal top matches")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate history")
}

func (s *PostgresStore) SaveHistory(ctx context.Context, records []model.HistoryRecord) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM match_history`); err != nil {
		return eris.Wrap(err, "postgres: clear history")
	}

	for _, rec := range records {
		topJSON, err := json.Marshal(rec.TopMatches)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal top matches")
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO match_history (id, recorded_at, profile_hash, top_matches) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), rec.RecordedAt.UTC(), rec.ProfileHash, topJSON,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert history record")
		}
	}
	return nil
}
