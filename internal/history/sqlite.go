package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/caseharbor/placement-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS match_history (
	id           TEXT PRIMARY KEY,
	recorded_at  DATETIME NOT NULL,
	profile_hash TEXT NOT NULL,
	top_matches  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_match_history_recorded_at ON match_history(recorded_at);
CREATE INDEX IF NOT EXISTS idx_match_history_profile_hash ON match_history(profile_hash);
`

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadHistory(ctx context.Context) ([]model.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recorded_at, profile_hash, top_matches FROM match_history ORDER BY recorded_at`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load history")
	}
	defer rows.Close()

	var records []model.HistoryRecord
	for rows.Next() {
		var rec model.HistoryRecord
		var recordedAt string
		var topJSON string
		if err := rows.Scan(&recordedAt, &rec.ProfileHash, &topJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan history record")
		}
		ts, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: parse recorded_at")
		}
		rec.RecordedAt = ts
		if err := json.Unmarshal([]byte(topJSON), &rec.TopMatches); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal top matches")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate history")
}

// SaveHistory replaces the retained history atomically. Replace-all keeps
// the append-then-prune contract a single transaction.
func (s *SQLiteStore) SaveHistory(ctx context.Context, records []model.HistoryRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_history`); err != nil {
		return eris.Wrap(err, "sqlite: clear history")
	}

	for _, rec := range records {
		topJSON, err := json.Marshal(rec.TopMatches)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal top matches")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO match_history (id, recorded_at, profile_hash, top_matches) VALUES (?, ?, ?, ?)`,
			uuid.New().String(),
			rec.RecordedAt.UTC().Format(time.RFC3339Nano),
			rec.ProfileHash,
			string(topJSON),
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert history record")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit history")
}
