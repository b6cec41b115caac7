package translog

import (
	"context"
	"fmt"

	"unit-translator/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS translation_records (
	run_id      UUID        NOT NULL,
	hash        TEXT        NOT NULL,
	direction   TEXT        NOT NULL,
	kind        TEXT        NOT NULL,
	source      TEXT        NOT NULL,
	target      TEXT        NOT NULL,
	file        TEXT        NOT NULL,
	occurrences INTEGER     NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, hash)
)`

const upsertRecordSQL = `
INSERT INTO translation_records (run_id, hash, direction, kind, source, target, file, occurrences)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (run_id, hash) DO UPDATE SET occurrences = EXCLUDED.occurrences`

// Store persists translation logs in PostgreSQL.
type Store struct {
	db DB
}

// NewStore creates a store over db (normally a *pgxpool.Pool).
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the records table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create translation_records: %w", err)
	}
	return nil
}

// Save upserts the log's distinct records in batches and returns how many rows were written.
func (s *Store) Save(ctx context.Context, l *Log, batchSize int) (int, error) {
	written := 0
	for _, chunk := range worker.Batch(l.Aggregates(), batchSize) {
		batch := &pgx.Batch{}
		for _, a := range chunk {
			batch.Queue(upsertRecordSQL, l.RunID, a.Hash, l.Direction, a.Kind, a.Source, a.Target, a.File, a.Occurrences)
		}

		n, err := s.sendBatch(ctx, batch)
		written += n
		if err != nil {
			return written, err
		}
	}

	log.Info().Str("run", l.RunID).Int("rows", written).Msg("Saved translation log")
	return written, nil
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch) (int, error) {
	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			return written, fmt.Errorf("upsert translation record: %w", err)
		}
		written += int(tag.RowsAffected())
	}
	return written, nil
}
