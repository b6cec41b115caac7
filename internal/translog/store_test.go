package translog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	execs   []string
	batches []*pgx.Batch
	failAt  int
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeDB) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	f.batches = append(f.batches, b)
	return &fakeResults{db: f}
}

type fakeResults struct {
	db *fakeDB
}

func (r *fakeResults) Exec() (pgconn.CommandTag, error) {
	r.db.failAt--
	if r.db.failAt == 0 {
		return pgconn.CommandTag{}, errors.New("connection reset")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *fakeResults) Query() (pgx.Rows, error) { return nil, errors.New("not supported") }
func (r *fakeResults) QueryRow() pgx.Row        { return nil }
func (r *fakeResults) Close() error             { return nil }

func TestStoreSave(t *testing.T) {
	db := &fakeDB{}
	store := NewStore(db)

	require.NoError(t, store.EnsureSchema(context.Background()))
	n, err := store.Save(context.Background(), sampleLog(), 3)

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "translation_records")
	require.Len(t, db.batches, 2)
	assert.Equal(t, 3, db.batches[0].Len())
	assert.Equal(t, 1, db.batches[1].Len())

	args := db.batches[0].QueuedQueries[0].Arguments
	assert.Equal(t, "run-1", args[0])
	assert.Equal(t, "forward", args[2])
	assert.Equal(t, "section", args[3])
}

func TestStoreSaveStopsOnError(t *testing.T) {
	db := &fakeDB{failAt: 2}

	n, err := NewStore(db).Save(context.Background(), sampleLog(), 10)

	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "connection reset")
}
