package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

type observed struct {
	mu  sync.Mutex
	ops []string
}

func (o *observed) ObserveQuery(operation, status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, operation+":"+status)
}

func openDB(t *testing.T) (*DB, *observed) {
	t.Helper()
	raw, err := sql.Open(sqlbuilder.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	obs := &observed{}
	db := Wrap(raw, obs)
	_, err = db.ExecContext(context.Background(), "CREATE TABLE items (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
	return db, obs
}

func TestObservesQueries(t *testing.T) {
	db, obs := openDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "INSERT INTO items (id) VALUES (1)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO missing (id) VALUES (1)")
	require.Error(t, err)

	assert.Equal(t, []string{"create:ok", "insert:ok", "insert:error"}, obs.ops)
}

func TestDo_CommitsAndRollsBack(t *testing.T) {
	db, _ := openDB(t)
	ctx := context.Background()

	err := db.Do(ctx, func(ctx context.Context) error {
		_, err := GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO items (id) VALUES (1)")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.Do(ctx, func(ctx context.Context) error {
		if _, err := GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO items (id) VALUES (2)"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGetExecutor_DefaultsToDB(t *testing.T) {
	db, _ := openDB(t)
	assert.Same(t, db, GetExecutor(context.Background(), db))
}
