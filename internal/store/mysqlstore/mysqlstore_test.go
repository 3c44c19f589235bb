package mysqlstore

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/Makepad-fr/dayplan/internal/persist"
)

// testcontainers panics without a Docker daemon, so check first.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// newTestStore connects to DAYPLAN_MYSQL_DSN when set, otherwise to a
// throwaway MySQL container.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("DAYPLAN_MYSQL_DSN")
	if dsn == "" {
		if !dockerAvailable() {
			t.Skip("Docker not available, skipping MySQL tests")
		}
		ctx := context.Background()
		c, err := tcmysql.Run(ctx, "mysql:8.0.36", tcmysql.WithDatabase("dayplan"))
		require.NoError(t, err)
		t.Cleanup(func() {
			if err := testcontainers.TerminateContainer(c); err != nil {
				t.Logf("terminate mysql container: %v", err)
			}
		})
		dsn, err = c.ConnectionString(ctx)
		require.NoError(t, err)
	}

	s, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := newTestStore(t)

	key := "test-" + t.Name()
	t.Cleanup(func() { _, _ = s.db.Exec(`DELETE FROM kv_store WHERE k = ?`, key) })

	_, err := s.Get(key)
	assert.ErrorIs(t, err, persist.ErrNotFound)

	require.NoError(t, s.Put(key, []byte("a")))
	require.NoError(t, s.Put(key, []byte("b")))

	got, err := s.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))

	var rows int
	require.NoError(t, s.db.Get(&rows, `SELECT COUNT(*) FROM kv_store WHERE k = ?`, key))
	assert.Equal(t, 1, rows, "second put updates in place")
}

func TestNew_MigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.migrate(context.Background()))
}

func TestStore_BacksAdapter(t *testing.T) {
	s := newTestStore(t)
	key := "test-" + t.Name()
	t.Cleanup(func() { _, _ = s.db.Exec(`DELETE FROM kv_store WHERE k = ?`, key) })

	a := persist.NewAdapter(s, persist.WithKey(key))
	assert.Empty(t, a.Load())

	require.NoError(t, a.Save(nil))
	raw, err := s.Get(key)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestNew_RequiresDSN(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
