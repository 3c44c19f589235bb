package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/Makepad-fr/dayplan/internal/persist"
)

const defaultTimeout = 5 * time.Second

var _ persist.KV = (*Store)(nil)

type Store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// New connects to dsn and creates the kv_store table if needed.
func New(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("mysqlstore: dsn is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	s := &Store{db: db, timeout: defaultTimeout}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	const createKV = `CREATE TABLE IF NOT EXISTS kv_store (
    k VARCHAR(191) PRIMARY KEY,
    v LONGBLOB NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`
	_, err := s.db.ExecContext(ctx, createKV)
	return err
}

func (s *Store) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var v []byte
	if err := s.db.GetContext(ctx, &v, `SELECT v FROM kv_store WHERE k = ?`, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persist.ErrNotFound
		}
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Put(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_store (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`,
		key, value)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
