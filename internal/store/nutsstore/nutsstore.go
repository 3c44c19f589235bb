package nutsstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/nutsdb/nutsdb"

	"github.com/Makepad-fr/dayplan/internal/persist"
)

const bucket = "dayplan"

var _ persist.KV = (*Store)(nil)

type Store struct {
	db *nutsdb.DB
}

// New opens (or creates) a NutsDB database in dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	opts := nutsdb.DefaultOptions
	opts.Dir = dir
	db, err := nutsdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open nutsdb: %w", err)
	}

	if err := db.Update(func(tx *nutsdb.Tx) error {
		return tx.NewBucket(nutsdb.DataStructureBTree, bucket)
	}); err != nil {
		if !errors.Is(err, nutsdb.ErrBucketAlreadyExist) {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *nutsdb.Tx) error {
		v, err := tx.Get(bucket, []byte(key))
		if err != nil {
			return err
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if errors.Is(err, nutsdb.ErrKeyNotFound) || errors.Is(err, nutsdb.ErrBucketNotFound) {
			return nil, persist.ErrNotFound
		}
		return nil, fmt.Errorf("nutsdb get: %w", err)
	}
	return data, nil
}

// Put stores value without TTL (0 = persistent).
func (s *Store) Put(key string, value []byte) error {
	return s.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(bucket, []byte(key), value, 0)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
