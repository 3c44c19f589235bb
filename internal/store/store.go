// Package store opens the persist.KV backend named by configuration.
package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/dayplan/internal/conf"
	"github.com/Makepad-fr/dayplan/internal/persist"
	"github.com/Makepad-fr/dayplan/internal/store/filestore"
	"github.com/Makepad-fr/dayplan/internal/store/memstore"
	"github.com/Makepad-fr/dayplan/internal/store/mysqlstore"
	"github.com/Makepad-fr/dayplan/internal/store/nutsstore"
)

// Open returns the backend for c.Driver. ext is the file extension used
// by the file driver (".json" or ".cbor").
func Open(c conf.Storage, ext string) (persist.KV, error) {
	switch strings.ToLower(c.Driver) {
	case "", "file":
		return filestore.New(c.Path, ext)
	case "nutsdb":
		return nutsstore.New(filepath.Join(c.Path, "nutsdb"))
	case "mysql":
		return mysqlstore.New(c.DSN)
	case "memory":
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q (want file|nutsdb|mysql|memory)", c.Driver)
}

// OpenAdapter wires the configured backend and codec into a persist.Adapter.
// Callers close the returned KV.
func OpenAdapter(c conf.Storage, opts ...persist.Option) (*persist.Adapter, persist.KV, error) {
	codec, err := persist.CodecByName(c.Codec)
	if err != nil {
		return nil, nil, err
	}
	kv, err := Open(c, "."+codec.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", c.Driver, err)
	}
	opts = append([]persist.Option{persist.WithCodec(codec), persist.WithKey(c.Key)}, opts...)
	return persist.NewAdapter(kv, opts...), kv, nil
}
