package persist

import (
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Makepad-fr/dayplan/internal/model"
)

// Adapter persists the whole task list as a single value under one key.
type Adapter struct {
	kv    KV
	codec Codec
	key   string
	log   *log.Helper
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCodec overrides the default JSON codec.
func WithCodec(c Codec) Option {
	return func(a *Adapter) {
		if c != nil {
			a.codec = c
		}
	}
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger sets the logger used to report degraded loads.
func WithLogger(l log.Logger) Option {
	return func(a *Adapter) {
		a.log = log.NewHelper(log.With(l, "module", "persist"))
	}
}

func NewAdapter(kv KV, opts ...Option) *Adapter {
	a := &Adapter{
		kv:    kv,
		codec: JSONCodec{},
		key:   DefaultKey,
		log:   log.NewHelper(log.With(log.GetLogger(), "module", "persist")),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Load reads the stored list. A missing key, unreadable store or
// undecodable value all yield an empty list.
func (a *Adapter) Load() []model.Task {
	b, err := a.kv.Get(a.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.log.Warnf("load %s: %v; starting with no tasks", a.key, err)
		}
		return []model.Task{}
	}
	if len(b) == 0 {
		return []model.Task{}
	}
	tasks, err := a.codec.Unmarshal(b)
	if err != nil {
		a.log.Warnf("decode %s (%s): %v; starting with no tasks", a.key, a.codec.Name(), err)
		return []model.Task{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks
}

// Save replaces the stored value with the encoded list.
func (a *Adapter) Save(tasks []model.Task) error {
	b, err := a.codec.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", a.codec.Name(), err)
	}
	if err := a.kv.Put(a.key, b); err != nil {
		return fmt.Errorf("put %s: %w", a.key, err)
	}
	return nil
}

// Key returns the entry name the list is stored under.
func (a *Adapter) Key() string { return a.key }
