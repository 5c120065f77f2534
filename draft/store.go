// Package draft keeps unfinished form states between turns, keyed through
// the context.
package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/tbxark/formstate"
)

var ErrNoKey = errors.New("draft key not found in context")

type keyContext struct{}

// WithKey sets the draft key used by Store methods.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, keyContext{}, key)
}

func KeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(keyContext{}).(string)
	return key, ok && key != ""
}

// Store saves form states under "<namespace>:<key>".
type Store struct {
	core      Cache[formstate.State]
	namespace string
}

func NewStore(core Cache[formstate.State], namespace string) *Store {
	return &Store{core: core, namespace: namespace}
}

func NewMemoryStore(namespace string) *Store {
	return NewStore(NewMemoryCache[formstate.State](), namespace)
}

func (s *Store) key(ctx context.Context) (string, error) {
	key, ok := KeyFromContext(ctx)
	if !ok {
		return "", ErrNoKey
	}
	return s.namespace + ":" + key, nil
}

func (s *Store) Save(ctx context.Context, state formstate.State) error {
	key, err := s.key(ctx)
	if err != nil {
		return err
	}
	return s.core.Set(ctx, key, state)
}

func (s *Store) Load(ctx context.Context) (formstate.State, bool, error) {
	key, err := s.key(ctx)
	if err != nil {
		return formstate.State{}, false, err
	}
	return s.core.Get(ctx, key)
}

func (s *Store) Clear(ctx context.Context) error {
	key, err := s.key(ctx)
	if err != nil {
		return err
	}
	return s.core.Del(ctx, key)
}

// SaveForm stores a snapshot of f.
func (s *Store) SaveForm(ctx context.Context, f *formstate.Form) error {
	return s.Save(ctx, f.Snapshot())
}

// RestoreForm restores f from the saved draft. It reports whether a draft existed.
func (s *Store) RestoreForm(ctx context.Context, f *formstate.Form, opts ...formstate.CallOption) (bool, error) {
	state, ok, err := s.Load(ctx)
	if err != nil || !ok {
		return false, err
	}
	if err := f.Restore(state, opts...); err != nil {
		return false, fmt.Errorf("failed to restore draft: %w", err)
	}
	return true, nil
}
