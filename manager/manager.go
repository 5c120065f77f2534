// Package manager builds form item specs from a keyed dictionary.
package manager

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/tbxark/formstate/types"
)

var ErrItemNotFound = errors.New("form item not found")

// Manager is a lookup table of item specs. Every spec's ID is the
// dictionary key it was registered under.
type Manager struct {
	items map[string]types.Spec
}

func New(specs map[string]types.Spec) *Manager {
	items := make(map[string]types.Spec, len(specs))
	for id, spec := range specs {
		spec.ID = id
		items[id] = spec
	}
	return &Manager{items: items}
}

// GetItem returns a copy of the spec registered under id.
func (m *Manager) GetItem(id string) (types.Spec, error) {
	spec, ok := m.items[id]
	if !ok {
		return types.Spec{}, fmt.Errorf("get item %q: %w", id, ErrItemNotFound)
	}
	if spec.Extra != nil {
		spec.Extra = spec.Extra.Clone()
	}
	return spec, nil
}

// GetItems returns the specs for ids in the given order. It fails on the
// first unknown id.
func (m *Manager) GetItems(ids ...string) ([]types.Spec, error) {
	out := make([]types.Spec, 0, len(ids))
	for _, id := range ids {
		spec, err := m.GetItem(id)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// Keys returns the registered ids, sorted.
func (m *Manager) Keys() []string {
	return slices.Sorted(maps.Keys(m.items))
}
