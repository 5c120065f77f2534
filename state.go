package formstate

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/tbxark/formstate/types"
)

const stateVersion = "1.0"

type ItemState struct {
	Key       string `json:"key"`
	ID        string `json:"id"`
	Value     any    `json:"value"`
	Pristine  bool   `json:"pristine"`
	Valid     bool   `json:"valid"`
	ErrorText string `json:"error_text,omitempty"`
}

// State is a copy of the runtime state of a form. Hooks are not part of it.
type State struct {
	Version   string       `json:"version"`
	ID        string       `json:"id"`
	Items     []ItemState  `json:"items"`
	Data      types.Values `json:"data"`
	ErrorText string       `json:"error_text,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Snapshot copies the item states and the data object. Values themselves
// are not deep-copied.
func (f *Form) Snapshot() State {
	items := make([]ItemState, 0, len(f.items))
	for _, it := range f.items {
		items = append(items, ItemState{
			Key:       it.Key,
			ID:        it.ID,
			Value:     it.Value,
			Pristine:  it.Pristine,
			Valid:     it.Valid,
			ErrorText: it.ErrorText,
		})
	}
	return State{
		Version:   stateVersion,
		ID:        uuid.NewString(),
		Items:     items,
		Data:      f.data.Clone(),
		ErrorText: f.errorText,
		Timestamp: time.Now(),
	}
}

// Restore 从 State 恢复表单状态. Items are matched by key; unknown keys are
// ignored and items missing from s are left alone. Formatters are not run.
func (f *Form) Restore(s State, opts ...CallOption) error {
	if s.Version != stateVersion {
		return fmt.Errorf("incompatible checkpoint version: %s (expected %s)", s.Version, stateVersion)
	}
	for _, is := range s.Items {
		it, ok := f.GetItemByKey(is.Key)
		if !ok {
			continue
		}
		it.Value = is.Value
		it.Pristine = is.Pristine
		it.Valid = is.Valid
		it.ErrorText = is.ErrorText
		f.data[it.Key] = is.Value
	}
	f.errorText = s.ErrorText
	f.notify(newCallOptions(opts))
	return nil
}

func (s State) Marshal() ([]byte, error) {
	data, err := sonic.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a checkpoint written by State.Marshal. Numbers in
// values decode as float64.
func UnmarshalState(data []byte) (State, error) {
	var s State
	if err := sonic.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	if s.Version != stateVersion {
		return State{}, fmt.Errorf("incompatible checkpoint version: %s (expected %s)", s.Version, stateVersion)
	}
	return s, nil
}
