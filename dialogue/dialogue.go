// Package dialogue produces the next message to show while a form is filled.
package dialogue

import (
	"context"
	"errors"

	"github.com/tbxark/formstate"
	"github.com/tbxark/formstate/item"
	"github.com/tbxark/formstate/types"
)

var ErrNoGenerator = errors.New("no dialogue generator configured")

type Generator interface {
	Next(ctx context.Context, f *formstate.Form) (string, error)
}

// Local asks about the first item with an error, then about the first
// required item without a value.
type Local struct {
	// AskTemplate may contain {label}; the item key is used when the label is empty.
	AskTemplate string
	DoneMessage string
}

func NewLocal() *Local {
	return &Local{
		AskTemplate: "Please provide {label}.",
		DoneMessage: "All fields are filled in. Reply \"confirm\" to submit.",
	}
}

func (g *Local) Next(ctx context.Context, f *formstate.Form) (string, error) {
	if text := f.ErrorText(); text != "" {
		return text, nil
	}
	for _, it := range f.Items() {
		if f.Required(it) && types.IsEmpty(it.Value) {
			label := it.Label
			if label == "" {
				label = it.Key
			}
			return item.EmptyText(g.AskTemplate, label), nil
		}
	}
	return g.DoneMessage, nil
}

type FallbackGenerator struct {
	generators []Generator
}

func NewFallbackGenerator(generators ...Generator) *FallbackGenerator {
	return &FallbackGenerator{generators: generators}
}

func (g *FallbackGenerator) Next(ctx context.Context, f *formstate.Form) (string, error) {
	lastErr := ErrNoGenerator
	for _, generator := range g.generators {
		msg, err := generator.Next(ctx, f)
		if err == nil {
			return msg, nil
		}
		lastErr = err
	}
	return "", lastErr
}
