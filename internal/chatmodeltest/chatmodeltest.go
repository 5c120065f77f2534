// Package chatmodeltest provides a scripted chat model for tests.
package chatmodeltest

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var _ model.ToolCallingChatModel = (*Fake)(nil)

// Fake answers every Generate call with a tool call carrying the next
// scripted arguments. It records the prompts it received.
type Fake struct {
	mu        sync.Mutex
	Tool      string
	Arguments []string
	Err       error
	Prompts   [][]*schema.Message
}

func New(tool string, arguments ...string) *Fake {
	return &Fake{Tool: tool, Arguments: arguments}
}

func (f *Fake) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, input)
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Arguments) == 0 {
		return nil, errors.New("chatmodeltest: no scripted response left")
	}
	args := f.Arguments[0]
	f.Arguments = f.Arguments[1:]
	return &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: schema.FunctionCall{Name: f.Tool, Arguments: args},
		}},
	}, nil
}

func (f *Fake) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (f *Fake) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return f, nil
}

// LastPrompt returns the text of the last user message received.
func (f *Fake) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Prompts) == 0 {
		return ""
	}
	msgs := f.Prompts[len(f.Prompts)-1]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == schema.User {
			return msgs[i].Content
		}
	}
	return ""
}
