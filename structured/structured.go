// Package structured turns a forced tool call on a chat model into a typed result.
package structured

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type PromptBuilder[In any] func(ctx context.Context, in In) ([]*schema.Message, error)

// Tool asks the model to call a single tool whose arguments decode into Out.
type Tool[In, Out any] struct {
	prompt    PromptBuilder[In]
	chatModel model.ToolCallingChatModel
	info      *schema.ToolInfo
}

func NewTool[In, Out any](
	chatModel model.ToolCallingChatModel,
	prompt PromptBuilder[In],
	name string,
	desc string,
) (*Tool[In, Out], error) {
	info, err := utils.GoStruct2ToolInfo[Out](name, desc)
	if err != nil {
		return nil, fmt.Errorf("convert tool info failed: %w", err)
	}
	return &Tool[In, Out]{
		prompt:    prompt,
		chatModel: chatModel,
		info:      info,
	}, nil
}

func (t *Tool[In, Out]) Info() *schema.ToolInfo {
	return t.info
}

func (t *Tool[In, Out]) Call(ctx context.Context, in In) (*Out, error) {
	messages, err := t.prompt(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("build prompt failed: %w", err)
	}

	response, err := t.chatModel.Generate(ctx, messages,
		model.WithTools([]*schema.ToolInfo{t.info}),
		model.WithToolChoice(schema.ToolChoiceForced, t.info.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("call model failed: %w", err)
	}
	for _, call := range response.ToolCalls {
		if call.Function.Name != "" && call.Function.Name != t.info.Name {
			continue
		}
		var result Out
		if err := sonic.UnmarshalString(call.Function.Arguments, &result); err != nil {
			return nil, fmt.Errorf("parse ToolCall arguments failed: %w", err)
		}
		return &result, nil
	}
	return nil, fmt.Errorf("no %s ToolCall found in model response: %s", t.info.Name, response.Content)
}
