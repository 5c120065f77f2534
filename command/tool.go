package command

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/formstate/structured"
)

const (
	parseCommandToolName        = "parse_command_intent"
	parseCommandToolDescription = "Analyze user input and determine the form command: cancel, confirm or edit."
)

type parseCommandArgs struct {
	Intent Command `json:"intent" jsonschema:"required,enum=cancel,enum=confirm,enum=edit,description=The user's command intent"`
}

// ToolParser asks a chat model for the command.
type ToolParser struct {
	tool *structured.Tool[string, parseCommandArgs]
}

func NewToolParser(chatModel model.ToolCallingChatModel) (*ToolParser, error) {
	tool, err := structured.NewTool[string, parseCommandArgs](
		chatModel,
		buildParseCommandPrompt,
		parseCommandToolName,
		parseCommandToolDescription,
	)
	if err != nil {
		return nil, err
	}
	return &ToolParser{tool: tool}, nil
}

func (p *ToolParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	result, err := p.tool.Call(ctx, input)
	if err != nil {
		return Edit, err
	}
	switch result.Intent {
	case Cancel, Confirm, Edit:
		return result.Intent, nil
	default:
		return Edit, fmt.Errorf("unexpected intent %q returned by %s", result.Intent, parseCommandToolName)
	}
}

func buildParseCommandPrompt(ctx context.Context, input string) ([]*schema.Message, error) {
	systemPrompt := fmt.Sprintf(`You are an assistant for a form-filling robot.

Decide what the user wants to do with the form:
- cancel: the user explicitly abandons filling the form ("cancel", "quit", "stop filling"). Plain negations are not cancel.
- confirm: the user explicitly asks to submit the form ("confirm", "submit", "finalize"). Plain affirmations are not confirm.
- edit: anything else, including answers that provide or change field values.

Call the '%s' tool with the result.`, parseCommandToolName)

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(input),
	}, nil
}
