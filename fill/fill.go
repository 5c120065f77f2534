// Package fill lets a tool-calling chat model fill a form from free text.
package fill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/tbxark/formstate"
	"github.com/tbxark/formstate/command"
	"github.com/tbxark/formstate/dialogue"
	"github.com/tbxark/formstate/structured"
)

const (
	updateFormToolName        = "update_form"
	updateFormToolDescription = "Generate RFC6902 JSON Patch operations to update form fields based on user input. Only include operations for information explicitly provided by the user."

	cancelMessage = "The form has been cleared."
	submitMessage = "The form has been submitted."
)

type Filler struct {
	title    string
	tool     *structured.Tool[*request, UpdateFormArgs]
	parser   command.Parser
	dialogue dialogue.Generator
}

type Option func(*Filler)

// WithCommandParser replaces the default keyword parser.
func WithCommandParser(parser command.Parser) Option {
	return func(f *Filler) { f.parser = parser }
}

func WithDialogue(generator dialogue.Generator) Option {
	return func(f *Filler) { f.dialogue = generator }
}

// WithTitle sets the schema title shown to the model.
func WithTitle(title string) Option {
	return func(f *Filler) { f.title = title }
}

func NewFiller(chatModel model.ToolCallingChatModel, opts ...Option) (*Filler, error) {
	tool, err := structured.NewTool[*request, UpdateFormArgs](
		chatModel,
		buildPatchPrompt,
		updateFormToolName,
		updateFormToolDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create update form tool: %w", err)
	}
	f := &Filler{
		title:    "form",
		tool:     tool,
		parser:   command.NewLocalParser(),
		dialogue: dialogue.NewLocal(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fill runs one turn: confirm submits the form, cancel resets it, anything
// else is turned into patch operations by the model and applied.
func (fl *Filler) Fill(ctx context.Context, f *formstate.Form, input string) (*Result, error) {
	ctx = callbacks.EnsureRunInfo(ctx, "FormFiller", "Filler")
	ctx = callbacks.OnStart(ctx, map[string]any{
		"input": input,
		"data":  f.Data(),
	})

	result, err := fl.fill(ctx, f, input)
	if err != nil {
		callbacks.OnError(ctx, err)
		return nil, err
	}

	callbacks.OnEnd(ctx, map[string]any{
		"command":   string(result.Command),
		"changed":   result.Changed,
		"submitted": result.Submitted,
	})
	return result, nil
}

func (fl *Filler) fill(ctx context.Context, f *formstate.Form, input string) (*Result, error) {
	cmd, err := fl.parser.ParseCommand(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	slog.Debug("Parsed command", "command", cmd)

	result := &Result{Command: cmd}
	switch cmd {
	case command.Cancel:
		f.Reset(nil)
		result.Message = cancelMessage
		return result, nil
	case command.Confirm:
		return fl.submit(ctx, f, result)
	}

	args, err := fl.tool.Call(ctx, &request{form: f, title: fl.title, input: input})
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch: %w", err)
	}
	result.Ops = args.Ops
	slog.Debug("Applying patch", "ops", args.Ops)
	changed, err := f.ApplyPatch(args.Ops, formstate.Silent())
	if err != nil {
		return nil, fmt.Errorf("failed to apply patch: %w", err)
	}
	result.Changed = changed
	if len(changed) == 0 {
		f.ItemsChange(nil)
	}
	// notify once, with the last item
	for i, key := range changed {
		var opts []formstate.CallOption
		if i < len(changed)-1 {
			opts = append(opts, formstate.Silent())
		}
		if _, err := f.ItemValidate(key, opts...); err != nil {
			return nil, err
		}
	}

	result.Message, err = fl.dialogue.Next(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dialogue: %w", err)
	}
	return result, nil
}

func (fl *Filler) submit(ctx context.Context, f *formstate.Form, result *Result) (*Result, error) {
	submitted, err := f.Submit(ctx)
	var verr *formstate.ValidationError
	if errors.As(err, &verr) {
		result.Message = verr.Text
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to submit form: %w", err)
	}
	result.Submitted = true
	result.SubmitResult = submitted
	result.Message = submitMessage
	return result, nil
}
