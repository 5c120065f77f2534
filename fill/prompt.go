package fill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/formstate"
	"github.com/tbxark/formstate/types"
)

type request struct {
	form  *formstate.Form
	title string
	input string
}

func buildPatchPrompt(ctx context.Context, req *request) ([]*schema.Message, error) {
	dataJSON, err := sonic.MarshalString(req.form.Data())
	if err != nil {
		return nil, fmt.Errorf("marshal form data: %w", err)
	}
	schemaJSON, err := req.form.JSONSchema(req.title)
	if err != nil {
		return nil, err
	}
	systemPrompt := fmt.Sprintf("You are a form assistant. Analyze user input and call %s to generate RFC6902 JSON Patch operations. Rules: only use explicit user info; use replace for updates and add for new fields; only use allowed paths; if nothing to extract, return empty operations.", updateFormToolName)

	sections := []string{
		fmt.Sprintf("# Current Date:\n%s", time.Now().Format(time.RFC3339)),
		fmt.Sprintf("# Form data JSON:\n```json\n%s\n```", dataJSON),
		fmt.Sprintf("# Form schema JSON:\n```json\n%s\n```", schemaJSON),
		fmt.Sprintf("# Allowed paths:\n%s", formatAllowedPaths(req.form.AllowedPaths())),
		fmt.Sprintf("# Fields:\n%s", types.FormatItems(req.form.Items())),
	}
	if s := types.FormatErrors(req.form.Items()); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, fmt.Sprintf("# User Answer:\n%s", req.input))

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(strings.Join(sections, "\n\n")),
	}, nil
}

func formatAllowedPaths(paths []string) string {
	var sb strings.Builder
	for _, path := range paths {
		sb.WriteString("- ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
