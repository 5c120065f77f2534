package command

import (
	"context"
	"errors"
	"slices"
	"strings"
)

var ErrNoParser = errors.New("no command parser configured")

// LocalParser matches the whole input against keyword lists. Anything else
// is an edit.
type LocalParser struct {
	CancelKeywords  []string
	ConfirmKeywords []string
}

func NewLocalParser() *LocalParser {
	return &LocalParser{
		CancelKeywords:  []string{"取消", "cancel", "退出", "quit", "exit", "停止", "stop"},
		ConfirmKeywords: []string{"确认", "confirm", "提交", "submit", "完成", "done"},
	}
}

func (p *LocalParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if slices.Contains(p.CancelKeywords, normalized) {
		return Cancel, nil
	}
	if slices.Contains(p.ConfirmKeywords, normalized) {
		return Confirm, nil
	}
	return Edit, nil
}

// FallbackParser returns the result of the first parser that succeeds.
type FallbackParser struct {
	parsers []Parser
}

func NewFallbackParser(parsers ...Parser) *FallbackParser {
	return &FallbackParser{parsers: parsers}
}

func (p *FallbackParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	lastErr := ErrNoParser
	for _, parser := range p.parsers {
		cmd, err := parser.ParseCommand(ctx, input)
		if err == nil {
			return cmd, nil
		}
		lastErr = err
	}
	return Edit, lastErr
}
