package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formstate/internal/chatmodeltest"
)

func TestLocalParser(t *testing.T) {
	t.Parallel()
	p := NewLocalParser()
	cases := map[string]Command{
		"  Cancel ":           Cancel,
		"取消":                  Cancel,
		"submit":              Confirm,
		"确认":                  Confirm,
		"my email is a@b.c":   Edit,
		"please cancel later": Edit,
	}
	for input, want := range cases {
		got, err := p.ParseCommand(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}
}

type failingParser struct{ err error }

func (p failingParser) ParseCommand(context.Context, string) (Command, error) {
	return Edit, p.err
}

func TestFallbackParser(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	cmd, err := NewFallbackParser(failingParser{boom}, NewLocalParser()).ParseCommand(context.Background(), "confirm")
	require.NoError(t, err)
	assert.Equal(t, Confirm, cmd)

	_, err = NewFallbackParser(failingParser{boom}).ParseCommand(context.Background(), "confirm")
	require.ErrorIs(t, err, boom)

	_, err = NewFallbackParser().ParseCommand(context.Background(), "confirm")
	require.ErrorIs(t, err, ErrNoParser)
}

func TestToolParser(t *testing.T) {
	t.Parallel()
	fake := chatmodeltest.New(parseCommandToolName, `{"intent":"confirm"}`, `{"intent":"dance"}`)
	p, err := NewToolParser(fake)
	require.NoError(t, err)

	cmd, err := p.ParseCommand(context.Background(), "yes, send it")
	require.NoError(t, err)
	assert.Equal(t, Confirm, cmd)
	assert.Equal(t, "yes, send it", fake.LastPrompt())

	cmd, err = p.ParseCommand(context.Background(), "??")
	require.Error(t, err)
	assert.Equal(t, Edit, cmd)
}
