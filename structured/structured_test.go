package structured

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formstate/internal/chatmodeltest"
)

type echoArgs struct {
	Text string `json:"text" jsonschema:"required"`
}

func echoPrompt(_ context.Context, in string) ([]*schema.Message, error) {
	return []*schema.Message{schema.SystemMessage("echo"), schema.UserMessage(in)}, nil
}

func TestToolCall(t *testing.T) {
	t.Parallel()
	fake := chatmodeltest.New("echo", `{"text":"hi"}`)
	tool, err := NewTool[string, echoArgs](fake, echoPrompt, "echo", "echo the input")
	require.NoError(t, err)
	assert.Equal(t, "echo", tool.Info().Name)

	out, err := tool.Call(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Text)
	assert.Equal(t, "hello", fake.LastPrompt())
}

func TestToolCallBadArguments(t *testing.T) {
	t.Parallel()
	fake := chatmodeltest.New("echo", `not json`)
	tool, err := NewTool[string, echoArgs](fake, echoPrompt, "echo", "echo the input")
	require.NoError(t, err)

	_, err = tool.Call(context.Background(), "hello")
	require.ErrorContains(t, err, "parse ToolCall arguments failed")
}

func TestToolCallWrongTool(t *testing.T) {
	t.Parallel()
	fake := chatmodeltest.New("other", `{"text":"hi"}`)
	tool, err := NewTool[string, echoArgs](fake, echoPrompt, "echo", "echo the input")
	require.NoError(t, err)

	_, err = tool.Call(context.Background(), "hello")
	require.ErrorContains(t, err, "no echo ToolCall")
}
