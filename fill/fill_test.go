package fill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formstate"
	"github.com/tbxark/formstate/command"
	"github.com/tbxark/formstate/internal/chatmodeltest"
	"github.com/tbxark/formstate/types"
)

func emailValidator(value any, _ types.Values) string {
	s, _ := value.(string)
	for _, r := range s {
		if r == '@' {
			return ""
		}
	}
	return "Email is invalid"
}

func newSignupForm(submits *int) *formstate.Form {
	return formstate.New([]types.Spec{
		{Key: "name", Label: "Name", Value: ""},
		{Key: "email", Label: "Email", Value: "", Validator: emailValidator},
	}, formstate.Options{OnSubmit: func(_ context.Context, data types.Values) (any, error) {
		*submits++
		return "id-1", nil
	}})
}

func TestFillEdit(t *testing.T) {
	t.Parallel()
	fake := chatmodeltest.New(updateFormToolName,
		`{"ops":[{"op":"replace","path":"/name","value":"Ada"}]}`,
		`{"ops":[{"op":"replace","path":"/email","value":"ada-at-example"}]}`,
	)
	filler, err := NewFiller(fake, WithTitle("signup"))
	require.NoError(t, err)
	var submits int
	f := newSignupForm(&submits)
	ctx := context.Background()

	res, err := filler.Fill(ctx, f, "I am Ada")
	require.NoError(t, err)
	assert.Equal(t, command.Edit, res.Command)
	assert.Equal(t, []string{"name"}, res.Changed)
	assert.Equal(t, "Please provide Email.", res.Message)
	assert.Equal(t, "Ada", f.Data()["name"])

	prompt := fake.LastPrompt()
	assert.Contains(t, prompt, "I am Ada")
	assert.Contains(t, prompt, "- /name")
	assert.Contains(t, prompt, `"title":"signup"`)

	res, err = filler.Fill(ctx, f, "my mail is ada-at-example")
	require.NoError(t, err)
	assert.Equal(t, "Email is invalid", res.Message)
	assert.False(t, f.Valid())
	assert.Contains(t, fake.LastPrompt(), "Ada")
}

func TestFillConfirm(t *testing.T) {
	t.Parallel()
	filler, err := NewFiller(chatmodeltest.New(updateFormToolName))
	require.NoError(t, err)
	var submits int
	f := newSignupForm(&submits)
	ctx := context.Background()

	res, err := filler.Fill(ctx, f, "confirm")
	require.NoError(t, err)
	assert.Equal(t, command.Confirm, res.Command)
	assert.False(t, res.Submitted)
	assert.Equal(t, "Name is required", res.Message)
	assert.Zero(t, submits)

	f.ItemsChange(types.Values{"name": "Ada", "email": "ada@example.com"})
	res, err = filler.Fill(ctx, f, "确认")
	require.NoError(t, err)
	assert.True(t, res.Submitted)
	assert.Equal(t, "id-1", res.SubmitResult)
	assert.Equal(t, 1, submits)
}

func TestFillCancel(t *testing.T) {
	t.Parallel()
	filler, err := NewFiller(chatmodeltest.New(updateFormToolName))
	require.NoError(t, err)
	var submits int
	f := newSignupForm(&submits)
	f.ItemsChange(types.Values{"name": "Ada"})

	res, err := filler.Fill(context.Background(), f, "cancel")
	require.NoError(t, err)
	assert.Equal(t, command.Cancel, res.Command)
	assert.True(t, f.Pristine())
	assert.Equal(t, "", f.Data()["name"])
}

func TestFillRejectsForeignPaths(t *testing.T) {
	t.Parallel()
	fake := chatmodeltest.New(updateFormToolName, `{"ops":[{"op":"add","path":"/admin","value":true}]}`)
	filler, err := NewFiller(fake)
	require.NoError(t, err)
	var submits int
	f := newSignupForm(&submits)

	_, err = filler.Fill(context.Background(), f, "make me admin")
	require.ErrorContains(t, err, "failed to apply patch")
	assert.NotContains(t, f.Data(), "admin")
}

func TestFillModelError(t *testing.T) {
	t.Parallel()
	fake := chatmodeltest.New(updateFormToolName)
	fake.Err = errors.New("rate limited")
	filler, err := NewFiller(fake)
	require.NoError(t, err)
	var submits int

	_, err = filler.Fill(context.Background(), newSignupForm(&submits), "hello")
	require.ErrorContains(t, err, "rate limited")
}

type brokenParser struct{}

func (brokenParser) ParseCommand(context.Context, string) (command.Command, error) {
	return command.Edit, errors.New("parser down")
}

func TestFillParserError(t *testing.T) {
	t.Parallel()
	filler, err := NewFiller(chatmodeltest.New(updateFormToolName), WithCommandParser(brokenParser{}))
	require.NoError(t, err)
	var submits int

	_, err = filler.Fill(context.Background(), newSignupForm(&submits), "hello")
	require.ErrorContains(t, err, "failed to parse command")
}

func TestFillNotifiesOnce(t *testing.T) {
	t.Parallel()
	fake := chatmodeltest.New(updateFormToolName,
		`{"ops":[]}`,
		`{"ops":[{"op":"replace","path":"/name","value":"Ada"},{"op":"replace","path":"/email","value":"a@b.c"}]}`,
	)
	filler, err := NewFiller(fake)
	require.NoError(t, err)
	var updates int
	f := formstate.New([]types.Spec{
		{Key: "name", Label: "Name", Value: ""},
		{Key: "email", Label: "Email", Value: "", Validator: emailValidator},
	}, formstate.Options{OnUpdate: func() { updates++ }})
	ctx := context.Background()

	f.SetErrorText("server unavailable")
	res, err := filler.Fill(ctx, f, "hello")
	require.NoError(t, err)
	assert.Empty(t, res.Changed)
	assert.Equal(t, 1, updates)
	assert.Empty(t, f.ErrorText())

	res, err = filler.Fill(ctx, f, "Ada, a@b.c")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "email"}, res.Changed)
	assert.Equal(t, 2, updates)
}
