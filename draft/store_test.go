package draft

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formstate"
	"github.com/tbxark/formstate/types"
)

func newForm() *formstate.Form {
	return formstate.New([]types.Spec{{Key: "name", Value: ""}, {Key: "email", Value: ""}}, formstate.Options{})
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	cache := NewMemoryCache[formstate.State]()
	store := NewStore(cache, "signup")
	ctx := WithKey(context.Background(), "user-1")

	f := newForm()
	require.NoError(t, f.ItemChange("name", "ada"))
	require.NoError(t, store.SaveForm(ctx, f))
	assert.Equal(t, 1, cache.Len())

	_, ok, err := cache.Get(ctx, "signup:user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	other := newForm()
	ok, err = store.RestoreForm(ctx, other)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada", other.Data()["name"])
	assert.False(t, other.Pristine())

	require.NoError(t, store.Clear(ctx))
	ok, err = store.RestoreForm(ctx, newForm())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreKeysAreIsolated(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore("signup")
	f := newForm()
	require.NoError(t, f.ItemChange("name", "ada"))
	require.NoError(t, store.SaveForm(WithKey(context.Background(), "a"), f))

	_, ok, err := store.Load(WithKey(context.Background(), "b"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreRequiresKey(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore("signup")
	ctx := context.Background()

	require.ErrorIs(t, store.SaveForm(ctx, newForm()), ErrNoKey)
	_, _, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNoKey)
	require.ErrorIs(t, store.Clear(WithKey(ctx, "")), ErrNoKey)
}

func TestRestoreFormBadVersion(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore("signup")
	ctx := WithKey(context.Background(), "a")
	require.NoError(t, store.Save(ctx, formstate.State{Version: "0"}))

	ok, err := store.RestoreForm(ctx, newForm())
	require.Error(t, err)
	assert.False(t, ok)
}

func TestBoltStoreSurvivesRestart(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "drafts.db")
	ctx := WithKey(context.Background(), "user-1")

	cache, err := OpenBoltCache[formstate.State](path)
	require.NoError(t, err)
	f := newForm()
	require.NoError(t, f.ItemChange("name", "ada"))
	require.NoError(t, NewStore(cache, "signup").SaveForm(ctx, f))
	require.NoError(t, cache.Close())

	reopened, err := OpenBoltCache[formstate.State](path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	store := NewStore(reopened, "signup")
	other := newForm()
	ok, err := store.RestoreForm(ctx, other)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada", other.Data()["name"])
	assert.False(t, other.Pristine())

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
