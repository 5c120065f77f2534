package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formstate"
	"github.com/tbxark/formstate/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "form.yaml", `
validate_all: false
empty_error_template: "{label}不能为空"
initial_values:
  name: ada
extra:
  precision: 2
`)
	conf, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, conf.ValidateAll)
	assert.False(t, *conf.ValidateAll)
	assert.Nil(t, conf.ValidateOnChange)
	assert.Equal(t, "{label}不能为空", *conf.EmptyErrorTemplate)
	assert.Equal(t, types.Values{"name": "ada"}, conf.InitialValues)
	assert.Equal(t, types.Values{"precision": 2}, conf.Extra)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "form.json", `{"validate_on_change": true, "extra": {"precision": 4}}`)
	conf, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, conf.ValidateOnChange)
	assert.True(t, *conf.ValidateOnChange)
	assert.Nil(t, conf.ValidateAll)
	assert.Equal(t, float64(4), conf.Extra["precision"])
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := Load(writeFile(t, "form.toml", "a = 1"))
	require.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, "form.json", "{"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptionsDriveForm(t *testing.T) {
	t.Parallel()
	conf, err := Parse([]byte("empty_error_template: \"missing {label}\"\ninitial_values:\n  name: ada\n"), "yml")
	require.NoError(t, err)

	f := formstate.New([]types.Spec{
		{Key: "name", Label: "name", Value: ""},
		{Key: "email", Label: "email", Value: ""},
	}, conf.Options())

	assert.Equal(t, "ada", f.Data()["name"])
	assert.Equal(t, "missing email", f.FormValidate())
	assert.False(t, *f.Options().ValidateAll)
}
