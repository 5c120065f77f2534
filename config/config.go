// Package config loads form option defaults from JSON or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tbxark/formstate"
	"github.com/tbxark/formstate/types"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form configuration. Omitted fields stay unset so the
// form defaults apply.
type File struct {
	ValidateAll        *bool        `json:"validate_all,omitempty" yaml:"validate_all,omitempty"`
	ValidateOnChange   *bool        `json:"validate_on_change,omitempty" yaml:"validate_on_change,omitempty"`
	EmptyErrorTemplate *string      `json:"empty_error_template,omitempty" yaml:"empty_error_template,omitempty"`
	InitialValues      types.Values `json:"initial_values,omitempty" yaml:"initial_values,omitempty"`
	Extra              types.Values `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Load reads path, choosing the decoder from the file extension.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Parse decodes raw as format ("json", "yaml" or "yml").
func Parse(raw []byte, format string) (*File, error) {
	var conf File
	switch strings.ToLower(format) {
	case "json":
		if err := sonic.Unmarshal(raw, &conf); err != nil {
			return nil, fmt.Errorf("failed to parse json config: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(raw, &conf); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return &conf, nil
}

// Options converts the file into form options. Callbacks are left unset.
func (c *File) Options() formstate.Options {
	return formstate.Options{
		InitialValues:      c.InitialValues,
		ValidateAll:        c.ValidateAll,
		ValidateOnChange:   c.ValidateOnChange,
		EmptyErrorTemplate: c.EmptyErrorTemplate,
		Extra:              c.Extra,
	}
}
