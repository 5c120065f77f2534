package main

import (
	"github.com/joeshaw/envdecode"
)

// ModelConfig is read from the environment.
type ModelConfig struct {
	APIKey  string `env:"FORMSTATE_API_KEY,required"`
	BaseURL string `env:"FORMSTATE_BASE_URL,default=https://api.openai.com/v1"`
	Model   string `env:"FORMSTATE_MODEL,default=gpt-4o-mini"`
}

func loadModelConfig() (*ModelConfig, error) {
	var conf ModelConfig
	if err := envdecode.StrictDecode(&conf); err != nil {
		return nil, err
	}
	return &conf, nil
}
