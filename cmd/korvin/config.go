package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type runtimeConfig struct {
	User  string
	Entry string
}

type fileConfig struct {
	User  string `toml:"user"`
	Entry string `toml:"entry"`
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		User:  "super",
		Entry: "{task.que:[({say:korvin} io.term) ({wait:250} etc.chrono) ({say:done} io.term)]}",
	}
}

func loadRuntimeConfig(path string) (runtimeConfig, error) {
	cfg := defaultRuntimeConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runtimeConfig{}, fmt.Errorf("load korvin config: %w", err)
	}

	if meta.IsDefined("user") {
		user := strings.TrimSpace(raw.User)
		if user != "" {
			cfg.User = user
		}
	}

	if meta.IsDefined("entry") {
		entry := strings.TrimSpace(raw.Entry)
		if entry != "" {
			cfg.Entry = entry
		}
	}

	return cfg, nil
}
