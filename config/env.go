// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables overriding the configuration file. They are never written back.
const (
	EnvDataUrl    = "STOCKCHART_DATA_URL"
	EnvPeriod     = "STOCKCHART_PERIOD"
	EnvSymbol     = "STOCKCHART_SYMBOL"
	EnvLightTheme = "STOCKCHART_LIGHT_THEME"
	EnvAnchorMode = "STOCKCHART_ANCHOR_MODE"
)

// Load environment variables from optional .env files. Variables which are already set are kept.
func LoadEnvFiles(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, f := range filenames {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		log.Printf("Loaded environment from %s.", f)
	}
	return nil
}

// Apply environment overrides to a configuration copy.
func (a *AppConfig) ApplyEnv(lookup func(key string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvDataUrl); ok && len(v) > 0 {
		a.DataSource.DataUrl = v
	}
	if v, ok := lookup(EnvPeriod); ok && len(v) > 0 {
		a.DataSource.Period = v
	}
	if v, ok := lookup(EnvSymbol); ok && len(v) > 0 {
		a.Chart.Symbol = v
	}
	if v, ok := lookup(EnvLightTheme); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			a.LightTheme = b
		}
	}
	if v, ok := lookup(EnvAnchorMode); ok && len(v) > 0 {
		a.Chart.AnchorMode = v
	}
	a.DataSource.sanitize()
	a.Chart.sanitize()
}

type envConfig struct {
	Config
	lookup func(key string) (string, bool)
}

// Wrap c so that every copy has the environment overrides applied. Stored values are not affected.
func WithEnv(c Config, lookup func(key string) (string, bool)) Config {
	return &envConfig{Config: c, lookup: lookup}
}

func (e *envConfig) Copy() (AppConfig, error) {
	a, err := e.Config.Copy()
	if err != nil {
		return a, err
	}
	a.ApplyEnv(e.lookup)
	return a, nil
}
