// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"github.com/google/go-cmp/cmp"
)

// In-memory configuration for unit tests, not thread safe.
// Writes counts the changes which would have been stored.
type TestConfig struct {
	appConfig AppConfig
	Writes    int
}

func NewTestConfig() Config {
	return &TestConfig{
		appConfig: NewAppConfig(),
	}
}

func (t *TestConfig) GetAppName() string {
	return AppName + "-test"
}

func (t *TestConfig) Lock() (*AppConfig, error) {
	c := t.appConfig.deepCopy()
	return &c, nil
}

func (t *TestConfig) Unlock(c *AppConfig) error {
	if !cmp.Equal(t.appConfig, *c) {
		t.appConfig = c.deepCopy()
		t.appConfig.Sanitize()
		t.Writes++
	}
	return nil
}

func (t *TestConfig) Copy() (AppConfig, error) {
	return t.appConfig.deepCopy(), nil
}
