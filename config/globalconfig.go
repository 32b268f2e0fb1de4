// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

const AppName = "stockchart"
const configFileName = "stockchart.yaml"
const configFileVersion = 1

// Configuration stored as yaml file in the user configuration directory.
type GlobalConfig struct {
	dir       string
	loaded    bool
	appConfig AppConfig
	mutex     sync.Mutex
}

type VersionConfig struct {
	FileVersion int
}

// Layout of the configuration file, the version is stored next to the settings.
type configFile struct {
	VersionConfig `yaml:",inline"`
	AppConfig     `yaml:",inline"`
}

func NewGlobalConfig() Config {
	return NewGlobalConfigInDir("")
}

// Use dir instead of the user configuration directory, if not empty.
func NewGlobalConfigInDir(dir string) Config {
	return &GlobalConfig{
		dir:       dir,
		appConfig: NewAppConfig(),
	}
}

func (g *GlobalConfig) GetAppName() string {
	return AppName
}

// Locks access to the configuration and returns a copy which can be modified.
// Unlock needs to be called afterwards, if no error was returned.
func (g *GlobalConfig) Lock() (*AppConfig, error) {
	g.mutex.Lock()
	if err := g.ensureLoaded(); err != nil {
		g.mutex.Unlock()
		return nil, err
	}
	c := g.appConfig.deepCopy()
	return &c, nil
}

// Update the configuration and unlock access.
// The file is only written if the configuration was changed.
func (g *GlobalConfig) Unlock(c *AppConfig) error {
	defer g.mutex.Unlock()
	if cmp.Equal(g.appConfig, *c) {
		return nil
	}
	g.appConfig = c.deepCopy()
	g.appConfig.Sanitize()
	return g.write()
}

func (g *GlobalConfig) Copy() (AppConfig, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if err := g.ensureLoaded(); err != nil {
		return AppConfig{}, err
	}
	return g.appConfig.deepCopy(), nil
}

// Full name of the configuration file.
func (g *GlobalConfig) Path() (string, error) {
	dir := g.dir
	if len(dir) == 0 {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine configuration path: %w", err)
		}
		dir = filepath.Join(userConfigDir, AppName)
	}
	return filepath.Join(dir, configFileName), nil
}

func (g *GlobalConfig) ensureLoaded() error {
	if g.loaded {
		return nil
	}
	fileName, err := g.Path()
	if err != nil {
		return err
	}
	c, err := readConfigFile(fileName)
	if err != nil {
		return err
	}
	c.Sanitize()
	g.appConfig = c
	g.loaded = true
	return nil
}

// A missing file results in the default configuration.
func readConfigFile(fileName string) (AppConfig, error) {
	data, err := os.ReadFile(fileName)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Configuration file \"%s\" does not yet exist, using defaults.", fileName)
		return NewAppConfig(), nil
	} else if err != nil {
		return AppConfig{}, fmt.Errorf("failed to read configuration file: %w", err)
	}
	f := configFile{AppConfig: NewAppConfig()}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	// Settings of a newer release would be lost when writing.
	if f.FileVersion > configFileVersion {
		return AppConfig{}, fmt.Errorf(
			"invalid configuration file version %d instead of %d, probably from a newer release",
			f.FileVersion,
			configFileVersion)
	}
	return f.AppConfig, nil
}

func (g *GlobalConfig) write() error {
	fileName, err := g.Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fileName), 0700); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	f := configFile{
		VersionConfig: VersionConfig{FileVersion: configFileVersion},
		AppConfig:     g.appConfig.deepCopy(),
	}
	f.AppConfig.RemoveDefaults()
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("error generating configuration file: %w", err)
	}
	// Replace the file only after it was completely written.
	tmpFileName := fileName + ".tmp"
	if err := os.WriteFile(tmpFileName, data, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	if err := os.Rename(tmpFileName, fileName); err != nil {
		return fmt.Errorf("failed to replace configuration file: %w", err)
	}
	return nil
}
