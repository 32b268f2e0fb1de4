// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"image/color"
	"os"
	"path/filepath"
	"stockchart/stockval"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalConfigDefaults(t *testing.T) {
	c := NewGlobalConfigInDir(t.TempDir())
	a, err := c.Copy()
	assert.NoError(t, err)
	assert.Equal(t, "AAPL", a.Chart.Symbol)
	assert.Equal(t, DefaultPeriod, a.DataSource.Period)
	assert.Equal(t, "http://localhost:8000/api", a.DataSource.DataUrl)
	assert.Equal(t, stockval.ChartTypeCandlestick, a.Chart.Type)
}

func TestGlobalConfigWriteRead(t *testing.T) {
	dir := t.TempDir()
	c := NewGlobalConfigInDir(dir)
	a, err := c.Lock()
	assert.NoError(t, err)
	a.Chart.Symbol = "msft"
	a.Chart.Type = stockval.ChartTypeLine
	a.LightTheme = true
	assert.NoError(t, c.Unlock(a))

	file, err := os.ReadFile(filepath.Join(dir, configFileName))
	assert.NoError(t, err)
	// default url is not stored
	assert.NotContains(t, string(file), "localhost")
	assert.Contains(t, string(file), "fileversion: 1")

	read, err := NewGlobalConfigInDir(dir).Copy()
	assert.NoError(t, err)
	assert.Equal(t, "MSFT", read.Chart.Symbol)
	assert.Equal(t, stockval.ChartTypeLine, read.Chart.Type)
	assert.True(t, read.LightTheme)
	assert.Equal(t, "http://localhost:8000/api", read.DataSource.DataUrl)
}

func TestGlobalConfigPath(t *testing.T) {
	dir := t.TempDir()
	c := NewGlobalConfigInDir(dir).(*GlobalConfig)
	p, err := c.Path()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "stockchart.yaml"), p)
}

func TestGlobalConfigUnlockSanitizes(t *testing.T) {
	c := NewGlobalConfigInDir(t.TempDir())
	a, err := c.Lock()
	assert.NoError(t, err)
	a.DataSource.Period = "7w"
	assert.NoError(t, c.Unlock(a))
	read, err := c.Copy()
	assert.NoError(t, err)
	assert.Equal(t, DefaultPeriod, read.DataSource.Period)
}

func TestGlobalConfigUnchangedIsNotWritten(t *testing.T) {
	dir := t.TempDir()
	c := NewGlobalConfigInDir(dir)
	a, err := c.Lock()
	assert.NoError(t, err)
	assert.NoError(t, c.Unlock(a))
	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestGlobalConfigCopyIsDeep(t *testing.T) {
	c := NewGlobalConfigInDir(t.TempDir())
	a, err := c.Copy()
	assert.NoError(t, err)
	a.Chart.WatchSymbols[0] = "CHANGED"
	b, err := c.Copy()
	assert.NoError(t, err)
	assert.Equal(t, "AAPL", b.Chart.WatchSymbols[0])
}

func TestGlobalConfigNewerVersion(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("fileversion: 99\n"), 0600))
	_, err := NewGlobalConfigInDir(dir).Copy()
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	a := NewAppConfig()
	a.DataSource.Period = "7w"
	a.DataSource.MaxRetries = -2
	a.Chart.Symbol = " "
	a.Chart.WatchSymbols = []string{"aapl", "AAPL", "", "tsla"}
	a.Chart.Type = "bars"
	a.Chart.ZoomFactor = 0.5
	a.Chart.AnchorMode = "world"
	a.Chart.AnnotationColor = "orange"
	a.WindowConfig.Size.X = 10
	a.Sanitize()
	def := NewAppConfig()
	assert.Equal(t, DefaultPeriod, a.DataSource.Period)
	assert.Equal(t, 0, a.DataSource.MaxRetries)
	assert.Equal(t, "AAPL", a.Chart.Symbol)
	assert.Equal(t, []string{"AAPL", "TSLA"}, a.Chart.WatchSymbols)
	assert.Equal(t, stockval.ChartTypeCandlestick, a.Chart.Type)
	assert.Equal(t, 1.5, a.Chart.ZoomFactor)
	assert.Equal(t, "pixel", a.Chart.AnchorMode)
	assert.Equal(t, def.Chart.AnnotationColor, a.Chart.AnnotationColor)
	assert.Equal(t, def.WindowConfig, a.WindowConfig)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDataUrl:    "http://example.test/api",
		EnvSymbol:     "nvda",
		EnvPeriod:     "6mo",
		EnvLightTheme: "true",
		EnvAnchorMode: "chart",
	}
	a := NewAppConfig()
	a.ApplyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	assert.Equal(t, "http://example.test/api", a.DataSource.DataUrl)
	assert.Equal(t, "NVDA", a.Chart.Symbol)
	assert.Equal(t, "6mo", a.DataSource.Period)
	assert.True(t, a.LightTheme)
	assert.Equal(t, "chart", a.Chart.AnchorMode)
}

func TestWithEnvDoesNotStoreOverrides(t *testing.T) {
	stored := NewTestConfig().(*TestConfig)
	c := WithEnv(stored, func(key string) (string, bool) {
		if key == EnvSymbol {
			return "msft", true
		}
		return "", false
	})
	a, err := c.Copy()
	assert.NoError(t, err)
	assert.Equal(t, "MSFT", a.Chart.Symbol)
	locked, err := c.Lock()
	assert.NoError(t, err)
	assert.Equal(t, "AAPL", locked.Chart.Symbol)
	assert.NoError(t, c.Unlock(locked))
	assert.Equal(t, 0, stored.Writes)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "test.env")
	assert.NoError(t, os.WriteFile(f, []byte(EnvPeriod+"=3mo\n"), 0600))
	t.Setenv(EnvPeriod, "")
	os.Unsetenv(EnvPeriod)
	assert.NoError(t, LoadEnvFiles(f, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "3mo", os.Getenv(EnvPeriod))
}

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#ffa000")
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xa0, A: 0xff}, c)
	c, ok = ParseHexColor("#11223344")
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, c)
	_, ok = ParseHexColor("ffa000")
	assert.False(t, ok)
	_, ok = ParseHexColor("#ggg000")
	assert.False(t, ok)
}

func TestFormatHexColor(t *testing.T) {
	assert.Equal(t, "#ffa000", FormatHexColor(color.NRGBA{R: 0xff, G: 0xa0, A: 0xff}))
	assert.Equal(t, "#11223344", FormatHexColor(color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}))
	c, ok := ParseHexColor(FormatHexColor(color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}))
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, c)
}
