// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"stockchart/config"
)

// Test configuration pointing to the given backend, without retry pauses or rate limits.
func NewDataSourceConfig(dataUrl string) config.Config {
	c := config.NewTestConfig()
	appConfig, _ := c.Lock()
	appConfig.DataSource.DataUrl = dataUrl
	appConfig.DataSource.RateLimitPerSecond = 0
	appConfig.DataSource.DataTimeoutSeconds = 5
	_ = c.Unlock(appConfig)
	return c
}
