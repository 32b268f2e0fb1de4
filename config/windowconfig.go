// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"image"
)

type WindowConfig struct {
	Size image.Point `yaml:",omitempty"`
}

func NewWindowConfig() WindowConfig {
	return WindowConfig{
		Size: image.Point{X: 1200, Y: 800},
	}
}

func (w *WindowConfig) sanitize() {
	const minSize = 200
	if w.Size.X < minSize || w.Size.Y < minSize {
		w.Size = NewWindowConfig().Size
	}
}
