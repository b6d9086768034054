/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"studyjournal/internal/scrapbook"
	"studyjournal/internal/textlayout"
	"studyjournal/internal/vector"
)

// DefaultDPI is used when Options.DPI is zero. Canvas units are CSS pixels,
// so 96 renders them 1:1.
const (
	DefaultDPI = 144
	baseDPI    = 96
)

// Text and hint geometry, in canvas px.
const (
	textPadding = 4
	hintGap     = 8
)

var hintColor = vector.Color{R: 0x6b, G: 0x72, B: 0x80, A: 255}

// Options controls every exporter. Zero values pick sensible defaults.
type Options struct {
	DPI   int                 // raster resolution; PDF ignores it
	Fonts textlayout.Provider // nil means the built-in bitmap face

	// Page size for saved scrapbooks, which do not carry a canvas size.
	CanvasWidth, CanvasHeight float32
}

func (o Options) scale() float32 {
	dpi := o.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return float32(dpi) / baseDPI
}

func (o Options) fonts() textlayout.Provider {
	if o.Fonts == nil {
		return textlayout.BasicProvider{}
	}
	return o.Fonts
}

func (o Options) canvasSize() (float32, float32) {
	w, h := o.CanvasWidth, o.CanvasHeight
	if w <= 0 {
		w = scrapbook.DefaultCanvasWidth
	}
	if h <= 0 {
		h = scrapbook.DefaultCanvasHeight
	}
	return w, h
}

// writeFile creates the parent directory and writes data in one go.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
