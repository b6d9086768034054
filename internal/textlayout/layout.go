/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement and line breaking for the raster and PDF exporters. All
// measurement goes through a Provider so tests can use a fixed bitmap face.

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font. Size is in px at the export scale.
type FontSpec struct {
	Family string
	SizePx float32
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Line is a single laid out line.
type Line struct {
	Text  string
	Width float32
}

// Block is text wrapped into a box width.
type Block struct {
	Lines   []Line
	Width   float32
	Height  float32
	Metrics Metrics
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests and
// as the last fallback. It ignores the requested size.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	return f, metricsOf(f)
}

func metricsOf(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Wrap breaks text on spaces and newlines to fit maxWidth. A word wider than
// maxWidth is split between runes. maxWidth <= 0 disables wrapping.
func Wrap(p Provider, spec FontSpec, text string, maxWidth float32) Block {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(spec)
	d := &font.Drawer{Face: face}
	b := Block{Metrics: met}
	add := func(s string) {
		w := advance(d, s)
		b.Lines = append(b.Lines, Line{Text: s, Width: w})
		b.Width = max(b.Width, w)
	}
	for _, para := range strings.Split(text, "\n") {
		cur := ""
		for _, word := range strings.Fields(para) {
			cand := word
			if cur != "" {
				cand = cur + " " + word
			}
			if maxWidth <= 0 || advance(d, cand) <= maxWidth {
				cur = cand
				continue
			}
			if cur != "" {
				add(cur)
			}
			cur = word
			for maxWidth > 0 && advance(d, cur) > maxWidth && utf8.RuneCountInString(cur) > 1 {
				head, tail := splitToWidth(d, cur, maxWidth)
				add(head)
				cur = tail
			}
		}
		add(cur)
	}
	b.Height = float32(len(b.Lines)) * met.LineHeight()
	return b
}

// splitToWidth returns the longest rune prefix of s that fits (at least one rune).
func splitToWidth(d *font.Drawer, s string, maxWidth float32) (string, string) {
	end := 0
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		if end > 0 && advance(d, s[:next]) > maxWidth {
			break
		}
		end = next
	}
	return s[:end], s[end:]
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s)) / 64 // fixed.Int26_6 to px
}

// Measure returns the width and line height of s on a single line.
func Measure(p Provider, spec FontSpec, s string) (w, h float32) {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(spec)
	return advance(&font.Drawer{Face: face}, s), met.Ascent + met.Descent
}
