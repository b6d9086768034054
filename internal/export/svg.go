/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"studyjournal/internal/scrapbook"
	"studyjournal/internal/textlayout"
)

// WriteSVG writes the scene as a standalone SVG document. The viewBox is the
// canvas in px; width and height follow opt.DPI. Pictures stay embedded as
// data URIs and text is wrapped with the same metrics as the PNG export.
func WriteSVG(w io.Writer, sc scrapbook.Scene, opt Options) error {
	s := opt.scale()
	pxW := int(math.Round(float64(sc.Width * s)))
	pxH := int(math.Round(float64(sc.Height * s)))
	fonts := opt.fonts()

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, sc.Width, sc.Height)
	if sc.Title != "" {
		wf("  <title>%s</title>\n", escText(sc.Title))
	}
	wf("  <defs>\n")
	wf("    <linearGradient id=\"bg\" x1=\"0\" y1=\"0\" x2=\"1\" y2=\"1\">\n")
	wf("      <stop offset=\"0\" stop-color=\"%s\"/>\n", sc.Background.From.Hex())
	wf("      <stop offset=\"1\" stop-color=\"%s\"/>\n", sc.Background.To.Hex())
	wf("    </linearGradient>\n")
	wf("  </defs>\n")
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"url(#bg)\"/>\n", sc.Width, sc.Height)

	if len(sc.Layers) == 0 {
		y := sc.Height / 2
		for i, line := range sc.EmptyHint {
			size := 14
			if i == 0 {
				size = 18
			}
			wf("  <text x=\"%g\" y=\"%g\" text-anchor=\"middle\" font-family=\"sans-serif\" font-size=\"%d\" fill=\"%s\">%s</text>\n",
				sc.Width/2, y, size, hintColor.Hex(), escText(line))
			y += float32(size) + hintGap
		}
	}

	for _, l := range sc.Layers {
		b := l.Base().Box
		r := b.Rect
		if b.Rotation != 0 {
			c := r.Center()
			wf("  <g transform=\"rotate(%g %g %g)\">\n", b.Rotation, c.X, c.Y)
		} else {
			wf("  <g>\n")
		}
		switch l := l.(type) {
		case scrapbook.TextLayer:
			if l.Background.A > 0 {
				wf("    <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", r.X, r.Y, r.W, r.H, l.Background.Hex())
			}
			block := textlayout.Wrap(fonts, textlayout.FontSpec{Family: l.FontFamily, SizePx: l.FontSize}, l.Text, r.W-2*textPadding)
			lh := block.Metrics.LineHeight()
			for i, ln := range block.Lines {
				wf("    <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"%g\" fill=\"%s\">%s</text>\n",
					r.X+textPadding, r.Y+textPadding+block.Metrics.Ascent+float32(i)*lh,
					escAttr(l.FontFamily), l.FontSize, l.Color.Hex(), escText(ln.Text))
			}
		case scrapbook.ImageLayer:
			if f := l.Frame; f != nil {
				wf("    <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", r.X, r.Y, r.W, r.H)
				c := f.Text.Center()
				wf("    <text x=\"%g\" y=\"%g\" text-anchor=\"middle\" dominant-baseline=\"central\" font-family=\"sans-serif\" font-size=\"12\" fill=\"%s\">%s</text>\n",
					c.X, c.Y, hintColor.Hex(), escText(f.Caption))
			}
			im := l.Image
			wf("    <image x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" preserveAspectRatio=\"xMidYMid slice\" href=\"%s\"/>\n",
				im.X, im.Y, im.W, im.H, escAttr(l.Source))
		case scrapbook.GlyphLayer:
			c := r.Center()
			wf("    <text x=\"%g\" y=\"%g\" text-anchor=\"middle\" dominant-baseline=\"central\" font-size=\"%g\">%s</text>\n",
				c.X, c.Y, l.FontSize, escText(l.Glyph))
		}
		wf("  </g>\n")
	}
	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// ExportSceneSVG writes the scene to path, creating its directory.
func ExportSceneSVG(sc scrapbook.Scene, path string, opt Options) error {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sc, opt); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, "&quot;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '\n':
			out = append(out, ' ')
		case '\r':
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

