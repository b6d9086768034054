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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	applog "studyjournal/internal/log"
	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
	"studyjournal/internal/textlayout"
	"studyjournal/internal/upload"
	"studyjournal/internal/vector"
)

var placeholderFill = vector.Color{R: 0xe5, G: 0xe7, B: 0xeb, A: 255}

// RenderImage rasterises a scene at opt.DPI. Rotated elements are drawn as
// upright tiles and mapped onto the canvas through their affine transform.
// Selection chrome is never exported.
func RenderImage(sc scrapbook.Scene, opt Options) *image.RGBA {
	s := opt.scale()
	pixW := int(math.Round(float64(sc.Width * s)))
	pixH := int(math.Round(float64(sc.Height * s)))
	dst := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	fillGradient(dst, sc.Background)

	fonts := opt.fonts()
	if len(sc.Layers) == 0 {
		drawHint(dst, sc.EmptyHint, fonts, s)
	}
	for _, l := range sc.Layers {
		b := l.Base().Box
		tile := rasterLayer(l, fonts, s)
		if tile == nil {
			continue
		}
		if b.Rotation == 0 {
			at := image.Pt(int(math.Round(float64(b.Rect.X*s))), int(math.Round(float64(b.Rect.Y*s))))
			draw.Draw(dst, tile.Bounds().Add(at), tile, image.Point{}, draw.Over)
			continue
		}
		xdraw.BiLinear.Transform(dst, tileTransform(b, s), tile, tile.Bounds(), xdraw.Over, nil)
	}
	return dst
}

// WritePNG encodes the rendered scene to w.
func WritePNG(w io.Writer, sc scrapbook.Scene, opt Options) error {
	if err := png.Encode(w, RenderImage(sc, opt)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportScenePNG writes the scene to path, creating its directory.
func ExportScenePNG(sc scrapbook.Scene, path string, opt Options) error {
	var buf bytes.Buffer
	if err := WritePNG(&buf, sc, opt); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// tileTransform maps tile pixels to canvas pixels: undo the export scale,
// move to the element origin, rotate about its centre, scale back up.
func tileTransform(b vector.Box, s float32) f64.Aff3 {
	m := vector.Scale(s, s).
		Mul(b.Transform()).
		Mul(vector.Translate(b.Rect.X, b.Rect.Y)).
		Mul(vector.Scale(1/s, 1/s))
	return f64.Aff3{
		float64(m.A), float64(m.C), float64(m.E),
		float64(m.B), float64(m.D), float64(m.F),
	}
}

func fillGradient(dst *image.RGBA, bg palette.Background) {
	b := dst.Bounds()
	w, h := float32(max(b.Dx()-1, 1)), float32(max(b.Dy()-1, 1))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := bg.At((float32(x)/w + float32(y)/h) / 2)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}

func rasterLayer(l scrapbook.Layer, fonts textlayout.Provider, s float32) *image.RGBA {
	r := l.Base().Box.Rect
	w := int(math.Round(float64(r.W * s)))
	h := int(math.Round(float64(r.H * s)))
	if w <= 0 || h <= 0 {
		return nil
	}
	tile := image.NewRGBA(image.Rect(0, 0, w, h))
	switch l := l.(type) {
	case scrapbook.TextLayer:
		if l.Background.A > 0 {
			draw.Draw(tile, tile.Bounds(), image.NewUniform(l.Background), image.Point{}, draw.Src)
		}
		spec := textlayout.FontSpec{Family: l.FontFamily, SizePx: l.FontSize * s}
		pad := textPadding * s
		block := textlayout.Wrap(fonts, spec, l.Text, float32(w)-2*pad)
		face, _ := fonts.Resolve(spec)
		drawLines(tile, face, block, l.Color, pad, pad, 0)
	case scrapbook.ImageLayer:
		rasterImage(tile, l, fonts, s)
	case scrapbook.GlyphLayer:
		spec := textlayout.FontSpec{SizePx: l.FontSize * s}
		block := textlayout.Wrap(fonts, spec, l.Glyph, float32(w))
		face, _ := fonts.Resolve(spec)
		top := (float32(h) - block.Height) / 2
		drawLines(tile, face, block, vector.Black, 0, top, float32(w))
	}
	return tile
}

func rasterImage(tile *image.RGBA, l scrapbook.ImageLayer, fonts textlayout.Provider, s float32) {
	origin := l.Box.Rect.Min()
	if f := l.Frame; f != nil {
		draw.Draw(tile, tile.Bounds(), image.NewUniform(vector.White), image.Point{}, draw.Src)
		spec := textlayout.FontSpec{SizePx: 12 * s}
		cr := localRect(f.Text, origin, s)
		block := textlayout.Wrap(fonts, spec, f.Caption, float32(cr.Dx()))
		face, _ := fonts.Resolve(spec)
		top := float32(cr.Min.Y) + (float32(cr.Dy())-block.Height)/2
		drawLines(tile, face, block, hintColor, float32(cr.Min.X), top, float32(cr.Dx()))
	}
	dr := localRect(l.Image, origin, s)
	src, err := upload.DecodeDataURI(l.Source)
	if err != nil {
		applog.WithOperation(applog.WithComponent("export"), "png").Warn("image not decodable, drawing placeholder",
			slog.String("element", l.ElementID), slog.Any("err", err))
		draw.Draw(tile, dr, image.NewUniform(placeholderFill), image.Point{}, draw.Src)
		return
	}
	xdraw.CatmullRom.Scale(tile, dr, src, coverCrop(src.Bounds(), dr.Dx(), dr.Dy()), xdraw.Over, nil)
}

// localRect converts a canvas rect to tile pixels relative to origin.
func localRect(r vector.Rect, origin vector.Pt, s float32) image.Rectangle {
	x0 := int(math.Round(float64((r.X - origin.X) * s)))
	y0 := int(math.Round(float64((r.Y - origin.Y) * s)))
	return image.Rect(x0, y0, x0+int(math.Round(float64(r.W*s))), y0+int(math.Round(float64(r.H*s))))
}

// coverCrop picks the centred part of the source with the aspect ratio of the
// destination, so the picture fills its box without distortion.
func coverCrop(sb image.Rectangle, dw, dh int) image.Rectangle {
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 || dw <= 0 || dh <= 0 {
		return sb
	}
	if sw*dh > sh*dw {
		cw := sh * dw / dh
		x0 := sb.Min.X + (sw-cw)/2
		return image.Rect(x0, sb.Min.Y, x0+cw, sb.Max.Y)
	}
	ch := sw * dh / dw
	y0 := sb.Min.Y + (sh-ch)/2
	return image.Rect(sb.Min.X, y0, sb.Max.X, y0+ch)
}

// drawLines draws a wrapped block with its first line box at (x, y). A
// positive centreWidth centres every line in that width.
func drawLines(dst draw.Image, face font.Face, block textlayout.Block, col color.Color, x, y, centreWidth float32) {
	d := font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	lh := block.Metrics.LineHeight()
	for i, ln := range block.Lines {
		lx := x
		if centreWidth > 0 {
			lx += (centreWidth - ln.Width) / 2
		}
		base := y + block.Metrics.Ascent + float32(i)*lh
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(lx * 64), Y: fixed.Int26_6(base * 64)}
		d.DrawString(ln.Text)
	}
}

func drawHint(dst *image.RGBA, hint []string, fonts textlayout.Provider, s float32) {
	if len(hint) == 0 {
		return
	}
	w, h := float32(dst.Bounds().Dx()), float32(dst.Bounds().Dy())
	blocks := make([]textlayout.Block, len(hint))
	faces := make([]font.Face, len(hint))
	var total float32
	for i, line := range hint {
		size := float32(14)
		if i == 0 {
			size = 18
		}
		spec := textlayout.FontSpec{SizePx: size * s}
		blocks[i] = textlayout.Wrap(fonts, spec, line, w*0.8)
		faces[i], _ = fonts.Resolve(spec)
		total += blocks[i].Height
	}
	total += hintGap * s * float32(len(hint)-1)
	y := (h - total) / 2
	for i, b := range blocks {
		drawLines(dst, faces[i], b, hintColor, 0, y, w)
		y += b.Height + hintGap*s
	}
}
