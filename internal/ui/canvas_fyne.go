//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"studyjournal/internal/export"
	"studyjournal/internal/scrapbook"
	"studyjournal/internal/vector"
)

var (
	ringColor   = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	handleColor = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 255}
)

// ScrapbookCanvas shows a scrapbook session and feeds pointer input to it.
// The scene is rasterised by the PNG exporter; emoji stickers are overlaid
// as text so the platform emoji font draws them.
type ScrapbookCanvas struct {
	widget.BaseWidget

	session *scrapbook.Session
	opt     export.Options
	last    fyne.Position

	// OnChange runs after every pointer event that may have changed the session.
	OnChange func()
	// OnEditText runs on a double tap over a text element.
	OnEditText func(scrapbook.Element)
}

func NewScrapbookCanvas(s *scrapbook.Session, opt export.Options) *ScrapbookCanvas {
	c := &ScrapbookCanvas{session: s, opt: opt}
	c.ExtendBaseWidget(c)
	return c
}

func (c *ScrapbookCanvas) MouseDown(e *desktop.MouseEvent) { c.pointer(scrapbook.PointerDown, e.Position) }
func (c *ScrapbookCanvas) MouseUp(e *desktop.MouseEvent)   { c.pointer(scrapbook.PointerUp, e.Position) }
func (c *ScrapbookCanvas) Dragged(e *fyne.DragEvent)       { c.pointer(scrapbook.PointerMove, e.Position) }
func (c *ScrapbookCanvas) DragEnd()                        { c.pointer(scrapbook.PointerUp, c.last) }

func (c *ScrapbookCanvas) DoubleTapped(e *fyne.PointEvent) {
	el, ok := c.session.HitTest(vector.Pt{X: e.Position.X, Y: e.Position.Y})
	if ok && el.Kind == scrapbook.KindText && c.OnEditText != nil {
		c.OnEditText(el)
	}
}

func (c *ScrapbookCanvas) pointer(a scrapbook.PointerAction, pos fyne.Position) {
	c.last = pos
	c.session.HandlePointer(scrapbook.PointerEvent{Action: a, X: pos.X, Y: pos.Y})
	c.Refresh()
	if c.OnChange != nil {
		c.OnChange()
	}
}

func (c *ScrapbookCanvas) MinSize() fyne.Size {
	w, h := c.session.CanvasSize()
	return fyne.NewSize(w, h)
}

func (c *ScrapbookCanvas) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch

	ring := canvas.NewRectangle(color.Transparent)
	ring.StrokeColor = ringColor
	ring.StrokeWidth = 2
	ring.Hide()

	handle := canvas.NewCircle(handleColor)
	handle.Hide()
	cross := canvas.NewText("×", color.White)
	cross.TextStyle = fyne.TextStyle{Bold: true}
	cross.Alignment = fyne.TextAlignCenter
	cross.Hide()

	r := &scrapbookCanvasRenderer{c: c, image: img, ring: ring, handle: handle, cross: cross}
	r.Refresh()
	return r
}

type scrapbookCanvasRenderer struct {
	c       *ScrapbookCanvas
	image   *canvas.Image
	glyphs  []fyne.CanvasObject
	ring    *canvas.Rectangle
	handle  *canvas.Circle
	cross   *canvas.Text
	objects []fyne.CanvasObject
}

func (r *scrapbookCanvasRenderer) Destroy()                     {}
func (r *scrapbookCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *scrapbookCanvasRenderer) MinSize() fyne.Size           { return r.c.MinSize() }

func (r *scrapbookCanvasRenderer) Layout(_ fyne.Size) {
	r.image.Resize(r.c.MinSize())
	r.image.Move(fyne.NewPos(0, 0))
}

func (r *scrapbookCanvasRenderer) Refresh() {
	sc := scrapbook.Render(r.c.session)

	// Glyphs are drawn natively; everything else goes through the rasteriser.
	raster := sc
	raster.Layers = nil
	r.glyphs = r.glyphs[:0]
	for _, l := range sc.Layers {
		g, ok := l.(scrapbook.GlyphLayer)
		if !ok {
			raster.Layers = append(raster.Layers, l)
			continue
		}
		t := canvas.NewText(g.Glyph, color.Black)
		t.TextSize = g.FontSize
		t.Alignment = fyne.TextAlignCenter
		b := g.Box.Rect
		t.Resize(fyne.NewSize(b.W, b.H))
		t.Move(fyne.NewPos(b.X, b.Y+(b.H-t.MinSize().Height)/2))
		r.glyphs = append(r.glyphs, t)
	}
	if len(sc.Layers) > 0 {
		raster.EmptyHint = nil
	}

	opt := r.c.opt
	opt.DPI = 96
	if cv := fyne.CurrentApp().Driver().CanvasForObject(r.c); cv != nil && cv.Scale() > 1 {
		opt.DPI = int(96 * cv.Scale())
	}
	r.image.Image = export.RenderImage(raster, opt)
	r.image.Refresh()

	r.ring.Hide()
	r.handle.Hide()
	r.cross.Hide()
	if sel := sc.Selection; sel != nil {
		b := sel.Ring.Bounds()
		r.ring.Resize(fyne.NewSize(b.W, b.H))
		r.ring.Move(fyne.NewPos(b.X, b.Y))
		r.ring.Show()

		hc := sel.Ring.Transform().Apply(sel.DeleteHandle.Center())
		hs := fyne.NewSize(sel.DeleteHandle.W, sel.DeleteHandle.H)
		at := fyne.NewPos(hc.X-hs.Width/2, hc.Y-hs.Height/2)
		r.handle.Resize(hs)
		r.handle.Move(at)
		r.handle.Show()
		r.cross.Resize(hs)
		r.cross.Move(at)
		r.cross.Show()
	}

	r.objects = append([]fyne.CanvasObject{r.image}, r.glyphs...)
	r.objects = append(r.objects, r.ring, r.handle, r.cross)
	r.Layout(r.c.Size())
	canvas.Refresh(r.c)
}
