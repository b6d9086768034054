/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

import (
	"studyjournal/internal/palette"
	"studyjournal/internal/vector"
)

// Polaroid frame geometry, in px.
const (
	PolaroidPadding    = 8
	PolaroidBottom     = 24
	PolaroidImageRatio = 0.8
	PolaroidCaption    = "Study Abroad Memory"

	deleteHandleSize   = 24
	deleteHandleOffset = 8
)

const (
	EmptyHintTitle = "Start creating your scrapbook!"
	EmptyHintBody  = "Add photos, text, and stickers using the tools on the left"
)

// Layer is one rendered element. The concrete types are TextLayer,
// ImageLayer and GlyphLayer.
type Layer interface {
	Base() LayerBase
	isLayer()
}

// LayerBase carries what every layer shares. Geometry is unrotated; Box.Rotation
// is applied about the element centre by the backend.
type LayerBase struct {
	ElementID string
	Box       vector.Box
}

func (b LayerBase) Base() LayerBase { return b }
func (LayerBase) isLayer()          {}

type TextLayer struct {
	LayerBase
	Text       string
	FontFamily string
	FontSize   float32
	Color      vector.Color
	Background vector.Color
}

// PolaroidFrame is the white border and caption around a framed photo.
type PolaroidFrame struct {
	Frame   vector.Rect
	Caption string
	Text    vector.Rect // caption area below the image
}

type ImageLayer struct {
	LayerBase
	Source string      // data URI
	Image  vector.Rect // where the picture goes
	Frame  *PolaroidFrame
}

type GlyphLayer struct {
	LayerBase
	Glyph    string
	FontSize float32
}

// Selection marks the selected element with a ring and a delete handle.
type Selection struct {
	ElementID    string
	Ring         vector.Box
	DeleteHandle vector.Rect // unrotated, rotates with Ring
}

// Scene is a backend-neutral description of the canvas; the Fyne widget and
// the exporters draw it.
type Scene struct {
	Width, Height float32
	Title         string
	Background    palette.Background
	Layers        []Layer
	Selection     *Selection
	EmptyHint     []string // shown when there are no layers
}

// Render builds the scene for the current session state.
func Render(s *Session) Scene {
	f := s.frame()
	sc := RenderElements(f.snap.Elements, f.w, f.h, palette.Resolve(f.snap.Background))
	sc.Title = f.snap.Title
	if f.hasSel {
		sel := f.selected
		sc.Selection = &Selection{ElementID: sel.ID, Ring: sel.Box(), DeleteHandle: DeleteHandleRect(sel)}
	}
	return sc
}

// RenderElements renders a list of elements without selection, as used for
// saved scrapbooks.
func RenderElements(elems []Element, w, h float32, bg palette.Background) Scene {
	sc := Scene{Width: w, Height: h, Background: bg}
	for _, e := range elems {
		if l := LayerFor(e); l != nil {
			sc.Layers = append(sc.Layers, l)
		}
	}
	if len(sc.Layers) == 0 {
		sc.EmptyHint = []string{EmptyHintTitle, EmptyHintBody}
	}
	return sc
}

// LayerFor renders one element.
func LayerFor(e Element) Layer {
	base := LayerBase{ElementID: e.ID, Box: e.Box()}
	switch e.Kind {
	case KindText:
		return TextLayer{
			LayerBase:  base,
			Text:       e.Content,
			FontFamily: e.Style.FontFamilyOr(DefaultFontFamily),
			FontSize:   e.Style.FontSizeOr(DefaultFontSize),
			Color:      vector.ColorOr(e.Style.ColorOr(DefaultTextColor), vector.Color{R: 0x33, G: 0x33, B: 0x33, A: 255}),
			Background: vector.ColorOr(e.Style.BackgroundColorOr(DefaultTextBackground), vector.Transparent),
		}
	case KindPhoto:
		return photoLayer(base, e)
	case KindSticker:
		if e.HasImage() {
			return ImageLayer{LayerBase: base, Source: e.Content, Image: e.Rect()}
		}
		return GlyphLayer{LayerBase: base, Glyph: e.Content, FontSize: e.Style.FontSizeOr(DefaultGlyphSize)}
	}
	return nil
}

func photoLayer(base LayerBase, e Element) ImageLayer {
	r := e.Rect()
	if !e.Style.Polaroid() {
		return ImageLayer{LayerBase: base, Source: e.Content, Image: r}
	}
	innerH := r.H - PolaroidPadding - PolaroidBottom
	img := vector.R(r.X+PolaroidPadding, r.Y+PolaroidPadding, r.W-2*PolaroidPadding, innerH*PolaroidImageRatio)
	capY := img.Y + img.H
	return ImageLayer{
		LayerBase: base,
		Source:    e.Content,
		Image:     img,
		Frame: &PolaroidFrame{
			Frame:   r,
			Caption: PolaroidCaption,
			Text:    vector.R(r.X, capY, r.W, r.Y+r.H-capY),
		},
	}
}

// DeleteHandleRect sits over the top-right corner of the element.
func DeleteHandleRect(e Element) vector.Rect {
	return vector.R(e.X+e.Width-(deleteHandleSize-deleteHandleOffset), e.Y-deleteHandleOffset, deleteHandleSize, deleteHandleSize)
}

// DeleteHandleHit tests p against the handle, which rotates with the element.
func DeleteHandleHit(e Element, p vector.Pt) bool {
	return DeleteHandleRect(e).Contains(e.Box().Transform().Invert().Apply(p))
}
