/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyjournal/internal/palette"
	"studyjournal/internal/vector"
)

func TestRenderEmptyCanvasShowsHint(t *testing.T) {
	s := newTestSession()
	sc := Render(s)
	assert.Empty(t, sc.Layers)
	assert.Equal(t, []string{EmptyHintTitle, EmptyHintBody}, sc.EmptyHint)
	assert.Equal(t, float32(DefaultCanvasWidth), sc.Width)
	assert.Equal(t, palette.Default, sc.Background.ID)
	assert.Nil(t, sc.Selection)
}

func TestRenderLayerPerKind(t *testing.T) {
	s := newTestSession()
	tx := s.AddText()
	s.AddPhoto("data:image/png;base64,AAAA")
	s.AddSticker("🎒")
	s.AddSticker("data:image/png;base64,CCCC")
	s.Select(tx.ID)

	sc := Render(s)
	require.Len(t, sc.Layers, 4)
	assert.Nil(t, sc.EmptyHint)

	tl, ok := sc.Layers[0].(TextLayer)
	require.True(t, ok)
	assert.Equal(t, DefaultText, tl.Text)
	assert.Equal(t, vector.Color{R: 0x33, G: 0x33, B: 0x33, A: 255}, tl.Color)
	assert.Equal(t, vector.Transparent, tl.Background)

	il, ok := sc.Layers[1].(ImageLayer)
	require.True(t, ok)
	assert.Nil(t, il.Frame)
	assert.Equal(t, il.Box.Rect, il.Image)

	gl, ok := sc.Layers[2].(GlyphLayer)
	require.True(t, ok)
	assert.Equal(t, "🎒", gl.Glyph)
	assert.Equal(t, float32(40), gl.FontSize)

	_, ok = sc.Layers[3].(ImageLayer)
	assert.True(t, ok, "data URI stickers render as images")

	require.NotNil(t, sc.Selection)
	assert.Equal(t, tx.ID, sc.Selection.ElementID)
}

func TestPolaroidGeometry(t *testing.T) {
	e := Element{ID: "p", Kind: KindPhoto, Content: "data:x", X: 10, Y: 20, Width: 150, Height: 150,
		Style: Style{IsPolaroid: Ptr(true)}}
	l := LayerFor(e).(ImageLayer)
	require.NotNil(t, l.Frame)
	assert.Equal(t, PolaroidCaption, l.Frame.Caption)
	assert.Equal(t, e.Rect(), l.Frame.Frame)
	assert.Equal(t, float32(18), l.Image.X)
	assert.Equal(t, float32(28), l.Image.Y)
	assert.Equal(t, float32(134), l.Image.W)
	assert.InDelta(t, 94.4, l.Image.H, 1e-3)
	assert.Equal(t, l.Image.Y+l.Image.H, l.Frame.Text.Y)
	assert.InDelta(t, 170, l.Frame.Text.Y+l.Frame.Text.H, 1e-3)
}

func TestRotationKeepsStoredSize(t *testing.T) {
	s := newTestSession()
	e := s.AddPhoto("data:x")
	require.True(t, s.SetRotation(e.ID, 15))
	got, _ := s.Element(e.ID)
	assert.Equal(t, float32(150), got.Width)
	assert.Equal(t, float32(150), got.Height)
	l := LayerFor(got)
	assert.Equal(t, float32(15), l.Base().Box.Rotation)
}

func TestUnparseableColorFallsBack(t *testing.T) {
	e := Element{Kind: KindText, Content: "x", Style: Style{Color: Ptr("rebeccapurple-ish")}}
	l := LayerFor(e).(TextLayer)
	assert.Equal(t, vector.Color{R: 0x33, G: 0x33, B: 0x33, A: 255}, l.Color)
}

func TestRenderSelectionAlwaysHasLayer(t *testing.T) {
	s := newTestSession()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 300; i++ {
			e := s.AddPhoto("data:image/png;base64,AAAA")
			s.Select(e.ID)
			if i%2 == 0 {
				s.Delete(e.ID)
			}
		}
	}()
	for i := 0; i < 300; i++ {
		sc := Render(s)
		if sc.Selection == nil {
			continue
		}
		found := false
		for _, l := range sc.Layers {
			if l.Base().ElementID == sc.Selection.ElementID {
				found = true
				break
			}
		}
		require.True(t, found, "selection %s has no layer", sc.Selection.ElementID)
	}
	wg.Wait()
}
