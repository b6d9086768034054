/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyjournal/internal/palette"
	"studyjournal/internal/upload"
)

func TestAddTextDefaults(t *testing.T) {
	s := newTestSession()
	e := s.AddText()

	require.Equal(t, 1, s.Len())
	assert.Equal(t, KindText, e.Kind)
	assert.Equal(t, DefaultText, e.Content)
	assert.GreaterOrEqual(t, e.X, float32(0))
	assert.Less(t, e.X, float32(300))
	assert.GreaterOrEqual(t, e.Y, float32(0))
	assert.Less(t, e.Y, float32(200))
	assert.Equal(t, float32(200), e.Width)
	assert.Equal(t, float32(50), e.Height)
	assert.Equal(t, float32(16), *e.Style.FontSize)
	assert.Equal(t, "Arial", *e.Style.FontFamily)
	assert.Equal(t, "#333333", *e.Style.Color)
	assert.Equal(t, "transparent", *e.Style.BackgroundColor)
}

func TestAddVariantsDefaults(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 50; i++ {
		st := s.AddSticker("🌍")
		assert.Equal(t, KindSticker, st.Kind)
		assert.Equal(t, float32(50), st.Width)
		assert.Equal(t, float32(40), *st.Style.FontSize)
		assert.True(t, st.X >= 0 && st.X < 400 && st.Y >= 0 && st.Y < 300)

		ph := s.AddPhoto("data:image/png;base64,AAAA")
		assert.Equal(t, KindPhoto, ph.Kind)
		assert.Equal(t, float32(150), ph.Height)
		assert.Equal(t, Style{}, ph.Style)
		assert.True(t, ph.X >= 0 && ph.X < 200 && ph.Y >= 0 && ph.Y < 200)
	}
	cs := s.AddCustomSticker("data:image/png;base64,BBBB")
	assert.Equal(t, float32(80), cs.Width)
	assert.Equal(t, float32(80), cs.Height)
	assert.Equal(t, []string{"data:image/png;base64,BBBB"}, s.CustomStickers())
}

func TestAddsStayInsideSmallCanvas(t *testing.T) {
	const w, h = 200, 120
	s := NewSession(WithIDs(&SeqSource{Prefix: "el"}), WithRand(rand.New(rand.NewPCG(3, 4))), WithCanvasSize(w, h))
	for i := 0; i < 50; i++ {
		for _, e := range []Element{
			s.AddText(),
			s.AddSticker("⭐"),
			s.AddPhoto("data:image/png;base64,AAAA"),
			s.AddCustomSticker("data:image/png;base64,BBBB"),
		} {
			assert.GreaterOrEqual(t, e.X, float32(0), e.Kind.String())
			assert.GreaterOrEqual(t, e.Y, float32(0), e.Kind.String())
			assert.LessOrEqual(t, e.X+e.Width, float32(w), e.Kind.String())
			if e.Height <= h {
				assert.LessOrEqual(t, e.Y+e.Height, float32(h), e.Kind.String())
			} else {
				// taller than the canvas: pinned to the top edge
				assert.Equal(t, float32(0), e.Y)
			}
		}
	}
}

func TestIDsAreUniqueAcrossAdds(t *testing.T) {
	s := NewSession()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[s.AddPhoto("data:image/png;base64,AAAA").ID] = true
	}
	assert.Len(t, seen, 100)
}

func TestDeleteSelectedClearsSelection(t *testing.T) {
	s := newTestSession()
	e := s.AddText()
	s.Select(e.ID)
	s.Delete(e.ID)
	assert.Empty(t, s.SelectedID())
	assert.Equal(t, 0, s.Len())
}

func TestDeleteNonSelectedKeepsSelection(t *testing.T) {
	s := newTestSession()
	a := s.AddText()
	b := s.AddText()
	s.Select(a.ID)
	s.Delete(b.ID)
	assert.Equal(t, a.ID, s.SelectedID())
	s.Delete("missing")
	assert.Equal(t, a.ID, s.SelectedID())

	s.DeleteSelected()
	assert.Empty(t, s.SelectedID())
	assert.Equal(t, 0, s.Len())
	s.DeleteSelected() // no selection: no-op
}

func TestStaleSelectionResolvesToNothing(t *testing.T) {
	s := newTestSession()
	e := s.AddText()
	s.Select(e.ID)
	s.store.Remove(e.ID)
	assert.Empty(t, s.SelectedID())
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSelectThenSetFontSize(t *testing.T) {
	s := newTestSession()
	e := s.AddText()
	s.Select(e.ID)
	require.True(t, s.SetFontSize(s.SelectedID(), 24))

	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, float32(24), *got.Style.FontSize)
	assert.Equal(t, "Arial", *got.Style.FontFamily)
	assert.Equal(t, "#333333", *got.Style.Color)
	assert.Equal(t, "transparent", *got.Style.BackgroundColor)
	assert.Nil(t, got.Style.Rotation)
	assert.Nil(t, got.Style.IsPolaroid)
}

func TestTextStyleSettersAreKindGated(t *testing.T) {
	s := newTestSession()
	ph := s.AddPhoto("data:image/png;base64,AAAA")
	assert.False(t, s.SetFontFamily(ph.ID, "Impact"))
	assert.False(t, s.SetColor(ph.ID, "#ff0000"))
	got, _ := s.Element(ph.ID)
	assert.Equal(t, Style{}, got.Style)

	tx := s.AddText()
	assert.True(t, s.SetFontFamily(tx.ID, "Not A Real Font"))
	got, _ = s.Element(tx.ID)
	assert.Equal(t, "Not A Real Font", *got.Style.FontFamily, "values are stored verbatim")
	assert.False(t, s.TogglePolaroid(tx.ID))
}

func TestTogglePolaroidTwiceRestoresRendering(t *testing.T) {
	s := newTestSession()
	ph := s.AddPhoto("data:image/png;base64,AAAA")
	before := LayerFor(ph)

	require.True(t, s.TogglePolaroid(ph.ID))
	mid, _ := s.Element(ph.ID)
	assert.True(t, mid.Style.Polaroid())
	assert.NotNil(t, LayerFor(mid).(ImageLayer).Frame)

	require.True(t, s.TogglePolaroid(ph.ID))
	after, _ := s.Element(ph.ID)
	assert.False(t, after.Style.Polaroid())
	assert.Equal(t, before, LayerFor(after))
}

func TestCommitTextOnlyForText(t *testing.T) {
	s := newTestSession()
	tx := s.AddText()
	st := s.AddSticker("⭐")
	assert.True(t, s.CommitText(tx.ID, "Day one in Lisbon"))
	assert.False(t, s.CommitText(st.ID, "nope"))
	got, _ := s.Element(tx.ID)
	assert.Equal(t, "Day one in Lisbon", got.Content)
	gs, _ := s.Element(st.ID)
	assert.Equal(t, "⭐", gs.Content)
}

func TestDeleteHandlePress(t *testing.T) {
	s := newTestSession()
	e := s.AddSticker("⭐")
	s.Update(e.ID, Patch{X: Ptr[float32](100), Y: Ptr[float32](100)})
	s.Select(e.ID)
	// Handle covers x in [134,158], y in [92,116].
	s.HandlePointer(PointerEvent{Action: PointerDown, X: 150, Y: 95})
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.SelectedID())
	assert.False(t, s.DragState().Dragging)
}

func TestSnapshotAndTitle(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, DefaultTitle, s.Title())
	assert.Equal(t, palette.Default, s.Background())
	s.SetTitle("Semester in Kyoto")
	s.SetBackground(palette.Forest)
	s.AddText()
	snap := s.Snapshot()
	assert.Equal(t, "Semester in Kyoto", snap.Title)
	assert.Equal(t, palette.Forest, snap.Background)
	assert.Len(t, snap.Elements, 1)
	assert.True(t, strings.Contains(s.CrashSummary(), "elements=1"))
}

func TestControlsFor(t *testing.T) {
	assert.Equal(t, []Control{ControlFont, ControlSize, ControlColor, ControlRotation}, ControlsFor(Element{Kind: KindText}))
	assert.Equal(t, []Control{ControlPolaroid, ControlRotation}, ControlsFor(Element{Kind: KindPhoto}))
	assert.Empty(t, ControlsFor(Element{Kind: KindSticker}))
	assert.Len(t, FontOptions, 10)
	assert.Len(t, SizeOptions, 10)
	assert.Len(t, BuiltinStickers, 12)
}

func TestBatchUploadAddsEveryPhoto(t *testing.T) {
	var srcs []upload.Source
	want := map[string]bool{}
	for i := 0; i < 8; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.SetRGBA(0, 0, color.RGBA{R: uint8(i * 30), A: 255})
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, img))
		srcs = append(srcs, upload.FromBytes(fmt.Sprintf("p%d.png", i), buf.Bytes()))
		want[upload.DataURI("image/png", buf.Bytes())] = true
	}
	srcs = append(srcs, upload.FromBytes("notes.png", []byte("not an image")))

	s := newTestSession()
	err := upload.Loader{Workers: 4}.Load(context.Background(), srcs, func(img upload.Image) {
		s.AddPhoto(img.DataURI)
	})
	require.NoError(t, err)

	elems := s.Elements()
	require.Len(t, elems, 8)
	got := map[string]bool{}
	ids := map[string]bool{}
	for _, e := range elems {
		assert.Equal(t, KindPhoto, e.Kind)
		got[e.Content] = true
		ids[e.ID] = true
	}
	assert.Equal(t, want, got)
	assert.Len(t, ids, 8)
}
