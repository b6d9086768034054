/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyjournal/internal/vector"
)

func newTestSession() *Session {
	return NewSession(WithIDs(&SeqSource{Prefix: "el"}), WithRand(rand.New(rand.NewPCG(1, 2))))
}

func TestDragTranslatesExactly(t *testing.T) {
	s := newTestSession()
	e := s.AddText()
	s.Update(e.ID, Patch{X: Ptr[float32](40), Y: Ptr[float32](60)})
	e, _ = s.Element(e.ID)

	px, py := e.X+5, e.Y+5
	s.HandlePointer(PointerEvent{Action: PointerDown, X: px, Y: py})
	st := s.DragState()
	require.True(t, st.Dragging)
	assert.Equal(t, e.ID, st.ElementID)
	assert.Equal(t, float32(5), st.OffsetX)
	assert.Equal(t, float32(5), st.OffsetY)

	s.HandlePointer(PointerEvent{Action: PointerMove, X: px + 37, Y: py - 12})
	got, _ := s.Element(e.ID)
	assert.Equal(t, e.X+37, got.X)
	assert.Equal(t, e.Y-12, got.Y)

	s.HandlePointer(PointerEvent{Action: PointerUp, X: px + 37, Y: py - 12})
	assert.False(t, s.DragState().Dragging)

	// Moves after release do nothing.
	s.HandlePointer(PointerEvent{Action: PointerMove, X: 0, Y: 0})
	after, _ := s.Element(e.ID)
	assert.Equal(t, got.X, after.X)
	assert.Equal(t, got.Y, after.Y)
}

func TestDragIsNotClamped(t *testing.T) {
	s := newTestSession()
	e := s.AddPhoto("data:image/png;base64,AAAA")
	s.Update(e.ID, Patch{X: Ptr[float32](10), Y: Ptr[float32](10)})
	e, _ = s.Element(e.ID)
	s.HandlePointer(PointerEvent{Action: PointerDown, X: e.X + 1, Y: e.Y + 1})
	s.HandlePointer(PointerEvent{Action: PointerMove, X: -5000, Y: 9000})
	got, _ := s.Element(e.ID)
	assert.Equal(t, float32(-5001), got.X)
	assert.Equal(t, float32(8999), got.Y)
}

func TestPressSelectsElementAndBackgroundClears(t *testing.T) {
	s := newTestSession()
	e := s.AddText()
	s.HandlePointer(PointerEvent{Action: PointerDown, X: e.X + 10, Y: e.Y + 10})
	s.HandlePointer(PointerEvent{Action: PointerUp, X: e.X + 10, Y: e.Y + 10})
	assert.Equal(t, e.ID, s.SelectedID(), "a press on an element must not fall through to the background")

	s.HandlePointer(PointerEvent{Action: PointerDown, X: 5000, Y: 5000})
	assert.Empty(t, s.SelectedID())
	assert.False(t, s.DragState().Dragging)
}

func TestPressPicksTopmost(t *testing.T) {
	s := newTestSession()
	a := s.AddText()
	b := s.AddText()
	s.Update(a.ID, Patch{X: Ptr[float32](0), Y: Ptr[float32](0)})
	s.Update(b.ID, Patch{X: Ptr[float32](50), Y: Ptr[float32](10)})
	s.HandlePointer(PointerEvent{Action: PointerDown, X: 60, Y: 20})
	assert.Equal(t, b.ID, s.SelectedID())
}

func TestPressRespectsRotation(t *testing.T) {
	s := newTestSession()
	e := s.AddText()
	s.Update(e.ID, Patch{X: Ptr[float32](0), Y: Ptr[float32](0)})
	require.True(t, s.SetRotation(e.ID, 90))
	// 200x50 rotated about (100,25) covers x in [75,125], y in [-75,125].
	s.HandlePointer(PointerEvent{Action: PointerDown, X: 190, Y: 25})
	assert.Empty(t, s.SelectedID())
	s.HandlePointer(PointerEvent{Action: PointerDown, X: 100, Y: -60})
	assert.Equal(t, e.ID, s.SelectedID())
}

type recordingCanvas struct {
	elems    []Element
	selected string
	moves    [][2]float32
}

func (c *recordingCanvas) HitTest(p vector.Pt) (Element, bool) {
	for i := len(c.elems) - 1; i >= 0; i-- {
		if c.elems[i].Box().Hit(p) {
			return c.elems[i], true
		}
	}
	return Element{}, false
}
func (c *recordingCanvas) Select(id string) { c.selected = id }
func (c *recordingCanvas) ClearSelection()  { c.selected = "" }
func (c *recordingCanvas) MoveTo(_ string, x, y float32) {
	c.moves = append(c.moves, [2]float32{x, y})
}

func TestDragControllerStandalone(t *testing.T) {
	c := &recordingCanvas{elems: []Element{{ID: "a", X: 100, Y: 100, Width: 50, Height: 50}}}
	var d DragController
	d.Handle(c, PointerEvent{Action: PointerMove, X: 1, Y: 1})
	assert.Empty(t, c.moves, "idle controller must ignore moves")

	d.Handle(c, PointerEvent{Action: PointerDown, X: 110, Y: 120})
	d.Handle(c, PointerEvent{Action: PointerMove, X: 210, Y: 220})
	d.Handle(c, PointerEvent{Action: PointerMove, X: 0, Y: 0})
	d.Handle(c, PointerEvent{Action: PointerUp})
	assert.Equal(t, "a", c.selected)
	assert.Equal(t, [][2]float32{{200, 200}, {-10, -20}}, c.moves)
	_, dragging := d.Dragging()
	assert.False(t, dragging)
}
