/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

import "studyjournal/internal/vector"

type PointerAction uint8

const (
	PointerDown PointerAction = iota + 1
	PointerMove
	PointerUp
)

// PointerEvent is one pointer sample in canvas-local coordinates.
type PointerEvent struct {
	Action PointerAction
	X, Y   float32
}

func (e PointerEvent) Pt() vector.Pt { return vector.Pt{X: e.X, Y: e.Y} }

// DragState is Idle when Dragging is false.
type DragState struct {
	Dragging  bool
	ElementID string
	OffsetX   float32
	OffsetY   float32
}

// Canvas is what the drag controller drives.
type Canvas interface {
	HitTest(p vector.Pt) (Element, bool)
	Select(id string)
	ClearSelection()
	MoveTo(id string, x, y float32)
}

// DragController turns pointer samples into selection changes and position
// updates for one element at a time.
type DragController struct {
	state DragState
}

func (d *DragController) State() DragState { return d.state }

// Dragging reports the element being dragged, if any.
func (d *DragController) Dragging() (string, bool) {
	return d.state.ElementID, d.state.Dragging
}

// Handle applies ev to c. A press on an element selects it and starts a drag;
// the background handler never sees that press. A press on empty canvas clears
// the selection. Moves follow the pointer rigidly and are not clamped.
func (d *DragController) Handle(c Canvas, ev PointerEvent) {
	switch ev.Action {
	case PointerDown:
		e, ok := c.HitTest(ev.Pt())
		if !ok {
			d.state = DragState{}
			c.ClearSelection()
			return
		}
		c.Select(e.ID)
		d.state = DragState{
			Dragging:  true,
			ElementID: e.ID,
			OffsetX:   ev.X - e.X,
			OffsetY:   ev.Y - e.Y,
		}
	case PointerMove:
		if !d.state.Dragging {
			return
		}
		c.MoveTo(d.state.ElementID, ev.X-d.state.OffsetX, ev.Y-d.state.OffsetY)
	case PointerUp:
		d.state = DragState{}
	}
}

// Cancel drops back to Idle without moving anything.
func (d *DragController) Cancel() { d.state = DragState{} }
