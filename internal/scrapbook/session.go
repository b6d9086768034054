/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	applog "studyjournal/internal/log"
	"studyjournal/internal/palette"
	"studyjournal/internal/vector"
)

const (
	DefaultTitle          = "My Study Abroad Adventure"
	DefaultText           = "Click to edit text"
	DefaultFontFamily     = "Arial"
	DefaultFontSize       = 16
	DefaultTextColor      = "#333333"
	DefaultTextBackground = "transparent"
	DefaultGlyphSize      = 40

	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// Snapshot is what a save hands to the gallery.
type Snapshot struct {
	Title      string
	Background palette.ID
	Elements   []Element
}

// Session is one scrapbook being edited. It owns the element store, the
// selection, the drag controller and the custom-sticker tray; renderers and
// widgets get it passed in. Methods are safe to call from the upload goroutine.
type Session struct {
	mu         sync.Mutex
	store      *Store
	ids        IDSource
	rnd        *rand.Rand
	drag       DragController
	selectedID string
	title      string
	background palette.ID
	stickers   []string
	width      float32
	height     float32
	log        *slog.Logger
}

type Option func(*Session)

func WithIDs(src IDSource) Option { return func(s *Session) { s.ids = src } }

// WithRand fixes the placement randomness.
func WithRand(r *rand.Rand) Option { return func(s *Session) { s.rnd = r } }

func WithCanvasSize(w, h float32) Option {
	return func(s *Session) {
		if w > 0 && h > 0 {
			s.width, s.height = w, h
		}
	}
}

func WithBackground(id palette.ID) Option { return func(s *Session) { s.background = id } }

func NewSession(opts ...Option) *Session {
	s := &Session{
		store:      NewStore(),
		ids:        UUIDSource{},
		rnd:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		title:      DefaultTitle,
		background: palette.Default,
		width:      DefaultCanvasWidth,
		height:     DefaultCanvasHeight,
		log:        applog.WithComponent("scrapbook"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// place picks a spawn position in [0,maxX) x [0,maxY), narrowed so an
// element of size w x h stays inside the canvas when it fits at all.
func (s *Session) place(maxX, maxY, w, h float32) (float32, float32) {
	rx := max(min(maxX, s.width-w), 0)
	ry := max(min(maxY, s.height-h), 0)
	return s.rnd.Float32() * rx, s.rnd.Float32() * ry
}

func (s *Session) add(e Element) Element {
	e.ID = s.ids.NewID()
	s.store.Add(e)
	s.log.Debug("element added", slog.String("id", e.ID), slog.String("kind", e.Kind.String()))
	return e
}

// AddText places a default text box somewhere in the top-left area.
func (s *Session) AddText() Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, y := s.place(300, 200, 200, 50)
	return s.add(Element{
		Kind: KindText, Content: DefaultText,
		X: x, Y: y, Width: 200, Height: 50,
		Style: Style{
			FontSize:        Ptr[float32](DefaultFontSize),
			FontFamily:      Ptr(DefaultFontFamily),
			Color:           Ptr(DefaultTextColor),
			BackgroundColor: Ptr(DefaultTextBackground),
		},
	})
}

// AddSticker places a tray sticker: a glyph or a data URI from the custom tray.
func (s *Session) AddSticker(content string) Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, y := s.place(400, 300, 50, 50)
	return s.add(Element{
		Kind: KindSticker, Content: content,
		X: x, Y: y, Width: 50, Height: 50,
		Style: Style{FontSize: Ptr[float32](DefaultGlyphSize)},
	})
}

// AddPhoto places an uploaded photo given as a data URI.
func (s *Session) AddPhoto(dataURI string) Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, y := s.place(200, 200, 150, 150)
	return s.add(Element{
		Kind: KindPhoto, Content: dataURI,
		X: x, Y: y, Width: 150, Height: 150,
	})
}

// AddCustomSticker remembers the image in the tray and places it.
func (s *Session) AddCustomSticker(dataURI string) Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stickers = append(s.stickers, dataURI)
	x, y := s.place(400, 300, 80, 80)
	return s.add(Element{
		Kind: KindSticker, Content: dataURI,
		X: x, Y: y, Width: 80, Height: 80,
	})
}

// AddToTray adds images to the custom-sticker tray without placing them.
func (s *Session) AddToTray(dataURIs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stickers = append(s.stickers, dataURIs...)
}

// CustomStickers returns the tray in upload order.
func (s *Session) CustomStickers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.stickers...)
}

func (s *Session) Elements() []Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

func (s *Session) Element(id string) (Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Update merges p into the element; unknown ids are ignored.
func (s *Session) Update(id string, p Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Update(id, p)
}

// UpdateStyle merges p verbatim; values are not validated.
func (s *Session) UpdateStyle(id string, p StylePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.UpdateStyle(id, p)
}

func (s *Session) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
}

// SelectedID is empty when nothing is selected or the selection went stale.
func (s *Session) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedIDLocked()
}

func (s *Session) selectedIDLocked() string {
	if s.selectedID == "" {
		return ""
	}
	if _, ok := s.store.Get(s.selectedID); !ok {
		return ""
	}
	return s.selectedID
}

func (s *Session) Selected() (Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.selectedIDLocked()
	if id == "" {
		return Element{}, false
	}
	return s.store.Get(id)
}

// Delete removes the element. The selection is cleared when it pointed at id,
// which is always the case for deletes coming from the delete handle.
func (s *Session) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
}

func (s *Session) deleteLocked(id string) {
	if !s.store.Remove(id) {
		return
	}
	s.log.Debug("element deleted", slog.String("id", id))
	if d, ok := s.drag.Dragging(); ok && d == id {
		s.drag.Cancel()
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
}

// DeleteSelected is a no-op without a selection.
func (s *Session) DeleteSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id := s.selectedIDLocked(); id != "" {
		s.deleteLocked(id)
	}
}

// CommitText stores edited text; the editor calls it when it loses focus.
func (s *Session) CommitText(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isKind(id, KindText) {
		return false
	}
	return s.store.Update(id, Patch{Content: &text})
}

func (s *Session) isKind(id string, k Kind) bool {
	e, ok := s.store.Get(id)
	return ok && e.Kind == k
}

func (s *Session) updateStyleIf(id string, k Kind, p StylePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isKind(id, k) {
		return false
	}
	return s.store.UpdateStyle(id, p)
}

// SetFontFamily applies to text elements only.
func (s *Session) SetFontFamily(id, family string) bool {
	return s.updateStyleIf(id, KindText, StylePatch{FontFamily: &family})
}

// SetFontSize applies to text elements only.
func (s *Session) SetFontSize(id string, size float32) bool {
	return s.updateStyleIf(id, KindText, StylePatch{FontSize: &size})
}

// SetColor applies to text elements only.
func (s *Session) SetColor(id, color string) bool {
	return s.updateStyleIf(id, KindText, StylePatch{Color: &color})
}

// SetRotation applies to any element.
func (s *Session) SetRotation(id string, deg float32) bool {
	return s.UpdateStyle(id, StylePatch{Rotation: &deg})
}

// TogglePolaroid flips the frame on a photo element.
func (s *Session) TogglePolaroid(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.store.Get(id)
	if !ok || e.Kind != KindPhoto {
		return false
	}
	return s.store.UpdateStyle(id, StylePatch{IsPolaroid: Ptr(!e.Style.Polaroid())})
}

func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

func (s *Session) SetTitle(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = t
}

func (s *Session) Background() palette.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *Session) SetBackground(id palette.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = id
}

// CanvasSize is the logical canvas size in px.
func (s *Session) CanvasSize() (float32, float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Snapshot copies what a save needs.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Title: s.title, Background: s.background, Elements: s.store.List()}
}

// frame is a consistent view of the session for one render pass.
type frame struct {
	snap     Snapshot
	w, h     float32
	selected Element
	hasSel   bool
}

func (s *Session) frame() frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := frame{
		snap: Snapshot{Title: s.title, Background: s.background, Elements: s.store.List()},
		w:    s.width,
		h:    s.height,
	}
	if id := s.selectedIDLocked(); id != "" {
		f.selected, f.hasSel = s.store.Get(id)
	}
	return f
}

// DragState exposes the controller state for widgets and tests.
func (s *Session) DragState() DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.State()
}

// HandlePointer is the single entry point for pointer input on the canvas.
// A press on the delete handle of the selected element deletes it; everything
// else goes to the drag controller.
func (s *Session) HandlePointer(ev PointerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.Action == PointerDown {
		if id := s.selectedIDLocked(); id != "" {
			e, _ := s.store.Get(id)
			if DeleteHandleHit(e, ev.Pt()) {
				s.deleteLocked(id)
				return
			}
		}
	}
	s.drag.Handle(lockedCanvas{s}, ev)
}

// CrashSummary describes the session for crash reports.
func (s *Session) CrashSummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("scrapbook title=%q elements=%d selected=%q stickers=%d",
		s.title, s.store.Len(), s.selectedIDLocked(), len(s.stickers))
}

// lockedCanvas lets the drag controller call back into a session whose lock
// is already held.
type lockedCanvas struct{ s *Session }

func (c lockedCanvas) HitTest(p vector.Pt) (Element, bool) {
	elems := c.s.store.List()
	boxes := make([]vector.Box, len(elems))
	for i, e := range elems {
		boxes[i] = e.Box()
	}
	if i := vector.TopmostHit(boxes, p); i >= 0 {
		return elems[i], true
	}
	return Element{}, false
}

func (c lockedCanvas) Select(id string) { c.s.selectedID = id }
func (c lockedCanvas) ClearSelection()  { c.s.selectedID = "" }

func (c lockedCanvas) MoveTo(id string, x, y float32) {
	c.s.store.Update(id, Patch{X: &x, Y: &y})
}

// HitTest returns the topmost element under p.
func (s *Session) HitTest(p vector.Pt) (Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lockedCanvas{s}.HitTest(p)
}
