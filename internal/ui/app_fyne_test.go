//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests drive the scrapbook canvas widget headlessly through Fyne's
// test driver. They are gated behind the "fyne" build tag:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"studyjournal/internal/export"
	"studyjournal/internal/scrapbook"
)

func newTestCanvas(t *testing.T) (*scrapbook.Session, *ScrapbookCanvas) {
	t.Helper()
	test.NewTempApp(t)
	s := scrapbook.NewSession(scrapbook.WithIDs(&scrapbook.SeqSource{Prefix: "el"}))
	return s, NewScrapbookCanvas(s, export.Options{})
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestScrapbookCanvas_MinSizeIsCanvas(t *testing.T) {
	_, cv := newTestCanvas(t)
	if got := cv.MinSize(); got.Width != scrapbook.DefaultCanvasWidth || got.Height != scrapbook.DefaultCanvasHeight {
		t.Fatalf("MinSize = %v", got)
	}
}

func TestScrapbookCanvas_DragMovesElement(t *testing.T) {
	s, cv := newTestCanvas(t)
	e := s.AddText()
	s.Update(e.ID, scrapbook.Patch{X: scrapbook.Ptr[float32](100), Y: scrapbook.Ptr[float32](100)})

	changes := 0
	cv.OnChange = func() { changes++ }

	cv.MouseDown(mouse(105, 105))
	cv.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(155, 125)}})
	cv.DragEnd()
	cv.MouseUp(mouse(155, 125))

	got, _ := s.Element(e.ID)
	if got.X != 150 || got.Y != 120 {
		t.Fatalf("element at (%v,%v), want (150,120)", got.X, got.Y)
	}
	if s.SelectedID() != e.ID {
		t.Fatalf("dragged element not selected")
	}
	if s.DragState().Dragging {
		t.Fatalf("drag still active after release")
	}
	if changes == 0 {
		t.Fatalf("OnChange never called")
	}
}

func TestScrapbookCanvas_SelectionRing(t *testing.T) {
	s, cv := newTestCanvas(t)
	e := s.AddText()
	r, ok := test.WidgetRenderer(cv).(*scrapbookCanvasRenderer)
	if !ok {
		t.Fatalf("unexpected renderer %T", test.WidgetRenderer(cv))
	}
	r.Refresh()
	if r.ring.Visible() {
		t.Fatalf("ring visible without selection")
	}
	s.Select(e.ID)
	r.Refresh()
	if !r.ring.Visible() || !r.handle.Visible() {
		t.Fatalf("selection chrome hidden")
	}
	if r.image.Image == nil {
		t.Fatalf("scene not rasterised")
	}
}

func TestScrapbookCanvas_GlyphsOverlaid(t *testing.T) {
	s, cv := newTestCanvas(t)
	s.AddSticker("🌍")
	r := test.WidgetRenderer(cv).(*scrapbookCanvasRenderer)
	r.Refresh()
	if len(r.glyphs) != 1 {
		t.Fatalf("glyph overlays = %d, want 1", len(r.glyphs))
	}
}

func TestDoubleTapOpensTextEditor(t *testing.T) {
	s, cv := newTestCanvas(t)
	e := s.AddText()
	s.Update(e.ID, scrapbook.Patch{X: scrapbook.Ptr[float32](10), Y: scrapbook.Ptr[float32](10)})
	var edited string
	cv.OnEditText = func(el scrapbook.Element) { edited = el.ID }
	cv.DoubleTapped(&fyne.PointEvent{Position: fyne.NewPos(15, 15)})
	if edited != e.ID {
		t.Fatalf("double tap edited %q, want %q", edited, e.ID)
	}
}

func TestFileSafe(t *testing.T) {
	cases := map[string]string{
		"My Study Abroad Adventure": "my-study-abroad-adventure",
		"  ":                        "scrapbook",
		"Café/Paris!":               "cafparis",
	}
	for in, want := range cases {
		if got := fileSafe(in); got != want {
			t.Fatalf("fileSafe(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPositiveInt(t *testing.T) {
	if n, err := positiveInt(" 144 "); err != nil || n != 144 {
		t.Fatalf("positiveInt = %d, %v", n, err)
	}
	for _, in := range []string{"", "0", "-3", "abc"} {
		if _, err := positiveInt(in); err == nil {
			t.Fatalf("positiveInt(%q) should fail", in)
		}
	}
}

func TestSettingEntryLockedByEnv(t *testing.T) {
	test.NewTempApp(t)
	t.Setenv("SAJ_EXPORT_DPI", "300")
	e := settingEntry("export.dpi", 300)
	if !e.Disabled() {
		t.Fatalf("entry should be disabled when SAJ_EXPORT_DPI is set")
	}
	if got := hintFor("export.dpi"); got != "set by SAJ_EXPORT_DPI" {
		t.Fatalf("hint = %q", got)
	}
	if free := settingEntry("canvas.width", 800); free.Disabled() {
		t.Fatalf("canvas.width should be editable")
	}
}

func TestCommitEntryCommitsOnFocusLostOnly(t *testing.T) {
	test.NewTempApp(t)
	var commits []string
	e := newCommitEntry("Click to edit text", func(v string) { commits = append(commits, v) })

	e.SetText("Day one in Lisbon")
	if len(commits) != 0 {
		t.Fatalf("typing should not commit, got %v", commits)
	}
	e.FocusLost()
	e.FocusLost()
	if len(commits) != 1 || commits[0] != "Day one in Lisbon" {
		t.Fatalf("commits = %v", commits)
	}
}
