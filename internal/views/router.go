/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package views routes between the gallery, the journal editors and the
// scrapbook editor, and raises the toasts that confirm saves and deletes.
// It holds no widgets; the desktop UI renders whatever view is active.
package views

import (
	"log/slog"
	"sync"

	"studyjournal/internal/gallery"
	applog "studyjournal/internal/log"
	"studyjournal/internal/scrapbook"
)

type View string

const (
	Gallery   View = "gallery"
	Editor    View = "editor"
	EditEntry View = "edit-entry"
	Scrapbook View = "scrapbook"
)

// AppTitle is shown in the header.
const AppTitle = "Study Abroad Journal"

// Toast is a short-lived notification.
type Toast struct {
	Title       string
	Description string
}

var (
	ToastSaved          = Toast{Title: "Journal Entry Saved! ✨", Description: "Your memory has been captured and added to your journal."}
	ToastUpdated        = Toast{Title: "Entry Updated! ✨", Description: "Your journal entry has been successfully updated."}
	ToastDeleted        = Toast{Title: "Entry Deleted", Description: "Your journal entry has been removed."}
	ToastScrapbookSaved = Toast{Title: "Scrapbook Saved! ✨", Description: "Your scrapbook has been added to your journal."}
)

// Hint is the welcome message for a first-time user.
type Hint struct {
	Title string
	Body  string
}

var Welcome = Hint{
	Title: "Welcome to your journal! 🎒",
	Body:  `Click "New Entry" to start documenting your study abroad adventure!`,
}

// AskFunc shows prompt and reports the answer through answer, possibly later.
type AskFunc func(prompt string, answer func(bool))

// Router owns the active view and the editor state behind it.
type Router struct {
	mu       sync.Mutex
	active   View
	journal  *gallery.Journal
	scrap    *scrapbook.Session
	draft    *gallery.Draft
	editing  *gallery.Draft
	onView   []func(View)
	onToast  []func(Toast)
	log      *slog.Logger
	newScrap func() *scrapbook.Session
}

type Option func(*Router)

// WithScrapbookFactory sets how a fresh scrapbook session is made after a save.
func WithScrapbookFactory(f func() *scrapbook.Session) Option {
	return func(r *Router) { r.newScrap = f }
}

func NewRouter(j *gallery.Journal, s *scrapbook.Session, opts ...Option) *Router {
	r := &Router{
		active:  Gallery,
		journal: j,
		scrap:   s,
		draft:   gallery.NewDraft(),
		log:     applog.WithComponent("views"),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnViewChange registers a callback for view switches.
func (r *Router) OnViewChange(f func(View)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onView = append(r.onView, f)
}

// OnToast registers a callback for toasts.
func (r *Router) OnToast(f func(Toast)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onToast = append(r.onToast, f)
}

func (r *Router) Active() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Router) Journal() *gallery.Journal { return r.journal }

// Scrapbook returns the session being edited in the scrapbook view.
func (r *Router) Scrapbook() *scrapbook.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scrap
}

// Draft is the new-entry editor state. It survives view switches.
func (r *Router) Draft() *gallery.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft
}

// Editing is the draft of the entry being edited, nil outside edit-entry.
func (r *Router) Editing() *gallery.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.editing
}

// Show switches view. Edit-entry is only reachable through EditEntry.
func (r *Router) Show(v View) bool {
	r.mu.Lock()
	switch v {
	case Gallery, Editor, Scrapbook:
	case EditEntry:
		if r.editing == nil {
			r.mu.Unlock()
			return false
		}
	default:
		r.mu.Unlock()
		return false
	}
	if v != EditEntry {
		r.editing = nil
	}
	r.mu.Unlock()
	r.switchTo(v)
	return true
}

// NewEntry opens the journal editor.
func (r *Router) NewEntry() { r.Show(Editor) }

// EditEntry opens a saved record in the entry editor.
func (r *Router) EditEntry(id string) bool {
	rec, ok := r.journal.Get(id)
	if !ok {
		return false
	}
	r.mu.Lock()
	r.editing = gallery.EditDraft(rec)
	r.mu.Unlock()
	r.switchTo(EditEntry)
	return true
}

// Close leaves the entry editor without saving.
func (r *Router) Close() { r.Show(Gallery) }

// SaveEntry saves the new-entry draft and returns to the gallery. An empty
// draft stays in the editor.
func (r *Router) SaveEntry() (gallery.Record, bool) {
	rec, ok := r.journal.SaveDraft(r.Draft())
	if !ok {
		return gallery.Record{}, false
	}
	r.switchTo(Gallery)
	r.toast(ToastSaved)
	return rec, true
}

// UpdateEntry saves the entry being edited.
func (r *Router) UpdateEntry() (gallery.Record, bool) {
	d := r.Editing()
	if d == nil {
		return gallery.Record{}, false
	}
	rec, ok := r.journal.SaveDraft(d)
	if !ok {
		return gallery.Record{}, false
	}
	r.mu.Lock()
	r.editing = nil
	r.mu.Unlock()
	r.switchTo(Gallery)
	r.toast(ToastUpdated)
	return rec, true
}

// DeleteEntry deletes the entry being edited once c confirms.
func (r *Router) DeleteEntry(c gallery.Confirmer) bool {
	d := r.Editing()
	if d == nil {
		return false
	}
	if !r.journal.Delete(d.EditingID(), c) {
		return false
	}
	r.mu.Lock()
	r.editing = nil
	r.mu.Unlock()
	r.switchTo(Gallery)
	r.toast(ToastDeleted)
	return true
}

// RequestDelete is DeleteEntry for dialogs that answer asynchronously.
func (r *Router) RequestDelete(ask AskFunc) {
	ask(gallery.DeletePrompt, func(ok bool) {
		if ok {
			r.DeleteEntry(nil)
		}
	})
}

// SaveScrapbook stores the current scrapbook in the journal and returns to
// the gallery with a fresh canvas when a factory is configured.
func (r *Router) SaveScrapbook() gallery.Record {
	s := r.Scrapbook()
	rec := r.journal.Add(gallery.FromSnapshot(s.Snapshot()))
	if r.newScrap != nil {
		r.mu.Lock()
		r.scrap = r.newScrap()
		r.mu.Unlock()
	}
	r.switchTo(Gallery)
	r.toast(ToastScrapbookSaved)
	return rec
}

// WelcomeHint is shown on an empty gallery.
func (r *Router) WelcomeHint() (Hint, bool) {
	if r.Active() == Gallery && r.journal.Len() == 0 {
		return Welcome, true
	}
	return Hint{}, false
}

// CrashSummary combines the journal and scrapbook summaries.
func (r *Router) CrashSummary() string {
	return "view=" + string(r.Active()) + " " + r.journal.CrashSummary() + " " + r.Scrapbook().CrashSummary()
}

func (r *Router) switchTo(v View) {
	r.mu.Lock()
	prev := r.active
	r.active = v
	cbs := append([]func(View){}, r.onView...)
	r.mu.Unlock()
	if prev != v {
		r.log.Debug("view changed", slog.String("from", string(prev)), slog.String("to", string(v)))
	}
	for _, f := range cbs {
		f(v)
	}
}

func (r *Router) toast(t Toast) {
	r.mu.Lock()
	cbs := append([]func(Toast){}, r.onToast...)
	r.mu.Unlock()
	for _, f := range cbs {
		f(t)
	}
}
