/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gallery

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	applog "studyjournal/internal/log"
	"studyjournal/internal/scrapbook"
)

// DeletePrompt is shown before a saved entry is removed.
const DeletePrompt = "Are you sure you want to delete this entry? This action cannot be undone."

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Indexer is kept in step with the journal. SearchIndex implements it.
type Indexer interface {
	Upsert(ctx context.Context, r Record) error
	Remove(ctx context.Context, id string) error
}

// Journal is the in-memory list of saved records, newest first.
type Journal struct {
	mu      sync.RWMutex
	records []Record
	ids     scrapbook.IDSource
	now     func() time.Time
	index   Indexer
	log     *slog.Logger
}

type JournalOption func(*Journal)

func WithIDs(src scrapbook.IDSource) JournalOption { return func(j *Journal) { j.ids = src } }
func WithClock(now func() time.Time) JournalOption { return func(j *Journal) { j.now = now } }
func WithIndex(ix Indexer) JournalOption           { return func(j *Journal) { j.index = ix } }

func NewJournal(opts ...JournalOption) *Journal {
	j := &Journal{
		ids: scrapbook.UUIDSource{},
		now: time.Now,
		log: applog.WithComponent("gallery"),
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

// Add stores a new record at the front. ID and Date are assigned here and the
// title defaults when blank.
func (j *Journal) Add(r Record) Record {
	r = r.clone()
	r.ID = j.ids.NewID()
	r.Date = j.now()
	r.Title = TitleOrDefault(r.Title)
	if r.Kind == 0 {
		r.Kind = KindJournal
	}
	j.mu.Lock()
	j.records = slices.Insert(j.records, 0, r)
	j.mu.Unlock()
	j.reindex(r)
	j.log.Info("entry saved", slog.String("id", r.ID), slog.String("kind", r.Kind.String()), slog.Int("photos", len(r.Photos)))
	return r.clone()
}

// Update replaces the record with the same id, keeping its id, kind and date.
// An unknown id is a no-op.
func (j *Journal) Update(r Record) (Record, bool) {
	j.mu.Lock()
	i := j.indexOf(r.ID)
	if i < 0 {
		j.mu.Unlock()
		return Record{}, false
	}
	prev := j.records[i]
	r = r.clone()
	r.Date = prev.Date
	r.Kind = prev.Kind
	r.Title = TitleOrDefault(r.Title)
	j.records[i] = r
	j.mu.Unlock()
	j.reindex(r)
	j.log.Info("entry updated", slog.String("id", r.ID))
	return r.clone(), true
}

// Delete asks c first (a nil c skips the prompt). A declined prompt or an
// unknown id is a no-op.
func (j *Journal) Delete(id string, c Confirmer) bool {
	if _, ok := j.Get(id); !ok {
		return false
	}
	if c != nil && !c.Confirm(DeletePrompt) {
		return false
	}
	j.mu.Lock()
	i := j.indexOf(id)
	if i >= 0 {
		j.records = slices.Delete(j.records, i, i+1)
	}
	j.mu.Unlock()
	if i < 0 {
		return false
	}
	if j.index != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := j.index.Remove(ctx, id); err != nil {
			j.log.Warn("search index remove failed", slog.String("id", id), slog.Any("err", err))
		}
	}
	j.log.Info("entry deleted", slog.String("id", id))
	return true
}

func (j *Journal) Get(id string) (Record, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	i := j.indexOf(id)
	if i < 0 {
		return Record{}, false
	}
	return j.records[i].clone(), true
}

// List returns the records newest first.
func (j *Journal) List() []Record {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]Record, len(j.records))
	for i, r := range j.records {
		out[i] = r.clone()
	}
	return out
}

func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.records)
}

// SaveDraft stores a draft: an update when it was opened from a record,
// otherwise a new entry, after which the draft is cleared. A new draft with
// nothing in it is not saved.
func (j *Journal) SaveDraft(d *Draft) (Record, bool) {
	if id := d.EditingID(); id != "" {
		return j.Update(d.Record())
	}
	if !d.CanSave() {
		return Record{}, false
	}
	r := j.Add(d.Record())
	d.Clear()
	return r, true
}

// CrashSummary describes the journal for crash reports.
func (j *Journal) CrashSummary() string {
	return "journal entries=" + strconv.Itoa(j.Len())
}

func (j *Journal) indexOf(id string) int {
	return slices.IndexFunc(j.records, func(r Record) bool { return r.ID == id })
}

func (j *Journal) reindex(r Record) {
	if j.index == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := j.index.Upsert(ctx, r); err != nil {
		j.log.Warn("search index update failed", slog.String("id", r.ID), slog.Any("err", err))
	}
}
