/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
)

func newTestJournal() *Journal {
	clock := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return NewJournal(
		WithIDs(&scrapbook.SeqSource{Prefix: "rec"}),
		WithClock(func() time.Time { clock = clock.Add(time.Minute); return clock }),
	)
}

func TestAddPrependsAndDefaultsTitle(t *testing.T) {
	j := newTestJournal()
	a := j.Add(Record{Title: "   ", Content: "first"})
	b := j.Add(Record{Title: "  Kept verbatim ", Content: "second"})

	assert.Equal(t, DefaultTitle, a.Title)
	assert.Equal(t, "  Kept verbatim ", b.Title)
	assert.Equal(t, KindJournal, a.Kind)

	list := j.List()
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "newest first")
	assert.Equal(t, a.ID, list[1].ID)
	assert.True(t, list[0].Date.After(list[1].Date))
}

func TestUpdateKeepsIDAndDate(t *testing.T) {
	j := newTestJournal()
	r := j.Add(Record{Title: "Paris", Content: "x", Background: palette.Ocean})
	d := EditDraft(r)
	d.Title = ""
	d.Content = "updated"
	got, ok := j.SaveDraft(d)
	require.True(t, ok)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, r.Date, got.Date)
	assert.Equal(t, DefaultTitle, got.Title)
	assert.Equal(t, "updated", got.Content)
	assert.Equal(t, palette.Ocean, got.Background)
	assert.Equal(t, 1, j.Len())

	_, ok = j.Update(Record{ID: "missing"})
	assert.False(t, ok)
}

func TestDeleteAsksFirst(t *testing.T) {
	j := newTestJournal()
	r := j.Add(Record{Title: "Berlin"})

	var asked string
	no := ConfirmFunc(func(p string) bool { asked = p; return false })
	assert.False(t, j.Delete(r.ID, no))
	assert.Equal(t, DeletePrompt, asked)
	assert.Equal(t, 1, j.Len())

	yes := ConfirmFunc(func(string) bool { return true })
	assert.True(t, j.Delete(r.ID, yes))
	assert.Equal(t, 0, j.Len())
	assert.False(t, j.Delete(r.ID, yes))
}

func TestSaveDraftNewEntry(t *testing.T) {
	j := newTestJournal()
	d := NewDraft()
	_, ok := j.SaveDraft(d)
	assert.False(t, ok, "empty drafts are not saved")

	d.Content = "Took the night train to Vienna"
	d.Background = palette.Sunset
	d.AddPhotos(photos(3)...)
	r, ok := j.SaveDraft(d)
	require.True(t, ok)
	assert.Equal(t, DefaultTitle, r.Title)
	assert.Len(t, r.Photos, 3)
	assert.Equal(t, palette.Sunset, r.Background)

	assert.Equal(t, *NewDraft(), *d, "draft is reset after saving")
}

func TestDraftPhotosAndPreview(t *testing.T) {
	d := NewDraft()
	assert.False(t, d.CanSave())
	d.AddPhotos(photos(6)...)
	assert.True(t, d.CanSave())

	p := d.Preview()
	assert.Equal(t, PlaceholderTitle, p.Title)
	assert.Equal(t, PlaceholderContent, p.Content)
	assert.Len(t, p.Photos, 4)

	require.True(t, d.RemovePhoto(0))
	assert.False(t, d.RemovePhoto(99))
	assert.Len(t, d.Photos, 5)
	assert.Equal(t, photos(6)[1], d.Photos[0])

	d.Title = "Lisbon"
	assert.Equal(t, "Lisbon", d.Preview().Title)
}

func TestEditDraftDoesNotAliasRecord(t *testing.T) {
	j := newTestJournal()
	r := j.Add(Record{Title: "t", Photos: photos(2)})
	d := EditDraft(r)
	d.RemovePhoto(0)
	got, _ := j.Get(r.ID)
	assert.Len(t, got.Photos, 2)
}

func TestFromSnapshot(t *testing.T) {
	s := scrapbook.NewSession(scrapbook.WithIDs(&scrapbook.SeqSource{Prefix: "el"}))
	tx := s.AddText()
	s.CommitText(tx.ID, "Harbour at dusk")
	s.AddPhoto("data:image/png;base64,A")
	s.AddSticker("🌅")
	s.AddPhoto("data:image/png;base64,B")
	s.SetTitle("")

	j := newTestJournal()
	r := j.Add(FromSnapshot(s.Snapshot()))
	assert.Equal(t, KindScrapbook, r.Kind)
	assert.Equal(t, DefaultTitle, r.Title)
	assert.Equal(t, []string{"data:image/png;base64,A", "data:image/png;base64,B"}, r.Photos)
	assert.Equal(t, "Harbour at dusk", r.Content)
	assert.Len(t, r.Elements, 4)
	assert.Equal(t, "+0 more", OverflowBadge(2))
}
