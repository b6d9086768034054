/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gallery

import (
	"strings"

	"studyjournal/internal/palette"
)

// Editor preview placeholders.
const (
	PlaceholderTitle   = "Your Title Here"
	PlaceholderContent = "Your story will appear here..."
	previewPhotos      = 4
)

// Draft is the state of the journal editor before saving.
type Draft struct {
	Title      string
	Content    string
	Photos     []string
	Background palette.ID

	editing *Record
}

func NewDraft() *Draft { return &Draft{Background: palette.Default} }

// EditDraft opens an existing record; saving keeps its id and date.
func EditDraft(r Record) *Draft {
	r = r.clone()
	return &Draft{
		Title:      r.Title,
		Content:    r.Content,
		Photos:     r.Photos,
		Background: r.Background,
		editing:    &r,
	}
}

// EditingID is empty for a new entry.
func (d *Draft) EditingID() string {
	if d.editing == nil {
		return ""
	}
	return d.editing.ID
}

// CanSave needs a non-blank title, non-blank content or a photo.
func (d *Draft) CanSave() bool {
	return strings.TrimSpace(d.Title) != "" || strings.TrimSpace(d.Content) != "" || len(d.Photos) > 0
}

func (d *Draft) AddPhotos(uris ...string) { d.Photos = append(d.Photos, uris...) }

func (d *Draft) RemovePhoto(i int) bool {
	if i < 0 || i >= len(d.Photos) {
		return false
	}
	d.Photos = append(d.Photos[:i:i], d.Photos[i+1:]...)
	return true
}

// Clear resets a new-entry draft to its initial state.
func (d *Draft) Clear() {
	*d = Draft{Background: palette.Default}
}

// Record is the payload a save hands to the journal.
func (d *Draft) Record() Record {
	r := Record{Kind: KindJournal}
	if d.editing != nil {
		r = d.editing.clone()
	}
	r.Title = TitleOrDefault(d.Title)
	r.Content = d.Content
	r.Photos = append([]string(nil), d.Photos...)
	r.Background = d.Background
	return r
}

// Preview is the live preview card of the editor.
type Preview struct {
	Title      string
	Content    string
	Photos     []string
	Background palette.Background
}

func (d *Draft) Preview() Preview {
	p := Preview{
		Title:      d.Title,
		Content:    d.Content,
		Background: palette.Resolve(d.Background),
	}
	if p.Title == "" {
		p.Title = PlaceholderTitle
	}
	if p.Content == "" {
		p.Content = PlaceholderContent
	}
	n := min(len(d.Photos), previewPhotos)
	p.Photos = append([]string(nil), d.Photos[:n]...)
	return p
}
