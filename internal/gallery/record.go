/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gallery holds the saved journal entries and scrapbooks of a session
// and everything the gallery view derives from them: cards, the photo layout
// of each card, editor drafts and a full-text search index.
package gallery

import (
	"strings"
	"time"

	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
)

// DefaultTitle replaces a blank title at save time.
const DefaultTitle = "Untitled Entry"

type Kind uint8

const (
	KindJournal Kind = iota + 1
	KindScrapbook
)

func (k Kind) String() string {
	if k == KindScrapbook {
		return "scrapbook"
	}
	return "journal"
}

// Record is one gallery item. Date is set once when the record is created.
type Record struct {
	ID         string
	Kind       Kind
	Title      string
	Content    string
	Photos     []string // data URIs in display order
	Date       time.Time
	Background palette.ID
	Elements   []scrapbook.Element // scrapbooks only
}

// TitleOrDefault keeps non-blank titles verbatim.
func TitleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return DefaultTitle
	}
	return title
}

func (r Record) clone() Record {
	r.Photos = append([]string(nil), r.Photos...)
	if r.Elements != nil {
		elems := make([]scrapbook.Element, len(r.Elements))
		for i, e := range r.Elements {
			e.Style = e.Style.Clone()
			elems[i] = e
		}
		r.Elements = elems
	}
	return r
}

// FromSnapshot turns a saved scrapbook into a record. Photos come from photo
// elements in canvas order and Content from text elements, one per line.
func FromSnapshot(snap scrapbook.Snapshot) Record {
	r := Record{
		Kind:       KindScrapbook,
		Title:      TitleOrDefault(snap.Title),
		Background: snap.Background,
		Elements:   snap.Elements,
	}
	var texts []string
	for _, e := range snap.Elements {
		switch e.Kind {
		case scrapbook.KindPhoto:
			r.Photos = append(r.Photos, e.Content)
		case scrapbook.KindText:
			if s := strings.TrimSpace(e.Content); s != "" {
				texts = append(texts, s)
			}
		case scrapbook.KindSticker:
		}
	}
	r.Content = strings.Join(texts, "\n")
	return r.clone()
}
