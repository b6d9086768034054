/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gallery

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"studyjournal/internal/palette"
)

// DateLayout matches the short month/day/year form used on cards.
const DateLayout = "1/2/2006"

const (
	excerptLines    = 3
	excerptMaxRunes = 180
)

// Empty gallery texts.
const (
	EmptyTitle = "Your Journey Starts Here"
	EmptyBody  = "Create your first journal entry to start documenting your amazing study abroad experience!"
)

// Card is everything a gallery tile shows.
type Card struct {
	ID         string
	Kind       Kind
	Title      string
	Date       string
	Layout     PhotoLayout
	Excerpt    string
	PhotoLabel string // empty without photos
	Background palette.Background
}

func CardFor(r Record) Card {
	return Card{
		ID:         r.ID,
		Kind:       r.Kind,
		Title:      r.Title,
		Date:       FormatDate(r.Date),
		Layout:     LayoutFor(r.Photos),
		Excerpt:    Excerpt(r.Content),
		PhotoLabel: PhotoLabel(len(r.Photos)),
		Background: palette.Resolve(r.Background),
	}
}

// Cards builds the tiles in journal order.
func Cards(records []Record) []Card {
	out := make([]Card, 0, len(records))
	for _, r := range records {
		out = append(out, CardFor(r))
	}
	return out
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// PhotoLabel reads "1 photo" or "N photos".
func PhotoLabel(n int) string {
	switch {
	case n <= 0:
		return ""
	case n == 1:
		return "1 photo"
	}
	return fmt.Sprintf("%d photos", n)
}

// Summary is the gallery header count line.
func Summary(n int) string {
	if n == 1 {
		return "1 memory captured"
	}
	return fmt.Sprintf("%d memories captured", n)
}

// Excerpt clamps content to three lines and a rune budget, ending in an
// ellipsis when anything was cut.
func Excerpt(content string) string {
	content = strings.TrimSpace(content)
	lines := strings.Split(content, "\n")
	cut := false
	if len(lines) > excerptLines {
		lines = lines[:excerptLines]
		cut = true
	}
	s := strings.Join(lines, "\n")
	if utf8.RuneCountInString(s) > excerptMaxRunes {
		s = string([]rune(s)[:excerptMaxRunes])
		cut = true
	}
	if cut {
		s = strings.TrimRight(s, " \n") + "…"
	}
	return s
}
