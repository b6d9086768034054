/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package palette defines the fixed set of page backgrounds offered by the
// journal editor and the scrapbook canvas.
package palette

import (
	"strings"

	"studyjournal/internal/vector"
)

// ID identifies a background. Records store the ID, renderers resolve it.
type ID string

const (
	SkyBlue  ID = "sky-blue"
	Sunset   ID = "sunset"
	Forest   ID = "forest"
	WarmSand ID = "warm-sand"
	Ocean    ID = "ocean"
	Lavender ID = "lavender"
)

// Default is preselected in new entries and new scrapbooks.
const Default = SkyBlue

// Background is a diagonal two-stop gradient, top-left to bottom-right.
type Background struct {
	ID   ID
	Name string
	From vector.Color
	To   vector.Color
}

var builtin = map[ID]Background{
	SkyBlue:  {ID: SkyBlue, Name: "Sky Blue", From: vector.Color{R: 0xef, G: 0xf6, B: 0xff, A: 255}, To: vector.Color{R: 0xfa, G: 0xf5, B: 0xff, A: 255}},
	Sunset:   {ID: Sunset, Name: "Sunset", From: vector.Color{R: 0xff, G: 0xf7, B: 0xed, A: 255}, To: vector.Color{R: 0xfd, G: 0xf2, B: 0xf8, A: 255}},
	Forest:   {ID: Forest, Name: "Forest", From: vector.Color{R: 0xf0, G: 0xfd, B: 0xf4, A: 255}, To: vector.Color{R: 0xec, G: 0xfd, B: 0xf5, A: 255}},
	WarmSand: {ID: WarmSand, Name: "Warm Sand", From: vector.Color{R: 0xfe, G: 0xfc, B: 0xe8, A: 255}, To: vector.Color{R: 0xff, G: 0xf7, B: 0xed, A: 255}},
	Ocean:    {ID: Ocean, Name: "Ocean", From: vector.Color{R: 0xec, G: 0xfe, B: 0xff, A: 255}, To: vector.Color{R: 0xef, G: 0xf6, B: 0xff, A: 255}},
	Lavender: {ID: Lavender, Name: "Lavender", From: vector.Color{R: 0xfa, G: 0xf5, B: 0xff, A: 255}, To: vector.Color{R: 0xfd, G: 0xf2, B: 0xf8, A: 255}},
}

// List returns the backgrounds in picker order.
func List() []Background {
	ids := IDs()
	out := make([]Background, 0, len(ids))
	for _, id := range ids {
		out = append(out, builtin[id])
	}
	return out
}

// IDs returns the background ids in picker order.
func IDs() []ID { return []ID{SkyBlue, Sunset, Forest, WarmSand, Ocean, Lavender} }

// Get returns a background by id. The second return value is false if the id is unknown.
func Get(id ID) (Background, bool) { b, ok := builtin[id]; return b, ok }

// Resolve never fails: unknown ids fall back to Default.
func Resolve(id ID) Background {
	if b, ok := builtin[id]; ok {
		return b
	}
	return builtin[Default]
}

// Lookup accepts an id or a display name, case-insensitively.
func Lookup(s string) (Background, bool) {
	s = strings.TrimSpace(s)
	if b, ok := builtin[ID(strings.ToLower(s))]; ok {
		return b, true
	}
	for _, b := range builtin {
		if strings.EqualFold(b.Name, s) {
			return b, true
		}
	}
	return Background{}, false
}

// At samples the gradient at normalised diagonal position t.
func (b Background) At(t float32) vector.Color {
	t = min(max(t, 0), 1)
	return vector.Lerp(b.From, b.To, t)
}
