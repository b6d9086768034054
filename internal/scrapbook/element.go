/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scrapbook is the freeform canvas model: elements, their store, the
// drag state machine, the single selection and the per-kind renderer.
package scrapbook

import (
	"fmt"
	"strings"

	"studyjournal/internal/vector"
)

// Kind is fixed when an element is created.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindPhoto
	KindSticker
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPhoto:
		return "photo"
	case KindSticker:
		return "sticker"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return KindText, nil
	case "photo":
		return KindPhoto, nil
	case "sticker":
		return KindSticker, nil
	}
	return 0, fmt.Errorf("unknown element kind %q", s)
}

// Style holds the optional presentation attributes. Nil means unset.
type Style struct {
	FontSize        *float32 `json:"fontSize,omitempty"`
	FontFamily      *string  `json:"fontFamily,omitempty"`
	Color           *string  `json:"color,omitempty"`
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
	Rotation        *float32 `json:"rotation,omitempty"` // degrees
	IsPolaroid      *bool    `json:"isPolaroid,omitempty"`
}

// StylePatch carries the style fields to overwrite; nil fields are left alone.
type StylePatch Style

// Element is one item on the canvas.
type Element struct {
	ID      string
	Kind    Kind
	Content string // text, data URI, or sticker glyph
	X, Y    float32
	Width   float32
	Height  float32
	Style   Style
}

// Patch carries the element fields an update may change. Kind, ID and size
// are not patchable.
type Patch struct {
	Content *string
	X, Y    *float32
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone deep-copies the optional fields.
func (s Style) Clone() Style {
	return Style{
		FontSize:        clonePtr(s.FontSize),
		FontFamily:      clonePtr(s.FontFamily),
		Color:           clonePtr(s.Color),
		BackgroundColor: clonePtr(s.BackgroundColor),
		Rotation:        clonePtr(s.Rotation),
		IsPolaroid:      clonePtr(s.IsPolaroid),
	}
}

// Merge returns s with every non-nil field of p applied.
func (s Style) Merge(p StylePatch) Style {
	out := s.Clone()
	if p.FontSize != nil {
		out.FontSize = clonePtr(p.FontSize)
	}
	if p.FontFamily != nil {
		out.FontFamily = clonePtr(p.FontFamily)
	}
	if p.Color != nil {
		out.Color = clonePtr(p.Color)
	}
	if p.BackgroundColor != nil {
		out.BackgroundColor = clonePtr(p.BackgroundColor)
	}
	if p.Rotation != nil {
		out.Rotation = clonePtr(p.Rotation)
	}
	if p.IsPolaroid != nil {
		out.IsPolaroid = clonePtr(p.IsPolaroid)
	}
	return out
}

func (s Style) FontSizeOr(d float32) float32 {
	if s.FontSize == nil {
		return d
	}
	return *s.FontSize
}

func (s Style) FontFamilyOr(d string) string {
	if s.FontFamily == nil {
		return d
	}
	return *s.FontFamily
}

func (s Style) ColorOr(d string) string {
	if s.Color == nil {
		return d
	}
	return *s.Color
}

func (s Style) BackgroundColorOr(d string) string {
	if s.BackgroundColor == nil {
		return d
	}
	return *s.BackgroundColor
}

// RotationDeg defaults to 0.
func (s Style) RotationDeg() float32 {
	if s.Rotation == nil {
		return 0
	}
	return *s.Rotation
}

func (s Style) Polaroid() bool { return s.IsPolaroid != nil && *s.IsPolaroid }

func (e Element) clone() Element {
	e.Style = e.Style.Clone()
	return e
}

func (e Element) apply(p Patch) Element {
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.X != nil {
		e.X = *p.X
	}
	if p.Y != nil {
		e.Y = *p.Y
	}
	return e
}

// Rect is the unrotated footprint.
func (e Element) Rect() vector.Rect { return vector.R(e.X, e.Y, e.Width, e.Height) }

// Box is the footprint with the element's rotation applied about its centre.
func (e Element) Box() vector.Box {
	return vector.Box{Rect: e.Rect(), Rotation: e.Style.RotationDeg()}
}

// HasImage reports whether the content is an embedded image.
func (e Element) HasImage() bool { return IsDataURI(e.Content) }

// IsDataURI reports whether s is an inline image reference.
func IsDataURI(s string) bool { return strings.HasPrefix(s, "data:") }
