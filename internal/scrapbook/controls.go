/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

// Control names an editing control offered for the selected element.
type Control uint8

const (
	ControlFont Control = iota + 1
	ControlSize
	ControlColor
	ControlPolaroid
	ControlRotation
)

// FontOptions lists the families offered by the font picker.
var FontOptions = []string{
	"Arial", "Georgia", "Times New Roman", "Helvetica", "Verdana",
	"Comic Sans MS", "Impact", "Trebuchet MS", "Courier New", "Brush Script MT",
}

// SizeOptions lists the sizes offered by the size picker, in px.
var SizeOptions = []float32{12, 16, 20, 24, 28, 32, 40, 48, 56, 72}

// ControlsFor returns the controls shown for e. Stickers get none.
func ControlsFor(e Element) []Control {
	switch e.Kind {
	case KindText:
		return []Control{ControlFont, ControlSize, ControlColor, ControlRotation}
	case KindPhoto:
		return []Control{ControlPolaroid, ControlRotation}
	case KindSticker:
		return nil
	}
	return nil
}

// BuiltinStickers are the glyph stickers in tray order.
var BuiltinStickers = []string{"🌍", "✈️", "📸", "🎒", "🗺️", "🏛️", "🍕", "🎭", "🌅", "🚂", "🏖️", "⭐"}
