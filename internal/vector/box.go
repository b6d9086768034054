/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Box is a rectangle rotated about its own centre, the footprint of one canvas
// element. Rotation never changes the stored rectangle.
type Box struct {
	Rect     Rect
	Rotation float32 // degrees
}

// Transform maps box-local (unrotated) coordinates to canvas coordinates.
func (b Box) Transform() Affine2D {
	if b.Rotation == 0 {
		return Identity
	}
	return RotateAbout(b.Rect.Center(), b.Rotation)
}

// Bounds is the axis-aligned bounding box of the rotated rectangle.
func (b Box) Bounds() Rect {
	xf := b.Transform()
	minX, minY := float32(+1e9), float32(+1e9)
	maxX, maxY := float32(-1e9), float32(-1e9)
	for _, c := range b.Rect.Corners() {
		p := xf.Apply(c)
		minX, minY = min(minX, p.X), min(minY, p.Y)
		maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Hit reports whether p lies inside the rotated rectangle.
func (b Box) Hit(p Pt) bool {
	q := b.Transform().Invert().Apply(p)
	return b.Rect.Contains(q)
}

// TopmostHit returns the index of the last box containing p, or -1.
// Later boxes are drawn on top.
func TopmostHit(boxes []Box, p Pt) int {
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].Hit(p) {
			return i
		}
	}
	return -1
}
