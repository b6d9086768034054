/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gallery

import "fmt"

type LayoutKind uint8

const (
	LayoutNone LayoutKind = iota
	LayoutSingle
	LayoutTwoColumn
	LayoutTwoColumnOverflow
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutSingle:
		return "single"
	case LayoutTwoColumn:
		return "two-column"
	case LayoutTwoColumnOverflow:
		return "two-column+overflow"
	}
	return "none"
}

// Cell is one image slot of a card. Badge is drawn over the image when set.
type Cell struct {
	Photo string
	Badge string
}

// PhotoLayout is the image block of a gallery card.
type PhotoLayout struct {
	Kind    LayoutKind
	Columns int
	Cells   []Cell
}

// LayoutFor picks the image block for a card from its photos. It depends only
// on the count and order of photos.
func LayoutFor(photos []string) PhotoLayout {
	switch n := len(photos); {
	case n == 0:
		return PhotoLayout{Kind: LayoutNone}
	case n == 1:
		return PhotoLayout{Kind: LayoutSingle, Columns: 1, Cells: []Cell{{Photo: photos[0]}}}
	case n == 2:
		return PhotoLayout{Kind: LayoutTwoColumn, Columns: 2, Cells: []Cell{{Photo: photos[0]}, {Photo: photos[1]}}}
	default:
		return PhotoLayout{
			Kind:    LayoutTwoColumnOverflow,
			Columns: 2,
			Cells:   []Cell{{Photo: photos[0]}, {Photo: photos[1], Badge: OverflowBadge(n)}},
		}
	}
}

// OverflowBadge is the "+N more" text for a card with total photos.
func OverflowBadge(total int) string { return fmt.Sprintf("+%d more", total-2) }
