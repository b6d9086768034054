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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photos(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("data:image/png;base64,P%d", i)
	}
	return out
}

func TestLayoutFor(t *testing.T) {
	l0 := LayoutFor(nil)
	assert.Equal(t, LayoutNone, l0.Kind)
	assert.Empty(t, l0.Cells)

	l1 := LayoutFor(photos(1))
	assert.Equal(t, LayoutSingle, l1.Kind)
	require.Len(t, l1.Cells, 1)
	assert.Equal(t, 1, l1.Columns)

	l2 := LayoutFor(photos(2))
	assert.Equal(t, LayoutTwoColumn, l2.Kind)
	require.Len(t, l2.Cells, 2)
	assert.Empty(t, l2.Cells[0].Badge)
	assert.Empty(t, l2.Cells[1].Badge)

	p5 := photos(5)
	l5 := LayoutFor(p5)
	assert.Equal(t, LayoutTwoColumnOverflow, l5.Kind)
	require.Len(t, l5.Cells, 2)
	assert.Equal(t, p5[0], l5.Cells[0].Photo)
	assert.Equal(t, p5[1], l5.Cells[1].Photo)
	assert.Empty(t, l5.Cells[0].Badge)
	assert.Equal(t, "+3 more", l5.Cells[1].Badge)

	assert.Equal(t, "+1 more", LayoutFor(photos(3)).Cells[1].Badge)
}

func TestLayoutForIsDeterministic(t *testing.T) {
	p := photos(7)
	assert.Equal(t, LayoutFor(p), LayoutFor(p))
}

func TestCardFor(t *testing.T) {
	r := Record{ID: "r1", Kind: KindJournal, Title: "Rome", Content: "a\nb\nc\nd", Photos: photos(2)}
	c := CardFor(r)
	assert.Equal(t, "Rome", c.Title)
	assert.Equal(t, "2 photos", c.PhotoLabel)
	assert.Equal(t, "a\nb\nc…", c.Excerpt)
	assert.Equal(t, LayoutTwoColumn, c.Layout.Kind)
	assert.Equal(t, "", c.Date)

	assert.Equal(t, "1 photo", PhotoLabel(1))
	assert.Equal(t, "", PhotoLabel(0))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "0 memories captured", Summary(0))
	assert.Equal(t, "1 memory captured", Summary(1))
	assert.Equal(t, "4 memories captured", Summary(4))
}

func TestExcerptShortContentUnchanged(t *testing.T) {
	assert.Equal(t, "Gelato by the Trevi fountain.", Excerpt("  Gelato by the Trevi fountain.  "))
	long := ""
	for i := 0; i < 50; i++ {
		long += "abcde"
	}
	ex := Excerpt(long)
	assert.Equal(t, []rune(ex)[len([]rune(ex))-1], '…')
	assert.Len(t, []rune(ex), excerptMaxRunes+1)
}
