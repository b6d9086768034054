/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package palette

import "testing"

func TestListOrderAndDefault(t *testing.T) {
	l := List()
	if len(l) != 6 {
		t.Fatalf("expected 6 backgrounds, got %d", len(l))
	}
	if l[0].ID != Default || l[0].Name != "Sky Blue" {
		t.Fatalf("first background should be the default Sky Blue, got %+v", l[0])
	}
	seen := map[ID]bool{}
	for _, b := range l {
		if seen[b.ID] {
			t.Fatalf("duplicate id %s", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	if got := Resolve("neon"); got.ID != Default {
		t.Fatalf("Resolve(unknown) = %s, want %s", got.ID, Default)
	}
	if got := Resolve(Ocean); got.Name != "Ocean" {
		t.Fatalf("Resolve(ocean) = %+v", got)
	}
}

func TestLookupByNameOrID(t *testing.T) {
	if b, ok := Lookup("warm sand"); !ok || b.ID != WarmSand {
		t.Fatalf("Lookup by name failed: %+v %v", b, ok)
	}
	if b, ok := Lookup("LAVENDER"); !ok || b.ID != Lavender {
		t.Fatalf("Lookup by id failed: %+v %v", b, ok)
	}
	if _, ok := Lookup("plaid"); ok {
		t.Fatalf("unexpected match")
	}
}

func TestGradientEndpoints(t *testing.T) {
	b := Resolve(Sunset)
	if b.At(0) != b.From || b.At(1) != b.To || b.At(-3) != b.From || b.At(9) != b.To {
		t.Fatalf("gradient endpoints not clamped")
	}
}
