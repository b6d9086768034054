/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

import "slices"

// Store is the ordered element collection. Later elements render on top.
// Store is not safe for concurrent use; the owning Session serialises access.
type Store struct {
	elems []Element
}

func NewStore() *Store { return &Store{} }

// Add appends e.
func (s *Store) Add(e Element) { s.elems = append(s.elems, e.clone()) }

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.elems, func(e Element) bool { return e.ID == id })
}

// Update merges p into the element; an unknown id is a no-op.
func (s *Store) Update(id string, p Patch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.elems[i] = s.elems[i].apply(p)
	return true
}

// UpdateStyle merges p into the element style; an unknown id is a no-op.
func (s *Store) UpdateStyle(id string, p StylePatch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.elems[i].Style = s.elems[i].Style.Merge(p)
	return true
}

// Remove deletes the element; an unknown id is a no-op.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.elems = slices.Delete(s.elems, i, i+1)
	return true
}

func (s *Store) Get(id string) (Element, bool) {
	i := s.index(id)
	if i < 0 {
		return Element{}, false
	}
	return s.elems[i].clone(), true
}

// List returns a copy in insertion order.
func (s *Store) List() []Element {
	out := make([]Element, len(s.elems))
	for i, e := range s.elems {
		out[i] = e.clone()
	}
	return out
}

func (s *Store) Len() int { return len(s.elems) }
