/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scrapbook

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource hands out element ids. Ids must be unique for the session even when
// many elements are created in the same clock tick.
type IDSource interface {
	NewID() string
}

// UUIDSource issues UUIDv7 ids: a millisecond timestamp plus random bits,
// monotonic within one process.
type UUIDSource struct{}

func (UUIDSource) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SeqSource issues prefix-1, prefix-2, ... and is handy in tests and demos.
type SeqSource struct {
	Prefix string
	n      atomic.Uint64
}

func (s *SeqSource) NewID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
