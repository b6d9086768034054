/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gallery

import (
	"context"
	"testing"
	"time"

	"studyjournal/internal/scrapbook"
)

func TestSearchIndexFollowsJournal(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ix, err := OpenSearchIndex(ctx)
	if err != nil {
		t.Fatalf("OpenSearchIndex: %v", err)
	}
	defer ix.Close()

	j := NewJournal(WithIndex(ix), WithIDs(&scrapbook.SeqSource{Prefix: "r"}))
	tapas := j.Add(Record{Title: "Tapas night", Content: "Tried patatas bravas in Sevilla"})
	j.Add(Record{Title: "Museum day", Content: "The Prado was enormous"})

	hits, err := ix.Search(ctx, "sevil", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != tapas.ID {
		t.Fatalf("unexpected hits: %+v", hits)
	}

	d := EditDraft(tapas)
	d.Content = "Tried churros in Madrid"
	if _, ok := j.SaveDraft(d); !ok {
		t.Fatalf("update failed")
	}
	if hits, _ := ix.Search(ctx, "sevilla", 10); len(hits) != 0 {
		t.Fatalf("stale content still indexed: %+v", hits)
	}
	if hits, _ := ix.Search(ctx, "churros", 10); len(hits) != 1 {
		t.Fatalf("updated content not indexed: %+v", hits)
	}

	j.Delete(tapas.ID, nil)
	if hits, _ := ix.Search(ctx, "tapas", 10); len(hits) != 0 {
		t.Fatalf("deleted record still indexed: %+v", hits)
	}
}

func TestSearchBlankAndHostileInput(t *testing.T) {
	ctx := context.Background()
	ix, err := OpenSearchIndex(ctx)
	if err != nil {
		t.Fatalf("OpenSearchIndex: %v", err)
	}
	defer ix.Close()
	if err := ix.Upsert(ctx, Record{ID: "a", Title: "Alps", Content: "snow AND ice"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if hits, err := ix.Search(ctx, "   ", 10); err != nil || hits != nil {
		t.Fatalf("blank search = %v, %v", hits, err)
	}
	if _, err := ix.Search(ctx, `"unbalanced OR (`, 10); err != nil {
		t.Fatalf("syntax characters should be neutralised: %v", err)
	}
	if err := ix.Upsert(ctx, Record{}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestFTSQuery(t *testing.T) {
	if got := ftsQuery(`rome "pasta`); got != `"rome"* "pasta"*` {
		t.Fatalf("ftsQuery = %q", got)
	}
}
