/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package upload

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	applog "studyjournal/internal/log"
)

// Loader reads and checks files concurrently.
type Loader struct {
	// Workers bounds concurrent reads; zero means GOMAXPROCS.
	Workers int
}

// Load reads every source on its own goroutine and calls deliver once per
// valid image. deliver always runs on a single goroutine, so it may mutate
// state without locking; completion order is not guaranteed. Unreadable and
// non-image files are skipped. Load returns when every delivery is done, with
// the context error if ctx was cancelled.
func (l Loader) Load(ctx context.Context, srcs []Source, deliver func(Image)) error {
	log := applog.WithOperation(applog.WithComponent("upload"), "load")
	workers := l.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ready := make(chan Image)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for img := range ready {
			deliver(img)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, src := range srcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, ok := load(log, src)
			if !ok {
				return nil
			}
			select {
			case ready <- img:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	err := g.Wait()
	close(ready)
	<-done
	if err != nil {
		log.Debug("upload interrupted", slog.Any("err", err))
	}
	return err
}

func load(log *slog.Logger, src Source) (Image, bool) {
	if src.Read == nil {
		return Image{}, false
	}
	data, err := src.Read()
	if err != nil {
		log.Debug("skip unreadable file", slog.String("name", src.Name), slog.Any("err", err))
		return Image{}, false
	}
	mimeType, w, h, err := Sniff(data)
	if err != nil {
		log.Debug("skip non-image file", slog.String("name", src.Name), slog.Any("err", err))
		return Image{}, false
	}
	return Image{Name: src.Name, MIME: mimeType, DataURI: DataURI(mimeType, data), Width: w, Height: h}, true
}
