/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"studyjournal/internal/config"
	"studyjournal/internal/export"
	"studyjournal/internal/gallery"
	applog "studyjournal/internal/log"
	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
	"studyjournal/internal/stickerpack"
	"studyjournal/internal/upload"
)

type demoFlags struct {
	out     string
	title   string
	note    string
	pack    string
	journal bool
}

func newDemoCmd(st *cliState) *cobra.Command {
	var f demoFlags
	cmd := &cobra.Command{
		Use:   "demo [photo...]",
		Short: "Build a sample scrapbook from photos and export it",
		Long: "Builds a scrapbook with a caption, a few stickers and the given photos,\n" +
			"then writes it as PNG, SVG and PDF into --out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := runDemo(cmd.Context(), st.cfg, f, args)
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&f.out, "out", "studyjournal-demo", "output directory")
	cmd.Flags().StringVar(&f.title, "title", "My Semester Abroad", "scrapbook title")
	cmd.Flags().StringVar(&f.note, "note", "", "also add a journal entry with this text")
	cmd.Flags().StringVar(&f.pack, "pack", "", "write the photos as a sticker pack to this zip")
	cmd.Flags().BoolVar(&f.journal, "journal", false, "also export the whole journal as PDF")
	return cmd
}

// runDemo returns the files it wrote in order.
func runDemo(ctx context.Context, cfg config.AppConfig, f demoFlags, paths []string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := applog.WithOperation(applog.WithComponent("cli"), "demo")

	s := scrapbook.NewSession(
		scrapbook.WithCanvasSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)),
		scrapbook.WithBackground(palette.ID(cfg.Canvas.Background)),
	)
	s.SetTitle(f.title)
	caption := s.AddText()
	s.CommitText(caption.ID, gallery.TitleOrDefault(f.title))
	for _, glyph := range scrapbook.BuiltinStickers[:3] {
		s.AddSticker(glyph)
	}

	photos, err := loadPhotos(ctx, paths, cfg.Upload.MaxPhotos)
	if err != nil {
		return nil, err
	}
	for i, img := range photos {
		e := s.AddPhoto(img.DataURI)
		if i%2 == 1 {
			s.TogglePolaroid(e.ID)
		}
	}
	s.ClearSelection()
	log.Info("scrapbook built", slog.Int("elements", s.Len()), slog.Int("photos", len(photos)))

	opt := export.Options{
		DPI:          cfg.Export.DPI,
		CanvasWidth:  float32(cfg.Canvas.Width),
		CanvasHeight: float32(cfg.Canvas.Height),
	}
	sc := scrapbook.Render(s)
	var written []string
	for _, out := range []struct {
		name string
		fn   func(scrapbook.Scene, string, export.Options) error
	}{
		{"scrapbook.png", export.ExportScenePNG},
		{"scrapbook.svg", export.ExportSceneSVG},
		{"scrapbook.pdf", export.ExportScenePDF},
	} {
		p := filepath.Join(f.out, out.name)
		if err := out.fn(sc, p, opt); err != nil {
			return written, fmt.Errorf("export %s: %w", out.name, err)
		}
		written = append(written, p)
	}

	if f.journal {
		j := gallery.NewJournal()
		if f.note != "" {
			d := gallery.NewDraft()
			d.Title = f.title
			d.Content = f.note
			for _, img := range photos {
				d.AddPhotos(img.DataURI)
			}
			j.SaveDraft(d)
		}
		j.Add(gallery.FromSnapshot(s.Snapshot()))
		p := filepath.Join(f.out, "journal.pdf")
		if err := export.ExportJournalPDF(f.title, j.List(), p, opt); err != nil {
			return written, fmt.Errorf("export journal: %w", err)
		}
		written = append(written, p)
	}

	if f.pack != "" {
		if len(photos) == 0 {
			log.Warn("no photos for sticker pack", slog.String("path", f.pack))
			return written, nil
		}
		uris := make([]string, len(photos))
		for i, img := range photos {
			uris[i] = img.DataURI
		}
		if err := stickerpack.Export(f.pack, f.title, uris); err != nil {
			return written, fmt.Errorf("sticker pack: %w", err)
		}
		written = append(written, f.pack)
	}
	return written, nil
}

// loadPhotos filters and decodes paths, keeping argument order.
func loadPhotos(ctx context.Context, paths []string, limit int) ([]upload.Image, error) {
	srcs := make([]upload.Source, 0, len(paths))
	for _, p := range paths {
		srcs = append(srcs, upload.FromPath(p))
	}
	srcs = upload.Filter(srcs, limit)
	byName := make(map[string]upload.Image, len(srcs))
	if err := (upload.Loader{}).Load(ctx, srcs, func(img upload.Image) { byName[img.Name] = img }); err != nil {
		return nil, fmt.Errorf("load photos: %w", err)
	}
	out := make([]upload.Image, 0, len(byName))
	for _, src := range srcs {
		if img, ok := byName[src.Name]; ok {
			out = append(out, img)
		}
	}
	return out, nil
}
