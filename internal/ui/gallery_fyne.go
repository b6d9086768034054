//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studyjournal/internal/export"
	"studyjournal/internal/gallery"
	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
)

var (
	cardSize  = fyne.NewSize(300, 360)
	photoSize = fyne.NewSize(130, 110)
)

const searchLimit = 50

func (u *shell) galleryView() fyne.CanvasObject {
	j := u.router.Journal()
	records := j.List()

	summary := widget.NewLabel(gallery.Summary(len(records)))
	grid := container.NewGridWrap(cardSize)
	fill := func(rs []gallery.Record) {
		objs := make([]fyne.CanvasObject, 0, len(rs))
		for i, c := range gallery.Cards(rs) {
			objs = append(objs, u.card(c, rs[i]))
		}
		grid.Objects = objs
		grid.Refresh()
	}
	fill(records)

	top := container.NewVBox(boldLabel("My Study Abroad Journal"), summary)
	if len(records) == 0 {
		top.Add(spacer(24))
		top.Add(widget.NewLabelWithStyle(gallery.EmptyTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
		top.Add(widget.NewLabelWithStyle(gallery.EmptyBody, fyne.TextAlignCenter, fyne.TextStyle{}))
		if hint, ok := u.router.WelcomeHint(); ok {
			top.Add(widget.NewLabelWithStyle(hint.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
			top.Add(widget.NewLabelWithStyle(hint.Body, fyne.TextAlignCenter, fyne.TextStyle{Italic: true}))
		}
		return container.NewBorder(top, nil, nil, nil)
	}

	if u.index != nil {
		search := widget.NewEntry()
		search.SetPlaceHolder("Search titles and stories...")
		search.OnChanged = func(q string) {
			if strings.TrimSpace(q) == "" {
				fill(records)
				return
			}
			hits, err := u.index.Search(context.Background(), q, searchLimit)
			if err != nil {
				u.log.Warn("search failed", slog.String("query", q), slog.Any("err", err))
				return
			}
			found := make([]gallery.Record, 0, len(hits))
			for _, h := range hits {
				if r, ok := j.Get(h.ID); ok {
					found = append(found, r)
				}
			}
			fill(found)
		}
		top.Add(search)
	}
	return container.NewBorder(top, nil, nil, nil, container.NewVScroll(grid))
}

func (u *shell) card(c gallery.Card, r gallery.Record) fyne.CanvasObject {
	body := container.NewVBox()
	switch {
	case c.Kind == gallery.KindScrapbook:
		body.Add(u.sceneThumb(u.savedScene(r), fyne.NewSize(cardSize.Width-16, 150)))
	case c.Layout.Kind != gallery.LayoutNone:
		cells := make([]fyne.CanvasObject, 0, len(c.Layout.Cells))
		size := photoSize
		if c.Layout.Columns == 1 {
			size = fyne.NewSize(cardSize.Width-16, photoSize.Height)
		}
		for _, cell := range c.Layout.Cells {
			obj := u.thumb(cell.Photo, size)
			if cell.Badge != "" {
				shade := canvas.NewRectangle(badgeShade)
				badge := widget.NewLabelWithStyle(cell.Badge, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
				obj = container.NewStack(obj, shade, container.NewCenter(badge))
			}
			cells = append(cells, obj)
		}
		body.Add(container.NewGridWithColumns(c.Layout.Columns, cells...))
	}

	body.Add(boldLabel(c.Title))
	meta := c.Date
	if c.PhotoLabel != "" {
		meta = strings.TrimPrefix(meta+" · "+c.PhotoLabel, " · ")
	}
	if c.Kind == gallery.KindScrapbook {
		meta = strings.TrimPrefix(meta+" · Scrapbook", " · ")
	}
	body.Add(widget.NewLabel(meta))
	if c.Excerpt != "" {
		body.Add(wrapLabel(c.Excerpt))
	}

	var actions []fyne.CanvasObject
	if c.Kind == gallery.KindJournal {
		actions = append(actions, widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), func() { u.router.EditEntry(c.ID) }))
	} else {
		actions = append(actions,
			widget.NewButtonWithIcon("PNG", theme.DownloadIcon(), func() {
				sc, opt := u.savedScene(r), u.exportOptions()
				u.saveAs(fileSafe(r.Title)+".png", func(w io.Writer) error { return export.WritePNG(w, sc, opt) }, nil)
			}),
			widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
				dialog.ShowConfirm("Delete Scrapbook", gallery.DeletePrompt, func(ok bool) {
					if ok && u.router.Journal().Delete(c.ID, nil) {
						u.show(u.router.Active())
					}
				}, u.win)
			}),
		)
	}
	body.Add(container.NewHBox(actions...))

	return container.NewStack(gradient(c.Background), container.NewPadded(body))
}

// savedScene renders a saved scrapbook record on the configured canvas.
func (u *shell) savedScene(r gallery.Record) scrapbook.Scene {
	w, h := float32(u.cfg.Canvas.Width), float32(u.cfg.Canvas.Height)
	if w <= 0 || h <= 0 {
		w, h = scrapbook.DefaultCanvasWidth, scrapbook.DefaultCanvasHeight
	}
	sc := scrapbook.RenderElements(r.Elements, w, h, palette.Resolve(r.Background))
	sc.Title = r.Title
	return sc
}
