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
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"studyjournal/internal/export"
	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
	"studyjournal/internal/stickerpack"
	"studyjournal/internal/upload"
)

var (
	imageExts       = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff"}
	placeholderGrey = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 255}
	badgeShade      = color.NRGBA{A: 0x80}
)

// thumb shows a data URI image, or a grey box when it does not decode.
// Decoded images are kept for the life of the window.
func (u *shell) thumb(uri string, size fyne.Size) fyne.CanvasObject {
	img, ok := u.decoded[uri]
	if !ok {
		img, _ = upload.DecodeDataURI(uri)
		u.decoded[uri] = img
	}
	if img == nil {
		r := canvas.NewRectangle(placeholderGrey)
		r.SetMinSize(size)
		return r
	}
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	ci.SetMinSize(size)
	return ci
}

// sceneThumb renders a saved scrapbook at a quarter of its size.
func (u *shell) sceneThumb(sc scrapbook.Scene, size fyne.Size) fyne.CanvasObject {
	opt := u.exportOptions()
	opt.DPI = 24
	ci := canvas.NewImageFromImage(export.RenderImage(sc, opt))
	ci.FillMode = canvas.ImageFillContain
	ci.SetMinSize(size)
	return ci
}

func gradient(bg palette.Background) *canvas.LinearGradient {
	return canvas.NewLinearGradient(bg.From, bg.To, 45)
}

func backgroundNames() []string {
	list := palette.List()
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Name
	}
	return out
}

// backgroundSelect offers the palette and reports the picked id.
func backgroundSelect(current palette.ID, onPick func(palette.ID)) *widget.Select {
	sel := widget.NewSelect(backgroundNames(), nil)
	sel.SetSelected(palette.Resolve(current).Name)
	sel.OnChanged = func(name string) {
		if b, ok := palette.Lookup(name); ok {
			onPick(b.ID)
		}
	}
	return sel
}

func readerSource(rc fyne.URIReadCloser) upload.Source {
	return upload.Source{Name: rc.URI().Name(), Read: func() ([]byte, error) {
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}}
}

func uriSource(u fyne.URI) upload.Source {
	return upload.Source{Name: u.Name(), Read: func() ([]byte, error) {
		rc, err := fstorage.Reader(u)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}}
}

// pickImage asks for one image file.
func (u *shell) pickImage(onImage func(upload.Image)) {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.win)
			return
		}
		if rc == nil {
			return
		}
		u.load([]upload.Source{readerSource(rc)}, onImage)
	}, u.win)
	fd.SetFilter(fstorage.NewExtensionFileFilter(imageExts))
	fd.Show()
}

// pickFolder loads the images of a folder, up to the configured batch size.
func (u *shell) pickFolder(onImage func(upload.Image)) {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, u.win)
			return
		}
		if dir == nil {
			return
		}
		items, err := dir.List()
		if err != nil {
			dialog.ShowError(fmt.Errorf("list folder: %w", err), u.win)
			return
		}
		srcs := make([]upload.Source, 0, len(items))
		for _, it := range items {
			srcs = append(srcs, uriSource(it))
		}
		u.load(upload.Filter(srcs, u.cfg.Upload.MaxPhotos), onImage)
	}, u.win)
}

// load decodes off the UI goroutine and hands each image back on it.
func (u *shell) load(srcs []upload.Source, onImage func(upload.Image)) {
	go func() {
		err := upload.Loader{}.Load(context.Background(), srcs, func(img upload.Image) {
			fyne.Do(func() { onImage(img) })
		})
		if err != nil {
			u.log.Warn("image load interrupted", slog.Any("err", err))
		}
	}()
}

// saveAs asks for a destination and streams write into it.
func (u *shell) saveAs(name string, write func(io.Writer) error, done func()) {
	fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.win)
			return
		}
		if wc == nil {
			return
		}
		werr := write(wc)
		if cerr := wc.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			u.log.Error("save failed", slog.String("file", name), slog.Any("err", werr))
			dialog.ShowError(werr, u.win)
			return
		}
		if done != nil {
			done()
		}
	}, u.win)
	fd.SetFileName(name)
	fd.Show()
}

// importPack reads a sticker pack zip into the tray.
func (u *shell) importPack(s *scrapbook.Session, done func(n int)) {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.win)
			return
		}
		if rc == nil {
			return
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			dialog.ShowError(fmt.Errorf("read pack: %w", err), u.win)
			return
		}
		go func() {
			p, err := stickerpack.Read(context.Background(), bytes.NewReader(data), int64(len(data)))
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, u.win)
					return
				}
				s.AddToTray(p.DataURIs()...)
				done(len(p.Stickers))
			})
		}()
	}, u.win)
	fd.SetFilter(fstorage.NewExtensionFileFilter([]string{".zip"}))
	fd.Show()
}

func fileSafe(title string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, strings.TrimSpace(title))
	if s == "" {
		return "scrapbook"
	}
	return strings.ToLower(s)
}

// commitEntry is a multi-line entry that reports its text when it loses
// focus, never per keystroke.
type commitEntry struct {
	widget.Entry
	onCommit func(string)
	last     string
}

func newCommitEntry(text string, onCommit func(string)) *commitEntry {
	e := &commitEntry{onCommit: onCommit, last: text}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	e.SetText(text)
	e.SetMinRowsVisible(3)
	return e
}

func (e *commitEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.Text == e.last {
		return
	}
	e.last = e.Text
	if e.onCommit != nil {
		e.onCommit(e.Text)
	}
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func wrapLabel(text string) *widget.Label {
	l := widget.NewLabel(text)
	l.Wrapping = fyne.TextWrapWord
	return l
}

func spacer(h float32) fyne.CanvasObject {
	r := canvas.NewRectangle(color.Transparent)
	r.SetMinSize(fyne.NewSize(1, h))
	return r
}


func layoutSpacer() fyne.CanvasObject { return layout.NewSpacer() }
