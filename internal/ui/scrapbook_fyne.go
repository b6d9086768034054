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
	"fmt"
	"image/color"
	"io"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studyjournal/internal/export"
	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
	"studyjournal/internal/stickerpack"
	"studyjournal/internal/upload"
	"studyjournal/internal/vector"
)

var trayThumb = fyne.NewSize(48, 48)

func (u *shell) scrapbookView() fyne.CanvasObject {
	s := u.router.Scrapbook()
	cv := NewScrapbookCanvas(s, u.exportOptions())

	controls := container.NewVBox()
	tray := container.NewGridWrap(trayThumb)
	lastSel := "-"
	rebuildControls := func(force bool) {
		id := s.SelectedID()
		if id == lastSel && !force {
			return
		}
		lastSel = id
		controls.Objects = u.elementControls(s, cv)
		controls.Refresh()
	}
	refreshTray := func() {
		uris := s.CustomStickers()
		objs := make([]fyne.CanvasObject, 0, len(uris))
		for i, uri := range uris {
			_, data, err := upload.ParseDataURI(uri)
			if err != nil {
				continue
			}
			res := fyne.NewStaticResource(fmt.Sprintf("sticker-%d", i), data)
			objs = append(objs, widget.NewButtonWithIcon("", res, func() {
				s.AddSticker(uri)
				cv.Refresh()
			}))
		}
		tray.Objects = objs
		tray.Refresh()
	}
	cv.OnChange = func() { rebuildControls(false) }
	// double tap moves focus to the text field; the edit commits on blur
	cv.OnEditText = func(scrapbook.Element) {
		rebuildControls(false)
		for _, o := range controls.Objects {
			if ce, ok := o.(*commitEntry); ok {
				u.win.Canvas().Focus(ce)
			}
		}
	}

	title := widget.NewEntry()
	title.SetText(s.Title())
	title.OnChanged = s.SetTitle
	bg := backgroundSelect(s.Background(), func(id palette.ID) { s.SetBackground(id); cv.Refresh() })

	stickers := make([]fyne.CanvasObject, 0, len(scrapbook.BuiltinStickers))
	for _, g := range scrapbook.BuiltinStickers {
		stickers = append(stickers, widget.NewButton(g, func() { s.AddSticker(g); cv.Refresh() }))
	}

	tools := container.NewVBox(
		boldLabel("Add"),
		widget.NewButtonWithIcon("Text", theme.DocumentCreateIcon(), func() { s.AddText(); cv.Refresh() }),
		widget.NewButtonWithIcon("Photo", theme.FileImageIcon(), func() {
			u.pickImage(func(img upload.Image) { s.AddPhoto(img.DataURI); cv.Refresh() })
		}),
		widget.NewButtonWithIcon("Photos from Folder", theme.FolderOpenIcon(), func() {
			u.pickFolder(func(img upload.Image) { s.AddPhoto(img.DataURI); cv.Refresh() })
		}),
		widget.NewButtonWithIcon("Custom Sticker", theme.UploadIcon(), func() {
			u.pickImage(func(img upload.Image) { s.AddCustomSticker(img.DataURI); cv.Refresh(); refreshTray() })
		}),
		widget.NewButtonWithIcon("Stickers from Folder", theme.FolderOpenIcon(), func() {
			u.pickFolder(func(img upload.Image) { s.AddCustomSticker(img.DataURI); cv.Refresh(); refreshTray() })
		}),
		boldLabel("Stickers"),
		container.NewGridWithColumns(4, stickers...),
		boldLabel("My Stickers"),
		tray,
		container.NewGridWithColumns(2,
			widget.NewButton("Import Pack", func() { u.importPack(s, func(int) { refreshTray() }) }),
			widget.NewButton("Export Pack", func() {
				uris := s.CustomStickers()
				name := s.Title()
				u.saveAs(fileSafe(name)+"-stickers.zip", func(w io.Writer) error { return stickerpack.Write(w, name, uris) }, nil)
			}),
		),
		boldLabel("Background"),
		bg,
	)

	exportAs := func(ext string, write func(io.Writer, scrapbook.Scene, export.Options) error) func() {
		return func() {
			sc, opt := scrapbook.Render(s), u.exportOptions()
			u.saveAs(fileSafe(s.Title())+ext, func(w io.Writer) error { return write(w, sc, opt) }, nil)
		}
	}
	save := widget.NewButtonWithIcon("Save Scrapbook", theme.DocumentSaveIcon(), func() { u.router.SaveScrapbook() })
	save.Importance = widget.HighImportance
	top := container.NewBorder(nil, nil, widget.NewLabel("Title"),
		container.NewHBox(
			widget.NewButton("PNG", exportAs(".png", export.WritePNG)),
			widget.NewButton("SVG", exportAs(".svg", export.WriteSVG)),
			widget.NewButton("PDF", exportAs(".pdf", export.WriteScenePDF)),
			save,
		),
		title)

	refreshTray()
	rebuildControls(true)
	return container.NewBorder(top, nil,
		container.NewVScroll(tools),
		container.NewVScroll(container.NewPadded(controls)),
		container.NewScroll(container.NewCenter(cv)))
}

// elementControls builds the style panel for the selected element.
func (u *shell) elementControls(s *scrapbook.Session, cv *ScrapbookCanvas) []fyne.CanvasObject {
	sel, ok := s.Selected()
	if !ok {
		return []fyne.CanvasObject{wrapLabel("Select an element to edit it. Drag to move, double-click text to edit.")}
	}
	refresh := func() { cv.Refresh() }
	objs := []fyne.CanvasObject{boldLabel(sel.Kind.String())}
	for _, c := range scrapbook.ControlsFor(sel) {
		switch c {
		case scrapbook.ControlFont:
			f := widget.NewSelect(scrapbook.FontOptions, nil)
			f.SetSelected(sel.Style.FontFamilyOr(scrapbook.DefaultFontFamily))
			f.OnChanged = func(v string) { s.SetFontFamily(sel.ID, v); refresh() }
			objs = append(objs, widget.NewLabel("Font"), f)
		case scrapbook.ControlSize:
			opts := make([]string, len(scrapbook.SizeOptions))
			for i, v := range scrapbook.SizeOptions {
				opts[i] = strconv.Itoa(int(v))
			}
			sz := widget.NewSelect(opts, nil)
			sz.SetSelected(strconv.Itoa(int(sel.Style.FontSizeOr(scrapbook.DefaultFontSize))))
			sz.OnChanged = func(v string) {
				if n, err := strconv.Atoi(v); err == nil {
					s.SetFontSize(sel.ID, float32(n))
					refresh()
				}
			}
			objs = append(objs, widget.NewLabel("Size"), sz)
		case scrapbook.ControlColor:
			objs = append(objs, widget.NewButtonWithIcon("Text Colour", theme.ColorPaletteIcon(), func() {
				dialog.NewColorPicker("Text Colour", "Pick a colour for the text", func(c color.Color) {
					n := color.NRGBAModel.Convert(c).(color.NRGBA)
					s.SetColor(sel.ID, vector.Color{R: n.R, G: n.G, B: n.B, A: 255}.Hex())
					refresh()
				}, u.win).Show()
			}))
		case scrapbook.ControlPolaroid:
			p := widget.NewCheck("Polaroid frame", nil)
			p.SetChecked(sel.Style.Polaroid())
			p.OnChanged = func(bool) { s.TogglePolaroid(sel.ID); refresh() }
			objs = append(objs, p)
		case scrapbook.ControlRotation:
			rot := widget.NewSlider(-180, 180)
			rot.Step = 1
			rot.SetValue(float64(sel.Style.RotationDeg()))
			rot.OnChanged = func(v float64) { s.SetRotation(sel.ID, float32(v)); refresh() }
			objs = append(objs, widget.NewLabel("Rotation"), rot)
		}
	}
	if sel.Kind == scrapbook.KindText {
		text := newCommitEntry(sel.Content, func(v string) {
			if s.CommitText(sel.ID, v) {
				refresh()
			}
		})
		objs = append(objs, widget.NewLabel("Text"), text)
	}
	objs = append(objs, widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		s.Delete(sel.ID)
		refresh()
		if cv.OnChange != nil {
			cv.OnChange()
		}
	}))
	return objs
}
