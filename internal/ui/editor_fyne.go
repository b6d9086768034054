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
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studyjournal/internal/gallery"
	"studyjournal/internal/palette"
	"studyjournal/internal/upload"
)

var editorThumb = fyne.NewSize(96, 96)

// entryEditor edits d in place. editing switches the buttons to update and
// delete an existing entry.
func (u *shell) entryEditor(d *gallery.Draft, editing bool) fyne.CanvasObject {
	heading := "New Journal Entry"
	saveLabel := "Save Entry"
	if editing {
		heading, saveLabel = "Edit Journal Entry", "Update Entry"
	}

	photos := container.NewGridWrap(editorThumb)
	preview := container.NewStack()
	save := widget.NewButtonWithIcon(saveLabel, theme.DocumentSaveIcon(), nil)
	save.Importance = widget.HighImportance

	var refresh func()
	refresh = func() {
		objs := make([]fyne.CanvasObject, 0, len(d.Photos))
		for i, p := range d.Photos {
			remove := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
				if d.RemovePhoto(i) {
					refresh()
				}
			})
			remove.Importance = widget.DangerImportance
			objs = append(objs, container.NewStack(u.thumb(p, editorThumb), container.NewVBox(container.NewHBox(layoutSpacer(), remove))))
		}
		photos.Objects = objs
		photos.Refresh()

		preview.Objects = []fyne.CanvasObject{u.previewCard(d.Preview())}
		preview.Refresh()

		if d.CanSave() {
			save.Enable()
		} else {
			save.Disable()
		}
	}

	title := widget.NewEntry()
	title.SetPlaceHolder("Give your entry a title...")
	title.SetText(d.Title)
	title.OnChanged = func(s string) { d.Title = s; refresh() }

	content := widget.NewMultiLineEntry()
	content.SetPlaceHolder("Write about your day, what you learned, who you met...")
	content.Wrapping = fyne.TextWrapWord
	content.SetMinRowsVisible(10)
	content.SetText(d.Content)
	content.OnChanged = func(s string) { d.Content = s; refresh() }

	bg := backgroundSelect(d.Background, func(id palette.ID) { d.Background = id; refresh() })

	addPhoto := widget.NewButtonWithIcon("Add Photo", theme.FileImageIcon(), func() {
		u.pickImage(func(img upload.Image) { d.AddPhotos(img.DataURI); refresh() })
	})
	addFolder := widget.NewButtonWithIcon("Add Folder", theme.FolderOpenIcon(), func() {
		u.pickFolder(func(img upload.Image) { d.AddPhotos(img.DataURI); refresh() })
	})

	save.OnTapped = func() {
		if editing {
			u.router.UpdateEntry()
			return
		}
		u.router.SaveEntry()
	}
	cancel := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), u.router.Close)
	buttons := container.NewHBox(save, cancel)
	if editing {
		del := widget.NewButtonWithIcon("Delete Entry", theme.DeleteIcon(), func() {
			u.router.RequestDelete(func(prompt string, answer func(bool)) {
				dialog.ShowConfirm("Delete Entry", prompt, answer, u.win)
			})
		})
		del.Importance = widget.DangerImportance
		buttons.Add(layoutSpacer())
		buttons.Add(del)
	}

	form := container.NewVBox(
		boldLabel(heading),
		widget.NewLabel("Title"), title,
		widget.NewLabel("Your Story"), content,
		widget.NewLabel("Background"), bg,
		widget.NewLabel("Photos"), container.NewHBox(addPhoto, addFolder), photos,
		buttons,
	)
	refresh()

	split := container.NewHSplit(container.NewVScroll(form), container.NewVScroll(container.NewVBox(boldLabel("Preview"), preview)))
	split.Offset = 0.55
	return split
}

func (u *shell) previewCard(p gallery.Preview) fyne.CanvasObject {
	body := container.NewVBox(boldLabel(p.Title), wrapLabel(p.Content))
	if len(p.Photos) > 0 {
		cells := make([]fyne.CanvasObject, 0, len(p.Photos))
		for _, ph := range p.Photos {
			cells = append(cells, u.thumb(ph, photoSize))
		}
		body.Add(container.NewGridWithColumns(2, cells...))
	}
	return container.NewStack(gradient(p.Background), container.NewPadded(body))
}
