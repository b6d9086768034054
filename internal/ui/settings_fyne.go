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
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"studyjournal/internal/config"
	applog "studyjournal/internal/log"
	"studyjournal/internal/palette"
	"studyjournal/internal/views"
)

var themeNames = []string{"system", "light", "dark"}

// settingEntry is a numeric field, locked when an env var controls it.
func settingEntry(key string, v int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(v))
	lockIfEnv(key, e)
	return e
}

type disabler interface{ Disable() }

func lockIfEnv(key string, w disabler) {
	if _, ok := config.EnvOverrideFor(key); ok {
		w.Disable()
	}
}

func hintFor(key string) string {
	if env, ok := config.EnvOverrideFor(key); ok {
		return "set by " + env
	}
	return ""
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a positive number", s)
	}
	return n, nil
}

// showSettings edits the user config. Canvas size only applies after a
// restart; everything else applies right away.
func (u *shell) showSettings() {
	l := applog.WithOperation(u.log, "settings")
	cfg := u.cfg

	themeSel := widget.NewSelect(themeNames, nil)
	themeSel.SetSelected(cfg.General.Theme)
	lockIfEnv("general.theme", themeSel)

	bg := palette.ID(cfg.Canvas.Background)
	bgSel := backgroundSelect(bg, func(id palette.ID) { bg = id })
	lockIfEnv("canvas.background", bgSel)

	wEntry := settingEntry("canvas.width", cfg.Canvas.Width)
	hEntry := settingEntry("canvas.height", cfg.Canvas.Height)
	dpiEntry := settingEntry("export.dpi", cfg.Export.DPI)
	maxEntry := settingEntry("upload.max_photos", cfg.Upload.MaxPhotos)
	fontDir := widget.NewEntry()
	fontDir.SetText(cfg.Export.FontDir)
	fontDir.SetPlaceHolder("folder of .ttf / .otf files")
	lockIfEnv("export.font_dir", fontDir)

	item := func(label, key string, w fyne.CanvasObject) *widget.FormItem {
		fi := widget.NewFormItem(label, w)
		fi.HintText = hintFor(key)
		return fi
	}
	items := []*widget.FormItem{
		item("Theme", "general.theme", themeSel),
		item("Default background", "canvas.background", bgSel),
		item("Canvas width", "canvas.width", wEntry),
		item("Canvas height", "canvas.height", hEntry),
		item("Export DPI", "export.dpi", dpiEntry),
		item("Photos per upload", "upload.max_photos", maxEntry),
		item("Font folder", "export.font_dir", fontDir),
	}
	dialog.ShowForm("Settings", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		w, errW := positiveInt(wEntry.Text)
		h, errH := positiveInt(hEntry.Text)
		dpi, errD := positiveInt(dpiEntry.Text)
		maxPhotos, errM := positiveInt(maxEntry.Text)
		if err := errors.Join(errW, errH, errD, errM); err != nil {
			dialog.ShowError(err, u.win)
			return
		}
		next := cfg
		next.General.Theme = themeSel.Selected
		next.Canvas.Background = string(bg)
		next.Canvas.Width, next.Canvas.Height = w, h
		next.Export.DPI = dpi
		next.Upload.MaxPhotos = maxPhotos
		next.Export.FontDir = strings.TrimSpace(fontDir.Text)
		if err := config.Save(next); err != nil {
			l.Error("save config", slog.Any("err", err))
			dialog.ShowError(err, u.win)
			return
		}

		resized := next.Canvas.Width != cfg.Canvas.Width || next.Canvas.Height != cfg.Canvas.Height
		next.Canvas.Width, next.Canvas.Height = cfg.Canvas.Width, cfg.Canvas.Height
		if next.Export.FontDir != cfg.Export.FontDir {
			u.fonts = loadFonts(next, l)
		}
		u.cfg = next
		applyTheme(fyne.CurrentApp(), next.General.Theme)
		l.Info("settings saved", slog.Bool("resized", resized))

		t := views.Toast{Title: "Settings saved"}
		if resized {
			t.Description = "The new canvas size applies after a restart."
		}
		u.showToast(t)
	}, u.win)
}
