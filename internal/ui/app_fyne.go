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
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studyjournal/internal/config"
	"studyjournal/internal/crash"
	"studyjournal/internal/export"
	"studyjournal/internal/gallery"
	applog "studyjournal/internal/log"
	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
	"studyjournal/internal/textlayout"
	"studyjournal/internal/version"
	"studyjournal/internal/views"
)

const toastTimeout = 3 * time.Second

// shell holds the window and the services behind it.
type shell struct {
	cfg    config.AppConfig
	win    fyne.Window
	router *views.Router
	index  *gallery.SearchIndex
	fonts  textlayout.Provider
	log    *slog.Logger

	body       *fyne.Container
	toast      *widget.Label
	toastTimer *time.Timer
	decoded    map[string]image.Image
}

// Run starts the desktop app and blocks until the window closes.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	var ixOpts []gallery.JournalOption
	index, err := gallery.OpenSearchIndex(context.Background())
	if err != nil {
		l.Warn("search disabled", slog.Any("err", err))
	} else {
		ixOpts = append(ixOpts, gallery.WithIndex(index))
		defer func() { _ = index.Close() }()
	}
	u := &shell{cfg: cfg, index: index, fonts: loadFonts(cfg, l), log: l, decoded: make(map[string]image.Image)}
	router := views.NewRouter(gallery.NewJournal(ixOpts...), u.newSession(), views.WithScrapbookFactory(u.newSession))
	u.router = router
	defer crash.Recover(router)

	a := app.NewWithID("studyjournal")
	applyTheme(a, cfg.General.Theme)
	u.win = a.NewWindow(views.AppTitle)
	prefs := a.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1200), 900)
	winH := max(prefs.IntWithFallback("window.height", 800), 640)
	u.win.Resize(fyne.NewSize(float32(winW), float32(winH)))
	u.win.SetCloseIntercept(func() {
		sz := u.win.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		u.win.Close()
	})

	u.toast = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	u.toast.Hide()
	u.body = container.NewStack()

	router.OnViewChange(func(v views.View) { u.show(v) })
	router.OnToast(u.showToast)

	u.win.SetContent(container.NewBorder(u.header(), u.toast, nil, nil, u.body))
	u.show(router.Active())
	u.win.ShowAndRun()
	l.Info("UI closed")
	return nil
}

// applyTheme switches between the light and dark variants; anything else
// follows the system.
func applyTheme(a fyne.App, name string) {
	switch name {
	case "light":
		a.Settings().SetTheme(theme.LightTheme())
	case "dark":
		a.Settings().SetTheme(theme.DarkTheme())
	default:
		a.Settings().SetTheme(theme.DefaultTheme())
	}
}

func loadFonts(cfg config.AppConfig, l *slog.Logger) textlayout.Provider {
	lib := textlayout.NewFontLibrary()
	if dir := strings.TrimSpace(cfg.Export.FontDir); dir != "" {
		n, err := lib.LoadDir(dir)
		if err != nil {
			l.Warn("font dir not loaded", slog.String("dir", dir), slog.Any("err", err))
		}
		l.Debug("fonts loaded", slog.Int("count", n))
	}
	return &textlayout.OTProvider{Lib: lib, DPI: 72}
}

// newSession starts a scrapbook with the current canvas settings.
func (u *shell) newSession() *scrapbook.Session {
	return scrapbook.NewSession(
		scrapbook.WithCanvasSize(float32(u.cfg.Canvas.Width), float32(u.cfg.Canvas.Height)),
		scrapbook.WithBackground(palette.ID(u.cfg.Canvas.Background)),
	)
}

func (u *shell) exportOptions() export.Options {
	return export.Options{
		DPI:          u.cfg.Export.DPI,
		Fonts:        u.fonts,
		CanvasWidth:  float32(u.cfg.Canvas.Width),
		CanvasHeight: float32(u.cfg.Canvas.Height),
	}
}

func (u *shell) header() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(views.AppTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	home := widget.NewButtonWithIcon("Journal", theme.HomeIcon(), func() { u.router.Show(views.Gallery) })
	newEntry := widget.NewButtonWithIcon("New Entry", theme.ContentAddIcon(), u.router.NewEntry)
	newScrap := widget.NewButtonWithIcon("Create Scrapbook", theme.DocumentCreateIcon(), func() { u.router.Show(views.Scrapbook) })
	pdf := widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), func() {
		records := u.router.Journal().List()
		if len(records) == 0 {
			dialog.ShowInformation("Nothing to export", gallery.EmptyBody, u.win)
			return
		}
		opt := u.exportOptions()
		u.saveAs("journal.pdf", func(w io.Writer) error {
			return export.WriteJournalPDF(w, views.AppTitle, records, opt)
		}, nil)
	})
	settings := widget.NewButtonWithIcon("", theme.SettingsIcon(), u.showSettings)
	return container.NewBorder(nil, widget.NewSeparator(), title, container.NewHBox(home, newEntry, newScrap, pdf, settings))
}

// show replaces the body with the view. Views are rebuilt on every switch so
// they always reflect the router state.
func (u *shell) show(v views.View) {
	var content fyne.CanvasObject
	switch v {
	case views.Editor:
		content = u.entryEditor(u.router.Draft(), false)
	case views.EditEntry:
		d := u.router.Editing()
		if d == nil {
			content = u.galleryView()
			break
		}
		content = u.entryEditor(d, true)
	case views.Scrapbook:
		content = u.scrapbookView()
	default:
		content = u.galleryView()
	}
	u.body.Objects = []fyne.CanvasObject{content}
	u.body.Refresh()
}

func (u *shell) showToast(t views.Toast) {
	u.toast.SetText(fmt.Sprintf("%s  %s", t.Title, t.Description))
	u.toast.Show()
	if u.toastTimer != nil {
		u.toastTimer.Stop()
	}
	u.toastTimer = time.AfterFunc(toastTimeout, func() {
		fyne.Do(u.toast.Hide)
	})
}
