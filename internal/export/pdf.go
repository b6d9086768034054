/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"studyjournal/internal/gallery"
	applog "studyjournal/internal/log"
	"studyjournal/internal/palette"
	"studyjournal/internal/scrapbook"
	"studyjournal/internal/upload"
	"studyjournal/internal/vector"
)

// PDF pages for journal entries are A4 portrait, in points. Scrapbook pages
// take the canvas size with one px mapped to one pt.
const (
	a4W        = 595.28
	a4H        = 841.89
	pageMargin = 48
	photoGap   = 12
)

// ErrNothingToExport is returned for an empty journal.
var ErrNothingToExport = errors.New("nothing to export")

type pdfDoc struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	opt    Options
	images int
	log    *slog.Logger
}

func newPDF(title string, opt Options) *pdfDoc {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: a4W, Ht: a4H},
	})
	pdf.SetTitle(title, true)
	pdf.SetAuthor("Study Abroad Journal", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 12)
	return &pdfDoc{
		pdf: pdf,
		// Core fonts are cp1252; runes outside it print as dots.
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		opt: opt,
		log: applog.WithOperation(applog.WithComponent("export"), "pdf"),
	}
}

// WriteScenePDF writes a one-page PDF of the scene.
func WriteScenePDF(w io.Writer, sc scrapbook.Scene, opt Options) error {
	d := newPDF(sc.Title, opt)
	d.scene(sc)
	return d.output(w)
}

// ExportScenePDF writes the scene to path, creating its directory.
func ExportScenePDF(sc scrapbook.Scene, path string, opt Options) error {
	var buf bytes.Buffer
	if err := WriteScenePDF(&buf, sc, opt); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// WriteJournalPDF writes every record in order: journal entries as A4 pages
// with their photos in two columns, scrapbooks as canvas pages.
func WriteJournalPDF(w io.Writer, title string, records []gallery.Record, opt Options) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}
	d := newPDF(title, opt)
	cw, ch := opt.canvasSize()
	for _, r := range records {
		if r.Kind == gallery.KindScrapbook {
			sc := scrapbook.RenderElements(r.Elements, cw, ch, palette.Resolve(r.Background))
			sc.Title = r.Title
			d.scene(sc)
			continue
		}
		d.entry(r)
	}
	return d.output(w)
}

// ExportJournalPDF writes the journal to path, creating its directory.
func ExportJournalPDF(title string, records []gallery.Record, path string, opt Options) error {
	var buf bytes.Buffer
	if err := WriteJournalPDF(&buf, title, records, opt); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

func (d *pdfDoc) output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (d *pdfDoc) scene(sc scrapbook.Scene) {
	pdf := d.pdf
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: float64(sc.Width), Ht: float64(sc.Height)})
	d.gradient(0, 0, float64(sc.Width), float64(sc.Height), sc.Background)

	if len(sc.Layers) == 0 {
		y := float64(sc.Height) / 2
		setTextColor(pdf, hintColor)
		for i, line := range sc.EmptyHint {
			size := 14.0
			if i == 0 {
				size = 18
			}
			pdf.SetFont("Helvetica", "", size)
			pdf.SetXY(0, y)
			pdf.CellFormat(float64(sc.Width), size, d.tr(line), "", 0, "C", false, 0, "")
			y += size + hintGap
		}
	}

	for _, l := range sc.Layers {
		b := l.Base().Box
		r := b.Rect
		if b.Rotation != 0 {
			c := r.Center()
			pdf.TransformBegin()
			// gofpdf turns counter-clockwise; canvas rotation is clockwise.
			pdf.TransformRotate(-float64(b.Rotation), float64(c.X), float64(c.Y))
		}
		switch l := l.(type) {
		case scrapbook.TextLayer:
			if l.Background.A > 0 {
				setFillColor(pdf, l.Background)
				pdf.SetAlpha(float64(l.Background.A)/255, "Normal")
				pdf.Rect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), "F")
				pdf.SetAlpha(1, "Normal")
			}
			size := float64(l.FontSize)
			pdf.SetFont(pdfFamily(l.FontFamily), "", size)
			setTextColor(pdf, l.Color)
			pdf.SetXY(float64(r.X+textPadding), float64(r.Y+textPadding))
			pdf.MultiCell(float64(r.W-2*textPadding), size*1.2, d.tr(l.Text), "", "L", false)
		case scrapbook.ImageLayer:
			if f := l.Frame; f != nil {
				setFillColor(pdf, vector.White)
				pdf.Rect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), "F")
				pdf.SetFont("Helvetica", "", 12)
				setTextColor(pdf, hintColor)
				pdf.SetXY(float64(f.Text.X), float64(f.Text.Y))
				pdf.CellFormat(float64(f.Text.W), float64(f.Text.H), d.tr(f.Caption), "", 0, "C", false, 0, "")
			}
			d.picture(l.ElementID, l.Source, l.Image)
		case scrapbook.GlyphLayer:
			// Emoji are not in the core fonts, so glyphs go in as raster tiles.
			if tile := rasterLayer(l, d.opt.fonts(), d.opt.scale()); tile != nil {
				d.raster(tile, r)
			}
		}
		if b.Rotation != 0 {
			pdf.TransformEnd()
		}
	}
}

func (d *pdfDoc) entry(r gallery.Record) {
	pdf := d.pdf
	d.entryPage(r.Background)
	w := a4W - 2*pageMargin

	pdf.SetFont("Helvetica", "B", 22)
	setTextColor(pdf, vector.Color{R: 0x1f, G: 0x29, B: 0x37, A: 255})
	pdf.SetXY(pageMargin, pageMargin)
	pdf.MultiCell(w, 28, d.tr(gallery.TitleOrDefault(r.Title)), "", "L", false)

	meta := gallery.FormatDate(r.Date)
	if label := gallery.PhotoLabel(len(r.Photos)); label != "" {
		meta = strings.TrimPrefix(meta+" · "+label, " · ")
	}
	pdf.SetFont("Helvetica", "", 10)
	setTextColor(pdf, hintColor)
	pdf.SetX(pageMargin)
	pdf.CellFormat(w, 18, d.tr(meta), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	if strings.TrimSpace(r.Content) != "" {
		pdf.SetFont("Helvetica", "", 12)
		setTextColor(pdf, vector.Color{R: 0x37, G: 0x41, B: 0x51, A: 255})
		pdf.SetX(pageMargin)
		pdf.MultiCell(w, 16, d.tr(r.Content), "", "L", false)
		pdf.Ln(photoGap)
	}

	cellW := (w - photoGap) / 2
	cellH := cellW * 0.75
	y := pdf.GetY()
	for i, src := range r.Photos {
		col := i % 2
		if col == 0 && i > 0 {
			y += cellH + photoGap
		}
		if y+cellH > a4H-pageMargin {
			d.entryPage(r.Background)
			y = pageMargin
		}
		x := pageMargin + float64(col)*(cellW+photoGap)
		d.picture(r.ID, src, vector.R(float32(x), float32(y), float32(cellW), float32(cellH)))
	}
}

func (d *pdfDoc) entryPage(bg palette.ID) {
	d.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: a4W, Ht: a4H})
	d.gradient(0, 0, a4W, a4H, palette.Resolve(bg))
}

func (d *pdfDoc) gradient(x, y, w, h float64, bg palette.Background) {
	d.pdf.LinearGradient(x, y, w, h,
		int(bg.From.R), int(bg.From.G), int(bg.From.B),
		int(bg.To.R), int(bg.To.G), int(bg.To.B),
		0, 0, 1, 1)
}

// picture places a data URI image cropped to fill r. Undecodable sources
// leave a grey placeholder.
func (d *pdfDoc) picture(owner, src string, r vector.Rect) {
	img, err := upload.DecodeDataURI(src)
	if err != nil {
		d.log.Warn("image not decodable, drawing placeholder", slog.String("owner", owner), slog.Any("err", err))
		setFillColor(d.pdf, placeholderFill)
		d.pdf.Rect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), "F")
		return
	}
	crop := coverCrop(img.Bounds(), int(r.W*100), int(r.H*100))
	rgba := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, crop.Min, draw.Src)
	d.raster(rgba, r)
}

// raster registers img as PNG so every decoder upload accepts ends up in a
// format gofpdf can embed.
func (d *pdfDoc) raster(img image.Image, r vector.Rect) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		d.log.Warn("encode image for pdf", slog.Any("err", err))
		return
	}
	name := fmt.Sprintf("img%d", d.images)
	d.images++
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, &buf)
	d.pdf.ImageOptions(name, float64(r.X), float64(r.Y), float64(r.W), float64(r.H), false, opts, 0, "")
}

// pdfFamily maps a canvas font to the closest core PDF font.
func pdfFamily(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "courier"):
		return "Courier"
	case strings.Contains(f, "times"), strings.Contains(f, "georgia"):
		return "Times"
	}
	return "Helvetica"
}

func setTextColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
