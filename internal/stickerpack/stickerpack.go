/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package stickerpack reads and writes sticker packs: zip archives holding
// image files and a stickerpack.json manifest that lists them in tray order.
package stickerpack

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	applog "studyjournal/internal/log"
	"studyjournal/internal/upload"
)

const (
	ManifestName  = "stickerpack.json"
	FormatVersion = 1
	maxEntryBytes = 8 << 20
)

var ErrInvalidManifest = errors.New("invalid sticker pack manifest")

// Manifest lists the stickers of a pack. File names are relative to the
// archive root and use forward slashes.
type Manifest struct {
	Name     string    `json:"name"`
	Version  int       `json:"version"`
	Created  time.Time `json:"created,omitempty"`
	Stickers []Entry   `json:"stickers"`
}

type Entry struct {
	File  string `json:"file"`
	Label string `json:"label,omitempty"`
}

const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "version", "stickers"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {"type": "integer", "const": 1},
    "created": {"type": "string", "format": "date-time"},
    "stickers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["file"],
        "properties": {
          "file": {"type": "string", "minLength": 1, "pattern": "^[^/\\\\].*$"},
          "label": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(manifestSchema)

// ParseManifest validates data against the manifest schema and decodes it.
// Every failure wraps ErrInvalidManifest.
func ParseManifest(data []byte) (Manifest, error) {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return Manifest{}, fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(msgs, "; "))
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	for _, s := range m.Stickers {
		if !safeName(s.File) {
			return Manifest{}, fmt.Errorf("%w: unsafe file name %q", ErrInvalidManifest, s.File)
		}
	}
	return m, nil
}

func safeName(name string) bool {
	if name == "" || strings.Contains(name, `\`) || path.IsAbs(name) {
		return false
	}
	clean := path.Clean(name)
	return clean == name && clean != ".." && !strings.HasPrefix(clean, "../")
}

// Pack is a decoded sticker pack. Stickers follow manifest order.
type Pack struct {
	Manifest Manifest
	Stickers []upload.Image
}

// DataURIs returns the sticker images in tray order.
func (p Pack) DataURIs() []string {
	out := make([]string, len(p.Stickers))
	for i, s := range p.Stickers {
		out[i] = s.DataURI
	}
	return out
}

// Read decodes a pack from a zip archive. Entries the manifest names but
// the archive lacks make the pack invalid; entries that are not images are
// skipped with a warning.
func Read(ctx context.Context, r io.ReaderAt, size int64) (Pack, error) {
	l := applog.WithOperation(applog.WithComponent("stickerpack"), "read")
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Pack{}, fmt.Errorf("open pack: %w", err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	mf, ok := files[ManifestName]
	if !ok {
		return Pack{}, fmt.Errorf("%w: %s missing", ErrInvalidManifest, ManifestName)
	}
	raw, err := readEntry(mf)
	if err != nil {
		return Pack{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(raw)
	if err != nil {
		return Pack{}, err
	}

	srcs := make([]upload.Source, 0, len(m.Stickers))
	for _, s := range m.Stickers {
		f, ok := files[s.File]
		if !ok {
			return Pack{}, fmt.Errorf("%w: %s not in archive", ErrInvalidManifest, s.File)
		}
		srcs = append(srcs, upload.Source{Name: s.File, Read: func() ([]byte, error) { return readEntry(f) }})
	}

	byName := make(map[string]upload.Image, len(srcs))
	if err := (upload.Loader{}).Load(ctx, srcs, func(img upload.Image) { byName[img.Name] = img }); err != nil {
		return Pack{}, fmt.Errorf("decode stickers: %w", err)
	}
	p := Pack{Manifest: m}
	for _, s := range m.Stickers {
		img, ok := byName[s.File]
		if !ok {
			l.Warn("skip sticker that is not an image", slog.String("file", s.File))
			continue
		}
		p.Stickers = append(p.Stickers, img)
	}
	l.Debug("sticker pack read", slog.String("pack", m.Name), slog.Int("stickers", len(p.Stickers)))
	return p, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxEntryBytes {
		return nil, fmt.Errorf("%s: entry too large", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(io.LimitReader(rc, maxEntryBytes))
}

// Open reads the pack at path.
func Open(ctx context.Context, path string) (Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pack{}, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return Pack{}, fmt.Errorf("stat pack: %w", err)
	}
	return Read(ctx, f, st.Size())
}

// Tray receives imported stickers. *scrapbook.Session implements it.
type Tray interface {
	AddToTray(dataURIs ...string)
}

// Import adds every sticker of the pack at path to the tray and returns how
// many were added.
func Import(ctx context.Context, path string, tray Tray) (int, error) {
	p, err := Open(ctx, path)
	if err != nil {
		return 0, err
	}
	uris := p.DataURIs()
	tray.AddToTray(uris...)
	applog.WithOperation(applog.WithComponent("stickerpack"), "import").
		Info("sticker pack imported", slog.String("pack", p.Manifest.Name), slog.Int("stickers", len(uris)))
	return len(uris), nil
}

// Write zips the given data URIs into a pack named name. Stickers are
// stored as sticker-<n>.<ext> in order.
func Write(w io.Writer, name string, dataURIs []string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("pack name is required")
	}
	zw := zip.NewWriter(w)
	m := Manifest{Name: name, Version: FormatVersion, Created: time.Now().UTC().Truncate(time.Second), Stickers: []Entry{}}
	for i, uri := range dataURIs {
		mimeType, data, err := upload.ParseDataURI(uri)
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("sticker %d: %w", i+1, err)
		}
		file := fmt.Sprintf("sticker-%d%s", i+1, extFor(mimeType))
		fw, err := zw.Create(file)
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("add %s: %w", file, err)
		}
		if _, err := fw.Write(data); err != nil {
			_ = zw.Close()
			return fmt.Errorf("write %s: %w", file, err)
		}
		m.Stickers = append(m.Stickers, Entry{File: file})
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode manifest: %w", err)
	}
	mw, err := zw.Create(ManifestName)
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := mw.Write(raw); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish zip: %w", err)
	}
	return nil
}

// Export writes the tray to a pack file at destZipPath.
func Export(destZipPath, name string, dataURIs []string) error {
	l := applog.WithOperation(applog.WithComponent("stickerpack"), "export")
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	var buf bytes.Buffer
	if err := Write(&buf, name, dataURIs); err != nil {
		l.Error("pack build failed", slog.Any("err", err))
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	if err := os.WriteFile(destZipPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}
	l.Info("sticker pack exported", slog.Int("stickers", len(dataURIs)), slog.String("zip", destZipPath))
	return nil
}

func extFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/svg+xml":
		return ".svg"
	}
	if sub, ok := strings.CutPrefix(mimeType, "image/"); ok && sub != "" {
		return "." + sub
	}
	return ".img"
}
