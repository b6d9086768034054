/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package upload turns picked or dropped files into embeddable image
// references. Non-image files are dropped without an error.
package upload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"mime"
	"os"
	"path/filepath"
	"strings"

	// Decoders accepted for uploads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxFiles caps one batch.
const DefaultMaxFiles = 10

var ErrNotDataURI = errors.New("not a base64 data URI")

// Source is one picked file. Read is called on a loader goroutine.
type Source struct {
	Name string
	Read func() ([]byte, error)
}

func FromPath(path string) Source {
	return Source{Name: filepath.Base(path), Read: func() ([]byte, error) { return os.ReadFile(path) }}
}

func FromBytes(name string, data []byte) Source {
	return Source{Name: name, Read: func() ([]byte, error) { return data, nil }}
}

// Image is a decoded upload ready to be placed.
type Image struct {
	Name    string
	MIME    string
	DataURI string
	Width   int
	Height  int
}

// Filter drops files whose extension is not an image type and keeps at most
// max of the rest (max <= 0 keeps all). Content is checked later by Loader.
func Filter(srcs []Source, max int) []Source {
	out := make([]Source, 0, len(srcs))
	for _, s := range srcs {
		if max > 0 && len(out) == max {
			break
		}
		if looksLikeImage(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

func looksLikeImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff":
		return true
	case "":
		return false
	}
	return strings.HasPrefix(mime.TypeByExtension(ext), "image/")
}

// Sniff decodes the image header of data and returns the MIME type and size.
func Sniff(data []byte) (string, int, int, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("decode image header: %w", err)
	}
	return "image/" + format, cfg.Width, cfg.Height, nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI splits a base64 data URI into its MIME type and payload.
func ParseDataURI(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	return mimeType, data, nil
}

// DecodeDataURI decodes the image behind a data URI.
func DecodeDataURI(s string) (image.Image, error) {
	_, data, err := ParseDataURI(s)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
