/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setEnv(t *testing.T, key, val string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Setenv(key, val)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	d := Defaults()
	if cfg.Canvas != d.Canvas || cfg.Upload != d.Upload {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
	if cfg.Upload.MaxPhotos != 10 || cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Fatalf("unexpected default values: %#v", cfg)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Defaults()
	cfg.General.Theme = "dark"
	cfg.Canvas.Background = "sunset"
	cfg.Upload.MaxPhotos = 4
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.General.Theme != "dark" || got.Canvas.Background != "sunset" || got.Upload.MaxPhotos != 4 {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestLoadFileMalformedKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("canvas: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Canvas.Width != 800 {
		t.Fatalf("defaults not applied on parse error: %#v", cfg.Canvas)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := AppConfig{}
	src.Logging.Level = "DEBUG"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/saj.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/saj.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestMergeIgnoresZeroValues(t *testing.T) {
	dst := Defaults()
	mergeInto(&dst, &AppConfig{})
	if dst.Canvas.Width != 800 || dst.Upload.MaxPhotos != 10 || dst.General.Theme != "system" {
		t.Fatalf("zero values overwrote defaults: %#v", dst)
	}
}

func TestEnvOverrides(t *testing.T) {
	setEnv(t, EnvMaxPhotos, "3")
	setEnv(t, EnvBackground, "ocean")
	setEnv(t, EnvLogLevel, "ERROR")
	setEnv(t, EnvLogSource, "yes")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Upload.MaxPhotos != 3 {
		t.Fatalf("MaxPhotos = %d, want 3", cfg.Upload.MaxPhotos)
	}
	if cfg.Canvas.Background != "ocean" {
		t.Fatalf("Background = %q, want ocean", cfg.Canvas.Background)
	}
	if cfg.Logging.Level != "error" || !cfg.Logging.Source {
		t.Fatalf("logging overrides not applied: %#v", cfg.Logging)
	}
}

func TestEnvOverrideInvalidNumberIgnored(t *testing.T) {
	setEnv(t, EnvCanvasWidth, "wide")
	setEnv(t, EnvCanvasHeight, "-5")
	cfg, _ := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Fatalf("invalid env numbers should fall back to defaults: %#v", cfg.Canvas)
	}
}

func TestDotEnvDoesNotOverrideRealEnv(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("SAJ_EXPORT_DPI=300\nSAJ_FONT_DIR=/fonts/from/dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	setEnv(t, EnvExportDPI, "200")
	// godotenv sets variables that were unset; register cleanup for the one it adds.
	setEnv(t, EnvFontDir, "")
	_ = os.Unsetenv(EnvFontDir)
	cfg, err := LoadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Export.DPI != 200 {
		t.Fatalf("DPI = %d, want real env 200", cfg.Export.DPI)
	}
	if cfg.Export.FontDir != "/fonts/from/dotenv" {
		t.Fatalf("FontDir = %q, want value from .env", cfg.Export.FontDir)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	setEnv(t, EnvTheme, "dark")
	if env, ok := EnvOverrideFor("general.theme"); !ok || env != EnvTheme {
		t.Fatalf("EnvOverrideFor(general.theme) = %q,%v", env, ok)
	}
	if _, ok := EnvOverrideFor("unknown.key"); ok {
		t.Fatalf("unknown key should not report an override")
	}
}
