/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable YAML configuration, a local .env file
// and SAJ_* environment overrides, in that order of increasing precedence.
// The configuration stores preferences only; journal content is never written.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type GeneralConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

// CanvasConfig sizes the scrapbook surface in logical pixels.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // palette id
}

type UploadConfig struct {
	MaxPhotos int `yaml:"max_photos"`
}

type ExportConfig struct {
	DPI     int    `yaml:"dpi"`
	FontDir string `yaml:"font_dir"` // optional directory of .ttf/.otf files
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is persisted to config.yaml in the user config directory.
// config_version: bump when the structure changes incompatibly.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Upload        UploadConfig  `yaml:"upload"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system"},
		Canvas:        CanvasConfig{Width: 800, Height: 600, Background: "sky-blue"},
		Upload:        UploadConfig{MaxPhotos: 10},
		Export:        ExportConfig{DPI: 144},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvTheme        = "SAJ_THEME"
	EnvCanvasWidth  = "SAJ_CANVAS_WIDTH"
	EnvCanvasHeight = "SAJ_CANVAS_HEIGHT"
	EnvBackground   = "SAJ_BACKGROUND"
	EnvMaxPhotos    = "SAJ_MAX_PHOTOS"
	EnvExportDPI    = "SAJ_EXPORT_DPI"
	EnvFontDir      = "SAJ_FONT_DIR"
	EnvLogLevel     = "SAJ_LOG_LEVEL"
	EnvLogFormat    = "SAJ_LOG_FORMAT"
	EnvLogSource    = "SAJ_LOG_SOURCE"
	EnvLogFile      = "SAJ_LOG_FILE"
)

// DotEnvFile is looked up in the working directory by Load.
const DotEnvFile = ".env"

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "StudyJournal")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "StudyJournal")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "studyjournal")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "studyjournal")
		}
	}
	if base == "" || base == "StudyJournal" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config from ConfigPath.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path (a missing file is fine), merges it over
// the defaults, loads .env without clobbering real env vars, and applies
// environment overrides. A malformed file is reported but defaults still apply.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	var loadErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = fmt.Errorf("parse %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		loadErr = fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := os.Stat(DotEnvFile); err == nil {
		if err := godotenv.Load(DotEnvFile); err != nil && loadErr == nil {
			loadErr = fmt.Errorf("load %s: %w", DotEnvFile, err)
		}
	}
	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return cfg, loadErr
}

// Save writes the config YAML to ConfigPath.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg as YAML to path, creating the directory if needed.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if s := strings.TrimSpace(src.General.Theme); s != "" {
		dst.General.Theme = strings.ToLower(s)
	}
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if s := strings.TrimSpace(src.Canvas.Background); s != "" {
		dst.Canvas.Background = s
	}
	if src.Upload.MaxPhotos > 0 {
		dst.Upload.MaxPhotos = src.Upload.MaxPhotos
	}
	if src.Export.DPI > 0 {
		dst.Export.DPI = src.Export.DPI
	}
	if s := strings.TrimSpace(src.Export.FontDir); s != "" {
		dst.Export.FontDir = s
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := envStr(EnvTheme); v != "" {
		cfg.General.Theme = strings.ToLower(v)
	}
	if n, ok := envInt(EnvCanvasWidth); ok {
		cfg.Canvas.Width = n
	}
	if n, ok := envInt(EnvCanvasHeight); ok {
		cfg.Canvas.Height = n
	}
	if v := envStr(EnvBackground); v != "" {
		cfg.Canvas.Background = v
	}
	if n, ok := envInt(EnvMaxPhotos); ok {
		cfg.Upload.MaxPhotos = n
	}
	if n, ok := envInt(EnvExportDPI); ok {
		cfg.Export.DPI = n
	}
	if v := envStr(EnvFontDir); v != "" {
		cfg.Export.FontDir = v
	}
	if v := envStr(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := envStr(EnvLogFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := envStr(EnvLogSource); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := envStr(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
}

// normalize replaces non-positive numbers that slipped in through env vars.
func normalize(cfg *AppConfig) {
	d := Defaults()
	if cfg.Canvas.Width <= 0 {
		cfg.Canvas.Width = d.Canvas.Width
	}
	if cfg.Canvas.Height <= 0 {
		cfg.Canvas.Height = d.Canvas.Height
	}
	if cfg.Upload.MaxPhotos <= 0 {
		cfg.Upload.MaxPhotos = d.Upload.MaxPhotos
	}
	if cfg.Export.DPI <= 0 {
		cfg.Export.DPI = d.Export.DPI
	}
}

func envStr(key string) string { return strings.TrimSpace(os.Getenv(key)) }

func envInt(key string) (int, bool) {
	v := envStr(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

var overrideKeys = map[string]string{
	"general.theme":     EnvTheme,
	"canvas.width":      EnvCanvasWidth,
	"canvas.height":     EnvCanvasHeight,
	"canvas.background": EnvBackground,
	"upload.max_photos": EnvMaxPhotos,
	"export.dpi":        EnvExportDPI,
	"export.font_dir":   EnvFontDir,
	"logging.level":     EnvLogLevel,
	"logging.format":    EnvLogFormat,
	"logging.source":    EnvLogSource,
	"logging.file":      EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := overrideKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
