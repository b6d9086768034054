/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"studyjournal/internal/config"
	"studyjournal/internal/crash"
	applog "studyjournal/internal/log"
	"studyjournal/internal/ui"
	"studyjournal/internal/version"
)

const appName = "Study Abroad Journal"

// cliState is what a running command knows about itself.
type cliState struct {
	configPath string
	logLevel   string
	cfg        config.AppConfig
	last       string // last command, reported on crash
}

func (s *cliState) CrashSummary() string {
	return fmt.Sprintf("command: %s", s.last)
}

func newRootCmd(st *cliState) *cobra.Command {
	root := &cobra.Command{
		Use:               "studyjournal",
		Short:             appName,
		Long:              appName + ": journal entries, scrapbooks and exports.",
		PersistentPreRunE: st.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "config file (default: user config dir)")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(newVersionCmd(), newUICmd(st), newDemoCmd(st), newLayoutCmd(st))
	return root
}

// setup loads config and initializes logging before any subcommand runs.
func (s *cliState) setup(cmd *cobra.Command, _ []string) error {
	s.last = cmd.CommandPath()
	var err error
	if s.configPath != "" {
		s.cfg, err = config.LoadFile(s.configPath)
	} else {
		s.cfg, err = config.Load()
	}
	opts := applog.Options{
		Level:     s.cfg.Logging.Level,
		Format:    s.cfg.Logging.Format,
		AddSource: s.cfg.Logging.Source,
		File:      s.cfg.Logging.File,
	}
	if lvl := strings.TrimSpace(s.logLevel); lvl != "" {
		opts.Level = lvl
	}
	applog.Init(opts)
	l := applog.WithComponent("cli")
	if err != nil {
		// defaults and env overrides still apply
		l.Warn("config not fully loaded", slog.Any("err", err))
	}
	l.Debug("start", slog.String("cmd", s.last))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), appName)
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newUICmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Launch the desktop app (build with -tags fyne)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return ui.Run(st.cfg)
		},
	}
}

func main() {
	// logging starts from the environment until config is loaded
	applog.Init(applog.FromEnv())
	st := &cliState{}
	defer crash.Recover(st)

	if err := newRootCmd(st).Execute(); err != nil {
		applog.WithComponent("cli").Error("command failed", slog.String("cmd", st.last), slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
