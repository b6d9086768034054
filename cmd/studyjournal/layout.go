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
	"io"

	"github.com/spf13/cobra"

	"studyjournal/internal/gallery"
)

func newLayoutCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "layout [photo...]",
		Short: "Show the gallery card layout for a set of photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			photos, err := loadPhotos(cmd.Context(), args, st.cfg.Upload.MaxPhotos)
			if err != nil {
				return err
			}
			uris := make([]string, len(photos))
			names := make(map[string]string, len(photos))
			for i, img := range photos {
				uris[i] = img.DataURI
				names[img.DataURI] = img.Name
			}
			printLayout(cmd.OutOrStdout(), gallery.LayoutFor(uris), names)
			if label := gallery.PhotoLabel(len(uris)); label != "" {
				fmt.Fprintln(cmd.OutOrStdout(), label)
			}
			return nil
		},
	}
}

func printLayout(w io.Writer, pl gallery.PhotoLayout, names map[string]string) {
	fmt.Fprintf(w, "layout: %s, columns=%d\n", pl.Kind, pl.Columns)
	for i, c := range pl.Cells {
		line := fmt.Sprintf("  [%d] %s", i+1, names[c.Photo])
		if c.Badge != "" {
			line += "  " + c.Badge
		}
		fmt.Fprintln(w, line)
	}
}
