package main

import (
	"path/filepath"
	"time"

	"github.com/ryabkov82/sheet-merger/internal/config"
	"github.com/ryabkov82/sheet-merger/internal/merger"
	"github.com/spf13/cobra"
)

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE...",
		Short: "List the sheets of each workbook",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			start := time.Now()
			uploads, warnings := loadUploads(args)
			found, discoverWarnings := merger.Discover(uploads)
			warnings = append(warnings, discoverWarnings...)

			out := Output{Success: len(found) > 0, Sheets: found, Warnings: warnings}
			if !out.Success {
				out.Error = "no readable workbook"
			}
			finish(out, start)
		},
	}
}

func newColumnsCmd() *cobra.Command {
	var sheets []string
	cmd := &cobra.Command{
		Use:   "columns FILE...",
		Short: "List the join key candidates: the columns of the first selected sheet of the first workbook",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			start := time.Now()
			cfg := config.Default()
			cfg.AddFiles(args)
			if err := cfg.AddSheets(sheets); err != nil {
				finish(fail(Output{}, err), start)
				return
			}

			uploads, warnings := loadUploads(filePaths(cfg))
			found, discoverWarnings := merger.Discover(uploads)
			warnings = append(warnings, discoverWarnings...)

			out := Output{Warnings: warnings}
			columns, err := merger.Columns(uploads, selections(cfg, found))
			if err != nil {
				finish(fail(out, err), start)
				return
			}
			out.Success = true
			out.Columns = columns
			finish(out, start)
		},
	}
	cmd.Flags().StringArrayVarP(&sheets, "sheet", "s", nil, "sheet to use as FILE:SHEET; defaults to the first sheet")
	return cmd
}

func filePaths(cfg *config.Config) []string {
	paths := make([]string, len(cfg.Files))
	for i, f := range cfg.Files {
		paths[i] = f.Path
	}
	return paths
}

// selections lists the sheets to merge in file order. A file with explicit
// sheets uses those, in the order given; any other file uses all its sheets.
func selections(cfg *config.Config, found []merger.FileSheets) []merger.Selection {
	explicit := make(map[string][]string, len(cfg.Files))
	for _, f := range cfg.Files {
		if len(f.Sheets) > 0 {
			explicit[filepath.Base(f.Path)] = f.Sheets
		}
	}

	var sels []merger.Selection
	for _, fs := range found {
		sheets, ok := explicit[fs.File]
		if !ok {
			sels = append(sels, merger.DefaultSelections([]merger.FileSheets{fs})...)
			continue
		}
		for _, sheet := range sheets {
			sels = append(sels, merger.Selection{File: fs.File, Sheet: sheet})
		}
	}
	return sels
}
