package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/ryabkov82/sheet-merger/internal/merger"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
	"github.com/spf13/cobra"
)

const version = "0.2.0"

// Output is the JSON status printed on stdout by every command.
type Output struct {
	Success     bool                `json:"success"`
	OutputFiles []string            `json:"output_files,omitempty"`
	Error       string              `json:"error,omitempty"`
	Duration    string              `json:"duration"`
	RowCount    int64               `json:"row_count,omitempty"`
	MergeID     string              `json:"merge_id,omitempty"`
	Sheets      []merger.FileSheets `json:"sheets,omitempty"`
	Columns     []string            `json:"columns,omitempty"`
	Warnings    []merger.Warning    `json:"warnings,omitempty"`
}

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sheet-merger",
		Version:       version,
		Short:         "Merge sheets of several xlsx workbooks into one",
		Long:          "sheet-merger stacks selected sheets row by row (vertical) or joins them side by side on a key column (horizontal), writing the result to a single-sheet workbook.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newSheetsCmd(), newColumnsCmd(), newMergeCmd())

	if err := rootCmd.Execute(); err != nil {
		emitJSON(os.Stdout, Output{Success: false, Error: err.Error(), Duration: "0s"})
		os.Exit(2)
	}
}

// finish prints out and exits non-zero when the command failed.
func finish(out Output, start time.Time) {
	out.Duration = time.Since(start).String()
	printWarnings(os.Stderr, out.Warnings)
	if !out.Success {
		errorColor.Fprintf(os.Stderr, "error: %s\n", out.Error)
	}
	emitJSON(os.Stdout, out)
	if !out.Success {
		os.Exit(1)
	}
}

func fail(out Output, err error) Output {
	out.Success = false
	out.Error = err.Error()
	return out
}

func emitJSON(w io.Writer, out Output) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write JSON output: %v\n", err)
		os.Exit(1)
	}
}

func printWarnings(w io.Writer, warnings []merger.Warning) {
	for _, warning := range warnings {
		warnColor.Fprintf(w, "warning: %s\n", warning)
	}
}

// loadUploads reads input files into memory. Unreadable files are reported as
// warnings and skipped.
func loadUploads(paths []string) ([]*workbook.Upload, []merger.Warning) {
	var (
		uploads  []*workbook.Upload
		warnings []merger.Warning
	)
	for _, path := range paths {
		u, err := workbook.Load(path)
		if err != nil {
			warnings = append(warnings, merger.Warning{File: path, Reason: err.Error()})
			continue
		}
		uploads = append(uploads, u)
	}
	return uploads, warnings
}
