package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ryabkov82/sheet-merger/internal/config"
	"github.com/ryabkov82/sheet-merger/internal/log"
	"github.com/ryabkov82/sheet-merger/internal/merger"
	"github.com/ryabkov82/sheet-merger/internal/preview"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
	"github.com/spf13/cobra"
)

var newMerger = func() merger.Merger {
	return merger.NewEngine(merger.WithLogger(log.NewSugar("merger")))
}

func newMergeCmd() *cobra.Command {
	flags := &config.Flags{}
	cmd := &cobra.Command{
		Use:   "merge [FILE]...",
		Short: "Merge the selected sheets and write the result workbook",
		Example: `  sheet-merger merge a.xlsx b.xlsx --header-row 3
  sheet-merger merge a.xlsx b.xlsx -m horizontal -k 會計科目 -s a.xlsx:Q1 -s b.xlsx:Q1
  sheet-merger merge -c request.yaml --preview`,
		Run: func(cmd *cobra.Command, args []string) {
			start := time.Now()
			finish(runMerge(cmd, flags, args), start)
		},
	}
	flags.Register(cmd.Flags())
	return cmd
}

func runMerge(cmd *cobra.Command, flags *config.Flags, args []string) Output {
	cfg, err := config.Resolve(cmd.Flags(), flags, args)
	if err != nil {
		return fail(Output{}, errors.WithMessage(err, "configuration error"))
	}
	if err := log.Init(cfg.Log); err != nil {
		return fail(Output{}, errors.WithMessage(err, "init log failed"))
	}
	defer log.Sync()
	logger := log.NewSugar("cmd")
	logger.Debugf("loaded config: %+v", cfg)

	uploads, warnings := loadUploads(filePaths(cfg))
	found, discoverWarnings := merger.Discover(uploads)
	warnings = append(warnings, discoverWarnings...)
	out := Output{Warnings: warnings}

	mode, err := merger.ParseMode(cfg.Mode)
	if err != nil {
		return fail(out, err)
	}
	req := &merger.Request{
		Selections: selections(cfg, found),
		Mode:       mode,
		HeaderRow:  cfg.HeaderRow,
		JoinKey:    cfg.JoinKey,
	}

	if mode == merger.Horizontal && req.JoinKey == "" {
		columns, err := merger.Columns(uploads, req.Selections)
		if err != nil {
			return fail(out, errors.WithMessage(err, "cannot offer join keys"))
		}
		out.Columns = columns
		return fail(out, errors.Errorf("horizontal merge needs --key, one of: %s", strings.Join(columns, ", ")))
	}

	res, err := newMerger().Merge(uploads, req)
	if res != nil {
		out.MergeID = res.ID
		out.Warnings = append(out.Warnings, res.Warnings...)
	}
	if err != nil {
		if errors.Is(err, merger.ErrNoResult) {
			return fail(out, errors.New("no merge result was produced, check the files and sheet formats"))
		}
		logger.Errorf("merge failed: %+v", err)
		return fail(out, err)
	}

	if cfg.Preview {
		if err := preview.Render(os.Stderr, res.Table, cfg.PreviewRows); err != nil {
			logger.Warnf("preview failed: %v", err)
		}
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(out, errors.Wrapf(err, "failed to create output dir %s", dir))
		}
	}
	if err := workbook.Save(cfg.OutputPath, res.Table); err != nil {
		return fail(out, err)
	}
	logger.Infof("merge result written to %s (%s)", cfg.OutputPath, workbook.ContentType)

	out.Success = true
	out.OutputFiles = []string{cfg.OutputPath}
	out.RowCount = int64(res.Table.NumRows())
	return out
}
