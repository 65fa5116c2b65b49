package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the merge command line. Only flags the user set override the
// YAML file and environment.
type Flags struct {
	ConfigPath  string
	EnvFile     string
	Mode        string
	HeaderRow   int
	JoinKey     string
	Sheets      []string
	OutputPath  string
	Preview     bool
	PreviewRows int
	LogLevel    string
	LogMode     string
	LogSink     string
	LogFile     string
}

// Register defines the flags on fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	def := Default()
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "YAML request file (files, sheets, mode, headerRow, joinKey, output, log)")
	fs.StringVar(&f.EnvFile, "env-file", ".env", "dotenv file with SHEET_MERGER_* variables")
	fs.StringVarP(&f.Mode, "mode", "m", def.Mode, "merge mode: vertical (stack rows) or horizontal (join on key)")
	fs.IntVarP(&f.HeaderRow, "header-row", "r", def.HeaderRow, "1-based header row for vertical merge (1-100)")
	fs.StringVarP(&f.JoinKey, "key", "k", "", "join key column for horizontal merge")
	fs.StringArrayVarP(&f.Sheets, "sheet", "s", nil, "sheet to merge as FILE:SHEET, repeatable; files without one use all sheets")
	fs.StringVarP(&f.OutputPath, "out", "o", def.OutputPath, "output workbook")
	fs.BoolVar(&f.Preview, "preview", false, "print a preview of the result to stderr")
	fs.IntVar(&f.PreviewRows, "preview-rows", def.PreviewRows, "rows shown in the preview")
	fs.StringVar(&f.LogLevel, "log-level", def.Log.Level, "log level: DEBUG, INFO, WARN, ERROR")
	fs.StringVar(&f.LogMode, "log-mode", def.Log.Mode, "log mode: SIMPLE, FULL")
	fs.StringVar(&f.LogSink, "log-sink", def.Log.Sink, "log sink: CONSOLE, FILE, MULTI")
	fs.StringVar(&f.LogFile, "log-file", "", "log file for FILE and MULTI sinks")
}

// Resolve builds the configuration: defaults, then the YAML file, then the
// environment, then flags set on fs, then positional files.
func Resolve(fs *pflag.FlagSet, f *Flags, args []string) (*Config, error) {
	cfg := Default()
	if f.ConfigPath != "" {
		loaded, err := LoadFile(f.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv(f.EnvFile); err != nil {
		return nil, err
	}

	if fs.Changed("mode") {
		cfg.Mode = f.Mode
	}
	if fs.Changed("header-row") {
		cfg.HeaderRow = f.HeaderRow
	}
	if fs.Changed("key") {
		cfg.JoinKey = f.JoinKey
	}
	if fs.Changed("out") {
		cfg.OutputPath = f.OutputPath
	}
	if fs.Changed("preview") {
		cfg.Preview = f.Preview
	}
	if fs.Changed("preview-rows") {
		cfg.PreviewRows = f.PreviewRows
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if fs.Changed("log-mode") {
		cfg.Log.Mode = f.LogMode
	}
	if fs.Changed("log-sink") {
		cfg.Log.Sink = f.LogSink
	}
	if fs.Changed("log-file") {
		cfg.Log.Filename = f.LogFile
	}

	cfg.AddFiles(args)
	if err := cfg.AddSheets(f.Sheets); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
