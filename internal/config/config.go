package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/ryabkov82/sheet-merger/internal/log"
	"github.com/ryabkov82/sheet-merger/internal/merger"
	"github.com/ryabkov82/sheet-merger/internal/preview"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
	"gopkg.in/yaml.v3"
)

// Environment variables read after the YAML file and before flags.
const (
	EnvLogLevel = "SHEET_MERGER_LOG_LEVEL"
	EnvLogMode  = "SHEET_MERGER_LOG_MODE"
	EnvLogSink  = "SHEET_MERGER_LOG_SINK"
	EnvLogFile  = "SHEET_MERGER_LOG_FILE"
)

// FileOption is one input workbook. An empty Sheets selects every sheet.
type FileOption struct {
	Path   string   `yaml:"path"`
	Sheets []string `yaml:"sheets,omitempty"`
}

// Config is a complete merge invocation.
type Config struct {
	Files       []*FileOption `yaml:"files"`
	OutputPath  string        `yaml:"output"`
	Mode        string        `yaml:"mode"`
	HeaderRow   int           `yaml:"headerRow"`
	JoinKey     string        `yaml:"joinKey,omitempty"`
	Preview     bool          `yaml:"preview"`
	PreviewRows int           `yaml:"previewRows"`
	Log         *log.Options  `yaml:"log"`
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	return &Config{
		OutputPath:  workbook.DefaultFileName,
		Mode:        merger.Vertical.String(),
		HeaderRow:   merger.MinHeaderRow,
		PreviewRows: preview.DefaultRows,
		Log: &log.Options{
			Mode:  "SIMPLE",
			Level: "WARN",
			Sink:  "CONSOLE",
		},
	}
}

// LoadFile reads a YAML request file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if cfg.Log == nil {
		cfg.Log = Default().Log
	}
	return cfg, nil
}

// LoadEnv applies envFile (if it exists) and the SHEET_MERGER_* variables.
// Variables already set in the process win over envFile.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to load %s", envFile)
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogMode); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv(EnvLogSink); v != "" {
		c.Log.Sink = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.Filename = v
	}
	return nil
}

// AddFiles appends input workbooks given on the command line. Paths already
// listed are skipped.
func (c *Config) AddFiles(paths []string) {
next:
	for _, path := range paths {
		for _, f := range c.Files {
			if filepath.Clean(f.Path) == filepath.Clean(path) {
				continue next
			}
		}
		c.Files = append(c.Files, &FileOption{Path: path})
	}
}

// AddSheets applies "FILE:SHEET" selections. FILE is matched against the
// base names of the input files.
func (c *Config) AddSheets(specs []string) error {
	for _, spec := range specs {
		// sheet names cannot contain ':', file paths can
		i := strings.LastIndex(spec, ":")
		if i <= 0 || i == len(spec)-1 {
			return errors.Errorf("invalid sheet selection %q, want FILE:SHEET", spec)
		}
		name, sheet := filepath.Base(spec[:i]), spec[i+1:]
		f := c.file(name)
		if f == nil {
			return errors.Errorf("sheet selection %q names a file that is not an input", spec)
		}
		f.Sheets = append(f.Sheets, sheet)
	}
	return nil
}

func (c *Config) file(name string) *FileOption {
	for _, f := range c.Files {
		if filepath.Base(f.Path) == name {
			return f
		}
	}
	return nil
}

// Validate checks the configuration before any file is read.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return errors.New("at least one input file is required")
	}
	seen := make(map[string]string, len(c.Files))
	for _, f := range c.Files {
		if f.Path == "" {
			return errors.New("input file with empty path")
		}
		name := filepath.Base(f.Path)
		if prev, ok := seen[name]; ok {
			return errors.Errorf("input files %s and %s share the name %s", prev, f.Path, name)
		}
		seen[name] = f.Path
	}

	mode, err := merger.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if mode == merger.Vertical && (c.HeaderRow < merger.MinHeaderRow || c.HeaderRow > merger.MaxHeaderRow) {
		return errors.Errorf("header row must be within [%d, %d], got %d", merger.MinHeaderRow, merger.MaxHeaderRow, c.HeaderRow)
	}
	if c.PreviewRows < 0 {
		return errors.Errorf("preview rows must not be negative, got %d", c.PreviewRows)
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	c.OutputPath = filepath.Clean(c.OutputPath)
	return nil
}
