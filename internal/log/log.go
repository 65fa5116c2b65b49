// Package log builds the zap loggers used across sheet-merger.
package log

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var zaplogger *zap.Logger

func init() {
	if err := Init(&Options{Mode: "SIMPLE", Level: "WARN"}); err != nil {
		panic(err)
	}
}

// Options configures the global logger.
type Options struct {
	// Log mode: SIMPLE, FULL.
	Mode string `yaml:"mode"`
	// Log level: DEBUG, INFO, WARN, ERROR.
	Level string `yaml:"level"`
	// Log sink: CONSOLE, FILE, MULTI.
	Sink string `yaml:"sink"`
	// Log file, used by FILE and MULTI sinks.
	Filename string `yaml:"filename"`
}

type SinkType int

const (
	SinkConsole SinkType = iota // default
	SinkFile
	SinkMulti
)

var sinkMap = map[string]SinkType{
	"":        SinkConsole,
	"CONSOLE": SinkConsole,
	"FILE":    SinkFile,
	"MULTI":   SinkMulti,
}

var levelMap = map[string]zapcore.Level{
	"DEBUG": zapcore.DebugLevel,
	"INFO":  zapcore.InfoLevel,
	"WARN":  zapcore.WarnLevel,
	"ERROR": zapcore.ErrorLevel,
}

type modeEncoder func() zapcore.Encoder

var modeMap = map[string]modeEncoder{
	"SIMPLE": getSimpleEncoder,
	"FULL":   getFullEncoder,
}

func GetSinkType(sink string) (SinkType, error) {
	sinkType, ok := sinkMap[strings.ToUpper(sink)]
	if !ok {
		return SinkConsole, fmt.Errorf("illegal log sink: %s", sink)
	}
	return sinkType, nil
}

// Init replaces the global logger according to opts.
func Init(opts *Options) error {
	logger, err := New(opts)
	if err != nil {
		return err
	}
	zaplogger = logger
	return nil
}

// New builds a logger without touching the global one.
func New(opts *Options) (*zap.Logger, error) {
	sinkType, err := GetSinkType(opts.Sink)
	if err != nil {
		return nil, err
	}
	encoder, level, err := getEncoderAndLevel(opts.Mode, opts.Level)
	if err != nil {
		return nil, err
	}

	var ws zapcore.WriteSyncer
	switch sinkType {
	case SinkFile:
		ws, err = createFileWriter(opts.Filename)
	case SinkMulti:
		var fileSyncer zapcore.WriteSyncer
		fileSyncer, err = createFileWriter(opts.Filename)
		ws = zapcore.NewMultiWriteSyncer(createConsoleWriter(), fileSyncer)
	default:
		ws = createConsoleWriter()
	}
	if err != nil {
		return nil, fmt.Errorf("create file logger failed: %s", err)
	}

	core := zapcore.NewCore(encoder(), ws, level)
	return zap.New(core, zap.AddCaller()), nil
}

// NewSugar returns a named child of the global logger.
func NewSugar(name string) *zap.SugaredLogger {
	return zaplogger.Named(name).Sugar()
}

// Sync flushes the global logger.
func Sync() {
	_ = zaplogger.Sync()
}

func getEncoderAndLevel(mode, level string) (modeEncoder, zapcore.Level, error) {
	encoder, ok := modeMap[strings.ToUpper(mode)]
	if !ok {
		return nil, zapcore.DebugLevel, fmt.Errorf("illegal log mode: %s", mode)
	}
	zapLevel, ok := levelMap[strings.ToUpper(level)]
	if !ok {
		return nil, zapcore.DebugLevel, fmt.Errorf("illegal log level: %s", level)
	}
	return encoder, zapLevel, nil
}

// stdout carries the JSON status, so console logs go to stderr.
func createConsoleWriter() zapcore.WriteSyncer {
	return zapcore.Lock(zapcore.AddSync(os.Stderr))
}

func createFileWriter(filename string) (zapcore.WriteSyncer, error) {
	if filename == "" {
		return nil, fmt.Errorf("log filename is required for file sink")
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxAge:     30, // days
		MaxBackups: 7,
		LocalTime:  true,
	}), nil
}

func getSimpleEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.CallerKey = ""
	encoderConfig.FunctionKey = ""
	encoderConfig.EncodeTime = nil
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.ConsoleSeparator = "|"
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getFullEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.FunctionKey = "func"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.ConsoleSeparator = "|"
	return zapcore.NewConsoleEncoder(encoderConfig)
}
