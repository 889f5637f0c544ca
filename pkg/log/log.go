// Copyright 2019 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides a structured logger backed by zap. Log context is
// given as alternating key/value pairs:
//
//	log.Info("Planned topology", "nodes", 36, "links", 60)
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the log level.
type Level zapcore.Level

// The supported log levels.
const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

var (
	rootMtx sync.RWMutex
	root    = zap.NewNop()
)

// Setup configures the root logger from cfg. Console output goes to stderr so
// that stdout stays reserved for planned models.
func Setup(cfg Config) error {
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, err := ParseLevel(cfg.Console.Level)
	if err != nil {
		return err
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encoder := zapcore.NewConsoleEncoder(encCfg)
	if cfg.Console.Format == "json" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zapcore.Level(lvl))
	rootMtx.Lock()
	defer rootMtx.Unlock()
	root = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return nil
}

// ParseLevel parses a level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
}

func (l Level) String() string {
	return zapcore.Level(l).String()
}

// Flush writes buffered entries of the root logger.
func Flush() {
	rootMtx.RLock()
	defer rootMtx.RUnlock()
	_ = root.Sync()
}

func rootZap() *zap.Logger {
	rootMtx.RLock()
	defer rootMtx.RUnlock()
	return root
}

// Debug logs at debug level.
func Debug(msg string, ctx ...any) {
	rootZap().Debug(msg, convertCtx(ctx)...)
}

// Info logs at info level.
func Info(msg string, ctx ...any) {
	rootZap().Info(msg, convertCtx(ctx)...)
}

// Error logs at error level.
func Error(msg string, ctx ...any) {
	rootZap().Error(msg, convertCtx(ctx)...)
}

// New creates a logger with the given context.
func New(ctx ...any) Logger {
	return &logger{logger: rootZap().With(convertCtx(ctx)...)}
}

// Root returns the root logger. It's a logger without any context.
func Root() Logger {
	return &logger{logger: rootZap()}
}

// FromZap wraps a zap logger.
func FromZap(l *zap.Logger) Logger {
	return &logger{logger: l}
}

type logger struct {
	logger *zap.Logger
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprint(ctx[i])
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}
