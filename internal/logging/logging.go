/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Format int

const (
	ConsoleFormat Format = iota
	JSONFormat
)

// ParseFormat accepts "console" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "console":
		return ConsoleFormat, nil
	case "json":
		return JSONFormat, nil
	}
	return ConsoleFormat, fmt.Errorf("unknown log format %q", s)
}

// NewLogger builds a logger writing to w at the given level.
func NewLogger(w io.Writer, level zapcore.Level, format Format) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	if format == JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))

	return zap.New(core, zap.AddCaller())
}

// New builds a stderr logger from configuration strings such as "info" and
// "console".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	return NewLogger(os.Stderr, lvl, f), nil
}
