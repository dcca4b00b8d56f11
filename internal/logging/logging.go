// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured loggers used by the CLI and the
// batch driver on top of go-logger.
package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/pdiddy/docx2html/pkg/types"
)

// Logger is the leveled logging contract used across the module. Extra
// args are key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Provider hands out named child loggers of one root logger.
type Provider struct {
	root *glog.BaseLogger
}

// New constructs a provider from cfg. An empty format selects console
// output; unknown formats are rejected.
func New(cfg types.LogConfig) (*Provider, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q: use json, console or pretty", cfg.Format)
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// Get returns the logger for a component. A nil provider yields a no-op
// logger.
func (p *Provider) Get(name string) Logger {
	if p == nil {
		return NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return p.root
	}
	return p.root.GetLogger(name)
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}

// NoOp returns a logger that discards everything.
func NoOp() Logger { return noop{} }

type noop struct{}

func (noop) Debug(string, ...any) {}
func (noop) Info(string, ...any)  {}
func (noop) Warn(string, ...any)  {}
func (noop) Error(string, ...any) {}
