// Package logging builds the CLI's slog logger from command line flags.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"
)

const (
	LevelFlag  = "loglevel"
	FormatFlag = "logformat"

	FormatText = "text"
	FormatJSON = "json"
)

// RegisterFlags adds the logging flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(LevelFlag, "warn", "set the log level (debug, info, warn, error)")
	fs.StringP(FormatFlag, "f", FormatText, "set the log format (text, json)")
}

// New returns a logger writing to w, configured from the flags in fs.
func New(fs *pflag.FlagSet, w io.Writer) (*slog.Logger, error) {
	level, err := fs.GetString(LevelFlag)
	if err != nil {
		return nil, err
	}
	format, err := fs.GetString(FormatFlag)
	if err != nil {
		return nil, err
	}
	return NewLogger(w, level, format)
}

// NewLogger returns a logger for the named level and format.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	case FormatText:
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return slog.New(handler), nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", name)
	}
}
