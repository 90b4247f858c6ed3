// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is parsed with slog.Level.UnmarshalText; unknown values mean info.
	Level string
	// File, when non-empty, receives a rotated copy of every line.
	File string
}

// New returns a JSON slog.Logger writing to out, and to a rotating file when
// opts.File is set. The returned closer releases the file and is never nil.
func New(out io.Writer, opts Options) (*slog.Logger, io.Closer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = slog.LevelInfo
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 5,
			Compress:   false,
		}
		out = io.MultiWriter(out, rotating)
		closer = rotating
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
