// Package logging wraps slog with agentsync's defaults and attribute helpers.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level aliases so callers need not import slog for the common levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// current holds the process-wide logger; validation workers read it
// concurrently.
var current atomic.Pointer[slog.Logger]

// Options configures New.
type Options struct {
	Level slog.Level
	// Output defaults to os.Stderr so reports on stdout stay clean.
	Output    io.Writer
	JSON      bool
	AddSource bool
}

// DefaultOptions logs warnings and above as text on stderr. Skips and
// per-framework notices only appear with --verbose.
func DefaultOptions() Options {
	return Options{Level: LevelWarn, Output: os.Stderr}
}

// ParseLevel maps debug, info, warn or error to a slog.Level. Anything else
// yields info.
func ParseLevel(name string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return LevelInfo
	}
	return lvl
}

// New builds a text or JSON logger from opts.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: opts.Level, AddSource: opts.AddSource}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, ho))
	}
	return slog.New(slog.NewTextHandler(out, ho))
}

// Default returns the process logger, installing one built from
// DefaultOptions on first use.
func Default() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	current.CompareAndSwap(nil, New(DefaultOptions()))
	return current.Load()
}

// SetDefault replaces the process logger and slog's default.
func SetDefault(logger *slog.Logger) {
	current.Store(logger)
	slog.SetDefault(logger)
}

type loggerKey struct{}

// NewContext attaches logger to ctx. The CLI stores the configured logger
// here before dispatching to a command.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or nil.
func FromContext(ctx context.Context) *slog.Logger {
	l, _ := ctx.Value(loggerKey{}).(*slog.Logger)
	return l
}

// WithContext prefers the logger carried by ctx over the process logger.
func WithContext(ctx context.Context) *slog.Logger {
	if l := FromContext(ctx); l != nil {
		return l
	}
	return Default()
}

func Debug(msg string, args ...any) { Default().Debug(msg, args...) }
func Info(msg string, args ...any) { Default().Info(msg, args...) }
func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

// Attribute keys shared by the sync and validation engines.
const (
	KeyFramework = "framework"
	KeyDocument  = "document"
	KeyPath      = "path"
	KeyOperation = "operation"
	KeyCount     = "count"
	KeySeverity  = "severity"
	KeyPattern   = "pattern"
	KeyError     = "error"
)

// Framework names a mapping entry.
func Framework(name string) slog.Attr { return slog.String(KeyFramework, name) }

// Document names an agent definition by its frontmatter name.
func Document(name string) slog.Attr { return slog.String(KeyDocument, name) }

func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }
func Pattern(glob string) slog.Attr { return slog.String(KeyPattern, glob) }
func Severity(sev string) slog.Attr { return slog.String(KeySeverity, sev) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }

// Err is the empty attribute for a nil error, which slog drops.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}
