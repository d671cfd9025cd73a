// Package log configures log/slog for the binding. It adds a TRACE level
// below DEBUG and gates TRACE records per target, so hot paths in the
// marshaling layer stay silent unless their target is explicitly enabled.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/smbc-go/smbc/config"
)

// LevelTrace sits below slog.LevelDebug.
const LevelTrace = slog.LevelDebug - 4

// TargetKey is the attribute that carries a record's target, e.g. "smbc/cutil".
const TargetKey = "target"

// loggers is the default logger together with its per-target children.
// SetDefault replaces the whole set, which drops every cached child.
type loggers struct {
	base *slog.Logger

	mu      sync.RWMutex
	targets map[string]*slog.Logger
}

var current atomic.Pointer[loggers]

func init() {
	l, err := New(config.Default().Logging, os.Stderr)
	if err != nil {
		panic(err)
	}
	SetDefault(l)
}

// Default returns the logger used by the binding's internal packages.
func Default() *slog.Logger {
	return current.Load().base
}

// SetDefault replaces the logger used by the binding's internal packages.
// It does not touch slog.Default.
func SetDefault(l *slog.Logger) {
	if l == nil {
		return
	}
	current.Store(&loggers{base: l, targets: make(map[string]*slog.Logger)})
}

// For returns the default logger tagged with target. The result is cached
// until the next SetDefault, so repeated calls do not allocate.
func For(target string) *slog.Logger {
	s := current.Load()
	s.mu.RLock()
	l, ok := s.targets[target]
	s.mu.RUnlock()
	if ok {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.targets[target]; ok {
		return l
	}
	l = s.base.With(TargetKey, target)
	s.targets[target] = l
	return l
}

// New builds a logger writing to w according to cfg.
func New(cfg config.Logging, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	for _, p := range cfg.TraceTargets {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid trace target pattern %q", p)
		}
	}

	opts := &slog.HandlerOptions{
		// The target handler does the real filtering.
		Level:       LevelTrace,
		ReplaceAttr: replaceLevel,
	}
	var base slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		base = slog.NewTextHandler(w, opts)
	case "json":
		base = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(NewTargetHandler(base, level, cfg.TraceTargets)), nil
}

// ParseLevel accepts "trace" in addition to the names slog understands.
// The empty string means INFO.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return slog.LevelInfo, nil
	case "trace":
		return LevelTrace, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

// TargetHandler passes records at or above its level straight through.
// Records below it, down to LevelTrace, pass only when the handler's target
// matches one of the trace patterns. Only a top-level TargetKey attribute
// sets the target; one added inside a group is ordinary data.
type TargetHandler struct {
	next     slog.Handler
	level    slog.Level
	patterns []string
	target   string
	matched  bool
	groups   int
}

// NewTargetHandler wraps next. next must itself accept LevelTrace records.
func NewTargetHandler(next slog.Handler, level slog.Level, patterns []string) *TargetHandler {
	return &TargetHandler{next: next, level: level, patterns: patterns}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TargetHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= h.level {
		return h.next.Enabled(ctx, level)
	}
	if level < LevelTrace || !h.matched {
		return false
	}
	return h.next.Enabled(ctx, level)
}

// Handle forwards the record.
func (h *TargetHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.next.Handle(ctx, record)
}

// WithAttrs picks up a top-level TargetKey attribute, if present, as the new target.
func (h *TargetHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.next = h.next.WithAttrs(attrs)
	if h.groups > 0 {
		return &clone
	}
	for _, a := range attrs {
		if a.Key == TargetKey {
			clone.target = a.Value.String()
			clone.matched = matchTarget(h.patterns, clone.target)
		}
	}
	return &clone
}

// WithGroup returns a new TargetHandler with the given group name.
func (h *TargetHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.next = h.next.WithGroup(name)
	if name != "" {
		clone.groups++
	}
	return &clone
}

func matchTarget(patterns []string, target string) bool {
	for _, p := range patterns {
		// Patterns are validated in New; a malformed one simply never matches.
		if ok, _ := doublestar.Match(p, target); ok {
			return true
		}
	}
	return false
}
