package journal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/udisondev/wolfkin/internal/game/transform"
)

// SlogSink writes one log line per event. Advisories and moon resistance
// log at Info, everything else at Debug unless Verbose is set.
type SlogSink struct {
	Logger  *slog.Logger
	Verbose bool
}

// NewSlogSink uses logger, or the default logger when nil.
func NewSlogSink(logger *slog.Logger, verbose bool) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{Logger: logger, Verbose: verbose}
}

func (s *SlogSink) Emit(e transform.Event) {
	level := slog.LevelDebug
	switch {
	case s.Verbose:
		level = slog.LevelInfo
	case e.Kind == transform.EventAdvisory,
		e.Kind == transform.EventFullMoon,
		e.Kind == transform.EventFullMoonPassed,
		e.Kind == transform.EventDeathHowl:
		level = slog.LevelInfo
	}

	attrs := []slog.Attr{
		slog.Int64("tick", e.Tick),
		slog.String("kind", e.Kind.String()),
	}
	if e.EntityID != 0 {
		attrs = append(attrs, slog.Any("entity", e.EntityID), slog.String("name", e.Entity))
	}
	if e.Form != "" {
		attrs = append(attrs, slog.String("form", e.Form), slog.Int("level", e.Level))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	s.Logger.LogAttrs(context.Background(), level, "werewolf event", attrs...)
}

// Fanout forwards every event to each sink in order.
type Fanout []transform.EventSink

func (f Fanout) Emit(e transform.Event) {
	for _, s := range f {
		if s != nil {
			s.Emit(e)
		}
	}
}

// Tally counts events by kind. Safe for concurrent reads while the
// simulation emits.
type Tally struct {
	mu     sync.Mutex
	counts map[transform.EventKind]int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[transform.EventKind]int)}
}

func (t *Tally) Emit(e transform.Event) {
	t.mu.Lock()
	t.counts[e.Kind]++
	t.mu.Unlock()
}

// Count returns how many events of kind were seen.
func (t *Tally) Count(kind transform.EventKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[kind]
}

// Snapshot returns the counts keyed by kind name.
func (t *Tally) Snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.counts))
	for k, n := range t.counts {
		out[k.String()] = n
	}
	return out
}
