package memory

import (
	"context"
	"sync"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
)

// Log implements ports.OutputLog in memory.
// Safe for concurrent use.
type Log struct {
	name  string
	lines []string
	shown int
	mu    sync.RWMutex
}

// NewLog creates an empty log. An empty name uses domain.LogName.
func NewLog(name string) *Log {
	if name == "" {
		name = domain.LogName
	}
	return &Log{name: name}
}

func (l *Log) Name() string { return l.name }

// AppendLine adds one line to the log.
func (l *Log) AppendLine(ctx context.Context, line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	return nil
}

// Show records that the log was brought to the foreground.
func (l *Log) Show(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shown++
	return nil
}

// Lines returns a copy so callers can't mutate the log.
func (l *Log) Lines(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out, nil
}

// ShowCount returns how many times Show was called.
func (l *Log) ShowCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.shown
}

// LazyLog defers creating its backing log until the first append.
// Reads before that report an empty log.
type LazyLog struct {
	name   string
	create func() (ports.OutputLog, error)

	once sync.Once
	log  ports.OutputLog
	err  error
	mu   sync.Mutex
}

// NewLazyLog wraps create. name is reported before the log exists.
func NewLazyLog(name string, create func() (ports.OutputLog, error)) *LazyLog {
	if name == "" {
		name = domain.LogName
	}
	return &LazyLog{name: name, create: create}
}

func (l *LazyLog) Name() string { return l.name }

// Created reports whether the backing log exists yet.
func (l *LazyLog) Created() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.log != nil
}

func (l *LazyLog) get() (ports.OutputLog, error) {
	l.once.Do(func() {
		log, err := l.create()
		l.mu.Lock()
		l.log, l.err = log, err
		l.mu.Unlock()
	})
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.log, l.err
}

func (l *LazyLog) current() ports.OutputLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.log
}

func (l *LazyLog) AppendLine(ctx context.Context, line string) error {
	log, err := l.get()
	if err != nil {
		return err
	}
	return log.AppendLine(ctx, line)
}

func (l *LazyLog) Show(ctx context.Context) error {
	log, err := l.get()
	if err != nil {
		return err
	}
	return log.Show(ctx)
}

func (l *LazyLog) Lines(ctx context.Context) ([]string, error) {
	if log := l.current(); log != nil {
		return log.Lines(ctx)
	}
	return nil, nil
}
