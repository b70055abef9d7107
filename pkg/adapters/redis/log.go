package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/unixtime/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Log implements ports.OutputLog on a Redis list, so every process pointed
// at the same key shares one log. New lines are also published on
// Channel() for followers.
type Log struct {
	client *backend.Client
	key    string
	name   string
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Log)

// WithKey sets the list key.
func WithKey(key string) Option {
	return func(l *Log) {
		l.key = key
	}
}

// WithName sets the display name of the log.
func WithName(name string) Option {
	return func(l *Log) {
		l.name = name
	}
}

// WithTTL expires the whole log after ttl without appends. Zero keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(l *Log) {
		l.ttl = ttl
	}
}

// WithLogger sets the logger used for Show markers.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

// New creates a Redis log with its own client.
func New(address, password string, db int, opts ...Option) *Log {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis log from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Log {
	l := &Log{
		client: client,
		key:    "unixtime:log",
		name:   domain.LogName,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Log) Name() string { return l.name }

// Channel is the pub/sub channel new lines are published on.
func (l *Log) Channel() string { return l.key + ":lines" }

// Ping checks the connection.
func (l *Log) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// AppendLine pushes line to the list and publishes it.
func (l *Log) AppendLine(ctx context.Context, line string) error {
	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, l.key, line)
	if l.ttl > 0 {
		pipe.Expire(ctx, l.key, l.ttl)
	}
	pipe.Publish(ctx, l.Channel(), line)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to log: %w", err)
	}
	return nil
}

// Show has nothing to bring forward; followers already received the line on Channel().
func (l *Log) Show(ctx context.Context) error {
	l.logger.DebugContext(ctx, "Log Shown", "key", l.key)
	return nil
}

// Lines returns the whole list.
func (l *Log) Lines(ctx context.Context) ([]string, error) {
	lines, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	return lines, nil
}

// Follow streams lines appended after the subscription is established.
// The channel closes when ctx is done.
func (l *Log) Follow(ctx context.Context) (<-chan string, error) {
	sub := l.client.Subscribe(ctx, l.Channel())
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
