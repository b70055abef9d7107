package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/unixtime/internal/config"
	"github.com/aretw0/unixtime/pkg/adapters/memory"
	"github.com/aretw0/unixtime/pkg/adapters/redis"
	"github.com/aretw0/unixtime/pkg/persistence/middleware"
	"github.com/aretw0/unixtime/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// newOutputLog builds the configured log. Both backends are created lazily:
// the Redis connection is only checked on the first append.
func newOutputLog(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.OutputLog, func() error, error) {
	if cfg.LogBackend != config.BackendRedis {
		return memory.NewLazyLog(cfg.LogName, func() (ports.OutputLog, error) {
			logger.Debug("Log Created", "backend", config.BackendMemory)
			return memory.NewLog(cfg.LogName), nil
		}), nil, nil
	}

	active, fallback, err := cfg.Redis.Keys()
	if err != nil {
		return nil, nil, err
	}

	client := backend.NewClient(&backend.Options{Addr: cfg.Redis.Addr})
	shared := redis.NewFromClient(client,
		redis.WithKey(cfg.Redis.Key),
		redis.WithName(cfg.LogName),
		redis.WithTTL(cfg.Redis.TTL),
		redis.WithLogger(logger),
	)

	var log ports.OutputLog = shared
	if active != nil {
		log = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})(log)
	}

	return &remoteLog{OutputLog: log, lazy: memory.NewLazyLog(cfg.LogName, func() (ports.OutputLog, error) {
		if err := shared.Ping(ctx); err != nil {
			return nil, err
		}
		logger.Debug("Log Created", "backend", config.BackendRedis, "key", cfg.Redis.Key, "encrypted", active != nil)
		return log, nil
	})}, client.Close, nil
}

// remoteLog appends through a lazy wrapper but always reads from Redis,
// since other processes may have written to the list already.
type remoteLog struct {
	ports.OutputLog
	lazy *memory.LazyLog
}

func (l *remoteLog) AppendLine(ctx context.Context, line string) error {
	return l.lazy.AppendLine(ctx, line)
}

func (l *remoteLog) Show(ctx context.Context) error {
	return l.lazy.Show(ctx)
}

func (l *remoteLog) Follow(ctx context.Context) (<-chan string, error) {
	f, ok := l.OutputLog.(follower)
	if !ok {
		return nil, errors.New("log does not support following")
	}
	return f.Follow(ctx)
}

// follower is implemented by logs that can stream new lines.
type follower interface {
	Follow(ctx context.Context) (<-chan string, error)
}
