package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".unixtime.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UNIXTIME_"

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds the runtime settings of the CLI and servers.
type Config struct {
	Location     string      `mapstructure:"location"`
	LogName      string      `mapstructure:"log_name"`
	LogBackend   string      `mapstructure:"log_backend"`
	MaxInputSize int         `mapstructure:"max_input_size"`
	Debug        bool        `mapstructure:"debug"`
	Redis        RedisConfig `mapstructure:"redis"`
	HTTP         HTTPConfig  `mapstructure:"http"`
	MCP          MCPConfig   `mapstructure:"mcp"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Key  string `mapstructure:"key"`
	// TTL expires the log after a quiet period. Zero keeps it forever.
	TTL time.Duration `mapstructure:"ttl"`

	// EncryptionKey is a base64 AES-256 key. When set, lines are stored encrypted.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogName:      domain.LogName,
		LogBackend:   BackendMemory,
		MaxInputSize: 4096,
		Redis:        RedisConfig{Addr: "localhost:6379", Key: "unixtime:log"},
		HTTP:         HTTPConfig{Port: 8080},
		MCP:          MCPConfig{Transport: "stdio", Port: 8081},
	}
}

// envKeys maps environment variables (without prefix) to config paths.
var envKeys = map[string][]string{
	"LOCATION":             {"location"},
	"LOG_NAME":             {"log_name"},
	"LOG_BACKEND":          {"log_backend"},
	"MAX_INPUT_SIZE":       {"max_input_size"},
	"DEBUG":                {"debug"},
	"REDIS_ADDR":           {"redis", "addr"},
	"REDIS_KEY":            {"redis", "key"},
	"REDIS_TTL":            {"redis", "ttl"},
	"REDIS_ENCRYPTION_KEY": {"redis", "encryption_key"},
	"HTTP_PORT":            {"http", "port"},
	"MCP_TRANSPORT":        {"mcp", "transport"},
	"MCP_PORT":             {"mcp", "port"},
}

// Load reads the YAML file at path, applies environment overrides and
// fills the remaining fields with defaults. A missing file is only an error
// when required is true.
func Load(path string, required bool) (Config, error) {
	raw := map[string]any{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	case os.IsNotExist(err) && !required:
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(raw, os.LookupEnv)

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for name, path := range envKeys {
		val, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		node := raw
		for _, key := range path[:len(path)-1] {
			child, ok := node[key].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[key] = child
			}
			node = child
		}
		node[path[len(path)-1]] = val
	}
}

// Validate checks enumerations and that the location resolves.
func (c Config) Validate() error {
	switch c.LogBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown log_backend %q (want %s or %s)", c.LogBackend, BackendMemory, BackendRedis)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp.transport %q (want stdio or sse)", c.MCP.Transport)
	}
	if c.MaxInputSize <= 0 {
		return fmt.Errorf("max_input_size must be positive, got %d", c.MaxInputSize)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative, got %s", c.Redis.TTL)
	}
	if _, _, err := c.Redis.Keys(); err != nil {
		return err
	}
	_, err := c.TimeLocation()
	return err
}

// Keys decodes the encryption keys. Both are nil when encryption is off.
func (r RedisConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if r.EncryptionKey == "" {
		return nil, nil, nil
	}
	if active, err = decodeKey(r.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("redis.encryption_key: %w", err)
	}
	for i, k := range r.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("redis.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("want 32 bytes, got %d", len(key))
	}
	return key, nil
}

// TimeLocation resolves Location. Empty or "Local" means time.Local.
func (c Config) TimeLocation() (*time.Location, error) {
	name := strings.TrimSpace(c.Location)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", name, err)
	}
	return loc, nil
}
