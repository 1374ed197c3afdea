package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Validate tool defaults.
	ValidateStrict bool
	MaxDepth       int

	// Bench tool defaults and limits.
	BenchIterations    int
	BenchMaxIterations int

	// Inline content guard.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from FASTPATH_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		ValidateStrict:     envBool("FASTPATH_VALIDATE_STRICT", false),
		MaxDepth:           envInt("FASTPATH_MAX_DEPTH", 0),
		BenchIterations:    envInt("FASTPATH_BENCH_ITERATIONS", 1000),
		BenchMaxIterations: envInt("FASTPATH_BENCH_MAX_ITERATIONS", 100000),
		MaxInlineSize:      envInt64("FASTPATH_MAX_INLINE_SIZE", 10*1024*1024),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
