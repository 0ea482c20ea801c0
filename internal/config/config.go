// Package config loads the server's runtime configuration from an optional
// .env file plus environment variable overrides, mirroring the lightweight
// loader shape used by the project's other standalone servers.
package config

import (
	"github.com/joho/godotenv"

	"mapedit/internal/envutil"
	"mapedit/internal/geom"
)

// Config is the full set of knobs the CLI and tests need to start a server.
type Config struct {
	// ListenAddr is the TCP address the session listener binds to.
	ListenAddr string
	// StatusAddr is the address the read-only status HTTP surface binds
	// to. Empty disables the status server entirely.
	StatusAddr string
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
	// GridSize overrides the default 48x40x48 world size. Present mainly
	// for tests; production maps always use the default.
	GridSize geom.Vec3U8
}

// Default returns the out-of-the-box configuration: a TCP session listener
// on :8369, a read-only status surface on :8380, info-level logging, and a
// 48x40x48 world.
func Default() Config {
	return Config{
		ListenAddr: ":8369",
		StatusAddr: ":8380",
		LogLevel:   "info",
		GridSize:   geom.Vec3U8{X: 48, Y: 40, Z: 48},
	}
}

// Load starts from Default, applies envFile if present (missing files are
// not an error - the file is optional), then applies environment variable
// overrides.
func Load(envFile string) Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	cfg := Default()
	cfg.ListenAddr = envutil.OrDefault("MAPEDIT_LISTEN_ADDR", cfg.ListenAddr)
	cfg.StatusAddr = envutil.OrDefault("MAPEDIT_STATUS_ADDR", cfg.StatusAddr)
	cfg.LogLevel = envutil.OrDefault("MAPEDIT_LOG_LEVEL", cfg.LogLevel)
	return cfg
}
