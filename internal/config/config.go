package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Server configures the reference backend.
type Server struct {
	Port       string        `env:"PORT" envDefault:"5000"`
	CORSOrigin string        `env:"CORS_ORIGIN" envDefault:"*"`
	CacheTTL   time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	SeedFile   string        `env:"SEED_FILE"`
}

// Viewer configures the terminal client.
type Viewer struct {
	APIBaseURL     string        `env:"STOCKVIEWER_API_URL" envDefault:"http://localhost:5000"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	DebounceWindow time.Duration `env:"DEBOUNCE_WINDOW" envDefault:"500ms"`
	NotifyTTL      time.Duration `env:"NOTIFY_TTL" envDefault:"3s"`
}

func LoadServer() (Server, error) {
	var cfg Server
	return cfg, env.Parse(&cfg)
}

func LoadViewer() (Viewer, error) {
	var cfg Viewer
	return cfg, env.Parse(&cfg)
}
