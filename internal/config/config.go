package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Log      Log
	Catalog  Catalog
	Quote    Quote
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	Gemini   Gemini
}

type App struct {
	Name                 string `env:"APP_NAME"               envDefault:"insurance-desk"`
	Version              string `env:"APP_VERSION"            envDefault:"dev"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS"   envDefault:":8081"`
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

type HTTP struct {
	ListenAddress      string        `env:"HTTP_LISTEN_ADDRESS"   envDefault:":8001"`
	ShutdownTimeout    time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout  time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS"  envDefault:"*" envSeparator:","`
}

type Log struct {
	Level       string `env:"LOG_LEVEL"         envDefault:"info"`
	JSON        bool   `env:"LOG_JSON"          envDefault:"false"`
	FieldMaxLen int    `env:"LOG_FIELD_MAX_LEN" envDefault:"2048"`
}

type Catalog struct {
	Dir          string `env:"CATALOG_DIR"           envDefault:"data"`
	FallbackFile string `env:"CATALOG_FALLBACK_FILE" envDefault:"Bank_infos_complete.json"`
}

type Quote struct {
	CacheTTL time.Duration `env:"QUOTE_CACHE_TTL" envDefault:"5m"`
}

// Bot is optional: without a token handoff tickets are only logged. Commands
// enables the agent commands in the same chat.
type Bot struct {
	Token    string `env:"BOT_TOKEN"    json:"-"`
	ChatID   int64  `env:"BOT_CHAT_ID"`
	Commands bool   `env:"BOT_COMMANDS" envDefault:"true"`
}

func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}

type Gemini struct {
	APIKey      string `env:"GEMINI_API_KEY"     json:"-"`
	Model       string `env:"GEMINI_MODEL"       envDefault:"gemini-2.5-flash"`
	Concurrency int    `env:"ENRICH_CONCURRENCY" envDefault:"4"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
