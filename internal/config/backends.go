package config

import "time"

// Postgres is optional: without a DSN handoff tickets are kept in memory.
type Postgres struct {
	DSN             string        `env:"PG_DSN"               json:"-"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS"    envDefault:"5"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS"    envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
}

func (p Postgres) Enabled() bool {
	return p.DSN != ""
}

// Redis is optional: without an address handoff tickets are forwarded in
// process instead of through the asynq queue.
type Redis struct {
	Address           string `env:"REDIS_ADDRESS"`
	Username          string `env:"REDIS_USERNAME"`
	Password          string `env:"REDIS_PASSWORD" json:"-"`
	Database          int    `env:"REDIS_DB"                 envDefault:"0"`
	PoolSize          int    `env:"REDIS_POOL_SIZE"          envDefault:"10"`
	WorkerConcurrency int    `env:"HANDOFF_WORKER_CONCURRENCY" envDefault:"2"`
	MaxRetry          int    `env:"HANDOFF_MAX_RETRY"        envDefault:"10"`
}

func (r Redis) Enabled() bool {
	return r.Address != ""
}
