package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Minio   MinioConfig
	Auth    AuthConfig
	Jobs    JobsConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"shopmart"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"10"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	// KeyPrefix namespaces every cache key, so one Redis instance can
	// serve several deployments.
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"shopmart"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"shopmart-img"`
}

// AuthConfig carries the per-actor JWT signing secrets. Customers and
// vendors are issued tokens under different secrets so a customer token
// can never pass vendor verification.
type AuthConfig struct {
	CustomerSecret string        `env:"CUSTOMER_SECRET_KEY"`
	VendorSecret   string        `env:"VENDOR_SECRET_KEY"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"10"`
}

type JobsConfig struct {
	LowStockThreshold int           `env:"LOW_STOCK_THRESHOLD" envDefault:"10"`
	LowStockInterval  time.Duration `env:"LOW_STOCK_INTERVAL" envDefault:"15m"`
}

type MetricsConfig struct {
	Prefix string `env:"METRICS_PREFIX" envDefault:"shopmart"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
