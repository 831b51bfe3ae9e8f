package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// EnvPrefix prefix of the environment overrides, e.g. SPA_DATABASE_HOST.
// Leaf keys are derived from field names with split_words, so a bare USER
// or PATH from the environment is never picked up.
const EnvPrefix = "SPA"

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server" envconfig:"SERVER"`
	Database  DatabaseConfig  `toml:"database" envconfig:"DATABASE"`
	Logs      LogsConfig      `toml:"logs" envconfig:"LOGS"`
	Metrics   MetricsConfig   `toml:"metrics" envconfig:"METRICS"`
	Booking   BookingConfig   `toml:"booking" envconfig:"BOOKING"`
	Redis     RedisConfig     `toml:"redis" envconfig:"REDIS"`
	RateLimit RateLimitConfig `toml:"rate_limit" envconfig:"RATE_LIMIT"`
	Kafka     KafkaConfig     `toml:"kafka" envconfig:"KAFKA"`
	CORS      CORSConfig      `toml:"cors" envconfig:"CORS"`
}

// ServerConfig timeouts in seconds
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // seconds
	AutoMigrate     bool   `toml:"auto_migrate" split_words:"true"`
}

// DSN lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type BookingConfig struct {
	LeadDays        int    `toml:"lead_days" split_words:"true"`
	HorizonDays     int    `toml:"horizon_days" split_words:"true"`
	SlotStepMinutes int    `toml:"slot_step_minutes" split_words:"true"`
	Timezone        string `toml:"timezone" split_words:"true"`
}

// Policy builds the booking policy in the configured time zone
func (c BookingConfig) Policy() (domain.BookingPolicy, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}

	policy := domain.BookingPolicy{
		LeadDays:        c.LeadDays,
		HorizonDays:     c.HorizonDays,
		SlotStepMinutes: c.SlotStepMinutes,
		Location:        loc,
	}
	if err := policy.Validate(); err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return policy, nil
}

type RedisConfig struct {
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
}

// RateLimitConfig TrustForwardedFor включать только за reverse proxy,
// который перезаписывает X-Forwarded-For
type RateLimitConfig struct {
	Enabled           bool   `toml:"enabled" split_words:"true"`
	MaxRequests       int    `toml:"max_requests" split_words:"true"`
	WindowSeconds     int    `toml:"window_seconds" split_words:"true"`
	KeyPrefix         string `toml:"key_prefix" split_words:"true"`
	FailOpen          bool   `toml:"fail_open" split_words:"true"`
	TrustForwardedFor bool   `toml:"trust_forwarded_for" split_words:"true"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled" split_words:"true"`
	Brokers []string `toml:"brokers" split_words:"true"`
	Topic   string   `toml:"topic" split_words:"true"`
	Timeout int      `toml:"timeout" split_words:"true"` // seconds
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
	MaxAge         int      `toml:"max_age" split_words:"true"`
}

// Load reads the TOML file, then .env and SPA_* environment variables on top.
// A missing file is not an error, the service can be configured from env only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default values used for everything the file and env leave unset
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "spa",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "spa-booking-service",
		},
		Booking: BookingConfig{
			LeadDays:        domain.DefaultLeadDays,
			HorizonDays:     domain.DefaultHorizonDays,
			SlotStepMinutes: domain.DefaultSlotStepMinutes,
			Timezone:        domain.DefaultTimezone,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   200,
			WindowSeconds: 900,
			KeyPrefix:     "spa:rl",
			FailOpen:      true,
		},
		Kafka: KafkaConfig{
			Topic:   "spa.bookings",
			Timeout: 5,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			MaxAge:         300,
		},
	}
}

func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in [1, 65535]")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if c.RateLimit.Enabled {
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required when rate_limit is enabled")
		}
		if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowSeconds <= 0 {
			problems = append(problems, "rate_limit.max_requests and rate_limit.window_seconds must be > 0")
		}
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		problems = append(problems, "kafka.brokers and kafka.topic are required when kafka is enabled")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	if _, err := c.Booking.Policy(); err != nil {
		return err
	}
	return nil
}
