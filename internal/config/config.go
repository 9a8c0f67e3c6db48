package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

var (
	ErrMissingPort     = errors.New("server.http_port is required")
	ErrMissingDBName   = errors.New("database.dbname is required")
	ErrInvalidLogLevel = errors.New("logs.level is invalid")
	ErrInvalidTimezone = errors.New("booking.timezone is invalid")
)

// Переменные окружения, перекрывающие значения из файла
const (
	envDBPassword     = "THERA_DB_PASSWORD"
	envDBHost         = "THERA_DB_HOST"
	envRedisAddr      = "THERA_REDIS_ADDR"
	envSendGridAPIKey = "THERA_SENDGRID_API_KEY"
)

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Notifications NotificationsConfig `toml:"notifications"`
	SendGrid      SendGridConfig      `toml:"sendgrid"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Booking       BookingConfig       `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	SlotsTTL int    `toml:"slots_ttl"` // секунды
}

type NotificationsConfig struct {
	Enabled        bool   `toml:"enabled"`
	Queue          string `toml:"queue"`
	Concurrency    int    `toml:"concurrency"`
	ReminderBefore int    `toml:"reminder_before"` // минуты
}

// ReminderBeforeDuration за сколько до начала сессии отправляется напоминание
func (n NotificationsConfig) ReminderBeforeDuration() time.Duration {
	return time.Duration(n.ReminderBefore) * time.Minute
}

type SendGridConfig struct {
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type BookingConfig struct {
	Timezone string `toml:"timezone"`
}

// Location локация, в которой считается "сегодня"
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

// Load читает .env (если есть), TOML-файл и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "thera_booking",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			SlotsTTL: 300,
		},
		Notifications: NotificationsConfig{
			Queue:          "notifications",
			Concurrency:    5,
			ReminderBefore: 24 * 60,
		},
		SendGrid: SendGridConfig{
			FromName: "TheraConnect",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Booking: BookingConfig{
			Timezone: "UTC",
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(envDBHost); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv(envRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv(envSendGridAPIKey); v != "" {
		c.SendGrid.APIKey = v
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return ErrMissingPort
	}
	if strings.TrimSpace(c.Database.DBName) == "" {
		return ErrMissingDBName
	}
	if _, err := zapcore.ParseLevel(c.Logs.Level); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.Logs.Level)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimezone, c.Booking.Timezone)
	}
	return nil
}
