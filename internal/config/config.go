package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Booking     BookingConfig     `toml:"booking"`
	UserService UserServiceConfig `toml:"user_service"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры движка бронирований
type BookingConfig struct {
	// Timezone единственная локальная зона, в которой считаются рабочие часы
	Timezone             string `toml:"timezone"`
	SerializationRetries int    `toml:"serialization_retries"`
}

// Location загружает зону из Timezone
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию
// и переменные окружения DB_PASSWORD, DB_HOST
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
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
			ServiceName: "room-booking",
		},
		Booking: BookingConfig{
			Timezone:             "Local",
			SerializationRetries: 3,
		},
		UserService: UserServiceConfig{
			Timeout: 5,
		},
	}
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return errors.New("config: server.http_port must be positive")
	}
	if c.Database.DBName == "" {
		return errors.New("config: database.dbname is required")
	}
	if c.Booking.SerializationRetries < 0 {
		return errors.New("config: booking.serialization_retries must not be negative")
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("config: booking.timezone: %w", err)
	}
	return nil
}
