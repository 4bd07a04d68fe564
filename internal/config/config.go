package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
// Секреты (пароль БД, ключ платёжного шлюза) могут быть переопределены
// переменными окружения (подхватываются из .env через godotenv в main)
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        DatabaseConfig    `toml:"database"`
	Redis           RedisConfig       `toml:"redis"`
	Logs            LogsConfig        `toml:"logs"`
	Metrics         MetricsConfig     `toml:"metrics"`
	PaymentGateway  IntegrationConfig `toml:"payment_gateway"`
	NotifyService   IntegrationConfig `toml:"notify_service"`
	IdentityService IntegrationConfig `toml:"identity_service"`
	Sweep           SweepConfig       `toml:"sweep"`
	RateLimit       RateLimitConfig   `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера
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

// RedisConfig настройки Redis (кеш конфигураций расписания)
type RedisConfig struct {
	Addr               string `toml:"addr"`
	Password           string `toml:"password"`
	DB                 int    `toml:"db"`
	ScheduleTTLSeconds int    `toml:"schedule_ttl_seconds"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// IntegrationConfig настройки внешнего HTTP клиента
type IntegrationConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// SweepConfig настройки фоновой разметки no-show
type SweepConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalMinutes int  `toml:"interval_minutes"`
}

// RateLimitConfig настройки ограничения частоты запросов на запись
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load читает конфигурацию из toml-файла и применяет env-переопределения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// Секреты из окружения имеют приоритет над файлом
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("PAYMENT_GATEWAY_API_KEY"); v != "" {
		cfg.PaymentGateway.APIKey = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	if c.Sweep.Enabled && c.Sweep.IntervalMinutes <= 0 {
		return fmt.Errorf("config: sweep.interval_minutes must be positive when sweep is enabled")
	}
	return nil
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
