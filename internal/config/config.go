package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "RENTAL"

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server" envconfig:"SERVER"`
	Database   DatabaseConfig   `toml:"database" envconfig:"DATABASE"`
	Logs       LogsConfig       `toml:"logs" envconfig:"LOGS"`
	Metrics    MetricsConfig    `toml:"metrics" envconfig:"METRICS"`
	Feed       FeedConfig       `toml:"feed" envconfig:"FEED"`
	Calendar   CalendarConfig   `toml:"calendar" envconfig:"CALENDAR"`
	Properties PropertiesConfig `toml:"properties" envconfig:"PROPERTIES"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"HOST"`
	Port            int    `toml:"port" envconfig:"PORT"`
	User            string `toml:"user" envconfig:"USER"`
	Password        string `toml:"password" envconfig:"PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"NAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" envconfig:"FILE"`
	Level string `toml:"level" envconfig:"LEVEL"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	Path        string `toml:"path" envconfig:"PATH"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// FeedConfig настройки ленты бронирований и push-подписок
type FeedConfig struct {
	HistoryPageSize      int    `toml:"history_page_size" envconfig:"HISTORY_PAGE_SIZE"`
	SessionTTL           int    `toml:"session_ttl" envconfig:"SESSION_TTL"`
	NotifyChannel        string `toml:"notify_channel" envconfig:"NOTIFY_CHANNEL"`
	ResyncCron           string `toml:"resync_cron" envconfig:"RESYNC_CRON"`
	ListenerMinReconnect int    `toml:"listener_min_reconnect" envconfig:"LISTENER_MIN_RECONNECT"`
	ListenerMaxReconnect int    `toml:"listener_max_reconnect" envconfig:"LISTENER_MAX_RECONNECT"`
}

// SessionTTLDuration время жизни неактивной сессии оператора
func (c FeedConfig) SessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Second
}

// CalendarConfig настройки календаря
type CalendarConfig struct {
	Timezone  string `toml:"timezone" envconfig:"TIMEZONE"`
	ProductID string `toml:"product_id" envconfig:"PRODUCT_ID"`
}

// Location возвращает часовой пояс, в котором вычисляется "сегодня"
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// PropertiesConfig настройки кэша настроек объектов
type PropertiesConfig struct {
	CacheTTL int `toml:"cache_ttl" envconfig:"CACHE_TTL"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "rental_guide",
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
			ServiceName: "rental_guide_service",
		},
		Feed: FeedConfig{
			HistoryPageSize:      20,
			SessionTTL:           1800,
			NotifyChannel:        "rental_changes",
			ResyncCron:           "*/5 * * * *",
			ListenerMinReconnect: 1,
			ListenerMaxReconnect: 60,
		},
		Calendar: CalendarConfig{
			Timezone:  "America/Sao_Paulo",
			ProductID: "-//rental-guide//calendar//PT",
		},
		Properties: PropertiesConfig{
			CacheTTL: 60,
		},
	}
}

// Load читает TOML файл, накладывает переменные окружения RENTAL_* и валидирует результат.
// Отсутствующий файл не является ошибкой: используются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Feed.HistoryPageSize <= 0 {
		return fmt.Errorf("%w: feed.history_page_size must be positive", ErrInvalidConfig)
	}
	if c.Feed.SessionTTL <= 0 {
		return fmt.Errorf("%w: feed.session_ttl must be positive", ErrInvalidConfig)
	}
	if c.Feed.NotifyChannel == "" {
		return fmt.Errorf("%w: feed.notify_channel is required", ErrInvalidConfig)
	}
	if c.Feed.ResyncCron != "" {
		if _, err := cron.ParseStandard(c.Feed.ResyncCron); err != nil {
			return fmt.Errorf("%w: feed.resync_cron: %v", ErrInvalidConfig, err)
		}
	}
	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("%w: calendar.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	return nil
}
