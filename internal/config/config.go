// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported storefront kinds.
const (
	KindVTEX     = "vtex"
	KindNextData = "nextdata"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig         `yaml:"server"`
	Database      DatabaseConfig       `yaml:"database"`
	PostalCode    string               `yaml:"postal_code"`
	Products      []domain.ProductSpec `yaml:"products"`
	Sources       SourcesConfig        `yaml:"sources"`
	Schedule      ScheduleConfig       `yaml:"schedule"`
	Notifications NotificationsConfig  `yaml:"notifications"`
	Telemetry     TelemetryConfig      `yaml:"telemetry"`
	Logging       LoggingConfig        `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines the history store connection. Postgres uses the
// host fields; SQLite uses Path.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // postgres, sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
	Path     string `yaml:"path"`
}

// DSN returns the driver-specific connection string.
func (d *DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", d.Path)
	}
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// SourcesConfig defines the storefronts to search and how to pace them.
type SourcesConfig struct {
	// PacingDelay is the pause after each storefront search.
	PacingDelay    time.Duration      `yaml:"pacing_delay"`
	RequestTimeout time.Duration      `yaml:"request_timeout"`
	Storefronts    []StorefrontConfig `yaml:"storefronts"`
}

// StorefrontConfig defines one storefront. The order of storefronts in the
// config breaks ties between equally priced offers.
type StorefrontConfig struct {
	Name             string          `yaml:"name"`
	Kind             string          `yaml:"kind"` // vtex, nextdata
	BaseURL          string          `yaml:"base_url"`
	Disabled         bool            `yaml:"disabled"`
	SearchCount      int             `yaml:"search_count"`
	ProductPageCheck bool            `yaml:"product_page_check"`
	RateLimit        RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines per-storefront request pacing.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"` // 0 disables the daily cap
}

// ScheduleConfig defines how often the evaluation cycle runs under serve.
type ScheduleConfig struct {
	RunInterval time.Duration `yaml:"run_interval"`
	RunOnStart  bool          `yaml:"run_on_start"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Email    EmailConfig    `yaml:"email"`
	Discord  DiscordConfig  `yaml:"discord"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// EmailConfig defines SMTP alert settings.
type EmailConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// TelegramConfig defines Telegram bot settings.
type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

// TelemetryConfig defines OpenTelemetry export. An empty endpoint disables
// export.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Insecure     bool   `yaml:"insecure"`
	ServiceName  string `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file next to the config is loaded
// into the environment first when present; variables already set win.
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envPath, err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// EnabledStorefronts returns the storefronts not marked disabled, in
// configured order.
func (c *Config) EnabledStorefronts() []StorefrontConfig {
	out := make([]StorefrontConfig, 0, len(c.Sources.Storefronts))
	for _, s := range c.Sources.Storefronts {
		if !s.Disabled {
			out = append(out, s)
		}
	}
	return out
}

// DefaultStorefronts are searched when the config lists none.
func DefaultStorefronts() []StorefrontConfig {
	return []StorefrontConfig{
		{Name: "Pague Menos", Kind: KindVTEX, BaseURL: "https://www.paguemenos.com.br", SearchCount: 12},
		{Name: "Drogasil", Kind: KindNextData, BaseURL: "https://www.drogasil.com.br", ProductPageCheck: true},
		{Name: "Drogaria São Paulo", Kind: KindVTEX, BaseURL: "https://www.drogariasaopaulo.com.br", SearchCount: 48},
	}
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applySourcesDefaults(&cfg.Sources)
	applyScheduleDefaults(&cfg.Schedule)
	applyNotificationsDefaults(&cfg.Notifications)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)

	cfg.PostalCode = strings.TrimSpace(cfg.PostalCode)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = DriverSQLite
	}
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			d.Path = "prices.db"
		}
	case DriverPostgres:
		if d.Port == 0 {
			d.Port = 5432
		}
		if d.SSLMode == "" {
			d.SSLMode = "disable"
		}
		if d.PoolSize == 0 {
			d.PoolSize = 10
		}
	}
}

func applySourcesDefaults(s *SourcesConfig) {
	if s.PacingDelay == 0 {
		s.PacingDelay = 2 * time.Second
	}
	if s.RequestTimeout == 0 {
		s.RequestTimeout = 15 * time.Second
	}
	if len(s.Storefronts) == 0 {
		s.Storefronts = DefaultStorefronts()
	}
	for i := range s.Storefronts {
		applyRateLimitDefaults(&s.Storefronts[i].RateLimit)
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 1.0
	}
	if r.Burst == 0 {
		r.Burst = 2
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RunInterval == 0 {
		s.RunInterval = 6 * time.Hour
	}
}

func applyNotificationsDefaults(n *NotificationsConfig) {
	if n.Email.Host == "" {
		n.Email.Host = "smtp.gmail.com"
	}
	if n.Email.Port == 0 {
		n.Email.Port = 587
	}
	if n.Email.From == "" {
		n.Email.From = n.Email.Username
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "rx-price-tracker"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateDatabase(&cfg.Database)...)
	errs = append(errs, validateProducts(cfg.Products)...)
	errs = append(errs, validateStorefronts(cfg.Sources.Storefronts)...)
	errs = append(errs, validateNotifications(&cfg.Notifications)...)

	if cfg.Schedule.RunInterval < time.Minute {
		errs = append(errs, fmt.Errorf("schedule.run_interval must be at least 1m (got %s)", cfg.Schedule.RunInterval))
	}

	return errors.Join(errs...)
}

func validateDatabase(d *DatabaseConfig) []error {
	var errs []error
	switch d.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if d.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required when driver is postgres"))
		}
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required when driver is postgres"))
		}
		if d.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required when driver is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be one of: postgres, sqlite (got %q)", d.Driver))
	}
	return errs
}

func validateProducts(products []domain.ProductSpec) []error {
	var errs []error
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("products[%d].name is required", i))
		} else if seen[p.Name] {
			errs = append(errs, fmt.Errorf("products[%d].name %q is duplicated", i, p.Name))
		}
		seen[p.Name] = true

		if p.SearchTerm == "" {
			errs = append(errs, fmt.Errorf("products[%d].search_term is required", i))
		}
		if p.ThresholdPrice <= 0 {
			errs = append(errs, fmt.Errorf("products[%d].threshold_price must be positive", i))
		}
	}
	return errs
}

func validateStorefronts(storefronts []StorefrontConfig) []error {
	var errs []error
	seen := make(map[string]bool, len(storefronts))
	for i, s := range storefronts {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("sources.storefronts[%d].name is required", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Errorf("sources.storefronts[%d].name %q is duplicated", i, s.Name))
		}
		seen[s.Name] = true

		if s.BaseURL == "" {
			errs = append(errs, fmt.Errorf("sources.storefronts[%d].base_url is required", i))
		}
		if s.Kind != KindVTEX && s.Kind != KindNextData {
			errs = append(errs, fmt.Errorf(
				"sources.storefronts[%d].kind must be one of: vtex, nextdata (got %q)", i, s.Kind,
			))
		}
	}
	return errs
}

func validateNotifications(n *NotificationsConfig) []error {
	var errs []error
	if n.Email.Enabled {
		if n.Email.Username == "" || n.Email.Password == "" {
			errs = append(errs, fmt.Errorf("notifications.email.username and password are required when email is enabled"))
		}
		if len(n.Email.To) == 0 {
			errs = append(errs, fmt.Errorf("notifications.email.to is required when email is enabled"))
		}
	}
	if n.Discord.Enabled && n.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}
	if n.Telegram.Enabled && (n.Telegram.BotToken == "" || n.Telegram.ChatID == 0) {
		errs = append(errs, fmt.Errorf("notifications.telegram.bot_token and chat_id are required when telegram is enabled"))
	}
	return errs
}
