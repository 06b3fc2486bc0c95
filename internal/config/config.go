package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Mail     MailConfig     `mapstructure:"mail"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration for the local server mode.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	PoolMin        int32         `mapstructure:"pool_min"`
	PoolMax        int32         `mapstructure:"pool_max"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// MailConfig holds the outbound SMTP relay configuration. SenderAddress is
// both the From identity and the relay login. Password comes from the
// SMTP_PASSWORD environment variable; an empty value means the contact
// endpoint refuses to send.
type MailConfig struct {
	SenderAddress   string `mapstructure:"sender_address"`
	OperatorAddress string `mapstructure:"operator_address"`
	RelayHost       string `mapstructure:"relay_host"`
	RelayPort       int    `mapstructure:"relay_port"`
	Password        string `mapstructure:"password"`
}

// AssetsConfig holds the CDN location of the guide preview image embedded in
// the auto-reply.
type AssetsConfig struct {
	PreviewURL   string        `mapstructure:"preview_url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given config directory path.
// It looks for a file named "config.yaml" in that directory; a missing file
// is not an error so that function deployments can run on environment
// variables and defaults alone.
//
// Environment variables with prefix SITE_ override file values, for example
// SITE_MAIL_RELAY_HOST overrides mail.relay_host. Two legacy names from the
// original cloud functions are bound as well: SMTP_PASSWORD (mail.password)
// and DATABASE_URL (database.url).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetEnvPrefix("SITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("mail.password", "SMTP_PASSWORD")
	_ = v.BindEnv("database.url", "DATABASE_URL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("database.pool_min", 1)
	v.SetDefault("database.pool_max", 4)
	v.SetDefault("database.connect_timeout", 10*time.Second)

	v.SetDefault("mail.sender_address", "artanalytics66@gmail.com")
	v.SetDefault("mail.operator_address", "artanalytics66@gmail.com")
	v.SetDefault("mail.relay_host", "smtp.gmail.com")
	v.SetDefault("mail.relay_port", 465)

	v.SetDefault("assets.preview_url", "https://cdn.poehali.dev/files/sklad-guide-preview.png")
	v.SetDefault("assets.fetch_timeout", 5*time.Second)

	v.SetDefault("logging.level", "info")
}
