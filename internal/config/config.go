package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Parser     ParserConfig
	Preprocess PreprocessConfig
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the credential store.
// An empty Host disables the database; credentials then come from config.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for s3:// input URLs.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// ParserConfig holds vision-model provider settings.
type ParserConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"` // fallback when no DB credential store is configured
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// PreprocessConfig holds image preprocessing settings for the logbook class.
type PreprocessConfig struct {
	MaxWidth       int     `mapstructure:"max_width"`
	BottomFraction float64 `mapstructure:"bottom_fraction"`
	Contrast       float64 `mapstructure:"contrast"`
	JPEGQuality    int     `mapstructure:"jpeg_quality"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and FLOTTA_* env vars.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("FLOTTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "flotta")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "flotta")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	v.SetDefault("parser.provider", "gemini")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.default_model", "gemini-2.0-flash")
	v.SetDefault("parser.timeout_secs", 120)

	v.SetDefault("preprocess.max_width", 1600)
	v.SetDefault("preprocess.bottom_fraction", 0.40)
	v.SetDefault("preprocess.contrast", 15.0)
	v.SetDefault("preprocess.jpeg_quality", 85)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func bindEnv(v *viper.Viper) {
	envBindings := map[string]string{
		"server.port":                "FLOTTA_SERVER_PORT",
		"server.read_timeout":        "FLOTTA_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "FLOTTA_SERVER_WRITE_TIMEOUT",
		"server.environment":         "FLOTTA_SERVER_ENVIRONMENT",
		"db.host":                    "FLOTTA_DB_HOST",
		"db.port":                    "FLOTTA_DB_PORT",
		"db.user":                    "FLOTTA_DB_USER",
		"db.password":                "FLOTTA_DB_PASSWORD",
		"db.name":                    "FLOTTA_DB_NAME",
		"db.sslmode":                 "FLOTTA_DB_SSLMODE",
		"db.max_open":                "FLOTTA_DB_MAX_OPEN",
		"db.max_idle":                "FLOTTA_DB_MAX_IDLE",
		"s3.region":                  "FLOTTA_S3_REGION",
		"s3.endpoint":                "FLOTTA_S3_ENDPOINT",
		"s3.access_key":              "FLOTTA_S3_ACCESS_KEY",
		"s3.secret_key":              "FLOTTA_S3_SECRET_KEY",
		"parser.provider":            "FLOTTA_PARSER_PROVIDER",
		"parser.api_key":             "FLOTTA_PARSER_API_KEY",
		"parser.default_model":       "FLOTTA_PARSER_DEFAULT_MODEL",
		"parser.timeout_secs":        "FLOTTA_PARSER_TIMEOUT_SECS",
		"preprocess.max_width":       "FLOTTA_PREPROCESS_MAX_WIDTH",
		"preprocess.bottom_fraction": "FLOTTA_PREPROCESS_BOTTOM_FRACTION",
		"preprocess.contrast":        "FLOTTA_PREPROCESS_CONTRAST",
		"preprocess.jpeg_quality":    "FLOTTA_PREPROCESS_JPEG_QUALITY",
		"log.level":                  "FLOTTA_LOG_LEVEL",
		"log.format":                 "FLOTTA_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}
