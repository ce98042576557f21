package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Data source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	DataSource       string `mapstructure:"data_source" yaml:"data_source"`
	CSVPath          string `mapstructure:"csv_path" yaml:"csv_path"`
	DatabaseURL      string `mapstructure:"database_url" yaml:"database_url"`
	Table            string `mapstructure:"table" yaml:"table"`
	WatchDataset     bool   `mapstructure:"watch_dataset" yaml:"watch_dataset"`
	Port             string `mapstructure:"port" yaml:"port"`
	Env              string `mapstructure:"env" yaml:"env"`
	LogLevel         string `mapstructure:"log_level" yaml:"log_level"`
	ReadTimeoutSec   int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec  int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`
	DefaultCityCount int    `mapstructure:"default_city_count" yaml:"default_city_count"`
	PreviewRows      int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	ChartWidth       int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight      int    `mapstructure:"chart_height" yaml:"chart_height"`
}

// legacy environment names accepted next to the AQDASH_ prefixed ones
var envAliases = map[string]string{
	"database_url": "DATABASE_URL",
	"port":         "PORT",
	"env":          "GO_ENV",
}

// Load reads configuration from defaults, an optional YAML file, .env and
// the environment. Precedence: env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	v := viper.New()
	v.SetEnvPrefix("AQDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	for key, alias := range envAliases {
		if err := v.BindEnv(key, "AQDASH_"+strings.ToUpper(key), alias); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", cfgFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_source", SourceCSV)
	v.SetDefault("csv_path", "smooth_air_quality_dataset.csv")
	v.SetDefault("database_url", "")
	v.SetDefault("table", "air_quality")
	v.SetDefault("watch_dataset", false)
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_timeout_sec", 10)
	v.SetDefault("write_timeout_sec", 10)
	v.SetDefault("default_city_count", 3)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("chart_width", 900)
	v.SetDefault("chart_height", 420)
}

// Validate rejects unusable settings
func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceCSV:
		if c.CSVPath == "" {
			return fmt.Errorf("config: csv_path is required for data_source %q", c.DataSource)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: database_url is required for data_source %q", c.DataSource)
		}
	case SourceMemory:
	default:
		return fmt.Errorf("config: unknown data_source %q (use csv|postgres|memory)", c.DataSource)
	}
	if c.DefaultCityCount < 0 || c.PreviewRows < 0 {
		return fmt.Errorf("config: default_city_count and preview_rows must not be negative")
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("config: chart dimensions must be positive")
	}
	return nil
}

// YAML renders the effective configuration with the database URL redacted
func (c *Config) YAML() ([]byte, error) {
	redacted := *c
	if redacted.DatabaseURL != "" {
		redacted.DatabaseURL = "<redacted>"
	}
	b, err := yaml.Marshal(redacted)
	if err != nil {
		return nil, fmt.Errorf("config: marshal yaml: %w", err)
	}
	return b, nil
}
