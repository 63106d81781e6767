package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

var GlobalConfig *Config

// Config global configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Redis     RedisConfig     `yaml:"redis"`
	Logger    LoggerConfig    `yaml:"logger"`
	Retention RetentionConfig `yaml:"retention"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Port   int    `yaml:"port"`
	Mode   string `yaml:"mode"`    // debug, release
	APIKey string `yaml:"api_key"` // bearer token for the management API (optional, empty disables auth)
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RedisConfig Redis configuration. Only used for the distributed lock taken by
// background jobs; optional for single-instance deployments.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggerConfig logger configuration
type LoggerConfig struct {
	Level  string           `yaml:"level"`  // debug, info, warn, error
	Output string           `yaml:"output"` // console, file, both
	File   LoggerFileConfig `yaml:"file"`
}

// LoggerFileConfig logger file configuration
type LoggerFileConfig struct {
	Path string `yaml:"path"`
}

// RetentionConfig stats retention configuration
type RetentionConfig struct {
	PCStatsDays     int `yaml:"pcstats_days"`     // snapshots older than this are pruned
	IntervalMinutes int `yaml:"interval_minutes"` // how often the pruning job runs
}

// DefaultRetentionConfig returns the retention defaults: keep 30 days of
// snapshots, prune hourly.
func DefaultRetentionConfig() RetentionConfig {
	return RetentionConfig{
		PCStatsDays:     30,
		IntervalMinutes: 60,
	}
}

// Init initializes configuration
func Init() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	validateAndApplyDefaults(&cfg)

	GlobalConfig = &cfg
	return nil
}

// validateAndApplyDefaults clamps invalid values back to defaults so a bad
// config file cannot disable retention or the server entirely.
func validateAndApplyDefaults(cfg *Config) {
	defaults := DefaultRetentionConfig()
	if cfg.Retention.PCStatsDays <= 0 {
		cfg.Retention.PCStatsDays = defaults.PCStatsDays
	}
	if cfg.Retention.IntervalMinutes <= 0 {
		cfg.Retention.IntervalMinutes = defaults.IntervalMinutes
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
}
