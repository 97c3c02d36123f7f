package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Upload  UploadConfig  `yaml:"upload" mapstructure:"upload"`
	Compare CompareConfig `yaml:"compare" mapstructure:"compare"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// UploadConfig bounds multipart uploads on the web surface.
type UploadConfig struct {
	MaxBytes int64  `yaml:"max_bytes" mapstructure:"max_bytes"`
	TempDir  string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// CompareConfig holds reconciliation thresholds.
type CompareConfig struct {
	Tolerance float64 `yaml:"tolerance" mapstructure:"tolerance"`
}

// ScanConfig bounds spreadsheet scanning.
type ScanConfig struct {
	MaxColumns int `yaml:"max_columns" mapstructure:"max_columns"`
}

// FetchConfig configures remote input retrieval.
type FetchConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and the
// environment. Environment variables use the REPORTRECON_ prefix with
// dots replaced by underscores, e.g. REPORTRECON_STORE_DRIVER.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REPORTRECON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8000)
	v.SetDefault("upload.max_bytes", 16*1024*1024)
	v.SetDefault("compare.tolerance", 0.01)
	v.SetDefault("scan.max_columns", 100)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.user_agent", "reportrecon/1.0")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields required for the given mode. Modes:
// "compare" for one-shot runs, "serve" for the web server.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Compare.Tolerance < 0 || c.Compare.Tolerance >= 1 {
		problems = append(problems, "compare.tolerance must be in [0, 1)")
	}
	if c.Scan.MaxColumns < 1 {
		problems = append(problems, "scan.max_columns must be >= 1")
	}

	switch mode {
	case "compare":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Upload.MaxBytes <= 0 {
			problems = append(problems, "upload.max_bytes must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}

	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
