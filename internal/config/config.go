package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config application configuration
type Config struct {
	Server struct {
		Port    int    `yaml:"port"`
		GinMode string `yaml:"gin_mode"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	JWT struct {
		Secret      string        `yaml:"secret"`
		TokenExpiry time.Duration `yaml:"token_expiry"`
	} `yaml:"jwt"`

	Classifier struct {
		APIKey  string        `yaml:"api_key"`
		Model   string        `yaml:"model"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"classifier"`
}

// Load reads the YAML config file (if present) and applies environment
// variable overrides plus safe defaults. A missing file is not an
// error: everything can be supplied via the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := envStr("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := envStr("GIN_MODE"); v != "" {
		cfg.Server.GinMode = v
	}

	if v := envStr("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := envStr("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = p
		}
	}
	if v := envStr("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := envStr("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := envStr("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}

	if v := envStr("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := envStr("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Redis.Port = p
		}
	}
	if v := envStr("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v := envStr("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}

	if v := envStr("GEMINI_API_KEY"); v != "" {
		cfg.Classifier.APIKey = v
	}
	if v := envStr("GEMINI_MODEL"); v != "" {
		cfg.Classifier.Model = v
	}
	if v := envStr("GEMINI_BASE_URL"); v != "" {
		cfg.Classifier.BaseURL = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.GinMode == "" {
		cfg.Server.GinMode = "release"
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 3306
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postfolio"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "postfolio"
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "postfolio-dev-secret"
	}
	if cfg.JWT.TokenExpiry == 0 {
		cfg.JWT.TokenExpiry = 24 * time.Hour
	}

	if cfg.Classifier.Model == "" {
		cfg.Classifier.Model = "gemini-1.5-flash"
	}
	if cfg.Classifier.BaseURL == "" {
		cfg.Classifier.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Classifier.Timeout == 0 {
		cfg.Classifier.Timeout = 15 * time.Second
	}
}

// DSN builds the MySQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func envStr(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
