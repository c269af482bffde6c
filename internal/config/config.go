package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Upload    UploadConfig    `yaml:"upload"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// UploadConfig controls where uploaded media is written and how it is exposed.
type UploadConfig struct {
	Dir       string `yaml:"dir"`
	URLPrefix string `yaml:"url_prefix"`
	MaxSizeMB int64  `yaml:"max_size_mb"`
}

// RateLimitConfig applies to write endpoints (likes, comments, connections, messages).
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// WorkflowConfig holds the named policies of the collaboration workflow.
type WorkflowConfig struct {
	// DefaultCollaboratorRole is assigned on invite acceptance when the invitee's
	// own tipo is neither "designer" nor "programmer".
	DefaultCollaboratorRole string `yaml:"default_collaborator_role"`
}

const DefaultCollaboratorRole = "programmer"

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		fileCfg := DefaultConfig()
		if err := yaml.Unmarshal(data, fileCfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
		cfg = fileCfg
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "5000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "conectahub.db",
		},
		JWT: JWTConfig{
			Secret:     "conectahub-secret-key-change-in-production",
			ExpireHour: 24,
		},
		Upload: UploadConfig{
			Dir:       "uploads",
			URLPrefix: "/uploads",
			MaxSizeMB: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     5,
			Burst:   20,
		},
		Log: LogConfig{
			Level: "info",
		},
		Workflow: WorkflowConfig{
			DefaultCollaboratorRole: DefaultCollaboratorRole,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	// PORT is what most PaaS hosts export
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		c.Database.Driver = "postgres"
		c.Database.DSN = postgresDSN(host)
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		c.Upload.Dir = dir
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if role := os.Getenv("DEFAULT_COLLABORATOR_ROLE"); role != "" {
		c.Workflow.DefaultCollaboratorRole = role
	}
	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil && v > 0 {
			c.RateLimit.RPS = v
		}
	}

	if c.Workflow.DefaultCollaboratorRole == "" {
		c.Workflow.DefaultCollaboratorRole = DefaultCollaboratorRole
	}
}

// postgresDSN builds a keyword/value DSN from the DB_* variables.
func postgresDSN(host string) string {
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// MaxUploadBytes returns the per-file upload cap in bytes.
func (c *UploadConfig) MaxUploadBytes() int64 {
	if c.MaxSizeMB <= 0 {
		return 5 << 20
	}
	return c.MaxSizeMB << 20
}
