package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Session  SessionConfig  `yaml:"session"`
	File     FileConfig     `yaml:"file"`
	Log      LogConfig      `yaml:"log"`
	Frontend FrontendConfig `yaml:"frontend"`
}

type ServerConfig struct {
	Port         int      `yaml:"port"`
	Mode         string   `yaml:"mode"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type StorageConfig struct {
	DataPath   string `yaml:"data_path"`
	UploadPath string `yaml:"upload_path"`
}

type SessionConfig struct {
	CookieName   string `yaml:"cookie_name"`
	TTLHours     int    `yaml:"ttl_hours"`
	SweepMinutes int    `yaml:"sweep_minutes"`
}

type FileConfig struct {
	MaxUploadSize int64 `yaml:"max_upload_size"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

type FrontendConfig struct {
	BaseURL string `yaml:"base_url"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	// 首先尝试从 YAML 文件加载
	if data, err := os.ReadFile("configs/config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// 然后从环境变量覆盖
	cfg.overrideFromEnv()

	// 设置默认值
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}
	if val := os.Getenv("GIN_MODE"); val != "" {
		c.Server.Mode = val
	}

	if val := os.Getenv("DATA_PATH"); val != "" {
		c.Storage.DataPath = val
	}
	if val := os.Getenv("UPLOAD_PATH"); val != "" {
		c.Storage.UploadPath = val
	}

	if val := os.Getenv("SESSION_TTL_HOURS"); val != "" {
		if hours, err := strconv.Atoi(val); err == nil {
			c.Session.TTLHours = hours
		}
	}

	if val := os.Getenv("MAX_UPLOAD_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.File.MaxUploadSize = size
		}
	}

	if val := os.Getenv("FRONTEND_BASE_URL"); val != "" {
		c.Frontend.BaseURL = val
	}
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}

	if c.Storage.DataPath == "" {
		c.Storage.DataPath = "./data"
	}
	if c.Storage.UploadPath == "" {
		c.Storage.UploadPath = "./uploads"
	}

	if c.Session.CookieName == "" {
		c.Session.CookieName = "session_token"
	}
	if c.Session.TTLHours == 0 {
		c.Session.TTLHours = 24
	}
	if c.Session.SweepMinutes == 0 {
		c.Session.SweepMinutes = 60
	}

	if c.File.MaxUploadSize == 0 {
		c.File.MaxUploadSize = 10485760 // 10MB
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "./logs/app.log"
	}

	if c.Frontend.BaseURL == "" {
		c.Frontend.BaseURL = "http://localhost:8080"
	}
}
