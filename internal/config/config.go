package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql or postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		GeminiAPIKey string `yaml:"geminiApiKey"`
		GroqAPIKey   string `yaml:"groqApiKey"`
		VisionModel  string `yaml:"visionModel"`
		TextModel    string `yaml:"textModel"`
		Demo         bool   `yaml:"demo"`
	} `yaml:"ai"`

	Auth struct {
		// user id -> api key
		APIKeys map[string]string `yaml:"apiKeys"`
	} `yaml:"auth"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"ratelimit"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// API keys boleh lewat env, jangan commit ke file
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.GeminiAPIKey = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.AI.GroqAPIKey = v
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.RateLimit.Capacity <= 0 {
		cfg.RateLimit.Capacity = 30
	}
	if cfg.RateLimit.RefillRate <= 0 {
		cfg.RateLimit.RefillRate = 1
	}

	return &cfg, nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
