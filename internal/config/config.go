package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Storage  Storage  `yaml:"storage"`
	Database Database `yaml:"database"`
	Paging   Paging   `yaml:"paging"`
	Codec    Codec    `yaml:"codec"`
}

type Server struct {
	Port       int    `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Storage locates the snapshot store. InMemory skips disk persistence
// entirely, which is mainly useful for local development.
type Storage struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
}

// Database points at the MySQL server that stores flushed corrections and
// the revalidation queue.
type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type Paging struct {
	PageSize int `yaml:"page_size"`
}

// Codec tunes the transport encoding. Payloads shorter than
// MinCompressBytes are sent uncompressed; StrictFieldMap makes the
// decoder reject unmapped short keys instead of passing them through.
type Codec struct {
	MinCompressBytes int  `yaml:"min_compress_bytes"`
	StrictFieldMap   bool `yaml:"strict_field_map"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "./data/reports"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Paging.PageSize == 0 {
		c.Paging.PageSize = 100
	}
	if c.Codec.MinCompressBytes == 0 {
		c.Codec.MinCompressBytes = 1024
	}
}
