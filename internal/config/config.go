// Package config loads board settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/board/internal/store/jsonstore"
	"github.com/idilsaglam/board/internal/validate"
)

const DefaultPath = "board.yaml"

type Config struct {
	Server     ServerConfig   `yaml:"server"`
	Data       DataConfig     `yaml:"data"`
	UI         UIConfig       `yaml:"ui"`
	Validation validate.Rules `yaml:"validation"`
}

type ServerConfig struct {
	Host           string   `yaml:"host" env:"BOARD_HOST"`
	Port           int      `yaml:"port" env:"BOARD_PORT"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"BOARD_ALLOWED_ORIGINS"`
}

type DataConfig struct {
	File     string `yaml:"file" env:"BOARD_DATA_FILE"`
	Autosave bool   `yaml:"autosave" env:"BOARD_AUTOSAVE"`
}

type UIConfig struct {
	Theme string `yaml:"theme" env:"BOARD_THEME"`
	Color string `yaml:"color" env:"BOARD_COLOR"` // auto | always | never
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Data: DataConfig{
			File:     jsonstore.DefaultFileName,
			Autosave: true,
		},
		UI:         UIConfig{Theme: "classic", Color: "auto"},
		Validation: validate.DefaultRules(),
	}
}

// Load reads path over the defaults, then applies BOARD_* environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port out of range: %d", c.Server.Port)
	}
	if c.Data.File == "" {
		return fmt.Errorf("config: data.file is empty")
	}
	switch strings.ToLower(c.UI.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("config: ui.color must be auto, always or never, got %q", c.UI.Color)
	}
	return nil
}

// Addr is host:port for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
