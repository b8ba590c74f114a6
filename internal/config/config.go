package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ContainerPath   string `toml:"container_path"`
	PageSize        int    `toml:"page_size"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
	AuthSalt        string `toml:"auth_salt"`
	AuthDigest      string `toml:"auth_digest"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ContainerPath:   "./chats.db",
		PageSize:        25,
		CacheTTLSeconds: 600,
		AuthSalt:        "chatvault_",
	}

	cfgPath := filepath.Join(home, ".config", "chatvault", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = 25
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = 600
	}

	cfg.ContainerPath = expandHome(cfg.ContainerPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
