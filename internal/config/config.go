// Package config loads and validates the Just Redact client
// configuration. Values come from an optional YAML file, then a local
// .env file and environment variables, then defaults, so the tool runs
// out of the box against a local backend.
package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig points at the redaction service and the admin API.
type ServerConfig struct {
	RedactAddr string `yaml:"redact_addr"`
	AdminAddr  string `yaml:"admin_addr"`
	Insecure   bool   `yaml:"insecure"`
}

// StateConfig holds the local state database path.
type StateConfig struct {
	Path string `yaml:"path"`
}

// AdminConfig overrides the built-in admin credential. PasswordHash is
// an Argon2id PHC string produced by `justredact setup`.
type AdminConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
}

// Config mirrors the justredact.yaml schema.
type Config struct {
	Log         LogConfig    `yaml:"log"`
	Server      ServerConfig `yaml:"server"`
	State       StateConfig  `yaml:"state"`
	Admin       AdminConfig  `yaml:"admin"`
	DownloadDir string       `yaml:"download_dir"`
	MaxUploadMB int          `yaml:"max_upload_mb"`
}

// DefaultPath is where Load looks when no config flag is given.
const DefaultPath = "justredact.yaml"

// Load reads the YAML file (optional: an empty path or a missing default
// file just means defaults), applies env overrides, and validates.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if path != DefaultPath || !os.IsNotExist(err) {
				return c, err
			}
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return c, err
		}
	}
	_ = godotenv.Load() // a missing .env is fine
	applyEnv(&c)
	applyDefaults(&c)
	if err := validate(&c); err != nil {
		return Config{}, err
	}
	c.State.Path = strings.TrimSpace(c.State.Path)
	c.DownloadDir = strings.TrimSpace(c.DownloadDir)
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("JUSTREDACT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("JUSTREDACT_REDACT_ADDR"); v != "" {
		c.Server.RedactAddr = v
	}
	if v := os.Getenv("JUSTREDACT_ADMIN_ADDR"); v != "" {
		c.Server.AdminAddr = v
	}
	if v := os.Getenv("JUSTREDACT_STATE_PATH"); v != "" {
		c.State.Path = v
	}
	if v := os.Getenv("JUSTREDACT_DOWNLOAD_DIR"); v != "" {
		c.DownloadDir = v
	}
}

// applyDefaults populates zero-values so callers can rely on every field.
func applyDefaults(c *Config) {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.RedactAddr == "" {
		c.Server.RedactAddr = "http://127.0.0.1:5000"
	}
	if c.Server.AdminAddr == "" {
		c.Server.AdminAddr = c.Server.RedactAddr
	}
	if c.State.Path == "" {
		c.State.Path = "./data/justredact.db"
	}
	if c.DownloadDir == "" {
		c.DownloadDir = "."
	}
	if c.MaxUploadMB == 0 {
		c.MaxUploadMB = 25
	}
}

// validate performs basic sanity checks without mutating the config.
func validate(c *Config) error {
	if strings.TrimSpace(c.Log.Level) == "" {
		return errors.New("log.level is required")
	}
	for name, addr := range map[string]string{
		"server.redact_addr": c.Server.RedactAddr,
		"server.admin_addr":  c.Server.AdminAddr,
	} {
		u, err := url.Parse(addr)
		if err != nil || u.Host == "" {
			return errors.New(name + " is invalid")
		}
	}
	if c.State.Path == "" {
		return errors.New("state.path is required")
	}
	if c.MaxUploadMB < 1 || c.MaxUploadMB > 1024 {
		return errors.New("max_upload_mb is invalid")
	}
	_ = filepath.Clean(c.State.Path)
	_ = filepath.Clean(c.DownloadDir)
	return nil
}
