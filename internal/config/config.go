package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g.
// MONEYMATE_LOG_LEVEL.
const EnvPrefix = "MONEYMATE"

// Config holds application configuration.
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
	Remote RemoteConfig `mapstructure:"remote"`
	Server ServerConfig `mapstructure:"server"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Backup BackupConfig `mapstructure:"backup"`
}

// StoreConfig holds the on-device sqlite settings.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ResetDarkMode bool   `mapstructure:"reset_dark_mode"`
	Timezone      string `mapstructure:"timezone"`
}

// Location resolves Timezone, falling back to the local zone.
func (u UIConfig) Location() *time.Location {
	if u.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RemoteConfig points the sync client at a backend.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	UserID  string        `mapstructure:"user_id"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds the sync backend settings.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	DatabaseURL string `mapstructure:"database_url"`
}

// LLMConfig holds advisor settings.
type LLMConfig struct {
	Provider  string `mapstructure:"provider"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	Model     string `mapstructure:"model"`
}

// BackupConfig chooses where exports go. A bucket wins over a directory.
type BackupConfig struct {
	Dir       string `mapstructure:"dir"`
	GCSBucket string `mapstructure:"gcs_bucket"`
}

// Path returns the config file location: MONEYMATE_CONFIG or
// ~/.config/moneymate/config.toml.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "moneymate", "config.toml")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", filepath.Join(homeDir(), ".local", "share", "moneymate", "moneymate.db"))
	v.SetDefault("ui.reset_dark_mode", false)
	v.SetDefault("ui.timezone", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("remote.base_url", "http://localhost:8080/api/v1")
	v.SetDefault("remote.user_id", "")
	v.SetDefault("remote.timeout", "10s")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.database_url", "")
	v.SetDefault("llm.provider", "offline")
	v.SetDefault("llm.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("backup.dir", filepath.Join(homeDir(), ".local", "share", "moneymate", "backups"))
	v.SetDefault("backup.gcs_bucket", "")
}

// Load reads configuration from file and env. A missing file is not an
// error; a malformed one is.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// isNotFound reports whether err means there is no config file. With an
// explicit file path viper surfaces the raw fs error.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Save writes cfg to Path(), creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.path", cfg.Store.Path)
	v.Set("ui.reset_dark_mode", cfg.UI.ResetDarkMode)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("remote.base_url", cfg.Remote.BaseURL)
	v.Set("remote.user_id", cfg.Remote.UserID)
	v.Set("remote.timeout", cfg.Remote.Timeout.String())
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.database_url", cfg.Server.DatabaseURL)
	v.Set("llm.provider", cfg.LLM.Provider)
	v.Set("llm.api_key_env", cfg.LLM.APIKeyEnv)
	v.Set("llm.model", cfg.LLM.Model)
	v.Set("backup.dir", cfg.Backup.Dir)
	v.Set("backup.gcs_bucket", cfg.Backup.GCSBucket)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
