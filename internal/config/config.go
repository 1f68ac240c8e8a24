// Package config provides configuration management for Digestly.
// It uses Viper to load settings from files and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for Digestly.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────
	ServerHost string `mapstructure:"server_host"`
	HTTPPort   int    `mapstructure:"http_port"`
	DBPath     string `mapstructure:"db_path"`
	DBDriver   string `mapstructure:"db_driver"` // only "sqlite" for now

	// ── Security ──────────────────────────────────────────────────────────────
	// JWTSecret: HS256 signing key for admin tokens.
	JWTSecret string `mapstructure:"jwt_secret"`
	AdminUser string `mapstructure:"admin_user"`
	// AdminPassHash is a bcrypt hash (see `digestly hash-password`).
	// When set, AdminPass is ignored.
	AdminPassHash string `mapstructure:"admin_pass_hash"`
	AdminPass     string `mapstructure:"admin_pass"`

	// ── Page ─────────────────────────────────────────────────────────────────
	SiteTitle    string `mapstructure:"site_title"`
	BotInviteURL string `mapstructure:"bot_invite_url"`
	// DefaultBilling is used when a request carries no ?billing= parameter.
	DefaultBilling string `mapstructure:"default_billing"`

	LogLevel string `mapstructure:"log_level"`
}

// Load reads config from file (./config.yaml or ~/.digestly/config.yaml)
// and falls back to defaults. Environment variables with prefix DIGESTLY_
// override file values.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.digestly")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFile reads an explicit config file instead of searching for one.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return decode(v)
}

// Default returns the configuration with no file and no environment.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling defaults: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("http_port", 8080)
	v.SetDefault("db_path", "digestly.db")
	v.SetDefault("db_driver", "sqlite")

	// MUST be overridden in production via config.yaml or env vars.
	v.SetDefault("jwt_secret", "dgst-Wq4!zT8#pL2@vN6$kR9")
	v.SetDefault("admin_user", "admin")
	v.SetDefault("admin_pass", "admin")
	v.SetDefault("admin_pass_hash", "")

	v.SetDefault("site_title", "Digestly")
	v.SetDefault("bot_invite_url", "https://discord.com/oauth2/authorize")
	v.SetDefault("default_billing", "monthly")

	v.SetDefault("log_level", "info")
}

func decode(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("DIGESTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
