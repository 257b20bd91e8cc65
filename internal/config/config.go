package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"
)

type Log struct {
	Level      string `yaml:"level" env:"MINES_LOG_LEVEL"`
	File       string `yaml:"file" env:"MINES_LOG_FILE"`
	MaxSize    int    `yaml:"max-size" env:"MINES_LOG_MAX_SIZE" env-default:"50"` // megabytes
	MaxBackups int    `yaml:"max-backups" env:"MINES_LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `yaml:"max-age" env:"MINES_LOG_MAX_AGE" env-default:"28"` // days
}

type Sessions struct {
	TTL time.Duration `yaml:"ttl" env:"MINES_SESSION_TTL" env-default:"30m"`
}

type JWTParams struct {
	Secret        string        `yaml:"secret" env:"MINES_JWT_SECRET"`
	TokenLifetime time.Duration `yaml:"token-lifetime" env:"MINES_JWT_TOKEN_LIFETIME" env-default:"24h"`
}

type CookiesParams struct {
	Domain   string `yaml:"domain" env:"MINES_COOKIES_DOMAIN"`
	Insecure bool   `yaml:"insecure" env:"MINES_COOKIES_INSECURE"`
	SameSite string `yaml:"samesite" env:"MINES_COOKIES_SAMESITE" env-default:"strict"`
}

type Config struct {
	Mode           string        `yaml:"mode" env:"MINES_MODE" env-default:"production"`
	Addr           string        `yaml:"addr" env:"MINES_ADDR" env-default:":8080"`
	AllowedOrigins []string      `yaml:"allowed-origins" env:"MINES_ALLOWED_ORIGINS" env-separator:","`
	Log            Log           `yaml:"log"`
	Sessions       Sessions      `yaml:"sessions"`
	JWT            JWTParams     `yaml:"jwt"`
	Cookies        CookiesParams `yaml:"cookies"`
}

// Load reads the YAML file at path, if any, and applies environment
// overrides on top of it.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		if !cfg.Development() {
			return nil, fmt.Errorf("no jwt secret set (MINES_JWT_SECRET)")
		}
		cfg.JWT.Secret = "development"
	}
	if cfg.Sessions.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", cfg.Sessions.TTL)
	}
	return cfg, nil
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) LogLevel() (logrus.Level, error) {
	if c.Log.Level != "" {
		return logrus.ParseLevel(c.Log.Level)
	}
	if c.Development() {
		return logrus.DebugLevel, nil
	}
	return logrus.InfoLevel, nil
}

func (c Config) SameSite() http.SameSite {
	switch strings.ToUpper(c.Cookies.SameSite) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":               c.Mode,
		"addr":               c.Addr,
		"allowed_origins":    c.AllowedOrigins,
		"log_level":          c.Log.Level,
		"log_file":           c.Log.File,
		"session_ttl":        c.Sessions.TTL.String(),
		"jwt_token_lifetime": c.JWT.TokenLifetime.String(),
		"cookies_domain":     c.Cookies.Domain,
		"cookies_insecure":   c.Cookies.Insecure,
		"cookies_samesite":   c.Cookies.SameSite,
	}
}
