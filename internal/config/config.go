package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	APIPort int `yaml:"apiPort"`
	Auth    struct {
		JWTSecret     string        `yaml:"jwtSecret"`
		TokenDuration time.Duration `yaml:"tokenDuration"`
		CookieName    string        `yaml:"cookieName"`
	} `yaml:"auth"`
	Database struct {
		Type       string `yaml:"type"`
		Path       string `yaml:"path"`
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		Name       string `yaml:"name"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		SSLMode    string `yaml:"sslMode"`
		WALMode    bool   `yaml:"walMode"`
		MaxRetries int    `yaml:"maxRetries"`
		RetryDelay int    `yaml:"retryDelay"`
	} `yaml:"database"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LISTKEEP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, err
		}
		log.Warn().Err(err).Msg("could not read config file, using defaults and environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIPort == 0 {
		cfg.APIPort = 5000
		log.Info().Msg("apiPort not specified, using default 5000")
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-only-secret"
		log.Warn().Msg("auth.jwtSecret not specified, using insecure development default")
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = time.Hour
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "listkeep_session"
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/listkeep.db"
		log.Info().Msg("database path not specified, using default data/listkeep.db")
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if !v.IsSet("database.walMode") {
		cfg.Database.WALMode = true
	}
	if cfg.Database.MaxRetries == 0 {
		cfg.Database.MaxRetries = 5
	}
	if cfg.Database.RetryDelay == 0 {
		cfg.Database.RetryDelay = 5
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	return &cfg, nil
}
