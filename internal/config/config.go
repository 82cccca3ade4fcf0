package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded from CONECTAR_-prefixed environment variables.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DBPath       string `envconfig:"DB_PATH" default:""`
	SecretKey    string `envconfig:"SECRET_KEY" default:"change_me_in_production"`
	CookieSecure bool   `envconfig:"COOKIE_SECURE" default:"false"`
	Timezone     string `envconfig:"TZ" default:"America/Santiago"`

	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiTextModel  string `envconfig:"GEMINI_TEXT_MODEL" default:""`
	GeminiImageModel string `envconfig:"GEMINI_IMAGE_MODEL" default:""`

	FlowTTLMinutes int `envconfig:"FLOW_TTL_MINUTES" default:"30"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("conectar", &cfg); err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "conectar.db")
	}
	return cfg, nil
}
