package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"3001"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	Mongo struct {
		URI         string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
		Database    string `envconfig:"MONGO_DATABASE" default:"sample_mflix"`
		SearchIndex string `envconfig:"MONGO_SEARCH_INDEX" default:"movieSearchIndex"`
		// Timeout is in seconds.
		Timeout int `envconfig:"MONGO_TIMEOUT" default:"10"`
	}
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}
}

// MongoTimeout is the per-operation deadline applied to the MongoDB client.
func (c *Config) MongoTimeout() time.Duration {
	return time.Duration(c.Mongo.Timeout) * time.Second
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
