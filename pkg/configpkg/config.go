// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver             string        `mapstructure:"DB_DRIVER"`
	DBSource             string        `mapstructure:"DB_SOURCE"`
	ServerAddress        string        `mapstructure:"SERVER_ADDRESS"`
	TokenSymmetricKey    string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration  time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`
	Environment          string        `mapstructure:"GO_ENV"`
	// RedisAddress is optional. An empty value disables the balance cache.
	RedisAddress    string        `mapstructure:"REDIS_ADDRESS"`
	BalanceCacheTTL time.Duration `mapstructure:"BALANCE_CACHE_TTL"`
}

// IsDevelopment reports whether the app runs in the development environment.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("ACCESS_TOKEN_DURATION", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("BALANCE_CACHE_TTL", 10*time.Minute)
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("GO_ENV", "production")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
