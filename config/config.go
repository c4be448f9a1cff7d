package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL      string
	JWTSecret        string
	JWTExpiration    time.Duration
	ServerHost       string
	ServerPort       string
	Timezone         string
	GeocodeEndpoint  string
	GeocodeCacheSize int
	GeocodeCacheTTL  time.Duration
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DATABASE_URL", "postgresql://postgres@localhost:5432/tcponto")
	v.SetDefault("JWT_SECRET", "your-super-secret-key-change-in-production")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("GEOCODE_ENDPOINT", "https://nominatim.openstreetmap.org/reverse")
	v.SetDefault("GEOCODE_CACHE_SIZE", 500)
	v.SetDefault("GEOCODE_CACHE_TTL", "1h")

	return &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTExpiration:    v.GetDuration("JWT_EXPIRATION"),
		ServerHost:       v.GetString("SERVER_HOST"),
		ServerPort:       v.GetString("SERVER_PORT"),
		Timezone:         v.GetString("TIMEZONE"),
		GeocodeEndpoint:  v.GetString("GEOCODE_ENDPOINT"),
		GeocodeCacheSize: v.GetInt("GEOCODE_CACHE_SIZE"),
		GeocodeCacheTTL:  v.GetDuration("GEOCODE_CACHE_TTL"),
	}
}

// Location resolves the configured timezone. Punch times are wall-clock
// values in this zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
