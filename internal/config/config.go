package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string

	ServerPort string

	JWTSecret         string
	AccessTokenMaxAge int
	CookieSecure      bool

	DisplayTimezone    string
	CORSAllowedOrigins []string

	OTELEndpoint     string
	OTELServiceName  string
	OTELSamplerRatio float64
}

// ErrMissingJWTSecret is returned by Validate when sessions cannot be signed.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

var defaults = map[string]any{
	"DB_HOST":                     "localhost",
	"DB_PORT":                     "5432",
	"DB_USER":                     "postgres",
	"DB_NAME":                     "minisocial",
	"DB_SSLMODE":                  "disable",
	"SERVER_PORT":                 "8080",
	"ACCESS_TOKEN_MAX_AGE":        604800,
	"COOKIE_SECURE":               false,
	"DISPLAY_TIMEZONE":            "",
	"CORS_ALLOWED_ORIGINS":        "*",
	"OTEL_SERVICE_NAME":           "minisocial",
	"OTEL_TRACES_SAMPLER_ARG":     1.0,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	return fromViper(newViper()), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) *Config {
	accessTokenMaxAge := v.GetInt("ACCESS_TOKEN_MAX_AGE")
	if accessTokenMaxAge <= 0 {
		accessTokenMaxAge = defaults["ACCESS_TOKEN_MAX_AGE"].(int)
	}

	ratio := v.GetFloat64("OTEL_TRACES_SAMPLER_ARG")
	if ratio < 0 || ratio > 1 {
		ratio = 1.0
	}

	databaseURL := v.GetString("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = buildDSN(v)
	}

	return &Config{
		DatabaseURL: databaseURL,

		ServerPort: v.GetString("SERVER_PORT"),

		JWTSecret:         v.GetString("JWT_SECRET"),
		AccessTokenMaxAge: accessTokenMaxAge,
		CookieSecure:      v.GetBool("COOKIE_SECURE"),

		DisplayTimezone:    v.GetString("DISPLAY_TIMEZONE"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		OTELEndpoint:     v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTELServiceName:  v.GetString("OTEL_SERVICE_NAME"),
		OTELSamplerRatio: ratio,
	}
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func buildDSN(v *viper.Viper) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(v.GetString("DB_USER"), v.GetString("DB_PASSWORD")),
		Host:   fmt.Sprintf("%s:%s", v.GetString("DB_HOST"), v.GetString("DB_PORT")),
		Path:   v.GetString("DB_NAME"),
	}
	q := u.Query()
	q.Set("sslmode", v.GetString("DB_SSLMODE"))
	u.RawQuery = q.Encode()
	return u.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
