package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	TokenKey      string
	WorksheetPath string
	TLSCert       string
	TLSKey        string
	LogLevel      string
	LogFormat     string
}

var ErrNoTokenKey = errors.New("TOKEN_KEY environment variable is not set")

// FromEnv reads the process environment after loading .env when one exists.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	c := Config{
		Addr:          env("ADDR", ":8080"),
		DatabaseURL:   env("DATABASE_URL", "memory"),
		TokenKey:      os.Getenv("TOKEN_KEY"),
		WorksheetPath: env("WORKSHEET_CONFIG", "conf/worksheet.ini"),
		TLSCert:       os.Getenv("TLS_CERT"),
		TLSKey:        os.Getenv("TLS_KEY"),
		LogLevel:      env("LOG_LEVEL", "info"),
		LogFormat:     env("LOG_FORMAT", "text"),
	}
	if c.TokenKey == "" {
		return Config{}, ErrNoTokenKey
	}
	return c, nil
}

func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// SetupLogger configures the standard logrus logger.
func SetupLogger(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	if strings.EqualFold(format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
