package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

// DatabaseOptions holds the Postgres connection settings.
// DATABASE_URL wins over the individual DB_* variables.
type DatabaseOptions struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// ConnectionString returns the DSN handed to the pgx driver
func (d *DatabaseOptions) ConnectionString() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode), nil
}

type LogOptions struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text or json
}

type GoogleOptions struct {
	CredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	CredentialsJSON string `env:"GOOGLE_APPLICATION_CREDENTIALS_JSON"`
}

// Enabled reports whether Drive imports can be configured
func (g *GoogleOptions) Enabled() bool {
	return g.CredentialsPath != "" || g.CredentialsJSON != ""
}

type Configuration struct {
	Env        string `env:"ENV" envDefault:"development"`
	Port       string `env:"PORT" envDefault:"8080"`
	ChromePath string `env:"CHROME_PATH"`

	Database DatabaseOptions
	Log      LogOptions
	Google   GoogleOptions
}

// Address returns the listen address. Render and similar hosts send PORT
// without the leading colon, some local setups send it with one.
func (c *Configuration) Address() string {
	return "0.0.0.0:" + strings.TrimPrefix(c.Port, ":")
}

// Load reads .env files outside production and parses the environment
func Load(envFiles ...string) (*Configuration, error) {
	if os.Getenv("ENV") != Production {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		for _, file := range envFiles {
			// Overload so values in .env win over stale shell variables
			if err := godotenv.Overload(file); err != nil {
				logrus.Debugf("⚠️  Load: %s not loaded, using system environment variables: %v", file, err)
				continue
			}
			logrus.Debugf("✓ Load: environment variables loaded from %s", file)
		}
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// ConfigureLogger applies the log level and format to the standard logrus logger
func (c *Configuration) ConfigureLogger() error {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.Log.Level, err)
	}
	logrus.SetLevel(level)

	switch strings.ToLower(c.Log.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
