package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"

	AuthFirebase = "firebase"
	AuthStatic   = "static"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Firebase FirebaseConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Auth     AuthConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string   `envconfig:"PORT" default:"8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"firestore"`
}

type FirebaseConfig struct {
	ProjectID       string `envconfig:"FIREBASE_PROJECT_ID"`
	CredentialsPath string `envconfig:"FIREBASE_CREDENTIALS_PATH"`
	// Web API key used for the Identity Toolkit password sign-in endpoint.
	APIKey             string `envconfig:"FIREBASE_API_KEY"`
	IdentityToolkitURL string `envconfig:"IDENTITY_TOOLKIT_URL" default:"https://identitytoolkit.googleapis.com"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type DatabaseConfig struct {
	// SQLDriver is the database/sql driver name: "postgres" (lib/pq) or "pgx".
	SQLDriver string `envconfig:"DB_SQL_DRIVER" default:"postgres"`
	Host      string `envconfig:"DB_HOST" default:"localhost"`
	Port      int    `envconfig:"DB_PORT" default:"5432"`
	User      string `envconfig:"DB_USER" default:"postgres"`
	Password  string `envconfig:"DB_PASSWORD"`
	Name      string `envconfig:"DB_NAME" default:"portfolio"`
}

type AuthConfig struct {
	Driver            string        `envconfig:"AUTH_DRIVER" default:"firebase"`
	AdminEmail        string        `envconfig:"ADMIN_EMAIL"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	ResolveTimeout    time.Duration `envconfig:"SESSION_RESOLVE_TIMEOUT" default:"2s"`
	LoginRatePerMin   int           `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	SecureCookies     bool          `envconfig:"SECURE_COOKIES" default:"true"`
}

type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"portfolio"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case StoreFirestore:
		if c.Firebase.ProjectID == "" && c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID or FIREBASE_CREDENTIALS_PATH is required for the firestore store")
		}
	case StorePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.SQLDriver != "postgres" && c.Database.SQLDriver != "pgx" {
			return fmt.Errorf("unknown DB_SQL_DRIVER %q", c.Database.SQLDriver)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Auth.Driver {
	case AuthFirebase:
		if c.Firebase.APIKey == "" {
			return fmt.Errorf("FIREBASE_API_KEY is required for firebase auth")
		}
	case AuthStatic:
		if c.Auth.AdminEmail == "" || c.Auth.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required for static auth")
		}
	default:
		return fmt.Errorf("unknown AUTH_DRIVER %q", c.Auth.Driver)
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	return nil
}

// NeedsFirebase reports whether any component talks to the Firebase Admin SDK.
func (c *Config) NeedsFirebase() bool {
	return c.Store.Driver == StoreFirestore || c.Auth.Driver == AuthFirebase
}

func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
