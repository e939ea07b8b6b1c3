// Package config manages environment variables.
//
// It reads variables from the environment (and a `.env` file when present),
// loads them into structured Go types, validates that required values are
// present, and reads the capacity query template from disk.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Read the SQL template once; the returned Config is never mutated afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	`koanf` reads config sources and unmarshals them into the structs below.

	Two env sources are loaded, in order:
	- Prefixed keys: CAPACITY_<SECTION>__<FIELD>. The prefix is removed, the key
	  lowercased and "__" turned into the "." nesting delimiter, e.g.
	  CAPACITY_SERVER__PORT -> server.port -> Config.Server.Port
	- The two deployment-level keys shared with the database tooling:
	  DB_DSN -> database.dsn, SQL_FILE_PATH -> query.sql_file_path
*/

const (
	envPrefix = "CAPACITY_"

	// DefaultSQLFilePath is used when SQL_FILE_PATH is not set.
	DefaultSQLFilePath = "sql/capacity_rolling.sql"
)

// ErrMissingDSN is returned when no database connection string is configured.
var ErrMissingDSN = errors.New("DB_DSN not found, set it in the environment or a .env file")

// Config is the root configuration object for the application.
//
// It is built once by LoadConfig and shared by pointer; nothing writes to it
// after startup.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Query         QueryConfig          `koanf:"query" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// StaticDir holds the docs page and OpenAPI document served under /static.
	StaticDir string `koanf:"static_dir" validate:"required"`
}

// DatabaseConfig contains the PostgreSQL connection string and query limits.
type DatabaseConfig struct {
	DSN string `koanf:"dsn" validate:"required"`

	// QueryTimeout bounds a single capacity query, connection included.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"min=1s"`

	// MigrateOnStart applies the embedded migrations before serving.
	MigrateOnStart bool `koanf:"migrate_on_start"`
}

// QueryConfig points at the SQL template file and holds its contents.
type QueryConfig struct {
	SQLFilePath string `koanf:"sql_file_path" validate:"required"`

	// Template is read from SQLFilePath by LoadConfig, never from the environment.
	Template string `koanf:"-"`
}

// DefaultConfig returns the values used for every key the environment omits.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "8000",
			ReadTimeout:        30,
			WriteTimeout:       60,
			IdleTimeout:        120,
			CORSAllowedOrigins: []string{"*"},
			StaticDir:          "static",
		},
		Database: DatabaseConfig{
			QueryTimeout: 30 * time.Second,
		},
		Query: QueryConfig{
			SQLFilePath: DefaultSQLFilePath,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config structs, validates it, and reads the query template.
//
// Behavior summary:
//   - Starts from DefaultConfig
//   - Loads CAPACITY_ prefixed env vars, then DB_DSN and SQL_FILE_PATH
//   - Validates required config blocks/fields
//   - Overrides observability service name + environment
//   - Reads the SQL template; a missing, unreadable or empty file is an error
//
// Every error returned here is fatal for the process: the caller must not
// start serving.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load prefixed env variables: %w", err)
	}

	// An empty key tells the provider to skip the variable.
	err = k.Load(env.Provider("", ".", func(s string) string {
		switch s {
		case "DB_DSN":
			return "database.dsn"
		case "SQL_FILE_PATH":
			return "query.sql_file_path"
		default:
			return ""
		}
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				if fe.Namespace() == "Config.Database.DSN" {
					return nil, ErrMissingDSN
				}
			}
		}
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service naming is fixed so logs and traces stay consistent.
	mainConfig.Observability.ServiceName = "capacity-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	mainConfig.Query.SQLFilePath = ResolvePath(mainConfig.Query.SQLFilePath)
	mainConfig.Server.StaticDir = ResolvePath(mainConfig.Server.StaticDir)

	template, err := LoadQueryTemplate(mainConfig.Query.SQLFilePath)
	if err != nil {
		return nil, err
	}
	mainConfig.Query.Template = template

	return mainConfig, nil
}

// ResolvePath returns path unchanged when it is absolute or exists relative to
// the working directory. Otherwise it is resolved against the directory of the
// running executable, so the binary finds sql/ and static/ next to itself when
// started from elsewhere.
func ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}

	exe, err := os.Executable()
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(exe), path)
}

// LoadQueryTemplate reads the SQL template at path.
func LoadQueryTemplate(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read SQL template %q: %w", path, err)
	}

	template := strings.TrimSpace(string(raw))
	if template == "" {
		return "", fmt.Errorf("SQL template %q is empty", path)
	}

	return template, nil
}

// IsLocal reports whether the process runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
