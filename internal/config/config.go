package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"CLIENT_URL"`
	} `yaml:"server"`

	Database struct {
		Host            string        `yaml:"host" env:"DB_HOST"`
		Port            string        `yaml:"port" env:"DB_PORT"`
		User            string        `yaml:"user" env:"DB_USER"`
		Password        string        `yaml:"password" env:"DB_PASSWORD"`
		DBName          string        `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string        `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	// Mongo holds the student record store settings. Driver "memory" keeps
	// records in process, which is only meant for local runs.
	Mongo struct {
		Driver         string        `yaml:"driver" env:"STORE_DRIVER"`
		URI            string        `yaml:"uri" env:"MONGO_URI"`
		Database       string        `yaml:"database" env:"MONGO_DATABASE"`
		Collection     string        `yaml:"collection" env:"MONGO_COLLECTION"`
		ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT"`
	} `yaml:"mongo"`

	Redis struct {
		Enabled  bool          `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
		Password string        `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"REDIS_DB"`
		PoolSize int           `yaml:"pool_size" env:"REDIS_POOL_SIZE"`
		CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL"`
	} `yaml:"redis"`

	JWT struct {
		Secret                string        `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration time.Duration `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string        `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		AdminEmail      string `yaml:"admin_email" env:"ADMIN_EMAIL"`
		AdminPassword   string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
		StudentPassword string `yaml:"student_password" env:"STUDENT_PASSWORD"`
	} `yaml:"auth"`

	Export struct {
		DateLayout string `yaml:"date_layout" env:"EXPORT_DATE_LAYOUT"`
		Timezone   string `yaml:"timezone" env:"EXPORT_TIMEZONE"`
	} `yaml:"export"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, an optional .env file and
// environment variables, in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = []string{"http://localhost:5173"}

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "placement_portal"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = time.Hour
	config.Database.MigrationsDir = "migrations"

	config.Mongo.Driver = "mongo"
	config.Mongo.URI = "mongodb://localhost:27017"
	config.Mongo.Database = "placement_portal"
	config.Mongo.Collection = "students"
	config.Mongo.ConnectTimeout = 10 * time.Second

	config.Redis.Addr = "localhost:6379"
	config.Redis.PoolSize = 10
	config.Redis.CacheTTL = 5 * time.Minute

	config.JWT.AccessTokenExpiration = 24 * time.Hour
	config.JWT.Issuer = "placement-portal"

	config.Export.DateLayout = "1/2/2006"
	config.Export.Timezone = "UTC"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.JWT.AccessTokenExpiration <= 0 {
		return fmt.Errorf("JWT access token expiration must be positive")
	}

	if config.Mongo.ConnectTimeout <= 0 {
		return fmt.Errorf("mongo connect timeout must be positive")
	}

	switch config.Mongo.Driver {
	case "mongo":
		if config.Mongo.URI == "" {
			return fmt.Errorf("mongo uri is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store driver %q", config.Mongo.Driver)
	}

	if config.Auth.AdminEmail == "" || config.Auth.AdminPassword == "" {
		return fmt.Errorf("admin credentials are required")
	}

	if config.Auth.StudentPassword == "" {
		return fmt.Errorf("student password is required")
	}

	if _, err := time.LoadLocation(config.Export.Timezone); err != nil {
		return fmt.Errorf("invalid export timezone: %w", err)
	}

	if config.Redis.Enabled && config.Redis.CacheTTL <= 0 {
		return fmt.Errorf("redis cache ttl must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// ExportLocation returns the timezone used when rendering export dates.
// The zone is checked in validateConfig, so UTC is only a fallback.
func (c *Config) ExportLocation() *time.Location {
	loc, err := time.LoadLocation(c.Export.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(GetEnv(key, "")) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
