package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the route printing service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - Interval: The duration between polling cycles.
// - Cooldown: The wait after a failed polling cycle.
// - Simulation: Whether the built-in simulated route source is used.
// - Source, Printer, Ledger: Settings of the route source, the label printer and the ledger.
// - Database, Redis: Connection settings used by the postgres and redis ledger backends.
type Config struct {
	Env        string         `validate:"required"`         // Env is the current environment: local, development, production.
	Port       int            `validate:"min=1,max=65535"`  // Port is the monitoring server port.
	Interval   time.Duration  `validate:"gt=0"`             // The duration between polling cycles.
	Cooldown   time.Duration  `validate:"gt=0"`             // The wait after a failed cycle.
	Simulation bool           // Simulation selects the simulated route source.
	Source     SourceConfig   // Source holds the live route API configuration
	Printer    PrinterConfig  // Printer holds the label printer address
	Ledger     LedgerConfig   // Ledger selects the ledger backend
	Database   PostgresConfig // Database holds the postgres database configuration
	Redis      RedisConfig    // Redis holds the redis server configuration
}

// SourceConfig configures the live route API.
type SourceConfig struct {
	BaseURL   string `validate:"omitempty,url"`
	APIKey    string
	RateLimit int `validate:"min=0"` // requests per second
}

// PrinterConfig is the network address of the label printer.
type PrinterConfig struct {
	Host    string        `validate:"required"`
	Port    int           `validate:"min=1,max=65535"`
	Timeout time.Duration `validate:"gt=0"`
}

// LedgerConfig selects where processed route ids are kept.
type LedgerConfig struct {
	Backend string `validate:"oneof=file postgres redis"`
	Path    string `validate:"required_if=Backend file"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// RedisConfig struct holds the address and key of the redis ledger.
type RedisConfig struct {
	Addr string
	DB   int `validate:"min=0"`
	Key  string
}

// MustLoad loads the configuration from the environment, an optional .env file and an
// optional config file named by HERMES_CONFIG. It panics on invalid values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := newViper()

	if path := v.GetString("HERMES_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("HERMES_INTERVAL"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	cooldown, err := time.ParseDuration(v.GetString("HERMES_COOLDOWN"))
	if err != nil {
		panic("failed to parse cooldown from configuration")
	}

	healthPort, err := strconv.Atoi(v.GetString("HERMES_HEALTH_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	printerPort, err := strconv.Atoi(v.GetString("PRINTER_PORT"))
	if err != nil {
		panic("failed to parse printer port from configuration, must be an integer types")
	}

	printerTimeout, err := time.ParseDuration(v.GetString("PRINTER_TIMEOUT"))
	if err != nil {
		panic("failed to parse printer timeout from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("SOURCE_RATE_LIMIT"))
	if err != nil {
		panic("failed to parse source rate limit from configuration, must be an integer types")
	}

	redisDB, err := strconv.Atoi(v.GetString("REDIS_DB"))
	if err != nil {
		panic("failed to parse redis database from configuration, must be an integer types")
	}

	cfg := &Config{
		Env:        v.GetString("HERMES_ENV"),
		Port:       healthPort,
		Interval:   interval,
		Cooldown:   cooldown,
		Simulation: strings.EqualFold(v.GetString("FLEX_SIMULATION_MODE"), "true"),
		Source: SourceConfig{
			BaseURL:   v.GetString("SOURCE_BASE_URL"),
			APIKey:    v.GetString("SOURCE_API_KEY"),
			RateLimit: rateLimit,
		},
		Printer: PrinterConfig{
			Host:    v.GetString("PRINTER_HOST"),
			Port:    printerPort,
			Timeout: printerTimeout,
		},
		Ledger: LedgerConfig{
			Backend: strings.ToLower(v.GetString("LEDGER_BACKEND")),
			Path:    v.GetString("LEDGER_PATH"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr: v.GetString("REDIS_ADDR"),
			DB:   redisDB,
			Key:  v.GetString("REDIS_KEY"),
		},
	}

	validate := validator.New()
	validate.RegisterStructValidation(validateLedgerBackend, Config{})

	if err = validate.Struct(cfg); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return cfg
}

// validateLedgerBackend requires the connection settings of the selected ledger backend.
func validateLedgerBackend(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}

	switch cfg.Ledger.Backend {
	case "postgres":
		if cfg.Database.Host == "" {
			sl.ReportError(cfg.Database.Host, "Database.Host", "Host", "required_for_postgres", "")
		}
		if cfg.Database.User == "" {
			sl.ReportError(cfg.Database.User, "Database.User", "User", "required_for_postgres", "")
		}
		if cfg.Database.Name == "" {
			sl.ReportError(cfg.Database.Name, "Database.Name", "Name", "required_for_postgres", "")
		}
	case "redis":
		if cfg.Redis.Addr == "" {
			sl.ReportError(cfg.Redis.Addr, "Redis.Addr", "Addr", "required_for_redis", "")
		}
	}
}

// newViper returns a viper instance reading every key from the environment, with defaults.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := map[string]any{
		"HERMES_ENV":           "production",
		"HERMES_HEALTH_PORT":   "8080",
		"HERMES_INTERVAL":      "15m",
		"HERMES_COOLDOWN":      "60s",
		"FLEX_SIMULATION_MODE": "true",
		"SOURCE_RATE_LIMIT":    "5",
		"PRINTER_HOST":         "192.168.1.100",
		"PRINTER_PORT":         "9100",
		"PRINTER_TIMEOUT":      "5s",
		"LEDGER_BACKEND":       "file",
		"LEDGER_PATH":          "processed_routes.json",
		"DB_PORT":              "5432",
		"REDIS_ADDR":           "localhost:6379",
		"REDIS_DB":             "0",
		"REDIS_KEY":            "hermes:processed_routes",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()
	// PRINTER_IP is the older name of PRINTER_HOST.
	_ = v.BindEnv("PRINTER_HOST", "PRINTER_HOST", "PRINTER_IP")

	return v
}
