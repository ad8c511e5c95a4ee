package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are required; everything else
// has a default so the service can boot in a bare development environment.
type Config struct {
	Env     string // application environment (e.g. "dev", "prod")
	Port    string // HTTP port to listen on
	DBUser  string // database username
	DBPass  string // database password (optional)
	DBHost  string // database host address
	DBPort  string // database port number
	DBName  string // database name
	Migrate bool   // apply embedded migrations at startup

	JWTSecret string // secret used to verify bearer tokens; empty disables auth
	LogLevel  string // zap level name (debug, info, warn, error)

	AMQPURL       string // RabbitMQ connection URL; empty disables publishing
	TicketsQueue  string // queue receiving tickets.issued messages
	TicketLogPath string // file the consumer appends issued tickets to

	MaxSeatsPerEvent   int           // upper bound for total_seats on event creation
	MaxSeatsPerBooking int           // upper bound for seat ids in one claim
	BookingTimeout     time.Duration // deadline for one booking transaction
}

// Load reads configuration values from the environment (and a .env file
// when one is present) and returns a Config.  Missing required variables are
// reported together in a single error.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional

	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:     envStr("APP_ENV", "dev"),
		Port:    envStr("APP_PORT", "8080"),
		DBUser:  must("DB_USER"),
		DBPass:  os.Getenv("DB_PASS"), // empty allowed
		DBHost:  must("DB_HOST"),
		DBPort:  must("DB_PORT"),
		DBName:  must("DB_NAME"),
		Migrate: envBool("DB_MIGRATE", false),

		JWTSecret: os.Getenv("JWT_SECRET"),
		LogLevel:  envStr("LOG_LEVEL", "info"),

		AMQPURL:       amqpURL(),
		TicketsQueue:  envStr("TICKETS_QUEUE", "tickets.issued"),
		TicketLogPath: envStr("TICKET_LOG_PATH", "logs/tickets.log"),

		MaxSeatsPerEvent:   envInt("MAX_SEATS_PER_EVENT", 2000),
		MaxSeatsPerBooking: envInt("MAX_SEATS_PER_BOOKING", 10),
		BookingTimeout:     envDur("BOOKING_TIMEOUT", 5*time.Second),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if cfg.MaxSeatsPerEvent < 0 {
		cfg.MaxSeatsPerEvent = 0
	}
	if cfg.MaxSeatsPerBooking < 1 {
		cfg.MaxSeatsPerBooking = 1
	}
	if cfg.BookingTimeout <= 0 {
		cfg.BookingTimeout = 5 * time.Second
	}
	return cfg, nil
}

// AuthEnabled reports whether bearer tokens are verified on protected routes.
func (c Config) AuthEnabled() bool { return c.JWTSecret != "" }

// amqpURL prefers RABBITMQ_URL and falls back to AMQP_URL.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
