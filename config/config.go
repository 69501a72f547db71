package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Services ServicesConfig
	Client   ClientConfig
	Log      LogConfig
	Devstack DevstackConfig
}

// ServicesConfig holds the base URLs of the five platform services.
// An explicit *_URL wins; otherwise the URL is assembled from
// API_PROTOCOL/API_HOST and the per-service port.
type ServicesConfig struct {
	AuthURL         string
	UserURL         string
	OrderURL        string
	RestaurantURL   string
	NotificationURL string
}

type ClientConfig struct {
	RequestTimeout time.Duration
	// StatePath is where the authenticated session is persisted between
	// runs. Empty means <user config dir>/foodexpress/auth.json.
	StatePath string
	// MenuRefreshSpec is a cron expression for periodic menu reloads.
	// Empty disables the refresher; the menu is still loaded at startup
	// and on explicit reload.
	MenuRefreshSpec string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// DevstackConfig configures the local platform stub (cmd/devstack).
type DevstackConfig struct {
	AuthPort         string
	UserPort         string
	OrderPort        string
	RestaurantPort   string
	NotificationPort string
	GinMode          string

	// DatabaseDSN selects postgres when set; empty falls back to a local
	// sqlite file so the stub runs with zero setup.
	DatabaseDSN string
	SQLitePath  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Services: ServicesConfig{
			AuthURL:         serviceURL("AUTH_URL", "AUTH_PORT", 8001),
			UserURL:         serviceURL("USER_URL", "USER_PORT", 8002),
			OrderURL:        serviceURL("ORDER_URL", "ORDER_PORT", 8003),
			RestaurantURL:   serviceURL("RESTAURANT_URL", "RESTAURANT_PORT", 8004),
			NotificationURL: serviceURL("NOTIFICATION_URL", "NOTIFICATION_PORT", 8005),
		},
		Client: ClientConfig{
			RequestTimeout:  parseDuration(getEnv("REQUEST_TIMEOUT", "15s"), 15*time.Second),
			StatePath:       getEnv("STATE_PATH", ""),
			MenuRefreshSpec: getEnv("MENU_REFRESH_CRON", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Devstack: DevstackConfig{
			AuthPort:           getEnv("DEVSTACK_AUTH_PORT", "8001"),
			UserPort:           getEnv("DEVSTACK_USER_PORT", "8002"),
			OrderPort:          getEnv("DEVSTACK_ORDER_PORT", "8003"),
			RestaurantPort:     getEnv("DEVSTACK_RESTAURANT_PORT", "8004"),
			NotificationPort:   getEnv("DEVSTACK_NOTIFICATION_PORT", "8005"),
			GinMode:            getEnv("GIN_MODE", "debug"),
			DatabaseDSN:        getEnv("DEVSTACK_DATABASE_DSN", ""),
			SQLitePath:         getEnv("DEVSTACK_SQLITE_PATH", "devstack.db"),
			RedisAddr:          getEnv("DEVSTACK_REDIS_ADDR", ""),
			RedisPassword:      getEnv("DEVSTACK_REDIS_PASSWORD", ""),
			RedisDB:            parseInt(getEnv("DEVSTACK_REDIS_DB", "0")),
			JWTSecret:          getEnv("DEVSTACK_JWT_SECRET", "devstack-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("DEVSTACK_ACCESS_TOKEN_EXPIRY", "15m"), 15*time.Minute),
			RefreshTokenExpiry: parseDuration(getEnv("DEVSTACK_REFRESH_TOKEN_EXPIRY", "168h"), 168*time.Hour),
		},
	}

	return config, nil
}

// serviceURL resolves one platform service endpoint the way the web client
// did: explicit URL, or protocol://host:port from shared env vars.
func serviceURL(urlKey, portKey string, defaultPort int) string {
	if explicit := os.Getenv(urlKey); explicit != "" {
		return strings.TrimRight(explicit, "/")
	}
	protocol := getEnv("API_PROTOCOL", "http")
	host := getEnv("API_HOST", "localhost")
	port := getEnv(portKey, strconv.Itoa(defaultPort))
	return fmt.Sprintf("%s://%s:%s", protocol, host, port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration %q, using %s", value, fallback)
		return fallback
	}
	return d
}

func parseInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
