package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultSecretKey     = "change-me"
	DefaultAdminPassword = "admin123"
)

type Config struct {
	ServerPort int

	DatabaseURL string

	SecretKey         []byte
	AdminPassword     string
	AdminPasswordHash string
	SessionTTL        time.Duration
	CookieSecure      bool

	StaticDir string
	UploadDir string

	LogLevel string

	KafkaBrokers []string
	KafkaTopic   string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("notice: .env file not found, using system environment variables", "error", err)
	}
	return Load()
}

func Load() *Config {
	staticDir := EnvDefault("STATIC_DIR", "static")

	return &Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 5000),

		DatabaseURL: EnvDefault("DATABASE_URL", "instance/restaurant.sqlite"),

		SecretKey:         []byte(EnvDefault("SECRET_KEY", DefaultSecretKey)),
		AdminPassword:     EnvDefault("ADMIN_PASSWORD", DefaultAdminPassword),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionTTL:        time.Duration(EnvIntDefault("SESSION_TTL", 12)) * time.Hour,
		CookieSecure:      EnvBoolDefault("COOKIE_SECURE", false),

		StaticDir: staticDir,
		UploadDir: EnvDefault("UPLOAD_DIR", staticDir+"/uploads"),

		LogLevel: os.Getenv("LOG_LEVEL"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   EnvDefault("KAFKA_TOPIC", "order_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "items"),
	}
}

// InsecureDefaults names the settings still running on their built-in values.
func (c *Config) InsecureDefaults() []string {
	var out []string
	if string(c.SecretKey) == DefaultSecretKey {
		out = append(out, "SECRET_KEY")
	}
	if c.AdminPasswordHash == "" && c.AdminPassword == DefaultAdminPassword {
		out = append(out, "ADMIN_PASSWORD")
	}
	return out
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
