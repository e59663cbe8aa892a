package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int
	DBPath       string
	PreviewRows  int
}

// Load читает окружение; .env в рабочем каталоге подхватывается, если есть.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         getenvInt("PORT", 8082),
		AllowOrigins: splitList(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/stock-import.log"),
		MaxUploadMB:  getenvInt("MAX_UPLOAD_MB", 32),
		DBPath:       getenv("DB_PATH", "data/stock.db"),
		PreviewRows:  getenvInt("PREVIEW_ROWS", 10),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	n, err := strconv.Atoi(getenv(k, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
