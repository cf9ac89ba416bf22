package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port string

	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBTimezone   string
	DBTimeoutSec int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTLSec   int

	ElasticAddr     string
	ElasticUsername string
	ElasticPassword string

	JWTSecret        string
	JWTExpireMinutes int

	AdminUsername string
	AdminPassword string

	UploadDir string

	CORSOrigins []string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	}
	return def
}

func getenvs(key, def string) []string {
	raw := getenv(key, def)
	if raw == "*" {
		return []string{"*"}
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() *Config {
	return &Config{
		Port: getenv("PORT", "8080"),

		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       getenv("DB_USER", "postgres"),
		DBPassword:   getenv("DB_PASSWORD", "postgres"),
		DBName:       getenv("DB_NAME", "blog"),
		DBSSLMode:    getenv("DB_SSLMODE", "disable"),
		DBTimezone:   getenv("DB_TIMEZONE", "UTC"),
		DBTimeoutSec: getenvi("DB_TIMEOUT_SECONDS", 5),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvi("REDIS_DB", 0),
		CacheTTLSec:   getenvi("CACHE_TTL_SECONDS", 300),

		ElasticAddr:     getenv("ELASTICSEARCH_ADDR", "http://localhost:9200"),
		ElasticUsername: getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticPassword: getenv("ELASTICSEARCH_PASSWORD", ""),

		JWTSecret:        getenv("JWT_SECRET", "change-this-secret-in-production"),
		JWTExpireMinutes: getenvi("JWT_EXPIRE_MINUTES", 60*24*7),

		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "change-me-immediately"),

		UploadDir: getenv("UPLOAD_DIR", "uploads"),

		CORSOrigins: getenvs("CORS_ORIGINS", "*"),
	}
}
