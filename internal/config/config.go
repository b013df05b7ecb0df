package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment names recognized at startup.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
)

// Config holds application level configuration loaded from environment
// variables. It is built once at startup and passed by reference; nothing
// mutates it afterwards.
type Config struct {
	Env        string
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string
}

// Load builds Config from the environment selected by APP_ENV. A missing
// JWT secret or an unknown environment is a startup error; the caller is
// expected to exit rather than serve with guessed values.
func Load() (*Config, error) {
	env := getEnv("APP_ENV", EnvDevelopment)

	var dsn string
	var redisDB int
	switch env {
	case EnvDevelopment:
		dsn = getEnv("MYSQL_DSN", "todo:todo@tcp(localhost:3306)/todos?charset=utf8mb4&parseTime=True&loc=Local")
		redisDB = getEnvInt("REDIS_DB", 0)
	case EnvTest:
		dsn = getEnv("MYSQL_DSN", "todo:todo@tcp(localhost:3306)/todos_test?charset=utf8mb4&parseTime=True&loc=Local")
		redisDB = getEnvInt("REDIS_DB", 1)
	default:
		return nil, fmt.Errorf("unknown environment %q", env)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("missing required environment variable: JWT_SECRET")
	}

	return &Config{
		Env:        env,
		ServerPort: getEnv("SERVER_PORT", "3000"),
		MySQLDSN:   dsn,
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    redisDB,
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  secret,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
