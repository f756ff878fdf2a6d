package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RabbitURL string
	RedisAddr string

	JWTSecret string
	AdminPIN  string

	// EventYear is baked into every printed pass code (NY<year>-xxxxxx).
	EventYear int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "ticketing"),
		RabbitURL:  getEnv("RABBITMQ_URL", ""),
		RedisAddr:  getEnv("REDIS_ADDR", ""),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		AdminPIN:   os.Getenv("ADMIN_PIN"),
		EventYear:  2025,
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
	if cfg.AdminPIN == "" {
		log.Fatal("ADMIN_PIN environment variable is required")
	}

	if y := os.Getenv("EVENT_YEAR"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			log.Fatalf("invalid EVENT_YEAR %q: %v", y, err)
		}
		cfg.EventYear = year
	}

	return cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
