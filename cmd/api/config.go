package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"bookshelf/internal/catalog"

	"github.com/joho/godotenv"
)

type config struct {
	Addr           string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
	Fines          catalog.FinePolicy
	SeedFile       string
	Greeting       string
	EnableHSTS     bool
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func loadConfig() config {
	return config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		Fines: catalog.FinePolicy{
			FreeDays: getEnvInt("FINE_FREE_DAYS", catalog.DefaultFreeDays),
			PerDay:   getEnvInt("FINE_PER_DAY", catalog.DefaultFinePerDay),
		},
		SeedFile:   os.Getenv("CATALOG_SEED_FILE"),
		Greeting:   os.Getenv("APP_GREETING"),
		EnableHSTS: os.Getenv("ENABLE_HSTS") == "true",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("config: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("config: invalid %s=%q, using default %g", key, v, def)
		return def
	}
	return f
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
