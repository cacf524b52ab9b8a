package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port              string
	StoreDriver       string
	SQLitePath        string
	MongoURI          string
	DBName            string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	CatalogFile       string
	CatalogCollection string
	PointsRate        float64
	JWTSecret         string
	SessionTTL        time.Duration
	SeedDemo          bool
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv reads the configuration without touching .env files.
func FromEnv() Config {
	return Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		StoreDriver:       getEnvOrDefault("STORE_DRIVER", "sqlite"),
		SQLitePath:        getEnvOrDefault("SQLITE_PATH", "codecup.db"),
		MongoURI:          getEnvOrDefault("MONGO_URI", ""),
		DBName:            getEnvOrDefault("DB_NAME", "codecup"),
		RedisAddr:         getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:           getIntEnv("REDIS_DB", 0),
		CatalogFile:       getEnvOrDefault("CATALOG_FILE", ""),
		CatalogCollection: getEnvOrDefault("CATALOG_COLLECTION", ""),
		PointsRate:        getFloatEnv("POINTS_RATE", 5),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		SessionTTL:        getDurationEnv("SESSION_TTL", 30, 24*time.Hour),
		SeedDemo:          getBoolEnv("SEED_DEMO", false),
	}
}
