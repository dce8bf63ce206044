package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Gemini      GeminiConfig
	HuggingFace HuggingFaceConfig
	Qdrant      QdrantConfig
	Storage     StorageConfig
	Worker      WorkerConfig
	Matching    MatchingConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type GeminiConfig struct {
	APIKey string
}

type HuggingFaceConfig struct {
	Token          string
	SimilarityURL  string
	ChatURL        string
	ChatModel      string
	RequestTimeout time.Duration
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency  int
	PollInterval time.Duration
}

// MatchingConfig selects the active similarity strategy and the shortlist
// behavior. Strategy is one of "token-overlap", "embedding" or "remote".
type MatchingConfig struct {
	Strategy       string
	ShortlistSize  int
	DemoteOverflow bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "skillalign"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "supersecretkey"),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", "24h"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		HuggingFace: HuggingFaceConfig{
			Token:          getEnv("HF_TOKEN", ""),
			SimilarityURL:  getEnv("HF_SIMILARITY_URL", "https://router.huggingface.co/hf-inference/models/sentence-transformers/all-MiniLM-L6-v2"),
			ChatURL:        getEnv("HF_CHAT_URL", "https://router.huggingface.co/v1/chat/completions"),
			ChatModel:      getEnv("HF_CHAT_MODEL", "openai/gpt-oss-20b:groq"),
			RequestTimeout: getEnvAsDuration("HF_REQUEST_TIMEOUT", "60s"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "skillalign_resumes"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:  getEnvAsInt("WORKER_CONCURRENCY", 3),
			PollInterval: getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
		},
		Matching: MatchingConfig{
			Strategy:       getEnv("MATCH_STRATEGY", "token-overlap"),
			ShortlistSize:  getEnvAsInt("SHORTLIST_SIZE", 10),
			DemoteOverflow: getEnvAsBool("SHORTLIST_DEMOTE_OVERFLOW", true),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
