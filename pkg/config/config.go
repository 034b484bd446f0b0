package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Gemini   GeminiConfig
	GigaChat GigaChatConfig
	RAG      RAGConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// GeminiConfig configures the embedding capability. The API key is required
// at construction time; there is no degraded mode without embeddings.
type GeminiConfig struct {
	APIKey         string
	EmbeddingModel string
}

// GigaChatConfig configures the plan-synthesizer LLM.
type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

// RAGConfig tunes the hybrid retrieval step. OverFetch is the raw-row
// multiplier applied before deduplication collapses chunks of the same LVA;
// AllFetchFloor bounds the "all matching" mode used for semester planning.
type RAGConfig struct {
	TopK           int
	OverFetch      int
	AllFetchFloor  int
	IdealPlanMode  string
	IdealPlanStart string
}

func Load() (*Config, error) {
	// Optional .env file; plain environment variables work too (Docker/K8s).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	ragTopK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "20"))
	ragOverFetch, _ := strconv.Atoi(getEnv("RAG_OVER_FETCH", "20"))
	ragAllFloor, _ := strconv.Atoi(getEnv("RAG_ALL_FETCH_FLOOR", "5000"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "studyverse"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		RAG: RAGConfig{
			TopK:           ragTopK,
			OverFetch:      ragOverFetch,
			AllFetchFloor:  ragAllFloor,
			IdealPlanMode:  getEnv("IDEAL_PLAN_STUDY_MODE", "Teilzeit"),
			IdealPlanStart: getEnv("IDEAL_PLAN_START_MODE", "Start_WS"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
