package config

import (
	"log"
	"os"
	"strconv"

	"storefront-assistant-be/pkg/dialogue/handoff"
	"storefront-assistant-be/pkg/dialogue/quality"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Dialogue DialogueConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	JwtSecret    string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string
}

// DialogueConfig carries the tunable knobs of the dialogue pipeline.
// Defaults match the calibrated production values.
type DialogueConfig struct {
	MinExchanges           int
	MinNeedsScore          int
	NeedsScoreOverrideTurn int

	ProductThreshold   float64
	VisualThreshold    float64
	PageThreshold      float64
	LowConfidenceScore float64
	CardThreshold      float64
	MaxCards           int

	RiskWeights   handoff.RiskWeights
	QualityDeltas quality.Deltas

	InactivityMinutes int
	EndedTopic        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	weights := handoff.DefaultRiskWeights()
	deltas := quality.DefaultDeltas()

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JwtSecret:    getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.0-flash"),
		},
		Dialogue: DialogueConfig{
			MinExchanges:           getEnvAsInt("DISCOVERY_MIN_EXCHANGES", 3),
			MinNeedsScore:          getEnvAsInt("DISCOVERY_MIN_NEEDS_SCORE", 3),
			NeedsScoreOverrideTurn: getEnvAsInt("DISCOVERY_OVERRIDE_TURN", 5),
			ProductThreshold:       getEnvAsFloat("RETRIEVAL_PRODUCT_THRESHOLD", 0.38),
			VisualThreshold:        getEnvAsFloat("RETRIEVAL_VISUAL_THRESHOLD", 0.32),
			PageThreshold:          getEnvAsFloat("RETRIEVAL_PAGE_THRESHOLD", 0.45),
			LowConfidenceScore:     getEnvAsFloat("RETRIEVAL_LOW_CONFIDENCE_SCORE", 0.45),
			CardThreshold:          getEnvAsFloat("RETRIEVAL_CARD_THRESHOLD", 0.42),
			MaxCards:               getEnvAsInt("RETRIEVAL_MAX_CARDS", 3),
			RiskWeights: handoff.RiskWeights{
				LowConfidence:     getEnvAsInt("HANDOFF_WEIGHT_LOW_CONFIDENCE", weights.LowConfidence),
				UncertainResponse: getEnvAsInt("HANDOFF_WEIGHT_UNCERTAIN_RESPONSE", weights.UncertainResponse),
				NegativeSentiment: getEnvAsInt("HANDOFF_WEIGHT_NEGATIVE_SENTIMENT", weights.NegativeSentiment),
			},
			QualityDeltas: quality.Deltas{
				PurchaseIntent:   getEnvAsInt("QUALITY_DELTA_PURCHASE_INTENT", deltas.PurchaseIntent),
				Satisfaction:     getEnvAsInt("QUALITY_DELTA_SATISFACTION", deltas.Satisfaction),
				HealthyLength:    getEnvAsInt("QUALITY_DELTA_HEALTHY_LENGTH", deltas.HealthyLength),
				ProductsShown:    getEnvAsInt("QUALITY_DELTA_PRODUCTS_SHOWN", deltas.ProductsShown),
				NaturalEnding:    getEnvAsInt("QUALITY_DELTA_NATURAL_ENDING", deltas.NaturalEnding),
				RepeatedQuestion: getEnvAsInt("QUALITY_DELTA_REPEATED_QUESTION", deltas.RepeatedQuestion),
				Rejections:       getEnvAsInt("QUALITY_DELTA_REJECTIONS", deltas.Rejections),
				ContactRequest:   getEnvAsInt("QUALITY_DELTA_CONTACT_REQUEST", deltas.ContactRequest),
				VeryShort:        getEnvAsInt("QUALITY_DELTA_VERY_SHORT", deltas.VeryShort),
				Abandoned:        getEnvAsInt("QUALITY_DELTA_ABANDONED", deltas.Abandoned),
			},
			InactivityMinutes: getEnvAsInt("CONVERSATION_INACTIVITY_MINUTES", 30),
			EndedTopic:        getEnv("CONVERSATION_ENDED_TOPIC_NAME", "CONVERSATION_ENDED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
