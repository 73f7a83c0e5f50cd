package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	LogLevel     string
	OpenAIAPIKey string
	OpenAIBase   string
	Model        string
	NatsURL      string
	NatsToken    string
	HistoryLimit int
	KnowledgeK   int
	PulseLimit   int
}

func Load() Config {
	return Config{
		Port:         envInt("CONCIERGE_PORT", 8810),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		OpenAIAPIKey: envStr("OPENAI_API_KEY", ""),
		OpenAIBase:   envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:        envStr("CONCIERGE_MODEL", "gpt-4o-mini"),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
		HistoryLimit: envInt("CONCIERGE_HISTORY_LIMIT", 12),
		KnowledgeK:   envInt("CONCIERGE_KNOWLEDGE_K", 6),
		PulseLimit:   envInt("CONCIERGE_PULSE_LIMIT", 5),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
