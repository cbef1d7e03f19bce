package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Port     string
	DBPath   string
	LogLevel string

	LLMProvider string // gemini|openai|mock
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string
	LLMTimeout  time.Duration

	PerenualAPIKey  string
	PlantNetAPIKey  string
	PlantNetProject string

	CareDefaultsCSV  string
	CareDefaultsXLSX string
	CareGuideDomains []string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("[cfg] no .env file loaded")
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}

	provider := strings.ToLower(get("LLM_PROVIDER", "gemini"))
	key := get("LLM_API_KEY", "")
	if provider == "gemini" && key == "" {
		key = get("GOOGLE_API_KEY", "")
	}
	model := get("LLM_MODEL", "")
	if model == "" {
		model = "gemini-1.5-flash"
		if provider == "openai" {
			model = "gpt-4o-mini"
		}
	}
	timeout := 25 * time.Second
	if v := get("LLM_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		} else if secs, err := strconv.Atoi(v); err == nil {
			timeout = time.Duration(secs) * time.Second
		}
	}

	cfg := AppConfig{
		Port:     get("PORT", "8080"),
		DBPath:   get("DB_PATH", "gardenguru.db"),
		LogLevel: get("LOG_LEVEL", "info"),

		LLMProvider: provider,
		LLMEndpoint: get("LLM_ENDPOINT", ""),
		LLMAPIKey:   key,
		LLMModel:    model,
		LLMTimeout:  timeout,

		PerenualAPIKey:  get("PERENUAL_API_KEY", ""),
		PlantNetAPIKey:  get("PLANTNET_API_KEY", ""),
		PlantNetProject: get("PLANTNET_PROJECT", "weurope"),

		CareDefaultsCSV:  get("CARE_DEFAULTS_CSV", ""),
		CareDefaultsXLSX: get("CARE_DEFAULTS_XLSX", ""),
		CareGuideDomains: splitList(get("CARE_GUIDE_ALLOWED_DOMAINS", "")),
	}
	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Str("llm_provider", cfg.LLMProvider).
		Str("llm_model", cfg.LLMModel).
		Str("llm_key", mask(cfg.LLMAPIKey)).
		Str("perenual_key", mask(cfg.PerenualAPIKey)).
		Str("plantnet_key", mask(cfg.PlantNetAPIKey)).
		Msg("[cfg] loaded")
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + "****" + secret[len(secret)-2:]
}
