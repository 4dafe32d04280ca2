package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string

	// OpenAI-совместимый движок опционален: без ключа он просто не создаётся.
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Единственный разрешённый origin для CORS (фронтенд).
	AllowOrigin string

	// Дедлайн на запрос по умолчанию; перекрывается заголовком X-Request-Timeout.
	RequestTimeoutSec int
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("env %s: bad value %q, using %d", k, v, def)
	}
	return def
}

func Load() *Config {
	// .env нужен только для локального запуска; в проде переменные уже в окружении.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-pro"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		AllowOrigin: getEnv("ALLOW_ORIGIN", "https://krishsidd8.github.io"),

		RequestTimeoutSec: getEnvInt("REQUEST_TIMEOUT_SEC", 180),
	}
}
