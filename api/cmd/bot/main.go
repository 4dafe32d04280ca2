package main

import (
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"math-proxy/api/internal/config"
	"math-proxy/api/internal/ocr"
	"math-proxy/api/internal/ocr/gemini"
	"math-proxy/api/internal/ocr/gpt"
	"math-proxy/api/internal/telegram"
)

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func main() {
	cfg := config.Load()
	tgToken := mustEnv("TELEGRAM_BOT_TOKEN")

	bot, err := tgbotapi.NewBotAPI(tgToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false

	engines := &ocr.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	if cfg.OpenAIAPIKey != "" {
		engines.OpenAI = gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}

	router := &telegram.Router{Bot: bot, Engs: engines}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	log.Printf("bot %s started", bot.Self.UserName)
	for upd := range updates {
		go router.HandleUpdate(upd)
	}
}
