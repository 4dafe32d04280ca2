package main

import (
	"log"
	"net/http"
	"time"

	"math-proxy/api/internal/config"
	"math-proxy/api/internal/handle"
	"math-proxy/api/internal/ocr"
	"math-proxy/api/internal/ocr/gemini"
	"math-proxy/api/internal/ocr/gpt"
)

func main() {
	cfg := config.Load()

	engines := &ocr.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	if cfg.OpenAIAPIKey != "" {
		engines.OpenAI = gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}

	h := handle.New(engines, cfg.AllowOrigin, time.Duration(cfg.RequestTimeoutSec)*time.Second)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/predict/", h.Predict)
	mux.HandleFunc("/solve", h.Solve)

	addr := ":" + cfg.Port
	log.Printf("math-proxy listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
