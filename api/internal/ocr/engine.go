package ocr

import (
	"context"
	"errors"
)

// Engine — движок поверх hosted-модели. Обе операции делают ровно одну
// попытку: ретраи/бэкофф сознательно не входят в контракт.
type Engine interface {
	Name() string
	GetModel() string
	// Transcribe распознаёт LaTeX с изображения (PNG-байты после нормализации).
	Transcribe(ctx context.Context, image []byte) (string, error)
	// Solve просит пошаговое решение для LaTeX-выражения.
	Solve(ctx context.Context, latex string) ([]SolutionStep, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	switch llmName {
	case "", "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine is not configured")
		}
		return e.Gemini, nil
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, errors.New("openai engine is not configured")
		}
		return e.OpenAI, nil
	default:
		return nil, errors.New("unknown llm_name; use 'gemini' or 'gpt'")
	}
}
