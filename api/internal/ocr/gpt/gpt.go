package gpt

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"math-proxy/api/internal/ocr"
	"math-proxy/api/internal/util"

	openai "github.com/sashabaranov/go-openai"
)

// Engine — тот же контракт поверх OpenAI-совместимого chat-completions API.
// BaseURL позволяет направить его на любой совместимый сервер.
type Engine struct {
	Model  string
	client *openai.Client
}

func New(apiKey, model, baseURL string) *Engine {
	cfg := openai.DefaultConfig(strings.TrimSpace(apiKey))
	if u := strings.TrimSpace(baseURL); u != "" {
		cfg.BaseURL = u
	}
	return &Engine{
		Model:  strings.TrimSpace(model),
		client: openai.NewClientWithConfig(cfg),
	}
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

const transcribePrompt = "Extract the LaTeX expression from this math image. " +
	"Return only the LaTeX code, no extra text."

// Схему держим прямо в промпте: JSON-режим гарантирует объект,
// а форму полей фиксируем текстом.
const solvePrompt = "You are a math tutor. Given a math expression or equation in LaTeX, " +
	"produce a clear, correct, step-by-step solution. " +
	`Only return JSON of the form {"steps":[{"step":"...","detail":"..."}]}. ` +
	"Avoid extra commentary. Keep steps concise but correct."

func (e *Engine) Transcribe(ctx context.Context, image []byte) (string, error) {
	if e.Model == "" {
		return "", errors.New("openai model is empty")
	}

	dataURL := util.MakeDataURL(util.SniffMimeHTTP(image), base64.StdEncoding.EncodeToString(image))
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.Model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: transcribePrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gpt transcribe: empty response")
	}
	txt := util.StripCodeFences(strings.TrimSpace(resp.Choices[0].Message.Content))
	return ocr.ExtractLatex(txt), nil
}

func (e *Engine) Solve(ctx context.Context, latex string) ([]ocr.SolutionStep, error) {
	if e.Model == "" {
		return nil, errors.New("openai model is empty")
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.Model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: solvePrompt},
			{Role: openai.ChatMessageRoleUser, Content: "LaTeX: " + latex},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("gpt solve: empty response")
	}
	txt := util.StripCodeFences(strings.TrimSpace(resp.Choices[0].Message.Content))
	if txt == "" {
		return nil, fmt.Errorf("gpt solve: empty response")
	}
	steps, err := ocr.DecodeSteps(txt)
	if err != nil {
		return nil, fmt.Errorf("gpt solve: bad JSON: %w", err)
	}
	return steps, nil
}
