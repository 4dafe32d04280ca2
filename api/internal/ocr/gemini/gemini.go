package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"math-proxy/api/internal/ocr"
	"math-proxy/api/internal/util"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

const transcribePrompt = "Extract the LaTeX expression from this math image. " +
	"Return only the LaTeX code, no extra text."

const solvePrompt = "You are a math tutor. Given a math expression or equation in LaTeX, " +
	"produce a clear, correct, step-by-step solution. " +
	"Only return JSON that matches the provided schema. " +
	"Avoid extra commentary. Keep steps concise but correct."

// stepsSchema — жёсткая форма ответа {steps:[{step,detail}]}.
var stepsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"steps": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"step":   {Type: genai.TypeString},
					"detail": {Type: genai.TypeString},
				},
				Required: []string{"step", "detail"},
			},
		},
	},
	Required: []string{"steps"},
}

// --------------------------- TRANSCRIBE ---------------------------

// Transcribe распознаёт LaTeX с изображения. Одна попытка, без ретраев.
func (e *Engine) Transcribe(ctx context.Context, image []byte) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	parts := []genai.Part{
		genai.Text(transcribePrompt),
		&genai.Blob{MIMEType: util.SniffMimeHTTP(image), Data: image},
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	txt := util.StripCodeFences(strings.TrimSpace(firstText(resp)))
	return ocr.ExtractLatex(txt), nil
}

// --------------------------- SOLVE ---------------------------

// Solve просит пошаговое решение. Ответ строго JSON по stepsSchema.
func (e *Engine) Solve(ctx context.Context, latex string) ([]ocr.SolutionStep, error) {
	if e.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return nil, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return nil, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.2),
		ResponseMIMEType: "application/json",
		ResponseSchema:   stepsSchema,
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(solvePrompt)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text("LaTeX: "+latex))
	if err != nil {
		return nil, err
	}
	txt := util.StripCodeFences(strings.TrimSpace(firstText(resp)))
	if txt == "" {
		return nil, fmt.Errorf("gemini solve: empty response")
	}
	steps, err := ocr.DecodeSteps(txt)
	if err != nil {
		return nil, fmt.Errorf("gemini solve: bad JSON: %w", err)
	}
	return steps, nil
}

// --------------------------- helpers ---------------------------

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
