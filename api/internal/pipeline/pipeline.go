// Package pipeline — общая для HTTP и телеграм-бота последовательность:
// нормализация картинки → OCR → пошаговое решение → символьный фоллбэк.
// Сервис всегда отдаёт лучший из доступных ответов: сбои внешней модели
// деградируют до фоллбэка и пометки note, а не до ошибки клиенту.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"math-proxy/api/internal/algebra"
	"math-proxy/api/internal/imaging"
	"math-proxy/api/internal/ocr"
)

// Пометки деградации. Отсутствие note означает полностью модельный ответ.
const (
	NoteOCRUnavailable    = "OCR unavailable"
	NoteSolverUnavailable = "solver unavailable"
	NoteFallbackUsed      = "fallback used"
)

type Solver struct {
	Engine ocr.Engine
}

func New(engine ocr.Engine) *Solver {
	return &Solver{Engine: engine}
}

// Predict: картинка → LaTeX. Ошибка декодирования терминальна; сбой модели
// деградирует до пустой строки — на этом уровне это не ошибка.
func (s *Solver) Predict(ctx context.Context, raw []byte) (string, error) {
	norm, err := imaging.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	latex, err := s.Engine.Transcribe(ctx, norm)
	if err != nil {
		log.Printf("ocr %s failed: %v", s.Engine.Name(), err)
		return "", nil
	}
	return latex, nil
}

// Solve: картинка → LaTeX → шаги. Единственная терминальная ошибка —
// нечитаемая картинка; всё остальное деградирует с пометкой в note.
func (s *Solver) Solve(ctx context.Context, raw []byte) (ocr.SolveResult, error) {
	norm, err := imaging.Normalize(raw)
	if err != nil {
		return ocr.SolveResult{}, fmt.Errorf("normalize: %w", err)
	}

	var res ocr.SolveResult

	latex, err := s.Engine.Transcribe(ctx, norm)
	if err != nil {
		log.Printf("ocr %s failed: %v", s.Engine.Name(), err)
		latex = ""
		res.Note = NoteOCRUnavailable
	}
	res.Latex = latex

	// Пустой LaTeX — решатель не зовём вовсе.
	if latex != "" {
		steps, err := s.Engine.Solve(ctx, latex)
		if err != nil {
			log.Printf("solver %s failed: %v", s.Engine.Name(), err)
			// Сбой решателя отдаём in-band синтетическим шагом. Список
			// непустой, поэтому фоллбэк ниже НЕ сработает — так вёл себя
			// исходный сервис, и это поведение закреплено тестом.
			res.Steps = []ocr.SolutionStep{{Step: "AI solver unavailable", Detail: err.Error()}}
			res.Note = NoteSolverUnavailable
			return res, nil
		}
		res.Steps = steps
	}

	if len(res.Steps) == 0 {
		log.Printf("no steps from model, falling back to local solver")
		res.Steps = algebra.QuickSteps(latex)
		if res.Note == "" {
			res.Note = NoteFallbackUsed
		}
	}
	return res, nil
}
