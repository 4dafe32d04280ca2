package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"math-proxy/api/internal/ocr"
)

type mockEngine struct {
	latex string
	terr  error
	steps []ocr.SolutionStep
	serr  error

	transcribed int
	solved      int
}

func (m *mockEngine) Name() string     { return "mock" }
func (m *mockEngine) GetModel() string { return "mock-1" }

func (m *mockEngine) Transcribe(_ context.Context, _ []byte) (string, error) {
	m.transcribed++
	return m.latex, m.terr
}

func (m *mockEngine) Solve(_ context.Context, _ string) ([]ocr.SolutionStep, error) {
	m.solved++
	return m.steps, m.serr
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestSolveHappyPath(t *testing.T) {
	eng := &mockEngine{
		latex: "x+2=5",
		steps: []ocr.SolutionStep{{Step: "Subtract 2", Detail: "x=3"}},
	}
	res, err := New(eng).Solve(context.Background(), tinyPNG(t))
	require.NoError(t, err)
	require.Equal(t, "x+2=5", res.Latex)
	require.Equal(t, eng.steps, res.Steps)
	require.Empty(t, res.Note, "note must be absent when nothing degraded")
	require.Equal(t, 1, eng.solved)
}

func TestSolveEmptyOCRSkipsSolver(t *testing.T) {
	eng := &mockEngine{latex: ""}
	res, err := New(eng).Solve(context.Background(), tinyPNG(t))
	require.NoError(t, err)
	require.Equal(t, "", res.Latex)
	require.Zero(t, eng.solved, "solver must not be called for empty latex")
	// Фоллбэк на пустой строке даёт один диагностический шаг.
	require.Len(t, res.Steps, 1)
	require.Equal(t, "Could not parse expression", res.Steps[0].Step)
	require.Equal(t, NoteFallbackUsed, res.Note)
}

func TestSolveOCRErrorDegrades(t *testing.T) {
	eng := &mockEngine{terr: errors.New("quota exceeded")}
	res, err := New(eng).Solve(context.Background(), tinyPNG(t))
	require.NoError(t, err, "OCR failure must not abort the request")
	require.Equal(t, "", res.Latex)
	require.Equal(t, NoteOCRUnavailable, res.Note)
	require.Zero(t, eng.solved)
	require.NotEmpty(t, res.Steps)
}

// Сбой решателя отдаётся in-band синтетическим шагом; список непустой,
// поэтому локальный фоллбэк сознательно НЕ срабатывает (поведение
// исходного сервиса).
func TestSolveSolverErrorNoFallback(t *testing.T) {
	eng := &mockEngine{latex: "x+2=5", serr: errors.New("model overloaded")}
	res, err := New(eng).Solve(context.Background(), tinyPNG(t))
	require.NoError(t, err)
	require.Equal(t, "x+2=5", res.Latex)
	require.Len(t, res.Steps, 1)
	require.Equal(t, "AI solver unavailable", res.Steps[0].Step)
	require.Equal(t, "model overloaded", res.Steps[0].Detail)
	require.Equal(t, NoteSolverUnavailable, res.Note)
}

func TestSolveEmptyStepsTriggerFallback(t *testing.T) {
	eng := &mockEngine{latex: "x+2=5", steps: nil}
	res, err := New(eng).Solve(context.Background(), tinyPNG(t))
	require.NoError(t, err)
	require.Equal(t, NoteFallbackUsed, res.Note)
	require.Equal(t, []ocr.SolutionStep{
		{Step: "Parse LaTeX", Detail: "x-3"},
		{Step: "Simplify", Detail: "x-3"},
	}, res.Steps)
}

func TestSolveBadImageTerminal(t *testing.T) {
	eng := &mockEngine{latex: "x"}
	_, err := New(eng).Solve(context.Background(), []byte("garbage"))
	require.Error(t, err)
	require.Zero(t, eng.transcribed, "collaborators must not be called for undecodable upload")
}

func TestPredict(t *testing.T) {
	eng := &mockEngine{latex: "x^2"}
	latex, err := New(eng).Predict(context.Background(), tinyPNG(t))
	require.NoError(t, err)
	require.Equal(t, "x^2", latex)
}

func TestPredictOCRErrorDegradesToEmpty(t *testing.T) {
	eng := &mockEngine{terr: errors.New("boom")}
	latex, err := New(eng).Predict(context.Background(), tinyPNG(t))
	require.NoError(t, err)
	require.Equal(t, "", latex)
}

func TestPredictBadImage(t *testing.T) {
	eng := &mockEngine{}
	_, err := New(eng).Predict(context.Background(), []byte{0x00, 0x01})
	require.Error(t, err)
	require.Zero(t, eng.transcribed)
}
