package ocr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLatex(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"equations":["x+2=5","y=1"]}`, "x+2=5 y=1"},
		{`{"equations":["x+2=5"]}`, "x+2=5"},
		{`{"equations":[]}`, ""},
		{"x^2 + 1", "x^2 + 1"},
		{"  x+2=5  ", "x+2=5"},
		{"", ""},
		{`{"other":"field"}`, `{"other":"field"}`}, // JSON без equations — сырой текст
	}
	for _, c := range cases {
		require.Equal(t, c.want, ExtractLatex(c.in), "input %q", c.in)
	}
}

func TestDecodeSteps(t *testing.T) {
	steps, err := DecodeSteps(`{"steps":[{"step":"a","detail":"b"},{"step":"c","detail":"d"}]}`)
	require.NoError(t, err)
	require.Equal(t, []SolutionStep{{Step: "a", Detail: "b"}, {Step: "c", Detail: "d"}}, steps)
}

func TestDecodeStepsDefaultsMissingFields(t *testing.T) {
	steps, err := DecodeSteps(`{"steps":[{"step":"a"},{"detail":"d"},{}]}`)
	require.NoError(t, err)
	require.Equal(t, []SolutionStep{
		{Step: "a", Detail: ""},
		{Step: "", Detail: "d"},
		{Step: "", Detail: ""},
	}, steps)
}

func TestDecodeStepsDropsNonObjects(t *testing.T) {
	steps, err := DecodeSteps(`{"steps":["text", 42, {"step":"ok","detail":""}]}`)
	require.NoError(t, err)
	require.Equal(t, []SolutionStep{{Step: "ok", Detail: ""}}, steps)
}

func TestDecodeStepsBadJSON(t *testing.T) {
	_, err := DecodeSteps("not json")
	require.Error(t, err)
}

func TestGetEngine(t *testing.T) {
	engs := &Engines{}
	_, err := engs.GetEngine("gemini")
	require.Error(t, err) // не сконфигурирован

	_, err = engs.GetEngine("deepseek")
	require.Error(t, err) // неизвестное имя
}
