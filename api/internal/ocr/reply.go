package ocr

import (
	"encoding/json"
	"strings"
)

// ExtractLatex разбирает текстовый ответ модели на запрос транскрипции.
// Некоторые модели присылают {"equations":[...]} вместо голого LaTeX —
// тогда склеиваем элементы через один пробел. Иначе текст возвращается
// как есть (обрезанный).
func ExtractLatex(txt string) string {
	txt = strings.TrimSpace(txt)
	if txt == "" {
		return ""
	}
	var obj struct {
		Equations []string `json:"equations"`
	}
	if err := json.Unmarshal([]byte(txt), &obj); err == nil && obj.Equations != nil {
		return strings.TrimSpace(strings.Join(obj.Equations, " "))
	}
	return txt
}

// DecodeSteps разбирает {"steps":[...]}. Элементы-не-объекты молча
// пропускаются, отсутствующие поля становятся пустыми строками.
func DecodeSteps(txt string) ([]SolutionStep, error) {
	var obj struct {
		Steps []json.RawMessage `json:"steps"`
	}
	if err := json.Unmarshal([]byte(txt), &obj); err != nil {
		return nil, err
	}
	steps := make([]SolutionStep, 0, len(obj.Steps))
	for _, raw := range obj.Steps {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		var s SolutionStep
		if v, ok := m["step"].(string); ok {
			s.Step = v
		}
		if v, ok := m["detail"].(string); ok {
			s.Detail = v
		}
		steps = append(steps, s)
	}
	return steps, nil
}
