package ocr

// SolutionStep — один шаг решения. Оба поля всегда присутствуют в JSON
// (пустая строка вместо отсутствующего поля), чтобы форма ответа не зависела
// от того, кто шаг породил: модель, фоллбэк или заглушка об ошибке.
type SolutionStep struct {
	Step   string `json:"step"`
	Detail string `json:"detail"`
}

// SolveResult — итог /solve. Note появляется только если какой-то этап
// деградировал; его отсутствие означает полностью модельный ответ.
type SolveResult struct {
	Latex string         `json:"latex"`
	Steps []SolutionStep `json:"steps"`
	Note  string         `json:"note,omitempty"`
}
