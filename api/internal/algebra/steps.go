package algebra

import (
	"strings"

	"math-proxy/api/internal/ocr"
)

// QuickSteps — фоллбэк-решатель. Уравнение сводится к виду "lhs-rhs" (то есть
// «выражение равно нулю»), затем упрощается. Успех — ровно два шага,
// любая ошибка разбора или упрощения — ровно один диагностический шаг.
func QuickSteps(latex string) []ocr.SolutionStep {
	expr, err := parseMaybeEquation(latex)
	if err != nil {
		return []ocr.SolutionStep{{Step: "Could not parse expression", Detail: err.Error()}}
	}

	simplified, err := Simplify(expr)
	if err != nil {
		return []ocr.SolutionStep{{Step: "Could not parse expression", Detail: err.Error()}}
	}

	return []ocr.SolutionStep{
		{Step: "Parse LaTeX", Detail: expr.String()},
		{Step: "Simplify", Detail: simplified.String()},
	}
}

func parseMaybeEquation(s string) (Expr, error) {
	if lhsTxt, rhsTxt, found := strings.Cut(s, "="); found {
		lhs, err := Parse(lhsTxt)
		if err != nil {
			return nil, err
		}
		rhs, err := Parse(rhsTxt)
		if err != nil {
			return nil, err
		}
		return mkAdd(lhs, mkMul(numInt(-1), rhs)), nil
	}
	return Parse(s)
}
