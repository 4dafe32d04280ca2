package algebra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuickStepsEquation(t *testing.T) {
	steps := QuickSteps("x+2=5")
	require.Len(t, steps, 2)
	require.Equal(t, "Parse LaTeX", steps[0].Step)
	require.Equal(t, "x-3", steps[0].Detail)
	require.Equal(t, "Simplify", steps[1].Step)
	require.Equal(t, "x-3", steps[1].Detail)
}

func TestQuickStepsConstant(t *testing.T) {
	steps := QuickSteps("2+2")
	require.Len(t, steps, 2)
	require.Equal(t, "4", steps[0].Detail)
	require.Equal(t, "4", steps[1].Detail)
}

func TestQuickStepsEmptyInput(t *testing.T) {
	steps := QuickSteps("")
	require.Len(t, steps, 1)
	require.Equal(t, "Could not parse expression", steps[0].Step)
	require.NotEmpty(t, steps[0].Detail)
}

func TestQuickStepsUnparseable(t *testing.T) {
	for _, in := range []string{`\frac{x}{2}`, "x+", "((x)", "1/0"} {
		steps := QuickSteps(in)
		require.Len(t, steps, 1, "input %q", in)
		require.Equal(t, "Could not parse expression", steps[0].Step, "input %q", in)
	}
}

// Фоллбэк не имеет состояния: повторный вызов даёт тот же результат.
func TestQuickStepsIdempotent(t *testing.T) {
	first := QuickSteps("2*x+3*x=10")
	second := QuickSteps("2*x+3*x=10")
	require.Equal(t, first, second)
}

func TestQuickStepsOnlyFirstEqualsSplits(t *testing.T) {
	// "=" внутри правой части — ошибка разбора, а не тихое игнорирование.
	steps := QuickSteps("x=1=2")
	require.Len(t, steps, 1)
	require.Equal(t, "Could not parse expression", steps[0].Step)
}
