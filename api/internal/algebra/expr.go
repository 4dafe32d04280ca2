// Package algebra — локальный символьный фоллбэк. Понимает свободную
// алгебраическую запись (числа, переменные, + - * / ^, скобки, неявное
// умножение вида 2x), а не настоящий LaTeX: макросы \frac, \sqrt и т.п.
// отклоняются на этапе разбора. Это осознанное ограничение — фоллбэк
// полезен для простых выражений, когда модель недоступна.
package algebra

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Expr — узел выражения. Конструкторы mkAdd/mkMul/mkPow сразу приводят к
// канонической форме: числовые литералы сворачиваются, вложенные суммы и
// произведения расплющиваются, слагаемые сортируются. Поэтому уже после
// разбора "x+2-5" даёт "x-3".
type Expr interface {
	fmt.Stringer
	isExpr()
}

type Num struct{ Val *big.Rat }

type Sym struct{ Name string }

type Add struct{ Terms []Expr }

type Mul struct{ Factors []Expr }

type Pow struct{ Base, Exp Expr }

func (Num) isExpr() {}
func (Sym) isExpr() {}
func (Add) isExpr() {}
func (Mul) isExpr() {}
func (Pow) isExpr() {}

var errDivZero = errors.New("division by zero")

func numInt(n int64) Num    { return Num{Val: big.NewRat(n, 1)} }
func numRat(r *big.Rat) Num { return Num{Val: new(big.Rat).Set(r)} }

// --------------------------- конструкторы ---------------------------

func mkAdd(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	acc := new(big.Rat)
	for _, t := range terms {
		switch v := t.(type) {
		case Add:
			for _, inner := range v.Terms {
				if n, ok := inner.(Num); ok {
					acc.Add(acc, n.Val)
				} else {
					flat = append(flat, inner)
				}
			}
		case Num:
			acc.Add(acc, v.Val)
		default:
			flat = append(flat, t)
		}
	}
	sortTerms(flat)
	if acc.Sign() != 0 || len(flat) == 0 {
		flat = append(flat, numRat(acc))
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Add{Terms: flat}
}

func mkMul(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	coeff := big.NewRat(1, 1)
	for _, f := range factors {
		switch v := f.(type) {
		case Mul:
			for _, inner := range v.Factors {
				if n, ok := inner.(Num); ok {
					coeff.Mul(coeff, n.Val)
				} else {
					flat = append(flat, inner)
				}
			}
		case Num:
			coeff.Mul(coeff, v.Val)
		default:
			flat = append(flat, f)
		}
	}
	if coeff.Sign() == 0 {
		return numInt(0)
	}
	sortFactors(flat)
	if len(flat) == 0 {
		return numRat(coeff)
	}
	if coeff.Cmp(big.NewRat(1, 1)) != 0 {
		flat = append([]Expr{numRat(coeff)}, flat...)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Mul{Factors: flat}
}

func mkPow(base, exp Expr) (Expr, error) {
	if n, ok := exp.(Num); ok && n.Val.IsInt() {
		k := n.Val.Num().Int64()
		switch {
		case k == 0:
			return numInt(1), nil
		case k == 1:
			return base, nil
		}
		if b, ok := base.(Num); ok {
			if b.Val.Sign() == 0 && k < 0 {
				return nil, errDivZero
			}
			// Сворачиваем только разумные степени, чтобы не раздувать числа.
			if k >= -64 && k <= 64 {
				return numRat(ratPow(b.Val, k)), nil
			}
		}
		if b, ok := base.(Num); ok && b.Val.Sign() == 0 && k > 0 {
			return numInt(0), nil
		}
	}
	return Pow{Base: base, Exp: exp}, nil
}

func mkDiv(a, b Expr) (Expr, error) {
	if n, ok := b.(Num); ok {
		if n.Val.Sign() == 0 {
			return nil, errDivZero
		}
		inv := new(big.Rat).Inv(n.Val)
		return mkMul(a, numRat(inv)), nil
	}
	p, err := mkPow(b, numInt(-1))
	if err != nil {
		return nil, err
	}
	return mkMul(a, p), nil
}

func ratPow(r *big.Rat, k int64) *big.Rat {
	out := big.NewRat(1, 1)
	base := new(big.Rat).Set(r)
	neg := k < 0
	if neg {
		k = -k
	}
	for i := int64(0); i < k; i++ {
		out.Mul(out, base)
	}
	if neg {
		out.Inv(out)
	}
	return out
}

// --------------------------- порядок членов ---------------------------

// degree — суммарная целая степень символов монома; только для сортировки.
func degree(e Expr) int64 {
	switch v := e.(type) {
	case Sym:
		return 1
	case Pow:
		if n, ok := v.Exp.(Num); ok && n.Val.IsInt() {
			if _, isSym := v.Base.(Sym); isSym {
				return n.Val.Num().Int64()
			}
		}
		return 1
	case Mul:
		var d int64
		for _, f := range v.Factors {
			d += degree(f)
		}
		return d
	default:
		return 0
	}
}

func sortTerms(terms []Expr) {
	sort.SliceStable(terms, func(i, j int) bool {
		di, dj := degree(terms[i]), degree(terms[j])
		if di != dj {
			return di > dj
		}
		return terms[i].String() < terms[j].String()
	})
}

func sortFactors(factors []Expr) {
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].String() < factors[j].String()
	})
}

// --------------------------- печать ---------------------------

// Печать компактная, без пробелов: "x-3", "2*x+1", "x^2".

func (n Num) String() string {
	if n.Val.IsInt() {
		return n.Val.Num().String()
	}
	return n.Val.Num().String() + "/" + n.Val.Denom().String()
}

func (s Sym) String() string { return s.Name }

func (a Add) String() string {
	var b strings.Builder
	for i, t := range a.Terms {
		s := t.String()
		if i > 0 && !strings.HasPrefix(s, "-") {
			b.WriteByte('+')
		}
		b.WriteString(s)
	}
	return b.String()
}

func (m Mul) String() string {
	coeff := big.NewRat(1, 1)
	factors := m.Factors
	if n, ok := factors[0].(Num); ok {
		coeff = n.Val
		factors = factors[1:]
	}

	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		s := f.String()
		if _, isAdd := f.(Add); isAdd {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	body := strings.Join(parts, "*")

	sign := ""
	abs := new(big.Rat).Abs(coeff)
	if coeff.Sign() < 0 {
		sign = "-"
	}
	num, den := abs.Num().String(), abs.Denom().String()
	switch {
	case num != "1":
		body = num + "*" + body
	}
	if den != "1" {
		body = body + "/" + den
	}
	return sign + body
}

func (p Pow) String() string {
	base := p.Base.String()
	switch p.Base.(type) {
	case Add, Mul, Pow:
		base = "(" + base + ")"
	case Num:
		if strings.ContainsAny(base, "-/") {
			base = "(" + base + ")"
		}
	}
	exp := p.Exp.String()
	switch p.Exp.(type) {
	case Add, Mul, Pow:
		exp = "(" + exp + ")"
	case Num:
		if strings.ContainsAny(exp, "-/") {
			exp = "(" + exp + ")"
		}
	}
	return base + "^" + exp
}
