package algebra

import "math/big"

// Simplify приводит выражение к более простой эквивалентной форме:
// подобные слагаемые собираются (x+x -> 2*x), одинаковые основания в
// произведении складывают степени (x*x -> x^2), числовые степени и
// константы сворачиваются. Детерминирована и не имеет состояния.
func Simplify(e Expr) (Expr, error) {
	switch v := e.(type) {
	case Num, Sym:
		return e, nil

	case Pow:
		base, err := Simplify(v.Base)
		if err != nil {
			return nil, err
		}
		exp, err := Simplify(v.Exp)
		if err != nil {
			return nil, err
		}
		// (x^a)^b -> x^(a*b) для числовых показателей
		if inner, ok := base.(Pow); ok {
			if a, okA := inner.Exp.(Num); okA {
				if b, okB := exp.(Num); okB {
					prod := new(big.Rat).Mul(a.Val, b.Val)
					return mkPow(inner.Base, numRat(prod))
				}
			}
		}
		return mkPow(base, exp)

	case Mul:
		factors := make([]Expr, 0, len(v.Factors))
		for _, f := range v.Factors {
			sf, err := Simplify(f)
			if err != nil {
				return nil, err
			}
			factors = append(factors, sf)
		}
		flat := mkMul(factors...)
		m, ok := flat.(Mul)
		if !ok {
			return flat, nil
		}
		return combinePowers(m)

	case Add:
		terms := make([]Expr, 0, len(v.Terms))
		for _, t := range v.Terms {
			st, err := Simplify(t)
			if err != nil {
				return nil, err
			}
			terms = append(terms, st)
		}
		flat := mkAdd(terms...)
		a, ok := flat.(Add)
		if !ok {
			return flat, nil
		}
		return combineLikeTerms(a)

	default:
		return e, nil
	}
}

// combinePowers складывает показатели у одинаковых оснований внутри произведения.
func combinePowers(m Mul) (Expr, error) {
	coeff := big.NewRat(1, 1)
	type entry struct {
		base Expr
		exp  *big.Rat
	}
	order := []string{}
	byBase := map[string]*entry{}
	var opaque []Expr

	for _, f := range m.Factors {
		if n, ok := f.(Num); ok {
			coeff.Mul(coeff, n.Val)
			continue
		}
		base, exp := f, big.NewRat(1, 1)
		if p, ok := f.(Pow); ok {
			if n, ok := p.Exp.(Num); ok {
				base, exp = p.Base, n.Val
			} else {
				opaque = append(opaque, f)
				continue
			}
		}
		key := base.String()
		if e, ok := byBase[key]; ok {
			e.exp = new(big.Rat).Add(e.exp, exp)
		} else {
			byBase[key] = &entry{base: base, exp: new(big.Rat).Set(exp)}
			order = append(order, key)
		}
	}

	out := []Expr{numRat(coeff)}
	for _, key := range order {
		e := byBase[key]
		p, err := mkPow(e.base, numRat(e.exp))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	out = append(out, opaque...)
	return mkMul(out...), nil
}

// combineLikeTerms собирает подобные слагаемые по моному.
func combineLikeTerms(a Add) (Expr, error) {
	type entry struct {
		mono  Expr
		coeff *big.Rat
	}
	order := []string{}
	byMono := map[string]*entry{}
	constant := new(big.Rat)

	for _, t := range a.Terms {
		if n, ok := t.(Num); ok {
			constant.Add(constant, n.Val)
			continue
		}
		coeff, mono := splitCoeff(t)
		key := mono.String()
		if e, ok := byMono[key]; ok {
			e.coeff.Add(e.coeff, coeff)
		} else {
			byMono[key] = &entry{mono: mono, coeff: coeff}
			order = append(order, key)
		}
	}

	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		e := byMono[key]
		if e.coeff.Sign() == 0 {
			continue
		}
		out = append(out, mkMul(numRat(e.coeff), e.mono))
	}
	if constant.Sign() != 0 || len(out) == 0 {
		out = append(out, numRat(constant))
	}
	return mkAdd(out...), nil
}

// splitCoeff отделяет числовой коэффициент от монома.
func splitCoeff(e Expr) (*big.Rat, Expr) {
	m, ok := e.(Mul)
	if !ok {
		return big.NewRat(1, 1), e
	}
	if n, isNum := m.Factors[0].(Num); isNum {
		rest := m.Factors[1:]
		if len(rest) == 1 {
			return new(big.Rat).Set(n.Val), rest[0]
		}
		return new(big.Rat).Set(n.Val), Mul{Factors: rest}
	}
	return big.NewRat(1, 1), m
}
