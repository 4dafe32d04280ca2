package algebra

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Parse разбирает свободную алгебраическую запись в каноническое выражение.
// Поддерживаются: целые и десятичные числа, имена переменных, + - * / ^
// (и ** как степень), скобки, унарный минус, неявное умножение ("2x", "2(x+1)").
func Parse(s string) (Expr, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("unexpected %q", p.peek().text)
	}
	return e, nil
}

// --------------------------- лексер ---------------------------

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokOp     // + - * / ^ **
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func lex(s string) ([]token, error) {
	var toks []token
	rs := []rune(strings.TrimSpace(s))
	if len(rs) == 0 {
		return nil, errors.New("empty expression")
	}
	i := 0
	for i < len(rs) {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9' || r == '.':
			j := i
			dots := 0
			for j < len(rs) && (rs[j] >= '0' && rs[j] <= '9' || rs[j] == '.') {
				if rs[j] == '.' {
					dots++
				}
				j++
			}
			if dots > 1 || j == i+1 && rs[i] == '.' {
				return nil, fmt.Errorf("bad number %q", string(rs[i:j]))
			}
			toks = append(toks, token{tokNum, string(rs[i:j])})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, string(rs[i:j])})
			i = j
		case r == '*':
			if i+1 < len(rs) && rs[i+1] == '*' {
				toks = append(toks, token{tokOp, "^"})
				i += 2
			} else {
				toks = append(toks, token{tokOp, "*"})
				i++
			}
		case r == '+' || r == '-' || r == '/' || r == '^':
			toks = append(toks, token{tokOp, string(r)})
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", string(r))
		}
	}
	return toks, nil
}

// --------------------------- парсер ---------------------------

type parser struct {
	toks []token
	pos  int
}

func (p *parser) eof() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() token {
	if p.eof() {
		return token{}
	}
	return p.toks[p.pos]
}

func (p *parser) takeOp(ops ...string) (string, bool) {
	if p.eof() || p.toks[p.pos].kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if p.toks[p.pos].text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for {
		op, ok := p.takeOp("+", "-")
		if !ok {
			break
		}
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			t = mkMul(numInt(-1), t)
		}
		terms = append(terms, t)
	}
	return mkAdd(terms...), nil
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if op, ok := p.takeOp("*", "/"); ok {
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if op == "/" {
				left, err = mkDiv(left, right)
				if err != nil {
					return nil, err
				}
			} else {
				left = mkMul(left, right)
			}
			continue
		}
		// Неявное умножение: "2x", "2(x+1)", "x y".
		if k := p.peek().kind; !p.eof() && (k == tokIdent || k == tokNum || k == tokLParen) {
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = mkMul(left, right)
			continue
		}
		return left, nil
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if _, ok := p.takeOp("-"); ok {
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return mkMul(numInt(-1), e), nil
	}
	if _, ok := p.takeOp("+"); ok {
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if _, ok := p.takeOp("^"); ok {
		// Степень правоассоциативна, показатель может быть со знаком.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return mkPow(base, exp)
	}
	return base, nil
}

func (p *parser) parseAtom() (Expr, error) {
	if p.eof() {
		return nil, errors.New("unexpected end of expression")
	}
	t := p.toks[p.pos]
	switch t.kind {
	case tokNum:
		p.pos++
		r, err := parseNumber(t.text)
		if err != nil {
			return nil, err
		}
		return numRat(r), nil
	case tokIdent:
		p.pos++
		return Sym{Name: t.text}, nil
	case tokLParen:
		p.pos++
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.eof() || p.toks[p.pos].kind != tokRParen {
			return nil, errors.New("missing closing parenthesis")
		}
		p.pos++
		return e, nil
	default:
		return nil, fmt.Errorf("unexpected %q", t.text)
	}
}

// parseNumber переводит десятичную запись в точную рациональную дробь.
func parseNumber(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("bad number %q", s)
	}
	return r, nil
}
