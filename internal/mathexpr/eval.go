// ABOUTME: Sandboxed arithmetic evaluator for plain numeric expressions
// ABOUTME: Supports numbers, + - * / // ** and parentheses with exact integers
package mathexpr

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// maxResultBits bounds integer exponentiation so "9**9**9" cannot exhaust memory
const maxResultBits = 1 << 20

var (
	ErrDivisionByZero      = errors.New("division by zero")
	ErrFloorDivisionByZero = errors.New("integer division or modulo by zero")
	ErrZeroNegativePower   = errors.New("0.0 cannot be raised to a negative power")
	ErrOutOfRange          = errors.New("numerical result out of range")
	ErrExponentTooLarge    = errors.New("exponent too large")
	ErrIntTooLarge         = errors.New("int too large to convert to float")
	ErrComplexResult       = errors.New("negative number cannot be raised to a fractional power")
)

// SyntaxError reports a malformed expression
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (position %d)", e.Msg, e.Pos)
}

// Allowed reports whether every character of s belongs to the arithmetic set
// 0-9 . + - * / ( ) and space. An empty string is trivially allowed.
func Allowed(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '.', c == '+', c == '-', c == '*', c == '/', c == '(', c == ')', c == ' ':
		default:
			return false
		}
	}
	return true
}

// Evaluate parses and computes expr. It has no access to names, calls or variables.
func Evaluate(expr string) (Value, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return Value{}, err
	}
	p := &parser{tokens: tokens}
	v, err := p.expr()
	if err != nil {
		return Value{}, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return Value{}, &SyntaxError{Pos: tok.pos, Msg: "invalid syntax"}
	}
	return v, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (Value, error) {
	left, err := p.term()
	if err != nil {
		return Value{}, err
	}
	for {
		op := p.peek()
		if op.kind != tokPlus && op.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return Value{}, err
		}
		if op.kind == tokPlus {
			left, err = add(left, right)
		} else {
			left, err = sub(left, right)
		}
		if err != nil {
			return Value{}, err
		}
	}
}

// term := factor (('*' | '/' | '//') factor)*
func (p *parser) term() (Value, error) {
	left, err := p.factor()
	if err != nil {
		return Value{}, err
	}
	for {
		op := p.peek()
		if op.kind != tokStar && op.kind != tokSlash && op.kind != tokDoubleSlash {
			return left, nil
		}
		p.next()
		right, err := p.factor()
		if err != nil {
			return Value{}, err
		}
		switch op.kind {
		case tokStar:
			left, err = mul(left, right)
		case tokSlash:
			left, err = div(left, right)
		case tokDoubleSlash:
			left, err = floorDiv(left, right)
		}
		if err != nil {
			return Value{}, err
		}
	}
}

// factor := ('+' | '-') factor | power
func (p *parser) factor() (Value, error) {
	switch p.peek().kind {
	case tokPlus:
		p.next()
		return p.factor()
	case tokMinus:
		p.next()
		v, err := p.factor()
		if err != nil {
			return Value{}, err
		}
		return neg(v), nil
	}
	return p.power()
}

// power := atom ['**' factor]
func (p *parser) power() (Value, error) {
	base, err := p.atom()
	if err != nil {
		return Value{}, err
	}
	if p.peek().kind != tokDoubleStar {
		return base, nil
	}
	p.next()
	exp, err := p.factor()
	if err != nil {
		return Value{}, err
	}
	return pow(base, exp)
}

// atom := NUMBER | '(' expr ')'
func (p *parser) atom() (Value, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return tok.value, nil
	case tokLParen:
		// Empty parentheses would be a tuple, which has no numeric value
		if p.peek().kind == tokRParen {
			return Value{}, &SyntaxError{Pos: tok.pos, Msg: "empty parentheses"}
		}
		v, err := p.expr()
		if err != nil {
			return Value{}, err
		}
		closing := p.next()
		if closing.kind != tokRParen {
			return Value{}, &SyntaxError{Pos: closing.pos, Msg: "'(' was never closed"}
		}
		return v, nil
	case tokRParen:
		return Value{}, &SyntaxError{Pos: tok.pos, Msg: "unmatched ')'"}
	case tokEOF:
		if tok.pos == 0 {
			return Value{}, &SyntaxError{Pos: 0, Msg: "empty expression"}
		}
		return Value{}, &SyntaxError{Pos: tok.pos, Msg: "unexpected end of expression"}
	}
	return Value{}, &SyntaxError{Pos: tok.pos, Msg: "invalid syntax"}
}

func add(a, b Value) (Value, error) {
	if a.isInt() && b.isInt() {
		return intValue(new(big.Int).Add(a.i, b.i)), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return floatValue(x + y), nil
}

func sub(a, b Value) (Value, error) {
	if a.isInt() && b.isInt() {
		return intValue(new(big.Int).Sub(a.i, b.i)), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return floatValue(x - y), nil
}

func mul(a, b Value) (Value, error) {
	if a.isInt() && b.isInt() {
		if a.i.BitLen()+b.i.BitLen() > maxResultBits {
			return Value{}, ErrOutOfRange
		}
		return intValue(new(big.Int).Mul(a.i, b.i)), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return floatValue(x * y), nil
}

// div is true division; the result is always a float
func div(a, b Value) (Value, error) {
	if a.isInt() && b.isInt() {
		if b.i.Sign() == 0 {
			return Value{}, ErrDivisionByZero
		}
		f, _ := new(big.Rat).SetFrac(a.i, b.i).Float64()
		if math.IsInf(f, 0) {
			return Value{}, ErrIntTooLarge
		}
		return floatValue(f), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	return floatValue(x / y), nil
}

func floorDiv(a, b Value) (Value, error) {
	if a.isInt() && b.isInt() {
		if b.i.Sign() == 0 {
			return Value{}, ErrFloorDivisionByZero
		}
		q, m := new(big.Int).QuoRem(a.i, b.i, new(big.Int))
		if m.Sign() != 0 && m.Sign() != b.i.Sign() {
			q.Sub(q, big.NewInt(1))
		}
		return intValue(q), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	if y == 0 {
		return Value{}, errors.New("float floor division by zero")
	}
	return floatValue(floatFloorDiv(x, y)), nil
}

// floatFloorDiv derives the quotient from the fmod remainder, keeping
// x == q*y + mod where math.Floor(x/y) would round past it.
func floatFloorDiv(x, y float64) float64 {
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 && (y < 0) != (mod < 0) {
		div -= 1
	}
	if div == 0 {
		return math.Copysign(0, x/y)
	}
	q := math.Floor(div)
	if div-q > 0.5 {
		q += 1
	}
	return q
}

func pow(a, b Value) (Value, error) {
	if a.isInt() && b.isInt() && b.i.Sign() >= 0 {
		if !b.i.IsInt64() {
			return Value{}, ErrExponentTooLarge
		}
		e := b.i.Int64()
		if bits := int64(a.i.BitLen()); bits > 1 && bits*e > maxResultBits {
			return Value{}, ErrExponentTooLarge
		}
		return intValue(new(big.Int).Exp(a.i, b.i, nil)), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	if x == 0 && y < 0 {
		return Value{}, ErrZeroNegativePower
	}
	if x < 0 && y != math.Trunc(y) {
		return Value{}, ErrComplexResult
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return Value{}, ErrOutOfRange
	}
	return floatValue(r), nil
}

func neg(v Value) Value {
	if v.isInt() {
		return intValue(new(big.Int).Neg(v.i))
	}
	return floatValue(-v.f)
}

// floats promotes both operands, failing when an integer exceeds float64 range
func floats(a, b Value) (float64, float64, error) {
	x, err := a.float()
	if err != nil {
		return 0, 0, err
	}
	y, err := b.float()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
