// ABOUTME: Tokenizer for the arithmetic evaluator
// ABOUTME: Scans numbers, operators, and parentheses with source positions
package mathexpr

import (
	"math/big"
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokDoubleStar
	tokSlash
	tokDoubleSlash
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	pos   int
	value Value
}

func tokenize(s string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ':
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, pos: i})
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokPlus, pos: i})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokMinus, pos: i})
			i++
		case c == '*':
			if i+1 < len(s) && s[i+1] == '*' {
				tokens = append(tokens, token{kind: tokDoubleStar, pos: i})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokStar, pos: i})
				i++
			}
		case c == '/':
			if i+1 < len(s) && s[i+1] == '/' {
				tokens = append(tokens, token{kind: tokDoubleSlash, pos: i})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokSlash, pos: i})
				i++
			}
		case isDigit(c) || c == '.':
			tok, n, err := scanNumber(s, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i += n
		default:
			return nil, &SyntaxError{Pos: i, Msg: "invalid character " + strconv.QuoteRune(rune(c))}
		}
	}
	// EOF at position 0 means nothing but whitespace was seen
	eofPos := len(s)
	if len(tokens) == 0 {
		eofPos = 0
	}
	return append(tokens, token{kind: tokEOF, pos: eofPos}), nil
}

func scanNumber(s string, start int) (token, int, error) {
	i := start
	digits, dots := 0, 0
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		if s[i] == '.' {
			dots++
		} else {
			digits++
		}
		i++
	}
	lit := s[start:i]

	if digits == 0 || dots > 1 {
		return token{}, 0, &SyntaxError{Pos: start, Msg: "invalid decimal literal"}
	}

	if dots == 1 {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return token{}, 0, &SyntaxError{Pos: start, Msg: "invalid decimal literal"}
		}
		return token{kind: tokNumber, pos: start, value: floatValue(f)}, len(lit), nil
	}

	if len(lit) > 1 && lit[0] == '0' && !allZeros(lit) {
		return token{}, 0, &SyntaxError{Pos: start, Msg: "leading zeros in decimal integer literals are not permitted"}
	}
	n, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return token{}, 0, &SyntaxError{Pos: start, Msg: "invalid decimal literal"}
	}
	return token{kind: tokNumber, pos: start, value: intValue(n)}, len(lit), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func allZeros(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}
