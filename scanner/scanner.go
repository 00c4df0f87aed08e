// Package scanner implements the UCG lexer. It takes a []byte source and
// produces a stream of (position, token, literal) triples via repeated
// calls to Scan.
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/jfranklin9000/ucg/token"
)

// Scanner holds the lexer's state over one source file. Allocate a zero
// Scanner and call Init before use.
type Scanner struct {
	file *token.File
	src  []byte

	ch       rune
	offset   int
	rdOffset int

	ErrorCount int
	onError    func(pos token.Pos, msg string)
}

// Init prepares s to scan src, whose length must equal file.Size(). onError,
// if non-nil, is invoked for every lexical error encountered.
func (s *Scanner) Init(file *token.File, src []byte, onError func(token.Pos, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match source length (%d)", file.Size(), len(src)))
	}
	s.file = file
	s.src = src
	s.onError = onError
	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.ErrorCount = 0
	s.next()
}

func (s *Scanner) next() {
	if s.rdOffset >= len(s.src) {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		s.ch = -1
		return
	}
	s.offset = s.rdOffset
	if s.ch == '\n' {
		s.file.AddLine(s.offset)
	}
	r, w := rune(s.src[s.rdOffset]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.rdOffset:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.offset, "illegal UTF-8 encoding")
		}
	}
	s.rdOffset += w
	s.ch = r
}

func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func (s *Scanner) error(offset int, msg string) {
	s.ErrorCount++
	if s.onError != nil {
		s.onError(s.file.Pos(offset), msg)
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || ch >= utf8.RuneSelf && unicode.IsDigit(ch)
}

// isIdentCont reports whether ch may continue a bareword identifier after
// its first character, i.e. [A-Za-z0-9_-] (plus the unicode letter/digit
// classes isLetter and isDigit already accept).
func isIdentCont(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '-'
}

func (s *Scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.next()
	}
}

func (s *Scanner) scanComment() {
	// initial "//" already consumed
	for s.ch != '\n' && s.ch >= 0 {
		s.next()
	}
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isIdentCont(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// scanNumber scans an INT or FLOAT literal. leadingDot is true when the
// caller has already consumed a '.' that begins the literal (the "." at
// start case from spec.md §4.1, e.g. ".5"); in that case s.offset points
// just past the dot and tok starts as FLOAT unconditionally.
func (s *Scanner) scanNumber(leadingDot bool) (token.Token, string) {
	offs := s.offset
	tok := token.INT
	if leadingDot {
		offs--
		tok = token.FLOAT
		for isDigit(s.ch) {
			s.next()
		}
	} else {
		for isDigit(s.ch) {
			s.next()
		}
		if s.ch == '.' {
			// "." at middle or end, e.g. "5.5" or "5." (spec.md §4.1).
			tok = token.FLOAT
			s.next()
			for isDigit(s.ch) {
				s.next()
			}
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		save, saveOff, saveRd := s.ch, s.offset, s.rdOffset
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		if isDigit(s.ch) {
			tok = token.FLOAT
			for isDigit(s.ch) {
				s.next()
			}
		} else {
			// not a valid exponent; rewind
			s.ch, s.offset, s.rdOffset = save, saveOff, saveRd
		}
	}
	return tok, string(s.src[offs:s.offset])
}

func (s *Scanner) scanString() string {
	// opening '"' already consumed
	offs := s.offset - 1
	for {
		ch := s.ch
		if ch == '\n' || ch < 0 {
			s.error(offs, "string literal not terminated")
			break
		}
		s.next()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			switch s.ch {
			case '\\', '"', 'n', 't', 'r':
				s.next()
			default:
				s.error(s.offset, fmt.Sprintf("unknown escape sequence %q", s.ch))
			}
		}
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) switch2(tok0, tok1 token.Token) token.Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	return tok0
}

// Scan returns the next token, its source position, and its literal text
// (populated for IDENT, INT, FLOAT, STRING, and keyword tokens).
func (s *Scanner) Scan() (pos token.Pos, tok token.Token, lit string) {
again:
	s.skipWhitespace()
	pos = s.file.Pos(s.offset)

	switch ch := s.ch; {
	case isLetter(ch):
		lit = s.scanIdentifier()
		tok = token.Lookup(lit)
	case isDigit(ch):
		tok, lit = s.scanNumber(false)
	default:
		s.next()
		switch ch {
		case -1:
			tok = token.EOF
		case '"':
			tok = token.STRING
			lit = s.scanString()
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '[':
			tok = token.LBRACK
		case ']':
			tok = token.RBRACK
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case ',':
			tok = token.COMMA
		case ';':
			tok = token.SEMICOLON
		case '.':
			if isDigit(s.ch) {
				tok, lit = s.scanNumber(true)
			} else {
				tok = token.PERIOD
			}
		case ':':
			tok = token.COLON
		case '=':
			switch s.ch {
			case '>':
				s.next()
				tok = token.ARROW
			case '~':
				s.next()
				tok = token.MTCH
			case '=':
				s.next()
				tok = token.EQL
			default:
				tok = token.ASSIGN
			}
		case '|':
			if s.ch == '|' {
				s.next()
				tok = token.LOR
			} else {
				tok = token.PIPE
			}
		case '@':
			if s.ch == '{' {
				s.next()
				tok = token.ATBRACE
			} else {
				tok = token.AT
			}
		case '+':
			tok = token.ADD
		case '-':
			tok = token.SUB
		case '*':
			tok = token.MUL
		case '/':
			if s.ch == '/' {
				s.next()
				s.scanComment()
				goto again
			}
			tok = token.QUO
		case '%':
			if s.ch == '%' {
				s.next()
				tok = token.DREM
			} else {
				tok = token.REM
			}
		case '!':
			if s.ch == '~' {
				s.next()
				tok = token.NMTC
			} else {
				tok = s.switch2(token.ILLEGAL, token.NEQ)
				if tok == token.ILLEGAL {
					s.error(s.file.Offset(pos), "expected '=' or '~' after '!'")
					lit = "!"
				}
			}
		case '>':
			tok = s.switch2(token.GTR, token.GEQ)
		case '<':
			tok = s.switch2(token.LSS, token.LEQ)
		case '&':
			if s.ch == '&' {
				s.next()
				tok = token.LAND
			} else {
				s.error(s.file.Offset(pos), "illegal character '&'; expected '&&'")
				tok = token.ILLEGAL
				lit = "&"
			}
		default:
			s.error(s.file.Offset(pos), fmt.Sprintf("illegal character %#U", ch))
			tok = token.ILLEGAL
			lit = string(ch)
		}
	}
	return pos, tok, lit
}
