package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jfranklin9000/ucg/token"
)

type elt struct {
	tok token.Token
	lit string
}

var testTokens = []elt{
	{token.LET, "let"},
	{token.IDENT, "x"},
	{token.ASSIGN, ""},
	{token.INT, "42"},
	{token.SEMICOLON, ""},
	{token.OUT, "out"},
	{token.IDENT, "json"},
	{token.IDENT, "x"},
	{token.SEMICOLON, ""},
}

const source = `let x = 42;
out json x;
`

func TestScanSequence(t *testing.T) {
	file := token.NewFile("test.ucg", len(source))
	var s Scanner
	var errs []string
	s.Init(file, []byte(source), func(_ token.Pos, msg string) { errs = append(errs, msg) })

	var got []elt
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		got = append(got, elt{tok, lit})
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	if diff := cmp.Diff(testTokens, got, cmp.Comparer(func(a, b elt) bool {
		if a.tok != b.tok {
			return false
		}
		if a.lit == "" || b.lit == "" {
			return true
		}
		return a.lit == b.lit
	})); diff != "" {
		t.Errorf("token sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestScanNumbers(t *testing.T) {
	cases := []struct {
		src string
		tok token.Token
	}{
		{"0", token.INT},
		{"123", token.INT},
		{"1.5", token.FLOAT},
		{"1e10", token.FLOAT},
		{"1.5e-3", token.FLOAT},
		{"2E+4", token.FLOAT},
	}
	for _, c := range cases {
		file := token.NewFile("n.ucg", len(c.src))
		var s Scanner
		s.Init(file, []byte(c.src), nil)
		_, tok, lit := s.Scan()
		if tok != c.tok || lit != c.src {
			t.Errorf("scan(%q) = %v %q, want %v %q", c.src, tok, lit, c.tok, c.src)
		}
	}
}

func TestScanString(t *testing.T) {
	src := `"a\nb\"c"`
	file := token.NewFile("s.ucg", len(src))
	var s Scanner
	s.Init(file, []byte(src), nil)
	_, tok, lit := s.Scan()
	if tok != token.STRING {
		t.Fatalf("tok = %v, want STRING", tok)
	}
	if lit != src {
		t.Errorf("lit = %q, want %q", lit, src)
	}
}

func TestScanOperators(t *testing.T) {
	src := `== != >= <= => =~ !~ && || %% @{ }`
	want := []token.Token{
		token.EQL, token.NEQ, token.GEQ, token.LEQ, token.ARROW,
		token.MTCH, token.NMTC, token.LAND, token.LOR, token.DREM,
		token.ATBRACE, token.RBRACE,
	}
	file := token.NewFile("o.ucg", len(src))
	var s Scanner
	s.Init(file, []byte(src), func(_ token.Pos, msg string) { t.Errorf("scan error: %s", msg) })
	for _, w := range want {
		_, tok, _ := s.Scan()
		if tok != w {
			t.Errorf("tok = %v, want %v", tok, w)
		}
	}
}

func TestScanComment(t *testing.T) {
	src := "let x = 1; // trailing comment\nlet y = 2;"
	file := token.NewFile("c.ucg", len(src))
	var s Scanner
	s.Init(file, []byte(src), nil)
	var kinds []token.Token
	for {
		_, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
		kinds = append(kinds, tok)
	}
	want := []token.Token{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON,
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestScanIllegalEscape(t *testing.T) {
	src := `"bad\qescape"`
	file := token.NewFile("e.ucg", len(src))
	var s Scanner
	var errs int
	s.Init(file, []byte(src), func(_ token.Pos, _ string) { errs++ })
	s.Scan()
	if errs == 0 {
		t.Errorf("expected a lex error for bad escape, got none")
	}
}
