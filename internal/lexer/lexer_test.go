package lexer

import (
	"testing"

	"opal/internal/source"
	"opal/internal/token"
)

func lexAll(t *testing.T, src string) (*Lexer, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("lex.opal", []byte(src))
	lx := New(fs.Get(fid), Options{})
	return lx, lx.Tokens()
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestLexKeywordsAndNames(t *testing.T) {
	_, toks := lexAll(t, "pub fn wibble(wobble) { Wabble _x _ }")
	want := []token.Kind{
		token.KwPub, token.KwFn, token.Name, token.LParen, token.Name,
		token.RParen, token.LBrace, token.UpName, token.DiscardName,
		token.DiscardName, token.RBrace, token.EOF,
	}
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexOperators(t *testing.T) {
	_, toks := lexAll(t, "|> <> << >> <=. >=. <. >. <= >= -> <- .. == != && ||")
	want := []token.Kind{
		token.PipeOp, token.LtGt, token.LtLt, token.GtGt, token.LtEqDot,
		token.GtEqDot, token.LtDot, token.GtDot, token.LtEq, token.GtEq,
		token.RArrow, token.LArrow, token.DotDot, token.EqualEqual,
		token.NotEqual, token.AmperAmper, token.VbarVbar, token.EOF,
	}
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexNegativeLiterals(t *testing.T) {
	// После операнда минус бинарный, перед литералом — часть числа.
	_, toks := lexAll(t, "a - 1 + -2")
	want := []token.Kind{
		token.Name, token.Minus, token.IntLit, token.Plus, token.IntLit, token.EOF,
	}
	got := kindsOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokens = %v, want %v", got, want)
		}
	}
	if toks[4].Text != "-2" {
		t.Errorf("negative literal text = %q, want %q", toks[4].Text, "-2")
	}
}

func TestLexNumbers(t *testing.T) {
	_, toks := lexAll(t, "100_000 0xFF 0b101 1.50 1.0e-3")
	wantKinds := []token.Kind{
		token.IntLit, token.IntLit, token.IntLit, token.FloatLit, token.FloatLit, token.EOF,
	}
	wantText := []string{"100_000", "0xFF", "0b101", "1.50", "1.0e-3"}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
	for i, text := range wantText {
		if toks[i].Text != text {
			t.Errorf("token %d text = %q, want %q", i, toks[i].Text, text)
		}
	}
}

func TestLexString(t *testing.T) {
	_, toks := lexAll(t, `"hello \"world\""`)
	if toks[0].Kind != token.StringLit {
		t.Fatalf("kind = %v, want string", toks[0].Kind)
	}
	if toks[0].Text != `hello \"world\"` {
		t.Errorf("text = %q", toks[0].Text)
	}
}

func TestLexTriviaTables(t *testing.T) {
	src := "//// banner\n\n/// doc\npub fn main() {\n  // inner\n  0\n}\n"
	lx, _ := lexAll(t, src)
	extra := lx.Extra()

	if len(extra.ModuleComments) != 1 {
		t.Fatalf("module comments = %d, want 1", len(extra.ModuleComments))
	}
	if len(extra.DocComments) != 1 {
		t.Fatalf("doc comments = %d, want 1", len(extra.DocComments))
	}
	if len(extra.Comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(extra.Comments))
	}
	if len(extra.EmptyLines) != 1 {
		t.Fatalf("empty lines = %d, want 1", len(extra.EmptyLines))
	}

	fs := source.NewFileSet()
	fid := fs.AddVirtual("lex.opal", []byte(src))
	content := fs.Get(fid).Content
	span := extra.ModuleComments[0]
	if got := string(content[span.Start:span.End]); got != " banner" {
		t.Errorf("module comment content = %q, want %q", got, " banner")
	}
}

func TestLexEmptyLineOffsetsAreIncreasing(t *testing.T) {
	lx, _ := lexAll(t, "fn a() { 1 }\n\n\nfn b() { 2 }\n\nfn c() { 3 }\n")
	extra := lx.Extra()
	if len(extra.EmptyLines) != 3 {
		t.Fatalf("empty lines = %d, want 3", len(extra.EmptyLines))
	}
	for i := 1; i < len(extra.EmptyLines); i++ {
		if extra.EmptyLines[i] <= extra.EmptyLines[i-1] {
			t.Fatalf("empty line offsets not increasing: %v", extra.EmptyLines)
		}
	}
	// Две подряд пустые строки дают соседние оффсеты (для склейки в одну).
	if extra.EmptyLines[1] != extra.EmptyLines[0]+1 {
		t.Errorf("adjacent blank lines: %v", extra.EmptyLines[:2])
	}
}
