package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"opal/internal/diag"
	"opal/internal/lexer"
	"opal/internal/source"
	"opal/internal/token"
)

func lexVirtual(t *testing.T, src string) (*source.FileSet, []token.Token, *token.Extra) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("main.opal", []byte(src))
	lx := lexer.New(fs.Get(fid), lexer.Options{})
	return fs, lx.Tokens(), lx.Extra()
}

func TestPrettyRendersPositionAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("main.opal", []byte("pub fn {\n"))

	items := []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SynExpectIdentifier,
		Message:  "expected a function name",
		Primary:  source.Span{File: fid, Start: 7, End: 8},
	}}

	var b strings.Builder
	if err := Pretty(&b, fs, items, PrettyOpts{Color: false, ShowNotes: true}); err != nil {
		t.Fatalf("Pretty() failed: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, "main.opal:1:8: ERROR OPA2003: expected a function name") {
		t.Fatalf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "pub fn {") {
		t.Fatalf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret:\n%s", out)
	}
}

func TestPrettyWithoutSpan(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("main.opal", []byte(""))

	items := []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.UnknownCode,
		Message:  "something odd",
	}}

	var b strings.Builder
	if err := Pretty(&b, fs, items, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty() failed: %v", err)
	}
	if !strings.Contains(b.String(), "WARNING OPA0000: something odd") {
		t.Fatalf("unexpected output: %q", b.String())
	}
}

func TestJSONDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("main.opal", []byte("let\n"))

	items := []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "unexpected token",
		Primary:  source.Span{File: fid, Start: 0, End: 3},
	}}

	var b strings.Builder
	if err := JSON(&b, fs, items); err != nil {
		t.Fatalf("JSON() failed: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(b.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, b.String())
	}
	if len(decoded) != 1 {
		t.Fatalf("entries: got %d, want 1", len(decoded))
	}
	if decoded[0]["code"] != "OPA2001" {
		t.Fatalf("code: got %v, want OPA2001", decoded[0]["code"])
	}
	if decoded[0]["line"] != float64(1) || decoded[0]["col"] != float64(1) {
		t.Fatalf("position: got line=%v col=%v", decoded[0]["line"], decoded[0]["col"])
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs, tokens, _ := lexVirtual(t, "pub fn main() {\n  1\n}\n")

	var b strings.Builder
	if err := FormatTokensPretty(&b, fs, tokens); err != nil {
		t.Fatalf("FormatTokensPretty() failed: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "main.opal:1:1\tpub") {
		t.Fatalf("missing pub token line:\n%s", out)
	}
	if !strings.Contains(out, "\"main\"") {
		t.Fatalf("missing name token text:\n%s", out)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs, tokens, _ := lexVirtual(t, "const a = 1\n")

	var b strings.Builder
	if err := FormatTokensJSON(&b, fs, tokens); err != nil {
		t.Fatalf("FormatTokensJSON() failed: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(b.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) == 0 {
		t.Fatalf("no tokens in JSON output")
	}
}

func TestFormatTriviaPretty(t *testing.T) {
	fs, _, extra := lexVirtual(t, "// note\n\npub fn main() {\n  1\n}\n")

	var b strings.Builder
	if err := FormatTriviaPretty(&b, fs, extra); err != nil {
		t.Fatalf("FormatTriviaPretty() failed: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "comments (1):") {
		t.Fatalf("missing comment summary:\n%s", out)
	}
	if !strings.Contains(out, "blank lines: 1") {
		t.Fatalf("missing blank line count:\n%s", out)
	}
}
