package source

import (
	"testing"
)

func TestFileSetAddAndResolve(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("main.opal", []byte("fn main() {\n  0\n}\n"))
	if id != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id)
	}

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}

	// "0" на второй строке, колонка 3
	start, end := fs.Resolve(Span{File: id, Start: 14, End: 15})
	if start.Line != 2 || start.Col != 3 {
		t.Errorf("Expected start 2:3, got %d:%d", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 4 {
		t.Errorf("Expected end 2:4, got %d:%d", end.Line, end.Col)
	}
}

func TestFileSetGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a/b.opal", []byte("// x\n"))

	if _, ok := fs.GetByPath("a/b.opal"); !ok {
		t.Error("Expected GetByPath to find added file")
	}
	if _, ok := fs.GetByPath("missing.opal"); ok {
		t.Error("Expected GetByPath to miss unknown path")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.opal", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
		{0, ""},
	}
	for _, c := range cases {
		if got := f.GetLine(c.line); got != c.want {
			t.Errorf("GetLine(%d) = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\n"))
	if !changed {
		t.Error("Expected CRLF normalization to report a change")
	}
	if string(out) != "a\nb\rc\n" {
		t.Errorf("normalizeCRLF = %q", out)
	}

	out, changed = normalizeCRLF([]byte("plain\n"))
	if changed {
		t.Error("Expected no change for LF-only content")
	}
	if string(out) != "plain\n" {
		t.Errorf("normalizeCRLF = %q", out)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Errorf("Cover = %v", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files should be identity, got %v", got)
	}
}
