package main

import (
	"errors"
	"strings"
	"testing"

	"opal/internal/format"
)

func TestRenderFileErrorShowsParseDiagnostics(t *testing.T) {
	_, err := format.Source("broken.opal", []byte("pub fn {\n"))
	if err == nil {
		t.Fatalf("expected a parse error")
	}

	var b strings.Builder
	renderFileError(&b, "broken.opal", err, false)
	out := b.String()

	if !strings.Contains(out, "broken.opal:1:") {
		t.Fatalf("missing position header:\n%s", out)
	}
	if !strings.Contains(out, "pub fn {") {
		t.Fatalf("missing source snippet:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret:\n%s", out)
	}
}

func TestRenderFileErrorFallsBackToPlainLine(t *testing.T) {
	var b strings.Builder
	renderFileError(&b, "main.opal", errors.New("permission denied"), false)

	want := "fmt: main.opal: permission denied\n"
	if b.String() != want {
		t.Fatalf("plain error output: got %q, want %q", b.String(), want)
	}
}
