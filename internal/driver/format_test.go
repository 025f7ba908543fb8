package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"opal/internal/project"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFormatPathsRewritesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.opal", "pub   fn main()   {   1   }")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results: got %d, want 1", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("unexpected file error: %v", results[0].Err)
	}
	if !results[0].Changed {
		t.Fatalf("file should have been reformatted")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	want := "pub fn main() {\n  1\n}\n"
	if string(data) != want {
		t.Fatalf("file content: got %q, want %q", string(data), want)
	}
}

func TestFormatPathsCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	original := "pub   fn main()   {   1   }"
	path := writeSource(t, dir, "main.opal", original)

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths() failed: %v", err)
	}
	if !results[0].Changed {
		t.Fatalf("check should report the file as unformatted")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != original {
		t.Fatalf("check mode must not modify files")
	}
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.opal", "pub fn main() {\n  1\n}\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Stdout: true})
	if err != nil {
		t.Fatalf("FormatPaths() failed: %v", err)
	}
	if results[0].Changed {
		t.Fatalf("canonical input should be reported as unchanged")
	}
	if string(results[0].Formatted) != "pub fn main() {\n  1\n}\n" {
		t.Fatalf("stdout content: got %q", string(results[0].Formatted))
	}
}

func TestFormatPathsReportsParseError(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "broken.opal", "pub fn {\n")
	writeSource(t, dir, "good.opal", "pub fn main() {\n  1\n}\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}
	// CollectSourceFiles сортирует, broken.opal идёт первым.
	if results[0].Err == nil {
		t.Fatalf("expected a parse error for broken.opal")
	}
	if results[1].Err != nil {
		t.Fatalf("good.opal should format cleanly, got %v", results[1].Err)
	}
}

func TestFormatFilesEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.opal", "pub fn main() {\n  1\n}\n")

	events := make(chan Event, 8)
	done := make(chan struct{})
	var got []Event
	go func() {
		for ev := range events {
			got = append(got, ev)
		}
		close(done)
	}()

	_, err := FormatFiles(context.Background(), []string{path}, FormatOptions{Events: events})
	if err != nil {
		t.Fatalf("FormatFiles() failed: %v", err)
	}
	close(events)
	<-done

	if len(got) != 2 {
		t.Fatalf("events: got %d, want 2", len(got))
	}
	if got[0].Status != StatusFormatting || got[1].Status != StatusUnchanged {
		t.Fatalf("event statuses: got %v, %v", got[0].Status, got[1].Status)
	}
}

func TestFormatCacheSkipsKnownFiles(t *testing.T) {
	cacheDir := t.TempDir()
	cache, err := OpenFormatCacheAt(cacheDir)
	if err != nil {
		t.Fatalf("OpenFormatCacheAt() failed: %v", err)
	}

	dir := t.TempDir()
	path := writeSource(t, dir, "main.opal", "pub fn main() {\n  1\n}\n")

	opts := FormatOptions{Cache: cache}
	if _, err := FormatPaths(context.Background(), []string{path}, opts); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !cache.Known(project.HashBytes(data)) {
		t.Fatalf("canonical file digest should be in the cache")
	}

	// Сломанный синтаксис с закешированным дайджестом не парсится вовсе.
	broken := []byte("pub fn {\n")
	cache.Remember(project.HashBytes(broken))
	if err := os.WriteFile(path, broken, 0o644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if results[0].Err != nil || results[0].Changed {
		t.Fatalf("cached digest should skip the file entirely: %+v", results[0])
	}
}

func TestFormatCacheMissOnUnknownDigest(t *testing.T) {
	cache, err := OpenFormatCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFormatCacheAt() failed: %v", err)
	}
	if cache.Known(project.HashBytes([]byte("never seen"))) {
		t.Fatalf("empty cache should miss")
	}
	var nilCache *FormatCache
	if nilCache.Known(project.HashBytes([]byte("x"))) {
		t.Fatalf("nil cache should miss")
	}
	nilCache.Remember(project.HashBytes([]byte("x")))
}

func TestCollectSourceFilesIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.opal", "const a = 1\n")
	writeSource(t, dir, "sub/b.opal", "const b = 2\n")
	writeSource(t, dir, "notes.txt", "not source")

	files, err := CollectSourceFiles(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("CollectSourceFiles() failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files: got %v, want 2 entries", files)
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.opal", "// note\npub fn main() {\n  1\n}\n")

	result, err := Tokenize(path, 16)
	if err != nil {
		t.Fatalf("Tokenize() failed: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", result.Bag.Items())
	}
	if len(result.Tokens) == 0 {
		t.Fatalf("no tokens produced")
	}
	if len(result.Extra.Comments) != 1 {
		t.Fatalf("comments: got %d, want 1", len(result.Extra.Comments))
	}
}
