package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"opal/internal/diag"
	"opal/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Bold)
	gutterColor  = color.New(color.FgBlue)
)

// Pretty prints diagnostics in a compact human-readable form:
//
//	path:line:col: ERROR OPA2001: unexpected token
//	  3 | pub fn {
//	    |        ^
//
// Диагностики без валидного спана печатаются одной строкой заголовка.
func Pretty(w io.Writer, fs *source.FileSet, items []diag.Diagnostic, opts PrettyOpts) error {
	for i := range items {
		if err := prettyOne(w, fs, &items[i], opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, fs *source.FileSet, d *diag.Diagnostic, opts PrettyOpts) error {
	if d.Primary.Empty() && d.Primary.Start == 0 {
		// Диагностика без позиции (например, ошибка ввода-вывода).
		_, err := fmt.Fprintf(w, "%s %s: %s\n",
			severityText(d.Severity, opts.Color), paintCode(d.Code.ID(), opts.Color), d.Message)
		return err
	}

	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		file.Path, start.Line, start.Col,
		severityText(d.Severity, opts.Color), paintCode(d.Code.ID(), opts.Color), d.Message); err != nil {
		return err
	}

	if err := printSnippet(w, file, start, end, opts); err != nil {
		return err
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			if _, err := fmt.Fprintf(w, "  note: %s\n", note.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func printSnippet(w io.Writer, file *source.File, start, end source.LineCol, opts PrettyOpts) error {
	firstLine := start.Line
	if ctx := uint32(opts.Context); ctx > 0 && firstLine > ctx {
		firstLine -= ctx
	} else if opts.Context > 0 {
		firstLine = 1
	}

	gutterWidth := len(fmt.Sprintf("%d", start.Line+uint32(opts.Context)))
	for line := firstLine; line <= start.Line; line++ {
		text := strings.TrimRight(file.GetLine(line), "\n")
		gutter := fmt.Sprintf("%*d |", gutterWidth, line)
		if _, err := fmt.Fprintf(w, "  %s %s\n", paint(gutterColor, gutter, opts.Color), text); err != nil {
			return err
		}
	}

	// Подчёркивание только под первой строкой спана.
	text := strings.TrimRight(file.GetLine(start.Line), "\n")
	prefix := ""
	if int(start.Col) > 1 && int(start.Col)-1 <= len(text) {
		prefix = text[:start.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	gutter := fmt.Sprintf("%*s |", gutterWidth, "")
	_, err := fmt.Fprintf(w, "  %s %s%s\n",
		paint(gutterColor, gutter, opts.Color), pad, paintSeverityMarker(marker, opts.Color))
	return err
}

func severityText(sev diag.Severity, colored bool) string {
	switch sev {
	case diag.SevError:
		return paint(errorColor, "ERROR", colored)
	case diag.SevWarning:
		return paint(warningColor, "WARNING", colored)
	default:
		return paint(infoColor, "INFO", colored)
	}
}

func paintCode(id string, colored bool) string {
	return paint(codeColor, id, colored)
}

func paintSeverityMarker(marker string, colored bool) string {
	return paint(errorColor, marker, colored)
}

func paint(c *color.Color, s string, colored bool) string {
	if !colored {
		return s
	}
	return c.Sprint(s)
}
