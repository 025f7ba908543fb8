package diagfmt

import (
	"encoding/json"
	"io"

	"opal/internal/diag"
	"opal/internal/source"
)

type diagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Line     uint32 `json:"line,omitempty"`
	Col      uint32 `json:"col,omitempty"`
	EndLine  uint32 `json:"end_line,omitempty"`
	EndCol   uint32 `json:"end_col,omitempty"`
}

// JSON пишет диагностики единым JSON-массивом для машинной обработки.
func JSON(w io.Writer, fs *source.FileSet, items []diag.Diagnostic) error {
	payload := make([]diagnosticJSON, 0, len(items))
	for _, d := range items {
		entry := diagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if !(d.Primary.Empty() && d.Primary.Start == 0) {
			start, end := fs.Resolve(d.Primary)
			entry.Path = fs.Get(d.Primary.File).Path
			entry.Line = start.Line
			entry.Col = start.Col
			entry.EndLine = end.Line
			entry.EndCol = end.Col
		}
		payload = append(payload, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
