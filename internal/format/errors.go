package format

import (
	"fmt"

	"opal/internal/diag"
)

// ParseError — исходник не разобрался, форматировать нечего. Единственная
// восстановимая ошибка пакета; всё остальное — нарушения инвариантов и
// заканчивается паникой.
type ParseError struct {
	Path        string
	Src         string
	Diagnostics []diag.Diagnostic
}

func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("%s: syntax error", e.Path)
	}
	first := e.Diagnostics[0]
	return fmt.Sprintf("%s: [%s] %s", e.Path, first.Code.ID(), first.Message)
}
