package format

import (
	"strings"

	"opal/internal/doc"
)

// stringDoc печатает строковый литерал дословно; многострочные строки
// ломают объемлющие группы.
func stringDoc(value string) *doc.Document {
	d := doc.Text("\"" + value + "\"")
	if strings.Contains(value, "\n") {
		return d.ForceBreak()
	}
	return d
}

// floatDoc нормализует вещественный литерал: хвостовые нули дробной части
// срезаются, но минимум одна цифра остаётся; научный суффикс не трогается.
func floatDoc(value string) *doc.Document {
	integerPart, fpPart, _ := strings.Cut(value, ".")

	fractional := fpPart
	scientific := ""
	if i := strings.IndexByte(fpPart, 'e'); i >= 0 {
		fractional, scientific = fpPart[:i], fpPart[i:]
	}

	fractional = strings.TrimRight(fractional, "0")
	if fractional == "" {
		fractional = "0"
	}

	return underscoreIntegerString(integerPart).
		AppendText(".").
		AppendText(fractional).
		AppendText(scientific)
}

// intDoc группирует цифры подчёркиваниями; литералы с префиксом системы
// счисления остаются как есть, знак при этом не мешает префиксу.
func intDoc(value string) *doc.Document {
	digits := strings.TrimPrefix(value, "-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0b") || strings.HasPrefix(digits, "0o") {
		return doc.Text(value)
	}
	return underscoreIntegerString(value)
}

func underscoreIntegerString(value string) *doc.Document {
	length := len(value)
	underscores := strings.Count(value, "_")

	// Перегруппировка начинается с пяти значащих цифр, шести со знаком.
	watershed := 5
	if strings.HasPrefix(value, "-") {
		watershed = 6
	}
	insert := length-underscores >= watershed

	out := make([]byte, 0, length+length/3)
	j := 0
	for i := length - 1; i >= 0; i-- {
		ch := value[i]
		if ch == '_' {
			continue
		}
		if insert && i != length-1 && ch != '-' && j%3 == 0 {
			out = append(out, '_')
		}
		out = append(out, ch)
		j++
	}

	// Цифры собирались с конца.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return doc.Text(string(out))
}
