package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type mode uint8

const (
	modeUnbroken mode = iota
	modeBroken
)

// frame — элемент рабочего стека рендерера. Вершина стека — конец среза.
type frame struct {
	indent int
	mode   mode
	doc    *Document
}

// Print раскладывает документ в строку с заданным пределом ширины.
// Ширина текста считается в экранных колонках.
func (d *Document) Print(limit int) string {
	var out strings.Builder
	stack := []frame{{indent: 0, mode: modeUnbroken, doc: d}}
	width := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch top.doc.kind {
		case kindNil:

		case kindText:
			out.WriteString(top.doc.text)
			width += runewidth.StringWidth(top.doc.text)

		case kindLine:
			for i := 0; i < top.doc.newlines; i++ {
				out.WriteByte('\n')
			}
			writeIndent(&out, top.indent)
			width = top.indent

		case kindBreak:
			unbrokenWidth := width + runewidth.StringWidth(top.doc.unbroken)
			switch {
			case top.mode == modeUnbroken:
				out.WriteString(top.doc.unbroken)
				width = unbrokenWidth
			case top.doc.flex && fits(limit, unbrokenWidth, stack):
				// flex-перенос остаётся в строке, пока остаток влезает
				out.WriteString(top.doc.unbroken)
				width = unbrokenWidth
			default:
				out.WriteString(top.doc.broken)
				out.WriteByte('\n')
				writeIndent(&out, top.indent)
				width = top.indent
			}

		case kindVec:
			for i := len(top.doc.docs) - 1; i >= 0; i-- {
				stack = append(stack, frame{top.indent, top.mode, top.doc.docs[i]})
			}

		case kindNest:
			stack = append(stack, frame{top.indent + top.doc.indent, top.mode, top.doc.child})

		case kindGroup:
			m := modeBroken
			if fits(limit, width, []frame{{top.indent, modeUnbroken, top.doc.child}}) {
				m = modeUnbroken
			}
			stack = append(stack, frame{top.indent, m, top.doc.child})

		case kindForceBroken:
			stack = append(stack, frame{top.indent, top.mode, top.doc.child})
		}
	}

	return out.String()
}

// fits проверяет, влезает ли начало документа (до первого обязательного
// переноса) в остаток строки. Стек копируется: проверка не должна трогать
// состояние рендерера.
func fits(limit, width int, pending []frame) bool {
	stack := append([]frame(nil), pending...)

	for {
		if width > limit {
			return false
		}
		if len(stack) == 0 {
			return true
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch top.doc.kind {
		case kindNil:

		case kindText:
			width += runewidth.StringWidth(top.doc.text)

		case kindLine:
			return true

		case kindBreak:
			if top.mode == modeBroken {
				return true
			}
			width += runewidth.StringWidth(top.doc.unbroken)

		case kindVec:
			for i := len(top.doc.docs) - 1; i >= 0; i-- {
				stack = append(stack, frame{top.indent, top.mode, top.doc.docs[i]})
			}

		case kindNest:
			stack = append(stack, frame{top.indent + top.doc.indent, top.mode, top.doc.child})

		case kindGroup:
			stack = append(stack, frame{top.indent, modeUnbroken, top.doc.child})

		case kindForceBroken:
			return false
		}
	}
}

func writeIndent(out *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		out.WriteByte(' ')
	}
}
