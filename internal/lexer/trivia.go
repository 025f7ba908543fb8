package lexer

// skipTrivia потребляет пробелы, переводы строк и комментарии перед значимым
// токеном, записывая комментарии и пустые строки в Extra.
//
//   - ' ' и '\t' просто пропускаются
//   - '\n', завершающий строку без контента, попадает в Extra.EmptyLines
//   - "//", "///", "////" — комментарий до конца строки, span содержимого
//     (без маркера) уходит в соответствующую таблицу Extra
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			lx.cursor.Bump()

		case b == '\n':
			if !lx.lineHasContent {
				lx.extra.EmptyLines = append(lx.extra.EmptyLines, lx.cursor.Off)
			}
			lx.cursor.Bump()
			lx.lineHasContent = false

		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.scanComment()
			lx.lineHasContent = true

		default:
			return
		}
	}
}

// scanComment consumes a line comment and records its content span.
// Маркер определяется числом слэшей: 2 — комментарий, 3 — doc, 4 — модульный.
func (lx *Lexer) scanComment() {
	slashes := uint32(0)
	for lx.cursor.PeekAt(slashes) == '/' && slashes < 4 {
		slashes++
	}
	for i := uint32(0); i < slashes; i++ {
		lx.cursor.Bump()
	}

	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	span := lx.cursor.SpanFrom(start)

	switch slashes {
	case 2:
		lx.extra.Comments = append(lx.extra.Comments, span)
	case 3:
		lx.extra.DocComments = append(lx.extra.DocComments, span)
	default:
		lx.extra.ModuleComments = append(lx.extra.ModuleComments, span)
	}
}
