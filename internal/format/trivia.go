package format

import (
	"opal/internal/doc"
	"opal/internal/source"
	"opal/internal/token"
)

// comment — содержимое комментария без маркера плюс байт его начала.
type comment struct {
	start   uint32
	content string
}

// triviaLine — элемент результата popComments: либо строка комментария,
// либо маркер одной (склеенной) пустой строки.
type triviaLine struct {
	blank   bool
	content string
}

// Intermediate — расшифрованная побочная таблица лексера: спаны комментариев
// превращены в строки, оффсеты пустых строк оставлены как есть.
type Intermediate struct {
	comments       []comment
	docComments    []comment
	moduleComments []comment
	emptyLines     []uint32
}

// NewIntermediate раскрывает спаны из extra в текст по содержимому файла.
func NewIntermediate(extra *token.Extra, file *source.File) *Intermediate {
	content := func(spans []source.Span) []comment {
		out := make([]comment, 0, len(spans))
		for _, s := range spans {
			out = append(out, comment{
				start:   s.Start,
				content: string(file.Content[s.Start:s.End]),
			})
		}
		return out
	}
	return &Intermediate{
		comments:       content(extra.Comments),
		docComments:    content(extra.DocComments),
		moduleComments: content(extra.ModuleComments),
		emptyLines:     extra.EmptyLines,
	}
}

func (p *Formatter) anyComments(limit uint32) bool {
	return len(p.comments) > 0 && p.comments[0].start < limit
}

// popComments снимает комментарии до байта limit вместе с пустыми строками
// между ними. Подряд идущие пустые строки склеиваются в одну, ведущие
// отбрасываются.
func (p *Formatter) popComments(limit uint32) []triviaLine {
	popped, comments, emptyLines := commentsBefore(p.comments, p.emptyLines, limit, true)
	p.comments = comments
	p.emptyLines = emptyLines
	return popped
}

// popDocComments снимает doc-комментарии до байта limit; пустые строки в
// этом диапазоне потребляются и выбрасываются.
func (p *Formatter) popDocComments(limit uint32) []triviaLine {
	popped, docComments, emptyLines := commentsBefore(p.docComments, p.emptyLines, limit, false)
	p.docComments = docComments
	p.emptyLines = emptyLines
	return popped
}

// popEmptyLines потребляет пустые строки до байта limit включительно и
// сообщает, была ли хоть одна.
func (p *Formatter) popEmptyLines(limit uint32) bool {
	end := 0
	for i, position := range p.emptyLines {
		if position > limit {
			break
		}
		end = i + 1
	}
	p.emptyLines = p.emptyLines[end:]
	return end != 0
}

func commentsBefore(comments []comment, emptyLines []uint32, limit uint32, retainEmptyLines bool) ([]triviaLine, []comment, []uint32) {
	endComments := len(comments)
	for i, c := range comments {
		if c.start > limit {
			endComments = i
			break
		}
	}
	endEmptyLines := len(emptyLines)
	for i, l := range emptyLines {
		if l > limit {
			endEmptyLines = i
			break
		}
	}

	// Соседние пустые строки (оффсеты отличаются на 1) склеиваются в одну.
	type blank struct{ start, end uint32 }
	var blanks []blank
	if retainEmptyLines {
		for _, l := range emptyLines[:endEmptyLines] {
			if n := len(blanks); n > 0 && blanks[n-1].end+1 == l {
				blanks[n-1].end = l
				continue
			}
			blanks = append(blanks, blank{start: l, end: l})
		}
	}

	// Слияние комментариев и пустых строк по позиции в файле.
	popped := make([]triviaLine, 0, endComments+len(blanks))
	ci, bi := 0, 0
	for ci < endComments || bi < len(blanks) {
		if ci < endComments && (bi >= len(blanks) || comments[ci].start < blanks[bi].start) {
			popped = append(popped, triviaLine{content: comments[ci].content})
			ci++
		} else {
			popped = append(popped, triviaLine{blank: true})
			bi++
		}
	}

	// Пустые строки перед первым комментарием не печатаются.
	for len(popped) > 0 && popped[0].blank {
		popped = popped[1:]
	}

	return popped, comments[endComments:], emptyLines[endEmptyLines:]
}

// printedComments печатает снятые комментарии, сохраняя по одной пустой
// строке между группами. Возвращает nil, если печатать нечего.
func printedComments(lines []triviaLine, trailingNewline bool) *doc.Document {
	if len(lines) == 0 {
		return nil
	}

	var docs []*doc.Document
	i := 0
	for i < len(lines) {
		c := lines[i]
		i++
		if c.blank {
			continue
		}
		docs = append(docs, doc.Text("//"+c.content))
		switch {
		case i >= len(lines):
			if trailingNewline {
				docs = append(docs, doc.Line())
			}
		case !lines[i].blank:
			docs = append(docs, doc.Line())
		default:
			i++
			if i < len(lines) || trailingNewline {
				docs = append(docs, doc.Lines(2))
			}
		}
	}

	d := doc.Concat(docs...)
	if trailingNewline {
		return d.ForceBreak()
	}
	return d
}

// commented подвешивает комментарии перед документом.
func commented(d *doc.Document, lines []triviaLine) *doc.Document {
	if printed := printedComments(lines, true); printed != nil {
		return printed.Append(d.Group())
	}
	return d
}

// docCommentsDoc печатает doc-комментарии, накопившиеся до байта limit.
func (p *Formatter) docCommentsDoc(limit uint32) *doc.Document {
	popped := p.popDocComments(limit)
	if len(popped) == 0 {
		return doc.Nil()
	}
	docs := make([]*doc.Document, 0, len(popped))
	for _, c := range popped {
		docs = append(docs, doc.Text("///"+c.content))
	}
	return doc.Join(docs, doc.Line()).Append(doc.Line()).ForceBreak()
}
