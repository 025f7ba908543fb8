// Package doc реализует алгебру документов для каноничной печати:
// дерево из текста, переносов и групп, которое рендерер укладывает в
// заданную ширину. Решение «в строку или в столбик» принимается на
// уровне групп, flex-переносы пакуют элементы плотно.
package doc

type kind uint8

const (
	kindNil kind = iota
	kindText
	kindLine
	kindBreak
	kindVec
	kindNest
	kindGroup
	kindForceBroken
)

// Document — узел дерева печати. Значения неизменяемы после постройки,
// кроме Append к уже составленному Vec.
type Document struct {
	kind     kind
	text     string // kindText
	newlines int    // kindLine
	broken   string // kindBreak
	unbroken string // kindBreak
	flex     bool   // kindBreak
	docs     []*Document
	child    *Document
	indent   int // kindNest
}

var nilDoc = &Document{kind: kindNil}

// Nil — пустой документ.
func Nil() *Document { return nilDoc }

// Text — дословный текст; переводов строк внутри быть не должно.
func Text(s string) *Document {
	return &Document{kind: kindText, text: s}
}

// Line — обязательный перевод строки.
func Line() *Document { return Lines(1) }

// Lines — n обязательных переводов строки.
func Lines(n int) *Document {
	return &Document{kind: kindLine, newlines: n}
}

// Break — строгий перенос: в разломанной группе печатает broken и перевод
// строки, в цельной — unbroken.
func Break(broken, unbroken string) *Document {
	return &Document{kind: kindBreak, broken: broken, unbroken: unbroken}
}

// FlexBreak — мягкий перенос: даже в разломанной группе остаётся unbroken,
// пока остаток строки влезает в ширину.
func FlexBreak(broken, unbroken string) *Document {
	return &Document{kind: kindBreak, broken: broken, unbroken: unbroken, flex: true}
}

// Concat склеивает документы слева направо.
func Concat(docs ...*Document) *Document {
	return &Document{kind: kindVec, docs: docs}
}

// Join склеивает документы, вставляя sep между соседними.
func Join(docs []*Document, sep *Document) *Document {
	if len(docs) == 0 {
		return Nil()
	}
	out := make([]*Document, 0, len(docs)*2-1)
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return &Document{kind: kindVec, docs: out}
}

// Append дописывает other справа. Уже составленный Vec дополняется на месте.
func (d *Document) Append(other *Document) *Document {
	if d.kind == kindVec {
		d.docs = append(d.docs, other)
		return d
	}
	return Concat(d, other)
}

// AppendText — сокращение для Append(Text(s)).
func (d *Document) AppendText(s string) *Document {
	return d.Append(Text(s))
}

// Nest увеличивает отступ после переносов внутри d.
func (d *Document) Nest(indent int) *Document {
	return &Document{kind: kindNest, indent: indent, child: d}
}

// Group отмечает границу решения: группа печатается в строку, только если
// целиком влезает в остаток ширины.
func (d *Document) Group() *Document {
	return &Document{kind: kindGroup, child: d}
}

// ForceBreak ломает все объемлющие группы до ближайшей границы Group.
func (d *Document) ForceBreak() *Document {
	return &Document{kind: kindForceBroken, child: d}
}

// Surround оборачивает документ в open и close.
func (d *Document) Surround(open, close string) *Document {
	return Concat(Text(open), d, Text(close))
}

// IsEmpty сообщает, что документ ничего не напечатает.
func (d *Document) IsEmpty() bool {
	switch d.kind {
	case kindNil:
		return true
	case kindText:
		return d.text == ""
	case kindLine:
		return d.newlines == 0
	case kindBreak:
		return d.broken == "" && d.unbroken == ""
	case kindVec:
		for _, sub := range d.docs {
			if !sub.IsEmpty() {
				return false
			}
		}
		return true
	case kindNest, kindGroup, kindForceBroken:
		return d.child.IsEmpty()
	}
	return false
}
