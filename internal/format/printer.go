package format

import (
	"math"

	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/doc"
	"opal/internal/parser"
	"opal/internal/source"
)

const (
	maxWidth = 80
	indent   = 2
)

// Formatter печатает модуль, постепенно съедая четыре очереди тривии.
// Курсоры монотонны: каждый pop продвигает их вперёд, повторного
// использования комментариев нет.
type Formatter struct {
	comments       []comment
	docComments    []comment
	moduleComments []comment
	emptyLines     []uint32
}

// NewFormatter создаёт принтер поверх расшифрованной тривии.
func NewFormatter(im *Intermediate) *Formatter {
	return &Formatter{
		comments:       im.comments,
		docComments:    im.docComments,
		moduleComments: im.moduleComments,
		emptyLines:     im.emptyLines,
	}
}

// File парсит файл и возвращает его каноничную форму. При синтаксических
// ошибках возвращает *ParseError.
func File(sf *source.File) (string, error) {
	bag := diag.NewBag(64)
	module, extra := parser.Parse(sf, bag)
	if bag.HasErrors() {
		bag.Sort()
		return "", &ParseError{
			Path:        sf.Path,
			Src:         string(sf.Content),
			Diagnostics: bag.Items(),
		}
	}

	p := NewFormatter(NewIntermediate(extra, sf))
	return p.Module(module).Print(maxWidth), nil
}

// Source форматирует исходник, не требуя внешнего FileSet.
func Source(path string, src []byte) (string, error) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual(path, src)
	return File(fs.Get(fid))
}

// Module строит документ всего модуля: шапка из ////-комментариев,
// определения, затем осиротевшие doc-комментарии и комментарии хвоста.
func (p *Formatter) Module(module *ast.Module) *doc.Document {
	var documents []*doc.Document
	previousWasImport := false

	for i := range module.Definitions {
		definition := &module.Definitions[i]
		_, isImport := definition.Definition.(*ast.Import)

		if len(documents) > 0 {
			// Импорты липнут друг к другу, остальное разделяется
			// пустой строкой.
			if previousWasImport && isImport {
				documents = append(documents, doc.Lines(1))
			} else {
				documents = append(documents, doc.Lines(2))
			}
		}

		documents = append(documents, p.targetedDefinition(definition))
		previousWasImport = isImport
	}

	definitions := doc.Concat(documents...)

	// Оставшиеся ///-комментарии ни к чему не привязаны и уезжают в конец
	// модуля, за ними — оставшиеся обычные комментарии.
	var orphanDocs []*doc.Document
	for _, c := range p.docComments {
		orphanDocs = append(orphanDocs, doc.Text("///"+c.content))
	}
	orphanDocComments := doc.Join(orphanDocs, doc.Line())

	trailing := printedComments(p.popComments(math.MaxUint32), false)
	if trailing == nil {
		trailing = doc.Nil()
	}

	moduleComments := doc.Nil()
	if len(p.moduleComments) > 0 {
		var docs []*doc.Document
		for _, c := range p.moduleComments {
			docs = append(docs, doc.Text("////"+c.content))
		}
		moduleComments = doc.Join(docs, doc.Line()).Append(doc.Line())
	}

	var nonEmpty []*doc.Document
	for _, d := range []*doc.Document{moduleComments, definitions, orphanDocComments, trailing} {
		if !d.IsEmpty() {
			nonEmpty = append(nonEmpty, d)
		}
	}

	return doc.Join(nonEmpty, doc.Line()).Append(doc.Line())
}

func (p *Formatter) targetedDefinition(definition *ast.TargetedDefinition) *doc.Document {
	start := definition.Definition.Loc().Start
	comments := p.popComments(start)

	document := p.documentedDefinition(definition.Definition)
	if definition.Target != nil {
		attr := "@target(" + definition.Target.String() + ")"
		document = doc.Concat(doc.Text(attr), doc.Line(), document)
	}
	return commented(document, comments)
}

func (p *Formatter) documentedDefinition(d ast.Definition) *doc.Document {
	comments := p.docCommentsDoc(d.Loc().Start)
	return comments.Append(p.definition(d).Group()).Group()
}
