package format

import (
	"opal/internal/ast"
	"opal/internal/doc"
)

func (p *Formatter) typeAst(t ast.TypeAst) *doc.Document {
	var d *doc.Document
	switch t := t.(type) {
	case *ast.TypeHole:
		d = doc.Text(t.Name)

	case *ast.TypeVar:
		d = doc.Text(t.Name)

	case *ast.TypeConstructor:
		head := doc.Text(t.Name)
		if t.Module != "" {
			head = doc.Text(t.Module).AppendText(".").AppendText(t.Name)
		}
		if len(t.Arguments) == 0 {
			d = head
		} else {
			d = head.Append(p.typeArguments(t.Arguments))
		}

	case *ast.TypeFn:
		d = doc.Text("fn").
			Append(p.typeArguments(t.Arguments)).
			Group().
			AppendText(" ->").
			Append(doc.Break("", " ").Append(p.typeAst(t.Return)).Nest(indent))

	case *ast.TypeTuple:
		d = doc.Text("#").Append(p.typeArguments(t.Elems))

	default:
		panic("unknown type annotation kind")
	}
	return d.Group()
}

func (p *Formatter) typeArguments(args []ast.TypeAst) *doc.Document {
	docs := make([]*doc.Document, 0, len(args))
	for _, arg := range args {
		docs = append(docs, p.typeAst(arg))
	}
	return wrapArgs(docs)
}
