package format

import (
	"strconv"

	"opal/internal/ast"
	"opal/internal/doc"
)

func (p *Formatter) clauseGuard(guard ast.Guard) *doc.Document {
	switch g := guard.(type) {
	case *ast.GuardBinOp:
		return p.clauseGuardBinOp(g)

	case *ast.GuardVar:
		return doc.Text(g.Name)

	case *ast.GuardTupleIndex:
		return p.clauseGuard(g.Tuple).
			AppendText(".").
			AppendText(strconv.FormatUint(uint64(g.Index), 10))

	case *ast.GuardFieldAccess:
		return p.clauseGuard(g.Container).AppendText(".").AppendText(g.Label)

	case *ast.GuardModuleSelect:
		return doc.Text(g.ModuleAlias).AppendText(".").AppendText(g.Label)

	case *ast.GuardConstant:
		return p.constExpr(g.Value)

	case *ast.GuardNot:
		return doc.Text("!").Append(p.clauseGuard(g.Guard))
	}
	panic("unknown guard kind")
}

func (p *Formatter) clauseGuardBinOp(g *ast.GuardBinOp) *doc.Document {
	precedence := g.Op.GuardPrecedence()
	left := operatorSide(p.clauseGuard(g.Left), precedence, ast.GuardPrecedence(g.Left))
	right := operatorSide(p.clauseGuard(g.Right), precedence, ast.GuardPrecedence(g.Right)-1)
	return left.AppendText(" " + g.Op.Name() + " ").Append(right)
}
