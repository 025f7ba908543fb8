package parser

import (
	"testing"

	"opal/internal/ast"
	"opal/internal/diag"
	"opal/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("parse.opal", []byte(src))
	bag := diag.NewBag(32)
	module, _ := Parse(fs.Get(fid), bag)
	return module, bag
}

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	module, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	return module
}

func firstFnBody(t *testing.T, module *ast.Module) []ast.Statement {
	t.Helper()
	for i := range module.Definitions {
		if fn, ok := module.Definitions[i].Definition.(*ast.Function); ok {
			return fn.Body
		}
	}
	t.Fatalf("module has no function definition")
	return nil
}

func TestParseDefinitionKinds(t *testing.T) {
	module := mustParse(t, `import core/list

pub const limit = 10

pub type Shape {
  Circle(radius: Float)
  Point
}

type Alias = List(Int)

pub fn main() {
  limit
}
`)

	if got := len(module.Definitions); got != 5 {
		t.Fatalf("definitions count: got %d, want 5", got)
	}

	if imp, ok := module.Definitions[0].Definition.(*ast.Import); !ok {
		t.Fatalf("definition 0: got %T, want *ast.Import", module.Definitions[0].Definition)
	} else if imp.Module != "core/list" {
		t.Fatalf("import module: got %q, want %q", imp.Module, "core/list")
	}

	if c, ok := module.Definitions[1].Definition.(*ast.ModuleConstant); !ok || !c.Public {
		t.Fatalf("definition 1: want public *ast.ModuleConstant, got %T", module.Definitions[1].Definition)
	}

	ct, ok := module.Definitions[2].Definition.(*ast.CustomType)
	if !ok {
		t.Fatalf("definition 2: got %T, want *ast.CustomType", module.Definitions[2].Definition)
	}
	if len(ct.Constructors) != 2 || ct.Constructors[0].Name != "Circle" {
		t.Fatalf("custom type constructors: got %+v", ct.Constructors)
	}

	if _, ok := module.Definitions[3].Definition.(*ast.TypeAlias); !ok {
		t.Fatalf("definition 3: got %T, want *ast.TypeAlias", module.Definitions[3].Definition)
	}

	if fn, ok := module.Definitions[4].Definition.(*ast.Function); !ok || fn.Name != "main" {
		t.Fatalf("definition 4: want function main, got %T", module.Definitions[4].Definition)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	module := mustParse(t, "pub fn main() {\n  1 + 2 * 3\n}\n")
	body := firstFnBody(t, module)

	stmt, ok := body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement: got %T, want *ast.ExprStmt", body[0])
	}
	add, ok := stmt.Expr.(*ast.BinExpr)
	if !ok || add.Op != ast.OpAddInt {
		t.Fatalf("top expression: got %T, want addition", stmt.Expr)
	}
	mult, ok := add.Right.(*ast.BinExpr)
	if !ok || mult.Op != ast.OpMultInt {
		t.Fatalf("right operand: got %T, want multiplication", add.Right)
	}
}

func TestParsePipelineFlattening(t *testing.T) {
	module := mustParse(t, "pub fn main() {\n  a |> b |> c\n}\n")
	body := firstFnBody(t, module)

	stmt := body[0].(*ast.ExprStmt)
	pipe, ok := stmt.Expr.(*ast.Pipeline)
	if !ok {
		t.Fatalf("expression: got %T, want *ast.Pipeline", stmt.Expr)
	}
	if got := len(pipe.Expressions); got != 3 {
		t.Fatalf("pipeline stages: got %d, want 3", got)
	}
}

func TestParseCaptureRewrite(t *testing.T) {
	module := mustParse(t, "pub fn main() {\n  f(_, 2)\n}\n")
	body := firstFnBody(t, module)

	stmt := body[0].(*ast.ExprStmt)
	fn, ok := stmt.Expr.(*ast.Fn)
	if !ok || !fn.IsCapture {
		t.Fatalf("expression: got %T, want capture fn", stmt.Expr)
	}
	if len(fn.Arguments) != 1 || fn.Arguments[0].Names.Name != ast.CaptureVariable {
		t.Fatalf("capture arguments: got %+v", fn.Arguments)
	}

	inner := fn.Body[0].(*ast.ExprStmt)
	call, ok := inner.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("capture body: got %T, want *ast.Call", inner.Expr)
	}
	if !ast.IsCaptureHole(call.Arguments[0].Value) {
		t.Fatalf("first argument is not the capture hole: %+v", call.Arguments[0].Value)
	}
}

func TestParseRejectsMultipleHoles(t *testing.T) {
	_, bag := parseSrc(t, "pub fn main() {\n  f(_, _)\n}\n")
	if !bag.HasErrors() {
		t.Fatalf("expected an error for a capture with two holes")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynBadCapture {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynBadCapture, got %v", bag.Items())
	}
}

func TestParseRecordUpdate(t *testing.T) {
	module := mustParse(t, "pub fn main() {\n  Person(..base, name: \"J\")\n}\n")
	body := firstFnBody(t, module)

	stmt := body[0].(*ast.ExprStmt)
	update, ok := stmt.Expr.(*ast.RecordUpdate)
	if !ok {
		t.Fatalf("expression: got %T, want *ast.RecordUpdate", stmt.Expr)
	}
	if len(update.Arguments) != 1 || update.Arguments[0].Label != "name" {
		t.Fatalf("update arguments: got %+v", update.Arguments)
	}
}

func TestParseCaseClauses(t *testing.T) {
	module := mustParse(t, `pub fn main() {
  case x {
    0 | 1 -> x
    n if n > 2 -> n
    _ -> 0
  }
}
`)
	body := firstFnBody(t, module)

	stmt := body[0].(*ast.ExprStmt)
	c, ok := stmt.Expr.(*ast.Case)
	if !ok {
		t.Fatalf("expression: got %T, want *ast.Case", stmt.Expr)
	}
	if got := len(c.Clauses); got != 3 {
		t.Fatalf("clauses: got %d, want 3", got)
	}
	if len(c.Clauses[0].AlternativePatterns) != 1 {
		t.Fatalf("clause 0 alternatives: got %d, want 1", len(c.Clauses[0].AlternativePatterns))
	}
	if c.Clauses[1].Guard == nil {
		t.Fatalf("clause 1 is missing its guard")
	}
}

func TestParseUse(t *testing.T) {
	module := mustParse(t, "pub fn main() {\n  use a, b <- zip(xs, ys)\n  a\n}\n")
	body := firstFnBody(t, module)

	use, ok := body[0].(*ast.Use)
	if !ok {
		t.Fatalf("statement: got %T, want *ast.Use", body[0])
	}
	if got := len(use.Assignments); got != 2 {
		t.Fatalf("use assignments: got %d, want 2", got)
	}
	if _, ok := use.Call.(*ast.Call); !ok {
		t.Fatalf("use call: got %T, want *ast.Call", use.Call)
	}
}

func TestParseBitArraySegments(t *testing.T) {
	module := mustParse(t, "pub fn main() {\n  <<1, x:size(8)-unit(2)-little, y:16>>\n}\n")
	body := firstFnBody(t, module)

	stmt := body[0].(*ast.ExprStmt)
	bits, ok := stmt.Expr.(*ast.BitArrayExpr)
	if !ok {
		t.Fatalf("expression: got %T, want *ast.BitArrayExpr", stmt.Expr)
	}
	if got := len(bits.Segments); got != 3 {
		t.Fatalf("segments: got %d, want 3", got)
	}

	second := bits.Segments[1]
	if len(second.Options) != 3 {
		t.Fatalf("segment 1 options: got %d, want 3", len(second.Options))
	}
	if second.Options[0].Kind != ast.BitOptSize || second.Options[0].ShortForm {
		t.Fatalf("segment 1 option 0: got %+v", second.Options[0])
	}
	if second.Options[1].Kind != ast.BitOptUnit || second.Options[1].Unit != 2 {
		t.Fatalf("segment 1 option 1: got %+v", second.Options[1])
	}
	if second.Options[2].Kind != ast.BitOptLittle {
		t.Fatalf("segment 1 option 2: got %+v", second.Options[2])
	}

	third := bits.Segments[2]
	if len(third.Options) != 1 || !third.Options[0].ShortForm {
		t.Fatalf("segment 2 options: got %+v", third.Options)
	}
}

func TestParseRecoversAfterBrokenDefinition(t *testing.T) {
	module, bag := parseSrc(t, "pub fn {\n\npub fn ok() {\n  1\n}\n")
	if !bag.HasErrors() {
		t.Fatalf("expected errors for the broken definition")
	}
	found := false
	for i := range module.Definitions {
		if fn, ok := module.Definitions[i].Definition.(*ast.Function); ok && fn.Name == "ok" {
			found = true
		}
	}
	if !found {
		t.Fatalf("parser did not recover to the next definition")
	}
}

func TestParseStringPrefixPattern(t *testing.T) {
	module := mustParse(t, `pub fn main() {
  case x {
    "pre" as p <> rest -> p
    _ -> rest
  }
}
`)
	body := firstFnBody(t, module)

	c := body[0].(*ast.ExprStmt).Expr.(*ast.Case)
	prefix, ok := c.Clauses[0].Patterns[0].(*ast.StringPrefixPat)
	if !ok {
		t.Fatalf("pattern: got %T, want *ast.StringPrefixPat", c.Clauses[0].Patterns[0])
	}
	if prefix.Prefix != "pre" || prefix.PrefixAssignment != "p" || prefix.Rest != "rest" {
		t.Fatalf("prefix pattern fields: got %+v", prefix)
	}
}

func TestParseAttributes(t *testing.T) {
	module := mustParse(t, `@target(javascript)
@deprecated("old")
@external(erlang, "m", "f")
pub fn go() -> Int
`)

	def := &module.Definitions[0]
	if def.Target == nil || *def.Target != ast.TargetJavaScript {
		t.Fatalf("target attribute: got %+v", def.Target)
	}
	fn := def.Definition.(*ast.Function)
	if !fn.Deprecation.Deprecated || fn.Deprecation.Message != "old" {
		t.Fatalf("deprecation: got %+v", fn.Deprecation)
	}
	if fn.ExternalErlang == nil || fn.ExternalErlang.Module != "m" || fn.ExternalErlang.Function != "f" {
		t.Fatalf("external erlang: got %+v", fn.ExternalErlang)
	}
	if fn.HasBody() {
		t.Fatalf("external function should not have a body")
	}
}
