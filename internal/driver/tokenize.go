package driver

import (
	"opal/internal/diag"
	"opal/internal/lexer"
	"opal/internal/source"
	"opal/internal/token"
)

// TokenizeResult содержит токены одного файла вместе с тривией и
// диагностиками лексера.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Extra   *token.Extra
	Bag     *diag.Bag
}

// Tokenize lexes a single file from disk. Lexical errors end up in the bag,
// not in the returned error; the error is for I/O only.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 256
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	file := fileSet.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	tokens := lx.Tokens()
	return &TokenizeResult{
		FileSet: fileSet,
		File:    file,
		Tokens:  tokens,
		Extra:   lx.Extra(),
		Bag:     bag,
	}, nil
}
