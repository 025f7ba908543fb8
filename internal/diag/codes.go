package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadEscape          Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpr         Code = 2004
	SynExpectPattern      Code = 2005
	SynExpectType         Code = 2006
	SynUnclosedDelimiter  Code = 2007
	SynExpectIdentAfterAs Code = 2008
	SynBadAttribute       Code = 2009
	SynEmptyCase          Code = 2010
	SynBadCapture         Code = 2011
	SynEmptyBlock         Code = 2012
)

// ID returns the stable textual identifier of the code (e.g. "OPA2001").
func (c Code) ID() string {
	return fmt.Sprintf("OPA%04d", uint16(c))
}

// Title returns a short human label for the code family.
func (c Code) Title() string {
	switch {
	case c >= 2000 && c < 3000:
		return "syntax"
	case c >= 1000 && c < 2000:
		return "lexical"
	default:
		return "unknown"
	}
}

func (c Code) String() string {
	return c.ID()
}
