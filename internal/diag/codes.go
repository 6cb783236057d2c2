package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Парсерные
	SynExpectExpression   Code = 2001
	SynExpectRParen       Code = 2002
	SynExpectArgSeparator Code = 2003
	SynExpectProtoName    Code = 2004
	SynExpectProtoLParen  Code = 2005
	SynExpectProtoRParen  Code = 2006

	// Конфигурация проекта (kaleido.toml)
	ProjInvalidConfig Code = 5001
	ProjBadOperator   Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	SynExpectExpression:   "unknown token when expecting an expression",
	SynExpectRParen:       "expected ')'",
	SynExpectArgSeparator: "expected ')' or ',' in argument list",
	SynExpectProtoName:    "expected function name in prototype",
	SynExpectProtoLParen:  "expected '(' in prototype",
	SynExpectProtoRParen:  "expected ')' in prototype",
	ProjInvalidConfig:     "Invalid kaleido.toml",
	ProjBadOperator:       "Invalid operator in kaleido.toml",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
