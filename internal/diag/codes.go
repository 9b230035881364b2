package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo              Code = 1000
	LexDanglingBackslash Code = 1001
	LexUnexpectedChar    Code = 1002
	LexTokenTooLong      Code = 1003

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectHeader      Code = 2002
	SynBadHeaderName     Code = 2003
	SynExpectArguments   Code = 2004
	SynUnclosedBracket   Code = 2005
	SynUnclosedMarkup    Code = 2006
	SynExpectWord        Code = 2007
	SynEmptyArgument     Code = 2008
	SynNestedMarkup      Code = 2009
	SynExpectLineElement Code = 2010

	// AST conversion
	CnvInfo  Code = 3000
	CnvError Code = 3001

	// Проверка аргументов
	ValInfo              Code = 4000
	ValTypeViolation     Code = 4001
	ValUnknownParam      Code = 4002
	ValDuplicateKeyword  Code = 4003
	ValTooManyPositional Code = 4004
	ValUnknownCommand    Code = 4005
	ValAbstractType      Code = 4006

	// Ошибки I/O
	IOLoadFileError Code = 5001

	// Ошибки проекта
	ProjInfo            Code = 6000
	ProjInvalidManifest Code = 6001
	ProjUnknownType     Code = 6002

	// Observability
	ObsInfo    Code = 7000
	ObsTimings Code = 7001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexDanglingBackslash: "Backslash not followed by a command name or special character",
	LexUnexpectedChar:    "Unexpected character",
	LexTokenTooLong:      "Token too long",
	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynExpectHeader:      "Expected file header",
	SynBadHeaderName:     "File header must be \\zoia",
	SynExpectArguments:   "Expected '[' or '|' after command name",
	SynUnclosedBracket:   "Unclosed argument list",
	SynUnclosedMarkup:    "Unclosed emphasis",
	SynExpectWord:        "Expected word",
	SynEmptyArgument:     "Empty argument",
	SynNestedMarkup:      "Emphasis cannot be nested",
	SynExpectLineElement: "Expected line element",
	CnvInfo:              "Conversion information",
	CnvError:             "AST conversion error",
	ValInfo:              "Validation information",
	ValTypeViolation:     "Argument violates parameter type",
	ValUnknownParam:      "Unknown parameter",
	ValDuplicateKeyword:  "Duplicate keyword argument",
	ValTooManyPositional: "Too many positional arguments",
	ValUnknownCommand:    "Unknown command",
	ValAbstractType:      "Abstract parameter type",
	IOLoadFileError:      "I/O error",
	ProjInfo:             "Project information",
	ProjInvalidManifest:  "Invalid project manifest",
	ProjUnknownType:      "Unknown parameter type",
	ObsInfo:              "Observability information",
	ObsTimings:           "Timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CNV%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
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
