package cst

// Kind identifies the grammar production a Node was built from.
type Kind uint8

const (
	Invalid Kind = iota
	// Terminal is a leaf wrapping a single token.
	Terminal
	// Error collects tokens skipped during error recovery.
	Error

	ZoiaFile
	Header
	Line
	LineElements
	RegularLineElements
	MarkedUpLineElements
	BoldItalicLineElements
	BoldLineElements
	ItalicLineElements
	LineElement
	TextFragment
	Alias
	Command
	Arguments
	Argument
	KwdArgument
	StdArgument
)

var kindNames = [...]string{
	Invalid:                "invalid",
	Terminal:               "terminal",
	Error:                  "error",
	ZoiaFile:               "zoiaFile",
	Header:                 "header",
	Line:                   "line",
	LineElements:           "lineElements",
	RegularLineElements:    "regularLineElements",
	MarkedUpLineElements:   "markedUpLineElements",
	BoldItalicLineElements: "boldItalicLineElements",
	BoldLineElements:       "boldLineElements",
	ItalicLineElements:     "italicLineElements",
	LineElement:            "lineElement",
	TextFragment:           "textFragment",
	Alias:                  "alias",
	Command:                "command",
	Arguments:              "arguments",
	Argument:               "argument",
	KwdArgument:            "kwdArgument",
	StdArgument:            "stdArgument",
}

// String returns the grammar name of the production.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
