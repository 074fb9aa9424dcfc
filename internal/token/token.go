// Package token defines the closed set of lexical token kinds for Suru
// and the Token value itself.
package token

import "github.com/paul-ciorogar/suru-lang/internal/strstore"

// Kind selects a token's lexical category from the closed set named in
// the language's data model.
type Kind int

const (
	EOF Kind = iota
	NEWLINE

	// Keywords
	MODULE
	IMPORT
	EXPORT
	RETURN
	MATCH
	TYPE
	TRY
	AND
	OR
	TRUE
	FALSE
	THIS
	PARTIAL

	IDENTIFIER

	// Number kinds
	NUMBER
	NUMBER_BINARY
	NUMBER_OCTAL
	NUMBER_HEX
	NUMBER_FLOAT

	// Punctuation
	COLON
	SEMICOLON
	COMMA
	DOT
	PIPE
	UNDERSCORE
	STAR
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	LANGLE
	RANGLE
	PLUS
	MINUS

	// Strings
	STRING
	STRING_I_START
	STRING_I
	STRING_I_END
	STRING_I_INDENT
	STRING_I_EXPR_START
	STRING_I_EXPR_END

	COMMENT
	DOCUMENTATION
	UNKNOWN
)

var kindNames = [...]string{
	EOF:                 "EOF",
	NEWLINE:              "NEWLINE",
	MODULE:               "MODULE",
	IMPORT:               "IMPORT",
	EXPORT:               "EXPORT",
	RETURN:               "RETURN",
	MATCH:                "MATCH",
	TYPE:                 "TYPE",
	TRY:                  "TRY",
	AND:                  "AND",
	OR:                   "OR",
	TRUE:                 "TRUE",
	FALSE:                "FALSE",
	THIS:                 "THIS",
	PARTIAL:              "PARTIAL",
	IDENTIFIER:           "IDENTIFIER",
	NUMBER:               "NUMBER",
	NUMBER_BINARY:        "NUMBER_BINARY",
	NUMBER_OCTAL:         "NUMBER_OCTAL",
	NUMBER_HEX:           "NUMBER_HEX",
	NUMBER_FLOAT:         "NUMBER_FLOAT",
	COLON:                "COLON",
	SEMICOLON:            "SEMICOLON",
	COMMA:                "COMMA",
	DOT:                  "DOT",
	PIPE:                 "PIPE",
	UNDERSCORE:           "UNDERSCORE",
	STAR:                 "STAR",
	LPAREN:               "LPAREN",
	RPAREN:               "RPAREN",
	LBRACE:               "LBRACE",
	RBRACE:               "RBRACE",
	LBRACKET:             "LBRACKET",
	RBRACKET:             "RBRACKET",
	LANGLE:               "LANGLE",
	RANGLE:               "RANGLE",
	PLUS:                 "PLUS",
	MINUS:                "MINUS",
	STRING:               "STRING",
	STRING_I_START:       "STRING_I_START",
	STRING_I:             "STRING_I",
	STRING_I_END:         "STRING_I_END",
	STRING_I_INDENT:      "STRING_I_INDENT",
	STRING_I_EXPR_START:  "STRING_I_EXPR_START",
	STRING_I_EXPR_END:    "STRING_I_EXPR_END",
	COMMENT:              "COMMENT",
	DOCUMENTATION:        "DOCUMENTATION",
	UNKNOWN:              "UNKNOWN",
}

// String returns the kind's canonical spelling, e.g. "IDENTIFIER".
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// keywords lists the fixed keyword set. LookupKeyword does not consult
// it; it switches on length instead (an identifier longer than 7 bytes or
// starting with an uppercase letter is never a keyword).
var keywords = map[string]Kind{
	"module":  MODULE,
	"import":  IMPORT,
	"export":  EXPORT,
	"return":  RETURN,
	"match":   MATCH,
	"type":    TYPE,
	"try":     TRY,
	"and":     AND,
	"or":      OR,
	"true":    TRUE,
	"false":   FALSE,
	"this":    THIS,
	"partial": PARTIAL,
}

// LookupKeyword returns the keyword kind for ident and true, or (0, false)
// if ident is not a keyword. Grouping by length mirrors the reference
// lexer's read_identifier_or_keyword optimization.
func LookupKeyword(ident string) (Kind, bool) {
	if len(ident) == 0 || len(ident) > 7 {
		return 0, false
	}
	if ident[0] >= 'A' && ident[0] <= 'Z' {
		return 0, false
	}
	switch len(ident) {
	case 2:
		if ident == "or" {
			return OR, true
		}
	case 3:
		switch ident {
		case "and":
			return AND, true
		case "try":
			return TRY, true
		}
	case 4:
		switch ident {
		case "type":
			return TYPE, true
		case "true":
			return TRUE, true
		case "this":
			return THIS, true
		}
	case 5:
		switch ident {
		case "match":
			return MATCH, true
		case "false":
			return FALSE, true
		}
	case 6:
		switch ident {
		case "module":
			return MODULE, true
		case "import":
			return IMPORT, true
		case "export":
			return EXPORT, true
		case "return":
			return RETURN, true
		}
	case 7:
		if ident == "partial" {
			return PARTIAL, true
		}
	}
	return 0, false
}

// Token is a tagged lexical value: its Kind, an optional interned text
// handle, and its source position. Text is nil for keywords and
// punctuation whose lexeme is fully determined by Kind.
type Token struct {
	Kind   Kind
	Text   *strstore.Handle
	Line   int
	Column int
}

// HasText reports whether the token carries interned text.
func (t Token) HasText() bool {
	return t.Text != nil
}
