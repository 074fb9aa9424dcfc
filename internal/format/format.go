// Package format implements the explicit-stack formatter (spec.md §4.8):
// it walks a parsetree.Tree and writes a deterministic, idempotent textual
// rendering, never recursing on the Go call stack.
package format

import (
	"bufio"
	"io"
	"strconv"

	"github.com/paul-ciorogar/suru-lang/internal/parsetree"
	"github.com/paul-ciorogar/suru-lang/internal/token"
)

type state int

const (
	fNode state = iota
	fChildren
	fTerminal
	fComment
	fLiteralText
	fIndentInc
	fIndentDec
)

type frame struct {
	state state
	node  int
	text  string
}

// writer tracks the bufio-backed output plus the column-start bookkeeping
// needed by the spacing rules, mirroring the reference Formatter struct.
type writer struct {
	w           *bufio.Writer
	atLineStart bool
	wroteAny    bool
	lastByte    byte
	indent      int
}

func newWriter(w io.Writer) *writer {
	return &writer{w: bufio.NewWriterSize(w, 4096), atLineStart: true}
}

func (wr *writer) putByte(c byte) {
	wr.w.WriteByte(c)
	wr.lastByte = c
	wr.wroteAny = true
	if c == '\n' {
		wr.atLineStart = true
	} else {
		wr.atLineStart = false
	}
}

func (wr *writer) putString(s string) {
	for i := 0; i < len(s); i++ {
		wr.putByte(s[i])
	}
}

func (wr *writer) lastIs(c byte) bool {
	return wr.wroteAny && wr.lastByte == c
}

func (wr *writer) writeIndentation() {
	if !wr.atLineStart {
		return
	}
	for i := 0; i < wr.indent; i++ {
		wr.putByte('\t')
	}
}

// Formatter drives a parsetree.Tree through the explicit frame stack.
type Formatter struct {
	tree  *parsetree.Tree
	out   *writer
	stack []frame
}

// ToWriter formats tree's entire program to w.
func ToWriter(tree *parsetree.Tree, w io.Writer) error {
	f := &Formatter{tree: tree, out: newWriter(w)}
	if tree.Root != parsetree.None {
		f.push(frame{state: fNode, node: tree.Root})
		for len(f.stack) > 0 {
			fr := f.pop()
			f.dispatch(fr)
		}
	}
	return f.out.w.Flush()
}

func (f *Formatter) push(fr frame) { f.stack = append(f.stack, fr) }

func (f *Formatter) pop() frame {
	fr := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return fr
}

// pushInOrder pushes frames so that frames[0] is the next one popped,
// i.e. they execute in the order written, not stack order.
func (f *Formatter) pushInOrder(frames ...frame) {
	for i := len(frames) - 1; i >= 0; i-- {
		f.push(frames[i])
	}
}

func (f *Formatter) dispatch(fr frame) {
	switch fr.state {
	case fNode:
		f.formatNode(fr.node)
	case fChildren:
		f.formatChildren(fr.node)
	case fTerminal, fComment:
		f.formatTerminal(fr.node)
	case fLiteralText:
		f.out.putString(fr.text)
	case fIndentInc:
		f.out.indent++
	case fIndentDec:
		f.out.indent--
	}
}

func childOfKind(tree *parsetree.Tree, parent int, kind parsetree.Kind) int {
	for _, c := range tree.Children(parent) {
		if tree.Get(c).Kind == kind {
			return c
		}
	}
	return parsetree.None
}

func (f *Formatter) formatNode(idx int) {
	node := f.tree.Get(idx)
	if node == nil {
		return
	}

	switch node.Kind {
	case parsetree.IDENTIFIER, parsetree.STRING_LITERAL, parsetree.BOOLEAN_LITERAL, parsetree.MATCH_WILDCARD:
		f.formatTerminal(idx)

	case parsetree.COMMENT:
		f.formatTerminal(idx)

	case parsetree.NEWLINE:
		f.out.putByte('\n')

	case parsetree.FUNCTION_DECL:
		children := f.tree.Children(idx)
		ident := parsetree.None
		if len(children) > 0 {
			ident = children[0]
		}
		paramList := childOfKind(f.tree, idx, parsetree.PARAM_LIST)
		block := childOfKind(f.tree, idx, parsetree.BLOCK)
		frames := []frame{
			{state: fTerminal, node: ident},
			{state: fLiteralText, text: ": "},
			{state: fNode, node: paramList},
			{state: fNode, node: block},
		}
		// A preserved NEWLINE sibling already ends the line.
		if next := f.tree.Get(node.NextSibling); next == nil || next.Kind != parsetree.NEWLINE {
			frames = append(frames, frame{state: fLiteralText, text: "\n"})
		}
		f.pushInOrder(frames...)

	case parsetree.BLOCK:
		f.pushInOrder(
			frame{state: fLiteralText, text: " {"},
			frame{state: fIndentInc},
			frame{state: fChildren, node: idx},
			frame{state: fIndentDec},
			frame{state: fLiteralText, text: "}"},
		)

	case parsetree.PARAM_LIST:
		f.pushInOrder(
			frame{state: fLiteralText, text: "("},
			frame{state: fChildren, node: idx},
			frame{state: fLiteralText, text: ")"},
		)

	case parsetree.CALL_EXPR:
		children := f.tree.Children(idx)
		callee := parsetree.None
		argList := parsetree.None
		if len(children) > 0 {
			callee = children[0]
		}
		if len(children) > 1 {
			argList = children[1]
		}
		f.pushInOrder(
			frame{state: fTerminal, node: callee},
			frame{state: fLiteralText, text: "("},
			frame{state: fNode, node: argList},
			frame{state: fLiteralText, text: ")"},
		)

	case parsetree.PROGRAM, parsetree.ARG_LIST, parsetree.PARAM:
		f.formatChildren(idx)

	// VAR_DECL and the MATCH_* constructs store no node for the ':'/'match'/
	// '{'/'}' punctuation consumed by the parser (spec.md's closed parse-node
	// set has no kind for them), so - like FUNCTION_DECL/BLOCK/PARAM_LIST
	// above - the formatter must synthesize that punctuation as literals
	// rather than delegate to the generic children-inline case; the latter
	// would silently drop it and break parse(format(x)) == x (scenario S6).
	case parsetree.VAR_DECL:
		children := f.tree.Children(idx)
		if len(children) == 0 {
			return
		}
		frames := []frame{{state: fTerminal, node: children[0]}, {state: fLiteralText, text: ": "}}
		for _, c := range children[1:] {
			frames = append(frames, frame{state: fNode, node: c})
		}
		f.pushInOrder(frames...)

	case parsetree.MATCH_STMT, parsetree.MATCH_EXPR:
		children := f.tree.Children(idx)
		if len(children) == 0 {
			return
		}
		frames := []frame{
			{state: fLiteralText, text: "match "},
			{state: fNode, node: children[0]},
			{state: fLiteralText, text: " {"},
			{state: fIndentInc},
		}
		for _, c := range children[1:] {
			frames = append(frames, frame{state: fNode, node: c})
		}
		frames = append(frames, frame{state: fIndentDec}, frame{state: fLiteralText, text: "}"})
		f.pushInOrder(frames...)

	case parsetree.MATCH_ARM:
		children := f.tree.Children(idx)
		if len(children) == 0 {
			return
		}
		frames := []frame{{state: fNode, node: children[0]}, {state: fLiteralText, text: ": "}}
		for _, c := range children[1:] {
			frames = append(frames, frame{state: fNode, node: c})
		}
		f.pushInOrder(frames...)

	// Binary/unary expression nodes carry no node of their own for the
	// operator keyword either - the shunting-yard parser folds the
	// operator token straight into the node's Kind and discards it, so
	// the operator must be synthesized here the same way.
	case parsetree.AND_EXPR:
		f.formatBinary(idx, " and ")
	case parsetree.OR_EXPR:
		f.formatBinary(idx, " or ")
	case parsetree.PLUS_EXPR:
		f.formatBinary(idx, " + ")
	case parsetree.PIPE_EXPR:
		f.formatBinary(idx, " | ")
	case parsetree.NOT_EXPR:
		f.formatUnary(idx, "not ")
	case parsetree.NEGATE_EXPR:
		f.formatUnary(idx, "-")

	default:
		f.formatChildren(idx)
	}
}

func (f *Formatter) formatBinary(idx int, opText string) {
	children := f.tree.Children(idx)
	if len(children) < 2 {
		return
	}
	f.pushInOrder(
		frame{state: fNode, node: children[0]},
		frame{state: fLiteralText, text: opText},
		frame{state: fNode, node: children[1]},
	)
}

func (f *Formatter) formatUnary(idx int, opText string) {
	children := f.tree.Children(idx)
	if len(children) == 0 {
		return
	}
	f.pushInOrder(
		frame{state: fLiteralText, text: opText},
		frame{state: fNode, node: children[0]},
	)
}

func (f *Formatter) formatChildren(idx int) {
	var frames []frame
	for _, c := range f.tree.Children(idx) {
		frames = append(frames, frame{state: fNode, node: c})
	}
	f.pushInOrder(frames...)
}

// tokenText returns the canonical lexeme for a keyword/punctuation token
// kind that carries no interned text, mirroring token_type_to_string.
func tokenText(k token.Kind) string {
	switch k {
	case token.MODULE:
		return "module"
	case token.IMPORT:
		return "import"
	case token.EXPORT:
		return "export"
	case token.RETURN:
		return "return"
	case token.MATCH:
		return "match"
	case token.TYPE:
		return "type"
	case token.TRY:
		return "try"
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.TRUE:
		return "true"
	case token.FALSE:
		return "false"
	case token.THIS:
		return "this"
	case token.PARTIAL:
		return "partial"
	case token.COLON:
		return ":"
	case token.SEMICOLON:
		return ";"
	case token.COMMA:
		return ","
	case token.DOT:
		return "."
	case token.PIPE:
		return "|"
	case token.UNDERSCORE:
		return "_"
	case token.STAR:
		return "*"
	case token.LPAREN:
		return "("
	case token.RPAREN:
		return ")"
	case token.LBRACE:
		return "{"
	case token.RBRACE:
		return "}"
	case token.LBRACKET:
		return "["
	case token.RBRACKET:
		return "]"
	case token.LANGLE:
		return "<"
	case token.RANGLE:
		return ">"
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	default:
		return ""
	}
}

func (f *Formatter) formatTerminal(idx int) {
	node := f.tree.Get(idx)
	if node == nil {
		return
	}

	for i := 0; i < node.LeadingNewlines; i++ {
		f.out.putByte('\n')
	}

	if f.out.atLineStart && f.out.wroteAny && f.out.indent > 0 {
		f.out.writeIndentation()
	}

	tt := node.Token.Kind
	text := tokenText(tt)
	if node.Token.HasText() {
		text = node.Token.Text.String()
	}

	if tt == token.STRING_I_START || tt == token.STRING_I_END {
		f.formatInterpDelimiter(node, text)
		return
	}
	if tt == token.STRING_I_EXPR_START {
		f.out.putByte('{')
		return
	}
	if tt == token.STRING_I_EXPR_END {
		f.out.putByte('}')
		return
	}

	if text == "" {
		return
	}

	if node.LeadingSpaces > 0 {
		for i := 0; i < node.LeadingSpaces; i++ {
			f.out.putByte(' ')
		}
	} else if !f.out.atLineStart {
		if f.needsSpace(tt) {
			f.out.putByte(' ')
		}
	}

	f.out.putString(text)

	for i := 0; i < node.TrailingSpaces; i++ {
		f.out.putByte(' ')
	}
}

// needsSpace mirrors formatter.c's needs_space cascade exactly.
func (f *Formatter) needsSpace(tt token.Kind) bool {
	switch {
	// A literal separator ("match ", ": ") already supplied its own space;
	// without this the default-true fallthrough would double it.
	case f.out.lastIs(' '):
		return false
	case f.out.lastIs('.'):
		return false
	case f.out.lastIs('(') || f.out.lastIs('['):
		return false
	case tt == token.RPAREN || tt == token.RBRACKET:
		return false
	case f.out.lastIs(':') || f.out.lastIs(','):
		return true
	case tt == token.DOT:
		return false
	case tt == token.COMMA:
		return false
	case tt == token.COLON:
		return false
	case f.out.lastIs('\t'):
		return false
	case f.out.lastIs('{'):
		return true
	case tt == token.LBRACE:
		return true
	case tt == token.RBRACE && !f.out.atLineStart:
		return true
	default:
		return true
	}
}

// formatInterpDelimiter renders a STRING_I_START/END token: its stored
// text is the decimal backtick count, not a lexeme.
func (f *Formatter) formatInterpDelimiter(node *parsetree.Node, text string) {
	count, err := strconv.Atoi(text)
	if err != nil {
		count = 0
	}

	if node.LeadingSpaces > 0 {
		for i := 0; i < node.LeadingSpaces; i++ {
			f.out.putByte(' ')
		}
	} else if !f.out.atLineStart && node.Token.Kind == token.STRING_I_START {
		f.out.putByte(' ')
	}

	for i := 0; i < count; i++ {
		f.out.putByte('`')
	}

	for i := 0; i < node.TrailingSpaces; i++ {
		f.out.putByte(' ')
	}
}
