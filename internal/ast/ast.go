// Package ast defines the semantic abstract syntax tree and the lowering
// pass that builds one from a parsetree.Tree, dropping trivia.
package ast

import (
	"github.com/paul-ciorogar/suru-lang/internal/container"
	"github.com/paul-ciorogar/suru-lang/internal/parsetree"
	"github.com/paul-ciorogar/suru-lang/internal/token"
)

// Kind is the closed set of AST node kinds: semantic nodes only, no
// formatting trivia.
type Kind int

const (
	PROGRAM Kind = iota
	FUNCTION_DECL
	PARAM_LIST
	PARAM
	BLOCK
	VAR_DECL
	MATCH_STMT
	CALL_EXPR
	ARG_LIST
	MATCH_EXPR
	MATCH_ARM
	AND_EXPR
	OR_EXPR
	PLUS_EXPR
	PIPE_EXPR
	NOT_EXPR
	NEGATE_EXPR
	IDENTIFIER
	STRING_LITERAL
	BOOLEAN_LITERAL
	MATCH_WILDCARD
)

var kindNames = [...]string{
	PROGRAM:         "PROGRAM",
	FUNCTION_DECL:   "FUNCTION_DECL",
	PARAM_LIST:      "PARAM_LIST",
	PARAM:           "PARAM",
	BLOCK:           "BLOCK",
	VAR_DECL:        "VAR_DECL",
	MATCH_STMT:      "MATCH_STMT",
	CALL_EXPR:       "CALL_EXPR",
	ARG_LIST:        "ARG_LIST",
	MATCH_EXPR:      "MATCH_EXPR",
	MATCH_ARM:       "MATCH_ARM",
	AND_EXPR:        "AND_EXPR",
	OR_EXPR:         "OR_EXPR",
	PLUS_EXPR:       "PLUS_EXPR",
	PIPE_EXPR:       "PIPE_EXPR",
	NOT_EXPR:        "NOT_EXPR",
	NEGATE_EXPR:     "NEGATE_EXPR",
	IDENTIFIER:      "IDENTIFIER",
	STRING_LITERAL:  "STRING_LITERAL",
	BOOLEAN_LITERAL: "BOOLEAN_LITERAL",
	MATCH_WILDCARD:  "MATCH_WILDCARD",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// None is the sentinel index denoting "no node".
const None = -1

// Node is one AST entry, first-child/next-sibling like parsetree.Node but
// with no trivia fields: formatting information does not survive lowering.
type Node struct {
	Kind  Kind
	Token token.Token

	FirstChild  int
	NextSibling int
	Parent      int
}

// Tree is the semantic tree produced by Build.
type Tree struct {
	nodes *container.ChunkedArray[Node]
	Root  int
}

func newTree() *Tree {
	return &Tree{nodes: container.New[Node](), Root: None}
}

func (t *Tree) Get(idx int) *Node {
	if idx == None {
		return nil
	}
	return t.nodes.Get(idx)
}

func (t *Tree) addNode(n Node) int {
	n.FirstChild = None
	n.NextSibling = None
	return t.nodes.Append(n)
}

func (t *Tree) addChild(parentIdx, childIdx int) {
	parent := t.Get(parentIdx)
	child := t.Get(childIdx)
	child.Parent = parentIdx
	if parent.FirstChild == None {
		parent.FirstChild = childIdx
		return
	}
	last := t.Get(parent.FirstChild)
	for last.NextSibling != None {
		last = t.Get(last.NextSibling)
	}
	last.NextSibling = childIdx
}

// Children returns the indices of nodeIdx's direct children, in order.
func (t *Tree) Children(nodeIdx int) []int {
	node := t.Get(nodeIdx)
	if node == nil {
		return nil
	}
	var out []int
	for c := node.FirstChild; c != None; {
		out = append(out, c)
		child := t.Get(c)
		if child == nil {
			break
		}
		c = child.NextSibling
	}
	return out
}

// isTerminalKind reports whether a parse kind carries a token that must be
// preserved verbatim on the corresponding AST node.
func isTerminalKind(k parsetree.Kind) bool {
	switch k {
	case parsetree.IDENTIFIER, parsetree.STRING_LITERAL, parsetree.BOOLEAN_LITERAL:
		return true
	}
	return false
}

// mapKind maps a parsetree.Kind to its ast.Kind. ok is false for COMMENT
// and NEWLINE, the only two partial cases (spec.md §4.6): every other
// parsetree.Kind maps to exactly one ast.Kind.
func mapKind(k parsetree.Kind) (Kind, bool) {
	switch k {
	case parsetree.PROGRAM:
		return PROGRAM, true
	case parsetree.FUNCTION_DECL:
		return FUNCTION_DECL, true
	case parsetree.PARAM_LIST:
		return PARAM_LIST, true
	case parsetree.PARAM:
		return PARAM, true
	case parsetree.BLOCK:
		return BLOCK, true
	case parsetree.VAR_DECL:
		return VAR_DECL, true
	case parsetree.MATCH_STMT:
		return MATCH_STMT, true
	case parsetree.CALL_EXPR:
		return CALL_EXPR, true
	case parsetree.ARG_LIST:
		return ARG_LIST, true
	case parsetree.MATCH_EXPR:
		return MATCH_EXPR, true
	case parsetree.MATCH_ARM:
		return MATCH_ARM, true
	case parsetree.AND_EXPR:
		return AND_EXPR, true
	case parsetree.OR_EXPR:
		return OR_EXPR, true
	case parsetree.PLUS_EXPR:
		return PLUS_EXPR, true
	case parsetree.PIPE_EXPR:
		return PIPE_EXPR, true
	case parsetree.NOT_EXPR:
		return NOT_EXPR, true
	case parsetree.NEGATE_EXPR:
		return NEGATE_EXPR, true
	case parsetree.IDENTIFIER:
		return IDENTIFIER, true
	case parsetree.STRING_LITERAL:
		return STRING_LITERAL, true
	case parsetree.BOOLEAN_LITERAL:
		return BOOLEAN_LITERAL, true
	case parsetree.MATCH_WILDCARD:
		return MATCH_WILDCARD, true
	default: // COMMENT, NEWLINE
		return 0, false
	}
}

// Build walks pt in pre-order, lowering it to a Tree. Trivia (COMMENT,
// NEWLINE) is dropped; every other node is converted, terminals keeping
// their token, and child order is preserved.
func Build(pt *parsetree.Tree) *Tree {
	t := newTree()
	t.Root = convertNode(pt, t, pt.Root)
	return t
}

func convertNode(pt *parsetree.Tree, t *Tree, parseIdx int) int {
	if parseIdx == parsetree.None {
		return None
	}
	pn := pt.Get(parseIdx)
	if pn == nil {
		return None
	}
	kind, ok := mapKind(pn.Kind)
	if !ok {
		return None
	}

	var node Node
	if isTerminalKind(pn.Kind) {
		node = Node{Kind: kind, Token: pn.Token, Parent: None}
	} else {
		node = Node{Kind: kind, Token: token.Token{Kind: token.UNKNOWN}, Parent: None}
	}
	idx := t.addNode(node)

	for _, childIdx := range pt.Children(parseIdx) {
		astChild := convertNode(pt, t, childIdx)
		if astChild != None {
			t.addChild(idx, astChild)
		}
	}

	return idx
}
