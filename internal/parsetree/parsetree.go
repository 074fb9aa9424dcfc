// Package parsetree defines the concrete parse tree: a first-child/
// next-sibling tree of typed nodes stored in a chunked array, produced by
// the parser and consumed by both the AST builder and the formatter.
package parsetree

import (
	"github.com/paul-ciorogar/suru-lang/internal/container"
	"github.com/paul-ciorogar/suru-lang/internal/token"
)

// Kind is the closed set of parse-node kinds, terminal and nonterminal.
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
	AND_EXPR
	OR_EXPR
	PLUS_EXPR
	PIPE_EXPR
	NOT_EXPR
	NEGATE_EXPR
	MATCH_EXPR
	MATCH_ARM
	IDENTIFIER
	STRING_LITERAL
	BOOLEAN_LITERAL
	MATCH_WILDCARD
	COMMENT
	NEWLINE
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
	AND_EXPR:        "AND_EXPR",
	OR_EXPR:         "OR_EXPR",
	PLUS_EXPR:       "PLUS_EXPR",
	PIPE_EXPR:       "PIPE_EXPR",
	NOT_EXPR:        "NOT_EXPR",
	NEGATE_EXPR:     "NEGATE_EXPR",
	MATCH_EXPR:      "MATCH_EXPR",
	MATCH_ARM:       "MATCH_ARM",
	IDENTIFIER:      "IDENTIFIER",
	STRING_LITERAL:  "STRING_LITERAL",
	BOOLEAN_LITERAL: "BOOLEAN_LITERAL",
	MATCH_WILDCARD:  "MATCH_WILDCARD",
	COMMENT:         "COMMENT",
	NEWLINE:         "NEWLINE",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// None is the sentinel index denoting "no node" (root's parent, an empty
// child list, a missing next sibling).
const None = -1

// Node is one entry in the parse tree. Terminal nodes carry a Token;
// nonterminal nodes carry a Token with Kind token.UNKNOWN and no text.
type Node struct {
	Kind Kind
	Token token.Token

	FirstChild int
	NextSibling int
	Parent int

	LeadingSpaces   int
	TrailingSpaces  int
	LeadingNewlines int
}

// Tree is an arena of Nodes kept in a chunked array, addressed by stable
// integer index.
type Tree struct {
	nodes *container.ChunkedArray[Node]
	Root  int
}

// New creates an empty parse tree.
func New() *Tree {
	return &Tree{nodes: container.New[Node](), Root: None}
}

// AddNode appends n and returns its stable index. Callers are expected to
// set n.Parent to None; FirstChild/NextSibling are always reset to None.
func (t *Tree) AddNode(n Node) int {
	n.FirstChild = None
	n.NextSibling = None
	return t.nodes.Append(n)
}

// Get returns the node at idx, or nil if idx is None or out of range.
func (t *Tree) Get(idx int) *Node {
	if idx == None {
		return nil
	}
	return t.nodes.Get(idx)
}

// AddChild appends childIdx to the end of parentIdx's child list and sets
// the child's Parent back-link.
func (t *Tree) AddChild(parentIdx, childIdx int) {
	parent := t.Get(parentIdx)
	child := t.Get(childIdx)
	if parent == nil || child == nil {
		return
	}
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

// CreateTerminalNode creates and returns the index of a leaf node
// carrying tok.
func (t *Tree) CreateTerminalNode(kind Kind, tok token.Token) int {
	return t.AddNode(Node{Kind: kind, Token: tok, Parent: None})
}

// CreateNonterminalNode creates and returns the index of an interior node
// with no token of its own.
func (t *Tree) CreateNonterminalNode(kind Kind) int {
	return t.AddNode(Node{Kind: kind, Token: token.Token{Kind: token.UNKNOWN}, Parent: None})
}

// ChildCount returns the number of direct children of nodeIdx.
func (t *Tree) ChildCount(nodeIdx int) int {
	node := t.Get(nodeIdx)
	if node == nil {
		return 0
	}
	count := 0
	for c := node.FirstChild; c != None; {
		count++
		child := t.Get(c)
		if child == nil {
			break
		}
		c = child.NextSibling
	}
	return count
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
