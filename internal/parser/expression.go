package parser

import (
	"github.com/paul-ciorogar/suru-lang/internal/parsetree"
	"github.com/paul-ciorogar/suru-lang/internal/token"
)

// opInfo describes one entry of the precedence table in §4.5.
type opInfo struct {
	precedence int
	rightAssoc bool
	unary      bool
	kind       parsetree.Kind
}

// operatorFor classifies the current token as an operator, if any. The
// keyword `not` has no dedicated lexical Kind in the closed token set
// (spec.md §3 does not list one); it is recognized here, contextually,
// as plain IDENTIFIER text "not" — the parser resolves it to the unary
// NOT_EXPR operator named in the precedence table, rather than treating
// it as a variable reference, whenever it appears in operator position.
func operatorFor(tok token.Token) (opInfo, bool) {
	switch tok.Kind {
	case token.PIPE:
		return opInfo{precedence: 1, kind: parsetree.PIPE_EXPR}, true
	case token.OR:
		return opInfo{precedence: 2, kind: parsetree.OR_EXPR}, true
	case token.AND:
		return opInfo{precedence: 3, kind: parsetree.AND_EXPR}, true
	case token.PLUS:
		return opInfo{precedence: 4, kind: parsetree.PLUS_EXPR}, true
	case token.MINUS:
		return opInfo{precedence: 5, rightAssoc: true, unary: true, kind: parsetree.NEGATE_EXPR}, true
	case token.IDENTIFIER:
		if tok.HasText() && tok.Text.String() == "not" {
			return opInfo{precedence: 5, rightAssoc: true, unary: true, kind: parsetree.NOT_EXPR}, true
		}
	}
	return opInfo{}, false
}

func isOperandToken(tok token.Token) bool {
	switch tok.Kind {
	case token.TRUE, token.FALSE, token.STRING:
		return true
	case token.IDENTIFIER:
		return !(tok.HasText() && tok.Text.String() == "not")
	}
	return false
}

func isTerminator(kind token.Kind) bool {
	switch kind {
	case token.EOF, token.NEWLINE, token.COMMA, token.RPAREN, token.RBRACE:
		return true
	}
	return false
}

type pfItem struct {
	operand bool
	tok     token.Token
	op      opInfo
}

// parseShuntingYardExpression consumes an infix expression up to (but
// excluding) the next terminator token, converts it to postfix per the
// precedence table, and folds the postfix stream into parse-tree nodes.
// Returns parsetree.None if no expression tokens were present.
func (p *Parser) parseShuntingYardExpression() int {
	var output []pfItem
	var opStack []opInfo

	drain := func() {
		for len(opStack) > 0 {
			output = append(output, pfItem{op: opStack[len(opStack)-1]})
			opStack = opStack[:len(opStack)-1]
		}
	}

	for {
		if isTerminator(p.current.Kind) {
			break
		}

		if isOperandToken(p.current) {
			output = append(output, pfItem{operand: true, tok: p.current})
			p.advance()
			continue
		}

		if info, ok := operatorFor(p.current); ok {
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if info.rightAssoc {
					if top.precedence <= info.precedence {
						break
					}
				} else {
					if top.precedence < info.precedence {
						break
					}
				}
				output = append(output, pfItem{op: top})
				opStack = opStack[:len(opStack)-1]
			}
			opStack = append(opStack, info)
			p.advance()
			continue
		}

		// Unknown token: stop.
		break
	}
	drain()

	if len(output) == 0 {
		return parsetree.None
	}

	var nodeStack []int
	for _, item := range output {
		if item.operand {
			nodeStack = append(nodeStack, p.literalNode(item.tok))
			continue
		}
		if item.op.unary {
			if len(nodeStack) < 1 {
				p.addError("Expected operand for unary operator")
				return parsetree.None
			}
			child := nodeStack[len(nodeStack)-1]
			nodeStack = nodeStack[:len(nodeStack)-1]
			n := p.tree.CreateNonterminalNode(item.op.kind)
			p.tree.AddChild(n, child)
			nodeStack = append(nodeStack, n)
			continue
		}
		if len(nodeStack) < 2 {
			p.addError("Expected operand for binary operator")
			return parsetree.None
		}
		right := nodeStack[len(nodeStack)-1]
		left := nodeStack[len(nodeStack)-2]
		nodeStack = nodeStack[:len(nodeStack)-2]
		n := p.tree.CreateNonterminalNode(item.op.kind)
		p.tree.AddChild(n, left)
		p.tree.AddChild(n, right)
		nodeStack = append(nodeStack, n)
	}

	if len(nodeStack) == 0 {
		return parsetree.None
	}
	return nodeStack[len(nodeStack)-1]
}

func (p *Parser) literalNode(tok token.Token) int {
	switch tok.Kind {
	case token.STRING:
		return p.tree.CreateTerminalNode(parsetree.STRING_LITERAL, tok)
	case token.TRUE, token.FALSE:
		return p.tree.CreateTerminalNode(parsetree.BOOLEAN_LITERAL, tok)
	default:
		return p.tree.CreateTerminalNode(parsetree.IDENTIFIER, tok)
	}
}
