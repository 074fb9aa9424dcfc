// Package parser implements an iterative, explicitly-stacked
// recursive-descent parser producing a concrete parse tree, plus the
// shunting-yard expression sub-parser.
//
// The parser never recurses on the Go call stack: block/statement/match
// nesting is driven entirely by a stack of frames, each a continuation
// to resume later. The expression sub-parser (§4.5.1) is a separate,
// self-contained loop with no recursion of its own, so it runs
// synchronously rather than through the frame stack.
package parser

import (
	"fmt"

	"github.com/paul-ciorogar/suru-lang/internal/lexer"
	"github.com/paul-ciorogar/suru-lang/internal/parsetree"
	"github.com/paul-ciorogar/suru-lang/internal/token"
)

// SyntaxError is a single parser diagnostic.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

// Error renders the driver's required "Line L:C: MESSAGE" format (§7).
func (e SyntaxError) Error() string {
	return fmt.Sprintf("Line %d:%d: %s", e.Line, e.Column, e.Message)
}

type state int

const (
	stParse state = iota
	stParseStatement
	stParseFunctionDecl
	stParseParamList
	stParseBlock
	stParseVarDecl
	stParseExpression
	stParseCallArgs
	stParseMatchExpr
	stParseMatchStmt
)

// frame is one continuation on the parser's explicit stack.
type frame struct {
	state       state
	parentNode  int
	currentNode int
	precedence  int
	step        int
}

// Parser drives the token stream through the explicit-stack state
// machine, producing a parsetree.Tree plus a list of syntax errors.
type Parser struct {
	lex     *lexer.Lexer
	tree    *parsetree.Tree
	current token.Token
	errors  []SyntaxError
	stack   []frame
}

// Parse tokenizes src via l and builds a complete parse tree, covering
// the entire token stream, plus any diagnostics collected along the way.
func Parse(l *lexer.Lexer) (*parsetree.Tree, []SyntaxError) {
	p := &Parser{lex: l}
	p.advance()

	p.tree = parsetree.New()
	p.tree.Root = p.tree.CreateNonterminalNode(parsetree.PROGRAM)

	p.push(frame{state: stParse, parentNode: p.tree.Root})
	for len(p.stack) > 0 {
		f := p.pop()
		p.dispatch(f)
	}
	return p.tree, p.errors
}

func (p *Parser) push(f frame) { p.stack = append(p.stack, f) }

func (p *Parser) pop() frame {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return f
}

func (p *Parser) advance() {
	p.current = p.lex.NextToken()
}

func (p *Parser) addError(message string) {
	p.errors = append(p.errors, SyntaxError{Line: p.current.Line, Column: p.current.Column, Message: message})
}

// recover implements the error policy of §4.5: record the error (via
// addError, by the caller), then skip tokens to the next NEWLINE.
func (p *Parser) recover() {
	for p.current.Kind != token.NEWLINE && p.current.Kind != token.EOF {
		p.advance()
	}
	if p.current.Kind == token.NEWLINE {
		p.advance()
	}
}

func (p *Parser) expect(kind token.Kind, message string) bool {
	if p.current.Kind == kind {
		p.advance()
		return true
	}
	p.addError(message)
	return false
}

// absorbTrivia consumes every leading COMMENT/NEWLINE token, attaching
// each as a child of parentNode, preserving trivia for round-tripping.
func (p *Parser) absorbTrivia(parentNode int) {
	for {
		switch p.current.Kind {
		case token.COMMENT:
			node := p.tree.CreateTerminalNode(parsetree.COMMENT, p.current)
			p.tree.AddChild(parentNode, node)
			p.advance()
		case token.NEWLINE:
			node := p.tree.CreateTerminalNode(parsetree.NEWLINE, p.current)
			p.tree.AddChild(parentNode, node)
			p.advance()
		default:
			return
		}
	}
}

func (p *Parser) dispatch(f frame) {
	switch f.state {
	case stParse:
		p.stateParse(f)
	case stParseStatement:
		p.stateParseStatement(f)
	case stParseParamList:
		p.stateParseParamList(f)
	case stParseBlock:
		p.stateParseBlock(f)
	case stParseVarDecl:
		p.stateParseVarDecl(f)
	case stParseExpression:
		p.stateParseExpression(f)
	case stParseCallArgs:
		p.stateParseCallArgs(f)
	case stParseMatchExpr:
		p.stateParseMatch(f, true)
	case stParseMatchStmt:
		p.stateParseMatch(f, false)
	}
}

func (p *Parser) stateParse(f frame) {
	p.absorbTrivia(f.parentNode)
	switch p.current.Kind {
	case token.EOF:
		return
	case token.IDENTIFIER:
		p.push(frame{state: stParse, parentNode: f.parentNode})
		p.push(frame{state: stParseStatement, parentNode: f.parentNode})
	default:
		p.addError("Unexpected token")
		p.recover()
		p.push(frame{state: stParse, parentNode: f.parentNode})
	}
}

func (p *Parser) stateParseStatement(f frame) {
	identTok := p.current
	identNode := p.tree.CreateTerminalNode(parsetree.IDENTIFIER, identTok)
	p.advance()

	switch p.current.Kind {
	case token.COLON:
		p.advance()
		if p.current.Kind == token.LPAREN {
			decl := p.tree.CreateNonterminalNode(parsetree.FUNCTION_DECL)
			p.tree.AddChild(f.parentNode, decl)
			p.tree.AddChild(decl, identNode)
			p.push(frame{state: stParseBlock, parentNode: decl, step: 0})
			p.push(frame{state: stParseParamList, parentNode: decl})
		} else {
			decl := p.tree.CreateNonterminalNode(parsetree.VAR_DECL)
			p.tree.AddChild(f.parentNode, decl)
			p.tree.AddChild(decl, identNode)
			p.push(frame{state: stParseVarDecl, parentNode: decl})
		}
	case token.LPAREN:
		call := p.tree.CreateNonterminalNode(parsetree.CALL_EXPR)
		p.tree.AddChild(f.parentNode, call)
		p.tree.AddChild(call, identNode)
		p.push(frame{state: stParseCallArgs, parentNode: call})
	default:
		p.addError("Expected ':' or '(' after identifier")
		p.recover()
	}
}

func (p *Parser) stateParseParamList(f frame) {
	node := p.tree.CreateNonterminalNode(parsetree.PARAM_LIST)
	p.tree.AddChild(f.parentNode, node)
	p.expect(token.LPAREN, "Expected '(' for parameter list")
	p.absorbTrivia(node)
	p.expect(token.RPAREN, "Expected ')' for parameter list")
}

func (p *Parser) stateParseBlock(f frame) {
	if f.step == 0 {
		node := p.tree.CreateNonterminalNode(parsetree.BLOCK)
		p.tree.AddChild(f.parentNode, node)
		p.expect(token.LBRACE, "Expected '{' for block")
		p.push(frame{state: stParseBlock, parentNode: node, step: 1})
		return
	}

	p.absorbTrivia(f.parentNode)
	switch p.current.Kind {
	case token.MATCH:
		p.push(frame{state: stParseBlock, parentNode: f.parentNode, step: 1})
		p.push(frame{state: stParseMatchStmt, parentNode: f.parentNode, step: 0})
	case token.IDENTIFIER:
		p.push(frame{state: stParseBlock, parentNode: f.parentNode, step: 1})
		p.push(frame{state: stParseStatement, parentNode: f.parentNode})
	case token.RBRACE:
		p.advance()
	case token.EOF:
		p.addError("Expected '}' to close block")
	default:
		p.addError("Expected statement or '}' in block")
		p.recover()
		p.push(frame{state: stParseBlock, parentNode: f.parentNode, step: 1})
	}
}

func (p *Parser) stateParseVarDecl(f frame) {
	p.push(frame{state: stParseExpression, parentNode: f.parentNode})
}

func (p *Parser) stateParseExpression(f frame) {
	if p.current.Kind == token.MATCH {
		p.push(frame{state: stParseMatchExpr, parentNode: f.parentNode, step: 0})
		return
	}
	exprNode := p.parseShuntingYardExpression()
	if exprNode != parsetree.None {
		p.tree.AddChild(f.parentNode, exprNode)
	}
}

func (p *Parser) stateParseCallArgs(f frame) {
	argList := p.tree.CreateNonterminalNode(parsetree.ARG_LIST)
	p.tree.AddChild(f.parentNode, argList)
	p.expect(token.LPAREN, "Expected '(' for argument list")

	for {
		switch p.current.Kind {
		case token.COMMENT, token.NEWLINE:
			p.absorbTrivia(argList)
		case token.COMMA:
			p.advance()
		case token.RPAREN:
			p.advance()
			return
		case token.STRING:
			node := p.tree.CreateTerminalNode(parsetree.STRING_LITERAL, p.current)
			p.tree.AddChild(argList, node)
			p.advance()
		case token.TRUE, token.FALSE:
			node := p.tree.CreateTerminalNode(parsetree.BOOLEAN_LITERAL, p.current)
			p.tree.AddChild(argList, node)
			p.advance()
		case token.IDENTIFIER:
			node := p.tree.CreateTerminalNode(parsetree.IDENTIFIER, p.current)
			p.tree.AddChild(argList, node)
			p.advance()
		case token.EOF:
			p.addError("Expected ')' to close argument list")
			return
		default:
			p.addError("Unexpected token in argument list")
			p.recover()
			return
		}
	}
}

// parsePattern reads one match-arm pattern: IDENTIFIER, STRING_LITERAL,
// BOOLEAN_LITERAL, or the wildcard '_'.
func (p *Parser) parsePattern() int {
	switch p.current.Kind {
	case token.IDENTIFIER:
		node := p.tree.CreateTerminalNode(parsetree.IDENTIFIER, p.current)
		p.advance()
		return node
	case token.STRING:
		node := p.tree.CreateTerminalNode(parsetree.STRING_LITERAL, p.current)
		p.advance()
		return node
	case token.TRUE, token.FALSE:
		node := p.tree.CreateTerminalNode(parsetree.BOOLEAN_LITERAL, p.current)
		p.advance()
		return node
	case token.UNDERSCORE:
		node := p.tree.CreateTerminalNode(parsetree.MATCH_WILDCARD, p.current)
		p.advance()
		return node
	default:
		p.addError("Expected a pattern (identifier, literal, or '_')")
		node := p.tree.CreateTerminalNode(parsetree.MATCH_WILDCARD, p.current)
		return node
	}
}

// parseSimpleOperand reads a bare identifier/string/boolean, used for a
// match-expression's inline subject.
func (p *Parser) parseSimpleOperand() int {
	switch p.current.Kind {
	case token.IDENTIFIER:
		node := p.tree.CreateTerminalNode(parsetree.IDENTIFIER, p.current)
		p.advance()
		return node
	case token.STRING:
		node := p.tree.CreateTerminalNode(parsetree.STRING_LITERAL, p.current)
		p.advance()
		return node
	case token.TRUE, token.FALSE:
		node := p.tree.CreateTerminalNode(parsetree.BOOLEAN_LITERAL, p.current)
		p.advance()
		return node
	default:
		p.addError("Expected match subject")
		return p.tree.CreateTerminalNode(parsetree.IDENTIFIER, p.current)
	}
}

func (p *Parser) stateParseMatch(f frame, isExpr bool) {
	if f.step == 0 {
		p.advance() // consume 'match'
		kind := parsetree.MATCH_STMT
		if isExpr {
			kind = parsetree.MATCH_EXPR
		}
		matchNode := p.tree.CreateNonterminalNode(kind)
		p.tree.AddChild(f.parentNode, matchNode)

		if isExpr {
			subject := p.parseSimpleOperand()
			p.tree.AddChild(matchNode, subject)
		} else {
			subject := p.parseShuntingYardExpression()
			if subject != parsetree.None {
				p.tree.AddChild(matchNode, subject)
			}
		}
		p.expect(token.LBRACE, "Expected '{' to open match body")

		next := stParseMatchStmt
		if isExpr {
			next = stParseMatchExpr
		}
		p.push(frame{state: next, parentNode: matchNode, step: 1})
		return
	}

	matchNode := f.parentNode
	p.absorbTrivia(matchNode)
	if p.current.Kind == token.RBRACE {
		p.advance()
		return
	}
	if p.current.Kind == token.EOF {
		p.addError("Expected '}' to close match body")
		return
	}

	armNode := p.tree.CreateNonterminalNode(parsetree.MATCH_ARM)
	p.tree.AddChild(matchNode, armNode)

	pattern := p.parsePattern()
	p.tree.AddChild(armNode, pattern)
	p.expect(token.COLON, "Expected ':' after match pattern")

	next := stParseMatchStmt
	if isExpr {
		next = stParseMatchExpr
	}

	if isExpr {
		body := p.parseShuntingYardExpression()
		if body != parsetree.None {
			p.tree.AddChild(armNode, body)
		}
		p.push(frame{state: next, parentNode: matchNode, step: 1})
		return
	}

	p.push(frame{state: next, parentNode: matchNode, step: 1})
	p.push(frame{state: stParseStatement, parentNode: armNode})
}
