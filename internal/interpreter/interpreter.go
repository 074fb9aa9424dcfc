// Package interpreter tree-walks an ast.Tree and executes it: a single
// top-level "main" function, a flat variable store, and the built-in
// print. Semantics and error text are grounded directly on
// original_source/src/interpreter.c.
package interpreter

import (
	"fmt"
	"io"

	"github.com/paul-ciorogar/suru-lang/internal/ast"
	"github.com/paul-ciorogar/suru-lang/internal/strstore"
	"github.com/paul-ciorogar/suru-lang/internal/token"
)

// valueKind tags an evaluated Value.
type valueKind int

const (
	valueString valueKind = iota
	valueBoolean
)

// Value is a tagged interpreter value: either an interned string handle
// (quotes included) or a boolean.
type Value struct {
	kind valueKind
	str  *strstore.Handle
	b    bool
}

// variable is one entry of the flat, linearly-scanned variable store.
// Names are *strstore.Handle, so comparing by pointer identity is
// sufficient: the lexer interns all identifier text through one Store.
type variable struct {
	name  *strstore.Handle
	value Value
}

// RuntimeError is a single interpreter diagnostic, written to the error
// stream exactly once and terminating the run.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// Interpreter holds the mutable state threaded through one run: the
// variable store, and the output/error streams.
type Interpreter struct {
	tree   *ast.Tree
	vars   []variable
	out    io.Writer
	errOut io.Writer
}

// New creates an Interpreter over tree, writing print() output to out and
// diagnostics to errOut.
func New(tree *ast.Tree, out, errOut io.Writer) *Interpreter {
	return &Interpreter{tree: tree, out: out, errOut: errOut}
}

// Run locates and executes "main", returning a process exit code: 0 on
// success, 1 on any runtime error.
func (in *Interpreter) Run() int {
	if in.tree == nil || in.tree.Root == ast.None {
		fmt.Fprintln(in.errOut, "Error: Invalid interpreter state")
		return 1
	}

	mainDecl := in.findMain()
	if mainDecl == ast.None {
		fmt.Fprintln(in.errOut, "Error: No main function found")
		return 1
	}

	if err := in.executeFunctionDecl(mainDecl); err != nil {
		fmt.Fprintln(in.errOut, err.Error())
		return 1
	}
	return 0
}

// findMain scans the program's top-level children for a FUNCTION_DECL
// whose first child is an IDENTIFIER with text "main".
func (in *Interpreter) findMain() int {
	for _, child := range in.tree.Children(in.tree.Root) {
		node := in.tree.Get(child)
		if node.Kind != ast.FUNCTION_DECL {
			continue
		}
		children := in.tree.Children(child)
		if len(children) == 0 {
			continue
		}
		nameNode := in.tree.Get(children[0])
		if nameNode.Kind != ast.IDENTIFIER || !nameNode.Token.HasText() {
			continue
		}
		if nameNode.Token.Text.String() == "main" {
			return child
		}
	}
	return ast.None
}

// executeFunctionDecl finds the function's BLOCK (the last BLOCK child,
// mirroring the reference scan which never stops early) and executes it.
func (in *Interpreter) executeFunctionDecl(declIdx int) error {
	block := ast.None
	for _, child := range in.tree.Children(declIdx) {
		if in.tree.Get(child).Kind == ast.BLOCK {
			block = child
		}
	}
	if block == ast.None {
		return &RuntimeError{Message: "Error: Function has no body"}
	}
	return in.executeBlock(block)
}

// executeBlock executes each child statement in order. Only VAR_DECL and
// CALL_EXPR are recognized; everything else is silently ignored (spec.md
// §4.7: "a future extension point").
func (in *Interpreter) executeBlock(blockIdx int) error {
	for _, child := range in.tree.Children(blockIdx) {
		node := in.tree.Get(child)
		var err error
		switch node.Kind {
		case ast.VAR_DECL:
			err = in.executeVarDecl(child)
		case ast.CALL_EXPR:
			_, err = in.executeCallExpr(child)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// executeVarDecl evaluates the declaration's right-hand side and binds or
// updates a variable of the declared name.
func (in *Interpreter) executeVarDecl(nodeIdx int) error {
	children := in.tree.Children(nodeIdx)
	if len(children) == 0 {
		return &RuntimeError{Message: "Error: Invalid variable name"}
	}
	nameNode := in.tree.Get(children[0])
	if nameNode.Kind != ast.IDENTIFIER {
		return &RuntimeError{Message: "Error: Invalid variable name"}
	}
	if len(children) < 2 {
		return &RuntimeError{Message: "Error: Missing variable value"}
	}
	value, err := in.evaluateExpression(children[1])
	if err != nil {
		return err
	}
	in.storeVariable(nameNode.Token.Text, value)
	return nil
}

// storeVariable updates the existing binding for name, or appends a new
// one: a linear scan in both cases, matching the reference store.
func (in *Interpreter) storeVariable(name *strstore.Handle, value Value) {
	for i := range in.vars {
		if in.vars[i].name == name {
			in.vars[i].value = value
			return
		}
	}
	in.vars = append(in.vars, variable{name: name, value: value})
}

func (in *Interpreter) lookupVariable(name *strstore.Handle) (Value, bool) {
	for _, v := range in.vars {
		if v.name == name {
			return v.value, true
		}
	}
	return Value{}, false
}

// executeCallExpr evaluates a CALL_EXPR statement. Only "print" is a
// recognized built-in; anything else is an unknown-function error.
func (in *Interpreter) executeCallExpr(nodeIdx int) (Value, error) {
	children := in.tree.Children(nodeIdx)
	if len(children) < 2 {
		return Value{}, &RuntimeError{Message: "Error: Invalid call expression"}
	}
	identNode := in.tree.Get(children[0])
	argList := children[1]

	name := ""
	if identNode.Token.HasText() {
		name = identNode.Token.Text.String()
	}

	if name != "print" {
		return Value{}, &RuntimeError{Message: fmt.Sprintf("Error: Unknown function '%s'", name)}
	}
	return Value{}, in.executePrint(argList)
}

func (in *Interpreter) executePrint(argListIdx int) error {
	args := in.tree.Children(argListIdx)
	if len(args) == 0 {
		return &RuntimeError{Message: "Error: print() requires an argument"}
	}
	arg := in.tree.Get(args[0])

	switch arg.Kind {
	case ast.STRING_LITERAL:
		in.printString(arg.Token)
		return nil
	case ast.BOOLEAN_LITERAL:
		in.printBoolean(arg.Token.Kind == token.TRUE)
		return nil
	case ast.IDENTIFIER:
		if !arg.Token.HasText() {
			return &RuntimeError{Message: "Error: print() requires a string or boolean argument"}
		}
		value, ok := in.lookupVariable(arg.Token.Text)
		if !ok {
			return &RuntimeError{Message: fmt.Sprintf("Error: Undefined variable '%s'", arg.Token.Text.String())}
		}
		switch value.kind {
		case valueString:
			in.printStringValue(value.str)
		case valueBoolean:
			in.printBoolean(value.b)
		}
		return nil
	default:
		return &RuntimeError{Message: "Error: print() requires a string or boolean argument"}
	}
}

// printString writes a STRING_LITERAL token's text with surrounding
// quotes stripped and escapes expanded.
func (in *Interpreter) printString(tok token.Token) {
	if !tok.HasText() {
		return
	}
	in.printStringValue(tok.Text)
}

func (in *Interpreter) printStringValue(h *strstore.Handle) {
	io.WriteString(in.out, expandEscapes(h.String()))
}

func (in *Interpreter) printBoolean(b bool) {
	if b {
		io.WriteString(in.out, "true")
	} else {
		io.WriteString(in.out, "false")
	}
}

// expandEscapes strips the surrounding quote characters and resolves
// backslash escapes, matching print_string byte for byte: on an unknown
// escape the backslash is emitted literally and the following byte is
// NOT consumed as part of it, so both appear unchanged in the output
// (see DESIGN.md, Open Question 2).
func expandEscapes(quoted string) string {
	if len(quoted) < 2 {
		return quoted
	}
	s := quoted[1 : len(quoted)-1]
	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			out = append(out, s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			out = append(out, '\n')
			i++
		case 't':
			out = append(out, '\t')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case '\\':
			out = append(out, '\\')
			i++
		case '"':
			out = append(out, '"')
			i++
		default:
			out = append(out, '\\')
		}
	}
	return string(out)
}

// evaluateExpression returns the value of nodeIdx, or an error naming the
// exact failure per original_source/src/interpreter.c's evaluate_expression.
func (in *Interpreter) evaluateExpression(nodeIdx int) (Value, error) {
	if nodeIdx == ast.None {
		return Value{}, &RuntimeError{Message: "Error: Missing expression"}
	}
	node := in.tree.Get(nodeIdx)

	switch node.Kind {
	case ast.BOOLEAN_LITERAL:
		return Value{kind: valueBoolean, b: node.Token.Kind == token.TRUE}, nil

	case ast.STRING_LITERAL:
		return Value{kind: valueString, str: node.Token.Text}, nil

	case ast.IDENTIFIER:
		if !node.Token.HasText() {
			return Value{}, &RuntimeError{Message: "Error: Undefined variable"}
		}
		value, ok := in.lookupVariable(node.Token.Text)
		if !ok {
			return Value{}, &RuntimeError{Message: fmt.Sprintf("Error: Undefined variable '%s'", node.Token.Text.String())}
		}
		return value, nil

	case ast.NOT_EXPR:
		children := in.tree.Children(nodeIdx)
		if len(children) == 0 {
			return Value{}, &RuntimeError{Message: "Error: NOT expression missing operand"}
		}
		operand, err := in.evaluateExpression(children[0])
		if err != nil {
			return Value{}, err
		}
		if operand.kind != valueBoolean {
			return Value{}, &RuntimeError{Message: "Error: NOT operator requires boolean operand"}
		}
		return Value{kind: valueBoolean, b: !operand.b}, nil

	case ast.AND_EXPR, ast.OR_EXPR:
		children := in.tree.Children(nodeIdx)
		if len(children) < 2 {
			return Value{}, &RuntimeError{Message: "Error: AND/OR expression missing operand(s)"}
		}
		left, err := in.evaluateExpression(children[0])
		if err != nil {
			return Value{}, err
		}
		if left.kind != valueBoolean {
			return Value{}, &RuntimeError{Message: "Error: AND/OR operator requires boolean operands"}
		}
		right, err := in.evaluateExpression(children[1])
		if err != nil {
			return Value{}, err
		}
		if right.kind != valueBoolean {
			return Value{}, &RuntimeError{Message: "Error: AND/OR operator requires boolean operands"}
		}
		if node.Kind == ast.AND_EXPR {
			return Value{kind: valueBoolean, b: left.b && right.b}, nil
		}
		return Value{kind: valueBoolean, b: left.b || right.b}, nil

	case ast.MATCH_EXPR:
		return in.evaluateMatchExpr(nodeIdx)

	default:
		return Value{}, &RuntimeError{Message: "Error: Unsupported expression type in evaluation"}
	}
}

// evaluateMatchExpr evaluates the subject, then tests each arm's pattern
// in declaration order; the first match's body is evaluated and returned.
func (in *Interpreter) evaluateMatchExpr(nodeIdx int) (Value, error) {
	children := in.tree.Children(nodeIdx)
	if len(children) == 0 {
		return Value{}, &RuntimeError{Message: "Error: MATCH expression missing subject"}
	}
	subject, err := in.evaluateExpression(children[0])
	if err != nil {
		return Value{}, err
	}

	for _, armIdx := range children[1:] {
		arm := in.tree.Get(armIdx)
		if arm.Kind != ast.MATCH_ARM {
			return Value{}, &RuntimeError{Message: "Error: Invalid MATCH arm"}
		}
		armChildren := in.tree.Children(armIdx)
		if len(armChildren) == 0 {
			return Value{}, &RuntimeError{Message: "Error: MATCH arm missing pattern"}
		}
		pattern := in.tree.Get(armChildren[0])
		matched, err := matchesPattern(pattern, subject)
		if err != nil {
			return Value{}, err
		}
		if !matched {
			continue
		}
		if len(armChildren) < 2 {
			return Value{}, &RuntimeError{Message: "Error: MATCH arm missing expression"}
		}
		return in.evaluateExpression(armChildren[1])
	}
	return Value{}, &RuntimeError{Message: "Error: No matching pattern in match expression"}
}

func matchesPattern(pattern *ast.Node, subject Value) (bool, error) {
	switch pattern.Kind {
	case ast.MATCH_WILDCARD:
		return true, nil
	case ast.BOOLEAN_LITERAL:
		return subject.kind == valueBoolean && (pattern.Token.Kind == token.TRUE) == subject.b, nil
	case ast.STRING_LITERAL:
		if subject.kind != valueString || !pattern.Token.HasText() {
			return false, nil
		}
		return pattern.Token.Text.String() == subject.str.String(), nil
	default:
		return false, nil
	}
}
