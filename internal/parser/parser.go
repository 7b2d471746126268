// Package parser turns a token stream into a parse tree via recursive
// descent with backtracking, plus precedence climbing for expressions.
package parser

import (
	"github.com/aardvark-lang/aardvark/internal/ast"
	"github.com/aardvark-lang/aardvark/internal/diag"
	"github.com/aardvark-lang/aardvark/internal/token"
)

// parser walks a token slice with a single cursor. Each production either
// consumes tokens and returns a node, or reports no match and leaves the
// cursor untouched. Callers restore the cursor themselves via savepoint,
// the Go stand-in for the reference's backtracking macros.
type parser struct {
	tokens []token.Token
	pos    int
}

// savepoint remembers a cursor position so a failed production can
// backtrack without special-casing every call site.
type savepoint struct {
	p   *parser
	pos int
}

func (p *parser) save() savepoint { return savepoint{p: p, pos: p.pos} }

// restore rewinds the cursor; call on every parse failure path.
func (s savepoint) restore() { s.p.pos = s.pos }

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() (token.Token, bool) {
	if p.atEnd() {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

// expect consumes a token of the given kind, returning it on success.
func (p *parser) expect(kind token.Kind) (token.Token, bool) {
	t, ok := p.peek()
	if !ok || t.Kind != kind {
		return token.Token{}, false
	}
	p.pos++
	return t, true
}

// ParseProgram parses the entire token stream into a Program node. It
// returns an error (diag.UnparsedTrailingTokens) iff tokens remain once
// no further top-level component matches, mirroring parse_program's nil
// return with a stderr diagnostic.
func ParseProgram(tokens []token.Token) (*ast.Node, error) {
	p := &parser{tokens: tokens}
	root := ast.NewLeaf(token.Program)
	for {
		child, ok := p.parseComponent()
		if !ok {
			break
		}
		root.AddChild(child)
	}
	if !p.atEnd() {
		return nil, diag.Errorf(diag.UnparsedTrailingTokens, "Error: Did not parse all tokens")
	}
	return root, nil
}

// component = function | line | control
func (p *parser) parseComponent() (*ast.Node, bool) {
	if n, ok := p.parseFunction(); ok {
		return n, true
	}
	if n, ok := p.parseLine(); ok {
		return n, true
	}
	if n, ok := p.parseControl(); ok {
		return n, true
	}
	return nil, false
}

// function = "fn" IDENT "(" parameter_list? ")" block? "end"
// Children, always: [identifier, parameter_list, block].
func (p *parser) parseFunction() (*ast.Node, bool) {
	sp := p.save()
	if _, ok := p.expect(token.Fn); !ok {
		sp.restore()
		return nil, false
	}
	name, ok := p.expect(token.Identifier)
	if !ok {
		sp.restore()
		return nil, false
	}
	if _, ok := p.expect(token.LParen); !ok {
		sp.restore()
		return nil, false
	}
	params, _ := p.parseParameterList()
	if _, ok := p.expect(token.RParen); !ok {
		sp.restore()
		return nil, false
	}
	body, _ := p.parseBlock()
	if _, ok := p.expect(token.End); !ok {
		sp.restore()
		return nil, false
	}
	n := ast.NewLeaf(token.Function)
	n.AddChild(identLeaf(name))
	n.AddChild(params)
	n.AddChild(body)
	return n, true
}

// block = (line | control)*. Always matches, possibly empty.
func (p *parser) parseBlock() (*ast.Node, bool) {
	n := ast.NewLeaf(token.Block)
	for {
		var (
			child *ast.Node
			ok    bool
		)
		if child, ok = p.parseLine(); !ok {
			child, ok = p.parseControl()
		}
		if !ok {
			break
		}
		n.AddChild(child)
	}
	return n, true
}

// line = declaration | assignment | call | return
func (p *parser) parseLine() (*ast.Node, bool) {
	if n, ok := p.parseDeclaration(); ok {
		return n, true
	}
	if n, ok := p.parseAssignment(); ok {
		return n, true
	}
	if n, ok := p.parseFunctionCall(); ok {
		return n, true
	}
	if n, ok := p.parseReturn(); ok {
		return n, true
	}
	return nil, false
}

// declaration = "var" IDENT ("=" expression)?
// Children: [identifier] or [identifier, expression].
func (p *parser) parseDeclaration() (*ast.Node, bool) {
	sp := p.save()
	if _, ok := p.expect(token.Var); !ok {
		sp.restore()
		return nil, false
	}
	name, ok := p.expect(token.Identifier)
	if !ok {
		sp.restore()
		return nil, false
	}
	n := ast.NewLeaf(token.Declaration)
	n.AddChild(identLeaf(name))
	if _, ok := p.expect(token.Assign); ok {
		expr, ok := p.parseExpression()
		if !ok {
			sp.restore()
			return nil, false
		}
		n.AddChild(expr)
	}
	return n, true
}

// assignment = IDENT "=" expression
func (p *parser) parseAssignment() (*ast.Node, bool) {
	sp := p.save()
	name, ok := p.expect(token.Identifier)
	if !ok {
		sp.restore()
		return nil, false
	}
	if _, ok := p.expect(token.Assign); !ok {
		sp.restore()
		return nil, false
	}
	expr, ok := p.parseExpression()
	if !ok {
		sp.restore()
		return nil, false
	}
	n := ast.NewLeaf(token.Assignment)
	n.AddChild(identLeaf(name))
	n.AddChild(expr)
	return n, true
}

// call = IDENT "(" argument_list? ")"
// Children, always: [identifier, argument_list].
func (p *parser) parseFunctionCall() (*ast.Node, bool) {
	sp := p.save()
	name, ok := p.expect(token.Identifier)
	if !ok {
		sp.restore()
		return nil, false
	}
	if _, ok := p.expect(token.LParen); !ok {
		sp.restore()
		return nil, false
	}
	args, _ := p.parseArgumentList()
	if _, ok := p.expect(token.RParen); !ok {
		sp.restore()
		return nil, false
	}
	n := ast.NewLeaf(token.FunctionCall)
	n.AddChild(identLeaf(name))
	n.AddChild(args)
	return n, true
}

// parameter_list = IDENT ("," IDENT)*. Always matches, possibly empty.
func (p *parser) parseParameterList() (*ast.Node, bool) {
	n := ast.NewLeaf(token.ParameterList)
	first, ok := p.expect(token.Identifier)
	if !ok {
		return n, true
	}
	n.AddChild(identLeaf(first))
	for {
		sp := p.save()
		if _, ok := p.expect(token.Comma); !ok {
			sp.restore()
			break
		}
		id, ok := p.expect(token.Identifier)
		if !ok {
			sp.restore()
			break
		}
		n.AddChild(identLeaf(id))
	}
	return n, true
}

// argument_list = expression ("," expression)*. Always matches, possibly empty.
func (p *parser) parseArgumentList() (*ast.Node, bool) {
	n := ast.NewLeaf(token.ArgumentList)
	first, ok := p.parseExpression()
	if !ok {
		return n, true
	}
	n.AddChild(first)
	for {
		sp := p.save()
		if _, ok := p.expect(token.Comma); !ok {
			sp.restore()
			break
		}
		expr, ok := p.parseExpression()
		if !ok {
			sp.restore()
			break
		}
		n.AddChild(expr)
	}
	return n, true
}

// return = "return" expression?
func (p *parser) parseReturn() (*ast.Node, bool) {
	sp := p.save()
	if _, ok := p.expect(token.Return); !ok {
		sp.restore()
		return nil, false
	}
	n := ast.NewLeaf(token.ReturnStmt)
	if expr, ok := p.parseExpression(); ok {
		n.AddChild(expr)
	}
	return n, true
}

// control = if | while
func (p *parser) parseControl() (*ast.Node, bool) {
	if n, ok := p.parseIf(); ok {
		return n, true
	}
	if n, ok := p.parseWhile(); ok {
		return n, true
	}
	return nil, false
}

// if = "if" expression "then" block? else_if* else_block? "end"
// else_if = "else" "if" expression "then" block?
// else_block = "else" block?
// Children alternate (condition, branch)*; an odd total count means the
// final child is an unconditional else branch.
func (p *parser) parseIf() (*ast.Node, bool) {
	sp := p.save()
	if _, ok := p.expect(token.If); !ok {
		sp.restore()
		return nil, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		sp.restore()
		return nil, false
	}
	if _, ok := p.expect(token.Then); !ok {
		sp.restore()
		return nil, false
	}
	n := ast.NewLeaf(token.If_)
	n.AddChild(cond)
	body, _ := p.parseBlock()
	n.AddChild(body)
	for {
		branchSp := p.save()
		if _, ok := p.expect(token.Else); !ok {
			branchSp.restore()
			break
		}
		if _, ok := p.expect(token.If); !ok {
			branchSp.restore()
			break
		}
		elseIfCond, ok := p.parseExpression()
		if !ok {
			branchSp.restore()
			break
		}
		if _, ok := p.expect(token.Then); !ok {
			branchSp.restore()
			break
		}
		elseIfBody, _ := p.parseBlock()
		n.AddChild(elseIfCond)
		n.AddChild(elseIfBody)
	}
	elseSp := p.save()
	if _, ok := p.expect(token.Else); ok {
		elseBody, _ := p.parseBlock()
		n.AddChild(elseBody)
	} else {
		elseSp.restore()
	}
	if _, ok := p.expect(token.End); !ok {
		sp.restore()
		return nil, false
	}
	return n, true
}

// while = "while" expression "do" block? "end"
func (p *parser) parseWhile() (*ast.Node, bool) {
	sp := p.save()
	if _, ok := p.expect(token.While); !ok {
		sp.restore()
		return nil, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		sp.restore()
		return nil, false
	}
	if _, ok := p.expect(token.Do); !ok {
		sp.restore()
		return nil, false
	}
	body, _ := p.parseBlock()
	if _, ok := p.expect(token.End); !ok {
		sp.restore()
		return nil, false
	}
	n := ast.NewLeaf(token.While_)
	n.AddChild(cond)
	n.AddChild(body)
	return n, true
}

// precedence returns a binary operator's precedence level, or -1 if k is
// not a binary operator.
func precedence(k token.Kind) int {
	switch k {
	case token.Equal, token.NotEqual, token.Greater, token.Less, token.GreaterEqual, token.LessEqual:
		return 0
	case token.Plus, token.Minus:
		return 1
	case token.Multiply, token.Divide:
		return 2
	default:
		return -1
	}
}

// expression = unary (binop unary)*
//
// This is the standard recursive precedence-climbing formulation: each
// call consumes operators at or above minPrec, recursing with minPrec+1
// so that same-precedence operators bind left instead of right. It
// produces the same left-associative shape as the reference's scratch
// SYNTAX_NONE wrapper and rightmost-spine splice, without that
// algorithm's manual-allocation bookkeeping.
func (p *parser) parseExpression() (*ast.Node, bool) {
	return p.parseBinary(0)
}

func (p *parser) parseBinary(minPrec int) (*ast.Node, bool) {
	sp := p.save()
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		t, ok := p.peek()
		if !ok {
			break
		}
		prec := precedence(t.Kind)
		if prec < minPrec {
			break
		}
		p.pos++
		right, ok := p.parseBinary(prec + 1)
		if !ok {
			sp.restore()
			return nil, false
		}
		node := ast.NewLeaf(t.Kind)
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}
	return left, true
}

// unary = "!" unary | primary. Right-associative.
func (p *parser) parseUnary() (*ast.Node, bool) {
	sp := p.save()
	if _, ok := p.expect(token.Not); ok {
		operand, ok := p.parseUnary()
		if !ok {
			sp.restore()
			return nil, false
		}
		n := ast.NewLeaf(token.Not)
		n.AddChild(operand)
		return n, true
	}
	return p.parsePrimary()
}

// primary = call | "(" expression ")" | IDENT | INTEGER | STRING
func (p *parser) parsePrimary() (*ast.Node, bool) {
	if n, ok := p.parseFunctionCall(); ok {
		return n, true
	}
	sp := p.save()
	if _, ok := p.expect(token.LParen); ok {
		expr, ok := p.parseExpression()
		if ok {
			if _, ok := p.expect(token.RParen); ok {
				return expr, true
			}
		}
		sp.restore()
	}
	if t, ok := p.expect(token.Identifier); ok {
		return identLeaf(t), true
	}
	if t, ok := p.expect(token.Integer); ok {
		return &ast.Node{Kind: token.Integer, Integer: t.Int}, true
	}
	if t, ok := p.expect(token.String); ok {
		return &ast.Node{Kind: token.String, Str: t.Str}, true
	}
	return nil, false
}

func identLeaf(t token.Token) *ast.Node {
	return &ast.Node{Kind: token.Identifier, Ident: t.Ident}
}
