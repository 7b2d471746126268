package parser

import (
	"testing"

	"github.com/aardvark-lang/aardvark/internal/ast"
	"github.com/aardvark-lang/aardvark/internal/lexer"
	"github.com/aardvark-lang/aardvark/internal/token"
)

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	program, err := ParseProgram(toks)
	if err != nil {
		t.Fatalf("ParseProgram(%q) error: %v", src, err)
	}
	return program
}

func TestParseRoundTripConsumesAllTokens(t *testing.T) {
	srcs := []string{
		`print(1 + 2 * 3)`,
		`var x = 10 x = x - 4 print(x)`,
		`fn add(a, b) return a + b end print(add(2, 3))`,
		`var i = 0 while i < 3 do print(i) i = i + 1 end`,
		`if 1 == 2 then print("a") else if 2 == 2 then print("b") else print("c") end`,
		`fn fact(n) if n == 0 then return 1 end return n * fact(n - 1) end print(fact(5))`,
	}
	for _, src := range srcs {
		parse(t, src)
	}
}

func TestTrailingTokensIsFatal(t *testing.T) {
	toks, err := lexer.Tokenize([]byte(`print(1) )`))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if _, err := ParseProgram(toks); err == nil {
		t.Fatal("expected an error for unparsed trailing tokens")
	}
}

func TestFunctionNodeHasIdentParamsBlock(t *testing.T) {
	program := parse(t, `fn f(a, b) end`)
	if len(program.Children) != 1 {
		t.Fatalf("program has %d children, want 1", len(program.Children))
	}
	fn := program.Children[0]
	if fn.Kind != token.Function {
		t.Fatalf("kind = %s, want Function", fn.Kind)
	}
	if len(fn.Children) != 3 {
		t.Fatalf("function has %d children, want 3 (ident, params, block)", len(fn.Children))
	}
	if fn.Children[0].Kind != token.Identifier {
		t.Errorf("first child kind = %s, want Identifier", fn.Children[0].Kind)
	}
	if fn.Children[1].Kind != token.ParameterList {
		t.Errorf("second child kind = %s, want ParameterList", fn.Children[1].Kind)
	}
	if len(fn.Children[1].Children) != 2 {
		t.Errorf("parameter list has %d children, want 2", len(fn.Children[1].Children))
	}
	if fn.Children[2].Kind != token.Block {
		t.Errorf("third child kind = %s, want Block", fn.Children[2].Kind)
	}
}

func TestCallNodeHasIdentAndArgList(t *testing.T) {
	program := parse(t, `foo(1, 2)`)
	call := program.Children[0]
	if call.Kind != token.FunctionCall {
		t.Fatalf("kind = %s, want FunctionCall", call.Kind)
	}
	if len(call.Children) != 2 {
		t.Fatalf("call has %d children, want 2 (ident, args)", len(call.Children))
	}
	if call.Children[1].Kind != token.ArgumentList || len(call.Children[1].Children) != 2 {
		t.Errorf("argument list = %+v, want 2 expressions", call.Children[1])
	}
}

func TestPrecedenceLeftAssociative(t *testing.T) {
	// 1 - 2 - 3 must parse as (1 - 2) - 3, not 1 - (2 - 3).
	program := parse(t, `print(1 - 2 - 3)`)
	argList := program.Children[0].Children[1]
	expr := argList.Children[0]
	if expr.Kind != token.Minus {
		t.Fatalf("top kind = %s, want Minus", expr.Kind)
	}
	left := expr.Children[0]
	if left.Kind != token.Minus {
		t.Fatalf("left child kind = %s, want Minus (left-associative)", left.Kind)
	}
	if left.Children[0].Integer != 1 || left.Children[1].Integer != 2 {
		t.Errorf("inner operands = %d, %d, want 1, 2", left.Children[0].Integer, left.Children[1].Integer)
	}
	if expr.Children[1].Integer != 3 {
		t.Errorf("outer right operand = %d, want 3", expr.Children[1].Integer)
	}
}

func TestPrecedenceMultiplyBindsTighterThanPlus(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3).
	program := parse(t, `print(1 + 2 * 3)`)
	expr := program.Children[0].Children[1].Children[0]
	if expr.Kind != token.Plus {
		t.Fatalf("top kind = %s, want Plus", expr.Kind)
	}
	if expr.Children[0].Integer != 1 {
		t.Errorf("left operand = %d, want 1", expr.Children[0].Integer)
	}
	right := expr.Children[1]
	if right.Kind != token.Multiply {
		t.Fatalf("right child kind = %s, want Multiply", right.Kind)
	}
}

func TestIfOddChildCountMeansTrailingElse(t *testing.T) {
	program := parse(t, `if 1 == 2 then print("a") else if 2 == 2 then print("b") else print("c") end`)
	ifNode := program.Children[0]
	if ifNode.Kind != token.If_ {
		t.Fatalf("kind = %s, want If_", ifNode.Kind)
	}
	if len(ifNode.Children)%2 == 0 {
		t.Fatalf("if has %d children, want odd (trailing unconditional else)", len(ifNode.Children))
	}
	if len(ifNode.Children) != 5 {
		t.Fatalf("if has %d children, want 5 (cond,block,cond,block,elseblock)", len(ifNode.Children))
	}
}

func TestUnaryNotRightAssociative(t *testing.T) {
	program := parse(t, `print(!!1)`)
	expr := program.Children[0].Children[1].Children[0]
	if expr.Kind != token.Not {
		t.Fatalf("kind = %s, want Not", expr.Kind)
	}
	inner := expr.Children[0]
	if inner.Kind != token.Not {
		t.Fatalf("inner kind = %s, want Not", inner.Kind)
	}
	if inner.Children[0].Integer != 1 {
		t.Errorf("innermost operand = %d, want 1", inner.Children[0].Integer)
	}
}
