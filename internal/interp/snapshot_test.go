package interp_test

import (
	"bytes"
	"testing"

	"github.com/aardvark-lang/aardvark/internal/interp"
	"github.com/aardvark-lang/aardvark/internal/lexer"
	"github.com/aardvark-lang/aardvark/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestSnapshotScenarios snapshots stdout for each of the worked scenarios,
// the same go-snaps pattern the reference fixture suite uses to pin
// interpreter output across changes.
func TestSnapshotScenarios(t *testing.T) {
	defer snaps.Clean(t)

	scenarios := map[string]string{
		"arithmetic_precedence": `print(1 + 2 * 3)`,
		"parens_override":       `print((1 + 2) * 3)`,
		"assignment":            `var x = 10  x = x - 4  print(x)`,
		"function_call":         `fn add(a, b) return a + b end  print(add(2, 3))`,
		"while_loop":            "var i = 0  while i < 3 do print(i)  i = i + 1 end",
		"if_else_if_else":       `if 1 == 2 then print("a") else if 2 == 2 then print("b") else print("c") end`,
		"recursive_factorial":   `fn fact(n) if n == 0 then return 1 end  return n * fact(n - 1) end  print(fact(5))`,
	}

	for name, src := range scenarios {
		t.Run(name, func(t *testing.T) {
			tokens, err := lexer.Tokenize([]byte(src))
			if err != nil {
				t.Fatalf("Tokenize error: %v", err)
			}
			program, err := parser.ParseProgram(tokens)
			if err != nil {
				t.Fatalf("ParseProgram error: %v", err)
			}
			var buf bytes.Buffer
			if _, err := interp.New(&buf).Eval(program); err != nil {
				t.Fatalf("Eval error: %v", err)
			}
			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
