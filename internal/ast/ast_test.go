package ast

import (
	"strings"
	"testing"

	"github.com/aardvark-lang/aardvark/internal/token"
)

func TestDumpIncludesPayload(t *testing.T) {
	n := NewLeaf(token.Program)
	n.AddChild(&Node{Kind: token.Integer, Integer: 42})
	n.AddChild(&Node{Kind: token.String, Str: "hi"})

	var b strings.Builder
	n.Dump(&b)
	out := b.String()

	if !strings.Contains(out, "42") {
		t.Errorf("dump %q missing integer payload", out)
	}
	if !strings.Contains(out, `"hi"`) {
		t.Errorf("dump %q missing string payload", out)
	}
	if !strings.Contains(out, "PROGRAM") {
		t.Errorf("dump %q missing root kind", out)
	}
}

func TestAddChildChains(t *testing.T) {
	root := NewLeaf(token.Block)
	root.AddChild(NewLeaf(token.Return)).AddChild(NewLeaf(token.Return))
	if len(root.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(root.Children))
	}
}
