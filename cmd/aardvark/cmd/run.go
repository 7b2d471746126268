package cmd

import (
	"fmt"
	"os"

	"github.com/aardvark-lang/aardvark/internal/interp"
	"github.com/aardvark-lang/aardvark/internal/lexer"
	"github.com/aardvark-lang/aardvark/internal/parser"
	"github.com/aardvark-lang/aardvark/internal/token"
)

const (
	flagShowTokens uint32 = 1 << iota
	flagShowTree
)

func runFile(path string, flags uint32) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Error: Failed to open file '%s'", path)
	}
	return interpret(src, flags)
}

// interpret runs the full pipeline over src and prints the program's
// result the way the reference main's interpret() does: an integer
// result as a bare decimal, a string result quoted, anything else
// (none/void) silently.
func interpret(src []byte, flags uint32) error {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return err
	}

	if flags&flagShowTokens != 0 {
		printTokenList(tokens)
	}

	program, err := parser.ParseProgram(tokens)
	if err != nil {
		return err
	}

	if flags&flagShowTree != 0 {
		fmt.Println("Parse tree:")
		program.Dump(os.Stdout)
		fmt.Println()
	}

	result, err := interp.New(os.Stdout).Eval(program)
	if err != nil {
		return err
	}
	switch result.Kind {
	case interp.Integer:
		fmt.Println(result.Integer)
	case interp.String:
		fmt.Printf("%q\n", result.Str)
	}
	return nil
}

func printTokenList(tokens []token.Token) {
	fmt.Println("Token list:")
	if len(tokens) == 0 {
		fmt.Println("(No tokens)")
	} else {
		for i, t := range tokens {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(t.Kind)
		}
		fmt.Println()
	}
	fmt.Println()
}
