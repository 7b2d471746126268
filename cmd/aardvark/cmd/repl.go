package cmd

import (
	"bufio"
	"fmt"
	"os"
)

// replBufferSize matches the reference REPL's fixed 128-byte read buffer.
const replBufferSize = 128

// repl runs a line-at-a-time loop: "q" quits, anything else is
// interpreted and its result printed before the next prompt. Unlike the
// reference's raw, unbuffered read() of BUFFER_SIZE bytes, this uses a
// bufio.Scanner capped at the same size, idiomatic for line input in Go
// while preserving the 128-byte limit on a single interpreted line.
func repl(flags uint32) error {
	fmt.Println("aardvark REPL")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, replBufferSize), replBufferSize)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if line == "q" {
			return nil
		}
		if err := interpret([]byte(line), flags); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
