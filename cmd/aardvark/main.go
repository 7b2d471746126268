package main

import "github.com/aardvark-lang/aardvark/cmd/aardvark/cmd"

func main() {
	cmd.Execute()
}
