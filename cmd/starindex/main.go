package main

import "github.com/viant/starindex/internal/cli"

func main() {
	cli.Execute()
}
