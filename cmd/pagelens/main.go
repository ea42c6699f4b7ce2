package main

import "github.com/pagelens/pagelens/internal/cli"

func main() {
	cli.Execute()
}
