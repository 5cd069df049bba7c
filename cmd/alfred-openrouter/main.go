package main

import "github.com/fbettag/alfred-openrouter/internal/cli"

func main() {
	cli.Execute()
}
