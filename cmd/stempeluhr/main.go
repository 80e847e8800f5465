package main

import "github.com/example/stempeluhr/internal/cli"

func main() {
	cli.Execute()
}
