package main

import "unit-translator/internal/cli"

func main() {
	cli.Execute()
}
