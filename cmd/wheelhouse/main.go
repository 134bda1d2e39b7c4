package main

import "github.com/kingrea/wheelhouse/internal/cli"

func main() {
	cli.Execute()
}
