package main

import (
	"github.com/avaskin/glitchbet/internal/cli"
)

func main() {
	cli.Execute()
}
