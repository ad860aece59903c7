package main

import (
	"github.com/law-makers/leadgen/internal/cli"
)

func main() {
	// Signal handling lives in the run command so a crawl can finish its
	// exports before exiting; other commands are short-lived.
	cli.Execute()
}
