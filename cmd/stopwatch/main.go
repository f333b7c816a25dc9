// Package main is the entry point for the stopwatch TUI. With no arguments it
// runs the terminal UI; subcommands query the session history.
package main

import "github.com/j-veylop/stopwatch-tui/internal/cli"

func main() {
	cli.Execute()
}
