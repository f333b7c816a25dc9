package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/j-veylop/stopwatch-tui/internal/db"
)

// PrintError prints the error in a user-friendly format.
func PrintError(err error) {
	printError(os.Stderr, err)
}

func printError(w io.Writer, err error) {
	if err == nil {
		return
	}

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", red("Error:"), err.Error())

	if errors.Is(err, db.ErrSessionNotFound) {
		fmt.Fprintf(w, "\n%s %s\n", yellow("Suggestion:"), "list session IDs with: stopwatch history")
	}

	if IsDebug() {
		fmt.Fprintf(w, "\n%s %+v\n", dim("Debug:"), err)
	}
}
