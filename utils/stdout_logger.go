package utils

import (
	"io"

	"github.com/fatih/color"
)

func PrintSuccess(message string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Printf("✓ %s\n", message)
}

func PrintError(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(color.Error, "✗ %s\n", message)
}

func PrintInfo(message string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("ℹ %s\n", message)
}

// PrintTranslation prints one "source → translation" line, or the error in
// red when the item failed.
func PrintTranslation(w io.Writer, source, translation string, err error) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(w, "%s → ", source)
	if err != nil {
		color.New(color.FgRed).Fprintf(w, "ERROR: %v\n", err)
		return
	}
	color.New(color.FgWhite, color.Bold).Fprintln(w, translation)
}
