package interactive

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

func printHeader(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold)

	cyan.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(w, "║                      Quick-Translate                         ║")
	cyan.Fprintln(w, "║              Google Translate from your terminal             ║")
	cyan.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
}

func printMenu(w io.Writer, from, to string) {
	green := color.New(color.FgGreen, color.Bold)
	white := color.New(color.FgWhite)
	yellow := color.New(color.FgYellow)

	green.Fprintln(w, "┌─ Available Commands ────────────────────────────────────────┐")
	white.Fprintln(w, "│ 1. Translate Text                                           │")
	white.Fprintln(w, "│ 2. Translate Batch (separate phrases with |)                │")
	white.Fprintln(w, "│ 3. Change Languages                                         │")
	white.Fprintln(w, "│ 4. Exit                                                     │")
	green.Fprintln(w, "└─────────────────────────────────────────────────────────────┘")
	yellow.Fprintf(w, "Languages: %s → %s\n", from, to)
	yellow.Fprintln(w, "💡 Tip: Add '--o json' to a command to export the result to a JSON file")
	fmt.Fprintln(w)
}

func printPrompt(w io.Writer) {
	blue := color.New(color.FgBlue, color.Bold)
	blue.Fprint(w, "Translate> ")
}

func printGoodbye(w io.Writer) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintln(w, "Goodbye! 👋")
}

func printError(w io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(w, "✗ %s\n", message)
}

func printSuccess(w io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(w, "✓ %s\n", message)
}

func printTranslation(w io.Writer, source, translation string, err error) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(w, "%s → ", source)
	if err != nil {
		color.New(color.FgRed).Fprintf(w, "ERROR: %v\n", err)
		return
	}
	color.New(color.FgWhite, color.Bold).Fprintln(w, translation)
}
