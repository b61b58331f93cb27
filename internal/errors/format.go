package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatError renders err with colour for terminal output
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	heading := color.New(color.FgRed, color.Bold).SprintFunc()
	label := color.New(color.FgYellow).SprintFunc()
	return format(err, heading, label)
}

// FormatErrorPlain renders err without ANSI escape codes
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return format(err, plain, plain)
}

func format(err *CLIError, heading, label func(a ...interface{}) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", heading(err.Category.String()), err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s\n  %s\n", label("Usage:"), err.Usage)
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", label("To fix this:"))
		for i, step := range err.Remediation {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}
	return b.String()
}

// PrintError writes the coloured form of err to stderr
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes err to w, coloured only when w is a terminal
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	if color.NoColor || !isTerminal(w) {
		fmt.Fprint(w, FormatErrorPlain(err))
		return
	}
	fmt.Fprint(w, FormatError(err))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// FormatSimpleError formats any error under the given category heading
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return FormatError(cliErr)
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}
