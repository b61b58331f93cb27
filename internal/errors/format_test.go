package errors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	t.Run("nil error returns empty string", func(t *testing.T) {
		t.Parallel()
		if result := FormatError(nil); result != "" {
			t.Errorf("Expected empty string, got %q", result)
		}
	})

	t.Run("heading usage and remediation", func(t *testing.T) {
		t.Parallel()
		err := &CLIError{
			Category:    Argument,
			Message:     "invalid value",
			Usage:       "appwatch --apps <list>",
			Remediation: []string{"step 1", "step 2"},
		}

		result := FormatError(err)

		for _, want := range []string{"Argument Error", "invalid value", "Usage:", "appwatch --apps <list>", "To fix this:", "1. step 1", "2. step 2"} {
			if !strings.Contains(result, want) {
				t.Errorf("Expected output to contain %q, got %q", want, result)
			}
		}
	})
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	if FormatErrorPlain(nil) != "" {
		t.Error("Expected empty string for nil")
	}

	err := &CLIError{
		Category:    Configuration,
		Message:     "no valid app patterns provided",
		Remediation: []string{"pass --apps"},
	}
	want := "Configuration Error: no valid app patterns provided\n\nTo fix this:\n  1. pass --apps\n"
	if got := FormatErrorPlain(err); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPrintError(t *testing.T) {
	// Writes to stderr; only checks that nothing panics
	PrintError(&CLIError{Category: Runtime, Message: "test"})
	PrintError(nil)
}

func TestFprintError(t *testing.T) {
	t.Run("nil error does nothing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		FprintError(&buf, nil)
		if buf.Len() != 0 {
			t.Errorf("Expected no output for nil error, got %q", buf.String())
		}
	})

	t.Run("writes error to buffer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		FprintError(&buf, &CLIError{Category: Prerequisite, Message: "no /proc"})
		if !strings.Contains(buf.String(), "no /proc") {
			t.Error("Expected buffer to contain error message")
		}
	})
}

// Changes color.NoColor, so it must not run in parallel.
func TestFprintError_PlainForNonTerminal(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = orig }()

	err := &CLIError{Category: Prerequisite, Message: "no /proc", Remediation: []string{"mount proc"}}

	if !strings.Contains(FormatError(err), "\x1b[") {
		t.Fatal("Expected FormatError to colour output when colour is enabled")
	}

	var buf bytes.Buffer
	FprintError(&buf, err)
	if buf.String() != FormatErrorPlain(err) {
		t.Errorf("Expected plain output for a buffer, got %q", buf.String())
	}
}

func TestFormatSimpleError(t *testing.T) {
	t.Run("nil error returns empty string", func(t *testing.T) {
		t.Parallel()
		if result := FormatSimpleError(nil, Runtime); result != "" {
			t.Errorf("Expected empty string, got %q", result)
		}
	})

	t.Run("formats regular error", func(t *testing.T) {
		t.Parallel()
		result := FormatSimpleError(&testError{}, Runtime)
		if !strings.Contains(result, "Runtime Error") || !strings.Contains(result, "test error") {
			t.Errorf("Unexpected output %q", result)
		}
	})

	t.Run("keeps category of a CLIError", func(t *testing.T) {
		t.Parallel()
		result := FormatSimpleError(NewConfigError("bad"), Runtime)
		if !strings.Contains(result, "Configuration Error") {
			t.Errorf("Expected Configuration heading, got %q", result)
		}
	})
}
