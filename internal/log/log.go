//nolint:revive // Package name kept as "log" for stable internal imports.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	debugMode = false

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	exit = os.Exit
)

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// SetOutput redirects regular and error output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// ResetOutput restores the process stdout and stderr
func ResetOutput() {
	stdout = os.Stdout
	stderr = os.Stderr
}

// Debug logs debug messages when debug mode is enabled
func Debug(format string, elem ...any) {
	if debugMode {
		fmt.Fprintln(stdout, color.CyanString("[DEBUG] ")+fmt.Sprintf(format, elem...))
	}
}

// Fatal logs an error message and exits the program
func Fatal(args ...interface{}) {
	var message string

	switch len(args) {
	case 0:
		message = "fatal error occurred"
	case 1:
		switch v := args[0].(type) {
		case error:
			message = v.Error()
		case string:
			message = v
		default:
			message = fmt.Sprintf("%v", v)
		}
	default:
		if format, ok := args[0].(string); ok {
			message = fmt.Sprintf(format, args[1:]...)
		} else {
			message = fmt.Sprint(args...)
		}
	}

	lines := strings.Split(strings.TrimSpace(message), "\n")
	for _, line := range lines {
		fmt.Fprintln(stderr, color.RedString("[x] ")+line)
	}
	exit(1)
}

// Error logs an error message to stderr
func Error(str string, elem ...any) {
	fmt.Fprintln(stderr, color.RedString("[x] ")+fmt.Sprintf(str, elem...))
}

// ErrorH2 logs an indented error message to stderr
func ErrorH2(format string, elem ...any) {
	fmt.Fprintln(stderr, color.RedString("  [x] ")+fmt.Sprintf(format, elem...))
}

// Warn logs a warning. Warnings go to stdout; they are not failures.
func Warn(format string, elem ...any) {
	fmt.Fprintln(stdout, color.YellowString("[!] ")+fmt.Sprintf(format, elem...))
}

// Info logs an informational message
func Info(format string, elem ...any) {
	fmt.Fprintln(stdout, color.BlueString("[x] ")+fmt.Sprintf(format, elem...))
}

// InfoH2 logs an indented informational message
func InfoH2(format string, elem ...any) {
	fmt.Fprintln(stdout, color.GreenString("  [x] ")+fmt.Sprintf(format, elem...))
}

// Success logs a completed operation
func Success(format string, elem ...any) {
	fmt.Fprintln(stdout, color.GreenString("[+] ")+fmt.Sprintf(format, elem...))
}
