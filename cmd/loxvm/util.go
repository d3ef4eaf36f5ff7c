package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

// Exit codes follow sysexits.h.
const (
	exitUsage    = 64 // EX_USAGE
	exitDataErr  = 65 // EX_DATAERR: compile error
	exitSoftware = 70 // EX_SOFTWARE: runtime error
	exitIOErr    = 74 // EX_IOERR: unreadable input
)

// exitError carries the process exit code for an error. A silent error has
// already been reported to the user.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func isSilent(err error) bool {
	var exitErr *exitError
	return errors.As(err, &exitErr) && exitErr.silent
}

func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return 1
}

var red = color.New(color.FgRed).SprintFunc()

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
}

func outputFormat() string {
	return strings.ToLower(viper.GetString("output"))
}

func checkOutputFormat() error {
	switch outputFormat() {
	case "", "text", "json":
		return nil
	default:
		return &exitError{code: exitUsage, err: fmt.Errorf("unknown output format: %s", viper.GetString("output"))}
	}
}

func getOutputJSON(v any) ([]byte, error) {
	if viper.GetBool("no-color") || color.NoColor {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}

func writeJSON(w io.Writer, v any) error {
	data, err := getOutputJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
