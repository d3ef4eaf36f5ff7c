package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func shouldRunRepl(cmd *cobra.Command, args []string, terminal bool) bool {
	if flagChanged(cmd, "stdin") || flagChanged(cmd, "code") {
		return false
	}
	if len(args) > 0 {
		return false
	}
	return terminal
}

// getSource determines what code is to be compiled and the name of the
// resulting chunk. There are three possibilities:
//  1. --code <code>
//  2. --stdin (read code from stdin)
//  3. path as args[0]
//
// An unreadable file or stdin is reported with exit code 74.
func getSource(cmd *cobra.Command, args []string, stdin io.Reader) (string, string, error) {
	codeFlagSet := flagChanged(cmd, "code")
	stdinFlagSet := flagChanged(cmd, "stdin")
	pathSupplied := len(args) > 0

	// Error if multiple input sources are specified
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return "", "", &exitError{code: exitUsage, err: errors.New("multiple input sources specified")}
	} else if codeFlagSet && stdinFlagSet {
		return "", "", &exitError{code: exitUsage, err: errors.New("multiple input sources specified")}
	}

	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", &exitError{code: exitIOErr, err: err}
		}
		return string(data), "stdin", nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", &exitError{code: exitIOErr, err: err}
		}
		return string(data), filepath.Base(args[0]), nil
	case codeFlagSet:
		code, err := cmd.Flags().GetString("code")
		if err != nil {
			return "", "", err
		}
		return code, "code", nil
	}
	return "", "", &exitError{code: exitUsage, err: errors.New("no input: pass a file, --code, or --stdin")}
}
