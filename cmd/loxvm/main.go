package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !isSilent(err) {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loxvm [file]",
		Short: "Compile and run arithmetic expressions on a bytecode VM",
		Long: `loxvm compiles expressions such as "2 + 3 * 4" to bytecode and runs
them on a stack machine.

With a file argument the file is run. With no arguments on a terminal an
interactive REPL is started.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:              usageArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runHandler,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.loxvm.yaml)")
	pf.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	pf.Bool("no-color", false, "disable colored output")
	pf.Bool("trace", false, "log every instruction the VM executes")
	pf.StringP("output", "o", "", "output format: json or text")
	pf.StringP("code", "c", "", "code to evaluate")
	pf.Bool("stdin", false, "read code from stdin")
	for _, name := range []string{"config", "log-level", "no-color", "trace", "output"} {
		viper.BindPFlag(name, pf.Lookup(name))
	}

	cmd.Flags().String("history", "", "REPL history file (default is $HOME/.loxvm_history)")
	viper.BindPFlag("history", cmd.Flags().Lookup("history"))

	cmd.AddCommand(newDisCmd(), newTokensCmd(), newVersionCmd())
	return cmd
}

// usageArgs accepts at most one script path.
func usageArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &exitError{code: exitUsage, err: errors.New("usage: loxvm [path]")}
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}
	processGlobalFlags()
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if outputFormat() == "json" {
				return writeJSON(out, map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
			}
			fmt.Fprintf(out, "loxvm %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
			return nil
		},
	}
}
