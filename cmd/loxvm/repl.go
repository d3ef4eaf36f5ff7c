package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deepnoodle-ai/loxvm"
	"github.com/deepnoodle-ai/loxvm/vm"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
)

const replPrompt = "> "

// replSession evaluates one line at a time on a single VM.
type replSession struct {
	machine *vm.VirtualMachine
	logger  zerolog.Logger
}

func newReplSession(logger zerolog.Logger) *replSession {
	return &replSession{
		machine: vm.New(vm.WithLogger(logger)),
		logger:  logger,
	}
}

// eval compiles and runs one line. Errors are printed and do not end the
// session.
func (s *replSession) eval(ctx context.Context, out, errOut io.Writer, line string) loxvm.Status {
	chunk, err := loxvm.Compile(line, loxvm.WithName("repl"), loxvm.WithLogger(s.logger))
	if err != nil {
		fmt.Fprint(errOut, red(formatCompileError(err)))
		return loxvm.StatusCompileError
	}
	if err := s.machine.Interpret(ctx, chunk); err != nil {
		fmt.Fprintln(errOut, red(err.Error()))
		return loxvm.StatusRuntimeError
	}
	if value, ok := s.machine.Result(); ok {
		fmt.Fprintln(out, value)
	}
	return loxvm.StatusOK
}

func runRepl(ctx context.Context, out, errOut io.Writer, logger zerolog.Logger) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath, err := historyPath()
	if err != nil {
		logger.Warn().Err(err).Msg("history disabled")
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	session := newReplSession(logger)
	for ctx.Err() == nil {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		session.eval(ctx, out, errOut, line)
	}

	if histPath != "" {
		f, err := os.Create(histPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", histPath).Msg("failed to save history")
			return nil
		}
		defer f.Close()
		if _, err := ln.WriteHistory(f); err != nil {
			logger.Warn().Err(err).Str("path", histPath).Msg("failed to save history")
		}
	}
	return nil
}
