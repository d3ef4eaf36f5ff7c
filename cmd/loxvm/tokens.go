package main

import (
	"fmt"
	"io"

	"github.com/deepnoodle-ai/loxvm/internal/scanner"
	"github.com/deepnoodle-ai/loxvm/token"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of the input",
		Args:  usageArgs,
		RunE:  tokensHandler,
	}
	cmd.Flags().Bool("comments", false, "include comment tokens")
	return cmd
}

func tokensHandler(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	source, _, err := getSource(cmd, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	var opts []scanner.Option
	if comments, _ := cmd.Flags().GetBool("comments"); comments {
		opts = append(opts, scanner.WithComments())
	}
	tokens := scanner.Scan(source, opts...)

	out := cmd.OutOrStdout()
	if outputFormat() == "json" {
		rows := make([]tokenJSON, 0, len(tokens))
		for _, tok := range tokens {
			rows = append(rows, tokenJSON{
				Type:   string(tok.Type),
				Lexeme: tok.Lexeme,
				Line:   tok.Line,
			})
		}
		return writeJSON(out, rows)
	}
	printTokens(out, tokens)
	return nil
}

type tokenJSON struct {
	Type   string `json:"type"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
}

// printTokens writes one token per row: the line (or "|" when unchanged),
// the token type and the lexeme. Error tokens show their message.
func printTokens(w io.Writer, tokens []token.Info) {
	errColor := color.New(color.FgRed).SprintFunc()
	line := -1
	for _, tok := range tokens {
		if tok.Line != line {
			fmt.Fprintf(w, "%4d ", tok.Line)
			line = tok.Line
		} else {
			fmt.Fprint(w, "   | ")
		}
		if tok.Type == token.ERROR {
			fmt.Fprintf(w, "%-10s %s\n", tok.Type, errColor(tok.Literal))
			continue
		}
		fmt.Fprintf(w, "%-10s '%s'\n", tok.Type, tok.Lexeme)
	}
}
