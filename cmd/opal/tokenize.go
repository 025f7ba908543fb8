package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"opal/internal/diagfmt"
	"opal/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Dump the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", false, "also print collected comments and blank lines")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	showTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "pretty":
		if err := diagfmt.FormatTokensPretty(os.Stdout, result.FileSet, result.Tokens); err != nil {
			return err
		}
		if showTrivia {
			if err := diagfmt.FormatTriviaPretty(os.Stdout, result.FileSet, result.Extra); err != nil {
				return err
			}
		}
	case "json":
		if err := diagfmt.FormatTokensJSON(os.Stdout, result.FileSet, result.Tokens); err != nil {
			return err
		}
	default:
		return fmt.Errorf("tokenize: unsupported output format %q", outputFormat)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		opts := diagfmt.DefaultPrettyOpts()
		opts.Color = isTerminal(os.Stderr)
		if err := diagfmt.Pretty(os.Stderr, result.FileSet, result.Bag.Items(), opts); err != nil {
			return err
		}
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("tokenize: lexical errors in %s", args[0])
	}
	return nil
}
