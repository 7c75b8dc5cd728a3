package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/syntax"
)

type checkOptions struct {
	root       string
	exclude    []string
	stdin      bool
	language   string
	jsonOutput bool
}

func newCheckCmd(env *environment) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [globs...]",
		Short: "Check JSON, YAML, JavaScript and TypeScript files for syntax errors",
		Long: `Check discovers files under --root matching the given globs (every
supported file when none are given) and reports each syntax error as
path:line:column. With --stdin, standard input is checked as --language.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, env, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", ".", "Directory to search")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", syntax.DefaultExclude, "Globs to skip")
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false, "Check standard input instead of files")
	cmd.Flags().StringVar(&opts.language, "language", "", "Language of standard input")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON")

	return cmd
}

func runCheck(cmd *cobra.Command, env *environment, globs []string, opts *checkOptions) error {
	checker, err := syntax.NewChecker(syntax.Options{Logger: env.logger})
	if err != nil {
		return err
	}
	defer checker.Close()

	out := cmd.OutOrStdout()

	if opts.stdin {
		if opts.language == "" {
			return fmt.Errorf("--stdin needs --language")
		}
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		res, err := checker.CheckString(cmd.Context(), string(src), opts.language)
		if err != nil {
			return err
		}
		if opts.jsonOutput {
			if err := writeJSON(out, res); err != nil {
				return err
			}
		} else {
			for _, d := range res.Diagnostics {
				fmt.Fprintf(out, "<stdin>:%s\n", d)
			}
		}
		if !res.Valid {
			return fmt.Errorf("syntax errors in stdin")
		}
		return nil
	}

	paths, err := syntax.DiscoverFiles(opts.root, globs, opts.exclude)
	if err != nil {
		return err
	}
	results := checker.CheckFiles(cmd.Context(), paths)

	if opts.jsonOutput {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	}

	bad := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			bad++
			if !opts.jsonOutput {
				fmt.Fprintf(out, "%s: %v\n", r.Path, r.Err)
			}
		case !r.Result.Valid:
			bad++
			if !opts.jsonOutput {
				for _, d := range r.Result.Diagnostics {
					fmt.Fprintf(out, "%s:%s\n", r.Path, d)
				}
			}
		}
	}

	env.logger.Info("Syntax check finished", "files", len(results), "failed", bad)
	if bad > 0 {
		return fmt.Errorf("%d of %d files failed the syntax check", bad, len(results))
	}
	if !opts.jsonOutput {
		fmt.Fprintf(out, "%d files ok\n", len(results))
	}
	return nil
}
