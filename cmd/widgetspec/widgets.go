package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/catalog"
)

type listOptions struct {
	category   string
	difficulty string
	tag        string
	jsonOutput bool
}

func newListCmd(env *environment) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List widgets, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.category, "category", "", "Only widgets in this category")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", "", "Only widgets at this difficulty")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "Only widgets with this tag")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON")

	return cmd
}

func runList(cmd *cobra.Command, env *environment, opts *listOptions) error {
	f := catalog.WidgetFilter{
		Category:   catalog.Category(opts.category),
		Difficulty: catalog.Difficulty(opts.difficulty),
		Tag:        opts.tag,
	}
	if f.Category != "" && !f.Category.Valid() {
		return fmt.Errorf("unknown category %q", f.Category)
	}
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", f.Difficulty)
	}

	qs, err := env.loadCatalog()
	if err != nil {
		return err
	}
	widgets := qs.FilterWidgets(f)

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeJSON(out, widgets)
	}
	if len(widgets) == 0 {
		fmt.Fprintln(out, "no widgets")
		return nil
	}

	idW, catW := len("ID"), len("CATEGORY")
	for _, w := range widgets {
		idW = max(idW, len(w.ID))
		catW = max(catW, len(w.Category))
	}
	fmt.Fprintf(out, "%-*s  %-*s  %-12s  %s\n", idW, "ID", catW, "CATEGORY", "DIFFICULTY", "TAGS")
	for _, w := range widgets {
		fmt.Fprintf(out, "%-*s  %-*s  %-12s  %s\n", idW, w.ID, catW, w.Category, w.Difficulty, strings.Join(w.Tags, ", "))
	}
	return nil
}

type showOptions struct {
	jsonOutput bool
}

func newShowCmd(env *environment) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <id-or-path>",
		Short: "Show one widget and its recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, env, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON")

	return cmd
}

func runShow(cmd *cobra.Command, env *environment, ref string, opts *showOptions) error {
	qs, err := env.loadCatalog()
	if err != nil {
		return err
	}
	w, err := lookup(qs, ref)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), w)
	}
	printWidgetHuman(cmd.OutOrStdout(), w, qs.GetRecommendedWidgets(w.ID))
	return nil
}

// lookup resolves ref as an id first, then as a routing path.
func lookup(qs *catalog.QueryService, ref string) (*catalog.Widget, error) {
	if w, ok := qs.GetWidgetByID(ref); ok {
		return w, nil
	}
	if w, ok := qs.GetWidgetByPath(ref); ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, ref)
}

type faqsOptions struct {
	locale     string
	jsonOutput bool
}

func newFAQsCmd(env *environment) *cobra.Command {
	opts := &faqsOptions{}

	cmd := &cobra.Command{
		Use:   "faqs <id>",
		Short: "Print a widget's FAQ entries for one locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFAQs(cmd, env, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.locale, "locale", string(catalog.LocaleEN), "FAQ locale: en, ru, he")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON")

	return cmd
}

func runFAQs(cmd *cobra.Command, env *environment, ref string, opts *faqsOptions) error {
	locale := catalog.Locale(strings.ToLower(opts.locale))
	if !locale.Valid() {
		return fmt.Errorf("unsupported locale %q", opts.locale)
	}

	qs, err := env.loadCatalog()
	if err != nil {
		return err
	}
	w, err := lookup(qs, ref)
	if err != nil {
		return err
	}
	faqs := qs.GetWidgetFAQs(w.ID, locale)

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeJSON(out, faqs)
	}
	if len(faqs) == 0 {
		fmt.Fprintf(out, "%s has no FAQs in %s\n", w.ID, locale)
		return nil
	}
	for i, f := range faqs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Q: %s\n", f.Question)
		printWrapped(out, "A: "+f.Answer, 0, maxWidth)
	}
	return nil
}

func newSearchCmd(env *environment) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search widgets by id, path, tag, use case or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := env.loadCatalog()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			results := qs.SearchWidgets(query)

			out := cmd.OutOrStdout()
			if jsonOutput {
				if results == nil {
					results = []catalog.WidgetSearchResult{}
				}
				return writeJSON(out, results)
			}
			if len(results) == 0 {
				fmt.Fprintf(out, "no widgets found matching %q\n", query)
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(out, "%s  (%s)\n", r.Widget.ID, r.MatchReason)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newValidateCatalogCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-catalog [path]",
		Short: "Validate a catalog file and report every problem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := env.catalogPath()
			if len(args) == 1 {
				path = args[0]
			}

			var (
				qs  *catalog.QueryService
				err error
			)
			if path == "" {
				path = "(embedded)"
				qs, err = catalog.Default()
			} else {
				qs, err = catalog.LoadAndQuery(path)
			}
			if err != nil {
				printValidationErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s is invalid", path)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s %s, %d widgets)\n",
				path, qs.Catalog.Name, qs.Catalog.Version, len(qs.Catalog.Widgets))
			return nil
		},
	}
}

// printValidationErrors prints one line per joined validation error.
func printValidationErrors(w io.Writer, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, inner := range joined.Unwrap() {
			fmt.Fprintf(w, "  - %v\n", inner)
		}
		return
	}
	fmt.Fprintf(w, "  - %v\n", err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
