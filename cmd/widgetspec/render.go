package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gnana997/widgetspec/pkg/catalog"
)

const maxWidth = 80

// printWidgetHuman prints a human-readable widget summary.
func printWidgetHuman(out io.Writer, w *catalog.Widget, recs []catalog.Widget) {
	fmt.Fprintf(out, "%s  [%s, %s]\n", w.ID, w.Category, w.Difficulty)
	fmt.Fprintf(out, "  path  /%s\n", w.Path)
	if w.Icon != "" {
		fmt.Fprintf(out, "  icon  %s\n", w.Icon)
	}
	fmt.Fprintf(out, "  key   %s\n", w.TranslationKey)

	if w.UseCase != "" {
		fmt.Fprintln(out)
		printWrapped(out, w.UseCase, 0, maxWidth)
	}
	if w.MetaDescription != "" {
		fmt.Fprintln(out)
		printWrapped(out, w.MetaDescription, 2, maxWidth)
	}

	fmt.Fprintln(out)
	if len(w.Tags) == 0 {
		fmt.Fprintln(out, "Tags  (none)")
	} else {
		fmt.Fprintf(out, "Tags  %s\n", strings.Join(w.Tags, ", "))
	}

	fmt.Fprintln(out)
	if len(recs) == 0 {
		fmt.Fprintln(out, "Recommended  (none)")
	} else {
		fmt.Fprintln(out, "Recommended")
		idW := 0
		for _, r := range recs {
			idW = max(idW, len(r.ID))
		}
		for _, r := range recs {
			fmt.Fprintf(out, "  %-*s  /%s\n", idW, r.ID, r.Path)
		}
	}

	fmt.Fprintln(out)
	if len(w.FAQs) == 0 {
		fmt.Fprintln(out, "FAQs  (none)")
		return
	}
	locales := make([]string, 0, len(w.FAQs))
	for l, entries := range w.FAQs {
		locales = append(locales, fmt.Sprintf("%s:%d", l, len(entries)))
	}
	sort.Strings(locales)
	fmt.Fprintf(out, "FAQs  %s\n", strings.Join(locales, "  "))
}

// printWrapped prints text word-wrapped at width with the given left indent.
func printWrapped(out io.Writer, text string, indent, width int) {
	words := strings.Fields(text)
	prefix := strings.Repeat(" ", indent)
	line := prefix
	for _, word := range words {
		switch {
		case line == prefix:
			line += word
		case len(line)+len(word)+1 > width:
			fmt.Fprintln(out, line)
			line = prefix + word
		default:
			line += " " + word
		}
	}
	if line != prefix {
		fmt.Fprintln(out, line)
	}
}
