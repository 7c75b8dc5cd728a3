package syntax

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/widgetspec/pkg/parser"
	"github.com/gnana997/widgetspec/pkg/util"
)

// DefaultInclude matches every file extension the checker understands.
var DefaultInclude = []string{"**/*.{json,yaml,yml,js,jsx,mjs,cjs,ts,mts,cts,tsx}"}

// DefaultExclude skips dependency and build directories.
var DefaultExclude = []string{"**/node_modules/**", "**/.git/**", "**/dist/**", "**/build/**"}

// DetectLanguage picks a checker language from a file extension.
func DetectLanguage(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LanguageJSON, true
	case ".yaml", ".yml":
		return LanguageYAML, true
	}
	if lang := parser.DetectLanguage(path); lang != parser.LanguageUnknown {
		return Language(lang), true
	}
	return "", false
}

// DiscoverFiles walks root and returns the sorted absolute paths of files
// matching any include glob and no exclude glob. Globs use doublestar
// syntax and match slash-separated paths relative to root. An empty include
// list means DefaultInclude.
func DiscoverFiles(root string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern: %s", p)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if matchAny(exclude, rel) || (d.IsDir() && matchAny(exclude, rel+"/")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if matchAny(include, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// FileResult is the outcome of checking one file. Err is set when the file
// could not be read or its language is unsupported.
type FileResult struct {
	Path   string `json:"path"`
	Result Result `json:"result"`
	Err    error  `json:"-"`
}

// CheckFiles checks paths concurrently, at most util.GetOptimalPoolSize at a
// time, and returns results in input order. Cancelling ctx stops work that
// has not started; those files carry ctx.Err().
func (c *Checker) CheckFiles(ctx context.Context, paths []string) []FileResult {
	results := make([]FileResult, len(paths))
	jobs := make(chan int)

	workers := util.GetOptimalPoolSizeWithOverride(c.opts.PoolSize)
	if workers > len(paths) {
		workers = len(paths)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.checkFile(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		if ctx.Err() != nil {
			results[i] = FileResult{Path: paths[i], Err: ctx.Err()}
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (c *Checker) checkFile(ctx context.Context, path string) FileResult {
	fr := FileResult{Path: path}

	lang, ok := DetectLanguage(path)
	if !ok {
		fr.Err = fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filepath.Ext(path))
		return fr
	}

	src, err := util.ReadMapped(path)
	if err != nil {
		fr.Err = err
		return fr
	}

	fr.Result, fr.Err = c.Check(ctx, src, lang)
	if fr.Err != nil {
		c.logger.Warn("check failed", "path", path, "error", fr.Err)
	}
	return fr
}
