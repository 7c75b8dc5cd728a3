package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/gnana997/widgetspec/catalogs"
)

// WidgetSearchResult holds a widget match with the reason it matched.
type WidgetSearchResult struct {
	Widget      *Widget `json:"widget"`
	MatchReason string  `json:"match_reason"`
}

// QueryService provides read-only query methods over a loaded catalog.
// None of its methods fail: a miss is reported as false or an empty slice.
type QueryService struct {
	Catalog *Catalog
	Index   *CatalogIndex
}

// NewQueryService creates a QueryService from a validated catalog and its index.
func NewQueryService(cat *Catalog, idx *CatalogIndex) *QueryService {
	return &QueryService{Catalog: cat, Index: idx}
}

// LoadAndQuery loads a catalog from file and returns a ready-to-use QueryService.
func LoadAndQuery(path string) (*QueryService, error) {
	cat, idx, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(cat, idx), nil
}

// LoadAndQueryBytes loads a catalog from raw JSON bytes and returns a ready-to-use QueryService.
func LoadAndQueryBytes(data []byte) (*QueryService, error) {
	cat, idx, err := LoadFromBytes(data)
	if err != nil {
		return nil, err
	}
	return NewQueryService(cat, idx), nil
}

var (
	defaultOnce  sync.Once
	defaultQuery *QueryService
	defaultErr   error
)

// Default returns the QueryService over the catalog embedded in the binary.
// It is loaded on first use and shared afterwards.
func Default() (*QueryService, error) {
	defaultOnce.Do(func() {
		defaultQuery, defaultErr = LoadAndQueryBytes(catalogs.WidgetsJSON)
	})
	return defaultQuery, defaultErr
}

// ListWidgets returns every widget in catalog order.
func (q *QueryService) ListWidgets() []Widget {
	result := make([]Widget, len(q.Catalog.Widgets))
	copy(result, q.Catalog.Widgets)
	return result
}

// GetWidgetByID looks up a widget by id.
// The bool indicates whether the widget was found.
func (q *QueryService) GetWidgetByID(id string) (*Widget, bool) {
	w, ok := q.Index.WidgetByID[id]
	return w, ok
}

// GetWidgetByPath looks up a widget by its routing path.
func (q *QueryService) GetWidgetByPath(path string) (*Widget, bool) {
	w, ok := q.Index.WidgetByPath[strings.Trim(path, "/")]
	return w, ok
}

// GetWidgetsByCategory returns the widgets in category c.
func (q *QueryService) GetWidgetsByCategory(c Category) []Widget {
	return values(q.Index.WidgetsByCategory[c])
}

// GetWidgetsByDifficulty returns the widgets at difficulty level d.
func (q *QueryService) GetWidgetsByDifficulty(d Difficulty) []Widget {
	return values(q.Index.WidgetsByDifficulty[d])
}

// GetWidgetsByTag returns the widgets carrying tag, compared case-insensitively.
func (q *QueryService) GetWidgetsByTag(tag string) []Widget {
	return values(q.Index.WidgetsByTag[strings.ToLower(tag)])
}

// WidgetFilter narrows ListWidgets-style results. Empty fields match everything.
type WidgetFilter struct {
	Category   Category
	Difficulty Difficulty
	Tag        string
}

// FilterWidgets returns the widgets matching every non-empty field of f, in
// catalog order.
func (q *QueryService) FilterWidgets(f WidgetFilter) []Widget {
	tag := strings.ToLower(f.Tag)
	result := make([]Widget, 0)
	for _, w := range q.Catalog.Widgets {
		if f.Category != "" && w.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && w.Difficulty != f.Difficulty {
			continue
		}
		if tag != "" && !hasTag(w.Tags, tag) {
			continue
		}
		result = append(result, w)
	}
	return result
}

func hasTag(tags []string, lowered string) bool {
	for _, t := range tags {
		if strings.ToLower(t) == lowered {
			return true
		}
	}
	return false
}

// GetRecommendedWidgets resolves the recommended tools of widget id in the
// order they are listed. Ids that do not resolve are skipped, as are repeats.
func (q *QueryService) GetRecommendedWidgets(id string) []Widget {
	result := make([]Widget, 0)

	w, ok := q.Index.WidgetByID[id]
	if !ok {
		return result
	}

	seen := make(map[string]bool, len(w.RecommendedTools))
	for _, ref := range w.RecommendedTools {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		if rec, ok := q.Index.WidgetByID[ref]; ok {
			result = append(result, *rec)
		}
	}
	return result
}

// GetWidgetFAQs returns the FAQ entries of widget id for locale.
func (q *QueryService) GetWidgetFAQs(id string, locale Locale) []FAQ {
	w, ok := q.Index.WidgetByID[id]
	if !ok {
		return []FAQ{}
	}
	return w.FAQs.For(locale)
}

// ListCategories returns every category with its widgets, in category order.
func (q *QueryService) ListCategories() []CategorySummary {
	result := make([]CategorySummary, 0, len(Categories))
	for _, c := range Categories {
		members := q.Index.WidgetsByCategory[c]
		ids := make([]string, len(members))
		for i, w := range members {
			ids[i] = w.ID
		}
		result = append(result, CategorySummary{Name: c, Count: len(members), Widgets: ids})
	}
	return result
}

// ListTags returns every tag with its widget count, sorted by name.
func (q *QueryService) ListTags() []TagSummary {
	result := make([]TagSummary, 0, len(q.Index.WidgetsByTag))
	for tag, members := range q.Index.WidgetsByTag {
		result = append(result, TagSummary{Name: tag, Count: len(members)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// SearchWidgets performs a case-insensitive search across widget ids, tags,
// use cases and meta descriptions.
// Returns matching widgets with the reason for the match.
func (q *QueryService) SearchWidgets(query string) []WidgetSearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []WidgetSearchResult

	for i := range q.Catalog.Widgets {
		w := &q.Catalog.Widgets[i]

		if strings.Contains(w.ID, query) || strings.Contains(w.Path, query) {
			results = append(results, WidgetSearchResult{Widget: w, MatchReason: "id"})
			continue
		}

		if tag, ok := matchTag(w.Tags, query); ok {
			results = append(results, WidgetSearchResult{Widget: w, MatchReason: "tag:" + tag})
			continue
		}

		if strings.Contains(strings.ToLower(w.UseCase), query) {
			results = append(results, WidgetSearchResult{Widget: w, MatchReason: "use_case"})
			continue
		}

		if strings.Contains(strings.ToLower(w.MetaDescription), query) {
			results = append(results, WidgetSearchResult{Widget: w, MatchReason: "description"})
		}
	}

	return results
}

func matchTag(tags []string, query string) (string, bool) {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return tag, true
		}
	}
	return "", false
}

func values(ptrs []*Widget) []Widget {
	result := make([]Widget, 0, len(ptrs))
	for _, w := range ptrs {
		result = append(result, *w)
	}
	return result
}
