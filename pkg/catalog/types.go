package catalog

// Category groups widgets for navigation.
type Category string

const (
	CategoryLifestyle  Category = "lifestyle"
	CategoryWebDev     Category = "webdev"
	CategoryFinance    Category = "finance"
	CategoryText       Category = "text"
	CategoryConverters Category = "converters"
	CategoryTime       Category = "time"
	CategorySystem     Category = "system"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryLifestyle,
	CategoryWebDev,
	CategoryFinance,
	CategoryText,
	CategoryConverters,
	CategoryTime,
	CategorySystem,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty describes how much background a widget assumes.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists every difficulty level from easiest to hardest.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Locale selects translated FAQ content.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
	LocaleHE Locale = "he"
)

// Locales lists the supported locales.
var Locales = []Locale{LocaleEN, LocaleRU, LocaleHE}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	for _, known := range Locales {
		if l == known {
			return true
		}
	}
	return false
}

// FAQ is a single question/answer pair.
type FAQ struct {
	Question string `json:"question" yaml:"question" validate:"required"`
	Answer   string `json:"answer" yaml:"answer" validate:"required"`
}

// FAQSet maps a locale to its FAQ entries. A locale without entries reads as
// an empty list.
type FAQSet map[Locale][]FAQ

// For returns the entries for locale, never nil.
func (s FAQSet) For(locale Locale) []FAQ {
	entries := s[locale]
	if len(entries) == 0 {
		return []FAQ{}
	}
	out := make([]FAQ, len(entries))
	copy(out, entries)
	return out
}

// Widget describes one tool page.
type Widget struct {
	ID               string     `json:"id" yaml:"id" validate:"required,slug"`
	Icon             string     `json:"icon" yaml:"icon"`
	Category         Category   `json:"category" yaml:"category" validate:"required"`
	TranslationKey   string     `json:"translation_key" yaml:"translation_key" validate:"required"`
	Path             string     `json:"path" yaml:"path" validate:"required,slug"`
	Gradient         string     `json:"gradient" yaml:"gradient"`
	RecommendedTools []string   `json:"recommended_tools,omitempty" yaml:"recommended_tools,omitempty"`
	FAQs             FAQSet     `json:"faqs,omitempty" yaml:"faqs,omitempty"`
	Tags             []string   `json:"tags" yaml:"tags"`
	Difficulty       Difficulty `json:"difficulty" yaml:"difficulty" validate:"required"`
	UseCase          string     `json:"use_case,omitempty" yaml:"use_case,omitempty"`
	MetaDescription  string     `json:"meta_description,omitempty" yaml:"meta_description,omitempty"`
}

// CategorySummary is a category with the number of widgets in it.
type CategorySummary struct {
	Name    Category `json:"name"`
	Count   int      `json:"count"`
	Widgets []string `json:"widgets"`
}

// TagSummary is a tag with the number of widgets carrying it.
type TagSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
