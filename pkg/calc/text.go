package calc

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

// TextStats summarizes a block of text.
type TextStats struct {
	Words              int           `json:"words"`
	Characters         int           `json:"characters"`
	CharactersNoSpaces int           `json:"characters_no_spaces"`
	Sentences          int           `json:"sentences"`
	Paragraphs         int           `json:"paragraphs"`
	ReadingTime        time.Duration `json:"reading_time"`
}

// CountText counts words, characters (runes), sentences and paragraphs.
func CountText(s string) TextStats {
	stats := TextStats{
		Words:      len(strings.Fields(s)),
		Characters: utf8.RuneCountInString(s),
	}

	for _, r := range s {
		if !unicode.IsSpace(r) {
			stats.CharactersNoSpaces++
		}
	}

	inSentence := false
	for _, r := range s {
		switch {
		case r == '.' || r == '!' || r == '?' || r == '…':
			if inSentence {
				stats.Sentences++
				inSentence = false
			}
		case !unicode.IsSpace(r):
			inSentence = true
		}
	}
	if inSentence {
		stats.Sentences++
	}

	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if strings.TrimSpace(para) != "" {
			stats.Paragraphs++
		}
	}

	stats.ReadingTime = time.Duration(float64(stats.Words) / WordsPerMinute * float64(time.Minute)).Round(time.Second)
	return stats
}

// TextCase is a target casing for ConvertCase.
type TextCase string

const (
	CaseUpper  TextCase = "upper"
	CaseLower  TextCase = "lower"
	CaseTitle  TextCase = "title"
	CaseCamel  TextCase = "camel"
	CasePascal TextCase = "pascal"
	CaseSnake  TextCase = "snake"
	CaseKebab  TextCase = "kebab"
)

// ConvertCase rewrites s into the requested casing. Identifier casings
// (camel, pascal, snake, kebab) split on spaces, punctuation and lower→upper
// boundaries.
func ConvertCase(s string, c TextCase) (string, error) {
	switch c {
	case CaseUpper:
		return strings.ToUpper(s), nil
	case CaseLower:
		return strings.ToLower(s), nil
	case CaseTitle:
		words := strings.Fields(s)
		for i, w := range words {
			words[i] = capitalize(strings.ToLower(w))
		}
		return strings.Join(words, " "), nil
	case CaseCamel, CasePascal:
		words := splitWords(s)
		for i, w := range words {
			if i == 0 && c == CaseCamel {
				words[i] = strings.ToLower(w)
				continue
			}
			words[i] = capitalize(strings.ToLower(w))
		}
		return strings.Join(words, ""), nil
	case CaseSnake:
		return strings.ToLower(strings.Join(splitWords(s), "_")), nil
	case CaseKebab:
		return strings.ToLower(strings.Join(splitWords(s), "-")), nil
	default:
		return "", invalid("case", "unknown case %q", c)
	}
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// splitWords breaks s into words at non-alphanumerics and at lower→upper transitions.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	var prev rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return words
}
