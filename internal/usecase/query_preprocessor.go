package usecase

import (
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxQueryLength keeps provider URLs within sane bounds
const maxQueryLength = 100

var (
	multiSpacePattern = regexp.MustCompile(`\s+`)

	// Separators accepted between foods in a multi-item intake
	itemSeparatorPattern = regexp.MustCompile(`[,;\n]`)
)

// QueryPreprocessor normalises free-text food queries before they reach a provider
type QueryPreprocessor struct {
	logger *slog.Logger
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(logger *slog.Logger) *QueryPreprocessor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &QueryPreprocessor{logger: logger}
}

// Normalize trims, collapses whitespace and lower-cases the query.
// Display names always come from the provider, so folding case here only
// affects matching.
func (p *QueryPreprocessor) Normalize(query string) string {
	cleaned := multiSpacePattern.ReplaceAllString(query, " ")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))

	if len(cleaned) > maxQueryLength {
		// Cut on a rune boundary so multi-byte characters stay intact
		n := maxQueryLength
		for n > 0 && !utf8.RuneStart(cleaned[n]) {
			n--
		}
		cleaned = cleaned[:n]
		// Try to cut at word boundary
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	if cleaned != query {
		p.logger.Debug("normalized query", "input", query, "output", cleaned)
	}
	return cleaned
}

// SplitItems breaks a comma-separated intake ("Banana, Grilled Chicken, Milk")
// into trimmed, non-empty items in input order.
func SplitItems(input string) []string {
	parts := itemSeparatorPattern.Split(input, -1)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(multiSpacePattern.ReplaceAllString(part, " "))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
