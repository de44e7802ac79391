package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLen is the persisted title length cap.
	MaxTitleLen = 200
	// MinTitleLen is the shortest normalized title worth keeping; anything
	// at or below this is navigation chrome, not a headline.
	MinTitleLen = 10
	// DescriptionTitleLen is how much of the normalized title the synthesized
	// description embeds.
	DescriptionTitleLen = 100
	// MaxItemsPerRun caps how many news items a single extraction run persists.
	MaxItemsPerRun = 5

	// PlaceholderTitle is the synthetic item emitted when no real headlines
	// could be extracted.
	PlaceholderTitle = "NERC Updates Available"

	newsSourceSite = "nerc.gov.ng"
)

var (
	alertKeywords  = []string{"warning", "urgent", "notice"}
	updateKeywords = []string{"update", "new", "announce"}
)

// NormalizeTitle collapses internal whitespace runs to single spaces and
// trims the result. Idempotent: NormalizeTitle(NormalizeTitle(s)) ==
// NormalizeTitle(s).
func NormalizeTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateTitle caps a title at MaxTitleLen characters.
func TruncateTitle(s string) string {
	return truncateRunes(s, MaxTitleLen)
}

// SynthesizeDescription builds the boilerplate description from the
// normalized, pre-truncation title.
func SynthesizeDescription(normalizedTitle string) string {
	t := truncateRunes(normalizedTitle, DescriptionTitleLen)
	return fmt.Sprintf("Latest from NERC: %s. Visit %s for the full story.", t, newsSourceSite)
}

// truncateRunes caps s at n characters. Counting runes, not bytes, keeps a
// multibyte character from being split at the cut, which would leave invalid
// UTF-8 the sink rejects.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// ClassifyTitle tags a headline by case-insensitive keyword match. The alert
// check runs before the update check, so a title matching both tags as alert.
func ClassifyTitle(title string) NewsType {
	lower := strings.ToLower(title)
	for _, kw := range alertKeywords {
		if strings.Contains(lower, kw) {
			return NewsAlert
		}
	}
	for _, kw := range updateKeywords {
		if strings.Contains(lower, kw) {
			return NewsUpdate
		}
	}
	return NewsInfo
}

// PlaceholderNewsItem is the synthetic "no data" item emitted when both
// extraction tiers come up empty. It signals absence without failing the run.
func PlaceholderNewsItem() NewsItem {
	return NewsItem{
		Title:       PlaceholderTitle,
		Description: fmt.Sprintf("No headlines could be extracted this run. Visit %s for the latest updates.", newsSourceSite),
		Type:        NewsInfo,
	}
}
