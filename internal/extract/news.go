package extract

import (
	"html"
	"regexp"
	"strings"
	"time"
)

// maxCandidatesPerTier bounds how many raw candidates a single tier scan may
// yield, before normalization and deduplication.
const maxCandidatesPerTier = 10

var (
	// articleBoundaryRe splits the listing page into article-level blocks.
	articleBoundaryRe = regexp.MustCompile(`(?i)<article[^>]*>`)

	// entryTitleRe matches a heading carrying an entry-title style class with
	// an anchor inside, the regulator theme's usual headline shape.
	entryTitleRe = regexp.MustCompile(`(?si)<h[1-6][^>]*class="[^"]*(?:entry-title|post-title|article-title)[^"]*"[^>]*>\s*<a[^>]*>(.+?)</a>`)

	// anchorTextRe is the per-block fallback: any anchor whose inner text
	// looks headline-sized (20-100 chars, no nested markup).
	anchorTextRe = regexp.MustCompile(`(?si)<a[^>]*>([^<]{20,100})</a>`)

	tagRe = regexp.MustCompile(`<[^>]+>`)
)

// Date-shape patterns, in priority order. The first pattern that matches a
// block wins; its text is then handed to the corresponding layout parse.
var datePatterns = []struct {
	re      *regexp.Regexp
	layouts []string
}{
	// Long month-day-year: "January 2, 2026" / "January 2 2026".
	{
		re:      regexp.MustCompile(`(?i)(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+[0-9]{1,2},?\s+[0-9]{4}`),
		layouts: []string{"January 2, 2006", "January 2 2006"},
	},
	// Day-month-long: "2 January 2026".
	{
		re:      regexp.MustCompile(`(?i)[0-9]{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December),?\s+[0-9]{4}`),
		layouts: []string{"2 January 2006", "2 January, 2006"},
	},
	// Numeric slash-delimited, day-first: "15/03/2026".
	{
		re:      regexp.MustCompile(`[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}`),
		layouts: []string{"2/1/2006"},
	},
	// ISO-hyphenated: "2026-03-15".
	{
		re:      regexp.MustCompile(`[0-9]{4}-[0-9]{2}-[0-9]{2}`),
		layouts: []string{"2006-01-02"},
	},
}

// NewsCandidate is one raw extracted headline before normalization,
// deduplication, and classification.
type NewsCandidate struct {
	Title       string
	PublishedAt *time.Time
}

// NewsCandidates extracts up to maxCandidatesPerTier raw headline candidates
// from the listing page text.
//
// Primary tier: split the document on article boundaries and pull a title
// (entry-title heading, falling back to a headline-sized anchor) plus a
// best-effort date from each block. Fallback tier: when the page has no
// article wrappers at all, scan the whole document for entry-title headings
// directly, with no date extraction. An empty result means both tiers missed;
// the caller substitutes the placeholder item.
func NewsCandidates(doc string) []NewsCandidate {
	candidates := candidatesFromBlocks(doc)
	if len(candidates) == 0 {
		candidates = candidatesFromHeadings(doc)
	}
	return candidates
}

func candidatesFromBlocks(doc string) []NewsCandidate {
	blocks := articleBoundaryRe.Split(doc, -1)
	if len(blocks) < 2 {
		return nil
	}
	// The slice element before the first boundary is page chrome, not an article.
	blocks = blocks[1:]
	if len(blocks) > maxCandidatesPerTier {
		blocks = blocks[:maxCandidatesPerTier]
	}

	var out []NewsCandidate
	for _, block := range blocks {
		title, ok := titleFromBlock(block)
		if !ok {
			continue
		}
		out = append(out, NewsCandidate{
			Title:       title,
			PublishedAt: DateFromText(block),
		})
	}
	return out
}

func candidatesFromHeadings(doc string) []NewsCandidate {
	matches := entryTitleRe.FindAllStringSubmatch(doc, maxCandidatesPerTier)
	var out []NewsCandidate
	for _, m := range matches {
		title := CleanTitle(m[1])
		if title == "" {
			continue
		}
		out = append(out, NewsCandidate{Title: title})
	}
	return out
}

func titleFromBlock(block string) (string, bool) {
	if m := entryTitleRe.FindStringSubmatch(block); m != nil {
		if title := CleanTitle(m[1]); title != "" {
			return title, true
		}
	}
	if m := anchorTextRe.FindStringSubmatch(block); m != nil {
		if title := CleanTitle(m[1]); title != "" {
			return title, true
		}
	}
	return "", false
}

// CleanTitle strips residual markup and decodes HTML entities from a raw
// title capture. Whitespace normalization happens later, uniformly, in the
// pipeline.
func CleanTitle(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(html.UnescapeString(s))
}

// DateFromText finds the first date-shaped substring in text and parses it.
// The four shape patterns are tried in priority order and the first match
// wins; if the matched text then fails to parse the result is nil rather
// than an error, since publish dates are best-effort.
func DateFromText(text string) *time.Time {
	for _, p := range datePatterns {
		m := p.re.FindString(text)
		if m == "" {
			continue
		}
		m = strings.Join(strings.Fields(m), " ")
		for _, layout := range p.layouts {
			if t, err := time.Parse(layout, m); err == nil {
				return &t
			}
		}
		return nil
	}
	return nil
}
