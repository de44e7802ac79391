// Package extract turns raw scraped HTML text into typed fields.
//
// Both source pages change markup frequently and inconsistently, so
// extraction deliberately avoids DOM parsing: each extractor is an ordered
// cascade of regular-expression strategies over the raw document text,
// tried most-specific first, degrading to nil fields (never an error) when
// nothing matches.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausible generation band for the national grid, in MW. Used by the
// last-resort range scan to reject unrelated numbers that happen to carry
// an MW suffix.
const (
	minPlausibleGenerationMW = 2000
	maxPlausibleGenerationMW = 10000
)

var (
	// gridCardRe matches generation and frequency inside a contiguous
	// "Grid @ <time>" card block. The bounded gaps keep the match confined
	// to one card instead of spanning the whole document.
	gridCardRe = regexp.MustCompile(`(?si)Grid\s*@.{0,600}?Generation\s*:?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*MW.{0,300}?Frequency\s*:?\s*([0-9]+(?:\.[0-9]+)?)\s*Hz`)

	// taggedPairRe is the looser combined pattern: no "Grid @" anchor, and
	// tolerant of markup between each label and its value, for themes that
	// wrap the numbers in their own tags.
	taggedPairRe = regexp.MustCompile(`(?si)Generation\s*:?\s*(?:<[^>]*>\s*)*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:<[^>]*>\s*)*MW.{0,300}?Frequency\s*:?\s*(?:<[^>]*>\s*)*([0-9]+(?:\.[0-9]+)?)\s*(?:<[^>]*>\s*)*Hz`)

	// Strict whole-document single-field patterns.
	generationFieldRe = regexp.MustCompile(`(?i)Generation\s*:\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*MW`)
	frequencyFieldRe  = regexp.MustCompile(`(?i)Frequency\s*:\s*([0-9]+(?:\.[0-9]+)?)\s*Hz`)

	// Bare unit tokens for the heuristic range scan.
	mwTokenRe = regexp.MustCompile(`(?i)([0-9][0-9,]*(?:\.[0-9]+)?)\s*MW`)
	hzTokenRe = regexp.MustCompile(`(?i)([0-9]+\.[0-9]+)\s*Hz`)

	// loadTrendRe matches the "| <signed-decimal> %" trend annotation that
	// trails the grid card.
	loadTrendRe = regexp.MustCompile(`\|\s*([+-]?[0-9]+(?:\.[0-9]+)?)\s*%`)
)

// GridFields holds the numeric fields recovered from the status page. A nil
// field means every strategy missed.
type GridFields struct {
	GenerationMW     *float64
	FrequencyHz      *float64
	LoadTrendPercent *float64
}

// gridStrategy is one pattern-match attempt over the whole document. It may
// recover either field, both, or neither.
type gridStrategy struct {
	name string
	run  func(doc string) (generation, frequency *float64)
}

// Strategies in priority order. The cascade fills generation and frequency
// independently: a later strategy only supplies fields earlier ones missed.
var gridStrategies = []gridStrategy{
	{name: "grid_card", run: matchGridCard},
	{name: "tag_delimited", run: matchTagDelimited},
	{name: "independent_fields", run: matchIndependentFields},
	{name: "range_scan", run: matchRangeScan},
}

// GridMetrics extracts generation, frequency, and load trend from the status
// page text. It returns the recovered fields plus the names of the strategies
// that contributed a value, in cascade order, for observability. Absence of a
// field is degradation, not an error.
func GridMetrics(doc string) (GridFields, []string) {
	var fields GridFields
	var used []string

	for _, s := range gridStrategies {
		if fields.GenerationMW != nil && fields.FrequencyHz != nil {
			break
		}
		gen, freq := s.run(doc)
		contributed := false
		if fields.GenerationMW == nil && gen != nil {
			fields.GenerationMW = gen
			contributed = true
		}
		if fields.FrequencyHz == nil && freq != nil {
			fields.FrequencyHz = freq
			contributed = true
		}
		if contributed {
			used = append(used, s.name)
		}
	}

	fields.LoadTrendPercent = matchLoadTrend(doc)
	return fields, used
}

// matchGridCard extracts both fields from a contiguous grid card block. The
// most specific and most trustworthy match; all-or-nothing.
func matchGridCard(doc string) (*float64, *float64) {
	m := gridCardRe.FindStringSubmatch(doc)
	if m == nil {
		return nil, nil
	}
	gen, okG := ParseNumber(m[1])
	freq, okF := ParseNumber(m[2])
	if !okG || !okF {
		return nil, nil
	}
	return &gen, &freq
}

// matchTagDelimited tolerates intervening markup between label and value but
// still requires the generation/frequency pair close together. All-or-nothing:
// a lone loose match is as likely to be a nav fragment as a reading.
func matchTagDelimited(doc string) (*float64, *float64) {
	m := taggedPairRe.FindStringSubmatch(doc)
	if m == nil {
		return nil, nil
	}
	gen, okG := ParseNumber(m[1])
	freq, okF := ParseNumber(m[2])
	if !okG || !okF {
		return nil, nil
	}
	return &gen, &freq
}

// matchIndependentFields recovers each field on its own anywhere in the
// document, so one may succeed while the other still falls through.
func matchIndependentFields(doc string) (*float64, *float64) {
	var gen, freq *float64
	if m := generationFieldRe.FindStringSubmatch(doc); m != nil {
		if v, ok := ParseNumber(m[1]); ok {
			gen = &v
		}
	}
	if m := frequencyFieldRe.FindStringSubmatch(doc); m != nil {
		if v, ok := ParseNumber(m[1]); ok {
			freq = &v
		}
	}
	return gen, freq
}

// matchRangeScan is the last resort: accept the first "<number> MW" token in
// the plausible generation band, and the first "<decimal> Hz" token at all.
func matchRangeScan(doc string) (*float64, *float64) {
	var gen, freq *float64
	for _, m := range mwTokenRe.FindAllStringSubmatch(doc, -1) {
		v, ok := ParseNumber(m[1])
		if !ok {
			continue
		}
		if v >= minPlausibleGenerationMW && v <= maxPlausibleGenerationMW {
			gen = &v
			break
		}
	}
	if m := hzTokenRe.FindStringSubmatch(doc); m != nil {
		if v, ok := ParseNumber(m[1]); ok {
			freq = &v
		}
	}
	return gen, freq
}

func matchLoadTrend(doc string) *float64 {
	m := loadTrendRe.FindStringSubmatch(doc)
	if m == nil {
		return nil
	}
	v, ok := ParseNumber(m[1])
	if !ok {
		return nil
	}
	return &v
}

// ParseNumber parses a numeric token tolerating thousands-separator commas:
// "4,876.45" and "4876.45" both parse to 4876.45.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
