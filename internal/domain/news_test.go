package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	t.Run("collapses whitespace runs", func(t *testing.T) {
		assert.Equal(t, "NERC Issues New Tariff Order",
			NormalizeTitle("  NERC \t Issues\n\nNew   Tariff Order "))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"  spaced   out  title here ",
			"already normalized title",
			"\ttabs\tand\nnewlines\teverywhere\n",
			"",
		}
		for _, s := range inputs {
			once := NormalizeTitle(s)
			assert.Equal(t, once, NormalizeTitle(once), "input %q", s)
		}
	})

	t.Run("single space output", func(t *testing.T) {
		normalized := NormalizeTitle("a    b\t\tc")
		assert.NotContains(t, normalized, "  ")
		assert.Equal(t, "a b c", normalized)
	})
}

func TestTruncateTitle(t *testing.T) {
	long := strings.Repeat("x", 600)
	assert.Len(t, TruncateTitle(long), MaxTitleLen)

	short := "short title"
	assert.Equal(t, short, TruncateTitle(short))

	exact := strings.Repeat("y", MaxTitleLen)
	assert.Equal(t, exact, TruncateTitle(exact))

	t.Run("multibyte titles cut on character boundaries", func(t *testing.T) {
		// En-dashes and curly quotes survive entity decoding; the cap counts
		// characters, so the cut must never leave a partial encoding behind.
		long := strings.Repeat("–", 600)
		got := TruncateTitle(long)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, MaxTitleLen, utf8.RuneCountInString(got))

		mixed := "NERC – “Quarterly” " + strings.Repeat("x", 600)
		got = TruncateTitle(mixed)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, MaxTitleLen, utf8.RuneCountInString(got))
	})
}

func TestSynthesizeDescription(t *testing.T) {
	t.Run("embeds first 100 chars of long title", func(t *testing.T) {
		long := strings.Repeat("a", 600)
		desc := SynthesizeDescription(long)
		assert.Contains(t, desc, strings.Repeat("a", DescriptionTitleLen))
		assert.NotContains(t, desc, strings.Repeat("a", DescriptionTitleLen+1))
	})

	t.Run("embeds whole short title", func(t *testing.T) {
		desc := SynthesizeDescription("Grid Restored")
		assert.Contains(t, desc, "Grid Restored")
		assert.Contains(t, desc, "nerc.gov.ng")
	})

	t.Run("multibyte title stays valid at the embed cut", func(t *testing.T) {
		desc := SynthesizeDescription(strings.Repeat("–", 600))
		assert.True(t, utf8.ValidString(desc))
		assert.Contains(t, desc, strings.Repeat("–", DescriptionTitleLen))
		assert.NotContains(t, desc, strings.Repeat("–", DescriptionTitleLen+1))
	})
}

func TestClassifyTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected NewsType
	}{
		{"warning keyword", "Public Warning on Grid Stress", NewsAlert},
		{"urgent keyword", "URGENT: load shedding in effect", NewsAlert},
		{"notice keyword", "Public notice to all DISCOs", NewsAlert},
		{"update keyword", "Quarterly tariff update released", NewsUpdate},
		{"new keyword", "New metering programme launched", NewsUpdate},
		{"announce keyword", "Commission announces board meeting", NewsUpdate},
		{"no keywords", "Electricity market report Q2", NewsInfo},
		{"alert beats update", "Urgent Update Notice", NewsAlert},
		{"case insensitive", "WARNING issued", NewsAlert},
		{"empty", "", NewsInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTitle(tt.title))
		})
	}
}

func TestPlaceholderNewsItem(t *testing.T) {
	item := PlaceholderNewsItem()
	assert.Equal(t, "NERC Updates Available", item.Title)
	assert.Equal(t, NewsInfo, item.Type)
	assert.Nil(t, item.PublishedAt)
	assert.Nil(t, item.Region)
	assert.Contains(t, item.Description, "nerc.gov.ng")
}
