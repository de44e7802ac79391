package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected float64
		ok       bool
	}{
		{"plain integer", "4876", 4876, true},
		{"plain decimal", "4876.45", 4876.45, true},
		{"comma grouped", "4,876.45", 4876.45, true},
		{"multiple groups", "1,234,567", 1234567, true},
		{"signed", "-2.45", -2.45, true},
		{"whitespace", " 50.18 ", 50.18, true},
		{"empty", "", 0, false},
		{"garbage", "MW", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}

func TestParseNumber_CommaInsertionIdempotent(t *testing.T) {
	a, okA := ParseNumber("4,876.45")
	b, okB := ParseNumber("4876.45")
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
	assert.Equal(t, 4876.45, a)
}

func TestGridMetrics_GridCard(t *testing.T) {
	doc := `<html><body><div class="card">
		Grid @ 06:00 Hrs <span>today</span>
		Generation: 4,876.45MW Frequency: 50.18Hz | 2.45 %
	</div></body></html>`

	fields, used := GridMetrics(doc)

	require.NotNil(t, fields.GenerationMW)
	require.NotNil(t, fields.FrequencyHz)
	require.NotNil(t, fields.LoadTrendPercent)
	assert.Equal(t, 4876.45, *fields.GenerationMW)
	assert.Equal(t, 50.18, *fields.FrequencyHz)
	assert.Equal(t, 2.45, *fields.LoadTrendPercent)
	assert.Equal(t, []string{"grid_card"}, used)
}

func TestGridMetrics_TagDelimited(t *testing.T) {
	// No "Grid @" card, values wrapped in their own tags.
	doc := `<div>Generation: <b>4,201</b> MW</div><div>Frequency <span>49.87</span> Hz</div>`

	fields, used := GridMetrics(doc)

	require.NotNil(t, fields.GenerationMW)
	require.NotNil(t, fields.FrequencyHz)
	assert.Equal(t, 4201.0, *fields.GenerationMW)
	assert.Equal(t, 49.87, *fields.FrequencyHz)
	assert.Equal(t, []string{"tag_delimited"}, used)
}

func TestGridMetrics_IndependentFields(t *testing.T) {
	t.Run("both fields, far apart", func(t *testing.T) {
		doc := `<p>Frequency: 50.02 Hz</p>` + pad(700) + `<p>Generation: 3,900 MW</p>`

		fields, used := GridMetrics(doc)

		require.NotNil(t, fields.GenerationMW)
		require.NotNil(t, fields.FrequencyHz)
		assert.Equal(t, 3900.0, *fields.GenerationMW)
		assert.Equal(t, 50.02, *fields.FrequencyHz)
		assert.Contains(t, used, "independent_fields")
	})

	t.Run("partial recovery, frequency only", func(t *testing.T) {
		doc := `<p>Frequency: 50.02 Hz</p><p>no generation figure today</p>`

		fields, _ := GridMetrics(doc)

		assert.Nil(t, fields.GenerationMW)
		require.NotNil(t, fields.FrequencyHz)
		assert.Equal(t, 50.02, *fields.FrequencyHz)
	})
}

func TestGridMetrics_RangeScan(t *testing.T) {
	t.Run("accepts first MW token in plausible band", func(t *testing.T) {
		doc := `Peak demand hit 500 MW in Ikeja while national output reached 4,512.3 MW at 49.92 Hz`

		fields, used := GridMetrics(doc)

		require.NotNil(t, fields.GenerationMW)
		require.NotNil(t, fields.FrequencyHz)
		assert.Equal(t, 4512.3, *fields.GenerationMW)
		assert.Equal(t, 49.92, *fields.FrequencyHz)
		assert.Equal(t, []string{"range_scan"}, used)
	})

	t.Run("rejects out-of-band MW values", func(t *testing.T) {
		doc := `A 150 MW turbine and a 12,000 MW interconnector plan`

		fields, _ := GridMetrics(doc)

		assert.Nil(t, fields.GenerationMW)
	})

	t.Run("frequency needs a decimal", func(t *testing.T) {
		doc := `nominal 50 Hz supply`

		fields, _ := GridMetrics(doc)

		assert.Nil(t, fields.FrequencyHz)
	})
}

func TestGridMetrics_NothingRecoverable(t *testing.T) {
	doc := `<html><body><h1>Maintenance in progress</h1></body></html>`

	fields, used := GridMetrics(doc)

	assert.Nil(t, fields.GenerationMW)
	assert.Nil(t, fields.FrequencyHz)
	assert.Nil(t, fields.LoadTrendPercent)
	assert.Empty(t, used)
}

func TestGridMetrics_LoadTrend(t *testing.T) {
	t.Run("signed negative", func(t *testing.T) {
		fields, _ := GridMetrics(`Generation: 4,000 MW | -1.2 %`)
		require.NotNil(t, fields.LoadTrendPercent)
		assert.Equal(t, -1.2, *fields.LoadTrendPercent)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		fields, _ := GridMetrics(`Generation: 4,000 MW Frequency: 50.0 Hz`)
		assert.Nil(t, fields.LoadTrendPercent)
		assert.NotNil(t, fields.GenerationMW)
	})
}

// pad returns n bytes of filler so patterns with bounded gaps cannot bridge
// two fragments.
func pad(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'z'
	}
	return string(b)
}
