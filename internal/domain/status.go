package domain

// Frequency bands for the 50 Hz Nigerian grid, in Hz.
const (
	stableLow    = 49.5
	stableHigh   = 50.5
	stressedLow  = 49.0
	stressedHigh = 51.0
)

// StatusForFrequency derives the grid health state from the scraped
// frequency. A nil frequency reports StatusStable to preserve the dashboard's
// three-state contract; callers are expected to log and count that case
// separately since it asserts normalcy with no evidence (see package doc).
func StatusForFrequency(hz *float64) GridStatus {
	if hz == nil {
		return StatusStable
	}
	f := *hz
	switch {
	case f >= stableLow && f <= stableHigh:
		return StatusStable
	case f >= stressedLow && f <= stressedHigh:
		return StatusStressed
	default:
		return StatusCritical
	}
}
