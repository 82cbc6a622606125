package analysis

import (
	"math"
	"strings"
)

// CountWords returns the number of whitespace-delimited tokens.
func CountWords(transcript string) int {
	return len(strings.Fields(transcript))
}

// MaxWPM caps the rate reported for vanishingly short durations.
const MaxWPM = math.MaxInt32

// CalculateWPM returns words per minute rounded half to even. A zero
// duration yields 0 instead of dividing by zero, and rates that do not fit
// are capped at MaxWPM.
func CalculateWPM(transcript string, durationSeconds float64) int {
	minutes := durationSeconds / 60
	if minutes == 0 {
		return 0
	}
	wpm := math.RoundToEven(float64(CountWords(transcript)) / minutes)
	if math.IsInf(wpm, 0) || math.IsNaN(wpm) || wpm >= MaxWPM {
		return MaxWPM
	}
	return int(wpm)
}
