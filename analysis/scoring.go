package analysis

import (
	"math"
	"strings"
)

const maxScore = 100

// CountSentences counts '.' characters. Question and exclamation marks are
// ignored and abbreviations over-count.
func CountSentences(transcript string) int {
	return strings.Count(transcript, ".")
}

// ConfidenceScore starts at 100, applies at most one speed penalty and a
// linear per-filler penalty, and clamps to [0, 100].
func (a *Analyzer) ConfidenceScore(wpm, fillerCount int) int {
	score := float64(maxScore)

	switch {
	case wpm < a.opts.SlowWPMThreshold:
		score -= float64(a.opts.SpeedPenaltySlow)
	case wpm > a.opts.FastWPMThreshold:
		score -= float64(a.opts.SpeedPenaltyFast)
	}

	score -= float64(fillerCount) * float64(a.opts.FillerPenaltyConfidence)
	return clamp(score)
}

// ClarityScore starts at 100, penalises answers shorter than the sentence
// threshold and each filler, and clamps to [0, 100].
func (a *Analyzer) ClarityScore(sentenceCount, fillerCount int) int {
	score := float64(maxScore)

	if sentenceCount < a.opts.MinSentenceThreshold {
		score -= float64(a.opts.SentencePenalty)
	}

	score -= float64(fillerCount) * float64(a.opts.FillerPenaltyClarity)
	return clamp(score)
}

// ConfidenceScore scores with DefaultOptions.
func ConfidenceScore(wpm, fillerCount int) int {
	return defaultAnalyzer.ConfidenceScore(wpm, fillerCount)
}

// ClarityScore scores with DefaultOptions.
func ClarityScore(sentenceCount, fillerCount int) int {
	return defaultAnalyzer.ClarityScore(sentenceCount, fillerCount)
}

// Scores are computed in float64 so that huge filler counts saturate
// instead of overflowing.
func clamp(score float64) int {
	return int(math.Max(0, math.Min(maxScore, score)))
}
