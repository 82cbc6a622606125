// Package analysis computes speaking-quality metrics from a transcript.
//
// Everything here is pure: no I/O, no shared mutable state. An Analyzer is
// immutable after construction and safe for concurrent use.
package analysis

import (
	"regexp"
	"strings"
)

// Report is the full metric set for one transcript.
type Report struct {
	Fillers       FillerReport `json:"fillers"`
	WordCount     int          `json:"total_words"`
	SentenceCount int          `json:"sentence_count"`
	WPM           int          `json:"wpm"`
	Confidence    int          `json:"confidence"`
	Clarity       int          `json:"clarity"`
}

type fillerPattern struct {
	word string
	re   *regexp.Regexp
}

// Analyzer applies a fixed set of Options.
type Analyzer struct {
	opts     Options
	patterns []fillerPattern
}

var defaultAnalyzer = MustNewAnalyzer(DefaultOptions())

// NewAnalyzer validates opts and compiles one word-boundary pattern per
// filler entry. Entries are lowercased, trimmed and deduplicated.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(opts.FillerWords))
	words := make([]string, 0, len(opts.FillerWords))
	patterns := make([]fillerPattern, 0, len(opts.FillerWords))
	for _, w := range opts.FillerWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if _, dup := seen[w]; dup || w == "" {
			continue
		}
		seen[w] = struct{}{}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
		patterns = append(patterns, fillerPattern{word: w, re: re})
	}
	opts.FillerWords = words

	return &Analyzer{opts: opts, patterns: patterns}, nil
}

// MustNewAnalyzer is like NewAnalyzer but panics on invalid options.
func MustNewAnalyzer(opts Options) *Analyzer {
	a, err := NewAnalyzer(opts)
	if err != nil {
		panic(err)
	}
	return a
}

// Options returns a copy of the options in effect.
func (a *Analyzer) Options() Options {
	opts := a.opts
	opts.FillerWords = append([]string(nil), a.opts.FillerWords...)
	return opts
}

// Analyze runs every metric over transcript. durationSeconds is trusted to
// be non-negative; the request layer rejects anything else.
func (a *Analyzer) Analyze(transcript string, durationSeconds float64) Report {
	fillers := a.CountFillerWords(transcript)
	wpm := CalculateWPM(transcript, durationSeconds)
	sentences := CountSentences(transcript)

	return Report{
		Fillers:       fillers,
		WordCount:     CountWords(transcript),
		SentenceCount: sentences,
		WPM:           wpm,
		Confidence:    a.ConfidenceScore(wpm, fillers.Total),
		Clarity:       a.ClarityScore(sentences, fillers.Total),
	}
}

// Analyze runs every metric with DefaultOptions.
func Analyze(transcript string, durationSeconds float64) Report {
	return defaultAnalyzer.Analyze(transcript, durationSeconds)
}
