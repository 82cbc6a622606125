package analysis

import (
	"unicode"
	"unicode/utf8"
)

// FillerReport counts filler words in a transcript. Every vocabulary entry
// is present in PerWord, zero or not, and Total is the sum of PerWord.
type FillerReport struct {
	PerWord map[string]int `json:"per_word"`
	Total   int            `json:"total"`
}

// CountFillerWords counts whole-word, case-insensitive matches of each
// filler entry. Multi-word entries match as a phrase.
func (a *Analyzer) CountFillerWords(transcript string) FillerReport {
	report := FillerReport{PerWord: make(map[string]int, len(a.patterns))}
	for _, p := range a.patterns {
		n := 0
		for _, loc := range p.re.FindAllStringIndex(transcript, -1) {
			if wholeWord(transcript, loc[0], loc[1]) {
				n++
			}
		}
		report.PerWord[p.word] = n
		report.Total += n
	}
	return report
}

// CountFillerWords counts the default vocabulary: um, uh, like, okay, you know.
func CountFillerWords(transcript string) FillerReport {
	return defaultAnalyzer.CountFillerWords(transcript)
}

// wholeWord reports whether transcript[start:end] is not glued to a
// neighbouring word character. RE2's \b only knows ASCII, so "álike" or
// "ñum" would otherwise match.
func wholeWord(transcript string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(transcript[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(transcript) {
		if r, _ := utf8.DecodeRuneInString(transcript[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
