package analysis

import "testing"

func TestCountFillerWords(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       map[string]int
		total      int
	}{
		{
			name:       "empty transcript",
			transcript: "",
			want:       map[string]int{"um": 0, "uh": 0, "like": 0, "okay": 0, "you know": 0},
			total:      0,
		},
		{
			name:       "case insensitive with punctuation",
			transcript: "Um, okay",
			want:       map[string]int{"um": 1, "uh": 0, "like": 0, "okay": 1, "you know": 0},
			total:      2,
		},
		{
			name:       "embedded substrings do not match",
			transcript: "alike duh umbrella okayish",
			want:       map[string]int{"um": 0, "uh": 0, "like": 0, "okay": 0, "you know": 0},
			total:      0,
		},
		{
			name:       "non-ascii letters join words",
			transcript: "álike ñum umñ okayé",
			want:       map[string]int{"um": 0, "uh": 0, "like": 0, "okay": 0, "you know": 0},
			total:      0,
		},
		{
			name:       "non-ascii punctuation separates words",
			transcript: "¿um? «like» ¡okay!",
			want:       map[string]int{"um": 1, "uh": 0, "like": 1, "okay": 1, "you know": 0},
			total:      3,
		},
		{
			name:       "phrase entry",
			transcript: "So, you know, I was like... YOU KNOW what I mean. Uh.",
			want:       map[string]int{"um": 0, "uh": 1, "like": 1, "okay": 0, "you know": 2},
			total:      4,
		},
		{
			name:       "repeated words",
			transcript: "like like like um uh um",
			want:       map[string]int{"um": 2, "uh": 1, "like": 3, "okay": 0, "you know": 0},
			total:      6,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CountFillerWords(tc.transcript)
			if len(got.PerWord) != len(tc.want) {
				t.Fatalf("expected %d vocabulary entries, got %#v", len(tc.want), got.PerWord)
			}
			for word, n := range tc.want {
				count, ok := got.PerWord[word]
				if !ok {
					t.Fatalf("missing entry %q in %#v", word, got.PerWord)
				}
				if count != n {
					t.Errorf("%q: expected %d, got %d", word, n, count)
				}
			}
			if got.Total != tc.total {
				t.Errorf("expected total %d, got %d", tc.total, got.Total)
			}
		})
	}
}

func TestFillerTotalEqualsSumOfCounts(t *testing.T) {
	transcripts := []string{
		"",
		"um uh like okay you know",
		"Like, you know, um, I think, uh, okay? Like really.",
		"nothing to see here",
		"you know you know you know",
	}

	for _, transcript := range transcripts {
		report := CountFillerWords(transcript)
		sum := 0
		for _, n := range report.PerWord {
			sum += n
		}
		if sum != report.Total {
			t.Fatalf("transcript %q: total %d != sum %d", transcript, report.Total, sum)
		}
	}
}

func TestCustomVocabularyIsNormalised(t *testing.T) {
	opts := DefaultOptions()
	opts.FillerWords = []string{" Basically ", "basically", "I mean"}

	a, err := NewAnalyzer(opts)
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}

	report := a.CountFillerWords("Basically, I mean, it basically works.")
	if len(report.PerWord) != 2 {
		t.Fatalf("expected duplicates to collapse, got %#v", report.PerWord)
	}
	if report.PerWord["basically"] != 2 || report.PerWord["i mean"] != 1 {
		t.Fatalf("unexpected counts: %#v", report.PerWord)
	}
	if report.Total != 3 {
		t.Fatalf("expected total 3, got %d", report.Total)
	}
}
