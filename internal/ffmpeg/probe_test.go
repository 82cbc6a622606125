package ffmpeg

import (
	"context"
	"testing"
)

func TestParseProbeOutput(t *testing.T) {
	got, err := parseProbeOutput([]byte(`{"format":{"filename":"pipe:0","duration":"42.512000"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != 42.512 {
		t.Fatalf("expected 42.512, got %v", got)
	}
}

func TestParseProbeOutputErrors(t *testing.T) {
	cases := map[string]string{
		"not json":      `ffprobe exploded`,
		"no duration":   `{"format":{}}`,
		"not available": `{"format":{"duration":"N/A"}}`,
		"garbage":       `{"format":{"duration":"soon"}}`,
		"negative":      `{"format":{"duration":"-1.0"}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseProbeOutput([]byte(raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestProbeDurationRejectsEmptyInput(t *testing.T) {
	if _, err := NewProber("").ProbeDuration(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestProbeDurationMissingBinary(t *testing.T) {
	p := NewProber("definitely-not-ffprobe-on-this-host")
	if p.Available() {
		t.Skip("unexpected binary on PATH")
	}
	if _, err := p.ProbeDuration(context.Background(), []byte("RIFF")); err == nil {
		t.Fatal("expected error when ffprobe is missing")
	}
}
