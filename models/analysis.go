package models

import "voicecoach/api-gateway/analysis"

// Metrics holds the chart-ready numbers of one analysis.
type Metrics struct {
	WPM             int            `json:"wpm"`
	Confidence      int            `json:"confidence"`
	Clarity         int            `json:"clarity"`
	TotalWords      int            `json:"total_words"`
	FillerTotal     int            `json:"filler_total"`
	FillerBreakdown map[string]int `json:"filler_breakdown"`
}

// AnalysisResponse is the body returned by POST /analyze.
type AnalysisResponse struct {
	RawTranscript string  `json:"raw_transcript"`
	Metrics       Metrics `json:"metrics"`
	AIFeedback    string  `json:"ai_feedback"`
}

// NewMetrics flattens an analysis report into the response shape.
func NewMetrics(r analysis.Report) Metrics {
	breakdown := r.Fillers.PerWord
	if breakdown == nil {
		breakdown = map[string]int{}
	}
	return Metrics{
		WPM:             r.WPM,
		Confidence:      r.Confidence,
		Clarity:         r.Clarity,
		TotalWords:      r.WordCount,
		FillerTotal:     r.Fillers.Total,
		FillerBreakdown: breakdown,
	}
}

// HealthResponse is the fixed liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  string   `json:"status" example:"error"`
	Message string   `json:"message"`
	Kind    string   `json:"kind,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}
