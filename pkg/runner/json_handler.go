package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
)

// JSONReporter emits JSON Lines: one object per suite, then a summary.
type JSONReporter struct {
	Encoder *json.Encoder
}

// NewJSONReporter creates a reporter writing to w (stdout when nil).
func NewJSONReporter(w io.Writer) *JSONReporter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONReporter{Encoder: json.NewEncoder(w)}
}

type suiteLine struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	*SuiteResult
}

type summaryLine struct {
	Type       string `json:"type"`
	OK         bool   `json:"ok"`
	Passed     int    `json:"passed"`
	Failed     int    `json:"failed"`
	Errored    int    `json:"errored"`
	DurationNS int64  `json:"duration_ns"`
}

func (h *JSONReporter) SuiteFinished(ctx context.Context, result *SuiteResult) error {
	return h.Encoder.Encode(suiteLine{Type: "suite", Status: result.Status(), SuiteResult: result})
}

func (h *JSONReporter) Finish(ctx context.Context, report *Report) error {
	return h.Encoder.Encode(summaryLine{
		Type:       "summary",
		OK:         report.OK(),
		Passed:     report.Passed,
		Failed:     report.Failed,
		Errored:    report.Errored,
		DurationNS: int64(report.Duration),
	})
}
