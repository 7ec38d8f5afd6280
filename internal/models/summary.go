// ABOUTME: IntervalSummary is one fixed-interval slice of a per-interval video summary
package models

// IntervalSummary summarizes the transcript between Start and End
type IntervalSummary struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Summary string  `json:"summary"`
}

// Label renders the interval bounds as "mm:ss - mm:ss"
func (s IntervalSummary) Label() string {
	return FormatTimestamp(s.Start) + " - " + FormatTimestamp(s.End)
}
