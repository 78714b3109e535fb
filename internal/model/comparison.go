package model

// ComparisonRow is one row of a relative-frequency analysis.
// Both frequencies are normalized into [0,1] by dividing by the column
// maximum over the candidate word set.
type ComparisonRow struct {
	Word      string  `json:"word"`
	Local     float64 `json:"local"`
	Reference float64 `json:"reference"`
}
