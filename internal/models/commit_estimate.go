package models

// CommitEstimate is the outcome of one estimation strategy. Method is a
// diagnostic contract, not just a label: it encodes which strategy
// produced the value and its key parameters (years scanned, repos
// processed, authenticated vs public).
type CommitEstimate struct {
	Count  int    `json:"count"`
	Method string `json:"method"`
}
