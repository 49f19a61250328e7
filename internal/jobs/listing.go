// Package jobs ranks derived roles against live openings and fetches live
// job listings from external providers.
package jobs

// Listing is a live job opening. Every field except the title is optional
// because providers disagree about which details they return.
type Listing struct {
	Title    string  `json:"title"`
	Company  *string `json:"company"`
	Link     *string `json:"link"`
	Location *string `json:"location"`
	Salary   *string `json:"salary"`
}

// ScoredLabel is a role title paired with a relevance score on a 0-100
// scale, rounded to two decimals. A nil score means the role could not be
// scored.
type ScoredLabel struct {
	Label string   `json:"title"`
	Score *float64 `json:"score"`
}
