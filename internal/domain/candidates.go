package domain

// MatchCandidate is a transient scoring result for one candidate report. It is
// computed on demand by the decision policy and never persisted.
type MatchCandidate struct {
	Report  DocumentReport `json:"report"`
	Score   int            `json:"score"`
	Reasons []string       `json:"reasons"`
}

// ScoredCandidate is a transient fuzzy-search result: a report whose document
// number is within the requested edit-distance similarity of the query.
// Similarity is a percentage in [0,100].
type ScoredCandidate struct {
	Report     DocumentReport `json:"report"`
	Similarity int            `json:"similarity"`
}
