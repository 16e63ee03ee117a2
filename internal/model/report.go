package model

import "time"

// BatchSummary aggregates the outcome of routing many documents in one run
type BatchSummary struct {
	RunID       string         `json:"run_id"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Total       int            `json:"total"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Routes      map[Route]int  `json:"routes"`             // Decisions per route
	Failures    []BatchFailure `json:"failures,omitempty"` // Documents that could not be read
}

// BatchFailure records a document that never reached the pipeline
type BatchFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// NewBatchSummary creates an empty summary with every route counted at zero
func NewBatchSummary(runID string, startedAt time.Time) *BatchSummary {
	routes := make(map[Route]int, len(Routes()))
	for _, r := range Routes() {
		routes[r] = 0
	}
	return &BatchSummary{
		RunID:     runID,
		StartedAt: startedAt,
		Routes:    routes,
	}
}

// Record counts a routed document
func (s *BatchSummary) Record(decision ClaimDecision) {
	s.Total++
	s.Succeeded++
	s.Routes[decision.RecommendedRoute]++
}

// RecordFailure counts a document that failed before routing
func (s *BatchSummary) RecordFailure(source string, err error) {
	s.Total++
	s.Failed++
	s.Failures = append(s.Failures, BatchFailure{Source: source, Error: err.Error()})
}
