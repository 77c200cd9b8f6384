package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Report is the assembled advisory for one location lookup.
type Report struct {
	ID          string     `json:"id"`
	Query       string     `json:"query,omitempty"`
	Place       Place      `json:"place,omitempty"`
	Conditions  Conditions `json:"conditions,omitempty"`
	Advisory    UVAdvisory `json:"advisory"`
	EvaluatedAt time.Time  `json:"evaluated_at"`
}

// NewReport assembles a report for a completed lookup, stamping the
// evaluation time from the package clock.
func NewReport(id, query string, place Place, conditions Conditions, advisory UVAdvisory) Report {
	return Report{
		ID:          id,
		Query:       query,
		Place:       place,
		Conditions:  conditions,
		Advisory:    advisory,
		EvaluatedAt: clock.Now().UTC(),
	}
}

// OutputEvent is the serialized form of a report destined for the advisory topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// SerializeReport converts a report to its wire form. The key is the report
// ID so downstream consumers can compact per report; headers carry the risk
// tier and evaluation time for header-based routing.
func SerializeReport(r Report) (OutputEvent, error) {
	value, err := json.Marshal(r)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("marshal report: %w", err)
	}

	var key []byte
	if r.ID != "" {
		key = []byte(r.ID)
	}

	return OutputEvent{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			"risk_tier":    string(r.Advisory.Tier),
			"evaluated_at": r.EvaluatedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}
