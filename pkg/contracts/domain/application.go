package domain

import "strings"

// Decision is the outcome of a course application, parsed once at ingest so
// downstream aggregation never compares raw spreadsheet strings.
type Decision int

const (
	// DecisionOther covers blank cells and any decision value outside the
	// known vocabulary. Such rows count toward totals but toward neither
	// the approved nor the rejected tally.
	DecisionOther Decision = iota
	DecisionApproved
	DecisionRejected
)

// Source-data literals for the decision column. Matching is exact after
// trimming; the upstream register is case-consistent.
const (
	DecisionLiteralApproved = "Beviljad"
	DecisionLiteralRejected = "Avslag"
)

// ParseDecision maps a raw decision cell to a Decision.
func ParseDecision(raw string) Decision {
	switch strings.TrimSpace(raw) {
	case DecisionLiteralApproved:
		return DecisionApproved
	case DecisionLiteralRejected:
		return DecisionRejected
	default:
		return DecisionOther
	}
}

// String returns the source-data literal for the decision.
func (d Decision) String() string {
	switch d {
	case DecisionApproved:
		return DecisionLiteralApproved
	case DecisionRejected:
		return DecisionLiteralRejected
	default:
		return "Övrigt"
	}
}

// ApplicationRecord is one course application row from the enriched base
// dataset. Seat counts default to 0 when the source column is absent or the
// cell is not numeric.
type ApplicationRecord struct {
	Key            string   `json:"key"`
	Region         string   `json:"region"`
	Decision       Decision `json:"decision"`
	EducationArea  string   `json:"education_area"`
	Provider       string   `json:"provider"`
	Credits        float64  `json:"credits"`
	HasCredits     bool     `json:"has_credits"`
	RequestedSeats float64  `json:"requested_seats"`
	GrantedSeats   float64  `json:"granted_seats"`
}

// IsApproved reports whether the application was granted.
func (r ApplicationRecord) IsApproved() bool { return r.Decision == DecisionApproved }
