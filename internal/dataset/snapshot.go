package dataset

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"yhstat/pkg/contracts/domain"
)

// Snapshot is the immutable view of all loaded data. It is built once at
// startup and passed by reference into every aggregation call; nothing
// mutates it afterwards, so concurrent computations need no locking.
type Snapshot struct {
	ID       string
	LoadedAt time.Time

	// Base is the enriched base frame; kept alongside the parsed records so
	// schema validation can still inspect column presence.
	Base    *Frame
	Records []domain.ApplicationRecord

	Cohort      []domain.CohortRecord
	RegionCodes map[string]string

	// EnrichmentApplied records whether the applications workbook was
	// successfully joined in; Notes carries load-time diagnostics.
	EnrichmentApplied bool
	Notes             []string
}

// NewSnapshot stamps identity and load time onto the snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		ID:          uuid.NewString(),
		LoadedAt:    time.Now().UTC(),
		RegionCodes: map[string]string{},
	}
}

// Counties returns the distinct non-empty regions in sorted order.
func (s *Snapshot) Counties() []string {
	seen := make(map[string]struct{})
	for _, r := range s.Records {
		if r.Region != "" {
			seen[r.Region] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Providers returns the distinct non-empty provider names in sorted order.
func (s *Snapshot) Providers() []string {
	seen := make(map[string]struct{})
	for _, r := range s.Records {
		if r.Provider != "" {
			seen[r.Provider] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
