package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Visit is the grouped view of all records sharing a SubmissionID, with
// the visit-level fields lifted from a member record.
type Visit struct {
	SubmissionID uuid.UUID
	Street       string
	Neighborhood string
	Weather      string
	PhotoLinks   []string
	RecordedBy   uuid.UUID
	RecordedAt   time.Time
	Records      []PotholeRecord
}

// GroupBySubmission partitions records by SubmissionID. Each group's records
// are sorted by numeric identifier suffix ascending (lexicographic fallback).
// Iteration order of the result map is unspecified.
func GroupBySubmission(records []PotholeRecord) map[uuid.UUID][]PotholeRecord {
	groups := make(map[uuid.UUID][]PotholeRecord)
	for _, r := range records {
		groups[r.SubmissionID] = append(groups[r.SubmissionID], r)
	}
	for _, group := range groups {
		SortRecordsByIdentifier(group)
	}
	return groups
}

// NewVisit builds a Visit view from the records of one submission.
// Visit-level fields come from the first record after identifier ordering;
// the creation invariant keeps them identical across members.
// Returns the zero Visit when records is empty.
func NewVisit(records []PotholeRecord) Visit {
	if len(records) == 0 {
		return Visit{}
	}

	sorted := make([]PotholeRecord, len(records))
	copy(sorted, records)
	SortRecordsByIdentifier(sorted)

	head := sorted[0]
	return Visit{
		SubmissionID: head.SubmissionID,
		Street:       head.Street,
		Neighborhood: head.Neighborhood,
		Weather:      head.Weather,
		PhotoLinks:   head.PhotoLinks,
		RecordedBy:   head.RecordedBy,
		RecordedAt:   head.RecordedAt,
		Records:      sorted,
	}
}

// Visits converts grouped records into Visit views sorted by RecordedAt
// descending (most recent visit first), then by SubmissionID for stability.
func Visits(records []PotholeRecord) []Visit {
	groups := GroupBySubmission(records)
	visits := make([]Visit, 0, len(groups))
	for _, group := range groups {
		visits = append(visits, NewVisit(group))
	}
	sort.Slice(visits, func(a, b int) bool {
		if !visits[a].RecordedAt.Equal(visits[b].RecordedAt) {
			return visits[a].RecordedAt.After(visits[b].RecordedAt)
		}
		return visits[a].SubmissionID.String() < visits[b].SubmissionID.String()
	})
	return visits
}
