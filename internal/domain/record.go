package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WeatherNotInformed is stored when the crew did not report the weather.
const WeatherNotInformed = "NOT INFORMED"

// Dimensions holds the measured size of a single pothole. Values are stored
// as decimal strings with a comma separator ("1,50"), matching the format
// the municipal spreadsheets use.
type Dimensions struct {
	Width     string `json:"width"`
	Length    string `json:"length"`
	Thickness string `json:"thickness"`
}

// Normalize trims each value and converts a dot decimal separator to a comma.
func (d Dimensions) Normalize() Dimensions {
	return Dimensions{
		Width:     normalizeDecimal(d.Width),
		Length:    normalizeDecimal(d.Length),
		Thickness: normalizeDecimal(d.Thickness),
	}
}

// IsZero reports whether all three measurements are empty.
func (d Dimensions) IsZero() bool {
	return d.Width == "" && d.Length == "" && d.Thickness == ""
}

func normalizeDecimal(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ".", ",")
}

// PotholeRecord is one pothole measurement within a visit. All records
// created together share a SubmissionID and the visit-level fields
// (street, neighborhood, weather, photos, recorded_by).
type PotholeRecord struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID

	// Identifier is the human label ("REPAIR 3"). Within a submission the
	// numeric suffixes form a dense 1..N sequence with no gaps.
	Identifier string

	Street       string
	Neighborhood string
	Dimensions   Dimensions
	Weather      string
	PhotoLinks   []string
	RecordedBy   uuid.UUID
	RecordedAt   time.Time
}

// BuildIdentifier formats the human label for the n-th record of a visit.
func BuildIdentifier(prefix string, n int) string {
	return fmt.Sprintf("%s %d", prefix, n)
}

// IdentifierSuffix extracts the trailing number of an identifier.
// Returns false when the identifier does not end in digits.
func IdentifierSuffix(identifier string) (int, bool) {
	s := strings.TrimSpace(identifier)
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IdentifierPrefix returns the identifier with its numeric suffix removed.
// "REPAIR 3" -> "REPAIR". Identifiers without a suffix are returned as-is.
func IdentifierPrefix(identifier string) string {
	s := strings.TrimSpace(identifier)
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return strings.TrimSpace(s[:i])
}

// SortRecordsByIdentifier orders records by numeric identifier suffix
// ascending. Records without a numeric suffix, and suffix ties, fall back to
// a lexicographic compare of the full identifier. The sort is in place.
func SortRecordsByIdentifier(records []PotholeRecord) {
	sort.SliceStable(records, func(a, b int) bool {
		return lessByIdentifier(records[a].Identifier, records[b].Identifier)
	})
}

func lessByIdentifier(a, b string) bool {
	na, okA := IdentifierSuffix(a)
	nb, okB := IdentifierSuffix(b)
	if okA && okB && na != nb {
		return na < nb
	}
	if okA != okB {
		// Numbered identifiers sort before unnumbered ones.
		return okA
	}
	return a < b
}

// MergePhotoLinks unions newLinks into links, preserving order and dropping
// duplicates. Appending the same link twice leaves the set unchanged.
func MergePhotoLinks(links, newLinks []string) []string {
	seen := make(map[string]struct{}, len(links)+len(newLinks))
	merged := make([]string, 0, len(links)+len(newLinks))
	for _, l := range links {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		merged = append(merged, l)
	}
	for _, l := range newLinks {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		merged = append(merged, l)
	}
	return merged
}
