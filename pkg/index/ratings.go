package index

import (
	"strings"

	"github.com/agentstation/tallysheet/pkg/identifier"
	"github.com/agentstation/tallysheet/pkg/records"
)

// DefaultRatingFields is the order in which auxiliary identifier fields are
// tried when keying a rating.
var DefaultRatingFields = []string{
	records.ColUSATTID,
	records.ColRosterMemberID,
	records.ColOmnipongID,
	records.ColRosterID,
}

// Ratings is the fallback lookup from membership number to an externally
// estimated rating. It is consulted only when the registry has no rating.
type Ratings struct {
	ratings map[identifier.ID]string
}

// NewRatings indexes the rating field of each auxiliary record under the
// first non-empty identifier among fields (DefaultRatingFields when none are
// given). Records without a rating are skipped; later records win.
func NewRatings(entries []records.RosterEntry, fields ...string) *Ratings {
	if len(fields) == 0 {
		fields = DefaultRatingFields
	}

	r := &Ratings{ratings: make(map[identifier.ID]string, len(entries))}
	for _, entry := range entries {
		rating := strings.TrimSpace(entry.AuxField(records.ColRating))
		if rating == "" {
			continue
		}
		for _, field := range fields {
			key := identifier.Normalize(entry.AuxField(field))
			if key.IsEmpty() {
				continue
			}
			r.ratings[key] = rating
			break
		}
	}
	return r
}

// Get returns the auxiliary rating for a membership number.
func (r *Ratings) Get(membership identifier.ID) (string, bool) {
	if r == nil || membership.IsEmpty() {
		return "", false
	}
	v, ok := r.ratings[membership]
	return v, ok
}

// Len returns the number of indexed ratings.
func (r *Ratings) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ratings)
}
