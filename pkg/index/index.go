// Package index builds the read-only lookup tables used for identity
// resolution: the membership registry, the player roster and the auxiliary
// rating roster.
//
// Every table is built once, in a single pass over its source, and never
// mutated afterwards. Duplicate keys follow a last-write-wins policy: a later
// record replaces an earlier one with the same canonical key. The number of
// replacements is reported by each index so that callers can surface it.
package index

import (
	"github.com/agentstation/tallysheet/pkg/identifier"
	"github.com/agentstation/tallysheet/pkg/logging"
	"github.com/agentstation/tallysheet/pkg/records"
)

// Registry maps canonical membership numbers to registry records.
type Registry struct {
	records    map[identifier.ID]records.MembershipRecord
	overwrites int
}

// NewRegistry indexes registry records by membership number. Records whose
// number normalizes to empty are skipped.
func NewRegistry(recs []records.MembershipRecord) *Registry {
	r := &Registry{
		records: make(map[identifier.ID]records.MembershipRecord, len(recs)),
	}

	for _, rec := range recs {
		key := identifier.Normalize(rec.MembershipNumber)
		if key.IsEmpty() {
			continue
		}
		rec.MembershipNumber = key
		if _, exists := r.records[key]; exists {
			r.overwrites++
			logging.Debug().
				Str("membership", key.String()).
				Msg("Duplicate registry entry, keeping the later row")
		}
		r.records[key] = rec
	}

	return r
}

// Get returns the registry record for a membership number.
func (r *Registry) Get(membership identifier.ID) (records.MembershipRecord, bool) {
	if r == nil || membership.IsEmpty() {
		return records.MembershipRecord{}, false
	}
	rec, ok := r.records[membership]
	return rec, ok
}

// Len returns the number of indexed membership numbers.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}

// Overwrites returns how many records were replaced by a later duplicate.
func (r *Registry) Overwrites() int {
	if r == nil {
		return 0
	}
	return r.overwrites
}
