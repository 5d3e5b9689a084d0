//nolint:revive // Package types provides common type definitions
package types

import "slices"

// SourceID identifies where a resolved value came from.
type SourceID string

// String returns the string representation of a source ID.
func (id SourceID) String() string {
	return string(id)
}

// Source identifiers.
const (
	// RegistryID is the authoritative membership registry.
	RegistryID SourceID = "registry"

	// RosterID is the tournament roster, looked up by membership number.
	RosterID SourceID = "roster"

	// RosterInternalID is the tournament roster, looked up by internal player ID.
	RosterInternalID SourceID = "roster_internal_id"

	// RatingsID is the auxiliary rating roster.
	RatingsID SourceID = "ratings"

	// MatchesID is the match results input. It is never a name or rating
	// source, but it is loaded and reported like the others.
	MatchesID SourceID = "matches"

	// NoneID marks a value that no source could supply.
	NoneID SourceID = "none"
)

// SourceIDs returns the lookup sources in default priority order.
func SourceIDs() []SourceID {
	return []SourceID{
		RegistryID,
		RosterID,
		RosterInternalID,
		RatingsID,
	}
}

// IsValid returns true if the SourceID is one of the lookup sources.
func (id SourceID) IsValid() bool {
	return slices.Contains(SourceIDs(), id)
}
