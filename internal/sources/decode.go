package sources

import (
	"github.com/agentstation/tallysheet/pkg/records"
	"github.com/agentstation/tallysheet/pkg/resolver"
	"github.com/agentstation/tallysheet/pkg/types"
)

// Decode converts loaded tables into resolver inputs. A missing ratings
// table leaves Ratings nil so the resolver falls back to the roster.
func Decode(tables map[types.SourceID]*Table) resolver.Inputs {
	var in resolver.Inputs
	if t := tables[types.RegistryID]; t != nil {
		in.Registry = records.DecodeMemberships(t.Rows)
	}
	if t := tables[types.RosterID]; t != nil {
		in.Roster = records.DecodeRoster(t.Rows)
	}
	if t := tables[types.MatchesID]; t != nil {
		in.Matches = records.DecodeMatches(t.Rows)
	}
	if t := tables[types.RatingsID]; t != nil {
		in.Ratings = records.DecodeRoster(t.Rows)
	}
	return in
}

// Paths returns the file each table was read from, keyed by source ID.
func Paths(tables map[types.SourceID]*Table) map[string]string {
	paths := make(map[string]string, len(tables))
	for id, t := range tables {
		if t != nil {
			paths[string(id)] = t.Path
		}
	}
	return paths
}
