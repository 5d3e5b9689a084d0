package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/tallysheet/pkg/identifier"
	"github.com/agentstation/tallysheet/pkg/records"
)

func member(number, first, last, rating string) records.MembershipRecord {
	return records.MembershipRecord{
		MembershipNumber: identifier.Normalize(number),
		FirstName:        first,
		LastName:         last,
		EstimatedRating:  rating,
	}
}

func player(id, memberID, first, last string) records.RosterEntry {
	return records.RosterEntry{
		InternalID:      identifier.Normalize(id),
		MembershipID:    identifier.Normalize(memberID),
		RawInternalID:   id,
		RawMembershipID: memberID,
		FirstName:       first,
		LastName:        last,
	}
}

func withAux(e records.RosterEntry, aux map[string]string) records.RosterEntry {
	e.Aux = aux
	return e
}

func match(winner, loser, score, division string) records.MatchRow {
	return records.MatchRow{RawWinner: winner, RawLoser: loser, Score: score, Division: division}
}

func newTestResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	r, err := New(opts...)
	require.NoError(t, err)
	return r
}
