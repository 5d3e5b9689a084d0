package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tallysheet/pkg/identifier"
	"github.com/agentstation/tallysheet/pkg/index"
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

func entry(id, memberID, first, last string) records.RosterEntry {
	return records.RosterEntry{
		InternalID:      identifier.Normalize(id),
		MembershipID:    identifier.Normalize(memberID),
		RawInternalID:   id,
		RawMembershipID: memberID,
		FirstName:       first,
		LastName:        last,
	}
}

func TestNewRegistry(t *testing.T) {
	reg := index.NewRegistry([]records.MembershipRecord{
		member("100", "Ann", "Lee", "1500"),
		member("", "Skipped", "Row", ""),
		member("200", "Bo", "Kim", ""),
	})

	assert.Equal(t, 2, reg.Len())

	rec, ok := reg.Get("100")
	require.True(t, ok)
	assert.Equal(t, "Ann Lee", rec.Name())

	_, ok = reg.Get("")
	assert.False(t, ok, "empty identifier never matches")
}

func TestNewRegistry_LastWriteWins(t *testing.T) {
	reg := index.NewRegistry([]records.MembershipRecord{
		member("100", "Ann", "Lee", "1500"),
		{MembershipNumber: "100.0", FirstName: "Anne", LastName: "Lee", EstimatedRating: "1510"},
	})

	rec, ok := reg.Get("100")
	require.True(t, ok)
	assert.Equal(t, "Anne", rec.FirstName)
	assert.Equal(t, "1510", rec.EstimatedRating)
	assert.Equal(t, identifier.ID("100"), rec.MembershipNumber)
	assert.Equal(t, 1, reg.Overwrites())
}

func TestRegistry_NilSafe(t *testing.T) {
	var reg *index.Registry
	_, ok := reg.Get("100")
	assert.False(t, ok)
	assert.Zero(t, reg.Len())
}

func TestNewPlayers(t *testing.T) {
	reg := index.NewRegistry([]records.MembershipRecord{member("100", "Ann", "Lee", "1500")})
	players := index.NewPlayers([]records.RosterEntry{
		entry("p1", "100.0", "Ann", "Lee"),
		entry("p2", "", "Bo", "Kim"),
		entry("p3", "300", "Cy", "Oh"),
	}, reg)

	m, ok := players.MembershipFor("p1")
	require.True(t, ok)
	assert.Equal(t, identifier.ID("100"), m)

	m, ok = players.MembershipFor("100")
	require.True(t, ok)
	assert.Equal(t, identifier.ID("100"), m)

	m, ok = players.MembershipFor("p2")
	require.True(t, ok, "internal-ID-only players are known")
	assert.True(t, m.IsEmpty())

	_, ok = players.MembershipFor("")
	assert.False(t, ok)

	e, ok := players.ByMembership("300")
	require.True(t, ok)
	assert.Equal(t, "Cy Oh", e.Name())

	e, ok = players.ByInternalID("p2")
	require.True(t, ok)
	assert.Equal(t, "Bo Kim", e.Name())

	assert.Equal(t, 3, players.Len())
}

func TestNewPlayers_LastWriteWins(t *testing.T) {
	players := index.NewPlayers([]records.RosterEntry{
		entry("p1", "100", "Ann", "Lee"),
		entry("p9", "100", "Annie", "Lee"),
		entry("p1", "101", "Ann", "Lee-Kim"),
	}, nil)

	e, ok := players.ByMembership("100")
	require.True(t, ok)
	assert.Equal(t, "Annie", e.FirstName)

	m, _ := players.MembershipFor("p1")
	assert.Equal(t, identifier.ID("101"), m)

	e, _ = players.ByInternalID("p1")
	assert.Equal(t, "Lee-Kim", e.LastName)
	assert.Positive(t, players.Overwrites())
}

func TestPlayers_Resolve(t *testing.T) {
	players := index.NewPlayers([]records.RosterEntry{
		entry("p1", "100", "Ann", "Lee"),
		entry("p2", "", "Bo", "Kim"),
		entry("5", "", "Di", "Wu"),
	}, nil)

	tests := []struct {
		name string
		raw  any
		want identifier.ID
	}{
		{name: "internal id", raw: "p1", want: "100"},
		{name: "membership number", raw: "100.0", want: "100"},
		{name: "numeric cell", raw: 100, want: "100"},
		{name: "known without membership", raw: "p2", want: ""},
		{name: "numeric internal id without membership", raw: "5", want: ""},
		{name: "unregistered number", raw: " 777 ", want: "777"},
		{name: "unknown text", raw: "p404", want: ""},
		{name: "blank", raw: "  ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, players.Resolve(tt.raw))
		})
	}
}

func TestPlayers_ResolveEntry(t *testing.T) {
	players := index.NewPlayers([]records.RosterEntry{
		entry("p1", "100", "Ann", "Lee"),
		entry("p2", "", "Bo", "Kim"),
	}, nil)

	assert.Equal(t, identifier.ID("100"), players.ResolveEntry(entry("p1", "", "", "")))
	assert.Equal(t, identifier.ID("100"), players.ResolveEntry(entry("", "100", "", "")))
	assert.Equal(t, identifier.ID("555"), players.ResolveEntry(entry("zz", "555", "", "")))
	assert.True(t, players.ResolveEntry(entry("p2", "", "", "")).IsEmpty())
}

func TestNewRatings(t *testing.T) {
	aux := []records.RosterEntry{
		{Aux: map[string]string{records.ColUSATTID: "100", records.ColRosterMemberID: "999", records.ColRating: "1620"}},
		{Aux: map[string]string{records.ColOmnipongID: "op-7", records.ColRating: " 1400 "}},
		{Aux: map[string]string{records.ColRosterMemberID: "200.0", records.ColRating: "1300"}},
		{Aux: map[string]string{records.ColUSATTID: "300"}},
		{Aux: map[string]string{records.ColUSATTID: "200", records.ColRating: "1350"}},
	}

	ratings := index.NewRatings(aux)

	v, ok := ratings.Get("100")
	require.True(t, ok)
	assert.Equal(t, "1620", v)

	_, ok = ratings.Get("999")
	assert.False(t, ok, "first non-empty field wins")

	v, _ = ratings.Get("op-7")
	assert.Equal(t, "1400", v)

	v, _ = ratings.Get("200")
	assert.Equal(t, "1350", v, "later record wins")

	_, ok = ratings.Get("300")
	assert.False(t, ok, "records without a rating are skipped")

	assert.Equal(t, 3, ratings.Len())
}

func TestNewRatings_CustomFields(t *testing.T) {
	aux := []records.RosterEntry{
		{Aux: map[string]string{records.ColUSATTID: "100", records.ColOmnipongID: "op-1", records.ColRating: "1500"}},
	}

	ratings := index.NewRatings(aux, records.ColOmnipongID)
	_, ok := ratings.Get("100")
	assert.False(t, ok)
	v, ok := ratings.Get("op-1")
	require.True(t, ok)
	assert.Equal(t, "1500", v)
}
