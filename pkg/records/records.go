package records

import (
	"strings"

	"github.com/agentstation/tallysheet/pkg/identifier"
)

// Registry columns.
const (
	ColMembershipNumber = "Membership#"
	ColFirstName        = "FirstName"
	ColLastName         = "LastName"
	ColEstRating        = "EstRating"
)

// Roster columns. The last three are optional auxiliary rating fields.
const (
	ColRosterID        = "id"
	ColRosterMemberID  = "memberId"
	ColRosterFirstName = "firstName"
	ColRosterLastName  = "lastName"
	ColUSATTID         = "usattId"
	ColOmnipongID      = "omnipongId"
	ColRating          = "rating"
)

// Match columns.
const (
	ColWinner   = "MemNum_W"
	ColLoser    = "MemNum_L"
	ColScore    = "Score"
	ColDivision = "Division"
)

// Required columns per source.
var (
	RegistryColumns = []string{ColMembershipNumber, ColFirstName, ColLastName, ColEstRating}
	RosterColumns   = []string{ColRosterID, ColRosterMemberID, ColRosterFirstName, ColRosterLastName}
	MatchColumns    = []string{ColWinner, ColLoser, ColScore, ColDivision}
)

// auxColumns are copied into RosterEntry.Aux when present.
var auxColumns = []string{ColUSATTID, ColOmnipongID, ColRating, ColRosterMemberID, ColRosterID}

// MembershipRecord is an authoritative identity from the membership registry.
type MembershipRecord struct {
	MembershipNumber identifier.ID `json:"membership_number" yaml:"membership_number"`
	FirstName        string        `json:"first_name" yaml:"first_name"`
	LastName         string        `json:"last_name" yaml:"last_name"`
	EstimatedRating  string        `json:"estimated_rating,omitempty" yaml:"estimated_rating,omitempty"`
}

// Name returns the display name of the member.
func (r MembershipRecord) Name() string {
	return FormatName(r.FirstName, r.LastName)
}

// RosterEntry is a registered tournament participant.
//
// InternalID and MembershipID are canonical; the Raw fields keep the
// verbatim cell text for exact fallback matching against match rows.
type RosterEntry struct {
	InternalID      identifier.ID     `json:"internal_id" yaml:"internal_id"`
	MembershipID    identifier.ID     `json:"membership_id,omitempty" yaml:"membership_id,omitempty"`
	RawInternalID   string            `json:"raw_internal_id" yaml:"raw_internal_id"`
	RawMembershipID string            `json:"raw_membership_id,omitempty" yaml:"raw_membership_id,omitempty"`
	FirstName       string            `json:"first_name" yaml:"first_name"`
	LastName        string            `json:"last_name" yaml:"last_name"`
	Aux             map[string]string `json:"aux,omitempty" yaml:"aux,omitempty"`
}

// Name returns the display name of the roster entry.
func (e RosterEntry) Name() string {
	return FormatName(e.FirstName, e.LastName)
}

// AuxField returns an auxiliary field by column name, or the empty string.
func (e RosterEntry) AuxField(column string) string {
	if e.Aux == nil {
		return ""
	}
	return e.Aux[column]
}

// MatchRow is a raw match result as read from the source.
type MatchRow struct {
	RawWinner string `json:"raw_winner" yaml:"raw_winner"`
	RawLoser  string `json:"raw_loser" yaml:"raw_loser"`
	Score     string `json:"score" yaml:"score"`
	Division  string `json:"division" yaml:"division"`
}

// MatchRecord is a normalized match result row.
type MatchRecord struct {
	WinnerName       string        `json:"winner_name" yaml:"winner_name"`
	WinnerMembership identifier.ID `json:"winner_membership" yaml:"winner_membership"`
	LoserName        string        `json:"loser_name" yaml:"loser_name"`
	LoserMembership  identifier.ID `json:"loser_membership" yaml:"loser_membership"`
	Scores           string        `json:"scores" yaml:"scores"`
	Event            string        `json:"event" yaml:"event"`
}

// Cells returns the record in "Match Results" column order.
func (m MatchRecord) Cells() []string {
	return []string{
		m.WinnerName,
		m.WinnerMembership.String(),
		m.LoserName,
		m.LoserMembership.String(),
		m.Scores,
		m.Event,
	}
}

// EstimatedRatingRecord is a participating roster entry with its best rating.
type EstimatedRatingRecord struct {
	Name       string        `json:"name" yaml:"name"`
	Membership identifier.ID `json:"membership" yaml:"membership"`
	Rating     string        `json:"rating" yaml:"rating"`
}

// Cells returns the record in "Estimated Ratings" column order.
func (e EstimatedRatingRecord) Cells() []string {
	return []string{e.Name, e.Membership.String(), e.Rating}
}

// DecodeMemberships converts registry rows. Rows are kept in order, including
// rows with an empty membership number; filtering is the index's job.
func DecodeMemberships(rows []Row) []MembershipRecord {
	out := make([]MembershipRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, MembershipRecord{
			MembershipNumber: identifier.Normalize(row.Get(ColMembershipNumber)),
			FirstName:        strings.TrimSpace(row.Text(ColFirstName)),
			LastName:         strings.TrimSpace(row.Text(ColLastName)),
			EstimatedRating:  strings.TrimSpace(row.Text(ColEstRating)),
		})
	}
	return out
}

// DecodeRoster converts roster rows.
func DecodeRoster(rows []Row) []RosterEntry {
	out := make([]RosterEntry, 0, len(rows))
	for _, row := range rows {
		entry := RosterEntry{
			InternalID:      identifier.Normalize(row.Get(ColRosterID)),
			MembershipID:    identifier.Normalize(row.Get(ColRosterMemberID)),
			RawInternalID:   row.Text(ColRosterID),
			RawMembershipID: row.Text(ColRosterMemberID),
			FirstName:       strings.TrimSpace(row.Text(ColRosterFirstName)),
			LastName:        strings.TrimSpace(row.Text(ColRosterLastName)),
		}
		for _, col := range auxColumns {
			if v := row.Text(col); v != "" {
				if entry.Aux == nil {
					entry.Aux = make(map[string]string)
				}
				entry.Aux[col] = v
			}
		}
		out = append(out, entry)
	}
	return out
}

// DecodeMatches converts match rows. Scores and division are kept verbatim.
func DecodeMatches(rows []Row) []MatchRow {
	out := make([]MatchRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, MatchRow{
			RawWinner: row.Text(ColWinner),
			RawLoser:  row.Text(ColLoser),
			Score:     row.Text(ColScore),
			Division:  row.Text(ColDivision),
		})
	}
	return out
}

// IsBlank reports whether s is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
