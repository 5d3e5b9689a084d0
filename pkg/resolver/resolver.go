// Package resolver links match results, roster entries and registry records
// into the normalized rows of the tournament report.
//
// Resolution is key based only. Every lookup walks a fixed source chain
// (see package authority) and takes the first non-empty value; nothing is
// guessed from names.
package resolver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tallysheet/pkg/authority"
	"github.com/agentstation/tallysheet/pkg/identifier"
	"github.com/agentstation/tallysheet/pkg/index"
	"github.com/agentstation/tallysheet/pkg/logging"
	"github.com/agentstation/tallysheet/pkg/provenance"
	"github.com/agentstation/tallysheet/pkg/records"
	"github.com/agentstation/tallysheet/pkg/types"
)

// Inputs are the decoded source records for one run.
type Inputs struct {
	Registry []records.MembershipRecord
	Roster   []records.RosterEntry
	Matches  []records.MatchRow

	// Ratings is the auxiliary rating roster. When nil the roster is used.
	Ratings []records.RosterEntry
}

// Indexes are the lookups built once per run and shared by both resolvers.
type Indexes struct {
	Registry *index.Registry
	Players  *index.Players
	Ratings  *index.Ratings
}

// Resolver produces report rows from decoded inputs.
type Resolver struct {
	authorities  authority.Authority
	tracking     bool
	ratingFields []string
}

// New creates a new Resolver with options.
func New(opts ...Option) (*Resolver, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		authorities:  options.authorities,
		tracking:     options.tracking,
		ratingFields: options.ratingFields,
	}, nil
}

// BuildIndexes constructs the registry, player and rating indexes.
func (r *Resolver) BuildIndexes(in Inputs) *Indexes {
	registry := index.NewRegistry(in.Registry)
	ratingSource := in.Ratings
	if ratingSource == nil {
		ratingSource = in.Roster
	}
	return &Indexes{
		Registry: registry,
		Players:  index.NewPlayers(in.Roster, registry),
		Ratings:  index.NewRatings(ratingSource, r.ratingFields...),
	}
}

// run holds the state of a single resolution.
type run struct {
	*Resolver
	idx     *Indexes
	tracker provenance.Tracker
	stats   ResultStatistics
	logger  *zerolog.Logger
}

func (r *Resolver) newRun(idx *Indexes, logger *zerolog.Logger) *run {
	return &run{
		Resolver: r,
		idx:      idx,
		tracker:  provenance.NewTracker(r.tracking),
		logger:   logger,
	}
}

// Resolve builds the indexes and produces both report sheets.
func (r *Resolver) Resolve(ctx context.Context, in Inputs) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	result := NewResult()
	result.Metadata.RunID = logging.RunID(ctx)

	idx := r.BuildIndexes(in)
	rn := r.newRun(idx, logger)
	rn.stats.RegistryRecords = idx.Registry.Len()
	rn.stats.RosterEntries = idx.Players.Len()
	rn.stats.RatingEntries = idx.Ratings.Len()
	rn.stats.RegistryOverwrites = idx.Registry.Overwrites()
	rn.stats.RosterOverwrites = idx.Players.Overwrites()

	logger.Debug().
		Int("registry", rn.stats.RegistryRecords).
		Int("roster", rn.stats.RosterEntries).
		Int("ratings", rn.stats.RatingEntries).
		Msg("Built indexes")

	participants := CollectParticipants(in.Matches, idx.Players)
	rn.stats.ResolvedParticipants = len(participants.Resolved)
	rn.stats.FallbackParticipants = len(participants.Fallback)

	for _, raw := range participants.Collisions() {
		warning := fmt.Sprintf("identifier %q appears both resolved and unresolved; kept as separate participants", raw)
		result.Warnings = append(result.Warnings, warning)
		logger.Warn().Str("identifier", raw).Msg("Participant key collision")
	}
	if n := rn.stats.RegistryOverwrites; n > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d duplicate registry records replaced by later rows", n))
	}

	result.Matches = rn.matches(in.Matches)
	result.EstimatedRatings = rn.estimatedRatings(in.Roster, participants)
	result.Participants = participants
	result.Provenance = rn.tracker.Map()

	result.Metadata.EndTime = time.Now()
	result.Metadata.Duration = result.Metadata.EndTime.Sub(result.Metadata.StartTime)
	result.Metadata.Stats = rn.stats

	logger.Info().
		Int("matches_read", rn.stats.MatchesRead).
		Int("matches_written", rn.stats.MatchesWritten).
		Int("blank_rows_dropped", rn.stats.BlankRowsDropped).
		Int("unresolved_sides", rn.stats.UnresolvedSides).
		Int("estimated_ratings", len(result.EstimatedRatings)).
		Dur("duration", result.Metadata.Duration).
		Msg("Resolution complete")

	return result, nil
}

// Matches resolves match rows against prebuilt indexes.
func (r *Resolver) Matches(idx *Indexes, matches []records.MatchRow) []records.MatchRecord {
	return r.newRun(idx, logging.Default()).matches(matches)
}

// EstimatedRatings resolves the rating sheet against prebuilt indexes.
func (r *Resolver) EstimatedRatings(idx *Indexes, roster []records.RosterEntry, participants *Participants) []records.EstimatedRatingRecord {
	return r.newRun(idx, logging.Default()).estimatedRatings(roster, participants)
}

// Lookup describes how one raw identifier resolves.
type Lookup struct {
	Raw        string         `json:"raw" yaml:"raw"`
	Key        identifier.ID  `json:"key" yaml:"key"`
	Known      bool           `json:"known" yaml:"known"`
	Membership identifier.ID  `json:"membership" yaml:"membership"`
	Name       string         `json:"name" yaml:"name"`
	NameSource types.SourceID `json:"name_source" yaml:"name_source"`

	// NameFallback is set when the name came from a source below the
	// field's authority, e.g. the roster because the registry had none.
	NameFallback bool `json:"name_fallback" yaml:"name_fallback"`
	Rating     string         `json:"rating" yaml:"rating"`
}

// Lookup resolves a single raw identifier the way a match side is resolved.
func (r *Resolver) Lookup(idx *Indexes, raw string) Lookup {
	rn := r.newRun(idx, logging.Default())
	key := identifier.Normalize(raw)
	_, known := idx.Players.MembershipFor(key)
	membership := idx.Players.Resolve(raw)
	name, source := rn.matchName(types.ResourceTypeMatch, "lookup", "Name", raw, membership)
	rating, _ := rn.rating("lookup", membership)
	top := r.authorities.Find(authority.FieldName, types.ResourceTypeMatch)
	return Lookup{
		Raw:          raw,
		Key:          key,
		Known:        known,
		Membership:   membership,
		Name:         name,
		NameSource:   source,
		NameFallback: name != "" && top != nil && top.Source != source,
		Rating:       rating,
	}
}

// matches emits one record per match row, dropping fully blank rows.
func (rn *run) matches(rows []records.MatchRow) []records.MatchRecord {
	out := make([]records.MatchRecord, 0, len(rows))
	for i, row := range rows {
		rn.stats.MatchesRead++
		id := "row-" + strconv.Itoa(i+1)

		winner := rn.side(row.RawWinner)
		loser := rn.side(row.RawLoser)

		if winner.IsEmpty() && loser.IsEmpty() && records.IsBlank(row.Score) && records.IsBlank(row.Division) {
			rn.stats.BlankRowsDropped++
			continue
		}

		winnerName, _ := rn.matchName(types.ResourceTypeMatch, id, "WinnerName", row.RawWinner, winner)
		loserName, _ := rn.matchName(types.ResourceTypeMatch, id, "LoserName", row.RawLoser, loser)

		out = append(out, records.MatchRecord{
			WinnerName:       winnerName,
			WinnerMembership: winner,
			LoserName:        loserName,
			LoserMembership:  loser,
			Scores:           row.Score,
			Event:            row.Division,
		})
	}
	rn.stats.MatchesWritten = len(out)
	return out
}

// side resolves one side of a match, counting and logging misses.
func (rn *run) side(raw string) identifier.ID {
	m := rn.idx.Players.Resolve(raw)
	if m.IsEmpty() && !identifier.Normalize(raw).IsEmpty() {
		rn.stats.UnresolvedSides++
		rn.logger.Debug().Str("identifier", raw).Msg("Match participant did not resolve to a membership number")
	}
	return m
}

// matchName walks the name chain for a match side.
func (rn *run) matchName(rt types.ResourceType, id, field, raw string, membership identifier.ID) (string, types.SourceID) {
	chain := rn.authorities.Ordered(authority.FieldName, rt)
	return rn.firstOf(rt, id, field, chain, func(src types.SourceID) string {
		switch src {
		case types.RegistryID:
			if rec, ok := rn.idx.Registry.Get(membership); ok {
				return rec.Name()
			}
		case types.RosterID:
			if entry, ok := rn.idx.Players.ByMembership(membership); ok {
				return entry.Name()
			}
		case types.RosterInternalID:
			if entry, ok := rn.idx.Players.ByInternalID(identifier.Normalize(raw)); ok {
				return entry.Name()
			}
		}
		return ""
	})
}

// rating walks the rating chain for a membership number.
func (rn *run) rating(id string, membership identifier.ID) (string, types.SourceID) {
	chain := rn.authorities.Ordered(authority.FieldRating, types.ResourceTypeParticipant)
	return rn.firstOf(types.ResourceTypeParticipant, id, "Rating", chain, func(src types.SourceID) string {
		switch src {
		case types.RegistryID:
			if rec, ok := rn.idx.Registry.Get(membership); ok {
				return strings.TrimSpace(rec.EstimatedRating)
			}
		case types.RatingsID:
			if v, ok := rn.idx.Ratings.Get(membership); ok {
				return v
			}
		}
		return ""
	})
}

// firstOf returns the first non-empty value along chain and records every
// candidate when provenance is on.
func (rn *run) firstOf(rt types.ResourceType, id, field string, chain []types.SourceID, value func(types.SourceID) string) (string, types.SourceID) {
	selected, selectedSource := "", types.NoneID
	now := time.Now()
	for i, src := range chain {
		v := value(src)
		chosen := v != "" && selectedSource == types.NoneID
		if chosen {
			selected, selectedSource = v, src
		}
		if rn.tracker.Enabled() {
			p := provenance.Provenance{Source: src, Value: v, Timestamp: now, Priority: i, Selected: chosen}
			if chosen {
				p.Reason = "highest priority source with a value"
			}
			rn.tracker.Track(rt, id, field, p)
		}
		if chosen && !rn.tracker.Enabled() {
			break
		}
	}
	if selectedSource == types.NoneID && rn.tracker.Enabled() {
		rn.tracker.Track(rt, id, field, provenance.Provenance{
			Source:    types.NoneID,
			Value:     "",
			Timestamp: now,
			Priority:  len(chain),
			Selected:  true,
			Reason:    "no source supplied a value",
		})
	}
	return selected, selectedSource
}

// estimatedRatings emits one record per participating roster entry, in
// roster order.
func (rn *run) estimatedRatings(roster []records.RosterEntry, participants *Participants) []records.EstimatedRatingRecord {
	out := make([]records.EstimatedRatingRecord, 0, len(roster))
	for _, entry := range roster {
		membership := rn.idx.Players.ResolveEntry(entry)
		if !participants.Includes(entry, membership) {
			rn.stats.RosterExcluded++
			continue
		}
		rn.stats.RosterIncluded++

		id := participantID(entry, membership)
		name := entry.Name()
		if rn.tracker.Enabled() {
			rn.tracker.Track(types.ResourceTypeParticipant, id, "Name", provenance.Provenance{
				Source:   types.RosterID,
				Value:    name,
				Selected: true,
				Reason:   "name of the reported roster entry",
			})
		}
		rating, _ := rn.rating(id, membership)

		out = append(out, records.EstimatedRatingRecord{
			Name:       name,
			Membership: membership,
			Rating:     rating,
		})
	}
	return out
}

// participantID names a rating row for provenance.
func participantID(entry records.RosterEntry, membership identifier.ID) string {
	if !membership.IsEmpty() {
		return membership.String()
	}
	if !entry.InternalID.IsEmpty() {
		return "id-" + entry.InternalID.String()
	}
	return "raw-" + entry.RawMembershipID
}
