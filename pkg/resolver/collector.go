package resolver

import (
	"sort"

	"github.com/agentstation/tallysheet/pkg/identifier"
	"github.com/agentstation/tallysheet/pkg/index"
	"github.com/agentstation/tallysheet/pkg/logging"
	"github.com/agentstation/tallysheet/pkg/records"
)

// Participants is the set of players who appear in at least one match.
//
// Resolved holds membership numbers. Fallback holds the verbatim raw text of
// match-sheet identifiers that could not be resolved; it is matched against
// the roster's raw ID fields, never against membership numbers.
type Participants struct {
	Resolved map[identifier.ID]struct{}
	Fallback map[string]struct{}
}

func newParticipants() *Participants {
	return &Participants{
		Resolved: make(map[identifier.ID]struct{}),
		Fallback: make(map[string]struct{}),
	}
}

// CollectParticipants scans every match row, both sides, and records each
// participant as resolved or fallback.
func CollectParticipants(matches []records.MatchRow, players *index.Players) *Participants {
	p := newParticipants()
	for _, m := range matches {
		p.add(m.RawWinner, players)
		p.add(m.RawLoser, players)
	}

	logging.Debug().
		Int("resolved", len(p.Resolved)).
		Int("fallback", len(p.Fallback)).
		Msg("Collected match participants")
	return p
}

func (p *Participants) add(raw string, players *index.Players) {
	if identifier.Normalize(raw).IsEmpty() {
		return
	}
	if m := players.Resolve(raw); !m.IsEmpty() {
		p.Resolved[m] = struct{}{}
		return
	}
	p.Fallback[raw] = struct{}{}
}

// HasResolved reports whether a membership number played.
func (p *Participants) HasResolved(membership identifier.ID) bool {
	if p == nil || membership.IsEmpty() {
		return false
	}
	_, ok := p.Resolved[membership]
	return ok
}

// HasFallback reports whether raw identifier text appeared unresolved.
func (p *Participants) HasFallback(raw string) bool {
	if p == nil || raw == "" {
		return false
	}
	_, ok := p.Fallback[raw]
	return ok
}

// Includes reports whether a roster entry played, either through its
// resolved membership number or through its raw ID text.
func (p *Participants) Includes(entry records.RosterEntry, membership identifier.ID) bool {
	return p.HasResolved(membership) ||
		p.HasFallback(entry.RawInternalID) ||
		p.HasFallback(entry.RawMembershipID)
}

// ResolvedList returns the resolved membership numbers, sorted.
func (p *Participants) ResolvedList() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.Resolved))
	for id := range p.Resolved {
		out = append(out, id.String())
	}
	sort.Strings(out)
	return out
}

// FallbackList returns the fallback keys, sorted.
func (p *Participants) FallbackList() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.Fallback))
	for raw := range p.Fallback {
		out = append(out, raw)
	}
	sort.Strings(out)
	return out
}

// Collisions returns fallback keys whose text is identical to a resolved
// membership number. The two sets are never merged; a collision means the
// same text was seen both as a resolvable and an unresolvable identifier.
func (p *Participants) Collisions() []string {
	if p == nil {
		return nil
	}
	var out []string
	for raw := range p.Fallback {
		if _, ok := p.Resolved[identifier.ID(raw)]; ok {
			out = append(out, raw)
		}
	}
	sort.Strings(out)
	return out
}
