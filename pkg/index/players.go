package index

import (
	"github.com/agentstation/tallysheet/pkg/identifier"
	"github.com/agentstation/tallysheet/pkg/logging"
	"github.com/agentstation/tallysheet/pkg/records"
)

// Players holds the three roster lookups:
//
//   - key to membership: internal IDs and roster membership identifiers,
//     both pointing at the entry's resolved membership number
//   - membership to roster entry
//   - internal ID to roster entry
//
// A key may map to the empty membership number. That records a player the
// roster knows by internal ID only, which is different from a key the roster
// has never seen.
type Players struct {
	idToMembership     map[identifier.ID]identifier.ID
	membershipToRoster map[identifier.ID]records.RosterEntry
	idToRoster         map[identifier.ID]records.RosterEntry
	overwrites         int
}

// NewPlayers indexes a roster. When an entry's membership identifier is known
// to the registry, the registry's canonical number is used in preference to
// the roster's own value.
func NewPlayers(roster []records.RosterEntry, registry *Registry) *Players {
	p := &Players{
		idToMembership:     make(map[identifier.ID]identifier.ID, len(roster)*2),
		membershipToRoster: make(map[identifier.ID]records.RosterEntry, len(roster)),
		idToRoster:         make(map[identifier.ID]records.RosterEntry, len(roster)),
	}

	for _, entry := range roster {
		internalID := identifier.Normalize(entry.InternalID)
		memberKey := identifier.Normalize(entry.MembershipID)

		resolved := memberKey
		if rec, ok := registry.Get(memberKey); ok {
			resolved = rec.MembershipNumber
		}

		if !internalID.IsEmpty() {
			p.setMembership(internalID, resolved)
			if _, exists := p.idToRoster[internalID]; exists {
				p.overwrites++
			}
			p.idToRoster[internalID] = entry
		}
		if !memberKey.IsEmpty() {
			p.setMembership(memberKey, resolved)
		}
		if !resolved.IsEmpty() {
			if _, exists := p.membershipToRoster[resolved]; exists {
				p.overwrites++
				logging.Debug().
					Str("membership", resolved.String()).
					Str("internal_id", internalID.String()).
					Msg("Duplicate roster membership, keeping the later entry")
			}
			p.membershipToRoster[resolved] = entry
		}
	}

	return p
}

func (p *Players) setMembership(key, membership identifier.ID) {
	if prev, exists := p.idToMembership[key]; exists && prev != membership {
		p.overwrites++
	}
	p.idToMembership[key] = membership
}

// MembershipFor returns the membership number registered for a key. The
// boolean reports whether the key is known; a known key may still map to
// the empty membership number.
func (p *Players) MembershipFor(key identifier.ID) (identifier.ID, bool) {
	if p == nil || key.IsEmpty() {
		return "", false
	}
	m, ok := p.idToMembership[key]
	return m, ok
}

// ByMembership returns the roster entry for a resolved membership number.
func (p *Players) ByMembership(membership identifier.ID) (records.RosterEntry, bool) {
	if p == nil || membership.IsEmpty() {
		return records.RosterEntry{}, false
	}
	e, ok := p.membershipToRoster[membership]
	return e, ok
}

// ByInternalID returns the roster entry for an internal player ID.
func (p *Players) ByInternalID(id identifier.ID) (records.RosterEntry, bool) {
	if p == nil || id.IsEmpty() {
		return records.RosterEntry{}, false
	}
	e, ok := p.idToRoster[id]
	return e, ok
}

// Resolve maps a raw identifier from a match row to a membership number.
//
// A key known to the roster resolves to whatever the roster registered for
// it, including the empty number. An unknown key that is itself a canonical
// number is taken as an unregistered membership number. Anything else is
// unresolvable and yields the empty ID.
func (p *Players) Resolve(raw any) identifier.ID {
	key := identifier.Normalize(raw)
	if key.IsEmpty() {
		return ""
	}
	if m, ok := p.MembershipFor(key); ok {
		return m
	}
	if key.IsNumeric() {
		return key
	}
	return ""
}

// ResolveEntry resolves a roster entry's membership number, trying its
// internal ID first and then its membership field.
func (p *Players) ResolveEntry(entry records.RosterEntry) identifier.ID {
	if m := p.Resolve(entry.InternalID); !m.IsEmpty() {
		return m
	}
	return p.Resolve(entry.MembershipID)
}

// Len returns the number of roster entries indexed by internal ID.
func (p *Players) Len() int {
	if p == nil {
		return 0
	}
	return len(p.idToRoster)
}

// Overwrites returns how many table slots were replaced by a later entry.
func (p *Players) Overwrites() int {
	if p == nil {
		return 0
	}
	return p.overwrites
}
