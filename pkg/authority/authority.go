// Package authority decides which source is consulted first for each output
// field. Resolution walks the sources of a field in descending priority and
// takes the first non-empty value.
package authority

import (
	"cmp"
	"path/filepath"
	"slices"

	"github.com/agentstation/tallysheet/pkg/types"
)

// Field names resolved through an authority chain.
const (
	FieldName   = "Name"
	FieldRating = "Rating"
)

// Authority determines which source is authoritative for each field
type Authority interface {
	// Find returns the highest priority authority for a field
	Find(fieldPath string, resourceType types.ResourceType) *Field

	// List returns all authorities for a resource type
	List(resourceType types.ResourceType) []Field

	// Ordered returns the sources for a field, highest priority first
	Ordered(fieldPath string, resourceType types.ResourceType) []types.SourceID
}

// Field defines source priority for a specific field
type Field struct {
	Path     string         `json:"path" yaml:"path"`         // e.g., "Name", "Rating"
	Source   types.SourceID `json:"source" yaml:"source"`     // Which source supplies it
	Priority int            `json:"priority" yaml:"priority"` // Priority (higher = more authoritative)
}

// authorities holds the field authorities per resource type
type authorities struct {
	matchAuthorities       []Field
	participantAuthorities []Field
}

// New creates an Authority with the standard configuration.
func New() Authority {
	return &authorities{
		matchAuthorities:       defaultMatchAuthorities(),
		participantAuthorities: defaultParticipantAuthorities(),
	}
}

// Custom creates an Authority from explicit field lists.
func Custom(match, participant []Field) Authority {
	return &authorities{
		matchAuthorities:       slices.Clone(match),
		participantAuthorities: slices.Clone(participant),
	}
}

// Find returns the authority configuration for a specific field
func (a *authorities) Find(fieldPath string, resourceType types.ResourceType) *Field {
	return ByField(fieldPath, a.List(resourceType))
}

// List returns all authorities for a resource type
func (a *authorities) List(resourceType types.ResourceType) []Field {
	switch resourceType {
	case types.ResourceTypeMatch:
		return a.matchAuthorities
	case types.ResourceTypeParticipant:
		return a.participantAuthorities
	default:
		return nil
	}
}

// Ordered returns every source configured for fieldPath, highest priority
// first. Ties keep declaration order. A source appears at most once.
func (a *authorities) Ordered(fieldPath string, resourceType types.ResourceType) []types.SourceID {
	var matched []Field
	for _, auth := range a.List(resourceType) {
		if MatchesPattern(fieldPath, auth.Path) {
			matched = append(matched, auth)
		}
	}
	slices.SortStableFunc(matched, func(x, y Field) int {
		return cmp.Compare(y.Priority, x.Priority)
	})

	out := make([]types.SourceID, 0, len(matched))
	for _, auth := range matched {
		if !slices.Contains(out, auth.Source) {
			out = append(out, auth.Source)
		}
	}
	return out
}

// ByField returns the highest priority authority for a given field path
func ByField(fieldPath string, authorities []Field) *Field {
	var bestMatch *Field
	var bestPriority int
	var bestMatchLength int

	for i, auth := range authorities {
		if MatchesPattern(fieldPath, auth.Path) {
			// Prioritize by: 1) priority, 2) pattern specificity (length), 3) order
			patternLength := len(auth.Path)
			if bestMatch == nil || auth.Priority > bestPriority ||
				(auth.Priority == bestPriority && patternLength > bestMatchLength) {
				bestMatch = &authorities[i]
				bestPriority = auth.Priority
				bestMatchLength = patternLength
			}
		}
	}

	return bestMatch
}

// MatchesPattern checks if a field path matches a pattern (supports * wildcards)
func MatchesPattern(fieldPath, pattern string) bool {
	if fieldPath == pattern {
		return true
	}

	if len(pattern) > 0 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(fieldPath) >= len(prefix) && fieldPath[:len(prefix)] == prefix
	}

	matched, err := filepath.Match(pattern, fieldPath)
	if err != nil {
		return false
	}
	return matched
}

// defaultMatchAuthorities returns the field authorities for match rows
func defaultMatchAuthorities() []Field {
	return []Field{
		// Names - the registry is the identity of record, the roster fills gaps
		{Path: FieldName, Source: types.RegistryID, Priority: 100},
		{Path: FieldName, Source: types.RosterID, Priority: 90},
		{Path: FieldName, Source: types.RosterInternalID, Priority: 80},
	}
}

// defaultParticipantAuthorities returns the field authorities for rating rows
func defaultParticipantAuthorities() []Field {
	return []Field{
		// Names always come from the roster entry being reported
		{Path: FieldName, Source: types.RosterID, Priority: 100},

		// Ratings - registry estimate first, then the auxiliary roster
		{Path: FieldRating, Source: types.RegistryID, Priority: 100},
		{Path: FieldRating, Source: types.RatingsID, Priority: 90},
	}
}
