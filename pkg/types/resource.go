package types

// ResourceType identifies the kind of output record whose fields are tracked.
type ResourceType string

const (
	// ResourceTypeMatch is a row of the Match Results sheet.
	ResourceTypeMatch ResourceType = "match"

	// ResourceTypeParticipant is a row of the Estimated Ratings sheet.
	ResourceTypeParticipant ResourceType = "participant"
)

// String returns the string representation of a resource type.
func (rt ResourceType) String() string {
	return string(rt)
}
