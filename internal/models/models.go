// Package models defines the value types that flow through the tagging
// simulation: users, resources, tags, and the tagging events that link them.
package models

// User is a simulated participant. Community marks membership in the dense
// community; the same fact is also encoded in the ID prefix.
type User struct {
	ID        string `json:"id"`
	Community bool   `json:"community"`
}

// Resource is an opaque item that users tag.
type Resource string

// Tag is an opaque label applied to a resource.
type Tag string

// TaggingEvent records that User applied Tag to Resource.
type TaggingEvent struct {
	User     string   `json:"user"`
	Resource Resource `json:"resource"`
	Tag      Tag      `json:"tag"`
}

// Key returns the co-occurrence key the event aggregates under.
func (e TaggingEvent) Key() CoOccurrenceKey {
	return CoOccurrenceKey{Resource: e.Resource, Tag: e.Tag}
}

// CoOccurrenceKey groups users who applied the same tag to the same resource.
type CoOccurrenceKey struct {
	Resource Resource
	Tag      Tag
}

// String renders the key as "resource|tag" for logs.
func (k CoOccurrenceKey) String() string {
	return string(k.Resource) + "|" + string(k.Tag)
}
