package gateway

// Collection names used by the portal.
const (
	CollectionEvents        = "events"
	CollectionIncharges     = "student_incharges"
	CollectionRegistrations = "event_registrations"
	CollectionMessages      = "messages"
	CollectionProfiles      = "profiles"
)

// ConstraintUserEvent is the uniqueness constraint on one registration per
// (user, event) pair.
const ConstraintUserEvent = "unique_user_event"

// Unique declares a named uniqueness constraint over a set of document
// fields. Inserting a second document with the same field values fails with
// a constraint_violation naming the constraint.
type Unique struct {
	Name   string
	Fields []string
}

// Schema maps collection names to their uniqueness constraints. Collections
// without constraints need no entry.
type Schema map[string][]Unique

// PortalSchema declares the constraints the symposium store enforces.
func PortalSchema() Schema {
	return Schema{
		CollectionRegistrations: {
			{Name: ConstraintUserEvent, Fields: []string{"user_id", "event_id"}},
		},
	}
}
