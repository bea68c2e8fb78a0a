package store

import "go.mongodb.org/mongo-driver/v2/bson"

// FieldPolicy says who may set a field through an update patch.
type FieldPolicy int

const (
	// EditNever fields are immutable after creation.
	EditNever FieldPolicy = iota
	// EditSystem fields are only touched by internal flows (vote ledgers,
	// scores, reputation), never by a user-submitted edit.
	EditSystem
	// EditUser fields may be set by both users and internal flows.
	EditUser
)

// ApplyPatch builds the update document from a raw patch by walking the
// entity's field table. Fields absent from the table are dropped, as are
// nil values and anything the requester's role is not allowed to set.
func ApplyPatch(table map[string]FieldPolicy, patch map[string]any, userEditing bool) bson.M {
	set := bson.M{}

	for field, policy := range table {
		value, ok := patch[field]
		if !ok || value == nil {
			continue
		}

		switch policy {
		case EditNever:
			continue
		case EditSystem:
			if userEditing {
				continue
			}
		}

		set[field] = value
	}

	return set
}
