package family

import (
	"strconv"
)

// Person is one individual in a family dataset. Source documents are
// hand-authored and use loose schemas, so a person is kept as the raw JSON
// mapping it arrived as: unknown keys (events, locations, custom metadata)
// pass through untouched and missing keys are never an error.
//
// Typical keys: id, name, born, died, photo, location, events.
type Person map[string]any

// Relationship is a directed parent -> child edge. After normalization the
// mapping always carries string-typed "parentId" and "childId" keys; any
// other keys from the source record are preserved as-is.
type Relationship map[string]any

// Dataset is the canonical unit all views operate on. People is never nil
// after normalization, and Relationships has always been passed through
// NormalizeRelationships.
type Dataset struct {
	People        []Person       `json:"people"`
	Relationships []Relationship `json:"relationships"`
}

// ID returns the person's identity in string form. Some sources supply
// numeric ids, so the value is coerced before any comparison against
// relationship endpoints.
func (p Person) ID() string {
	return stringValue(p["id"])
}

// Name returns the display name, or "" when absent.
func (p Person) Name() string {
	return stringValue(p["name"])
}

// Photo returns the photo reference, or "" when absent.
func (p Person) Photo() string {
	return stringValue(p["photo"])
}

// ParentID returns the canonical parent endpoint of the edge.
func (r Relationship) ParentID() string {
	return stringValue(r["parentId"])
}

// ChildID returns the canonical child endpoint of the edge.
func (r Relationship) ChildID() string {
	return stringValue(r["childId"])
}

// stringValue coerces a raw JSON value into its string form. JSON numbers
// decode as float64, so integral values must render without a trailing ".0"
// to stay comparable with string ids from other sources.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
