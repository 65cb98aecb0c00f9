package family

// Candidate key lists for each logical field, in priority order. Historical
// exports named these fields differently; the first present value wins.
var (
	parentKeys = []string{"parentId", "parent", "sourceId", "source"}
	childKeys  = []string{"childId", "child", "targetId", "target"}

	peopleKeys       = []string{"people", "persons", "nodes"}
	relationshipKeys = []string{"relationships", "edges", "links"}
)

// NormalizeRelationships canonicalizes arbitrary relationship records into
// parentId/childId edges. Input that is not a sequence yields an empty slice,
// non-mapping entries are skipped, and entries missing either endpoint after
// fallback resolution are dropped. Upstream datasets are imported from
// imperfect sources, so partial edges are tolerated rather than rejected.
//
// Each output edge is a shallow copy of its source record with parentId and
// childId set to the stringified resolved values. Input order is preserved;
// duplicate or contradictory edges are kept as-is.
func NormalizeRelationships(input any) []Relationship {
	out := make([]Relationship, 0)

	items, ok := asSlice(input)
	if !ok {
		return out
	}

	for _, item := range items {
		rec, ok := asMap(item)
		if !ok {
			continue
		}

		parent, ok := firstPresent(rec, parentKeys)
		if !ok {
			continue
		}
		child, ok := firstPresent(rec, childKeys)
		if !ok {
			continue
		}

		edge := make(Relationship, len(rec))
		for k, v := range rec {
			edge[k] = v
		}
		edge["parentId"] = parent
		edge["childId"] = child
		out = append(out, edge)
	}

	return out
}

// NormalizeTree canonicalizes a whole raw document into a Dataset. Top-level
// aliases are resolved in priority order; an alias that is absent or empty
// falls through to the next one, matching how older exports layered keys on
// top of each other. A non-empty alias value terminates resolution even when
// it is not a sequence: a document with a garbage "people" value does not get
// its people from "nodes", it gets none. Malformed values become empty
// slices, never errors.
func NormalizeTree(payload map[string]any) Dataset {
	ds := Dataset{
		People:        make([]Person, 0),
		Relationships: nil,
	}

	for _, key := range peopleKeys {
		v, ok := payload[key]
		if !ok || emptyValue(v) {
			continue
		}
		if items, ok := asSlice(v); ok {
			for _, item := range items {
				if p, ok := asMap(item); ok {
					ds.People = append(ds.People, Person(p))
				}
			}
		}
		break
	}

	var rels any
	for _, key := range relationshipKeys {
		v, ok := payload[key]
		if !ok || emptyValue(v) {
			continue
		}
		rels = v
		break
	}
	ds.Relationships = NormalizeRelationships(rels)

	return ds
}

// emptyValue reports whether a raw alias value counts as absent for
// resolution: nil, empty strings, and empty containers fall through to the
// next alias, everything else claims the slot.
func emptyValue(v any) bool {
	if items, ok := asSlice(v); ok {
		return len(items) == 0
	}
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	default:
		return false
	}
}

// firstPresent returns the stringified value of the first candidate key whose
// value is present: nil and "" count as absent, but numeric zero is a valid
// id and counts as present.
func firstPresent(rec map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		s := stringValue(v)
		if s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

// asSlice accepts the concrete sequence shapes that reach the normalizer:
// decoded JSON ([]any) and already-canonical slices being re-normalized.
func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []Person:
		items := make([]any, len(t))
		for i, p := range t {
			items[i] = map[string]any(p)
		}
		return items, true
	case []Relationship:
		items := make([]any, len(t))
		for i, r := range t {
			items[i] = map[string]any(r)
		}
		return items, true
	case []map[string]any:
		items := make([]any, len(t))
		for i, m := range t {
			items[i] = m
		}
		return items, true
	default:
		return nil, false
	}
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Person:
		return t, true
	case Relationship:
		return t, true
	default:
		return nil, false
	}
}
