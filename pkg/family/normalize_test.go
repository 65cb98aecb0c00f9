package family

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNormalizeRelationshipsKeyConventions(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
	}{
		{"ParentIDChildID", map[string]any{"parentId": "a", "childId": "b"}},
		{"ParentChild", map[string]any{"parent": "a", "child": "b"}},
		{"SourceIDTargetID", map[string]any{"sourceId": "a", "targetId": "b"}},
		{"SourceTarget", map[string]any{"source": "a", "target": "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := NormalizeRelationships([]any{tc.in})
			if len(out) != 1 {
				t.Fatalf("expected 1 edge, got %d", len(out))
			}
			if out[0].ParentID() != "a" || out[0].ChildID() != "b" {
				t.Fatalf("got parent=%q child=%q, want a/b", out[0].ParentID(), out[0].ChildID())
			}
		})
	}
}

func TestNormalizeRelationshipsPriorityOrder(t *testing.T) {
	out := NormalizeRelationships([]any{
		map[string]any{"parentId": "p1", "source": "p2", "childId": "c1", "target": "c2"},
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(out))
	}
	if out[0].ParentID() != "p1" || out[0].ChildID() != "c1" {
		t.Fatalf("higher-priority keys must win, got parent=%q child=%q", out[0].ParentID(), out[0].ChildID())
	}
}

func TestNormalizeRelationshipsDropsPartialEdges(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"MissingChild", []any{map[string]any{"parent": "a"}}, 0},
		{"MissingParent", []any{map[string]any{"child": "b"}}, 0},
		{"NilEndpoints", []any{map[string]any{"parent": nil, "child": "b"}}, 0},
		{"EmptyStringEndpoint", []any{map[string]any{"parent": "", "child": "b"}}, 0},
		{"NonMappingEntry", []any{"not an edge", 42}, 0},
		{"MixedValidInvalid", []any{map[string]any{"parent": "a", "child": "b"}, "junk"}, 1},
		{"NotASequence", map[string]any{"parent": "a"}, 0},
		{"Nil", nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := NormalizeRelationships(tc.in)
			if out == nil {
				t.Fatal("result must never be nil")
			}
			if len(out) != tc.want {
				t.Fatalf("got %d edges, want %d", len(out), tc.want)
			}
		})
	}
}

func TestNormalizeRelationshipsStringifiesNumericIDs(t *testing.T) {
	out := NormalizeRelationships([]any{
		map[string]any{"parent": float64(1), "child": float64(2)},
		map[string]any{"parent": float64(0), "child": "c"},
	})
	if len(out) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(out))
	}
	if out[0].ParentID() != "1" || out[0].ChildID() != "2" {
		t.Fatalf("numeric ids must stringify without decimals, got %q/%q", out[0].ParentID(), out[0].ChildID())
	}
	if out[1].ParentID() != "0" {
		t.Fatalf("numeric zero is a valid id, got %q", out[1].ParentID())
	}
}

func TestNormalizeRelationshipsPreservesExtraKeys(t *testing.T) {
	src := map[string]any{"source": "a", "target": "b", "kind": "adoptive"}
	out := NormalizeRelationships([]any{src})
	if len(out) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(out))
	}
	if out[0]["kind"] != "adoptive" {
		t.Fatalf("extra keys must be preserved, got %v", out[0]["kind"])
	}
	if src["parentId"] != nil {
		t.Fatal("normalization must not mutate the input record")
	}
}

func TestNormalizeTreeAliases(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		wantPeople int
		wantRels   int
	}{
		{
			name: "Canonical",
			payload: map[string]any{
				"people":        []any{map[string]any{"id": "a"}},
				"relationships": []any{map[string]any{"parentId": "a", "childId": "b"}},
			},
			wantPeople: 1,
			wantRels:   1,
		},
		{
			name: "NodesAndLinks",
			payload: map[string]any{
				"nodes": []any{map[string]any{"id": "a"}},
				"links": []any{map[string]any{"source": "a", "target": "b"}},
			},
			wantPeople: 1,
			wantRels:   1,
		},
		{
			name: "PersonsAndEdges",
			payload: map[string]any{
				"persons": []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}},
				"edges":   []any{map[string]any{"sourceId": "a", "targetId": "b"}},
			},
			wantPeople: 2,
			wantRels:   1,
		},
		{
			name: "EmptyAliasFallsThrough",
			payload: map[string]any{
				"people": []any{},
				"nodes":  []any{map[string]any{"id": "a"}},
			},
			wantPeople: 1,
		},
		{
			name:       "MalformedPeople",
			payload:    map[string]any{"people": "oops"},
			wantPeople: 0,
		},
		{
			name: "MalformedPeopleClaimsSlot",
			payload: map[string]any{
				"people": "oops",
				"nodes":  []any{map[string]any{"id": "a"}},
			},
			wantPeople: 0,
		},
		{
			name: "MalformedRelationshipsClaimSlot",
			payload: map[string]any{
				"people":        []any{map[string]any{"id": "a"}},
				"relationships": 5.0,
				"links":         []any{map[string]any{"source": "a", "target": "b"}},
			},
			wantPeople: 1,
			wantRels:   0,
		},
		{
			name: "FalsyAliasFallsThrough",
			payload: map[string]any{
				"people":  "",
				"persons": nil,
				"nodes":   []any{map[string]any{"id": "a"}},
			},
			wantPeople: 1,
		},
		{
			name:       "Empty",
			payload:    map[string]any{},
			wantPeople: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds := NormalizeTree(tc.payload)
			if ds.People == nil || ds.Relationships == nil {
				t.Fatal("people and relationships must never be nil")
			}
			if len(ds.People) != tc.wantPeople {
				t.Fatalf("got %d people, want %d", len(ds.People), tc.wantPeople)
			}
			if len(ds.Relationships) != tc.wantRels {
				t.Fatalf("got %d relationships, want %d", len(ds.Relationships), tc.wantRels)
			}
		})
	}
}

func TestNormalizeTreeIdempotent(t *testing.T) {
	raw := map[string]any{
		"nodes": []any{
			map[string]any{"id": float64(1), "name": "Ada", "events": []any{"born"}},
			map[string]any{"id": "2", "name": "Ben"},
		},
		"links": []any{
			map[string]any{"source": float64(1), "target": "2", "kind": "bio"},
		},
	}

	first := NormalizeTree(raw)

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var roundTrip map[string]any
	if err := json.Unmarshal(firstJSON, &roundTrip); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	second := NormalizeTree(roundTrip)
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("normalization is not idempotent:\nfirst:  %s\nsecond: %s", firstJSON, secondJSON)
	}
}
