package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lineagemap/backend/pkg/family"
)

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func testResolver(t *testing.T) (*Resolver, Config) {
	t.Helper()
	cfg := Config{
		DataDir:    t.TempDir(),
		ShippedDir: t.TempDir(),
		LegacyDirs: []string{t.TempDir()},
	}
	return NewResolver(cfg), cfg
}

const starkJSON = `{
	"people": [
		{"id": "eddard", "name": "Eddard Stark"},
		{"id": "catelyn", "name": "Catelyn Stark"},
		{"id": "robb", "name": "Robb Stark"}
	],
	"relationships": [
		{"parent": "eddard", "child": "robb"},
		{"parent": "catelyn", "child": "robb"}
	]
}`

func TestSampleTree(t *testing.T) {
	r, cfg := testResolver(t)
	writeJSON(t, filepath.Join(cfg.ShippedDir, "stark.json"), starkJSON)

	ds, err := r.SampleTree("stark")
	if err != nil {
		t.Fatalf("SampleTree: %v", err)
	}
	if len(ds.People) != 3 {
		t.Fatalf("got %d people, want 3", len(ds.People))
	}
	if len(ds.Relationships) != 2 {
		t.Fatalf("got %d relationships, want 2", len(ds.Relationships))
	}
	if ds.Relationships[0].ParentID() != "eddard" || ds.Relationships[0].ChildID() != "robb" {
		t.Fatalf("edges not normalized: %v", ds.Relationships[0])
	}
}

func TestSampleTreeTrimsAndLowercases(t *testing.T) {
	r, cfg := testResolver(t)
	writeJSON(t, filepath.Join(cfg.ShippedDir, "stark.json"), starkJSON)

	if _, err := r.SampleTree("  Stark "); err != nil {
		t.Fatalf("SampleTree: %v", err)
	}
}

func TestSampleTreePersistentCopyWins(t *testing.T) {
	r, cfg := testResolver(t)
	writeJSON(t, filepath.Join(cfg.ShippedDir, "stark.json"), starkJSON)
	writeJSON(t, filepath.Join(cfg.DataDir, "samples", "stark.json"),
		`{"people": [{"id": "solo"}]}`)

	ds, err := r.SampleTree("stark")
	if err != nil {
		t.Fatalf("SampleTree: %v", err)
	}
	if len(ds.People) != 1 || ds.People[0].ID() != "solo" {
		t.Fatalf("persistent copy must win, got %v", ds.People)
	}
}

func TestSampleTreeLegacyFallback(t *testing.T) {
	r, cfg := testResolver(t)
	writeJSON(t, filepath.Join(cfg.LegacyDirs[0], "stark.json"), starkJSON)

	if _, err := r.SampleTree("stark"); err != nil {
		t.Fatalf("SampleTree: %v", err)
	}
}

func TestSampleTreeOutsideAllowList(t *testing.T) {
	r, _ := testResolver(t)

	_, err := r.SampleTree("targaryen")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(nf.Searched) != 0 {
		t.Fatalf("disallowed ids must not leak search paths, got %v", nf.Searched)
	}
}

func TestSampleTreeMissingEverywhere(t *testing.T) {
	r, _ := testResolver(t)

	_, err := r.SampleTree("stark")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(nf.Searched) != 3 {
		t.Fatalf("expected 3 searched paths, got %v", nf.Searched)
	}
	if !strings.Contains(nf.Error(), "looked in") {
		t.Fatalf("error must carry diagnostics: %v", nf)
	}
}

func TestSampleTreeZeroPeople(t *testing.T) {
	r, cfg := testResolver(t)
	writeJSON(t, filepath.Join(cfg.ShippedDir, "stark.json"),
		`{"persons": [], "relationships": []}`)

	_, err := r.SampleTree("stark")
	var empty *EmptyDatasetError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyDatasetError, got %v", err)
	}
}

func TestUserTreeFallsBackToDefaultSample(t *testing.T) {
	r, cfg := testResolver(t)
	writeJSON(t, filepath.Join(cfg.ShippedDir, "stark.json"), starkJSON)

	ds, err := r.UserTree(42)
	if err != nil {
		t.Fatalf("UserTree: %v", err)
	}
	if len(ds.People) != 3 {
		t.Fatalf("expected default sample fallback, got %d people", len(ds.People))
	}
}

func TestSaveAndLoadUserTree(t *testing.T) {
	r, _ := testResolver(t)

	saved := family.NormalizeTree(map[string]any{
		"people": []any{map[string]any{"id": "me", "name": "Me"}},
		"links":  []any{map[string]any{"source": "me", "target": "kid"}},
	})
	if err := r.SaveUserTree(7, saved); err != nil {
		t.Fatalf("SaveUserTree: %v", err)
	}

	ds, err := r.UserTree(7)
	if err != nil {
		t.Fatalf("UserTree: %v", err)
	}
	if len(ds.People) != 1 || ds.People[0].ID() != "me" {
		t.Fatalf("unexpected people: %v", ds.People)
	}
	if len(ds.Relationships) != 1 || ds.Relationships[0].ChildID() != "kid" {
		t.Fatalf("unexpected relationships: %v", ds.Relationships)
	}

	// No temp file should survive the atomic replace.
	if _, err := os.Stat(r.UserFamilyPath(7) + ".tmp"); err == nil {
		t.Fatal("temp file left behind")
	}
}

func TestNamedTreeConventions(t *testing.T) {
	r, cfg := testResolver(t)
	writeJSON(t, filepath.Join(cfg.DataDir, "family_smith.json"),
		`{"people": [{"id": "a"}]}`)
	writeJSON(t, filepath.Join(cfg.DataDir, "jones.json"),
		`{"people": [{"id": "b"}]}`)

	if _, err := r.NamedTree("Smith"); err != nil {
		t.Fatalf("prefixed convention: %v", err)
	}
	if _, err := r.NamedTree("jones"); err != nil {
		t.Fatalf("bare convention: %v", err)
	}

	_, err := r.NamedTree("../../etc/passwd")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for traversal attempt, got %v", err)
	}
	for _, p := range nf.Searched {
		if strings.Contains(p, "..") {
			t.Fatalf("unsafe path searched: %s", p)
		}
	}
}

func TestSeedSamples(t *testing.T) {
	r, cfg := testResolver(t)
	writeJSON(t, filepath.Join(cfg.ShippedDir, "stark.json"), starkJSON)
	writeJSON(t, filepath.Join(cfg.ShippedDir, "notes.txt"), "ignore me")

	if err := r.SeedSamples(); err != nil {
		t.Fatalf("SeedSamples: %v", err)
	}

	seeded := filepath.Join(cfg.DataDir, "samples", "stark.json")
	if _, err := os.Stat(seeded); err != nil {
		t.Fatalf("sample not seeded: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "samples", "notes.txt")); err == nil {
		t.Fatal("non-json file seeded")
	}

	// Seeding again must not overwrite an operator-edited copy.
	writeJSON(t, seeded, `{"people": [{"id": "edited"}]}`)
	if err := r.SeedSamples(); err != nil {
		t.Fatalf("SeedSamples: %v", err)
	}
	ds, err := r.SampleTree("stark")
	if err != nil {
		t.Fatalf("SampleTree: %v", err)
	}
	if len(ds.People) != 1 || ds.People[0].ID() != "edited" {
		t.Fatal("seeded copy was overwritten")
	}
}

func TestStarterTree(t *testing.T) {
	raw, err := StarterTree()
	if err != nil {
		t.Fatalf("StarterTree: %v", err)
	}

	ds := family.NormalizeTree(raw)
	if len(ds.People) != 2 {
		t.Fatalf("starter must have 2 people, got %d", len(ds.People))
	}
	if len(ds.Relationships) != 0 {
		t.Fatalf("starter must have no relationships, got %d", len(ds.Relationships))
	}
	if ds.People[0].ID() == ds.People[1].ID() {
		t.Fatal("starter people ids must be unique")
	}
	for _, p := range ds.People {
		if !strings.HasPrefix(p.ID(), "p_") {
			t.Fatalf("unexpected id shape: %q", p.ID())
		}
	}
}
