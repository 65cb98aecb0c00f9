package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lineagemap/backend/pkg/family"
)

// DefaultSample backs previews and logged-out fallbacks.
const DefaultSample = "stark"

// allowedSamples is the fixed allow-list for built-in demo datasets. Ids
// outside this set are rejected, never silently substituted.
var allowedSamples = map[string]struct{}{
	"kennedy":    {},
	"windsor":    {},
	"kardashian": {},
	"jackson":    {},
	"ambani":     {},
	"stark":      {},
	"lannister":  {},
	"sen":        {},
	"gupta":      {},
}

// NotFoundError reports an identity that resolved to no readable document.
// Searched carries every candidate path tried, so "never existed" can be told
// apart from a deployment with a missing disk mount.
type NotFoundError struct {
	ID       string
	Searched []string
}

func (e *NotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("dataset %q not found", e.ID)
	}
	return fmt.Sprintf("dataset %q not found, looked in: %s", e.ID, strings.Join(e.Searched, ", "))
}

// EmptyDatasetError reports a document that was found but normalized to zero
// people. Distinct from NotFoundError: the file exists but is unusable.
type EmptyDatasetError struct {
	ID string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("dataset %q loaded but produced 0 people", e.ID)
}

// Config lists the storage roots a Resolver searches, in priority order.
// Resolution order is a parameter here, not ambient process state.
type Config struct {
	// DataDir is the persistent root: per-user family files and seeded
	// sample copies live under it.
	DataDir string
	// ShippedDir holds the canonical sample datasets shipped with the app.
	ShippedDir string
	// LegacyDirs are older static locations, searched last.
	LegacyDirs []string
}

// Resolver locates and loads the backing JSON document for a logical
// identity: a built-in sample name, a numeric user id, or a named family
// file. Every load reads the whole document fresh; datasets are never cached
// or mutated in place.
type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// AllowedSample trims, lowercases, and checks id against the allow-list.
func AllowedSample(id string) (string, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	_, ok := allowedSamples[id]
	return id, ok
}

// SampleIDs returns the allow-list in stable order for listing endpoints.
func SampleIDs() []string {
	ids := make([]string, 0, len(allowedSamples))
	for id := range allowedSamples {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Resolver) samplesDiskDir() string {
	return filepath.Join(r.cfg.DataDir, "samples")
}

func (r *Resolver) samplePaths(id string) []string {
	name := id + ".json"
	paths := []string{
		filepath.Join(r.samplesDiskDir(), name),
		filepath.Join(r.cfg.ShippedDir, name),
	}
	for _, dir := range r.cfg.LegacyDirs {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

// SampleTree loads and normalizes a built-in sample. Candidate locations are
// searched in priority order and the first existing file wins. A sample that
// normalizes to zero people is surfaced as EmptyDatasetError rather than
// served: a broken demo dataset must not render as an empty tree.
func (r *Resolver) SampleTree(id string) (family.Dataset, error) {
	id, ok := AllowedSample(id)
	if !ok {
		return family.Dataset{}, &NotFoundError{ID: id}
	}

	paths := r.samplePaths(id)
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		ds, err := r.loadFile(path)
		if err != nil {
			return family.Dataset{}, fmt.Errorf("failed to load sample %q: %w", id, err)
		}
		if len(ds.People) == 0 {
			return family.Dataset{}, &EmptyDatasetError{ID: id}
		}
		return ds, nil
	}

	return family.Dataset{}, &NotFoundError{ID: id, Searched: paths}
}

// UserFamilyPath is the deterministic location of a user's family document.
func (r *Resolver) UserFamilyPath(uid int64) string {
	return filepath.Join(r.cfg.DataDir, "families", strconv.FormatInt(uid, 10), "family.json")
}

// UserTree loads a user's own dataset. A user without a family file yet gets
// the default sample instead of an error.
func (r *Resolver) UserTree(uid int64) (family.Dataset, error) {
	path := r.UserFamilyPath(uid)
	if _, err := os.Stat(path); err != nil {
		return r.SampleTree(DefaultSample)
	}
	return r.loadFile(path)
}

// SaveUserTree replaces the user's backing document atomically with the
// canonical form of ds. Readers only ever observe a complete document.
func (r *Resolver) SaveUserTree(uid int64, ds family.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal family tree: %w", err)
	}
	return r.writeUserFile(uid, data)
}

func (r *Resolver) writeUserFile(uid int64, data []byte) error {
	path := r.UserFamilyPath(uid)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create family dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write family tree: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace family tree: %w", err)
	}
	return nil
}

// NamedTree loads a family document by file name from the persistent root,
// preferring the family_<name>.json convention over bare <name>.json.
func (r *Resolver) NamedTree(name string) (family.Dataset, error) {
	safe := safeFamilyName(name)

	paths := []string{
		filepath.Join(r.cfg.DataDir, "family_"+safe+".json"),
		filepath.Join(r.cfg.DataDir, safe+".json"),
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return r.loadFile(path)
	}

	return family.Dataset{}, &NotFoundError{ID: name, Searched: paths}
}

func (r *Resolver) loadFile(path string) (family.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return family.Dataset{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return family.Dataset{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return family.NormalizeTree(payload), nil
}

// safeFamilyName strips everything but lowercase alphanumerics, hyphens, and
// underscores so a requested name can never escape the data directory.
func safeFamilyName(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, c := range name {
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
