package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// StarterTree is the dataset a fresh account begins with: two blank people
// the editor can fill in, no relationships yet.
func StarterTree() (map[string]any, error) {
	blankPerson := func() (map[string]any, error) {
		id, err := gonanoid.Generate("abcdefghijklmnopqrstuvwxyz0123456789", 6)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"id":       "p_" + id,
			"name":     "",
			"born":     "",
			"died":     "",
			"photo":    "",
			"location": map[string]any{"city": "", "region": "", "country": ""},
			"events":   []any{},
		}, nil
	}

	p1, err := blankPerson()
	if err != nil {
		return nil, err
	}
	p2, err := blankPerson()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"meta": map[string]any{
			"family_name": "My Family",
			"created_at":  time.Now().UTC().Format(time.RFC3339),
			"starter":     true,
		},
		"people":        []any{p1, p2},
		"relationships": []any{},
	}, nil
}

// SeedUserStarter writes the starter document for a new account. An existing
// family file is never overwritten.
func (r *Resolver) SeedUserStarter(uid int64) error {
	path := r.UserFamilyPath(uid)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	doc, err := StarterTree()
	if err != nil {
		return fmt.Errorf("failed to build starter tree: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal starter tree: %w", err)
	}

	return r.writeUserFile(uid, data)
}
