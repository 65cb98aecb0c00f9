package store

import (
	"encoding/json"
	"errors"
	"testing"

	pgxv5 "github.com/jackc/pgx/v5"
)

func TestDefaultState(t *testing.T) {
	var state map[string]any
	if err := json.Unmarshal([]byte(DefaultState), &state); err != nil {
		t.Fatalf("DefaultState is not valid JSON: %v", err)
	}
	if state["family_id"] != "me" {
		t.Fatalf("got family_id %v, want \"me\"", state["family_id"])
	}
}

type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error {
	return r.err
}

func TestScanUserNoRows(t *testing.T) {
	_, err := scanUser(errRow{err: pgxv5.ErrNoRows})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
