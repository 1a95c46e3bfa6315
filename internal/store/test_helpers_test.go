package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/biostudy/internal/seed"
	"github.com/roach88/biostudy/internal/study"
)

// createTestStore creates a new store with the schema applied in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() failed: %v", err)
	}
	return s
}

// createSeededStore creates a test store reset with the default dataset.
func createSeededStore(t *testing.T) (*Store, SeedResult) {
	t.Helper()
	s := createTestStore(t)

	ds, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default() failed: %v", err)
	}
	res, err := s.ResetSampleData(context.Background(), ds)
	if err != nil {
		t.Fatalf("ResetSampleData() failed: %v", err)
	}
	return s, res
}

// createTestPatient builds a valid patient with the given name and age.
func createTestPatient(name string, age int64) study.Patient {
	return study.Patient{
		FullName:       name,
		Age:            ptr(age),
		Gender:         ptr(study.GenderFemale),
		EnrollmentDate: "2025-05-01",
	}
}

// mustDefaultDataset returns the embedded demo dataset.
func mustDefaultDataset(t *testing.T) study.Dataset {
	t.Helper()
	ds, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default() failed: %v", err)
	}
	return ds
}

// ptr returns a pointer to v, for populating nullable columns.
func ptr[T any](v T) *T { return &v }
