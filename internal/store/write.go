package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/biostudy/internal/study"
)

// SeedResult holds the identities assigned by ResetSampleData, in dataset order.
type SeedResult struct {
	PatientIDs []int64 `json:"patient_ids"`
	VisitIDs   []int64 `json:"visit_ids"`
	SampleIDs  []int64 `json:"sample_ids"`
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	insertPatientSQL = `
		INSERT INTO Patients (full_name, age, gender, enrollment_date)
		VALUES (?, ?, ?, ?)
	`
	insertVisitSQL = `
		INSERT INTO Clinical_Visits
		(patient_id, visit_date, systolic_bp, diastolic_bp, blood_glucose_mmol_l, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	insertSampleSQL = `
		INSERT INTO Samples (patient_id, collection_date, sample_type, storage_location)
		VALUES (?, ?, ?, ?)
	`
)

// ResetSampleData deletes every row from Samples, Clinical_Visits and
// Patients (children first) and inserts ds in their place, all in one
// transaction. Visits and samples are linked to the identities assigned
// to ds.Patients.
//
// This is destructive and meant for demo and test resets only.
// AUTOINCREMENT identities keep counting up across resets.
func (s *Store) ResetSampleData(ctx context.Context, ds study.Dataset) (SeedResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SeedResult{}, fmt.Errorf("reset sample data: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"Samples", "Clinical_Visits", "Patients"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return SeedResult{}, fmt.Errorf("reset sample data: clear %s: %w", table, err)
		}
	}

	result := SeedResult{
		PatientIDs: make([]int64, 0, len(ds.Patients)),
		VisitIDs:   make([]int64, 0, len(ds.Visits)),
		SampleIDs:  make([]int64, 0, len(ds.Samples)),
	}

	for _, p := range ds.Patients {
		id, err := insertPatient(ctx, tx, p.Patient(0))
		if err != nil {
			return SeedResult{}, fmt.Errorf("reset sample data: %w", err)
		}
		result.PatientIDs = append(result.PatientIDs, id)
	}

	for i, v := range ds.Visits {
		patientID, err := seedOwner(result.PatientIDs, v.Patient)
		if err != nil {
			return SeedResult{}, fmt.Errorf("reset sample data: visits[%d]: %w", i, err)
		}
		id, err := insertVisit(ctx, tx, v.Visit(patientID))
		if err != nil {
			return SeedResult{}, fmt.Errorf("reset sample data: %w", err)
		}
		result.VisitIDs = append(result.VisitIDs, id)
	}

	for i, smp := range ds.Samples {
		patientID, err := seedOwner(result.PatientIDs, smp.Patient)
		if err != nil {
			return SeedResult{}, fmt.Errorf("reset sample data: samples[%d]: %w", i, err)
		}
		id, err := insertSample(ctx, tx, smp.Sample(patientID))
		if err != nil {
			return SeedResult{}, fmt.Errorf("reset sample data: %w", err)
		}
		result.SampleIDs = append(result.SampleIDs, id)
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("reset sample data: commit: %w", err)
	}

	return result, nil
}

// InsertPatient writes one patient and returns its assigned identity.
// The ID field of p is ignored.
func (s *Store) InsertPatient(ctx context.Context, p study.Patient) (int64, error) {
	return insertPatient(ctx, s.db, p)
}

// InsertVisit writes one clinical visit and returns its assigned identity.
// p.PatientID must reference an existing patient.
func (s *Store) InsertVisit(ctx context.Context, v study.Visit) (int64, error) {
	return insertVisit(ctx, s.db, v)
}

// InsertSample writes one sample and returns its assigned identity.
func (s *Store) InsertSample(ctx context.Context, smp study.Sample) (int64, error) {
	return insertSample(ctx, s.db, smp)
}

// UpdateSampleLocation sets the storage location of one sample.
// A sampleID that matches no row is not an error; the returned count is 0.
func (s *Store) UpdateSampleLocation(ctx context.Context, sampleID int64, location string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE Samples
		SET storage_location = ?
		WHERE sample_id = ?
	`, location, sampleID)
	if err != nil {
		return 0, wrapErr("update sample location", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update sample location: rows affected: %w", err)
	}
	return n, nil
}

// DeletePatient deletes one patient; SQLite cascades the delete to its
// visits and samples. A patientID that matches no row is not an error.
func (s *Store) DeletePatient(ctx context.Context, patientID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM Patients WHERE patient_id = ?", patientID)
	if err != nil {
		return 0, wrapErr("delete patient", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete patient: rows affected: %w", err)
	}
	return n, nil
}

func insertPatient(ctx context.Context, e execer, p study.Patient) (int64, error) {
	result, err := e.ExecContext(ctx, insertPatientSQL,
		study.NormalizeName(p.FullName),
		p.Age,
		nullGender(p.Gender),
		p.EnrollmentDate,
	)
	if err != nil {
		return 0, wrapErr("insert patient", err)
	}
	return lastInsertID("insert patient", result)
}

func nullGender(g *study.Gender) any {
	if g == nil {
		return nil
	}
	return string(*g)
}

func insertVisit(ctx context.Context, e execer, v study.Visit) (int64, error) {
	result, err := e.ExecContext(ctx, insertVisitSQL,
		v.PatientID,
		v.VisitDate,
		v.SystolicBP,
		v.DiastolicBP,
		v.BloodGlucose,
		v.Notes,
	)
	if err != nil {
		return 0, wrapErr("insert visit", err)
	}
	return lastInsertID("insert visit", result)
}

func insertSample(ctx context.Context, e execer, smp study.Sample) (int64, error) {
	result, err := e.ExecContext(ctx, insertSampleSQL,
		smp.PatientID,
		smp.CollectionDate,
		string(smp.SampleType),
		smp.StorageLocation,
	)
	if err != nil {
		return 0, wrapErr("insert sample", err)
	}
	return lastInsertID("insert sample", result)
}

func lastInsertID(op string, result sql.Result) (int64, error) {
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}
	return id, nil
}

func seedOwner(patientIDs []int64, index *int) (int64, error) {
	if index == nil {
		return 0, fmt.Errorf("patient index missing")
	}
	if *index < 0 || *index >= len(patientIDs) {
		return 0, fmt.Errorf("patient index %d out of range (%d patients)", *index, len(patientIDs))
	}
	return patientIDs[*index], nil
}
