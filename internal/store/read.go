package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/biostudy/internal/study"
)

// TableCounts is the row count of each study table.
type TableCounts struct {
	Patients int64 `json:"patients"`
	Visits   int64 `json:"visits"`
	Samples  int64 `json:"samples"`
}

// ListPatients returns every patient's name, age and enrollment date,
// ordered by patient_id.
//
// Returns an empty slice (not nil) if there are no patients.
func (s *Store) ListPatients(ctx context.Context) ([]study.PatientSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT full_name, age, enrollment_date
		FROM Patients
		ORDER BY patient_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	defer rows.Close()

	patients := []study.PatientSummary{}
	for rows.Next() {
		var p study.PatientSummary
		var age sql.NullInt64
		if err := rows.Scan(&p.FullName, &age, &p.EnrollmentDate); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		p.Age = nullInt(age)
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return patients, nil
}

// VisitsForPatient returns the visits of one patient joined with the
// patient's name, ordered by visit date then visit_id.
func (s *Store) VisitsForPatient(ctx context.Context, patientID int64) ([]study.VisitReading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.full_name, v.visit_date, v.systolic_bp, v.diastolic_bp
		FROM Patients p
		JOIN Clinical_Visits v ON p.patient_id = v.patient_id
		WHERE p.patient_id = ?
		ORDER BY v.visit_date ASC, v.visit_id ASC
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	visits := []study.VisitReading{}
	for rows.Next() {
		var r study.VisitReading
		var systolic, diastolic sql.NullInt64
		if err := rows.Scan(&r.FullName, &r.VisitDate, &systolic, &diastolic); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		r.SystolicBP = nullInt(systolic)
		r.DiastolicBP = nullInt(diastolic)
		visits = append(visits, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return visits, nil
}

// PatientsAboveSystolic returns the distinct names of patients with at
// least one visit whose systolic pressure is strictly above threshold,
// ordered by name. Visits with no systolic reading never match.
func (s *Store) PatientsAboveSystolic(ctx context.Context, threshold int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT p.full_name
		FROM Patients p
		JOIN Clinical_Visits v ON p.patient_id = v.patient_id
		WHERE v.systolic_bp > ?
		ORDER BY p.full_name ASC
	`, threshold)
	if err != nil {
		return nil, fmt.Errorf("query hypertensive patients: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan patient name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patient names: %w", err)
	}
	return names, nil
}

// GetPatient retrieves a single patient by identity. A NULL age or gender
// is returned as nil. Returns sql.ErrNoRows if not found.
func (s *Store) GetPatient(ctx context.Context, id int64) (study.Patient, error) {
	var p study.Patient
	var age sql.NullInt64
	var gender sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT patient_id, full_name, age, gender, enrollment_date
		FROM Patients
		WHERE patient_id = ?
	`, id).Scan(&p.ID, &p.FullName, &age, &gender, &p.EnrollmentDate)
	if err != nil {
		return study.Patient{}, fmt.Errorf("read patient %d: %w", id, err)
	}
	p.Age = nullInt(age)
	if gender.Valid {
		g := study.Gender(gender.String)
		p.Gender = &g
	}
	return p, nil
}

// GetSample retrieves a single sample by identity.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetSample(ctx context.Context, id int64) (study.Sample, error) {
	var smp study.Sample
	var sampleType, location sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT sample_id, patient_id, collection_date, sample_type, storage_location
		FROM Samples
		WHERE sample_id = ?
	`, id).Scan(&smp.ID, &smp.PatientID, &smp.CollectionDate, &sampleType, &location)
	if err != nil {
		return study.Sample{}, fmt.Errorf("read sample %d: %w", id, err)
	}
	smp.SampleType = study.SampleType(sampleType.String)
	smp.StorageLocation = nullString(location)
	return smp, nil
}

// ListSamples returns every sample ordered by sample_id.
func (s *Store) ListSamples(ctx context.Context) ([]study.Sample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sample_id, patient_id, collection_date, sample_type, storage_location
		FROM Samples
		ORDER BY sample_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	samples := []study.Sample{}
	for rows.Next() {
		var smp study.Sample
		var sampleType, location sql.NullString
		if err := rows.Scan(&smp.ID, &smp.PatientID, &smp.CollectionDate, &sampleType, &location); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		smp.SampleType = study.SampleType(sampleType.String)
		smp.StorageLocation = nullString(location)
		samples = append(samples, smp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return samples, nil
}

// ListVisits returns every visit ordered by visit_id.
func (s *Store) ListVisits(ctx context.Context) ([]study.Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT visit_id, patient_id, visit_date, systolic_bp, diastolic_bp, blood_glucose_mmol_l, notes
		FROM Clinical_Visits
		ORDER BY visit_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	visits := []study.Visit{}
	for rows.Next() {
		var v study.Visit
		var systolic, diastolic sql.NullInt64
		var glucose sql.NullFloat64
		var notes sql.NullString
		if err := rows.Scan(&v.ID, &v.PatientID, &v.VisitDate, &systolic, &diastolic, &glucose, &notes); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.SystolicBP = nullInt(systolic)
		v.DiastolicBP = nullInt(diastolic)
		if glucose.Valid {
			v.BloodGlucose = &glucose.Float64
		}
		v.Notes = nullString(notes)
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return visits, nil
}

// Counts returns the number of rows in each study table.
func (s *Store) Counts(ctx context.Context) (TableCounts, error) {
	var c TableCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM Patients),
			(SELECT COUNT(*) FROM Clinical_Visits),
			(SELECT COUNT(*) FROM Samples)
	`).Scan(&c.Patients, &c.Visits, &c.Samples)
	if err != nil {
		return TableCounts{}, fmt.Errorf("count rows: %w", err)
	}
	return c, nil
}

// OrphanCount returns the number of visits and samples whose patient_id
// does not resolve to a patient. Always 0 while foreign keys are enforced.
func (s *Store) OrphanCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM Clinical_Visits v
			 WHERE NOT EXISTS (SELECT 1 FROM Patients p WHERE p.patient_id = v.patient_id))
			+
			(SELECT COUNT(*) FROM Samples s
			 WHERE NOT EXISTS (SELECT 1 FROM Patients p WHERE p.patient_id = s.patient_id))
	`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orphans: %w", err)
	}
	return n, nil
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
