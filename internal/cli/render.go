package cli

import (
	"fmt"
	"io"

	"github.com/roach88/biostudy/internal/study"
)

func writePatients(w io.Writer, patients []study.PatientSummary) {
	fmt.Fprintln(w, "All patients (age and enrollment date):")
	if len(patients) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, p := range patients {
		fmt.Fprintf(w, "- %s, age %s, enrolled %s\n", p.FullName, formatReading(p.Age), p.EnrollmentDate)
	}
}

func writeVisits(w io.Writer, patientID int64, visits []study.VisitReading) {
	fmt.Fprintf(w, "Visits for patient_id = %d (JOIN query):\n", patientID)
	if len(visits) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, v := range visits {
		fmt.Fprintf(w, "- %s, %s, BP %s/%s\n", v.FullName, v.VisitDate, formatReading(v.SystolicBP), formatReading(v.DiastolicBP))
	}
}

func writeHypertensive(w io.Writer, threshold int64, names []string) {
	fmt.Fprintf(w, "Patients with systolic BP > %d:\n", threshold)
	if len(names) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, name := range names {
		fmt.Fprintf(w, "- %s\n", name)
	}
}

func writeSampleUpdate(w io.Writer, sampleID int64, location string, n int64) {
	fmt.Fprintf(w, "Updated storage location of sample %d to %q (%s)\n", sampleID, location, rowsWord(n))
}

func writePatientDelete(w io.Writer, patientID int64, n int64) {
	fmt.Fprintf(w, "Deleted patient %d (%s)\n", patientID, rowsWord(n))
}

// formatReading renders a nullable integer column, "-" for NULL.
func formatReading(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func rowsWord(n int64) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
