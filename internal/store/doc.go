// Package store provides the SQLite-backed study datastore.
//
// The store owns three tables:
//   - Patients: study participants (root entity)
//   - Clinical_Visits: dated vital-sign readings, one patient each
//   - Samples: biological specimens and where they are kept, one patient each
//
// # Integrity
//
// Column constraints (age range, gender and sample type domains, NOT NULL
// dates) and both foreign keys are enforced by SQLite, not by this package.
// Deleting a patient cascades to its visits and samples. Constraint failures
// surface as *ConstraintError.
//
// Updates and deletes by identity that match no row succeed and report zero
// rows affected.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: off by default in SQLite, so it is set on open
//
// The pool is limited to a single connection so the per-connection
// foreign_keys pragma holds for every statement.
package store
