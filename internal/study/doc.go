// Package study provides the record types for the clinical-study dataset.
//
// This package contains type definitions only. store, seed and cli import
// study; study imports nothing internal.
//
// Key design constraints:
//   - Identities are int64 values assigned by the store, never by callers
//   - Nullable columns are pointer fields (nil means NULL)
//   - Dates are ISO-8601 calendar dates kept as text ("2025-01-10")
//   - All JSON tags use snake_case
package study
