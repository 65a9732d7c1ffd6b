// Package pagination provides limit/offset paging and field sorting for CLI
// list output.
//
// This package contains shared list logic used by CLI commands, including:
//   - Params: CLI flag values and validation
//   - Meta: metadata describing the page that was shown
//   - MeasureSorter: sorting of reduction measures by a named field
package pagination
