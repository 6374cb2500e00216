// Package cli implements the capmatch command.
//
// Commands:
//   - check: run the cases of one or more case files
//   - eval: check a single pattern, subject and expectation set
//   - gen: generate a Go table test from case files
//   - version: show version information
//
// Global flags --log-level and --log-format (or CAPMATCH_LOG_LEVEL and
// CAPMATCH_LOG_FORMAT) control diagnostics on stderr; --no-color disables
// coloured output.
//
// Exit status is 0 when every case passes, 1 when a case fails and 2 for
// usage errors or unusable case files.
package cli
