// Package pagination holds the shared paging and sorting flags of the
// non-interactive commands:
//   - Params: --page, --page-size and --sort parsing and validation
//   - TravelSorter: stable ordering of travel requests by a named field
//
// Page slicing itself lives in the travel package so the dashboard and the
// CLI page identically.
package pagination
