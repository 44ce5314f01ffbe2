// Package tabular defines the canonical tabular result model that all
// answer checking operates on.
//
// Every query execution is normalized into a Result: an ordered list of
// column names plus ordered rows of scalar Values. Comparison code never
// sees driver-native types; it sees Values with an explicit, documented
// total order, so "sort both sides, then compare" is deterministic across
// mixed-type columns.
//
// # Value model
//
// SQLite produces four scalar shapes through database/sql: NULL, INTEGER
// (int64), REAL (float64), and TEXT (string or []byte). Value captures
// exactly those. There is no boolean kind - sqlite stores booleans as
// integers - and no blob kind distinct from text; byte slices canonicalize
// to text on scan.
//
// # Total order
//
// Compare orders values null-low, then by type rank (numbers before text),
// then by native comparison. Cross-type numeric values compare numerically,
// so 23 and 23.0 are equal.
package tabular
