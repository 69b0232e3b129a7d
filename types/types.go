// Package types holds the scalar column type representations for tables.
// Column data types are a closed set; every column in a table declares
// exactly one of them and every value in that column is either of that type
// or missing.
package types

// Column represents the type of a table column.
type Column string

const (
	// Bool indicates a column is a boolean.
	Bool Column = "bool"
	// Long indicates a column is a signed 64-bit integer.
	Long Column = "long"
	// Real indicates a column is a 64-bit floating point number.
	Real Column = "real"
	// Decimal indicates a column is an arbitrary-precision decimal number.
	Decimal Column = "decimal"
	// String indicates a column is a string.
	String Column = "string"
)

var valid = map[Column]bool{
	Bool:    true,
	Long:    true,
	Real:    true,
	Decimal: true,
	String:  true,
}

// Valid reports whether c names a known column type.
func Valid(c Column) bool {
	return valid[c]
}

// Numeric reports whether values of type c carry a numeric value.
func Numeric(c Column) bool {
	return c == Long || c == Real || c == Decimal
}
