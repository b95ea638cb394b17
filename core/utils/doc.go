// Package utils provides small type conversion helpers.
//
// External inventory exports carry numbers as strings and strings as
// arbitrary JSON scalars; these helpers coerce them with explicit type
// switches instead of reflection.
package utils
