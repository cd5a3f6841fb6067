// Package tabular loads delimited text files into numeric matrices.
//
// A file such as
//
//	1,2,3
//	4,5,6
//
// loads into a 2x3 Matrix. Every field must parse as a float64 and, unless
// WithStrict(false) is given, every row must have the same number of fields.
// Loading is all-or-nothing: on any error no Matrix is returned.
//
// Matrices can be written back as text with SaveText, or in the NumPy .npy
// binary format with SaveNPY and LoadNPY.
package tabular
