// Package formats describes the supported tabular input/output formats.
// The goal of this package is to support iteration of rows (containing fields) within any data set:
//
//	+----------------------------+
//	| Data Set                   |
//	| +------------------------+ |
//	| | Row 1                  | |
//	| | Field 1 | Field 2| ... | |
//	| +------------------------+ |
//	| +------------------------+ |
//	| | Row 2                  | |
//	| | Field 1 | Field 2| ... | |
//	| +------------------------+ |
//	+----------------------------+
//
// Readers return raw field text; converting fields to numbers is left to the caller.
// Formats register themselves by name and file extension, see Register.
package formats
