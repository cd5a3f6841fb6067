package formats

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsupportedFormat indicates that the file format is not supported.
	ErrUnsupportedFormat = errors.New("dataio/formats: unsupported format")

	// ErrInvalidDelimiter indicates a delimiter that cannot separate fields.
	ErrInvalidDelimiter = errors.New("dataio/formats: invalid delimiter")

	// ErrInvalidComment indicates a comment character that cannot start a line.
	ErrInvalidComment = errors.New("dataio/formats: invalid comment character")
)

// DefaultFormat is used for files whose extension is not registered.
const DefaultFormat = "csv"

// Open returns a Reader for the input file based on its extension.
// Unknown extensions are read with the DefaultFormat.
func Open(in *os.File, opts Options) (Reader, error) {
	f := ForExtension(filepath.Ext(in.Name()))
	if f == nil {
		f = Lookup(DefaultFormat)
	}
	return f.NewReader(in, opts)
}

// Create returns a Writer for the output file based on its extension.
// Unknown extensions are written with the DefaultFormat.
func Create(out *os.File, opts Options) (Writer, error) {
	f := ForExtension(filepath.Ext(out.Name()))
	if f == nil {
		f = Lookup(DefaultFormat)
	}
	return f.NewWriter(out, opts)
}

// Options controls how rows are split into fields.
type Options struct {
	// Delimiter separates fields. Zero selects the Format's default.
	Delimiter rune

	// Comment, if not zero, marks lines to ignore when it is the first character.
	Comment rune
}

func (o Options) delimiter(def rune) (rune, error) {
	d := o.Delimiter
	if d == 0 {
		d = def
	}
	if !validSeparator(d) || d == o.Comment {
		return 0, ErrInvalidDelimiter
	}
	if o.Comment != 0 && !validSeparator(o.Comment) {
		return 0, ErrInvalidComment
	}
	return d, nil
}

// validSeparator mirrors the runes encoding/csv accepts as Comma or Comment.
func validSeparator(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' &&
		utf8.ValidRune(r) && r != utf8.RuneError
}

// Reader returns Records from a supported Format.
type Reader interface {
	// Next returns the next Record in the document, or io.EOF.
	Next() (*Record, error)

	// Err returns the last error that occured.
	Err() error
}

// Writer serializes rows to a supported Format.
type Writer interface {
	// Write serializes one row of values.
	Write(values []string) error

	// Flush writes any buffered rows to the underlying stream.
	Flush() error
}

// Record represents a single row sourced from the Format.
type Record struct {
	// Line is the 1-based line (or sheet row) the record started on.
	Line int

	// Values contains the raw text of each field in order.
	Values []string
}

// Blank reports whether the record came from an empty or whitespace-only
// line. A line holding delimiters, such as ",,", is a row of empty fields
// and is not blank.
func (r *Record) Blank() bool {
	switch len(r.Values) {
	case 0:
		return true
	case 1:
		return strings.TrimSpace(r.Values[0]) == ""
	}
	return false
}

///////////

// Format describes a supported data interchange protocol.
type Format struct {
	// Name of the Format used for locating the Reader/Writer to use.
	Name string

	// Description of the Format used for selection lists.
	Description string

	// Extensions lists the file extensions that typically denote this Format.
	// Note each extension MUST begin with a "." dot prefix.
	Extensions []string

	// NewReader returns a new format Reader for the given stream.
	NewReader func(r io.Reader, opts Options) (Reader, error)

	// NewWriter returns a new format Writer applied to the given stream.
	NewWriter func(w io.Writer, opts Options) (Writer, error)
}

// Register a Format for inclusion in any subsequent data import/export tasks.
// Returns the number of formats currently registered, thus it can be used as
// a global initializer by ignoring the result:
//
//	var _ = formats.Register(&formats.Format{...})
func Register(f *Format) int {
	_, ok := supportedFormats[f.Name]
	if ok {
		panic("the format '" + f.Name + "' is already in use.")
	}
	supportedFormats[f.Name] = f
	for _, ext := range f.Extensions {
		formatsByExt[strings.ToLower(ext)] = f
	}
	return len(supportedFormats)
}

// Lookup returns the Format registered under name, or nil.
func Lookup(name string) *Format {
	return supportedFormats[name]
}

// ForExtension returns the Format registered for a file extension, or nil.
func ForExtension(ext string) *Format {
	return formatsByExt[strings.ToLower(ext)]
}

// Names lists the registered Format names in sorted order.
func Names() []string {
	res := make([]string, 0, len(supportedFormats))
	for name := range supportedFormats {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

var (
	supportedFormats = make(map[string]*Format)
	formatsByExt     = make(map[string]*Format)
)
