package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joiningdata/dataio"
)

// ErrInvalidPath indicates a field path with an empty segment.
var ErrInvalidPath = errors.New("dataio/records: invalid field path")

// Path is a parsed dotted field path such as "place.full_name".
type Path []string

// ParsePath splits a dotted field path into its segments.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	p := Path(strings.Split(s, "."))
	for _, seg := range p {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
	}
	return p, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Lookup follows p through nested mappings starting at v. It fails with a
// *dataio.FieldMissingError when a key is absent or an intermediate value
// is not a mapping.
func (v Value) Lookup(p Path) (Value, error) {
	cur := v
	for _, seg := range p {
		next, ok := cur.Get(seg)
		if !ok {
			return Value{}, &dataio.FieldMissingError{Path: p.String(), Segment: seg, Record: -1}
		}
		cur = next
	}
	return cur, nil
}
