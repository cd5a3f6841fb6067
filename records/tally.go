package records

import (
	"errors"
	"sort"
	"strings"

	"github.com/joiningdata/dataio"
)

// Sequence is an ordered list of records, in input line order.
type Sequence []Value

// MissingPolicy decides what Count does with records lacking the field.
type MissingPolicy int

const (
	// SkipMissing leaves records without the field out of the Tally.
	SkipMissing MissingPolicy = iota

	// FailMissing makes Count return a *dataio.FieldMissingError.
	FailMissing
)

// Order is the iteration order of a Tally's keys.
type Order int

const (
	// FirstSeen orders keys by their first occurrence in the Sequence.
	FirstSeen Order = iota

	// CountDescending orders keys by count, highest first. Equal counts keep
	// first-occurrence order.
	CountDescending
)

// CountOption configures Count.
type CountOption func(*countConfig)

type countConfig struct {
	transform func(string) string
	missing   MissingPolicy
	order     Order
}

// WithTransform maps each field value before it is counted.
func WithTransform(fn func(string) string) CountOption {
	return func(c *countConfig) { c.transform = fn }
}

// WithMissing sets the policy for records without the field.
func WithMissing(p MissingPolicy) CountOption {
	return func(c *countConfig) { c.missing = p }
}

// WithOrder sets the key order of the resulting Tally.
func WithOrder(o Order) CountOption {
	return func(c *countConfig) { c.order = o }
}

// LastToken returns a transform that keeps the final sep-delimited token of
// a value, trimmed of surrounding whitespace: "San Francisco, CA" -> "CA".
func LastToken(sep string) func(string) string {
	return func(s string) string {
		if i := strings.LastIndex(s, sep); i >= 0 && sep != "" {
			s = s[i+len(sep):]
		}
		return strings.TrimSpace(s)
	}
}

// Entry is one key of a Tally with its count.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Tally maps distinct values to their number of occurrences.
type Tally struct {
	keys   []string
	counts map[string]int
	total  int
}

func newTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

func (t *Tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.counts[key]++
	t.total++
}

// Count returns the number of occurrences of key.
func (t *Tally) Count(key string) int {
	return t.counts[key]
}

// Len returns the number of distinct keys.
func (t *Tally) Len() int {
	return len(t.keys)
}

// Total returns the sum of all counts.
func (t *Tally) Total() int {
	return t.total
}

// Keys returns the distinct keys in the Tally's order.
func (t *Tally) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Entries returns the keys and their counts in the Tally's order.
func (t *Tally) Entries() []Entry {
	res := make([]Entry, len(t.keys))
	for i, k := range t.keys {
		res[i] = Entry{Key: k, Count: t.counts[k]}
	}
	return res
}

// Map returns the counts as a plain map.
func (t *Tally) Map() map[string]int {
	res := make(map[string]int, len(t.counts))
	for k, n := range t.counts {
		res[k] = n
	}
	return res
}

// Count tallies the values found at a dotted field path across seq.
//
// Values must be scalars; a record whose field is absent, or holds a
// sequence or mapping, is treated as missing and handled per WithMissing.
// Keys are the text form given by Value.Scalar, so a scalar and a string
// with the same text share a key: null and "null", true and "true", 1 and
// "1" are all counted together.
// For example, counting "place.full_name" with WithTransform(LastToken(","))
// over tweets from "San Francisco, CA" and "Austin, TX" gives CA:1, TX:1.
func Count(seq Sequence, path string, opts ...CountOption) (*Tally, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	cfg := &countConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	t := newTally()
	for i, rec := range seq {
		v, err := rec.Lookup(p)
		if err == nil && !v.IsScalar() {
			err = &dataio.FieldMissingError{Path: p.String(), Segment: p[len(p)-1], Record: -1}
		}
		if err != nil {
			var fm *dataio.FieldMissingError
			if cfg.missing == FailMissing && errors.As(err, &fm) {
				fm.Record = i
				return nil, fm
			}
			continue
		}

		key, _ := v.Scalar()
		if cfg.transform != nil {
			key = cfg.transform(key)
		}
		t.add(key)
	}

	if cfg.order == CountDescending {
		sort.SliceStable(t.keys, func(a, b int) bool {
			return t.counts[t.keys[a]] > t.counts[t.keys[b]]
		})
	}
	return t, nil
}
