package tabular

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/joiningdata/dataio"
)

// check at most 5000 rows when inspecting
const maxSamples = 5000

// ColumnType is the inferred type of a column's values.
type ColumnType string

// Column types reported by Inspect.
const (
	Integers         ColumnType = "integers"
	Floats           ColumnType = "floats"
	PrefixedIntegers ColumnType = "prefixed integers"
	Text             ColumnType = "text"
	Empty            ColumnType = "empty"
)

// ColumnInfo describes a column of a tabular file.
type ColumnInfo struct {
	// Order of the column in the row, 0-based.
	Order int `json:"order"`

	// Header of the column if the file appears to have one.
	Header string `json:"header,omitempty"`

	// Type of the column (floats, integers, prefixed integers, text).
	Type ColumnType `json:"type"`

	// Samples counts the non-empty values examined.
	Samples int `json:"samples"`

	// Invalid counts the examined values that do not parse as numbers.
	Invalid int `json:"invalid"`
}

var pfxint = regexp.MustCompile("^[A-Za-z]*:[0-9]*$")

// Inspect samples up to 5000 rows of a tabular file and reports the type of
// each column, so a caller can see why a file will not load as a Matrix.
//
// The most frequent row width is taken as the table width, and the first
// row of that width is treated as a header when none of its cells are
// numeric and more rows follow it.
func Inspect(path string, opts ...Option) ([]*ColumnInfo, error) {
	cfg := newConfig(opts)

	f, err := dataio.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := openReader(f, cfg)
	if err != nil {
		return nil, &dataio.ParseError{Path: path, Err: err}
	}

	///// collect a sample of the input rows
	var sample [][]string
	for len(sample) < maxSamples {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(path, err)
		}
		if rec.Blank() {
			continue
		}
		sample = append(sample, rec.Values)
	}
	if len(sample) == 0 {
		return nil, nil
	}

	// out of the sampled rows, which number of columns is the most frequent?
	bestcols := 0
	colcounts := make(map[int]int)
	for _, cols := range sample {
		colcounts[len(cols)]++
		if colcounts[len(cols)] > colcounts[bestcols] {
			bestcols = len(cols)
		}
	}

	var head []string
	body := sample
	for i, cols := range sample {
		if len(cols) != bestcols {
			continue
		}
		if !anyNumeric(cols) && i+1 < len(sample) {
			head = cols
			body = sample[i+1:]
		}
		break
	}

	res := make([]*ColumnInfo, bestcols)
	for i := range res {
		res[i] = &ColumnInfo{Order: i, Type: Empty}
		if head != nil {
			res[i].Header = strings.TrimSpace(head[i])
		}
	}

	///// determine if each column is numeric or text
	for _, colinfo := range res {
		nIntegers := 0
		nFloats := 0
		nPrefixedIntegers := 0

		for _, cols := range body {
			if colinfo.Order >= len(cols) {
				continue
			}
			s := strings.TrimSpace(cols[colinfo.Order])
			if s == "" {
				continue
			}
			colinfo.Samples++

			_, err := strconv.ParseInt(s, 10, 64)
			if err == nil {
				nIntegers++
				nFloats++
				continue
			}
			_, err = strconv.ParseFloat(s, 64)
			if err == nil {
				nFloats++
				continue
			}

			///////////
			if pfxint.MatchString(s) {
				nPrefixedIntegers++
			}
		}
		colinfo.Invalid = colinfo.Samples - nFloats

		switch {
		case colinfo.Samples == 0:
			colinfo.Type = Empty
		case nFloats > nIntegers && nFloats > nPrefixedIntegers:
			colinfo.Type = Floats
		case nIntegers > nPrefixedIntegers:
			colinfo.Type = Integers
		case nPrefixedIntegers > 0 && nPrefixedIntegers >= colinfo.Samples/2:
			colinfo.Type = PrefixedIntegers
		default:
			colinfo.Type = Text
		}
	}

	cfg.logger.Debug("inspected table",
		zap.String("path", path),
		zap.Int("rows", len(sample)),
		zap.Int("cols", bestcols),
		zap.Bool("header", head != nil))
	return res, nil
}

func anyNumeric(cols []string) bool {
	for _, s := range cols {
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return true
		}
	}
	return false
}
