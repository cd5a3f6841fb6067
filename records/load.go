package records

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/joiningdata/dataio"
)

var (
	errNotRecord = errors.New("line is not a JSON object")
	errBlankLine = errors.New("blank line")
	errTrailing  = errors.New("unexpected data after JSON value")
)

// Load reads a file holding one JSON object per line into a Sequence in
// line order. Lines may be of any length.
//
// The file is closed before Load returns. On failure no Sequence is
// returned and the error is a *dataio.FileAccessError or *dataio.ParseError.
func Load(path string, opts ...Option) (Sequence, error) {
	cfg := newConfig(opts)

	f, err := dataio.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seq, err := load(path, f, cfg)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("loaded records",
		zap.String("path", path),
		zap.Int("records", len(seq)))
	return seq, nil
}

// LoadReader reads JSON lines from r into a Sequence.
func LoadReader(r io.Reader, opts ...Option) (Sequence, error) {
	return load("<stream>", r, newConfig(opts))
}

func load(path string, in io.Reader, cfg *config) (Sequence, error) {
	br := bufio.NewReader(in)
	seq := Sequence{}
	for line := 1; ; line++ {
		text, err := br.ReadBytes('\n')
		if err != nil && (err != io.EOF || len(text) == 0) {
			if err == io.EOF {
				break
			}
			return nil, &dataio.FileAccessError{Path: path, Err: err}
		}

		text = bytes.TrimSpace(text)
		if len(text) == 0 {
			if cfg.skipBlank {
				continue
			}
			return nil, &dataio.ParseError{Path: path, Line: line, Err: errBlankLine}
		}

		rec, perr := decodeValue(text)
		if perr == nil && rec.Kind() != Mapping {
			perr = fmt.Errorf("%w: got %s", errNotRecord, rec.Kind())
		}
		if perr != nil {
			return nil, &dataio.ParseError{Path: path, Line: line, Err: perr}
		}
		seq = append(seq, rec)
	}
	return seq, nil
}

// decodeValue decodes exactly one JSON value from data.
func decodeValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var x interface{}
	if err := dec.Decode(&x); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, errTrailing
	}
	return fromInterface(x)
}

// Write encodes seq as JSON lines, one record per line.
func Write(w io.Writer, seq Sequence) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, rec := range seq {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}
