package records

import (
	"bufio"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/joiningdata/dataio"
)

// LoadDocument reads a file holding a single JSON document of any shape,
// typically an array of objects, into a Value.
//
// The file is closed before LoadDocument returns. Malformed JSON, trailing
// data after the document, or an empty file fail with a *dataio.ParseError.
func LoadDocument(path string, opts ...Option) (Value, error) {
	cfg := newConfig(opts)

	f, err := dataio.OpenInput(path)
	if err != nil {
		return Value{}, err
	}
	defer f.Close()

	v, err := loadDocument(path, f)
	if err != nil {
		return Value{}, err
	}
	cfg.logger.Debug("loaded document",
		zap.String("path", path),
		zap.Stringer("kind", v.Kind()),
		zap.Int("len", v.Len()))
	return v, nil
}

// LoadDocumentReader reads a single JSON document from r.
func LoadDocumentReader(r io.Reader) (Value, error) {
	return loadDocument("<stream>", r)
}

func loadDocument(path string, in io.Reader) (Value, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return Value{}, &dataio.FileAccessError{Path: path, Err: err}
	}
	v, err := decodeValue(data)
	if err != nil {
		return Value{}, &dataio.ParseError{Path: path, Err: err}
	}
	return v, nil
}

// WriteDocument encodes v as a single JSON document followed by a newline.
func WriteDocument(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return bw.Flush()
}

// Records returns the elements of a sequence Value as a Sequence, so a
// document holding an array of objects can be passed to Count.
func (v Value) Records() (Sequence, bool) {
	if v.kind != SequenceKind {
		return nil, false
	}
	return append(Sequence{}, v.seq...), true
}
