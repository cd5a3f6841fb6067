// Package dataio loads delimited tabular files into numeric matrices and
// line-delimited JSON files into record sequences. The loaders live in the
// tabular and records subpackages; this package holds the shared error
// types and file helpers.
package dataio

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/minio/highwayhash"
)

var (
	// OutputDirectory is the path to place result files.
	OutputDirectory, _ = filepath.Abs("./results")
)

// fingerprintKey is fixed so fingerprints are stable across runs and hosts.
var fingerprintKey = []byte("dataio/fingerprint/v1...........")

// CheckDirectories creates the output directory if it does not exist.
func CheckDirectories() error {
	return os.MkdirAll(OutputDirectory, 0755)
}

// OpenInput opens a file for reading. The caller must Close it.
// Any failure, including a path naming a directory, is a *FileAccessError.
func OpenInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: unwrapPathError(err)}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &FileAccessError{Path: path, Err: unwrapPathError(err)}
	}
	if info.IsDir() {
		f.Close()
		return nil, &FileAccessError{Path: path, Err: errors.New("is a directory")}
	}
	return f, nil
}

func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Fingerprint returns the hex encoded 64-bit HighwayHash of the file's contents.
// Equal fingerprints mean a loader will produce equal results for both files.
func Fingerprint(path string) (string, error) {
	f, err := OpenInput(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", &FileAccessError{Path: path, Err: unwrapPathError(err)}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GetResultPath returns the full path to a result file.
func GetResultPath(token, resType string) string {
	return filepath.Clean(filepath.Join(OutputDirectory, token+"."+resType+".json"))
}

// PutResult writes a result to the specified token.
// Either a single json-serializable data argument can be provided,
// or multiple interleaved key-value pairs.
func PutResult(token, resType string, data ...interface{}) error {
	fn := GetResultPath(token, resType)
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if len(data) == 1 {
		err = enc.Encode(data[0])
	} else {
		m := make(map[string]interface{}, len(data)/2)
		for i := 0; i+1 < len(data); i += 2 {
			k, _ := data[i].(string)
			m[k] = data[i+1]
		}
		err = enc.Encode(m)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// GetResult reads a result from the specified token.
// Data argument should be a pointer receiver. The returned bool is true
// when no result has been written for the token yet.
func GetResult(token, resType string, data interface{}) (bool, error) {
	fn := GetResultPath(token, resType)
	f, err := os.Open(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return true, err
		}
		return false, err
	}
	err = json.NewDecoder(f).Decode(data)
	f.Close()
	return false, err
}
