package tabular

import (
	"archive/zip"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joiningdata/dataio"
)

// SaveNPZ writes several matrices into one NumPy .npz archive, each stored
// as "<name>.npy" the way numpy.savez does. Names are written in sorted
// order and must be non-empty.
func SaveNPZ(path string, arrays map[string]*Matrix) (err error) {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		if name == "" || strings.ContainsAny(name, "/\\") {
			return fmt.Errorf("invalid array name %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name + ".npy")
		if err != nil {
			return err
		}
		if err := writeNPY(w, arrays[name]); err != nil {
			return fmt.Errorf("array %q: %w", name, err)
		}
	}
	return zw.Close()
}

// LoadNPZ reads every array of a .npz archive written by SaveNPZ or
// numpy.savez. Keys drop the ".npy" suffix.
func LoadNPZ(path string) (map[string]*Matrix, error) {
	f, err := dataio.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &dataio.FileAccessError{Path: path, Err: err}
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, &dataio.ParseError{Path: path, Err: err}
	}

	res := make(map[string]*Matrix, len(zr.File))
	for _, zf := range zr.File {
		name := strings.TrimSuffix(zf.Name, ".npy")
		rc, err := zf.Open()
		if err != nil {
			return nil, &dataio.ParseError{Path: path, Err: fmt.Errorf("%s: %w", zf.Name, err)}
		}
		m, err := readNPY(path+":"+zf.Name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		res[name] = m
	}
	return res, nil
}
