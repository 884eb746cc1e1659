package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvDir names the environment variable pointing at the local metadata
// directory.
const EnvDir = "SCARF_METADATA"

// Local reads detector records from a directory of per-detector files,
// one record per <name>.yaml or <name>.json file.
type Local struct {
	dir string
}

var _ Provider = (*Local)(nil)

// OpenLocal probes the local metadata store. An empty dir falls back
// to the SCARF_METADATA environment variable. The returned error marks
// the store as unavailable, it does not mean any record is malformed.
func OpenLocal(dir string) (*Local, error) {
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		return nil, fmt.Errorf("no metadata directory configured and %s is unset", EnvDir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("metadata directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("metadata path %s is not a directory", dir)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (l *Local) Dir() string { return l.dir }

// Lookup reads the record file for the named detector.
func (l *Local) Lookup(name string) (Record, error) {
	if name == "" {
		return Record{}, errors.New("empty detector name")
	}
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(l.dir, name+ext)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Record{}, fmt.Errorf("read detector record: %w", err)
		}
		rec, err := decodeRecord(raw, ext)
		if err != nil {
			return Record{}, fmt.Errorf("detector record %s: %w", path, err)
		}
		return rec, nil
	}
	return Record{}, fmt.Errorf("no record for detector %q in %s", name, l.dir)
}

func decodeRecord(raw []byte, ext string) (Record, error) {
	var rec Record
	var err error
	if strings.EqualFold(ext, ".json") {
		err = json.Unmarshal(raw, &rec)
	} else {
		err = yaml.Unmarshal(raw, &rec)
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}
