package metadata

import (
	"embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/diodes
var diodeFS embed.FS

// Public substitutes sample records for the real detector store. Each
// lookup resolves the sample record whose name starts with the same
// letter as the requested detector and returns it renamed, so that a
// geometry can be built without access to the authoritative metadata.
type Public struct{}

var _ Provider = Public{}

// Lookup returns the sample record for the detector's family, renamed
// to the requested detector.
func (Public) Lookup(name string) (Record, error) {
	if name == "" {
		return Record{}, errors.New("empty detector name")
	}
	base := string(name[0]) + "99000A"
	raw, err := diodeFS.ReadFile("testdata/diodes/" + base + ".yaml")
	if err != nil {
		return Record{}, fmt.Errorf("no sample record %s for detector %q: %w", base, name, err)
	}
	var rec Record
	if err := yaml.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("sample record %s: %w", base, err)
	}
	rec.Name = name
	rec.Production.Order = 0
	rec.Production.Slice = "A"
	return rec, nil
}
