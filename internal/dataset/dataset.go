package dataset

import (
	"os"
	"path/filepath"

	"github.com/admin/sqlloader/internal/errors"
)

// Dataset is a directory of SQL scripts that is loaded or reset as a unit.
type Dataset struct {
	Dir    string
	Ups    []string
	Downs  []string
	Config Config
}

// Open discovers the scripts under dir and resolves its configuration.
func Open(dir string, overrides Overrides) (*Dataset, error) {
	ups, downs, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := Resolve(dir, overrides)
	if err != nil {
		return nil, err
	}
	return &Dataset{Dir: dir, Ups: ups, Downs: downs, Config: cfg}, nil
}

func (d *Dataset) Name() string {
	return filepath.Base(d.Dir)
}

func (d *Dataset) String() string {
	return d.Name()
}

// Locate maps a dataset name given on the command line to its directory.
func Locate(root, name string) string {
	if fi, err := os.Stat(name); err == nil && fi.IsDir() {
		return name
	}
	return filepath.Join(root, name)
}

// Find returns the datasets under root. A root holding its own config.json
// is a single dataset; otherwise each subdirectory with a config.json is one.
func Find(root string, overrides Overrides) ([]*Dataset, error) {
	if hasConfig(root) {
		d, err := Open(root, overrides)
		if err != nil {
			return nil, err
		}
		return []*Dataset{d}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.WrapIO(root, err)
	}

	var datasets []*Dataset
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		if !e.IsDir() || !hasConfig(dir) {
			continue
		}
		d, err := Open(dir, overrides)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

func hasConfig(dir string) bool {
	fi, err := os.Stat(ConfigPath(dir))
	return err == nil && !fi.IsDir()
}
