package dataset

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/admin/sqlloader/internal/errors"
)

const ResetScript = "reset.sql"

func isReset(path string) bool {
	return filepath.Base(path) == ResetScript
}

func isLoad(path string) bool {
	return filepath.Ext(path) == ".sql" && !isReset(path)
}

// Discover walks dir and returns the contents of its load scripts, ordered
// by file name, and of its reset scripts, in walk order. Each file is one
// entry; nothing is split into separate statements.
func Discover(dir string) (ups, downs []string, err error) {
	var upFiles, downFiles []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapIO(path, err)
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case isReset(path):
			downFiles = append(downFiles, path)
		case isLoad(path):
			upFiles = append(upFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.SliceStable(upFiles, func(i, j int) bool {
		return filepath.Base(upFiles[i]) < filepath.Base(upFiles[j])
	})

	if ups, err = readAll(upFiles); err != nil {
		return nil, nil, err
	}
	if downs, err = readAll(downFiles); err != nil {
		return nil, nil, err
	}
	return ups, downs, nil
}

func readAll(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.WrapIO(p, err)
		}
		out = append(out, string(b))
	}
	return out, nil
}
