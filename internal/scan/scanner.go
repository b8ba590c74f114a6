package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Documents resolves a conversion input: a single .json file yields itself,
// a directory yields every .json file beneath it in lexical path order so
// repeated runs concatenate documents deterministically.
func Documents(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if fi.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".json") {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
