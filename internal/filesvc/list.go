package filesvc

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	extPW = ".pw"
	extGW = ".gw"
)

type FileEntry struct {
	Name string
	Path string
}

func IsScriptFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extPW, extGW:
		return true
	default:
		return false
	}
}

// ListScripts returns the scripts under root sorted by name. Hidden
// directories are skipped when recursing.
func ListScripts(root string, recursive bool) ([]FileEntry, error) {
	var entries []FileEntry

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if !IsScriptFile(d.Name()) {
				return nil
			}
			rel := d.Name()
			if r, relErr := filepath.Rel(root, path); relErr == nil {
				rel = r
			}
			entries = append(entries, FileEntry{Name: rel, Path: path})
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		dirEntries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, entry := range dirEntries {
			if entry.IsDir() || !IsScriptFile(entry.Name()) {
				continue
			}
			entries = append(entries, FileEntry{
				Name: entry.Name(),
				Path: filepath.Join(root, entry.Name()),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
