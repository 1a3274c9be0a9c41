// Package docs discovers the documentation files shipped with a
// dotfiles repository (README, INSTALL, CHEATSHEET and friends).
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// priorityOrder ranks documentation files for listing and for picking
// a default.
var priorityOrder = []string{
	"README",
	"INSTALL",
	"QUICKSTART",
	"SETUP",
	"CONFIG",
	"USAGE",
	"CHEATSHEET",
	"GETTING_STARTED",
}

// File is a discovered documentation file.
type File struct {
	Name string // base name, e.g. "README.md"
	Path string // absolute path
}

// IsMarkdown reports whether the file should be rendered as markdown.
func (f File) IsMarkdown() bool {
	ext := strings.ToLower(filepath.Ext(f.Name))
	return ext == ".md" || ext == ".markdown"
}

// Discover lists the documentation files in dir, sorted by priority
// and then by name.
func Discover(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []File

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if rank(entry.Name()) < len(priorityOrder) {
			path, err := filepath.Abs(filepath.Join(dir, entry.Name()))
			if err != nil {
				return nil, err
			}

			files = append(files, File{Name: entry.Name(), Path: path})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		ri, rj := rank(files[i].Name), rank(files[j].Name)
		if ri != rj {
			return ri < rj
		}

		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Find returns the first discovered file whose name matches the query
// (case-insensitive prefix match on the stem), or the highest-priority
// file when the query is empty.
func Find(dir, query string) (File, error) {
	files, err := Discover(dir)
	if err != nil {
		return File{}, err
	}

	if len(files) == 0 {
		return File{}, fmt.Errorf("no documentation files in %s", dir)
	}

	if query == "" {
		return files[0], nil
	}

	query = strings.ToUpper(query)

	for _, f := range files {
		if strings.HasPrefix(strings.ToUpper(stem(f.Name)), query) {
			return f, nil
		}
	}

	return File{}, fmt.Errorf("no documentation file matching %q in %s", query, dir)
}

// rank returns the priority index of a file name, or len(priorityOrder)
// when it is not a documentation file. The match is case-sensitive on
// the stem: README.md is documentation, install.sh is a script.
func rank(name string) int {
	for i, prefix := range priorityOrder {
		if strings.HasPrefix(stem(name), prefix) {
			return i
		}
	}

	return len(priorityOrder)
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
