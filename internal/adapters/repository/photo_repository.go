package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"shuttercheck/internal/core/domain"
)

// PhotoRepository enumerates candidate image files in a single directory.
// It does not recurse: shutter-count diagnostics run over one folder of
// sample shots, and duplicate basenames across subfolders would muddy
// the timeline.
type PhotoRepository struct {
	dir  string
	exts map[string]bool // nil or empty means accept every file
}

// NewPhotoRepository creates an enumerator for dir. Extensions are
// matched case-insensitively, with or without a leading dot; an empty
// list disables filtering and leaves format recognition to the backend.
func NewPhotoRepository(dir string, extensions []string) *PhotoRepository {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}
	return &PhotoRepository{dir: dir, exts: exts}
}

// List returns the matching file paths in directory order. An empty
// result is not an error; a missing or unreadable directory is.
func (r *PhotoRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, &domain.DirectoryAccessError{Path: r.dir, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if len(r.exts) > 0 && !r.exts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		paths = append(paths, filepath.Join(r.dir, name))
	}
	return paths, nil
}
