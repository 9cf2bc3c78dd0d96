package domain

import "fmt"

// DirectoryAccessError means the target directory is missing or unreadable.
// This is fatal for the run.
type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot access directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// FileReadError means a single file could not be read or its metadata
// could not be extracted. The file is skipped; the run continues.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("cannot read metadata from %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// FieldParseError means one tag value could not be parsed. The field
// degrades to unknown; the record survives.
type FieldParseError struct {
	Field string
	Raw   string
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("unparseable %s value %q", e.Field, e.Raw)
}

// MissingBackendError means the selected extraction backend is not
// available on this system. Fatal, with an install hint.
type MissingBackendError struct {
	Backend string
	Hint    string
}

func (e *MissingBackendError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("extraction backend %q is not available", e.Backend)
	}
	return fmt.Sprintf("extraction backend %q is not available (%s)", e.Backend, e.Hint)
}
