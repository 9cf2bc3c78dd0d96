package ports

import "context"

// TagMap is the loosely-typed field mapping an extraction backend returns.
// Keys are backend-specific tag names; values are their stringified raw
// values. The normalizer absorbs naming differences between backends
// through alias lookup, so nothing above it depends on which backend ran.
type TagMap map[string]string

// Extractor defines the port for metadata extraction backends
type Extractor interface {
	// Extract reads metadata from one file. A failure means the whole
	// file is skipped, never that the run aborts.
	Extract(ctx context.Context, path string) (TagMap, error)

	// Name identifies the backend for diagnostics
	Name() string
}

// PhotoRepository defines the port for enumerating candidate image files
type PhotoRepository interface {
	// List returns paths of candidate files in the target directory,
	// non-recursive, in unspecified order. Chronological ordering is
	// established later by the timeline sort.
	List(ctx context.Context) ([]string, error)
}
