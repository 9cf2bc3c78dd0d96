package extractor

import (
	"context"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"

	"shuttercheck/internal/core/domain"
	"shuttercheck/internal/core/ports"
)

func init() {
	// Pull maker-note fields (Nikon/Canon) into the tag walk.
	exif.RegisterParsers(mknote.All...)
}

// GoexifExtractor implements the Extractor port with the pure-Go goexif
// reader. It needs no external tooling but only understands JPEG/TIFF
// containers and a subset of maker notes.
type GoexifExtractor struct{}

// NewGoexifExtractor creates a new goexif-based extractor
func NewGoexifExtractor() *GoexifExtractor {
	return &GoexifExtractor{}
}

// Name identifies the backend for diagnostics
func (e *GoexifExtractor) Name() string { return "goexif" }

// Extract decodes the EXIF block of one file into a tag mapping.
// Unreadable files and files without EXIF data fail as a whole; the
// caller skips them and moves on.
func (e *GoexifExtractor) Extract(ctx context.Context, path string) (ports.TagMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.FileReadError{Path: path, Err: err}
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, &domain.FileReadError{Path: path, Err: err}
	}

	tags := ports.TagMap{}
	walker := tagWalker{tags: tags}
	if err := x.Walk(walker); err != nil {
		return nil, &domain.FileReadError{Path: path, Err: err}
	}
	return tags, nil
}

// tagWalker collects every tag goexif surfaces into a TagMap
type tagWalker struct {
	tags ports.TagMap
}

func (w tagWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	// Undefined-format tags (maker notes and the like) are raw bytes;
	// tag.String() would quote them and strip non-printable bytes, and
	// the maker-note decoders need the blob intact.
	if tag.Format() == tiff.UndefVal {
		w.tags[string(name)] = string(tag.Val)
		return nil
	}
	// ASCII tags carry their value directly; everything else gets the
	// tag's string rendering (rationals as "n/d").
	if s, err := tag.StringVal(); err == nil {
		w.tags[string(name)] = s
		return nil
	}
	w.tags[string(name)] = tag.String()
	return nil
}
