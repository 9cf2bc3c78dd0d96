package extractor

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rwcarlsen/goexif/tiff"

	"shuttercheck/internal/core/domain"
	"shuttercheck/internal/core/ports"
)

// decodeTestTag builds the wire form of one IFD entry (value stored past
// the entry, little-endian) and decodes it through the tiff package, so
// the walker sees tags shaped exactly like the ones exif.Decode yields.
func decodeTestTag(t *testing.T, dataType uint16, payload []byte) *tiff.Tag {
	t.Helper()

	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint16(0x927c))       // tag id
	binary.Write(buf, binary.LittleEndian, dataType)             // field type
	binary.Write(buf, binary.LittleEndian, uint32(len(payload))) // count
	binary.Write(buf, binary.LittleEndian, uint32(12))           // value offset
	buf.Write(payload)

	tag, err := tiff.DecodeTag(bytes.NewReader(buf.Bytes()), binary.LittleEndian)
	if err != nil {
		t.Fatalf("failed to decode test tag: %v", err)
	}
	return tag
}

func TestTagWalker_PreservesUndefinedBytes(t *testing.T) {
	// Undefined-format tags must come through byte-for-byte, control
	// bytes included; a printable rendering would corrupt maker notes.
	payload := []byte("Nikon\x00\x02\x10\x00\x00\x00\x00\x01\x02\x03\x04\x05")
	tag := decodeTestTag(t, 7, payload) // 7 = undefined

	tags := ports.TagMap{}
	if err := (tagWalker{tags: tags}).Walk("MakerNote", tag); err != nil {
		t.Fatal(err)
	}

	if got := tags["MakerNote"]; got != string(payload) {
		t.Errorf("MakerNote = %q, want the raw payload %q", got, payload)
	}
}

func TestTagWalker_AsciiValue(t *testing.T) {
	tag := decodeTestTag(t, 2, []byte("NIKON CORPORATION\x00")) // 2 = ascii

	tags := ports.TagMap{}
	if err := (tagWalker{tags: tags}).Walk("Make", tag); err != nil {
		t.Fatal(err)
	}

	if got := tags["Make"]; got != "NIKON CORPORATION" {
		t.Errorf("Make = %q, want 'NIKON CORPORATION'", got)
	}
}

func TestGoexifExtractor_MissingFile(t *testing.T) {
	ext := NewGoexifExtractor()
	_, err := ext.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var readErr *domain.FileReadError
	if !errors.As(err, &readErr) {
		t.Errorf("error type = %T, want *domain.FileReadError", err)
	}
}

func TestGoexifExtractor_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.jpg")
	if err := os.WriteFile(path, []byte("definitely not a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	ext := NewGoexifExtractor()
	_, err := ext.Extract(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for a file without EXIF data")
	}

	var readErr *domain.FileReadError
	if !errors.As(err, &readErr) {
		t.Errorf("error type = %T, want *domain.FileReadError", err)
	}
}

func TestGoexifExtractor_Name(t *testing.T) {
	if got := NewGoexifExtractor().Name(); got != "goexif" {
		t.Errorf("Name() = %q, want goexif", got)
	}
}
