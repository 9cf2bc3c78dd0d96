package exifmeta

import (
	"bytes"
	"encoding/binary"
	"strings"

	"shuttercheck/internal/core/domain"
)

// countDecoder pulls an actuation count out of a vendor maker-note blob.
// Decoders are pure: blob in, count out, ok=false when the blob does not
// carry one.
type countDecoder func(blob []byte) (int64, bool)

// countDecoders maps a camera make keyword to its maker-note strategy.
// Makes without an entry simply yield an unknown count; nothing else in
// the normalizer special-cases vendors.
var countDecoders = map[string]countDecoder{
	"NIKON":  nikonCount,
	"PENTAX": pentaxCount,
}

// Vendor note headers. A blob without its vendor's magic is not a maker
// note (truncated, re-encoded, or mangled in transit) and must never be
// decoded as one.
var (
	nikonHeader  = []byte("Nikon\x00")
	pentaxHeader = []byte("PENTAX ")
)

const (
	// Nikon stores the total release count as a big-endian uint32 at a
	// fixed offset past the note header.
	nikonCountOffset = 8

	// Pentax carries the frame counter little-endian shortly past its
	// header.
	pentaxCountOffset = 4
)

// DecodeShutterCount applies the maker-note strategy registered for the
// camera make. Unrecognized makes, blobs without the vendor's header,
// and short or empty blobs degrade to unknown; decoding never fails past
// the field boundary.
func DecodeShutterCount(cameraMake string, blob []byte) domain.ShutterCount {
	if len(blob) == 0 {
		return domain.ShutterCount{}
	}
	upper := strings.ToUpper(cameraMake)
	for keyword, decode := range countDecoders {
		if !strings.Contains(upper, keyword) {
			continue
		}
		if v, ok := decode(blob); ok {
			return domain.CountOf(v)
		}
		return domain.ShutterCount{}
	}
	return domain.ShutterCount{}
}

func nikonCount(blob []byte) (int64, bool) {
	if !bytes.HasPrefix(blob, nikonHeader) {
		return 0, false
	}
	off := len(nikonHeader) + nikonCountOffset
	if len(blob) < off+4 {
		return 0, false
	}
	return int64(binary.BigEndian.Uint32(blob[off:])), true
}

func pentaxCount(blob []byte) (int64, bool) {
	if !bytes.HasPrefix(blob, pentaxHeader) {
		return 0, false
	}
	off := len(pentaxHeader) + pentaxCountOffset
	if len(blob) < off+4 {
		return 0, false
	}
	return int64(binary.LittleEndian.Uint32(blob[off:])), true
}
