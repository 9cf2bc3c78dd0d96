package domain

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp is a capture time extracted from EXIF metadata.
// Known is false when the source tag was missing or unparseable; in that
// case Time is meaningless and Raw holds whatever string the tag carried
// (possibly empty). A zero time never stands in for "unknown".
type Timestamp struct {
	Time  time.Time
	Raw   string
	Known bool
}

// String returns the original tag encoding, or "unknown" when absent.
func (t Timestamp) String() string {
	if !t.Known {
		return "unknown"
	}
	return t.Raw
}

// Before reports whether t sorts strictly before other.
// Unknown timestamps never sort before anything, so a stable sort
// leaves them where they are relative to each other.
func (t Timestamp) Before(other Timestamp) bool {
	if !t.Known || !other.Known {
		return false
	}
	return t.Time.Before(other.Time)
}

// ShutterCount is the vendor-tracked actuation counter.
// Known is false when the tag was missing, non-numeric, or used a vendor
// encoding we do not decode; Raw then holds the undecoded tag text, if
// there was any.
type ShutterCount struct {
	Value int64
	Raw   string
	Known bool
}

// CountOf wraps a known counter value.
func CountOf(v int64) ShutterCount {
	return ShutterCount{Value: v, Known: true}
}

func (c ShutterCount) String() string {
	if !c.Known {
		return "unknown"
	}
	return fmt.Sprintf("%d", c.Value)
}

// PhotoRecord holds the normalized metadata of one readable image file.
// Records are values: the pipeline copies and reorders them but never
// mutates one after normalization.
//
// Free-text fields use the empty string as "absent"; Width/Height use 0.
type PhotoRecord struct {
	Filename     string
	Timestamp    Timestamp
	CameraMake   string
	CameraModel  string
	Serial       string
	Lens         string
	ISO          string
	Aperture     string
	ShutterSpeed string
	Width        int
	Height       int
	ShutterCount ShutterCount
}

// MatchesModel compares the record's camera model against expected,
// case-insensitively. Exact match by default; substring match when
// substring is true. A record with no model never matches.
func (r PhotoRecord) MatchesModel(expected string, substring bool) bool {
	if r.CameraModel == "" || expected == "" {
		return false
	}
	if substring {
		return strings.Contains(strings.ToUpper(r.CameraModel), strings.ToUpper(expected))
	}
	return strings.EqualFold(r.CameraModel, expected)
}

// Resolution formats Width x Height, or "unknown" when either is absent.
func (r PhotoRecord) Resolution() string {
	if r.Width <= 0 || r.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d x %d", r.Width, r.Height)
}

// AnomalyWarning flags a chronologically adjacent pair of records whose
// shutter count decreased. Indices refer to positions in the sorted
// timeline the detector ran over.
type AnomalyWarning struct {
	PrevIndex int
	Index     int
	PrevFile  string
	File      string
	PrevTime  string
	Time      string
	PrevCount int64
	Count     int64
}

func (w AnomalyWarning) String() string {
	return fmt.Sprintf("shutter count decreased %d -> %d between index %d (%s, %s) and index %d (%s, %s)",
		w.PrevCount, w.Count,
		w.PrevIndex, w.PrevFile, w.PrevTime,
		w.Index, w.File, w.Time)
}
