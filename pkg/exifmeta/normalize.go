package exifmeta

import (
	"strconv"
	"strings"
	"time"

	"shuttercheck/internal/core/domain"
	"shuttercheck/internal/core/ports"
)

// Alias lists per semantic field, in priority order. The two backends
// (goexif and exiftool) name the same tags differently, and some readers
// prefix the IFD ("Image Model", "EXIF DateTimeOriginal"); trying each
// alias in order makes the rest of the pipeline backend-agnostic.
var (
	timestampTags = []string{
		"DateTimeOriginal",
		"EXIF DateTimeOriginal",
		"CreateDate",
		"DateTimeDigitized",
		"DateTime",
		"Image DateTime",
	}

	modelTags = []string{"Model", "Image Model", "CameraModelName"}
	makeTags  = []string{"Make", "Image Make"}

	// Vendor-specific counter tags first, generic image numbers last.
	shutterTags = []string{
		"ShutterCount",
		"MakerNote TotalShutterReleases",
		"ImageCount",
		"ImageNumber",
		"TotalShot",
		"ActuationCount",
		"ShutterActuations",
		"TotalPhotos",
	}

	serialTags = []string{
		"SerialNumber",
		"CameraSerialNumber",
		"InternalSerialNumber",
		"BodySerialNumber",
		"SerialNumber2",
	}

	// Keys Sony hides serial-like data under inside the maker note.
	sonySerialTags = []string{
		"SerialNumber",
		"InternalSerialNumber",
		"CameraSerialNumber",
		"BodySerialNumber",
		"SerialNumber2",
		"Sony_0x0018",
		"Sony_0xB000",
		"Sony_0xB001",
		"SonyModelID",
		"FirmwareVersion2",
	}

	lensTags     = []string{"LensModel", "Lens", "LensID"}
	isoTags      = []string{"ISO", "ISOSpeedRatings", "EXIF ISOSpeedRatings"}
	apertureTags = []string{"Aperture", "FNumber", "EXIF FNumber"}
	speedTags    = []string{"ShutterSpeed", "ShutterSpeedValue", "ExposureTime", "EXIF ExposureTime"}
	widthTags    = []string{"ImageWidth", "ExifImageWidth", "PixelXDimension"}
	heightTags   = []string{"ImageHeight", "ExifImageHeight", "PixelYDimension"}

	makerNoteTags = []string{"MakerNote", "EXIF MakerNote"}
)

// timestampLayouts are tried in order; the colon-separated form is the
// EXIF standard, the rest show up in exiftool output and sloppy writers.
var timestampLayouts = []string{
	"2006:01:02 15:04:05",
	"2006-01-02 15:04:05",
	"2006:01:02 15:04:05-07:00",
	"2006:01:02 15:04:05.999",
}

// Normalize converts a raw tag mapping into a PhotoRecord. It never
// fails: every field either parses or degrades to its unknown value, so
// an empty mapping yields a fully-unknown record for the given filename.
func Normalize(filename string, tags ports.TagMap) domain.PhotoRecord {
	rec := domain.PhotoRecord{Filename: filename}

	if raw, ok := lookup(tags, timestampTags); ok {
		rec.Timestamp = ParseTimestamp(raw)
	}
	if raw, ok := lookup(tags, makeTags); ok {
		rec.CameraMake = raw
	}
	if raw, ok := lookup(tags, modelTags); ok {
		rec.CameraModel = raw
	}
	if raw, ok := lookup(tags, lensTags); ok {
		rec.Lens = raw
	}
	if raw, ok := lookup(tags, isoTags); ok {
		rec.ISO = raw
	}
	if raw, ok := lookup(tags, apertureTags); ok {
		rec.Aperture = raw
	}
	if raw, ok := lookup(tags, speedTags); ok {
		rec.ShutterSpeed = raw
	}
	if raw, ok := lookup(tags, widthTags); ok {
		rec.Width = parseDimension(raw)
	}
	if raw, ok := lookup(tags, heightTags); ok {
		rec.Height = parseDimension(raw)
	}

	rec.Serial = normalizeSerial(rec.CameraMake, tags)
	rec.ShutterCount = normalizeCount(rec.CameraMake, tags)

	return rec
}

// lookup returns the first present, non-empty value among the aliases.
func lookup(tags ports.TagMap, aliases []string) (string, bool) {
	for _, key := range aliases {
		if raw, ok := tags[key]; ok {
			if v := strings.TrimSpace(raw); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// ParseTimestamp parses an EXIF date-time string. The raw encoding is
// preserved for display and comparison; no timezone conversion happens.
func ParseTimestamp(raw string) domain.Timestamp {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return domain.Timestamp{Time: t, Raw: raw, Known: true}
		}
	}
	return domain.Timestamp{Raw: raw}
}

// ParseCount extracts a non-negative integer counter from a raw tag
// value: a plain integer, a float, or a "num/den" rational. On failure
// the raw text is preserved for diagnostics.
func ParseCount(raw string) domain.ShutterCount {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.ShutterCount{}
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 {
			return domain.ShutterCount{Raw: s}
		}
		return countFromFloat(n/d, s)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return countFromFloat(f, s)
	}
	return domain.ShutterCount{Raw: s}
}

func countFromFloat(f float64, raw string) domain.ShutterCount {
	v := int64(f)
	if v < 0 {
		return domain.ShutterCount{Raw: raw}
	}
	return domain.CountOf(v)
}

// normalizeCount tries the shutter-count aliases first, then falls back
// to decoding the maker-note blob for makes we have a strategy for. A
// present-but-unparseable alias value survives in Raw when the blob
// cannot rescue the field.
func normalizeCount(cameraMake string, tags ports.TagMap) domain.ShutterCount {
	var failed domain.ShutterCount
	if raw, ok := lookup(tags, shutterTags); ok {
		c := ParseCount(raw)
		if c.Known {
			return c
		}
		failed = c
	}
	// Blobs are raw bytes, not text; no trimming here.
	for _, key := range makerNoteTags {
		if blob, ok := tags[key]; ok && blob != "" {
			if c := DecodeShutterCount(cameraMake, []byte(blob)); c.Known {
				return c
			}
		}
	}
	return failed
}

// normalizeSerial extracts the body serial number. Sony bodies scatter
// serial-like values across maker-note keys, sometimes hex-encoded with
// a 0x prefix; other makes use the standard tags. Unknown makes yield
// an absent serial.
func normalizeSerial(cameraMake string, tags ports.TagMap) string {
	if strings.Contains(strings.ToUpper(cameraMake), "SONY") {
		if s := sonySerial(tags); s != "" {
			return s
		}
	}
	if raw, ok := lookup(tags, serialTags); ok {
		return raw
	}
	return genericSerialSweep(tags)
}

func sonySerial(tags ports.TagMap) string {
	for _, key := range sonySerialTags {
		raw, ok := tags[key]
		if !ok {
			continue
		}
		v := strings.TrimSpace(raw)
		if v == "" || v == "None" || len(v) < 5 {
			continue
		}
		if strings.HasPrefix(v, "0x") {
			if n, err := strconv.ParseInt(v[2:], 16, 64); err == nil {
				return strconv.FormatInt(n, 10)
			}
		}
		return v
	}
	return genericSerialSweep(tags)
}

// genericSerialSweep scans all keys for anything serial-shaped.
// Iteration order over the map is not stable, so prefer the
// lexicographically smallest matching key for reproducible output.
func genericSerialSweep(tags ports.TagMap) string {
	best := ""
	bestKey := ""
	for key, raw := range tags {
		if !strings.Contains(strings.ToLower(key), "serial") {
			continue
		}
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if bestKey == "" || key < bestKey {
			bestKey = key
			best = v
		}
	}
	return best
}

// Issues lists the fields of a normalized record whose source tag was
// present but could not be decoded. These are recoverable: the record
// already carries the unknown value, this just explains it.
func Issues(rec domain.PhotoRecord) []error {
	var issues []error
	if !rec.Timestamp.Known && rec.Timestamp.Raw != "" {
		issues = append(issues, &domain.FieldParseError{Field: "timestamp", Raw: rec.Timestamp.Raw})
	}
	if !rec.ShutterCount.Known && rec.ShutterCount.Raw != "" {
		issues = append(issues, &domain.FieldParseError{Field: "shutter count", Raw: rec.ShutterCount.Raw})
	}
	return issues
}

func parseDimension(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
