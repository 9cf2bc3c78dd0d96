package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"shuttercheck/internal/core/domain"
	"shuttercheck/internal/core/ports"
)

// ExiftoolExtractor implements the Extractor port by shelling out to the
// exiftool binary in JSON mode. It understands every format exiftool
// does and surfaces decoded maker-note fields (ShutterCount, Sony serial
// keys) that the pure-Go reader cannot.
type ExiftoolExtractor struct {
	bin string
}

// NewExiftoolExtractor creates a new exiftool-based extractor
func NewExiftoolExtractor() *ExiftoolExtractor {
	return &ExiftoolExtractor{bin: "exiftool"}
}

// Name identifies the backend for diagnostics
func (e *ExiftoolExtractor) Name() string { return "exiftool" }

// IsAvailable reports whether the exiftool binary is on PATH
func (e *ExiftoolExtractor) IsAvailable() bool {
	_, err := exec.LookPath(e.bin)
	return err == nil
}

// Available returns nil or a MissingBackendError with an install hint
func (e *ExiftoolExtractor) Available() error {
	if e.IsAvailable() {
		return nil
	}
	return &domain.MissingBackendError{
		Backend: e.bin,
		Hint:    "install it from https://exiftool.org or your package manager, e.g. 'apt install libimage-exiftool-perl' or 'brew install exiftool'",
	}
}

// Extract runs `exiftool -json <path>` and flattens the result
func (e *ExiftoolExtractor) Extract(ctx context.Context, path string) (ports.TagMap, error) {
	out, err := exec.CommandContext(ctx, e.bin, "-json", path).Output()
	if err != nil {
		return nil, &domain.FileReadError{Path: path, Err: err}
	}

	tags, err := parseExiftoolJSON(out)
	if err != nil {
		return nil, &domain.FileReadError{Path: path, Err: err}
	}
	return tags, nil
}

// parseExiftoolJSON flattens exiftool's one-element JSON array into a
// TagMap, stringifying the loosely-typed values.
func parseExiftoolJSON(data []byte) (ports.TagMap, error) {
	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("unexpected exiftool output: %w", err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("exiftool returned no metadata")
	}

	tags := make(ports.TagMap, len(objects[0]))
	for key, value := range objects[0] {
		tags[key] = stringifyTag(value)
	}
	return tags, nil
}

func stringifyTag(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// JSON numbers arrive as float64; keep integers undecorated.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
