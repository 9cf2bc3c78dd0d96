package extractor

import (
	"testing"
)

func TestParseExiftoolJSON(t *testing.T) {
	data := []byte(`[{
		"SourceFile": "DSC_0001.NEF",
		"Model": "NIKON Z 6",
		"ShutterCount": 15234,
		"FNumber": 2.8,
		"ISO": 400,
		"AutoFocus": true,
		"LensID": null
	}]`)

	tags, err := parseExiftoolJSON(data)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"Model":        "NIKON Z 6",
		"ShutterCount": "15234",
		"FNumber":      "2.8",
		"ISO":          "400",
		"AutoFocus":    "true",
		"LensID":       "",
	}
	for key, expected := range want {
		if tags[key] != expected {
			t.Errorf("tags[%q] = %q, want %q", key, tags[key], expected)
		}
	}
}

func TestParseExiftoolJSON_EmptyArray(t *testing.T) {
	if _, err := parseExiftoolJSON([]byte(`[]`)); err == nil {
		t.Error("expected error for empty array")
	}
}

func TestParseExiftoolJSON_Malformed(t *testing.T) {
	if _, err := parseExiftoolJSON([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed output")
	}
}

func TestStringifyTag(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "NIKON Z 6", "NIKON Z 6"},
		{"whole float", float64(15234), "15234"},
		{"fractional float", 2.8, "2.8"},
		{"large count", float64(1_000_001), "1000001"},
		{"bool", true, "true"},
		{"nil", nil, ""},
		{"slice", []any{"a", "b"}, "[a b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stringifyTag(tt.value); got != tt.want {
				t.Errorf("stringifyTag(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestExiftoolExtractor_Name(t *testing.T) {
	if got := NewExiftoolExtractor().Name(); got != "exiftool" {
		t.Errorf("Name() = %q, want exiftool", got)
	}
}
