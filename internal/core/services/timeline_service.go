package services

import (
	"context"
	"sort"

	"shuttercheck/internal/core/domain"
)

// TimelineService filters records, orders them chronologically, and
// scans the ordered counter series for decreases
type TimelineService struct{}

// NewTimelineService creates a new timeline service
func NewTimelineService() *TimelineService {
	return &TimelineService{}
}

// TimelineRequest represents a request to build a timeline
type TimelineRequest struct {
	Records        []domain.PhotoRecord
	ExpectedModel  string // Empty disables the model filter
	SubstringMatch bool   // Substring instead of exact case-insensitive match
}

// TimelineResponse represents the built timeline
type TimelineResponse struct {
	Records  []domain.PhotoRecord
	Warnings []domain.AnomalyWarning
	Matched  int // Records that passed the model filter
	Total    int // Records before filtering
}

// Execute runs filter, sort, and anomaly detection in sequence. Input
// records are never mutated; filtering and sorting work on a copy.
func (s *TimelineService) Execute(ctx context.Context, req TimelineRequest) (*TimelineResponse, error) {
	filtered := s.FilterByModel(req.Records, req.ExpectedModel, req.SubstringMatch)
	ordered := s.SortChronological(filtered)

	return &TimelineResponse{
		Records:  ordered,
		Warnings: s.DetectAnomalies(ordered),
		Matched:  len(filtered),
		Total:    len(req.Records),
	}, nil
}

// FilterByModel keeps records whose camera model matches expected,
// case-insensitively. An empty expected model disables filtering and
// returns a copy of the input unchanged.
func (s *TimelineService) FilterByModel(records []domain.PhotoRecord, expected string, substring bool) []domain.PhotoRecord {
	out := make([]domain.PhotoRecord, 0, len(records))
	if expected == "" {
		return append(out, records...)
	}
	for _, rec := range records {
		if rec.MatchesModel(expected, substring) {
			out = append(out, rec)
		}
	}
	return out
}

// SortChronological returns the records sorted ascending by timestamp.
// The sort is stable and unknown timestamps never compare before
// anything, so records without a parseable timestamp end up appended at
// the end in their original relative order. Sorting an already-sorted
// sequence is a no-op.
func (s *TimelineService) SortChronological(records []domain.PhotoRecord) []domain.PhotoRecord {
	out := make([]domain.PhotoRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		// Known timestamps sort ahead of unknown ones.
		if out[i].Timestamp.Known != out[j].Timestamp.Known {
			return out[i].Timestamp.Known
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// DetectAnomalies runs a single forward scan over the ordered sequence,
// comparing each adjacent pair. A pair is compared only when both
// records carry a known timestamp and a known count; no anomaly is ever
// inferred across a gap. One warning per decreasing pair, uniformly,
// regardless of magnitude.
func (s *TimelineService) DetectAnomalies(ordered []domain.PhotoRecord) []domain.AnomalyWarning {
	var warnings []domain.AnomalyWarning

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if !prev.Timestamp.Known || !cur.Timestamp.Known {
			continue
		}
		if !prev.ShutterCount.Known || !cur.ShutterCount.Known {
			continue
		}
		if cur.ShutterCount.Value < prev.ShutterCount.Value {
			warnings = append(warnings, domain.AnomalyWarning{
				PrevIndex: i - 1,
				Index:     i,
				PrevFile:  prev.Filename,
				File:      cur.Filename,
				PrevTime:  prev.Timestamp.String(),
				Time:      cur.Timestamp.String(),
				PrevCount: prev.ShutterCount.Value,
				Count:     cur.ShutterCount.Value,
			})
		}
	}
	return warnings
}
