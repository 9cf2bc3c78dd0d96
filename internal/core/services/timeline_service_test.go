package services

import (
	"context"
	"testing"
	"time"

	"shuttercheck/internal/core/domain"
)

func recordAt(file, model string, ts string, count int64) domain.PhotoRecord {
	t, err := time.Parse("2006:01:02 15:04:05", ts)
	if err != nil {
		panic(err)
	}
	return domain.PhotoRecord{
		Filename:     file,
		CameraModel:  model,
		Timestamp:    domain.Timestamp{Time: t, Raw: ts, Known: true},
		ShutterCount: domain.CountOf(count),
	}
}

func recordNoTime(file string, count int64) domain.PhotoRecord {
	return domain.PhotoRecord{
		Filename:     file,
		Timestamp:    domain.Timestamp{Raw: "garbled"},
		ShutterCount: domain.CountOf(count),
	}
}

func recordNoCount(file, ts string) domain.PhotoRecord {
	rec := recordAt(file, "", ts, 0)
	rec.ShutterCount = domain.ShutterCount{}
	return rec
}

func TestTimelineService_IncreasingCounts(t *testing.T) {
	// Three files T1 < T2 < T3 with counts 100, 150, 200: clean history.
	svc := NewTimelineService()
	resp, err := svc.Execute(context.Background(), TimelineRequest{
		Records: []domain.PhotoRecord{
			recordAt("f3.jpg", "", "2023:03:01 10:00:00", 200),
			recordAt("f1.jpg", "", "2023:01:01 10:00:00", 100),
			recordAt("f2.jpg", "", "2023:02:01 10:00:00", 150),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(resp.Warnings) != 0 {
		t.Errorf("warnings = %d, want 0", len(resp.Warnings))
	}
	want := []string{"f1.jpg", "f2.jpg", "f3.jpg"}
	for i, rec := range resp.Records {
		if rec.Filename != want[i] {
			t.Errorf("Records[%d] = %s, want %s", i, rec.Filename, want[i])
		}
	}
}

func TestTimelineService_DetectsDecrease(t *testing.T) {
	// Counts 200, 100, 150 over T1 < T2 < T3: exactly one warning, on
	// the T1 -> T2 transition.
	svc := NewTimelineService()
	resp, err := svc.Execute(context.Background(), TimelineRequest{
		Records: []domain.PhotoRecord{
			recordAt("f1.jpg", "", "2023:01:01 10:00:00", 200),
			recordAt("f2.jpg", "", "2023:02:01 10:00:00", 100),
			recordAt("f3.jpg", "", "2023:03:01 10:00:00", 150),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(resp.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(resp.Warnings))
	}
	w := resp.Warnings[0]
	if w.PrevIndex != 0 || w.Index != 1 {
		t.Errorf("warning indices = %d,%d, want 0,1", w.PrevIndex, w.Index)
	}
	if w.PrevCount != 200 || w.Count != 100 {
		t.Errorf("warning counts = %d,%d, want 200,100", w.PrevCount, w.Count)
	}
	if w.PrevFile != "f1.jpg" || w.File != "f2.jpg" {
		t.Errorf("warning files = %s,%s", w.PrevFile, w.File)
	}
}

func TestTimelineService_WarningPerDecreasingPair(t *testing.T) {
	svc := NewTimelineService()
	resp, _ := svc.Execute(context.Background(), TimelineRequest{
		Records: []domain.PhotoRecord{
			recordAt("a.jpg", "", "2023:01:01 10:00:00", 500),
			recordAt("b.jpg", "", "2023:01:02 10:00:00", 400),
			recordAt("c.jpg", "", "2023:01:03 10:00:00", 300),
			recordAt("d.jpg", "", "2023:01:04 10:00:00", 300),
			recordAt("e.jpg", "", "2023:01:05 10:00:00", 299),
		},
	})

	// Three decreasing pairs; the equal pair is fine.
	if len(resp.Warnings) != 3 {
		t.Errorf("warnings = %d, want 3", len(resp.Warnings))
	}
}

func TestTimelineService_ModelFilter(t *testing.T) {
	// Exact case-insensitive policy: "NIKON Z 6" does not match an
	// expectation of "NIKON Z 6II", but "Nikon Z 6II" does.
	svc := NewTimelineService()
	resp, err := svc.Execute(context.Background(), TimelineRequest{
		Records: []domain.PhotoRecord{
			recordAt("z6.jpg", "NIKON Z 6", "2023:01:01 10:00:00", 100),
			recordAt("z6ii.jpg", "Nikon Z 6II", "2023:02:01 10:00:00", 200),
		},
		ExpectedModel: "NIKON Z 6II",
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Matched != 1 || resp.Total != 2 {
		t.Errorf("Matched/Total = %d/%d, want 1/2", resp.Matched, resp.Total)
	}
	if len(resp.Records) != 1 || resp.Records[0].Filename != "z6ii.jpg" {
		t.Errorf("filtered records = %v", resp.Records)
	}
}

func TestTimelineService_SubstringFilter(t *testing.T) {
	svc := NewTimelineService()
	records := []domain.PhotoRecord{
		recordAt("a.jpg", "NIKON Z 6", "2023:01:01 10:00:00", 1),
		recordAt("b.jpg", "NIKON Z 6II", "2023:01:02 10:00:00", 2),
	}

	got := svc.FilterByModel(records, "z 6", true)
	if len(got) != 2 {
		t.Errorf("substring match kept %d records, want 2", len(got))
	}

	got = svc.FilterByModel(records, "z 6", false)
	if len(got) != 0 {
		t.Errorf("exact match kept %d records, want 0", len(got))
	}
}

func TestTimelineService_FilterDisabledIsIdentity(t *testing.T) {
	svc := NewTimelineService()
	records := []domain.PhotoRecord{
		recordAt("a.jpg", "NIKON Z 6", "2023:01:01 10:00:00", 1),
		recordNoTime("b.jpg", 2),
		{Filename: "c.jpg"},
	}

	got := svc.FilterByModel(records, "", false)
	if len(got) != len(records) {
		t.Fatalf("identity filter dropped records: %d != %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Filename != records[i].Filename {
			t.Errorf("record %d reordered", i)
		}
	}
}

func TestTimelineService_UnknownTimestampsSortLast(t *testing.T) {
	svc := NewTimelineService()
	ordered := svc.SortChronological([]domain.PhotoRecord{
		recordNoTime("x.jpg", 10),
		recordAt("b.jpg", "", "2023:02:01 10:00:00", 2),
		recordNoTime("y.jpg", 20),
		recordAt("a.jpg", "", "2023:01:01 10:00:00", 1),
	})

	want := []string{"a.jpg", "b.jpg", "x.jpg", "y.jpg"}
	for i, rec := range ordered {
		if rec.Filename != want[i] {
			t.Errorf("ordered[%d] = %s, want %s", i, rec.Filename, want[i])
		}
	}

	// Idempotence: sorting the sorted sequence changes nothing.
	again := svc.SortChronological(ordered)
	for i := range ordered {
		if again[i].Filename != ordered[i].Filename {
			t.Errorf("re-sort moved %s", ordered[i].Filename)
		}
	}
}

func TestTimelineService_SortDoesNotMutateInput(t *testing.T) {
	svc := NewTimelineService()
	input := []domain.PhotoRecord{
		recordAt("b.jpg", "", "2023:02:01 10:00:00", 2),
		recordAt("a.jpg", "", "2023:01:01 10:00:00", 1),
	}

	svc.SortChronological(input)
	if input[0].Filename != "b.jpg" {
		t.Error("input slice was reordered")
	}
}

func TestTimelineService_UnknownCountSkipsBothSides(t *testing.T) {
	// A present-but-unparseable count sits in the timeline, but no
	// adjacency comparison touches it from either side.
	svc := NewTimelineService()
	resp, _ := svc.Execute(context.Background(), TimelineRequest{
		Records: []domain.PhotoRecord{
			recordAt("a.jpg", "", "2023:01:01 10:00:00", 300),
			recordNoCount("b.jpg", "2023:02:01 10:00:00"),
			recordAt("c.jpg", "", "2023:03:01 10:00:00", 100),
		},
	})

	if len(resp.Records) != 3 {
		t.Fatalf("records = %d, want all 3 in timeline", len(resp.Records))
	}
	// 300 -> unknown -> 100: both pairs involve an unknown side, and no
	// anomaly is inferred across the gap.
	if len(resp.Warnings) != 0 {
		t.Errorf("warnings = %d, want 0", len(resp.Warnings))
	}
}

func TestTimelineService_UnknownTimestampNeverWarns(t *testing.T) {
	// The unknown-timestamp record lands at the end with a low count;
	// its placement must not fabricate a decrease.
	svc := NewTimelineService()
	resp, _ := svc.Execute(context.Background(), TimelineRequest{
		Records: []domain.PhotoRecord{
			recordAt("a.jpg", "", "2023:01:01 10:00:00", 100),
			recordAt("b.jpg", "", "2023:02:01 10:00:00", 200),
			recordNoTime("x.jpg", 50),
		},
	})

	if len(resp.Warnings) != 0 {
		t.Errorf("warnings = %d, want 0", len(resp.Warnings))
	}
}
