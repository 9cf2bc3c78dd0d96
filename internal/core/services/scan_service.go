package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"shuttercheck/internal/core/domain"
	"shuttercheck/internal/core/ports"
	"shuttercheck/pkg/exifmeta"
)

// ScanService turns a directory of image files into normalized records
type ScanService struct {
	photoRepo ports.PhotoRepository
	extractor ports.Extractor
}

// NewScanService creates a new scan service
func NewScanService(photoRepo ports.PhotoRepository, extractor ports.Extractor) *ScanService {
	return &ScanService{
		photoRepo: photoRepo,
		extractor: extractor,
	}
}

// ScanRequest represents a request to scan a directory
type ScanRequest struct {
	MaxWorkers int // Concurrent extractions; <=1 means sequential
}

// ScanResponse represents the outcome of a scan
type ScanResponse struct {
	Records []domain.PhotoRecord
	Found   int // Files that yielded a record
	Skipped int // Files whose extraction failed
	Total   int // Files enumerated
}

// Execute enumerates candidate files, extracts metadata from each, and
// normalizes the results. A file whose extraction fails is skipped and
// counted; only a directory-level failure aborts. Extraction order is
// irrelevant, so it may run on a small worker pool; records come back
// sorted by filename so output is reproducible before the timeline sort.
func (s *ScanService) Execute(ctx context.Context, req ScanRequest) (*ScanResponse, error) {
	paths, err := s.photoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate files: %w", err)
	}

	resp := &ScanResponse{Total: len(paths)}
	if len(paths) == 0 {
		return resp, nil
	}

	if req.MaxWorkers > 1 {
		resp.Records, resp.Skipped = s.extractParallel(ctx, paths, req.MaxWorkers)
	} else {
		resp.Records, resp.Skipped = s.extractSequential(ctx, paths)
	}

	sort.SliceStable(resp.Records, func(i, j int) bool {
		return resp.Records[i].Filename < resp.Records[j].Filename
	})

	resp.Found = len(resp.Records)
	return resp, nil
}

func (s *ScanService) extractSequential(ctx context.Context, paths []string) ([]domain.PhotoRecord, int) {
	var records []domain.PhotoRecord
	skipped := 0

	for _, path := range paths {
		rec, ok := s.extractOne(ctx, path)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

func (s *ScanService) extractParallel(ctx context.Context, paths []string, workers int) ([]domain.PhotoRecord, int) {
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan string)
	var mu sync.Mutex
	var records []domain.PhotoRecord
	skipped := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				rec, ok := s.extractOne(ctx, path)
				mu.Lock()
				if ok {
					records = append(records, rec)
				} else {
					skipped++
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	return records, skipped
}

func (s *ScanService) extractOne(ctx context.Context, path string) (domain.PhotoRecord, bool) {
	tags, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return domain.PhotoRecord{}, false
	}
	return exifmeta.Normalize(filepath.Base(path), tags), true
}
