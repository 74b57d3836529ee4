package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"portfolio-backend/internal/domains/resume/model"
	"portfolio-backend/internal/infrastructure/storage"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/apperrors"
	"portfolio-backend/pkg/docstore"
	"portfolio-backend/pkg/logger"
)

const (
	// The resume metadata lives in a single fixed document.
	metaCollection = "portfolio"
	metaID         = "resume"

	downloadsCollection = "resumeDownloads"

	// recentLimit caps the download listing; the count still reflects every
	// recorded event.
	recentLimit = 100

	maxPDFSize = 10 * 1024 * 1024
)

type Service interface {
	// Get is public: resume metadata plus recent downloads, newest first.
	Get(ctx context.Context) (*model.Info, error)

	// Upload stores a new resume PDF and its metadata. Admin only.
	Upload(ctx context.Context, filename string, data []byte) (*model.Resume, error)

	// Track records one download event. A failed write is reported, never
	// swallowed: tracking failures must be observable.
	Track(ctx context.Context, userAgent, ip string) error

	// ExportDownloads renders every download event as an xlsx workbook.
	// Admin only.
	ExportDownloads(ctx context.Context) ([]byte, error)
}

type resumeService struct {
	docs    docstore.Store
	objects storage.ObjectStore
	guard   session.Guard
	now     func() time.Time
}

func NewResumeService(docs docstore.Store, objects storage.ObjectStore, guard session.Guard) Service {
	return &resumeService{docs: docs, objects: objects, guard: guard, now: time.Now}
}

func (s *resumeService) Get(ctx context.Context) (*model.Info, error) {
	info := &model.Info{Filename: "resume.pdf", Downloads: []model.DownloadEvent{}}

	doc, err := s.docs.Get(ctx, metaCollection, metaID)
	switch {
	case err == nil:
		var meta model.Resume
		if err := decodeInto(doc.Data, &meta); err != nil {
			return nil, apperrors.Storage(err)
		}
		if meta.URL != "" {
			url := meta.URL
			info.URL = &url
		}
		if meta.Filename != "" {
			info.Filename = meta.Filename
		}
	case errors.Is(err, docstore.ErrNotFound):
		// No resume uploaded yet; url stays null.
	default:
		return nil, apperrors.FromStore(err)
	}

	events, err := s.listDownloads(ctx)
	if err != nil {
		return nil, err
	}
	info.DownloadCount = len(events)
	if len(events) > recentLimit {
		events = events[:recentLimit]
	}
	info.Downloads = events
	return info, nil
}

func (s *resumeService) Upload(ctx context.Context, filename string, data []byte) (*model.Resume, error) {
	if err := s.guard.Authenticate(ctx); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperrors.Validation("no file provided")
	}
	if int64(len(data)) > maxPDFSize {
		return nil, apperrors.Validation("file size exceeds 10MB limit")
	}
	if http.DetectContentType(data) != "application/pdf" {
		return nil, apperrors.Validation("invalid file type, only PDF files are allowed")
	}
	if filename == "" {
		filename = "resume.pdf"
	}

	// Remember the current object so it can be cleaned up once the new
	// upload has fully landed.
	var previousKey string
	if doc, err := s.docs.Get(ctx, metaCollection, metaID); err == nil {
		var prior model.Resume
		if err := decodeInto(doc.Data, &prior); err == nil {
			previousKey = prior.Key
		}
	}

	key := fmt.Sprintf("portfolio/resume/%s.pdf", docstore.NewID())
	url, err := s.objects.Upload(ctx, key, data, "application/pdf")
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	meta := model.Resume{
		URL:        url,
		Key:        key,
		Filename:   filename,
		Size:       int64(len(data)),
		UploadedAt: s.now().UTC().Format(time.RFC3339),
	}
	fields, err := toFields(meta)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if err := s.docs.Set(ctx, metaCollection, metaID, fields); err != nil {
		return nil, apperrors.FromStore(err)
	}

	// The old PDF is unreachable once the metadata points elsewhere; a
	// failed cleanup only leaks an object, so it never fails the upload.
	if previousKey != "" && previousKey != key {
		if err := s.objects.Delete(ctx, previousKey); err != nil {
			logger.Warn("failed to delete superseded resume object", err)
		}
	}
	return &meta, nil
}

func (s *resumeService) Track(ctx context.Context, userAgent, ip string) error {
	if userAgent == "" {
		userAgent = "Unknown"
	}
	if ip == "" {
		ip = "Unknown"
	}
	_, err := s.docs.Insert(ctx, downloadsCollection, map[string]interface{}{
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"userAgent": userAgent,
		"ip":        ip,
	})
	if err != nil {
		return apperrors.FromStore(err)
	}
	return nil
}

func (s *resumeService) ExportDownloads(ctx context.Context) ([]byte, error) {
	if err := s.guard.Authenticate(ctx); err != nil {
		return nil, err
	}
	events, err := s.listDownloads(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Downloads"
	f.SetSheetName("Sheet1", sheet)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Timestamp", "User Agent", "IP"}); err != nil {
		return nil, apperrors.Storage(err)
	}
	for i, e := range events {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{e.Timestamp, e.UserAgent, e.IP}); err != nil {
			return nil, apperrors.Storage(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return buf.Bytes(), nil
}

// listDownloads returns every event, newest first. RFC 3339 timestamps
// sort lexicographically, so a string sort is a time sort.
func (s *resumeService) listDownloads(ctx context.Context) ([]model.DownloadEvent, error) {
	docs, err := s.docs.List(ctx, downloadsCollection)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	events := make([]model.DownloadEvent, 0, len(docs))
	for _, doc := range docs {
		var e model.DownloadEvent
		if err := decodeInto(doc.Data, &e); err != nil {
			return nil, apperrors.Storage(err)
		}
		e.ID = doc.ID
		events = append(events, e)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})
	return events, nil
}

func decodeInto(data map[string]interface{}, dest interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func toFields(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
