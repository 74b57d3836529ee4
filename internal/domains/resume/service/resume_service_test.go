package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"portfolio-backend/internal/infrastructure/identity"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/apperrors"
	"portfolio-backend/pkg/docstore"
)

type fakeObjects struct {
	uploads   map[string][]byte
	err       error
	deleteErr error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{uploads: make(map[string][]byte)}
}

func (f *fakeObjects) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.uploads, key)
	return nil
}

func newService(t *testing.T) (*resumeService, *docstore.Memory, *fakeObjects) {
	t.Helper()
	mem := docstore.NewMemory()
	objects := newFakeObjects()
	svc := NewResumeService(mem, objects, session.NewGuard()).(*resumeService)
	return svc, mem, objects
}

func adminCtx() context.Context {
	return session.WithUser(context.Background(), identity.User{UID: "admin", Email: "admin@example.com"})
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4 fake resume body")
}

func TestGetWithoutUpload(t *testing.T) {
	svc, _, _ := newService(t)

	info, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, info.URL)
	assert.Equal(t, "resume.pdf", info.Filename)
	assert.Equal(t, 0, info.DownloadCount)
	assert.NotNil(t, info.Downloads)
	assert.Empty(t, info.Downloads)
}

func TestUploadAndGet(t *testing.T) {
	svc, _, objects := newService(t)
	ctx := adminCtx()

	meta, err := svc.Upload(ctx, "cv.pdf", pdfBytes())
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", meta.Filename)
	assert.Contains(t, meta.URL, "https://cdn.example.com/portfolio/resume/")
	assert.Contains(t, objects.uploads, meta.Key)

	info, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, info.URL)
	assert.Equal(t, meta.URL, *info.URL)
	assert.Equal(t, "cv.pdf", info.Filename)
}

func TestUploadReplacesOldObject(t *testing.T) {
	svc, _, objects := newService(t)
	ctx := adminCtx()

	first, err := svc.Upload(ctx, "v1.pdf", pdfBytes())
	require.NoError(t, err)

	second, err := svc.Upload(ctx, "v2.pdf", pdfBytes())
	require.NoError(t, err)
	require.NotEqual(t, first.Key, second.Key)

	// The superseded PDF is removed from object storage.
	assert.NotContains(t, objects.uploads, first.Key)
	assert.Contains(t, objects.uploads, second.Key)

	info, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, info.URL)
	assert.Equal(t, second.URL, *info.URL)
}

func TestUploadSurvivesCleanupFailure(t *testing.T) {
	svc, _, objects := newService(t)
	ctx := adminCtx()

	_, err := svc.Upload(ctx, "v1.pdf", pdfBytes())
	require.NoError(t, err)

	objects.deleteErr = assert.AnError
	meta, err := svc.Upload(ctx, "v2.pdf", pdfBytes())
	require.NoError(t, err)

	info, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, info.URL)
	assert.Equal(t, meta.URL, *info.URL)
}

func TestUploadValidation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := adminCtx()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty file", nil},
		{"not a pdf", []byte("plain text, definitely not a pdf")},
		{"oversized", append(pdfBytes(), make([]byte, maxPDFSize)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, "cv.pdf", tt.data)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestUploadRequiresSession(t *testing.T) {
	svc, mem, _ := newService(t)

	_, err := svc.Upload(context.Background(), "cv.pdf", pdfBytes())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, 0, mem.Calls())
}

func TestTrackRecordsEvent(t *testing.T) {
	svc, mem, _ := newService(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	// Tracking is public; no session required.
	require.NoError(t, svc.Track(context.Background(), "Mozilla/5.0", "203.0.113.9"))
	require.NoError(t, svc.Track(context.Background(), "", ""))

	docs, err := mem.List(context.Background(), downloadsCollection)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Mozilla/5.0", docs[0].Data["userAgent"])
	assert.Equal(t, "203.0.113.9", docs[0].Data["ip"])
	assert.Equal(t, "Unknown", docs[1].Data["userAgent"])
	assert.Equal(t, "Unknown", docs[1].Data["ip"])
	assert.Equal(t, "2026-03-01T12:00:00Z", docs[0].Data["timestamp"])
}

func TestTrackFailureIsReported(t *testing.T) {
	svc, mem, _ := newService(t)

	mem.FailNext(assert.AnError)
	err := svc.Track(context.Background(), "UA", "1.2.3.4")
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestGetListsDownloadsNewestFirst(t *testing.T) {
	svc, _, _ := newService(t)

	stamps := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, ts := range stamps {
		svc.now = func() time.Time { return ts }
		require.NoError(t, svc.Track(context.Background(), "UA", "ip"), "event %d", i)
	}

	info, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, info.Downloads, 3)
	assert.Equal(t, 3, info.DownloadCount)
	assert.Equal(t, "2026-03-01T00:00:00Z", info.Downloads[0].Timestamp)
	assert.Equal(t, "2026-02-01T00:00:00Z", info.Downloads[1].Timestamp)
	assert.Equal(t, "2026-01-01T00:00:00Z", info.Downloads[2].Timestamp)
}

func TestExportDownloads(t *testing.T) {
	svc, _, _ := newService(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.Track(context.Background(), "Mozilla/5.0", "203.0.113.9"))

	raw, err := svc.ExportDownloads(adminCtx())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Downloads")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Timestamp", "User Agent", "IP"}, rows[0])
	assert.Equal(t, []string{"2026-03-01T12:00:00Z", "Mozilla/5.0", "203.0.113.9"}, rows[1])
}

func TestExportRequiresSession(t *testing.T) {
	svc, mem, _ := newService(t)

	_, err := svc.ExportDownloads(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, 0, mem.Calls())
}
