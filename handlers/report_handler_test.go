package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinyasaclub/models"
	"vinyasaclub/repository"
)

type fakeUploader struct {
	name string
	body []byte
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, fileBytes []byte, filename, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.name, f.body = filename, fileBytes
	return "https://reports.example.com/" + filename, nil
}

func newReportHandler(t *testing.T, uploader Uploader) (*ReportHandler, *[]byte) {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryBackedStore()
	m := models.Member{Name: "Asha", Email: "asha@example.com", Branch: "CSE", Year: 1}
	require.NoError(t, store.Members.CreateMember(ctx, &m))
	_, err := store.Attendance.ReplaceAttendanceForDate(ctx, "2024-04-01", []models.AttendanceEntry{
		{MemberID: m.ID, Status: models.StatusPresent},
	})
	require.NoError(t, err)

	var rendered []byte
	h := &ReportHandler{
		Repo:     repository.NewReportRepository(store.Members, store.Attendance),
		SavePath: t.TempDir(),
		Uploader: uploader,
		RenderPDF: func(_ context.Context, html []byte) ([]byte, error) {
			rendered = html
			return []byte("%PDF-fake"), nil
		},
		Clock: Clock{Now: func() time.Time { return time.Unix(1711990000, 0).UTC() }},
	}
	return h, &rendered
}

func TestAttendanceReport_SavesLocally(t *testing.T) {
	h, rendered := newReportHandler(t, nil)

	rec := httptest.NewRecorder()
	h.AttendanceReport(rec, httptest.NewRequest(http.MethodGet, "/reports/attendance?date=2024-04-01", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "attendance_2024-04-01_1711990000.pdf", body["file"])
	assert.NotContains(t, body, "url")

	saved, err := os.ReadFile(filepath.Join(h.SavePath, "attendance_2024-04-01_1711990000.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(saved))
	assert.Contains(t, string(*rendered), "Asha")
}

func TestAttendanceReport_Uploads(t *testing.T) {
	up := &fakeUploader{}
	h, _ := newReportHandler(t, up)

	rec := httptest.NewRecorder()
	h.AttendanceReport(rec, httptest.NewRequest(http.MethodGet, "/reports/attendance?date=2024-04-01", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://reports.example.com/attendance_2024-04-01_1711990000.pdf", body["url"])
	assert.Equal(t, "%PDF-fake", string(up.body))
}

func TestAttendanceReport_UploadFailureKeepsLocalCopy(t *testing.T) {
	h, _ := newReportHandler(t, &fakeUploader{err: errors.New("bucket unavailable")})

	rec := httptest.NewRecorder()
	h.AttendanceReport(rec, httptest.NewRequest(http.MethodGet, "/reports/attendance?date=2024-04-01", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "url")
}

func TestAttendanceReport_BadDate(t *testing.T) {
	h, _ := newReportHandler(t, nil)

	rec := httptest.NewRecorder()
	h.AttendanceReport(rec, httptest.NewRequest(http.MethodGet, "/reports/attendance?date=04-01", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceReport_RenderFailure(t *testing.T) {
	h, _ := newReportHandler(t, nil)
	h.RenderPDF = func(context.Context, []byte) ([]byte, error) {
		return nil, errors.New("chrome not found")
	}

	rec := httptest.NewRecorder()
	h.AttendanceReport(rec, httptest.NewRequest(http.MethodGet, "/reports/attendance?date=2024-04-01", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"failed to generate PDF"}`, rec.Body.String())
}
