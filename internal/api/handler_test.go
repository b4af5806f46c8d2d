package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"liftlog/internal/api"
	"liftlog/internal/domain"
	"liftlog/internal/repository"
	"liftlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLogRepo is an in-memory repository.LogRepository for handler tests.
type memLogRepo struct {
	entries map[string][]domain.LogEntry
}

func (m *memLogRepo) LoadAll(_ context.Context, owner string) ([]domain.LogEntry, error) {
	entries := append([]domain.LogEntry(nil), m.entries[owner]...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries, nil
}

func (m *memLogRepo) Insert(_ context.Context, owner string, entry domain.LogEntry) (domain.LogEntry, error) {
	m.entries[owner] = append(m.entries[owner], entry)
	return entry, nil
}

func (m *memLogRepo) InsertBatch(ctx context.Context, owner string, entries []domain.LogEntry) error {
	for _, e := range entries {
		if _, err := m.Insert(ctx, owner, e); err != nil {
			return err
		}
	}
	return nil
}

func (m *memLogRepo) ReplaceBatch(_ context.Context, owner string, entries []domain.LogEntry) error {
	for _, incoming := range entries {
		replaced := false
		for i, e := range m.entries[owner] {
			if e.ID == incoming.ID {
				m.entries[owner][i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			m.entries[owner] = append(m.entries[owner], incoming)
		}
	}
	return nil
}

func (m *memLogRepo) Delete(_ context.Context, owner string, id string) error {
	for i, e := range m.entries[owner] {
		if e.ID == id {
			m.entries[owner] = append(m.entries[owner][:i], m.entries[owner][i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestRouter() (*gin.Engine, *memLogRepo) {
	gin.SetMode(gin.TestMode)
	repo := &memLogRepo{entries: make(map[string][]domain.LogEntry)}
	gen := &domain.SequenceGenerator{Prefix: "id"}

	router := gin.New()
	// Local variant: no auth service, fixed owner key.
	api.SetupRoutes(router, "", nil,
		service.NewLogService(repo, gen),
		service.NewTransferService(repo, gen, nil),
	)
	return router, repo
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateLog(t *testing.T) {
	router, repo := newTestRouter()

	body := `{"date":"2024-01-01","exercise":"ベンチプレス","weight":80,"reps":5,"note":"paused"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp api.LogEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ベンチプレス", resp.Exercise)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, repo.entries[api.LocalOwner], 1)
}

func TestCreateLog_ValidationFailureHasFieldMessages(t *testing.T) {
	router, repo := newTestRouter()

	body := `{"date":"2024-01-01","exercise":"ベンチプレス","weight":-80,"reps":"lots"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "weight")
	assert.Contains(t, resp.Fields, "reps")
	assert.Empty(t, repo.entries[api.LocalOwner], "failed submission mutates nothing")
}

func TestDeleteLog_NotFound(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(router, httptest.NewRequest(http.MethodDelete, "/api/v1/logs/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDayStatsEndpoint(t *testing.T) {
	router, repo := newTestRouter()
	repo.entries[api.LocalOwner] = []domain.LogEntry{
		{ID: "a", Date: "2024-01-01", Exercise: domain.ExerciseBenchPress, Weight: 80, Reps: 5},
		{ID: "b", Date: "2024-01-02", Exercise: domain.ExerciseBenchPress, Weight: 85, Reps: 5},
	}

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/stats/day/2024-01-02", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var day service.DayStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	require.Len(t, day.Groups, 1)
	assert.Equal(t, 425.0, day.Groups[0].Volume)
	assert.Equal(t, []domain.Exercise{domain.ExerciseBenchPress}, day.PersonalRecords)
}

func TestDayStatsEndpoint_NoRecordsIsEmptyArray(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/stats/day/2024-01-02", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"personalRecords":[]`)
}

func TestVolumeSeriesEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/stats/volume?days=7", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var series []struct {
		Date   string  `json:"date"`
		Volume float64 `json:"volume"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
	assert.Len(t, series, 7)
}

func TestExportEndpoint(t *testing.T) {
	router, repo := newTestRouter()
	repo.entries[api.LocalOwner] = []domain.LogEntry{
		{ID: "a", Date: "2024-01-01", Exercise: domain.ExerciseSquat, Weight: 100, Reps: 3},
	}

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/logs/export?format=csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, rec.Body.String(), "date,exercise,weight,reps,note")
}

func TestImportEndpoint_CSV(t *testing.T) {
	router, repo := newTestRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "backup.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("date,exercise,weight,reps,note\n2024-02-01,スクワット,100,3,\"good, form\"\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/logs/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result service.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, repo.entries[api.LocalOwner], 1)
}

func TestImportEndpoint_RejectsUnknownExtension(t *testing.T) {
	router, repo := newTestRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "backup.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("irrelevant"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/logs/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := doRequest(router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.entries[api.LocalOwner])
}

func TestMigrateEndpoint(t *testing.T) {
	router, repo := newTestRouter()

	snapshot := `{"version":1,"logs":[{"id":"l1","date":"2024-01-01","exercise":"ベンチプレス","weight":80,"reps":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/logs/migrate", strings.NewReader(snapshot))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"migrated":1}`, rec.Body.String())
	assert.Len(t, repo.entries[api.LocalOwner], 1)
}
