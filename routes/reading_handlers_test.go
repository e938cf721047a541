package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LilVoxy/coursework_tempmon/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readingColumns() []string {
	return []string{"id", "taken_at", "core", "label", "temperature"}
}

func TestGetReadingsHandler(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	takenAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(readingColumns()).
		AddRow(1, takenAt, 0, "cpu", 45.0).
		AddRow(2, takenAt.Add(3*time.Second), 0, "cpu", 46.5)
	mock.ExpectQuery("SELECT id, taken_at, core, label, temperature").
		WillReturnRows(rows)

	handler := GetReadingsHandler(db, config.GetConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/readings", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response ReadingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "c", response.Unit)
	require.Len(t, response.Readings, 2)
	assert.InDelta(t, 45.0, response.Readings[0].Temperature, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReadingsHandlerFahrenheit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	takenAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(readingColumns()).
		AddRow(1, takenAt, 0, "cpu", 100.0)
	mock.ExpectQuery("SELECT id, taken_at, core, label, temperature").
		WillReturnRows(rows)

	handler := GetReadingsHandler(db, config.GetConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/readings?unit=f", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response ReadingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "f", response.Unit)
	require.Len(t, response.Readings, 1)
	// Замер хранится в Цельсиях, перевод выполняется в обработчике
	assert.InDelta(t, 212.0, response.Readings[0].Temperature, 0.001)
}

func TestGetReadingsHandlerBadParams(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := GetReadingsHandler(db, config.GetConfig())

	tests := []struct {
		name string
		url  string
	}{
		{"невалидная единица", "/api/readings?unit=rankine"},
		{"невалидный from", "/api/readings?from=yesterday"},
		{"невалидный to", "/api/readings?to=29.08.2026"},
		{"отрицательный limit", "/api/readings?limit=-5"},
		{"слишком большой limit", "/api/readings?limit=100000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			handler(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetLatestReadingHandler(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	takenAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(readingColumns()).
		AddRow(9, takenAt, 0, "cpu", 26.85)
	mock.ExpectQuery("SELECT id, taken_at, core, label, temperature").
		WillReturnRows(rows)

	handler := GetLatestReadingHandler(db, config.GetConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/readings/latest?unit=k", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Unit    string      `json:"unit"`
		Reading ReadingInfo `json:"reading"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "k", response.Unit)
	assert.Equal(t, 9, response.Reading.ID)
	assert.InDelta(t, 300.0, response.Reading.Temperature, 0.001)
}

func TestGetLatestReadingHandlerNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, taken_at, core, label, temperature").
		WillReturnRows(sqlmock.NewRows(readingColumns()))

	handler := GetLatestReadingHandler(db, config.GetConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/readings/latest", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
