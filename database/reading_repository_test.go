package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*MySQLReadingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMySQLReadingRepository(db), mock
}

func TestSaveReading(t *testing.T) {
	repo, mock := newMockRepository(t)

	takenAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO cpu_readings").
		WithArgs(takenAt, 0, "cpu", 45.678).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.SaveReading(takenAt, 0, "cpu", 45.678)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCoreReadings(t *testing.T) {
	repo, mock := newMockRepository(t)

	takenAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	readings := []Reading{
		{Core: 1, Label: "Core 0", Temperature: 44.5},
		{Core: 2, Label: "Core 1", Temperature: 46.25},
	}

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO cpu_readings")
	mock.ExpectExec("INSERT INTO cpu_readings").
		WithArgs(takenAt, 1, "Core 0", 44.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO cpu_readings").
		WithArgs(takenAt, 2, "Core 1", 46.25).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveCoreReadings(takenAt, readings))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCoreReadingsEmpty(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Пустой набор не трогает базу
	require.NoError(t, repo.SaveCoreReadings(time.Now(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestReading(t *testing.T) {
	repo, mock := newMockRepository(t)

	takenAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "taken_at", "core", "label", "temperature"}).
		AddRow(42, takenAt, 0, "cpu", 51.3)
	mock.ExpectQuery("SELECT id, taken_at, core, label, temperature").
		WillReturnRows(rows)

	reading, err := repo.GetLatestReading()
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, 42, reading.ID)
	assert.InDelta(t, 51.3, reading.Temperature, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestReadingNoRows(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"id", "taken_at", "core", "label", "temperature"})
	mock.ExpectQuery("SELECT id, taken_at, core, label, temperature").
		WillReturnRows(rows)

	reading, err := repo.GetLatestReading()
	require.NoError(t, err)
	assert.Nil(t, reading)
}

func TestGetReadingsRange(t *testing.T) {
	repo, mock := newMockRepository(t)

	from := time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	rows := sqlmock.NewRows([]string{"id", "taken_at", "core", "label", "temperature"}).
		AddRow(1, from.Add(time.Minute), 0, "cpu", 44.0).
		AddRow(2, from.Add(2*time.Minute), 0, "cpu", 45.5)
	mock.ExpectQuery("SELECT id, taken_at, core, label, temperature").
		WithArgs(from, to, 1000).
		WillReturnRows(rows)

	readings, err := repo.GetReadingsRange(from, to, 1000)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 1, readings[0].ID)
	assert.InDelta(t, 45.5, readings[1].Temperature, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReadingsAfter(t *testing.T) {
	repo, mock := newMockRepository(t)

	takenAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "taken_at", "core", "label", "temperature"}).
		AddRow(11, takenAt, 0, "cpu", 47.0)
	mock.ExpectQuery("SELECT id, taken_at, core, label, temperature").
		WithArgs(10, 500).
		WillReturnRows(rows)

	readings, err := repo.GetReadingsAfter(10, 500)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 11, readings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
