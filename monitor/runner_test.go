package monitor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_tempmon/config"
	"github.com/LilVoxy/coursework_tempmon/csvlog"
	"github.com/LilVoxy/coursework_tempmon/database"
	"github.com/LilVoxy/coursework_tempmon/sensors"
	"github.com/LilVoxy/coursework_tempmon/websocket"
)

// stubReader подменяет источник температуры в тестах
type stubReader struct {
	celsius float64
	cores   []sensors.CoreTemperature
	err     error
}

func (s *stubReader) GetCurrentTemperature() (float64, error) {
	return s.celsius, s.err
}

func (s *stubReader) GetCoreTemperatures() ([]sensors.CoreTemperature, error) {
	return s.cores, s.err
}

func newTestRunner(t *testing.T, reader sensors.TemperatureReader) (*Runner, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.GetConfig()
	logger, err := csvlog.NewCsvLogger(filepath.Join(t.TempDir(), "log.csv"), cfg.LogMaxSize, cfg.LogMaxFiles)
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	runner := NewRunner(cfg, reader, logger, database.NewMySQLReadingRepository(db), websocket.NewManager())
	return runner, mock
}

func TestSample(t *testing.T) {
	reader := &stubReader{
		celsius: 45.678,
		cores: []sensors.CoreTemperature{
			{Core: 0, Label: "Core 0", Celsius: 44.0},
			{Core: 1, Label: "Core 1", Celsius: 47.5},
		},
	}
	runner, mock := newTestRunner(t, reader)

	mock.ExpectExec("INSERT INTO cpu_readings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO cpu_readings")
	mock.ExpectExec("INSERT INTO cpu_readings").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO cpu_readings").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	require.NoError(t, runner.Sample())
	assert.NoError(t, mock.ExpectationsWereMet())

	status := runner.Status()
	assert.Equal(t, int64(1), status.Samples)
	assert.InDelta(t, 45.68, status.LastTemp, 0.001)
	assert.InDelta(t, 45.68, status.AverageTemp, 0.001)
	assert.Equal(t, int64(2), status.Cores)

	// Замер ушел подписчикам
	sample := <-runner.wsManager.Broadcast
	assert.InDelta(t, 45.678, sample.Celsius, 0.001)
	require.Len(t, sample.Cores, 2)
}

func TestSampleReaderError(t *testing.T) {
	reader := &stubReader{err: assert.AnError}
	runner, mock := newTestRunner(t, reader)

	assert.Error(t, runner.Sample())
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, int64(0), runner.Status().Samples)
}

func TestPauseResume(t *testing.T) {
	runner, _ := newTestRunner(t, &stubReader{celsius: 42})

	assert.False(t, runner.Monitoring())

	// Pause на остановленном мониторинге ничего не меняет
	runner.Pause()
	assert.False(t, runner.Monitoring())

	runner.Resume()
	assert.True(t, runner.Monitoring())

	runner.Pause()
	assert.False(t, runner.Monitoring())
}

func TestSetInterval(t *testing.T) {
	runner, _ := newTestRunner(t, &stubReader{celsius: 42})

	require.NoError(t, runner.SetInterval(10*time.Second))
	assert.Equal(t, "10s", runner.Status().Interval)

	assert.Error(t, runner.SetInterval(0))
	assert.Error(t, runner.SetInterval(500*time.Millisecond))
}

func TestStatusUnitConversion(t *testing.T) {
	reader := &stubReader{celsius: 100}
	runner, mock := newTestRunner(t, reader)
	runner.config.Unit = "f"

	mock.ExpectExec("INSERT INTO cpu_readings").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, runner.Sample())

	status := runner.Status()
	assert.Equal(t, "f", status.Unit)
	assert.InDelta(t, 212.0, status.LastTemp, 0.001)
}
