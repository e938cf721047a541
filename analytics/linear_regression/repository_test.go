package linear_regression

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPredictionRepository(t *testing.T) (*MySQLPredictionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMySQLPredictionRepository(db), mock
}

func TestSaveMultiplePredictions(t *testing.T) {
	repo, mock := newMockPredictionRepository(t)

	result := RegressionResult{
		A:           0.5,
		B:           40,
		R:           0.9,
		R2:          0.81,
		PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}
	forecasts := []ForecastPoint{
		{Date: result.PeriodEnd.AddDate(0, 0, 1), ForecastValue: 55.5, CILower: 53, CIUpper: 58},
		{Date: result.PeriodEnd.AddDate(0, 0, 2), ForecastValue: 56, CILower: 53.4, CIUpper: 58.6},
	}

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO temp_analytics.temperature_trend_predictions")
	mock.ExpectExec("INSERT INTO temp_analytics.temperature_trend_predictions").
		WithArgs(result.PeriodStart, result.PeriodEnd, 0.5, 40.0, 0.9, 0.81,
			forecasts[0].Date, 55.5, 53.0, 58.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO temp_analytics.temperature_trend_predictions").
		WithArgs(result.PeriodStart, result.PeriodEnd, 0.5, 40.0, 0.9, 0.81,
			forecasts[1].Date, 56.0, 53.4, 58.6).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveMultiplePredictions(result, forecasts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePredictionUsesTransaction(t *testing.T) {
	repo, mock := newMockPredictionRepository(t)

	result := RegressionResult{
		PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}
	forecast := ForecastPoint{Date: result.PeriodEnd.AddDate(0, 0, 1), ForecastValue: 50}

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO temp_analytics.temperature_trend_predictions")
	mock.ExpectExec("INSERT INTO temp_analytics.temperature_trend_predictions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SavePrediction(result, forecast))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLastRegressionResultNoRows(t *testing.T) {
	repo, mock := newMockPredictionRepository(t)

	rows := sqlmock.NewRows([]string{"a", "b", "r", "r2", "period_start", "period_end"})
	mock.ExpectQuery("SELECT a, b, r, r2, period_start, period_end").
		WillReturnRows(rows)

	result, err := repo.GetLastRegressionResult()
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGetForecastsRange(t *testing.T) {
	repo, mock := newMockPredictionRepository(t)

	start := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)
	rows := sqlmock.NewRows([]string{"forecast_date", "forecast_value", "ci_lower", "ci_upper"}).
		AddRow(start, 55.5, 53.0, 58.0).
		AddRow(start.AddDate(0, 0, 1), 56.0, 53.4, 58.6)
	mock.ExpectQuery("SELECT forecast_date, forecast_value, ci_lower, ci_upper").
		WithArgs(start, end).
		WillReturnRows(rows)

	forecasts, err := repo.GetForecasts(start, end)
	require.NoError(t, err)
	require.Len(t, forecasts, 2)
	assert.InDelta(t, 56.0, forecasts[1].ForecastValue, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
