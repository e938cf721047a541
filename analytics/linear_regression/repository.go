package linear_regression

import (
	"database/sql"
	"fmt"
	"time"
)

// Вставка прогноза вместе с параметрами модели, по которой он построен.
// Так для любой строки прогноза можно восстановить тренд и период анализа
const insertPredictionSQL = `
	INSERT INTO temp_analytics.temperature_trend_predictions
		(period_start, period_end, a, b, r, r2, forecast_date, forecast_value, ci_lower, ci_upper)
	VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

// MySQLPredictionRepository хранит прогнозы температуры в аналитической БД
type MySQLPredictionRepository struct {
	db *sql.DB
}

// NewMySQLPredictionRepository создает новый репозиторий прогнозов
func NewMySQLPredictionRepository(db *sql.DB) *MySQLPredictionRepository {
	return &MySQLPredictionRepository{db: db}
}

// EnsureTableExists создает таблицу прогнозов, если ее еще нет
func (r *MySQLPredictionRepository) EnsureTableExists() error {
	query := `
	CREATE TABLE IF NOT EXISTS temp_analytics.temperature_trend_predictions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		a DOUBLE NOT NULL,
		b DOUBLE NOT NULL,
		r DOUBLE NOT NULL,
		r2 DOUBLE NOT NULL,
		forecast_date DATE NOT NULL,
		forecast_value DOUBLE NOT NULL,
		ci_lower DOUBLE NOT NULL,
		ci_upper DOUBLE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_forecast_date (forecast_date),
		INDEX idx_period (period_start, period_end)
	);`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("ошибка при создании таблицы прогнозов: %w", err)
	}
	return nil
}

// SavePrediction сохраняет один прогноз температуры
func (r *MySQLPredictionRepository) SavePrediction(result RegressionResult, forecast ForecastPoint) error {
	return r.SaveMultiplePredictions(result, []ForecastPoint{forecast})
}

// SaveMultiplePredictions сохраняет серию прогнозов одной транзакцией:
// либо записывается весь горизонт прогноза, либо ничего
func (r *MySQLPredictionRepository) SaveMultiplePredictions(result RegressionResult, forecasts []ForecastPoint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	stmt, err := tx.Prepare(insertPredictionSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось подготовить запрос: %w", err)
	}
	defer stmt.Close()

	for _, forecast := range forecasts {
		_, err := stmt.Exec(
			result.PeriodStart,
			result.PeriodEnd,
			result.A,
			result.B,
			result.R,
			result.R2,
			forecast.Date,
			forecast.ForecastValue,
			forecast.CILower,
			forecast.CIUpper,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("не удалось сохранить прогноз на %s: %w",
				forecast.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}
	return nil
}

// GetForecasts возвращает прогнозы температуры в указанном диапазоне дат
func (r *MySQLPredictionRepository) GetForecasts(startDate, endDate time.Time) ([]ForecastPoint, error) {
	query := `
	SELECT forecast_date, forecast_value, ci_lower, ci_upper
	FROM temp_analytics.temperature_trend_predictions
	WHERE forecast_date BETWEEN ? AND ?
	ORDER BY forecast_date;`

	rows, err := r.db.Query(query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке прогнозов: %w", err)
	}
	defer rows.Close()

	var forecasts []ForecastPoint
	for rows.Next() {
		var f ForecastPoint
		if err := rows.Scan(&f.Date, &f.ForecastValue, &f.CILower, &f.CIUpper); err != nil {
			return nil, fmt.Errorf("ошибка при чтении прогноза: %w", err)
		}
		forecasts = append(forecasts, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по прогнозам: %w", err)
	}

	return forecasts, nil
}

// GetLastRegressionResult возвращает параметры последней построенной модели
func (r *MySQLPredictionRepository) GetLastRegressionResult() (*RegressionResult, error) {
	query := `
	SELECT a, b, r, r2, period_start, period_end
	FROM temp_analytics.temperature_trend_predictions
	ORDER BY created_at DESC
	LIMIT 1;`

	var result RegressionResult
	err := r.db.QueryRow(query).Scan(
		&result.A,
		&result.B,
		&result.R,
		&result.R2,
		&result.PeriodStart,
		&result.PeriodEnd,
	)

	// Модель еще ни разу не строилась
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении последней модели: %w", err)
	}

	return &result, nil
}

// DeleteOldPredictions удаляет прогнозы, созданные раньше указанной даты
func (r *MySQLPredictionRepository) DeleteOldPredictions(olderThan time.Time) error {
	query := `
	DELETE FROM temp_analytics.temperature_trend_predictions
	WHERE created_at < ?;`

	if _, err := r.db.Exec(query, olderThan); err != nil {
		return fmt.Errorf("ошибка при удалении устаревших прогнозов: %w", err)
	}
	return nil
}
