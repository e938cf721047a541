package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLRunLogRepository реализация RunLogRepository для MySQL
type MySQLRunLogRepository struct {
	db *sql.DB
}

// NewMySQLRunLogRepository создает новый экземпляр MySQLRunLogRepository
func NewMySQLRunLogRepository(db *sql.DB) *MySQLRunLogRepository {
	return &MySQLRunLogRepository{
		db: db,
	}
}

// CreateRunLogTable создает таблицу журнала запусков, если она не существует
func (r *MySQLRunLogRepository) CreateRunLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS temp_analytics.aggregation_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		readings_processed INT DEFAULT 0,
		hourly_facts_loaded INT DEFAULT 0,
		daily_facts_loaded INT DEFAULT 0,
		last_processed_reading_id INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы aggregation_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске агрегации
func (r *MySQLRunLogRepository) CreateLogEntry(startTime time.Time) (int, error) {
	query := `
	INSERT INTO temp_analytics.aggregation_run_log (start_time, status)
	VALUES (?, 'in_progress')
	`

	result, err := r.db.Exec(query, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске агрегации: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении агрегации
func (r *MySQLRunLogRepository) UpdateLogEntrySuccess(
	id int,
	endTime time.Time,
	readingsProcessed,
	hourlyFactsLoaded,
	dailyFactsLoaded,
	lastProcessedReadingID int) error {

	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM temp_analytics.aggregation_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала агрегации: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	// Обновляем запись
	query := `
	UPDATE temp_analytics.aggregation_run_log
	SET
		end_time = ?,
		status = 'success',
		readings_processed = ?,
		hourly_facts_loaded = ?,
		daily_facts_loaded = ?,
		last_processed_reading_id = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(
		query,
		endTime,
		readingsProcessed,
		hourlyFactsLoaded,
		dailyFactsLoaded,
		lastProcessedReadingID,
		executionTime,
		id,
	)

	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске агрегации: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении агрегации
func (r *MySQLRunLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM temp_analytics.aggregation_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала агрегации: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	// Обновляем запись
	query := `
	UPDATE temp_analytics.aggregation_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске агрегации: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске
func (r *MySQLRunLogRepository) GetLastSuccessfulRun() (*AggregationRunLog, error) {
	query := `
	SELECT
		id, start_time, end_time, status,
		readings_processed, hourly_facts_loaded, daily_facts_loaded,
		last_processed_reading_id, IFNULL(error_message, ''), execution_time_seconds
	FROM temp_analytics.aggregation_run_log
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var runLog AggregationRunLog
	err := r.db.QueryRow(query).Scan(
		&runLog.ID, &runLog.StartTime, &runLog.EndTime, &runLog.Status,
		&runLog.ReadingsProcessed, &runLog.HourlyFactsLoaded, &runLog.DailyFactsLoaded,
		&runLog.LastProcessedReadingID, &runLog.ErrorMessage, &runLog.ExecutionTimeSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Нет успешных запусков
		}
		return nil, fmt.Errorf("ошибка при получении информации о последнем успешном запуске: %w", err)
	}

	return &runLog, nil
}

// GetRunStats получает статистику запусков за определенный период
func (r *MySQLRunLogRepository) GetRunStats(days int) ([]AggregationRunLog, error) {
	query := `
	SELECT
		id, start_time, end_time, status,
		readings_processed, hourly_facts_loaded, daily_facts_loaded,
		last_processed_reading_id, IFNULL(error_message, ''), execution_time_seconds
	FROM temp_analytics.aggregation_run_log
	WHERE start_time >= DATE_SUB(NOW(), INTERVAL ? DAY)
	ORDER BY start_time DESC
	`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики запусков: %w", err)
	}
	defer rows.Close()

	var logs []AggregationRunLog
	for rows.Next() {
		var runLog AggregationRunLog
		err := rows.Scan(
			&runLog.ID, &runLog.StartTime, &runLog.EndTime, &runLog.Status,
			&runLog.ReadingsProcessed, &runLog.HourlyFactsLoaded, &runLog.DailyFactsLoaded,
			&runLog.LastProcessedReadingID, &runLog.ErrorMessage, &runLog.ExecutionTimeSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании записи о запуске агрегации: %w", err)
		}
		logs = append(logs, runLog)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по записям о запусках агрегации: %w", err)
	}

	return logs, nil
}
