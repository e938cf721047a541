package models

import (
	"time"
)

// AggregationRunLog представляет запись о запуске агрегации
type AggregationRunLog struct {
	ID                     int       `json:"id"`
	StartTime              time.Time `json:"start_time"`
	EndTime                time.Time `json:"end_time"`
	Status                 string    `json:"status"` // "success", "failed", "in_progress"
	ReadingsProcessed      int       `json:"readings_processed"`
	HourlyFactsLoaded      int       `json:"hourly_facts_loaded"`
	DailyFactsLoaded       int       `json:"daily_facts_loaded"`
	LastProcessedReadingID int       `json:"last_processed_reading_id"`
	ErrorMessage           string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds   float64   `json:"execution_time_seconds"`
}

// RunLogRepository представляет репозиторий для работы с журналом запусков
type RunLogRepository interface {
	// CreateLogEntry создает новую запись о запуске агрегации
	CreateLogEntry(startTime time.Time) (int, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении
	UpdateLogEntrySuccess(
		id int,
		endTime time.Time,
		readingsProcessed,
		hourlyFactsLoaded,
		dailyFactsLoaded,
		lastProcessedReadingID int) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error

	// GetLastSuccessfulRun получает информацию о последнем успешном запуске
	GetLastSuccessfulRun() (*AggregationRunLog, error)

	// GetRunStats получает статистику запусков за определенный период
	GetRunStats(days int) ([]AggregationRunLog, error)
}
