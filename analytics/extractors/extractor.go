package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_tempmon/analytics/models"
	"github.com/LilVoxy/coursework_tempmon/analytics/utils"
)

// Extractor извлекает новые замеры из исходной БД
type Extractor struct {
	db        *sql.DB
	logger    *utils.AnalyticsLogger
	batchSize int
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.AnalyticsLogger, batchSize int) *Extractor {
	return &Extractor{
		db:        db,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Extract извлекает замеры общей температуры для агрегации.
// Обрабатываются только замеры с ID больше lastProcessedReadingID.
func (e *Extractor) Extract(lastProcessedReadingID int) (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.Debug("Начало извлечения замеров (lastProcessedReadingID: %d)", lastProcessedReadingID)

	// Агрегируются только замеры общей температуры (ядро 0)
	query := `
		SELECT id, taken_at, core, label, temperature
		FROM cpu_readings
		WHERE id > ? AND core = 0
		ORDER BY id
		LIMIT ?
	`

	rows, err := e.db.Query(query, lastProcessedReadingID, e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении замеров: %v", err)
		return nil, fmt.Errorf("ошибка извлечения замеров: %w", err)
	}
	defer rows.Close()

	var extractedData models.ExtractedData
	for rows.Next() {
		var reading models.ReadingRecord
		if err := rows.Scan(
			&reading.ID, &reading.TakenAt, &reading.Core,
			&reading.Label, &reading.Temperature); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании замера: %w", err)
		}
		extractedData.Readings = append(extractedData.Readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по замерам: %w", err)
	}

	e.logger.Info("Фаза Extract завершена. Извлечено %d замеров за %v",
		len(extractedData.Readings), time.Since(startTime))
	return &extractedData, nil
}
