// database/reading.go
package database

import (
	"time"
)

// Reading представляет сохраненный замер температуры.
// Температура всегда хранится в Цельсиях.
type Reading struct {
	ID          int       `json:"id"`
	TakenAt     time.Time `json:"takenAt"`
	Core        int       `json:"core"`
	Label       string    `json:"label"`
	Temperature float64   `json:"temperature"`
}

// ReadingRepository представляет репозиторий для работы с замерами
type ReadingRepository interface {
	// SaveReading сохраняет один замер и возвращает его ID
	SaveReading(takenAt time.Time, core int, label string, temperature float64) (int, error)

	// SaveCoreReadings сохраняет замеры всех ядер одной транзакцией
	SaveCoreReadings(takenAt time.Time, readings []Reading) error

	// GetLatestReading возвращает последний замер общей температуры
	GetLatestReading() (*Reading, error)

	// GetReadingsRange возвращает замеры за период, не больше limit штук
	GetReadingsRange(from, to time.Time, limit int) ([]Reading, error)

	// GetReadingsAfter возвращает замеры с ID больше указанного
	GetReadingsAfter(lastID int, limit int) ([]Reading, error)
}
