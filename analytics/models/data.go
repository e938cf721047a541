package models

import (
	"time"
)

// ReadingRecord представляет замер температуры из исходной БД
type ReadingRecord struct {
	ID          int       `json:"id"`
	TakenAt     time.Time `json:"taken_at"`
	Core        int       `json:"core"`
	Label       string    `json:"label"`
	Temperature float64   `json:"temperature"` // Всегда в Цельсиях
}

// ExtractedData содержит данные, извлеченные из исходной БД за один запуск
type ExtractedData struct {
	Readings []ReadingRecord
}

// HourlyTempFact представляет агрегат температуры за один час
type HourlyTempFact struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	HourOfDay       int     `json:"hour_of_day"`
	MinTemp         float64 `json:"min_temp"`
	MaxTemp         float64 `json:"max_temp"`
	AvgTemp         float64 `json:"avg_temp"`
	Samples         int     `json:"samples"`
	OverheatSamples int     `json:"overheat_samples"` // Замеры выше порога перегрева
}

// DailyTempFact представляет агрегат температуры за сутки
type DailyTempFact struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	MinTemp         float64 `json:"min_temp"`
	MaxTemp         float64 `json:"max_temp"`
	AvgTemp         float64 `json:"avg_temp"`
	Samples         int     `json:"samples"`
	OverheatSamples int     `json:"overheat_samples"`
}

// TransformedData содержит агрегаты, готовые к загрузке в аналитическую БД
type TransformedData struct {
	HourlyFacts []HourlyTempFact
	DailyFacts  []DailyTempFact
}
