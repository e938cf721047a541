package linear_regression

import (
	"time"
)

// DataPoint представляет один день наблюдений за температурой CPU
type DataPoint struct {
	X    float64   // Порядковый номер дня относительно начала периода
	Y    float64   // Средняя температура CPU за день в градусах Цельсия
	Date time.Time // Календарная дата дня
}

// RegressionResult описывает построенный температурный тренд y = a*x + b
type RegressionResult struct {
	A           float64     // Скорость изменения температуры, градусов в день
	B           float64     // Сдвиг (температура в нулевой день периода)
	R           float64     // Коэффициент корреляции Пирсона
	R2          float64     // Доля вариации температуры, объясненная трендом
	PeriodStart time.Time   // Начало анализируемого периода
	PeriodEnd   time.Time   // Конец анализируемого периода
	DataPoints  []DataPoint // Суточные средние, по которым строилась модель
}

// TrendDirection описывает направление тренда по знаку наклона.
// Наклон меньше сотой градуса в день считается стабильной температурой
func (r *RegressionResult) TrendDirection() string {
	switch {
	case r.A > 0.01:
		return "рост"
	case r.A < -0.01:
		return "снижение"
	default:
		return "стабильно"
	}
}

// ForecastPoint представляет прогноз средней температуры на один день
type ForecastPoint struct {
	Date          time.Time // Дата, на которую сделан прогноз
	ForecastValue float64   // Прогноз средней температуры в градусах Цельсия
	CILower       float64   // Нижняя граница доверительного интервала
	CIUpper       float64   // Верхняя граница доверительного интервала
}

// PredictionRepository интерфейс хранилища прогнозов температуры
type PredictionRepository interface {
	// SavePrediction сохраняет один прогноз температуры
	SavePrediction(result RegressionResult, forecast ForecastPoint) error

	// GetForecasts возвращает прогнозы в указанном диапазоне дат
	GetForecasts(startDate, endDate time.Time) ([]ForecastPoint, error)

	// GetLastRegressionResult возвращает параметры последней модели
	GetLastRegressionResult() (*RegressionResult, error)

	// DeleteOldPredictions удаляет прогнозы, созданные раньше указанной даты
	DeleteOldPredictions(olderThan time.Time) error
}
