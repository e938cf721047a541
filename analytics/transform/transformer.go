package transform

import (
	"sort"
	"time"

	"github.com/LilVoxy/coursework_tempmon/analytics/models"
	"github.com/LilVoxy/coursework_tempmon/analytics/utils"
)

// Transformer агрегирует замеры температуры в почасовые и суточные факты
type Transformer struct {
	logger            *utils.AnalyticsLogger
	overheatThreshold float64
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.AnalyticsLogger, overheatThreshold float64) *Transformer {
	return &Transformer{
		logger:            logger,
		overheatThreshold: overheatThreshold,
	}
}

// bucket накапливает статистику по одной группе замеров
type bucket struct {
	minTemp         float64
	maxTemp         float64
	sum             float64
	samples         int
	overheatSamples int
}

// add добавляет замер в группу
func (b *bucket) add(temp float64, overheatThreshold float64) {
	if b.samples == 0 || temp < b.minTemp {
		b.minTemp = temp
	}
	if b.samples == 0 || temp > b.maxTemp {
		b.maxTemp = temp
	}
	b.sum += temp
	b.samples++
	if temp > overheatThreshold {
		b.overheatSamples++
	}
}

// avg возвращает среднюю температуру группы
func (b *bucket) avg() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.sum / float64(b.samples)
}

// hourKey ключ почасовой группы
type hourKey struct {
	date string
	hour int
}

// Transform агрегирует извлеченные замеры в факты
func (t *Transformer) Transform(extracted *models.ExtractedData) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Debug("Начало трансформации %d замеров", len(extracted.Readings))

	hourly := make(map[hourKey]*bucket)
	daily := make(map[string]*bucket)

	// Группируем замеры по часам и по дням
	for _, reading := range extracted.Readings {
		date := reading.TakenAt.Format("2006-01-02")
		hk := hourKey{date: date, hour: reading.TakenAt.Hour()}

		if _, exists := hourly[hk]; !exists {
			hourly[hk] = &bucket{}
		}
		hourly[hk].add(reading.Temperature, t.overheatThreshold)

		if _, exists := daily[date]; !exists {
			daily[date] = &bucket{}
		}
		daily[date].add(reading.Temperature, t.overheatThreshold)
	}

	// Формируем факты в детерминированном порядке
	var transformed models.TransformedData

	hourKeys := make([]hourKey, 0, len(hourly))
	for hk := range hourly {
		hourKeys = append(hourKeys, hk)
	}
	sort.Slice(hourKeys, func(i, j int) bool {
		if hourKeys[i].date != hourKeys[j].date {
			return hourKeys[i].date < hourKeys[j].date
		}
		return hourKeys[i].hour < hourKeys[j].hour
	})

	for _, hk := range hourKeys {
		b := hourly[hk]
		transformed.HourlyFacts = append(transformed.HourlyFacts, models.HourlyTempFact{
			Date:            hk.date,
			HourOfDay:       hk.hour,
			MinTemp:         b.minTemp,
			MaxTemp:         b.maxTemp,
			AvgTemp:         b.avg(),
			Samples:         b.samples,
			OverheatSamples: b.overheatSamples,
		})
	}

	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		b := daily[date]
		transformed.DailyFacts = append(transformed.DailyFacts, models.DailyTempFact{
			Date:            date,
			MinTemp:         b.minTemp,
			MaxTemp:         b.maxTemp,
			AvgTemp:         b.avg(),
			Samples:         b.samples,
			OverheatSamples: b.overheatSamples,
		})
	}

	t.logger.Info("Фаза Transform завершена за %v. Сформировано %d почасовых и %d суточных фактов",
		time.Since(startTime), len(transformed.HourlyFacts), len(transformed.DailyFacts))
	return &transformed, nil
}
