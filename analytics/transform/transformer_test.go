package transform

import (
	"os"
	"testing"
	"time"

	"github.com/LilVoxy/coursework_tempmon/analytics/models"
	"github.com/LilVoxy/coursework_tempmon/analytics/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransformer(t *testing.T) *Transformer {
	t.Helper()
	// Логгер пишет файл в текущий каталог
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	return NewTransformer(utils.NewAnalyticsLogger(false), 85.0)
}

func reading(id int, takenAt time.Time, temp float64) models.ReadingRecord {
	return models.ReadingRecord{
		ID:          id,
		TakenAt:     takenAt,
		Core:        0,
		Label:       "cpu",
		Temperature: temp,
	}
}

func TestTransformHourlyAggregation(t *testing.T) {
	transformer := newTestTransformer(t)

	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	extracted := &models.ExtractedData{
		Readings: []models.ReadingRecord{
			reading(1, base, 40),
			reading(2, base.Add(10*time.Minute), 50),
			reading(3, base.Add(20*time.Minute), 60),
			// Следующий час
			reading(4, base.Add(time.Hour), 70),
		},
	}

	transformed, err := transformer.Transform(extracted)
	require.NoError(t, err)
	require.Len(t, transformed.HourlyFacts, 2)

	first := transformed.HourlyFacts[0]
	assert.Equal(t, "2026-08-29", first.Date)
	assert.Equal(t, 10, first.HourOfDay)
	assert.InDelta(t, 40, first.MinTemp, 0.001)
	assert.InDelta(t, 60, first.MaxTemp, 0.001)
	assert.InDelta(t, 50, first.AvgTemp, 0.001)
	assert.Equal(t, 3, first.Samples)

	second := transformed.HourlyFacts[1]
	assert.Equal(t, 11, second.HourOfDay)
	assert.Equal(t, 1, second.Samples)
}

func TestTransformDailyAggregation(t *testing.T) {
	transformer := newTestTransformer(t)

	day1 := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	extracted := &models.ExtractedData{
		Readings: []models.ReadingRecord{
			reading(1, day1, 42),
			reading(2, day1.Add(time.Hour), 48),
			reading(3, day2, 55),
		},
	}

	transformed, err := transformer.Transform(extracted)
	require.NoError(t, err)
	require.Len(t, transformed.DailyFacts, 2)

	// Факты отсортированы по дате
	assert.Equal(t, "2026-08-28", transformed.DailyFacts[0].Date)
	assert.InDelta(t, 45, transformed.DailyFacts[0].AvgTemp, 0.001)
	assert.Equal(t, 2, transformed.DailyFacts[0].Samples)
	assert.Equal(t, "2026-08-29", transformed.DailyFacts[1].Date)
}

func TestTransformOverheatCounting(t *testing.T) {
	transformer := newTestTransformer(t)

	base := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	extracted := &models.ExtractedData{
		Readings: []models.ReadingRecord{
			reading(1, base, 80),
			reading(2, base.Add(time.Minute), 90),
			reading(3, base.Add(2*time.Minute), 86),
			// Ровно на пороге перегревом не считается
			reading(4, base.Add(3*time.Minute), 85),
		},
	}

	transformed, err := transformer.Transform(extracted)
	require.NoError(t, err)
	require.Len(t, transformed.HourlyFacts, 1)
	assert.Equal(t, 2, transformed.HourlyFacts[0].OverheatSamples)
	require.Len(t, transformed.DailyFacts, 1)
	assert.Equal(t, 2, transformed.DailyFacts[0].OverheatSamples)
}

func TestTransformEmptyInput(t *testing.T) {
	transformer := newTestTransformer(t)

	transformed, err := transformer.Transform(&models.ExtractedData{})
	require.NoError(t, err)
	assert.Empty(t, transformed.HourlyFacts)
	assert.Empty(t, transformed.DailyFacts)
}
