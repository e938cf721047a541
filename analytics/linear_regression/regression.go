package linear_regression

import (
	"fmt"
	"math"
)

// Абсолютный ноль в градусах Цельсия. Экстраполяция линейного тренда
// на много дней вперед может уйти ниже физически возможной температуры,
// поэтому прогнозы и границы интервалов ограничиваются снизу
const absoluteZeroCelsius = -273.15

// RoundToThousandth округляет температуру до тысячных градуса
func RoundToThousandth(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// clampTemperature ограничивает значение снизу абсолютным нулем
func clampTemperature(value float64) float64 {
	if value < absoluteZeroCelsius {
		return absoluteZeroCelsius
	}
	return value
}

// LinearRegression строит линейный тренд средней суточной температуры
// методом наименьших квадратов: y = a*x + b, где x - порядковый номер дня,
// y - средняя температура за день в градусах Цельсия, a - скорость
// изменения температуры в градусах за день
func LinearRegression(points []DataPoint) (*RegressionResult, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("для построения температурного тренда требуется минимум 2 дня, получено: %d", len(points))
	}

	// Границы анализируемого периода
	minDate := points[0].Date
	maxDate := points[0].Date
	for _, p := range points {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}
		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	// Считаем через центрированные суммы: сначала средние по дням и
	// температурам, затем суммы квадратов отклонений от средних
	n := float64(len(points))
	meanX := 0.0
	meanY := 0.0
	for _, p := range points {
		meanX += p.X
		meanY += p.Y
	}
	meanX /= n
	meanY /= n

	sxx := 0.0 // сумма квадратов отклонений по дням
	syy := 0.0 // сумма квадратов отклонений по температуре
	sxy := 0.0 // сумма произведений отклонений
	for _, p := range points {
		dx := p.X - meanX
		dy := p.Y - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	// Все замеры пришлись на один день, наклон не определен
	if sxx < 1e-10 {
		return nil, fmt.Errorf("все точки приходятся на один день, тренд не определен")
	}

	// Наклон тренда (градусы в день) и сдвиг
	a := sxy / sxx
	b := meanY - a*meanX

	// Коэффициент корреляции Пирсона. При постоянной температуре
	// (syy близко к нулю) корреляции нет
	var r float64
	if syy < 1e-10 {
		r = 0
	} else {
		r = sxy / math.Sqrt(sxx*syy)
	}

	// Доля вариации температуры, объясненная трендом
	r2 := r * r

	return &RegressionResult{
		A:           RoundToThousandth(a),
		B:           RoundToThousandth(b),
		R:           RoundToThousandth(r),
		R2:          RoundToThousandth(r2),
		PeriodStart: minDate,
		PeriodEnd:   maxDate,
		DataPoints:  points,
	}, nil
}

// Predict возвращает прогноз средней температуры для дня с номером x
func Predict(result *RegressionResult, x float64) float64 {
	return RoundToThousandth(result.A*x + result.B)
}

// CalculateConfidenceInterval вычисляет доверительный интервал прогноза
// температуры для дня с номером x
func CalculateConfidenceInterval(result *RegressionResult, x float64, confidenceLevel float64) (float64, float64) {
	n := float64(len(result.DataPoints))

	// Средний номер дня в периоде анализа
	meanX := 0.0
	for _, p := range result.DataPoints {
		meanX += p.X
	}
	meanX /= n

	// Разброс номеров дней и остатки модели относительно замеров
	sumSqDevX := 0.0
	sumSqResiduals := 0.0
	for _, p := range result.DataPoints {
		predY := Predict(result, p.X)
		sumSqDevX += (p.X - meanX) * (p.X - meanX)
		sumSqResiduals += (p.Y - predY) * (p.Y - predY)
	}

	// Стандартная ошибка оценки в градусах
	standardError := math.Sqrt(sumSqResiduals / (n - 2))

	// Приближенные квантили распределения Стьюдента. Период анализа
	// обычно 30 дней, для такого n приближение t равно 2 достаточно
	tStat := 2.0
	if confidenceLevel == 0.99 {
		tStat = 2.58
	} else if confidenceLevel == 0.90 {
		tStat = 1.64
	}

	// Ошибка прогноза растет по мере удаления дня x от середины
	// анализируемого периода
	predictionStdError := standardError * math.Sqrt(1+1/n+(x-meanX)*(x-meanX)/sumSqDevX)

	margin := tStat * predictionStdError
	yPred := Predict(result, x)

	return RoundToThousandth(yPred - margin), RoundToThousandth(yPred + margin)
}

// GenerateForecasts строит прогнозы средней суточной температуры на
// daysAhead дней вперед от конца анализируемого периода. Прогнозы и
// границы интервалов не опускаются ниже абсолютного нуля
func GenerateForecasts(result *RegressionResult, daysAhead int, confidenceLevel float64) []ForecastPoint {
	forecasts := make([]ForecastPoint, daysAhead)

	lastDate := result.PeriodEnd

	// Номер последнего дня в наборе данных
	maxX := 0.0
	for _, p := range result.DataPoints {
		if p.X > maxX {
			maxX = p.X
		}
	}

	for i := 0; i < daysAhead; i++ {
		x := maxX + float64(i+1)

		yPred := Predict(result, x)
		lower, upper := CalculateConfidenceInterval(result, x, confidenceLevel)

		forecasts[i] = ForecastPoint{
			Date:          lastDate.AddDate(0, 0, i+1),
			ForecastValue: clampTemperature(yPred),
			CILower:       clampTemperature(lower),
			CIUpper:       clampTemperature(upper),
		}
	}

	return forecasts
}
