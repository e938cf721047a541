// routes/forecast_handlers.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
)

// ForecastInfo структура прогноза температуры для ответа API
type ForecastInfo struct {
	Date          string  `json:"date"`
	ForecastValue float64 `json:"forecastValue"`
	CILower       float64 `json:"ciLower"`
	CIUpper       float64 `json:"ciUpper"`
}

// ForecastResponse структура ответа API для прогнозов
type ForecastResponse struct {
	Forecasts []ForecastInfo `json:"forecasts"`
}

// GetForecastHandler обрабатывает запросы прогнозов температурного тренда.
// Прогнозы строит пайплайн аналитики (режим lr), здесь они только читаются.
func GetForecastHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Горизонт прогноза в днях (по умолчанию 14)
		days := 14
		if daysStr := r.URL.Query().Get("days"); daysStr != "" {
			parsed, err := strconv.Atoi(daysStr)
			if err != nil || parsed <= 0 || parsed > 90 {
				http.Error(w, "Неверный формат параметра days", http.StatusBadRequest)
				return
			}
			days = parsed
		}

		now := time.Now()
		rows, err := db.Query(`
			SELECT forecast_date, forecast_value, ci_lower, ci_upper
			FROM temp_analytics.temperature_trend_predictions
			WHERE forecast_date BETWEEN ? AND ?
			ORDER BY forecast_date
		`, now.Format("2006-01-02"), now.AddDate(0, 0, days).Format("2006-01-02"))
		if err != nil {
			log.Printf("❌ Ошибка при запросе прогнозов: %v", err)
			http.Error(w, "Ошибка при получении прогнозов", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		var response ForecastResponse
		for rows.Next() {
			var date time.Time
			var f ForecastInfo

			if err := rows.Scan(&date, &f.ForecastValue, &f.CILower, &f.CIUpper); err != nil {
				log.Printf("❌ Ошибка при сканировании прогноза: %v", err)
				continue
			}
			f.Date = date.Format("2006-01-02")
			response.Forecasts = append(response.Forecasts, f)
		}

		if err := rows.Err(); err != nil {
			log.Printf("❌ Ошибка при итерации по прогнозам: %v", err)
			http.Error(w, "Ошибка при обработке прогнозов", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлено %d прогнозов на %d дней", len(response.Forecasts), days)
	}
}
