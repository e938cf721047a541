// routes/reading_handlers.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/LilVoxy/coursework_tempmon/config"
	"github.com/LilVoxy/coursework_tempmon/database"
	"github.com/LilVoxy/coursework_tempmon/sensors"
)

// ReadingInfo структура замера для ответа API
type ReadingInfo struct {
	ID          int     `json:"id"`
	TakenAt     string  `json:"takenAt"`
	Core        int     `json:"core"`
	Label       string  `json:"label"`
	Temperature float64 `json:"temperature"`
}

// ReadingsResponse структура ответа API для списка замеров
type ReadingsResponse struct {
	Unit     string        `json:"unit"`
	Readings []ReadingInfo `json:"readings"`
}

// Максимальное количество замеров в одном ответе
const maxReadingsLimit = 5000

// parseTimeParam разбирает параметр времени в формате RFC3339 или дата
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// toReadingInfo переводит замер в формат ответа API с нужной единицей измерения
func toReadingInfo(reading database.Reading, unit string) ReadingInfo {
	converted, _ := sensors.Convert(reading.Temperature, unit)
	return ReadingInfo{
		ID:          reading.ID,
		TakenAt:     reading.TakenAt.Format("2006-01-02 15:04:05"),
		Core:        reading.Core,
		Label:       reading.Label,
		Temperature: converted,
	}
}

// GetReadingsHandler обрабатывает запросы на получение истории замеров
func GetReadingsHandler(db *sql.DB, cfg config.MonitorConfig) http.HandlerFunc {
	repo := database.NewMySQLReadingRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		// Получаем параметры запроса
		query := r.URL.Query()

		// Единица измерения (по умолчанию из конфигурации)
		unit := query.Get("unit")
		if unit == "" {
			unit = cfg.Unit
		}
		if err := sensors.CheckUnit(unit); err != nil {
			http.Error(w, "Невалидная единица измерения", http.StatusBadRequest)
			return
		}

		// Период выборки (по умолчанию последний час)
		to := time.Now()
		from := to.Add(-1 * time.Hour)

		if fromStr := query.Get("from"); fromStr != "" {
			parsed, err := parseTimeParam(fromStr)
			if err != nil {
				http.Error(w, "Неверный формат параметра from", http.StatusBadRequest)
				return
			}
			from = parsed
		}

		if toStr := query.Get("to"); toStr != "" {
			parsed, err := parseTimeParam(toStr)
			if err != nil {
				http.Error(w, "Неверный формат параметра to", http.StatusBadRequest)
				return
			}
			to = parsed
		}

		// Лимит количества замеров
		limit := 1000
		if limitStr := query.Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 || parsed > maxReadingsLimit {
				http.Error(w, "Неверный формат параметра limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		// Получаем замеры из базы данных
		readings, err := repo.GetReadingsRange(from, to, limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе замеров: %v", err)
			http.Error(w, "Ошибка при получении замеров", http.StatusInternalServerError)
			return
		}

		// Подготавливаем ответ
		response := ReadingsResponse{
			Unit:     unit,
			Readings: make([]ReadingInfo, 0, len(readings)),
		}
		for _, reading := range readings {
			response.Readings = append(response.Readings, toReadingInfo(reading, unit))
		}

		// Устанавливаем заголовок для JSON
		w.Header().Set("Content-Type", "application/json")

		// Кодируем и отправляем ответ
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлено %d замеров за период %v — %v", len(response.Readings), from, to)
	}
}

// GetLatestReadingHandler обрабатывает запросы на получение последнего замера
func GetLatestReadingHandler(db *sql.DB, cfg config.MonitorConfig) http.HandlerFunc {
	repo := database.NewMySQLReadingRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		// Единица измерения (по умолчанию из конфигурации)
		unit := r.URL.Query().Get("unit")
		if unit == "" {
			unit = cfg.Unit
		}
		if err := sensors.CheckUnit(unit); err != nil {
			http.Error(w, "Невалидная единица измерения", http.StatusBadRequest)
			return
		}

		// Получаем последний замер
		reading, err := repo.GetLatestReading()
		if err != nil {
			log.Printf("❌ Ошибка при запросе последнего замера: %v", err)
			http.Error(w, "Ошибка при получении замера", http.StatusInternalServerError)
			return
		}

		if reading == nil {
			http.Error(w, "Замеры еще не записаны", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		info := toReadingInfo(*reading, unit)
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"unit":    unit,
			"reading": info,
		}); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
		}
	}
}
