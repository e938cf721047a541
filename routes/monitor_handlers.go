// routes/monitor_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/LilVoxy/coursework_tempmon/monitor"
)

// MonitorControlRequest структура запроса управления мониторингом
type MonitorControlRequest struct {
	Action   string `json:"action"`             // "pause", "resume" или "interval"
	Interval int    `json:"interval,omitempty"` // Новый интервал в секундах (для action=interval)
}

// GetStatusHandler обрабатывает запросы состояния мониторинга
func GetStatusHandler(runner *monitor.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(runner.Status()); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
		}
	}
}

// MonitorControlHandler обрабатывает запросы приостановки и возобновления замеров
func MonitorControlHandler(runner *monitor.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MonitorControlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		switch req.Action {
		case "pause":
			runner.Pause()
		case "resume":
			runner.Resume()
		case "interval":
			if err := runner.SetInterval(time.Duration(req.Interval) * time.Second); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		default:
			http.Error(w, "Неизвестное действие: допустимы pause, resume и interval", http.StatusBadRequest)
			return
		}

		// Отправляем успешный ответ с подтверждением
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		response := map[string]interface{}{
			"success":    true,
			"action":     req.Action,
			"monitoring": runner.Monitoring(),
		}

		json.NewEncoder(w).Encode(response)
	}
}
