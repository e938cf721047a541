// routes/api_routes.go
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_tempmon/config"
	"github.com/LilVoxy/coursework_tempmon/csvlog"
	"github.com/LilVoxy/coursework_tempmon/middleware"
	"github.com/LilVoxy/coursework_tempmon/monitor"
	"github.com/LilVoxy/coursework_tempmon/websocket"
)

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(
	router *mux.Router,
	db *sql.DB,
	wsManager *websocket.Manager,
	runner *monitor.Runner,
	csvLogger *csvlog.CsvLogger,
	cfg config.MonitorConfig,
) {
	// Применяем CORS middleware
	router.Use(middleware.CORSMiddleware)

	// WebSocket соединения для живой ленты замеров
	router.HandleFunc("/ws", wsManager.HandleConnections)

	// API состояния мониторинга
	router.HandleFunc("/api/status", GetStatusHandler(runner)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/monitor", MonitorControlHandler(runner)).Methods("POST", "OPTIONS")

	// API замеров
	router.HandleFunc("/api/readings", GetReadingsHandler(db, cfg)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/readings/latest", GetLatestReadingHandler(db, cfg)).Methods("GET", "OPTIONS")

	// API прогнозов температурного тренда
	router.HandleFunc("/api/forecast", GetForecastHandler(db)).Methods("GET", "OPTIONS")

	// Страница с графиком температуры
	router.HandleFunc("/chart", GetChartHandler(csvLogger, cfg)).Methods("GET")

	// Статические файлы
	router.PathPrefix("/").Handler(http.FileServer(http.Dir("public")))
}
