// routes/chart_handler.go
package routes

import (
	"fmt"
	"log"
	"net/http"

	"github.com/LilVoxy/coursework_tempmon/config"
	"github.com/LilVoxy/coursework_tempmon/csvlog"
	"github.com/LilVoxy/coursework_tempmon/report"
	"github.com/LilVoxy/coursework_tempmon/sensors"
)

// GetChartHandler отдает страницу с графиком температуры по CSV-журналу
func GetChartHandler(csvLogger *csvlog.CsvLogger, cfg config.MonitorConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := csvLogger.TemperaturePoints()
		if err != nil {
			log.Printf("❌ Ошибка при чтении журнала замеров: %v", err)
			http.Error(w, "Ошибка при чтении журнала замеров", http.StatusInternalServerError)
			return
		}

		chartPoints := make([]report.Point, len(points))
		for i, p := range points {
			chartPoints[i] = report.Point{
				Timestamp:   p.Timestamp,
				Temperature: p.Temperature,
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		title := fmt.Sprintf("Температура CPU (%s)", sensors.UnitSymbol(cfg.Unit))
		if err := report.RenderChart(w, title, sensors.UnitSymbol(cfg.Unit), chartPoints); err != nil {
			log.Printf("❌ Ошибка при рендеринге графика: %v", err)
		}
	}
}
