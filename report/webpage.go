// report/webpage.go
package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
)

// Point представляет одну точку графика температуры
type Point struct {
	Timestamp   time.Time
	Temperature float64
}

// Размеры SVG-графика
const (
	chartWidth  = 960
	chartHeight = 420
	chartPad    = 40
)

// chartPage шаблон страницы с графиком температуры
var chartPage = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; background: #f7f7f7; margin: 24px; }
h1 { font-size: 20px; }
.meta { color: #666; font-size: 13px; margin-bottom: 12px; }
svg { background: #fff; border: 1px solid #ddd; }
.axis { stroke: #999; stroke-width: 1; }
.series { fill: none; stroke: #d9534f; stroke-width: 2; }
.label { font-size: 11px; fill: #666; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Точек: {{.Count}} | Мин: {{.Min}} {{.Unit}} | Макс: {{.Max}} {{.Unit}} | Период: {{.Period}}</div>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<line class="axis" x1="{{.Pad}}" y1="{{.AxisY}}" x2="{{.AxisX}}" y2="{{.AxisY}}"/>
<line class="axis" x1="{{.Pad}}" y1="{{.Pad}}" x2="{{.Pad}}" y2="{{.AxisY}}"/>
<text class="label" x="{{.Pad}}" y="16">{{.MaxLabel}}</text>
<text class="label" x="{{.Pad}}" y="{{.MinLabelY}}">{{.MinLabel}}</text>
<polyline class="series" points="{{.Points}}"/>
</svg>
</body>
</html>
`))

// chartView данные для шаблона страницы графика
type chartView struct {
	Title     string
	Unit      string
	Count     int
	Min       string
	Max       string
	Period    string
	Width     int
	Height    int
	Pad       int
	AxisX     int
	AxisY     int
	MaxLabel  string
	MinLabel  string
	MinLabelY int
	Points    string
}

// RenderChart рендерит HTML-страницу с SVG-графиком температуры.
// Пустой набор точек рендерится как страница без линии графика.
func RenderChart(w io.Writer, title, unit string, points []Point) error {
	view := chartView{
		Title:     title,
		Unit:      unit,
		Count:     len(points),
		Min:       "-",
		Max:       "-",
		Period:    "-",
		Width:     chartWidth,
		Height:    chartHeight,
		Pad:       chartPad,
		AxisX:     chartWidth - chartPad,
		AxisY:     chartHeight - chartPad,
		MinLabelY: chartHeight - chartPad - 4,
	}

	if len(points) > 0 {
		minTemp, maxTemp := points[0].Temperature, points[0].Temperature
		for _, p := range points {
			if p.Temperature < minTemp {
				minTemp = p.Temperature
			}
			if p.Temperature > maxTemp {
				maxTemp = p.Temperature
			}
		}

		view.Min = fmt.Sprintf("%.2f", minTemp)
		view.Max = fmt.Sprintf("%.2f", maxTemp)
		view.MinLabel = view.Min
		view.MaxLabel = view.Max
		view.Period = fmt.Sprintf("%s — %s",
			points[0].Timestamp.Format("2006-01-02 15:04:05"),
			points[len(points)-1].Timestamp.Format("2006-01-02 15:04:05"))
		view.Points = buildPolyline(points, minTemp, maxTemp)
	}

	return chartPage.Execute(w, view)
}

// buildPolyline переводит точки замеров в координаты SVG-полилинии
func buildPolyline(points []Point, minTemp, maxTemp float64) string {
	plotWidth := float64(chartWidth - 2*chartPad)
	plotHeight := float64(chartHeight - 2*chartPad)

	// При одинаковых температурах рисуем горизонтальную линию посередине
	tempRange := maxTemp - minTemp
	if tempRange == 0 {
		tempRange = 1
	}

	step := plotWidth
	if len(points) > 1 {
		step = plotWidth / float64(len(points)-1)
	}

	var sb strings.Builder
	for i, p := range points {
		x := float64(chartPad) + float64(i)*step
		y := float64(chartHeight-chartPad) - (p.Temperature-minTemp)/tempRange*plotHeight
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	return sb.String()
}
