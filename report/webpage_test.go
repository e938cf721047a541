package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChart(t *testing.T) {
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	points := []Point{
		{Timestamp: base, Temperature: 40},
		{Timestamp: base.Add(time.Minute), Temperature: 50},
		{Timestamp: base.Add(2 * time.Minute), Temperature: 45},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, "Температура CPU (°C)", "°C", points))

	html := buf.String()
	assert.Contains(t, html, "<title>Температура CPU (°C)</title>")
	assert.Contains(t, html, "Точек: 3")
	assert.Contains(t, html, "Мин: 40.00")
	assert.Contains(t, html, "Макс: 50.00")
	assert.Contains(t, html, "<polyline")

	// Крайние точки полилинии: минимум на нижней границе, максимум на верхней
	assert.Contains(t, html, "40.0,380.0")
	assert.Contains(t, html, "480.0,40.0")
}

func TestRenderChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, "Температура CPU", "°C", nil))

	html := buf.String()
	assert.Contains(t, html, "Точек: 0")
	assert.Contains(t, html, `points=""`)
}

func TestBuildPolylineFlatSeries(t *testing.T) {
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	points := []Point{
		{Timestamp: base, Temperature: 42},
		{Timestamp: base.Add(time.Minute), Temperature: 42},
	}

	line := buildPolyline(points, 42, 42)
	coords := strings.Split(line, " ")
	require.Len(t, coords, 2)

	// Обе точки лежат на одной горизонтали
	assert.True(t, strings.HasSuffix(coords[0], ",380.0"))
	assert.True(t, strings.HasSuffix(coords[1], ",380.0"))
}
