package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperatureHistoryPush(t *testing.T) {
	h := NewTemperatureHistory(3)
	assert.Equal(t, 0, h.Size())

	h.Push(40)
	h.Push(42)
	assert.Equal(t, 2, h.Size())
	assert.Equal(t, []float64{40, 42}, h.Data())

	// При переполнении вытесняется самое старое значение
	h.Push(44)
	h.Push(46)
	assert.Equal(t, 3, h.Size())
	assert.Equal(t, []float64{42, 44, 46}, h.Data())
}

func TestTemperatureHistoryAverage(t *testing.T) {
	h := NewTemperatureHistory(10)
	assert.Equal(t, 0.0, h.Average())

	h.Push(40)
	h.Push(50)
	h.Push(60)
	assert.InDelta(t, 50.0, h.Average(), 0.001)
}

func TestTemperatureHistoryDataIsCopy(t *testing.T) {
	h := NewTemperatureHistory(5)
	h.Push(40)

	data := h.Data()
	data[0] = 99

	assert.Equal(t, []float64{40}, h.Data())
}
