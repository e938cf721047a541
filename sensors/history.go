// sensors/history.go
package sensors

import (
	"sync"
)

// TemperatureHistory хранит ограниченную очередь последних замеров
// и считает по ней среднюю температуру
type TemperatureHistory struct {
	mu       sync.RWMutex
	capacity int
	items    []float64
}

// NewTemperatureHistory создает историю замеров указанной емкости
func NewTemperatureHistory(capacity int) *TemperatureHistory {
	if capacity <= 0 {
		capacity = 1
	}
	return &TemperatureHistory{
		capacity: capacity,
		items:    make([]float64, 0, capacity),
	}
}

// Push добавляет замер, вытесняя самый старый при переполнении
func (h *TemperatureHistory) Push(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == h.capacity {
		h.items = h.items[1:]
	}
	h.items = append(h.items, value)
}

// Size возвращает текущее количество замеров в истории
func (h *TemperatureHistory) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// Data возвращает копию замеров от старых к новым
func (h *TemperatureHistory) Data() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data := make([]float64, len(h.items))
	copy(data, h.items)
	return data
}

// Average возвращает среднюю температуру по истории.
// Для пустой истории возвращается 0.
func (h *TemperatureHistory) Average() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.items) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range h.items {
		sum += v
	}
	return sum / float64(len(h.items))
}
