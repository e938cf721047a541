package websocket

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/LilVoxy/coursework_tempmon/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSample(t *testing.T) {
	manager := NewManager()

	sample := Sample{
		TakenAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Celsius: 100,
		Average: 50,
		Cores: []sensors.CoreTemperature{
			{Core: 1, Label: "Core 0", Celsius: 0},
		},
	}

	data, err := manager.encodeSample(sample, "f")
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "reading", msg.Type)
	assert.Equal(t, "f", msg.Unit)
	assert.InDelta(t, 212, msg.Temperature, 0.001)
	assert.InDelta(t, 122, msg.Average, 0.001)
	require.Len(t, msg.Cores, 1)
	assert.InDelta(t, 32, msg.Cores[0].Celsius, 0.001)
	assert.Equal(t, "2026-08-29 12:00:00", msg.Timestamp)
}

func TestEncodeSampleBadUnit(t *testing.T) {
	manager := NewManager()

	_, err := manager.encodeSample(Sample{Celsius: 45}, "rankine")
	assert.Error(t, err)
}

func TestSetClientUnit(t *testing.T) {
	manager := NewManager()
	client := &Client{ID: "test", Send: make(chan []byte, 1)}

	require.NoError(t, manager.SetClientUnit(client, "Kelvin"))
	assert.Equal(t, "kelvin", manager.clientUnit(client))

	assert.Error(t, manager.SetClientUnit(client, "bogus"))
	// Невалидная единица не меняет текущую
	assert.Equal(t, "kelvin", manager.clientUnit(client))
}

func TestClientUnitDefault(t *testing.T) {
	manager := NewManager()
	client := &Client{ID: "test", Send: make(chan []byte, 1)}

	assert.Equal(t, "c", manager.clientUnit(client))
}

func TestConcurrentRegisterAndBroadcastEvent(t *testing.T) {
	manager := NewManager()
	go manager.Run()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			client := &Client{ID: fmt.Sprintf("client-%d", i), Send: make(chan []byte, 4)}
			manager.Register <- client
			manager.Unregister <- client
		}
	}()

	// Параллельно рассылаем события и читаем счетчик подписчиков
	for {
		select {
		case <-done:
			// Последний Unregister мог еще не обработаться циклом Run
			assert.Eventually(t, func() bool {
				return manager.ClientCount() == 0
			}, time.Second, 10*time.Millisecond)
			return
		default:
			manager.BroadcastEvent("Monitoring CPU temperature.")
			manager.ClientCount()
		}
	}
}

func TestBroadcastDisconnectsSlowClient(t *testing.T) {
	manager := NewManager()

	fast := &Client{ID: "fast", Send: make(chan []byte, 1)}
	slow := &Client{ID: "slow", Send: make(chan []byte)}
	manager.Clients[fast.ID] = fast
	manager.Clients[slow.ID] = slow

	manager.broadcast(Sample{TakenAt: time.Now(), Celsius: 45, Average: 44})

	// Быстрый подписчик получил замер, медленный отключен
	assert.Len(t, fast.Send, 1)
	assert.Equal(t, 1, manager.ClientCount())
	_, open := <-slow.Send
	assert.False(t, open)
}
