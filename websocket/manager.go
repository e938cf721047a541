// websocket/manager.go
package websocket

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/LilVoxy/coursework_tempmon/sensors"
)

// Создание нового менеджера WebSocket-соединений
func NewManager() *Manager {
	return &Manager{
		Clients:    make(map[string]*Client),
		Broadcast:  make(chan Sample, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run запускает работу менеджера
func (manager *Manager) Run() {
	for {
		select {
		case client := <-manager.Register:
			manager.clientsMutex.Lock()
			manager.Clients[client.ID] = client
			manager.clientsMutex.Unlock()
			log.Printf("👤 Подписчик %s подключился", client.ID)

		case client := <-manager.Unregister:
			manager.clientsMutex.Lock()
			if _, ok := manager.Clients[client.ID]; ok {
				delete(manager.Clients, client.ID)
				close(client.Send)
				log.Printf("👤 Подписчик %s отключился", client.ID)
			}
			manager.clientsMutex.Unlock()

		case sample := <-manager.Broadcast:
			// Рассылаем замер всем подключенным подписчикам
			manager.broadcast(sample)
		}
	}
}

// ClientCount возвращает количество подключенных подписчиков
func (manager *Manager) ClientCount() int {
	manager.clientsMutex.RLock()
	defer manager.clientsMutex.RUnlock()
	return len(manager.Clients)
}

// broadcast отправляет замер всем подписчикам в их единицах измерения
func (manager *Manager) broadcast(sample Sample) {
	manager.clientsMutex.Lock()
	defer manager.clientsMutex.Unlock()

	for _, client := range manager.Clients {
		data, err := manager.encodeSample(sample, manager.clientUnit(client))
		if err != nil {
			log.Printf("❌ Ошибка кодирования замера для подписчика %s: %v", client.ID, err)
			continue
		}

		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(manager.Clients, client.ID)
		}
	}
}

// encodeSample формирует JSON-сообщение замера в указанной единице измерения
func (manager *Manager) encodeSample(sample Sample, unit string) ([]byte, error) {
	temp, err := sensors.Convert(sample.Celsius, unit)
	if err != nil {
		return nil, err
	}

	avg, err := sensors.Convert(sample.Average, unit)
	if err != nil {
		return nil, err
	}

	cores := make([]sensors.CoreTemperature, len(sample.Cores))
	for i, core := range sample.Cores {
		converted, err := sensors.Convert(core.Celsius, unit)
		if err != nil {
			return nil, err
		}
		cores[i] = sensors.CoreTemperature{
			Core:    core.Core,
			Label:   core.Label,
			Celsius: converted,
		}
	}

	msg := Message{
		Type:        "reading",
		Unit:        unit,
		Temperature: temp,
		Average:     avg,
		Cores:       cores,
		Timestamp:   sample.TakenAt.Format("2006-01-02 15:04:05"),
	}

	return json.Marshal(msg)
}

// BroadcastEvent рассылает текстовое событие мониторинга всем подписчикам
func (manager *Manager) BroadcastEvent(text string) {
	msg := Message{
		Type: "event",
		Text: text,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("❌ Ошибка кодирования события: %v", err)
		return
	}

	manager.clientsMutex.Lock()
	defer manager.clientsMutex.Unlock()

	for _, client := range manager.Clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(manager.Clients, client.ID)
		}
	}
}

// SetClientUnit меняет единицу измерения подписчика
func (manager *Manager) SetClientUnit(client *Client, unit string) error {
	if err := sensors.CheckUnit(unit); err != nil {
		return err
	}

	manager.unitMutex.Lock()
	client.Unit = strings.ToLower(unit)
	manager.unitMutex.Unlock()
	return nil
}

// clientUnit возвращает единицу измерения подписчика под блокировкой
func (manager *Manager) clientUnit(client *Client) string {
	manager.unitMutex.RLock()
	defer manager.unitMutex.RUnlock()

	if client.Unit == "" {
		return "c"
	}
	return client.Unit
}
