// websocket/connection_handler.go
package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/LilVoxy/coursework_tempmon/sensors"
)

// HandleConnections обрабатывает WebSocket-соединения подписчиков
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	// Единица измерения подписчика из параметра запроса (по умолчанию Цельсий)
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "c"
	}
	if err := sensors.CheckUnit(unit); err != nil {
		log.Printf("Невалидная единица измерения %q: %v", unit, err)
		http.Error(w, "Невалидная единица измерения", http.StatusBadRequest)
		return
	}

	// Устанавливаем WebSocket-соединение
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Ошибка при установке WebSocket-соединения:", err)
		return
	}

	// Создаем нового подписчика
	client := &Client{
		ID:     uuid.NewString(),
		Unit:   unit,
		Socket: conn,
		Send:   make(chan []byte, 256),
	}

	// Регистрируем подписчика в менеджере
	manager.Register <- client
	log.Printf("✅ Подписчик %s подключился с адреса %s (единица: %s)", client.ID, r.RemoteAddr, unit)

	// Отправляем приветственное сообщение с присвоенным ID
	welcome := Message{
		Type: "hello",
		Text: client.ID,
		Unit: unit,
	}
	if data, err := json.Marshal(welcome); err == nil {
		client.Send <- data
	}

	// Запускаем горутины для чтения и отправки сообщений
	go client.readPump(manager)
	go client.writePump()
}
