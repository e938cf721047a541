// websocket/read_pump.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// readPump обрабатывает служебные сообщения от подписчика
func (c *Client) readPump(manager *Manager) {
	defer func() {
		// Обработка паники при закрытии канала
		if r := recover(); r != nil {
			log.Printf("Паника при чтении сообщений подписчика %s: %v", c.ID, r)
		}

		// Отправляем сигнал отключения
		manager.Unregister <- c

		// Безопасно закрываем соединение
		c.Socket.Close()

		log.Printf("Завершение readPump для подписчика %s", c.ID)
	}()

	// Устанавливаем параметры подключения
	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Читаем сообщения
		_, message, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Ошибка: %v", err)
			}
			break
		}

		// Обрабатываем полученное сообщение
		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Println("Ошибка декодирования сообщения:", err)
			continue
		}

		switch msg.Type {
		case "ping":
			// Отправляем понг-сообщение обратно подписчику
			pongMsg := Message{
				Type: "pong",
			}
			if pongData, err := json.Marshal(pongMsg); err == nil {
				c.Send <- pongData
			}

		case "unit":
			// Подписчик меняет единицу измерения для своих сообщений
			if err := manager.SetClientUnit(c, msg.Unit); err != nil {
				log.Printf("Невалидная единица измерения от подписчика %s: %v", c.ID, err)
				continue
			}
			log.Printf("Подписчик %s перешел на единицу %s", c.ID, msg.Unit)
		}
	}
}
