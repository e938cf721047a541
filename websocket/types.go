// websocket/types.go
package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/coursework_tempmon/sensors"
)

// Структура сообщения для обмена через WebSocket
type Message struct {
	Type        string                    `json:"type"`
	Unit        string                    `json:"unit,omitempty"`
	Temperature float64                   `json:"temperature,omitempty"`
	Average     float64                   `json:"average,omitempty"`
	Cores       []sensors.CoreTemperature `json:"cores,omitempty"`
	Timestamp   string                    `json:"timestamp,omitempty"`
	Text        string                    `json:"text,omitempty"`
}

// Sample представляет один замер температуры для рассылки подписчикам.
// Все значения в Цельсиях, перевод в единицу клиента выполняется при отправке.
type Sample struct {
	TakenAt time.Time
	Celsius float64
	Average float64
	Cores   []sensors.CoreTemperature
}

// Клиент WebSocket
type Client struct {
	ID     string
	Unit   string
	Socket *websocket.Conn
	Send   chan []byte
}

// Менеджер WebSocket-соединений
type Manager struct {
	Clients    map[string]*Client
	Broadcast  chan Sample
	Register   chan *Client
	Unregister chan *Client

	// clientsMutex защищает Clients: карту читают и меняют
	// как цикл Run, так и обработчики HTTP и мониторинг
	clientsMutex sync.RWMutex
	unitMutex    sync.RWMutex
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Разрешаем подключения с любого источника (для разработки)
	},
}
