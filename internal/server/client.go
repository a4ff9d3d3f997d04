package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"wildroot-server/internal/engine"
	"wildroot-server/pkg/api"
	"wildroot-server/pkg/logger"
	"wildroot-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func apiSaveCommand() api.ClientCommand {
	return api.ClientCommand{Action: "SAVE"}
}

// Client - посредник между WebSocket и GameService
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game:      game,
		Conn:      conn,
		Send:      make(chan api.ServerResponse, 256),
		SessionID: "session_" + utils.GenerateID(),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Game.Hub.Unregister(c.SessionID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		logger.Log.WithField("session_id", c.SessionID).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// Подписка на обновления мира
	gameUpdates := c.Game.Hub.Register(c.SessionID)
	go forwardUpdates(gameUpdates, c.Send)

	logger.Log.WithField("session_id", c.SessionID).Info("Client connected")

	// Триггер первой отрисовки
	c.Game.ProcessCommand(api.ClientCommand{Action: "INIT"})

	// Цикл чтения команд
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		c.Game.ProcessCommand(cmd)
	}
}

// forwardUpdates перекачивает снапшоты мира из хаба в канал записи
// клиента. Переполненный канал не блокирует перекачку: каждый снапшот
// самодостаточен, потерянный кадр замещается следующим. Иначе после
// смерти writePump горутина зависала бы на отправке навсегда.
func forwardUpdates(updates <-chan api.ServerResponse, send chan<- api.ServerResponse) {
	defer close(send)
	for msg := range updates {
		select {
		case send <- msg:
		default:
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
