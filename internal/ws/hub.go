package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ClientMsg representa uma mensagem recebida do cliente WebSocket
type ClientMsg struct {
	Type string `json:"type"` // ping
}

// Update é a notificação enviada a todos os clientes conectados
// Type: basket_updated | events_refreshed
type Update struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	TotalPrice string `json:"totalPrice,omitempty"`
}

// conn envolve a conexão WebSocket com serialização de escrita. O
// gorilla/websocket permite no máximo um escritor por conexão, e aqui o
// Broadcast chega de várias goroutines (mutações do basket via HTTP e o
// refresh em background), além do pong do loop de leitura.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Hub gerencia as conexões WebSocket da camada de apresentação.
// Todo cliente conectado recebe as notificações de mudança do basket e de
// refresh da lista de eventos.
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	conns    map[*conn]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		conns:    make(map[*conn]struct{}),
	}
}

// ClientCount retorna o número de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket.
// A inscrição é implícita na conexão; o cliente só precisa responder a pings.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	c := &conn{ws: ws}
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	pong, _ := json.Marshal(map[string]string{"type": "pong"})
	for {
		var msg ClientMsg
		if err := ws.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type == "ping" {
			// passa pelo mesmo lock de escrita do Broadcast
			_ = c.write(pong)
		}
	}

	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

// Broadcast envia a notificação para todos os clientes conectados.
// Pode ser chamado de qualquer goroutine; a escrita em cada conexão é
// serializada pelo lock da própria conexão.
func (h *Hub) Broadcast(update Update) {
	h.mu.RLock()
	conns := make([]*conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	if len(conns) == 0 {
		return
	}

	b, _ := json.Marshal(update)
	for _, c := range conns {
		_ = c.write(b)
	}
}
