package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades the request and attaches the connection to the hub.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.Accept(w, r, nil)
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	client := newClient(h, conn)
	client.run(r.Context())

	conn.Close(ws.StatusNormalClosure, "")
}
