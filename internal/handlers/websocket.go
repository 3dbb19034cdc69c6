// internal/handlers/websocket.go
package handlers

import (
	"log"
	"net/http"

	"github.com/evn/guard_backendl/internal/middleware"
	"github.com/evn/guard_backendl/internal/services/ws"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler подключает консоль охранника к хабу.
func WebSocketHandler(manager *ws.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "invalid user", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("Upgrade error:", err)
			return
		}

		client := &ws.Client{
			Conn:    conn,
			Send:    make(chan []byte, 256),
			GuardID: guardID,
		}

		manager.Register(client)

		go manager.ReadPump(client)
		go manager.WritePump(client)
	}
}
