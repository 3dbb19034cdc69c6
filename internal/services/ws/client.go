// internal/services/ws/client.go
package ws

import "github.com/gorilla/websocket"

type Client struct {
	Conn    *websocket.Conn
	Send    chan []byte
	GuardID int
}
