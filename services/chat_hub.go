package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"whispersofusAPI/internal/chat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// ChatHub broadcasts chat frames to every connected client. The app is a
// two-person channel, so a single broadcast room mirrors the shared topic
// the mobile clients subscribe to.
type ChatHub struct {
	chat  *ChatService
	users *UserService

	clients    map[*ChatClient]bool
	register   chan *ChatClient
	unregister chan *ChatClient
	broadcast  chan []byte
}

func NewChatHub(chatService *ChatService, userService *UserService) *ChatHub {
	return &ChatHub{
		chat:       chatService,
		users:      userService,
		clients:    make(map[*ChatClient]bool),
		register:   make(chan *ChatClient),
		unregister: make(chan *ChatClient),
		broadcast:  make(chan []byte, 64),
	}
}

// Run owns the client set. Start it once from main.
func (h *ChatHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("ChatHub: user %s connected (%d online)", client.UserID, len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("ChatHub: user %s disconnected", client.UserID)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Register attaches a connected websocket client and starts its pumps.
func (h *ChatHub) Register(conn *websocket.Conn, userID, name string) {
	client := &ChatClient{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 16),
		UserID: userID,
		Name:   name,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

type ChatClient struct {
	hub  *ChatHub
	conn *websocket.Conn
	send chan []byte

	UserID string
	Name   string
}

func (c *ChatClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ChatHub: read error for user %s: %v", c.UserID, err)
			}
			break
		}

		var frame chat.Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("ChatHub: dropping malformed frame from user %s: %v", c.UserID, err)
			continue
		}

		c.handleFrame(&frame)
	}
}

func (c *ChatClient) handleFrame(frame *chat.Frame) {
	// The caller identity comes from the authenticated connection, never
	// from the frame.
	frame.SenderID = c.UserID
	frame.SenderName = c.Name
	frame.Timestamp = time.Now()

	switch frame.Type {
	case chat.FrameJoin:
		frame.Content = c.Name + " joined the chat"

	case chat.FrameTyping, chat.FrameStopTyping:
		// Transient, broadcast as-is.

	case chat.FrameChat:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		saved, err := c.hub.chat.SendMessage(ctx, c.UserID, frame.ReceiverID, frame.Content, chat.ParseMessageType(frame.MessageType))
		cancel()
		if err != nil {
			log.Printf("ChatHub: failed to persist message from user %s: %v", c.UserID, err)
			return
		}
		frame.ID = saved.ID
		frame.ReceiverID = saved.ReceiverID

	default:
		log.Printf("ChatHub: unknown frame type %q from user %s", frame.Type, c.UserID)
		return
	}

	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("ChatHub: failed to marshal frame: %v", err)
		return
	}
	c.hub.broadcast <- data
}

func (c *ChatClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
