package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"whispersofusAPI/internal/chat"
	"whispersofusAPI/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients cannot set an Authorization header on the upgrade
	// request consistently, so the token rides in a query parameter and the
	// auth middleware already verified it before we get here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ChatHandler struct {
	chatService *services.ChatService
	userService *services.UserService
	hub         *services.ChatHub
}

func NewChatHandler(chatService *services.ChatService, userService *services.UserService, hub *services.ChatHub) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		userService: userService,
		hub:         hub,
	}
}

// GET /chat/ws
func (h *ChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed for user %s: %v", u.ID, err)
		return
	}

	h.hub.Register(conn, u.ID, u.Name)
}

// POST /chat/send
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	var req chat.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		respondWithError(w, http.StatusBadRequest, "content is required")
		return
	}

	msg, err := h.chatService.SendMessage(ctx, u.ID, req.ReceiverID, req.Content, chat.ParseMessageType(req.MessageType))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, msg)
}

// GET /chat/messages?partnerId=&page=&size=
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	partnerID, err := h.chatService.ResolveCounterpart(ctx, u.ID, r.URL.Query().Get("partnerId"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	page, size := paging(r, 0, 50)
	messages, err := h.chatService.GetMessagesBetween(ctx, u.ID, partnerID, page, size)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, messages)
}

// GET /chat/unread
func (h *ChatHandler) GetUnread(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	messages, err := h.chatService.GetUnreadMessages(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, messages)
}

// GET /chat/unread/count
func (h *ChatHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	count, err := h.chatService.GetUnreadMessageCount(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// PUT /chat/messages/{id}/read
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	msg, err := h.chatService.MarkMessageAsRead(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, msg)
}

// PUT /chat/read?partnerId=
func (h *ChatHandler) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	partnerID, err := h.chatService.ResolveCounterpart(ctx, u.ID, r.URL.Query().Get("partnerId"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if err := h.chatService.MarkConversationRead(ctx, partnerID, u.ID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "conversation marked as read"})
}

// DELETE /chat/messages/{id}
func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	if err := h.chatService.DeleteMessage(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "message deleted"})
}

// DELETE /chat/conversation?partnerId=
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	partnerID, err := h.chatService.ResolveCounterpart(ctx, u.ID, r.URL.Query().Get("partnerId"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if err := h.chatService.DeleteConversation(ctx, u.ID, partnerID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "conversation deleted"})
}

// paging reads page/size query parameters with sane bounds.
func paging(r *http.Request, defaultPage, defaultSize int) (int, int) {
	page := defaultPage
	size := defaultSize

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 && v <= 100 {
		size = v
	}
	return page, size
}
