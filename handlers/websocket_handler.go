package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/power-play/realtime"
	"github.com/Dosada05/power-play/services"
)

type WebSocketHandler struct {
	hub         *realtime.Hub
	chatService services.ChatService
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewWebSocketHandler принимает список разрешённых Origin; пустой список или "*" разрешает любые.
func NewWebSocketHandler(hub *realtime.Hub, chatService services.ChatService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:         hub,
		chatService: chatService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// ServeChat подключает участника комнаты к /ws/chat/{roomID}.
// Клиент получает события MESSAGE_CREATED и MESSAGES_READ этой комнаты.
func (h *WebSocketHandler) ServeChat(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	roomID, err := getIDFromURL(r, "roomID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.chatService.AuthorizeRoom(r.Context(), actor.ID, roomID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой.
		h.logger.Warn("failed to upgrade websocket connection", slog.Int("room_id", roomID), slog.Any("error", err))
		return
	}

	client := realtime.NewClient(h.hub, conn, realtime.ChatRoomKey(roomID), actor.ID)
	if !h.hub.Attach(client) {
		h.logger.Warn("websocket hub is stopped, closing connection", slog.Int("room_id", roomID))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
