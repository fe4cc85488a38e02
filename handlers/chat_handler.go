package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/power-play/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(cs services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: cs}
}

// OpenRoom godoc
// @Summary Открыть (или создать) личный чат
// @Tags chat
// @Accept json
// @Produce json
// @Param body body services.OpenRoomInput true "Собеседник и матч"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /chat/rooms [post]
func (h *ChatHandler) OpenRoom(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.OpenRoomInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	room, err := h.chatService.OpenRoom(r.Context(), actor.ID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"room": room}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRooms godoc
// @Summary Мои чаты с последним сообщением и числом непрочитанных
// @Tags chat
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /chat/rooms [get]
func (h *ChatHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	rooms, err := h.chatService.ListRooms(r.Context(), actor.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rooms": rooms}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMessages godoc
// @Summary Сообщения комнаты (новые первыми)
// @Tags chat
// @Produce json
// @Param roomID path int true "Room ID"
// @Param before_id query int false "Загрузить сообщения старше этого id"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /chat/rooms/{roomID}/messages [get]
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
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
	beforeID, err := optionalIntQuery(r, "before_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	// limit <= 0 заменяется размером страницы по умолчанию в сервисе.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	messages, err := h.chatService.ListMessages(r.Context(), actor.ID, roomID, beforeID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"messages": messages}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SendMessage godoc
// @Summary Отправить сообщение
// @Tags chat
// @Accept json
// @Produce json
// @Param roomID path int true "Room ID"
// @Param body body object true "{\"content\": \"...\"}"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Пустое или слишком длинное сообщение"
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /chat/rooms/{roomID}/messages [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
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
	var input struct {
		Content string `json:"content"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	msg, err := h.chatService.SendMessage(r.Context(), actor.ID, roomID, input.Content)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"message": msg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MarkRead godoc
// @Summary Отметить сообщения собеседника прочитанными
// @Tags chat
// @Produce json
// @Param roomID path int true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /chat/rooms/{roomID}/read [post]
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
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
	n, err := h.chatService.MarkRead(r.Context(), actor.ID, roomID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"marked": n}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UnreadCount godoc
// @Summary Число непрочитанных сообщений
// @Tags chat
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /chat/unread [get]
func (h *ChatHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	n, err := h.chatService.UnreadCount(r.Context(), actor.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"unread": n}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
