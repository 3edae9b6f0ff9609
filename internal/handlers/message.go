package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"room-service/internal/models"
	"room-service/internal/repositories"
	"room-service/internal/ws"
)

// MessageHandler appends messages and fans them out to subscribers.
type MessageHandler struct {
	messageRepo repositories.MessageRepository
	roomRepo    repositories.RoomRepository
	hub         *ws.Hub
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messageRepo repositories.MessageRepository, roomRepo repositories.RoomRepository, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo, roomRepo: roomRepo, hub: hub}
}

// PostMessage stores a message in a valid room and broadcasts it. The
// room's validity is re-checked here; the gap between this check and the
// insert is covered by the store's referential constraint.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req struct {
		RoomID     int    `json:"room_id"`
		SenderName string `json:"sender_name"`
		Content    string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RoomID == 0 || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room id and message content are required"})
		return
	}

	room, err := h.roomRepo.GetRoomByID(c.Request.Context(), req.RoomID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}
	if room.Expired(time.Now()) {
		c.JSON(http.StatusGone, gin.H{"error": "this room has expired"})
		return
	}

	senderName := req.SenderName
	if senderName == "" {
		senderName = models.DefaultSenderName
	}

	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), req.RoomID, senderName, req.Content)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomGone) {
			c.JSON(http.StatusGone, gin.H{"error": "this room has expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	h.hub.BroadcastMessage(msg.RoomID, msg)
	c.JSON(http.StatusCreated, msg)
}
