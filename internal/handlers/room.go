package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"room-service/internal/models"
	"room-service/internal/qr"
	"room-service/internal/repositories"
	"room-service/internal/roomcode"
	"room-service/internal/telemetry"
)

// codeAttempts bounds regeneration when a generated code collides.
const codeAttempts = 5

// RoomHandler manages room creation and lookup.
type RoomHandler struct {
	roomRepo    repositories.RoomRepository
	messageRepo repositories.MessageRepository
	audit       *telemetry.AuditEmitter
	baseURL     string
}

// NewRoomHandler builds a RoomHandler. baseURL is the public origin
// embedded in join addresses.
func NewRoomHandler(roomRepo repositories.RoomRepository, messageRepo repositories.MessageRepository, audit *telemetry.AuditEmitter, baseURL string) *RoomHandler {
	return &RoomHandler{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		audit:       audit,
		baseURL:     baseURL,
	}
}

// CreateRoom creates a time-boxed room and returns it together with a QR
// code of its join address.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req struct {
		DurationMinutes int `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.DurationMinutes < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration"})
		return
	}

	var room models.Room
	created := false
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := roomcode.Generate()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
			return
		}

		now := time.Now().UTC()
		expiresAt := now.Add(time.Duration(req.DurationMinutes) * time.Minute)
		room, err = h.roomRepo.CreateRoom(c.Request.Context(), code, req.DurationMinutes, now, expiresAt)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, repositories.ErrCodeTaken) {
			continue
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	if !created {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	qrCodeURL, err := qr.DataURL(qr.JoinURL(h.baseURL, room.Code))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "room created", requestIDFromContext(c), room.Code)
	c.JSON(http.StatusCreated, gin.H{
		"id":               room.ID,
		"code":             room.Code,
		"duration_minutes": room.DurationMinutes,
		"created_at":       room.CreatedAt,
		"expires_at":       room.ExpiresAt,
		"qrCodeUrl":        qrCodeURL,
	})
}

// GetRoom returns a valid room together with its ordered message log.
// Expired rooms answer with a distinct "gone" signal until the sweeper
// removes them; they never leak stale messages.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	code := roomcode.Normalize(c.Param("code"))
	if !roomcode.Valid(code) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	room, err := h.roomRepo.GetRoomByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}

	if room.Expired(time.Now()) {
		c.JSON(http.StatusGone, gin.H{"error": "this room has expired"})
		return
	}

	msgs, err := h.messageRepo.ListMessages(c.Request.Context(), room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room": gin.H{
			"id":         room.ID,
			"expires_at": room.ExpiresAt,
		},
		"messages": msgs,
	})
}
