package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/chat"
	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/store"
)

// MessageHandlers provides HTTP handlers for the message exchange endpoints.
type MessageHandlers struct {
	svc *chat.Service
	log *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(svc *chat.Service, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		svc: svc,
		log: logger,
	}
}

// SendRequest represents the send message request body. Fields stay untyped
// so presence and type violations are reported distinctly.
type SendRequest struct {
	Sender  any `json:"sender"`
	Content any `json:"content"`
}

// SendResponse represents a successful send response body.
type SendResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *SendData `json:"data,omitempty"`
}

// SendData carries the stored message identity back to the sender.
type SendData struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MessageResponse represents one message in a list response.
type MessageResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ListResponse represents the list messages response body. Messages is
// never null so clients can always render a safe empty state.
type ListResponse struct {
	Success  bool              `json:"success"`
	Messages []MessageResponse `json:"messages"`
	Count    int               `json:"count"`
	Error    string            `json:"error,omitempty"`
}

// SendMessage validates and persists one message.
// POST /api/send-message
func (h *MessageHandlers) SendMessage(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid send request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), req.Sender, req.Content)
	if err != nil {
		var vErr *chat.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: vErr.Message})
		case errors.Is(err, store.ErrUnavailable):
			h.log.Warn().Err(err).Msg("store unavailable during send")
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Database connection failed. Please try again later."})
		default:
			h.log.Error().Err(err).Msg("failed to send message")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	h.log.Info().Str("id", msg.ID).Str("sender", msg.Sender).Msg("message sent")
	c.JSON(http.StatusCreated, SendResponse{
		Success: true,
		Message: "Message sent successfully",
		Data: &SendData{
			ID:        msg.ID,
			Timestamp: msg.CreatedAt.Format(time.RFC3339),
		},
	})
}

// GetMessages returns a time-ordered snapshot of recent messages.
// GET /api/get-messages?limit=N
func (h *MessageHandlers) GetMessages(c *gin.Context) {
	limit := chat.MaxListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ListResponse{
				Messages: []MessageResponse{},
				Error:    "Limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	messages, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			h.log.Warn().Err(err).Msg("store unavailable during list")
			c.JSON(http.StatusServiceUnavailable, ListResponse{
				Messages: []MessageResponse{},
				Error:    "Database connection failed. Please try again later.",
			})
			return
		}
		h.log.Error().Err(err).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ListResponse{
			Messages: []MessageResponse{},
			Error:    "Failed to fetch messages",
		})
		return
	}

	response := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, MessageResponse{
			ID:        msg.ID,
			Sender:    msg.Sender,
			Content:   msg.Content,
			Timestamp: msg.CreatedAt.Format(time.RFC3339),
		})
	}

	h.log.Debug().Int("count", len(response)).Msg("messages listed")
	c.JSON(http.StatusOK, ListResponse{
		Success:  true,
		Messages: response,
		Count:    len(response),
	})
}
