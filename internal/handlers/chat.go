package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"freelancehub/internal/models"
)

type ChatHandler struct {
	DB *gorm.DB
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{DB: db}
}

type MessageOut struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

func messageOut(m models.Message) MessageOut {
	return MessageOut{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
	}
}

func (h *ChatHandler) loadPeer(c *fiber.Ctx) (models.User, error) {
	var peer models.User

	peerID, err := c.ParamsInt("user_id")
	if err != nil || peerID <= 0 {
		return peer, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.DB.First(&peer, "id = ?", peerID).Error; err != nil {
		return peer, fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return peer, nil
}

// conversation returns every message between the two users, oldest first.
func (h *ChatHandler) conversation(uid, peerID uint) ([]models.Message, error) {
	var messages []models.Message
	err := h.DB.
		Where(
			h.DB.Where("sender_id = ? AND receiver_id = ?", uid, peerID).
				Or("sender_id = ? AND receiver_id = ?", peerID, uid),
		).
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}

func (h *ChatHandler) respondConversation(c *fiber.Ctx, uid uint, peer models.User) error {
	messages, err := h.conversation(uid, peer.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	out := make([]MessageOut, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageOut(m))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"peer": fiber.Map{
				"id":            peer.ID,
				"username":      peer.Username,
				"is_freelancer": peer.IsFreelancer,
			},
			"messages": out,
		},
	})
}

// Chat shows the full two-way conversation with a peer.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	uid, err := getUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	peer, err := h.loadPeer(c)
	if err != nil {
		return err
	}

	return h.respondConversation(c, uid, peer)
}

type SendMessageReq struct {
	Content string `json:"content" form:"content"`
}

// SendMessage stores a message to the peer, then answers with the full
// conversation exactly like Chat does. Delivery is pull-only: the other side
// sees the message on its next fetch.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	uid, err := getUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	peer, err := h.loadPeer(c)
	if err != nil {
		return err
	}

	var req SendMessageReq
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		errs := FieldErrors{}
		errs.Add("content", "Message content is required")
		return validationFail(c, errs)
	}

	msg := models.Message{
		SenderID:   uid,
		ReceiverID: peer.ID,
		Content:    strings.TrimSpace(req.Content),
	}

	if err := h.DB.Create(&msg).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return h.respondConversation(c, uid, peer)
}

type ConversationOut struct {
	Peer        fiber.Map  `json:"peer"`
	LastMessage MessageOut `json:"last_message"`
}

// Conversations lists the users the current user has exchanged messages
// with, most recent conversation first.
func (h *ChatHandler) Conversations(c *fiber.Ctx) error {
	uid, err := getUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var messages []models.Message
	if err := h.DB.
		Where("sender_id = ? OR receiver_id = ?", uid, uid).
		Order("timestamp DESC").
		Find(&messages).Error; err != nil {

		return fiber.ErrInternalServerError
	}

	// Fold messages down to one entry per peer; the list is already newest
	// first, so the first message seen per peer is the conversation head.
	seen := make(map[uint]bool)
	peerIDs := make([]uint, 0)
	lastByPeer := make(map[uint]models.Message)

	for _, m := range messages {
		peerID := m.SenderID
		if peerID == uid {
			peerID = m.ReceiverID
		}
		if seen[peerID] {
			continue
		}
		seen[peerID] = true
		peerIDs = append(peerIDs, peerID)
		lastByPeer[peerID] = m
	}

	var peers []models.User
	if len(peerIDs) > 0 {
		if err := h.DB.Where("id IN ?", peerIDs).Find(&peers).Error; err != nil {
			return fiber.ErrInternalServerError
		}
	}
	peerByID := make(map[uint]models.User, len(peers))
	for _, p := range peers {
		peerByID[p.ID] = p
	}

	out := make([]ConversationOut, 0, len(peerIDs))
	for _, peerID := range peerIDs {
		peer, ok := peerByID[peerID]
		if !ok {
			continue
		}
		out = append(out, ConversationOut{
			Peer: fiber.Map{
				"id":            peer.ID,
				"username":      peer.Username,
				"is_freelancer": peer.IsFreelancer,
			},
			LastMessage: messageOut(lastByPeer[peerID]),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}
