package messages

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"kenflash-backend/db"
	"kenflash-backend/models"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePrivateMessage sends a message to another user
// @Summary Create a private message
// @Description Send a private message from the authenticated user to another user. The message is stored, then published on the conversation channel for anyone streaming it.
// @Tags private-messages
// @Accept json
// @Produce json
// @Param message body models.PrivateMessageCreate true "Message information"
// @Security BearerAuth
// @Success 201 {object} models.PrivateMessage "Created message"
// @Failure 400 {object} map[string]string "error: Invalid request data"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Receiver not found"
// @Failure 500 {object} map[string]string "error: Error creating message"
// @Router /private-messages [post]
func CreatePrivateMessage(c *gin.Context) {
	senderID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var messageCreate models.PrivateMessageCreate
	if err := c.ShouldBindJSON(&messageCreate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error()})
		return
	}

	var receiver models.User
	if result := db.DB.Where("id = ?", messageCreate.ReceiverID).First(&receiver); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error verifying receiver: " + result.Error.Error()})
		}
		return
	}

	if !receiver.MessageEnable {
		c.JSON(http.StatusForbidden, gin.H{"error": "Receiver has disabled private messages"})
		return
	}

	privateMessage := models.PrivateMessage{
		SenderID:   senderID.(string),
		ReceiverID: messageCreate.ReceiverID,
		Content:    messageCreate.Content,
		Status:     models.MessageUnread,
	}

	if result := db.DB.Create(&privateMessage); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating message: " + result.Error.Error()})
		return
	}

	if payload, err := json.Marshal(privateMessage); err == nil {
		publish(c.Request.Context(), privateMessage.SenderID, privateMessage.ReceiverID, payload)
	}

	c.JSON(http.StatusCreated, privateMessage)
}

// GetConversation returns the message history with another user
// @Summary Get a conversation
// @Description Return all messages exchanged between the authenticated user and another user, oldest first
// @Tags private-messages
// @Produce json
// @Param userId path string true "ID of the other participant"
// @Security BearerAuth
// @Success 200 {array} models.PrivateMessage
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error retrieving messages"
// @Router /private-messages/{userId} [get]
func GetConversation(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	otherID := c.Param("userId")

	var messages []models.PrivateMessage
	result := db.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving messages: " + result.Error.Error()})
		return
	}

	// messages addressed to the reader are now read
	db.DB.Model(&models.PrivateMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", otherID, userID, models.MessageUnread).
		Update("status", models.MessageRead)

	c.JSON(http.StatusOK, messages)
}

// StreamConversation streams new messages of a conversation over SSE
// @Summary Stream a conversation
// @Description Server-sent events stream of new messages in the conversation. The channel subscription is opened when the stream starts and torn down when the client disconnects.
// @Tags private-messages
// @Produce text/event-stream
// @Param userId path string true "ID of the other participant"
// @Security BearerAuth
// @Success 200 {string} string "SSE stream"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error opening the stream"
// @Router /private-messages/{userId}/stream [get]
func StreamConversation(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	otherID := c.Param("userId")

	channel, err := OpenChannel(c.Request.Context(), userID.(string), otherID)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error opening the conversation channel")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error opening the stream"})
		return
	}
	defer channel.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-channel.Messages():
			if !ok {
				return false
			}
			c.SSEvent("message", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
