package users

import (
	"net/http"

	"kenflash-backend/db"
	"kenflash-backend/models"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetMe returns the authenticated user's profile
// @Summary Get the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// UpdateProfilePicture replaces the user's profile picture
// @Summary Update the profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "Profile picture"
// @Security BearerAuth
// @Success 200 {object} map[string]string "profilePicture: uploaded URL"
// @Failure 400 {object} map[string]string "error: Picture is required"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/me/picture [put]
func UpdateProfilePicture(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	file, err := c.FormFile("picture")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Picture is required"})
		return
	}

	pictureURL, err := utils.UploadProfilePicture(file)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error uploading the profile picture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading picture: " + err.Error()})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_picture", pictureURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile picture"})
		return
	}

	utils.LogSuccessWithUser(userID, "Profile picture updated")
	c.JSON(http.StatusOK, gin.H{"profilePicture": pictureURL})
}

// GetAllUsers lists all accounts for the admin dashboard
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users [get]
func GetAllUsers(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var users []models.User
	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error listing users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}

	for i := range users {
		users[i].Password = ""
	}

	c.JSON(http.StatusOK, users)
}

// ApproveCreator promotes an account to approved content creator
// @Summary Approve a content creator
// @Description Admin decision: grant the creator role and mark the account approved so it can publish content
// @Tags users
// @Produce json
// @Param userId path string true "ID of the user to approve"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Creator approved"
// @Failure 400 {object} map[string]string "error: Invalid user ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{userId}/approve [patch]
func ApproveCreator(c *gin.Context) {
	adminID, _ := c.Get("user_id")
	targetID := c.Param("userId")

	if _, err := uuid.Parse(targetID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"role":        models.CreatorRole,
		"is_approved": true,
	}).Error; err != nil {
		utils.LogErrorWithUser(adminID, err, "Error approving the creator")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error approving creator"})
		return
	}

	utils.LogSuccessWithUser(adminID, "Creator approved: "+targetID)
	c.JSON(http.StatusOK, gin.H{"message": "Creator approved"})
}
