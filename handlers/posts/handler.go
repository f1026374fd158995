package posts

import (
	"net/http"

	"kenflash-backend/db"
	"kenflash-backend/handlers/subscriptions"
	"kenflash-backend/models"
	"kenflash-backend/sessions"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreatePost uploads a new photo or video post
// @Summary Create a new post
// @Description Create a new post with an uploaded photo or video. Only approved content creators can publish.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Post name"
// @Param isFree formData boolean false "Is the post free"
// @Param media formData file true "Photo or video"
// @Security BearerAuth
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not an approved creator"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [post]
func CreatePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if creator.Role != models.CreatorRole || !creator.IsApproved {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only approved content creators can publish"})
		return
	}

	name := c.Request.FormValue("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	isFree := c.Request.FormValue("isFree") == "true"

	file, err := c.FormFile("media")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media file is required"})
		return
	}

	mediaType := models.MediaPhoto
	if utils.MediaKind(file.Filename) == "video" {
		mediaType = models.MediaVideo
	}

	mediaURL, err := utils.UploadMedia(file, "post_media", "post")
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error uploading the post media")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading media: " + err.Error()})
		return
	}

	post := models.Post{
		UserID:    creator.ID,
		Name:      name,
		MediaURL:  mediaURL,
		MediaType: mediaType,
		IsFree:    isFree,
		Enable:    true,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Post created")
	c.JSON(http.StatusCreated, post)
}

// GetAllPosts lists enabled posts, premium included only for entitled viewers
// @Summary Get all posts
// @Description List enabled posts, newest first. Premium posts are only included when the caller proves entitlement through a subscribed visitor session (visitorId) or an email with a current subscription.
// @Tags posts
// @Produce json
// @Param visitorId query string false "Visitor identifier with a cached entitlement"
// @Param email query string false "Subscriber email"
// @Success 200 {array} models.Post
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [get]
func GetAllPosts(c *gin.Context) {
	entitled := viewerEntitled(c)

	query := db.DB.Where("enable = ?", true).Order("created_at DESC")
	if !entitled {
		query = query.Where("is_free = ?", true)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving posts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// viewerEntitled is the subscription gate for content listing: a subscribed
// visitor session or an email with a current subscription row unlocks
// premium posts.
func viewerEntitled(c *gin.Context) bool {
	if visitorID := c.Query("visitorId"); visitorID != "" && sessions.Default != nil {
		session, err := sessions.Default.Load(c.Request.Context(), visitorID)
		if err != nil {
			utils.LogError(err, "Error loading the visitor session for the content gate")
		} else if session != nil {
			return true
		}
	}

	if email := c.Query("email"); email != "" && utils.ValidateEmail(email) {
		_, found, err := subscriptions.HasActiveSubscription(email)
		if err != nil {
			utils.LogError(err, "Error checking the subscription for the content gate")
			return false
		}
		return found
	}

	return false
}

// ModeratePost enables or disables a post
// @Summary Moderate a post
// @Description Admin moderation: enable or disable a post
// @Tags posts
// @Accept json
// @Produce json
// @Param postId path string true "ID of the post"
// @Param moderation body models.PostModeration true "Moderation decision"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post updated"
// @Failure 400 {object} map[string]string "error: Invalid post ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{postId}/moderate [patch]
func ModeratePost(c *gin.Context) {
	adminID, _ := c.Get("user_id")
	postID := c.Param("postId")

	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var moderation models.PostModeration
	if err := c.ShouldBindJSON(&moderation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := db.DB.Model(&post).Update("enable", moderation.Enable).Error; err != nil {
		utils.LogErrorWithUser(adminID, err, "Error moderating the post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
		return
	}

	utils.LogSuccessWithUser(adminID, "Post moderated: "+postID)
	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// DeletePost removes a post owned by the authenticated creator
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param postId path string true "ID of the post"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post deleted"
// @Failure 400 {object} map[string]string "error: Invalid post ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /posts/{postId} [delete]
func DeletePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID := c.Param("postId")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	role, _ := c.Get("role")
	if post.UserID != userID && role != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this post"})
		return
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post"})
		return
	}

	utils.LogSuccessWithUser(userID, "Post deleted: "+postID)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
