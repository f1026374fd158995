package ads

import (
	"net/http"
	"time"

	"kenflash-backend/db"
	"kenflash-backend/models"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateAdCampaign submits a new campaign request
// @Summary Submit an ad campaign request
// @Description Submit a campaign request for admin review
// @Tags ads
// @Accept json
// @Produce json
// @Param campaign body models.AdCampaignCreate true "Campaign information"
// @Success 201 {object} map[string]interface{} "message: Campaign request submitted successfully, id: campaign ID"
// @Failure 400 {object} map[string]interface{} "error: Invalid input"
// @Failure 500 {object} map[string]interface{} "error: Error message"
// @Router /ads [post]
func CreateAdCampaign(c *gin.Context) {
	var campaignInput models.AdCampaignCreate

	if err := c.ShouldBindJSON(&campaignInput); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input: " + err.Error(),
		})
		return
	}

	if !utils.ValidateEmail(campaignInput.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid email format",
		})
		return
	}

	campaign := models.AdCampaign{
		BusinessName: campaignInput.BusinessName,
		Email:        campaignInput.Email,
		Headline:     campaignInput.Headline,
		CreativeURL:  campaignInput.CreativeURL,
		BudgetKES:    campaignInput.BudgetKES,
		Status:       models.AdCampaignPending,
		SubmittedAt:  time.Now(),
	}

	result := db.DB.Create(&campaign)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": result.Error.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Campaign request submitted successfully",
		"id":      campaign.ID,
	})
}

// GetAllAdCampaigns lists campaign requests for admin review
// @Summary List ad campaigns
// @Tags ads
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AdCampaign
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /ads [get]
func GetAllAdCampaigns(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var campaigns []models.AdCampaign
	if err := db.DB.Order("submitted_at DESC").Find(&campaigns).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error listing ad campaigns")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching campaigns"})
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// ReviewAdCampaign approves or rejects a campaign request
// @Summary Review an ad campaign
// @Tags ads
// @Accept json
// @Produce json
// @Param campaignId path string true "ID of the campaign"
// @Param review body models.AdCampaignReview true "Review decision"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Campaign reviewed"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Campaign not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /ads/{campaignId} [patch]
func ReviewAdCampaign(c *gin.Context) {
	adminID, _ := c.Get("user_id")
	campaignID := c.Param("campaignId")

	if _, err := uuid.Parse(campaignID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	var review models.AdCampaignReview
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var campaign models.AdCampaign
	if err := db.DB.First(&campaign, "id = ?", campaignID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	if err := db.DB.Model(&campaign).Update("status", review.Status).Error; err != nil {
		utils.LogErrorWithUser(adminID, err, "Error reviewing the ad campaign")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating campaign"})
		return
	}

	utils.LogSuccessWithUser(adminID, "Ad campaign reviewed: "+campaignID)
	c.JSON(http.StatusOK, gin.H{"message": "Campaign reviewed"})
}
