package http

import (
	"errors"
	"net/http"

	"tosika/pkg/captcha"
	"tosika/pkg/listquery"
	"tosika/pkg/logger"
	"tosika/services/campaign/internal/entity"
	"tosika/services/campaign/internal/usecase"

	"github.com/gin-gonic/gin"
)

var campaignSortColumns = map[string]string{
	"createdAt":     "created_at",
	"title":         "title",
	"targetAmount":  "target_amount",
	"currentAmount": "current_amount",
}

type CampaignHandler struct {
	campaignUseCase usecase.CampaignUseCase
	logger          *logger.Logger
}

func NewCampaignHandler(campaignUseCase usecase.CampaignUseCase, logger *logger.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignUseCase: campaignUseCase,
		logger:          logger,
	}
}

type CreateCampaignRequest struct {
	Title        string  `json:"title" binding:"required,min=3,max=200"`
	Description  string  `json:"description" binding:"required"`
	CategoryID   string  `json:"category_id"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	CaptchaToken string  `json:"token"`
}

// CreateCampaign godoc
// @Summary      Create campaign
// @Description  Create a fundraising campaign; requires a human-verification token
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCampaignRequest true "Campaign data"
// @Success      201  {object}  entity.Campaign
// @Failure      400  {object}  map[string]string
// @Router       /campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignUseCase.CreateCampaign(c.Request.Context(), ownerID, usecase.CreateCampaignInput{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		TargetAmount: req.TargetAmount,
		CaptchaToken: req.CaptchaToken,
		RemoteIP:     c.ClientIP(),
	})
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// GetCampaign godoc
// @Summary      Get campaign
// @Tags         campaigns
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  entity.Campaign
// @Failure      404  {object}  map[string]string
// @Router       /campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignUseCase.GetCampaign(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// ListCampaigns godoc
// @Summary      Browse campaigns
// @Description  Public campaign listing with search, filters and pagination
// @Tags         campaigns
// @Produce      json
// @Param        search query string false "Free-text search"
// @Param        status query string false "Status filter"
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        sortBy query string false "Sort field"
// @Param        sortOrder query string false "asc or desc"
// @Success      200  {object}  map[string]interface{}
// @Router       /campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	params := listquery.Parse(c, campaignSortColumns, "createdAt")
	// public browse only surfaces live campaigns
	if params.Status == "" {
		params.Status = string(entity.CampaignStatusActive)
	}

	campaigns, meta, err := h.campaignUseCase.ListCampaigns(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": campaigns, "meta": meta})
}

// ListAllCampaigns godoc
// @Summary      List campaigns (admin)
// @Description  Admin listing across every status
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/campaigns [get]
func (h *CampaignHandler) ListAllCampaigns(c *gin.Context) {
	params := listquery.Parse(c, campaignSortColumns, "createdAt")

	campaigns, meta, err := h.campaignUseCase.ListCampaigns(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": campaigns, "meta": meta})
}

// ListOwnCampaigns godoc
// @Summary      List own campaigns
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /me/campaigns [get]
func (h *CampaignHandler) ListOwnCampaigns(c *gin.Context) {
	ownerID := c.GetString("user_id")
	params := listquery.Parse(c, campaignSortColumns, "createdAt")

	campaigns, meta, err := h.campaignUseCase.ListOwnCampaigns(ownerID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": campaigns, "meta": meta})
}

type UpdateCampaignRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
}

// UpdateCampaign godoc
// @Summary      Update campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Param        request body UpdateCampaignRequest true "Fields to update"
// @Success      200  {object}  entity.Campaign
// @Failure      403  {object}  map[string]string
// @Router       /campaigns/{id} [patch]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignUseCase.UpdateCampaign(ownerID, c.Param("id"), req.Title, req.Description, req.CategoryID)
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

type AdminStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended closed"`
}

// SetAdminStatus godoc
// @Summary      Set campaign status (admin)
// @Description  Suspend, close or re-activate a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Param        request body AdminStatusRequest true "New status"
// @Success      200  {object}  entity.Campaign
// @Failure      400  {object}  map[string]string
// @Router       /campaigns/{id}/admin-status [patch]
func (h *CampaignHandler) SetAdminStatus(c *gin.Context) {
	var req AdminStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignUseCase.SetAdminStatus(c.Param("id"), entity.CampaignStatus(req.Status))
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UploadImage godoc
// @Summary      Upload campaign image
// @Tags         campaigns
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Param        image formData file true "Campaign image"
// @Success      200  {object}  entity.Campaign
// @Router       /campaigns/{id}/image [post]
func (h *CampaignHandler) UploadImage(c *gin.Context) {
	ownerID := c.GetString("user_id")

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
		return
	}
	defer file.Close()

	campaign, err := h.campaignUseCase.UploadImage(ownerID, c.Param("id"), file, header)
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /categories [get]
func (h *CampaignHandler) ListCategories(c *gin.Context) {
	categories, err := h.campaignUseCase.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type CreateBankInfoRequest struct {
	Kind          string `json:"kind" binding:"required,oneof=mobile_money bank_account"`
	Label         string `json:"label" binding:"max=100"`
	AccountName   string `json:"account_name" binding:"required,max=100"`
	AccountNumber string `json:"account_number" binding:"required,max=50"`
	Provider      string `json:"provider" binding:"max=50"`
}

// CreateBankInfo godoc
// @Summary      Register payout destination
// @Tags         bank-infos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateBankInfoRequest true "Bank or mobile money account"
// @Success      201  {object}  entity.BankInfo
// @Router       /bank-infos [post]
func (h *CampaignHandler) CreateBankInfo(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req CreateBankInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.campaignUseCase.CreateBankInfo(ownerID, &entity.BankInfo{
		Kind:          entity.BankInfoKind(req.Kind),
		Label:         req.Label,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		Provider:      req.Provider,
	})
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

// ListBankInfos godoc
// @Summary      List payout destinations
// @Tags         bank-infos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /bank-infos [get]
func (h *CampaignHandler) ListBankInfos(c *gin.Context) {
	ownerID := c.GetString("user_id")

	infos, err := h.campaignUseCase.ListBankInfos(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_infos": infos})
}

// DeleteBankInfo godoc
// @Summary      Delete payout destination
// @Tags         bank-infos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bank info ID"
// @Success      200  {object}  map[string]string
// @Router       /bank-infos/{id} [delete]
func (h *CampaignHandler) DeleteBankInfo(c *gin.Context) {
	ownerID := c.GetString("user_id")

	if err := h.campaignUseCase.DeleteBankInfo(ownerID, c.Param("id")); err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bank info deleted"})
}

func respondCampaignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, captcha.ErrTokenRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "captcha_required"})
	case errors.Is(err, captcha.ErrTokenConsumed), errors.Is(err, captcha.ErrTokenInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "captcha_invalid"})
	case err.Error() == "campaign not found" || err.Error() == "bank info not found":
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err.Error() == "not the campaign owner" || err.Error() == "not the bank info owner":
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err.Error() == "invalid status" || err.Error() == "invalid bank info kind" || err.Error() == "target amount must be positive":
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
