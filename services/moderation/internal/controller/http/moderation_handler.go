package http

import (
	"errors"
	"net/http"

	"tosika/pkg/captcha"
	"tosika/pkg/inflight"
	"tosika/pkg/listquery"
	"tosika/pkg/logger"
	"tosika/services/moderation/internal/entity"
	"tosika/services/moderation/internal/usecase"

	"github.com/gin-gonic/gin"
)

var donationSortColumns = map[string]string{
	"createdAt": "created_at",
	"amount":    "amount",
	"status":    "status",
}

var withdrawalSortColumns = map[string]string{
	"createdAt": "created_at",
	"amount":    "amount",
	"status":    "status",
}

type ModerationHandler struct {
	moderationUseCase usecase.ModerationUseCase
	logger            *logger.Logger
}

func NewModerationHandler(moderationUseCase usecase.ModerationUseCase, logger *logger.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderationUseCase: moderationUseCase,
		logger:            logger,
	}
}

type CreateDonationRequest struct {
	CampaignID    string  `json:"campaign_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=mobile_money bank_account espece"`
	Message       string  `json:"message" binding:"max=500"`
	DonorName     string  `json:"donor_name" binding:"max=100"`
	IsAnonymous   bool    `json:"is_anonymous"`
}

// CreateDonation godoc
// @Summary      Submit a donation
// @Description  Public submission; the donation stays pending until a moderator confirms the payment
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        request body CreateDonationRequest true "Donation data"
// @Success      201  {object}  entity.Donation
// @Failure      400  {object}  map[string]string
// @Router       /donations [post]
func (h *ModerationHandler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation, err := h.moderationUseCase.CreateDonation(c.Request.Context(), usecase.CreateDonationInput{
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Message:       req.Message,
		DonorName:     req.DonorName,
		IsAnonymous:   req.IsAnonymous,
		DonorKey:      donorKey(c, req.DonorName, req.IsAnonymous),
	})
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// ThankYouPending godoc
// @Summary      Check thank-you flag
// @Description  Reports whether a just-submitted donation should still show its thank-you banner
// @Tags         donations
// @Produce      json
// @Param        campaign_id path string true "Campaign ID"
// @Success      200  {object}  map[string]bool
// @Router       /campaigns/{campaign_id}/thank-you [get]
func (h *ModerationHandler) ThankYouPending(c *gin.Context) {
	donorName := c.Query("donor_name")
	pending, err := h.moderationUseCase.ThankYouPending(c.Request.Context(), c.Param("campaign_id"), donorKey(c, donorName, donorName == ""))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// ListDonations godoc
// @Summary      List donations (admin)
// @Description  Moderation queue with search, status and campaign filters
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Free-text search"
// @Param        status query string false "Status filter"
// @Param        campaignId query string false "Campaign filter"
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/donations [get]
func (h *ModerationHandler) ListDonations(c *gin.Context) {
	params := listquery.Parse(c, donationSortColumns, "createdAt")

	donations, meta, err := h.moderationUseCase.ListDonations(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": donations, "meta": meta})
}

// ListCampaignDonations godoc
// @Summary      List campaign donations
// @Description  Public view of a campaign's donations; only completed ones are shown
// @Tags         donations
// @Produce      json
// @Param        campaign_id path string true "Campaign ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /campaigns/{campaign_id}/donations [get]
func (h *ModerationHandler) ListCampaignDonations(c *gin.Context) {
	params := listquery.Parse(c, donationSortColumns, "createdAt")
	params.CampaignID = c.Param("campaign_id")
	// the public wall never exposes pending or failed donations
	params.Status = string(entity.DonationStatusCompleted)

	donations, meta, err := h.moderationUseCase.ListDonations(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": donations, "meta": meta})
}

type ValidateDonationRequest struct {
	Status       string `json:"status" binding:"required,oneof=completed failed"`
	CaptchaToken string `json:"token"`
}

// ValidateDonation godoc
// @Summary      Validate donation (admin)
// @Description  Move a pending donation to completed or failed; requires a human-verification token
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Donation ID"
// @Param        request body ValidateDonationRequest true "Target status and token"
// @Success      200  {object}  entity.Donation
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/donations/{id}/status [patch]
func (h *ModerationHandler) ValidateDonation(c *gin.Context) {
	moderatorID := c.GetString("user_id")

	var req ValidateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation, err := h.moderationUseCase.ValidateDonation(
		c.Request.Context(), moderatorID, c.Param("id"),
		entity.DonationStatus(req.Status), req.CaptchaToken, c.ClientIP())
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

type BulkValidateRequest struct {
	IDs          []string `json:"ids" binding:"required,min=1"`
	Status       string   `json:"status" binding:"required"`
	CaptchaToken string   `json:"token"`
}

// BulkValidateDonations godoc
// @Summary      Bulk validate donations (admin)
// @Description  Apply one terminal status to several donations; one token covers the batch, results are per record
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BulkValidateRequest true "Donation IDs, target status and token"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /admin/donations/bulk-status [post]
func (h *ModerationHandler) BulkValidateDonations(c *gin.Context) {
	moderatorID := c.GetString("user_id")

	var req BulkValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.moderationUseCase.BulkValidateDonations(
		c.Request.Context(), moderatorID, req.IDs,
		entity.DonationStatus(req.Status), req.CaptchaToken, c.ClientIP())
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

type CreateWithdrawalRequest struct {
	CampaignID    string  `json:"campaign_id" binding:"required"`
	BankInfoID    string  `json:"bank_info_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Justification string  `json:"justification" binding:"required,max=1000"`
	Password      string  `json:"password" binding:"required"`
	CaptchaToken  string  `json:"token"`
}

// CreateWithdrawal godoc
// @Summary      Request a withdrawal
// @Description  Campaign owner requests a payout; requires password re-entry and a human-verification token
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateWithdrawalRequest true "Withdrawal data"
// @Success      201  {object}  entity.WithdrawalRequest
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /withdrawals [post]
func (h *ModerationHandler) CreateWithdrawal(c *gin.Context) {
	requesterID := c.GetString("user_id")

	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.moderationUseCase.CreateWithdrawal(c.Request.Context(), requesterID, usecase.CreateWithdrawalInput{
		CampaignID:    req.CampaignID,
		BankInfoID:    req.BankInfoID,
		Amount:        req.Amount,
		Justification: req.Justification,
		Password:      req.Password,
		CaptchaToken:  req.CaptchaToken,
		RemoteIP:      c.ClientIP(),
	})
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// DeleteWithdrawal godoc
// @Summary      Cancel a withdrawal request
// @Description  Only the requester may cancel, and only while the request is still pending
// @Tags         withdrawals
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Withdrawal request ID"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /withdrawals/{id} [delete]
func (h *ModerationHandler) DeleteWithdrawal(c *gin.Context) {
	requesterID := c.GetString("user_id")

	if err := h.moderationUseCase.DeleteWithdrawal(requesterID, c.Param("id")); err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal request deleted"})
}

// ListWithdrawals godoc
// @Summary      List withdrawal requests (admin)
// @Tags         withdrawals
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status filter"
// @Param        campaignId query string false "Campaign filter"
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/withdrawals [get]
func (h *ModerationHandler) ListWithdrawals(c *gin.Context) {
	params := listquery.Parse(c, withdrawalSortColumns, "createdAt")

	requests, meta, err := h.moderationUseCase.ListWithdrawals(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests, "meta": meta})
}

// ListOwnWithdrawals godoc
// @Summary      List own withdrawal requests
// @Tags         withdrawals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /me/withdrawals [get]
func (h *ModerationHandler) ListOwnWithdrawals(c *gin.Context) {
	requesterID := c.GetString("user_id")
	params := listquery.Parse(c, withdrawalSortColumns, "createdAt")

	requests, meta, err := h.moderationUseCase.ListOwnWithdrawals(requesterID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests, "meta": meta})
}

type ValidateWithdrawalRequest struct {
	Status       string `json:"status" binding:"required,oneof=approved rejected"`
	CaptchaToken string `json:"token"`
}

// ValidateWithdrawal godoc
// @Summary      Validate withdrawal request (admin)
// @Description  Approve or reject a pending withdrawal; approval debits the campaign balance
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Withdrawal request ID"
// @Param        request body ValidateWithdrawalRequest true "Target status and token"
// @Success      200  {object}  entity.WithdrawalRequest
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/withdrawals/{id}/status [patch]
func (h *ModerationHandler) ValidateWithdrawal(c *gin.Context) {
	moderatorID := c.GetString("user_id")

	var req ValidateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.moderationUseCase.ValidateWithdrawal(
		c.Request.Context(), moderatorID, c.Param("id"),
		entity.WithdrawalStatus(req.Status), req.CaptchaToken, c.ClientIP())
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// BulkValidateWithdrawals godoc
// @Summary      Bulk validate withdrawal requests (admin)
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BulkValidateRequest true "Request IDs, target status and token"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /admin/withdrawals/bulk-status [post]
func (h *ModerationHandler) BulkValidateWithdrawals(c *gin.Context) {
	moderatorID := c.GetString("user_id")

	var req BulkValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.moderationUseCase.BulkValidateWithdrawals(
		c.Request.Context(), moderatorID, req.IDs,
		entity.WithdrawalStatus(req.Status), req.CaptchaToken, c.ClientIP())
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// donorKey identifies a donor for the thank-you flag without requiring an
// account: client IP for anonymous donors, the given name otherwise.
func donorKey(c *gin.Context, donorName string, anonymous bool) string {
	if anonymous || donorName == "" {
		return c.ClientIP()
	}
	return donorName
}

func respondModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, captcha.ErrTokenRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "captcha_required"})
	case errors.Is(err, captcha.ErrTokenConsumed), errors.Is(err, captcha.ErrTokenInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "captcha_invalid"})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotPending), errors.Is(err, inflight.ErrAlreadyInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidTarget), errors.Is(err, usecase.ErrCampaignNotActive), errors.Is(err, usecase.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotCampaignOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
