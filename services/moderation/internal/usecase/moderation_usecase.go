package usecase

import (
	"context"
	"errors"
	"fmt"

	"tosika/pkg/captcha"
	"tosika/pkg/inflight"
	"tosika/pkg/listquery"
	"tosika/pkg/logger"
	"tosika/pkg/queue"
	"tosika/services/moderation/internal/entity"
	"tosika/services/moderation/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrNotPending          = errors.New("record is no longer pending")
	ErrInvalidTarget       = errors.New("invalid target status")
	ErrCampaignNotActive   = errors.New("campaign is not accepting donations")
	ErrNotCampaignOwner    = errors.New("not the campaign owner")
	ErrWrongPassword       = errors.New("password confirmation failed")
	ErrInsufficientBalance = errors.New("insufficient campaign balance")
)

// EventPublisher is satisfied by queue.Client; transitions are announced on
// the moderation exchange.
type EventPublisher interface {
	PublishModerationEvent(event queue.ModerationEvent) error
}

type CreateDonationInput struct {
	CampaignID    string
	Amount        float64
	PaymentMethod entity.PaymentMethod
	Message       string
	DonorName     string
	IsAnonymous   bool
	// DonorKey identifies the donor for the thank-you flag: client IP for
	// anonymous donors, donor name otherwise.
	DonorKey string
}

type CreateWithdrawalInput struct {
	CampaignID    string
	BankInfoID    string
	Amount        float64
	Justification string
	// Password is re-entered by the owner as a confirmation factor.
	Password     string
	CaptchaToken string
	RemoteIP     string
}

// BulkResult reports the outcome of one record in a bulk validation.
// Successes are kept even when later records fail.
type BulkResult struct {
	ID     string `json:"id"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type ModerationUseCase interface {
	CreateDonation(ctx context.Context, input CreateDonationInput) (*entity.Donation, error)
	ThankYouPending(ctx context.Context, campaignID, donorKey string) (bool, error)
	ListDonations(params listquery.Params) ([]*entity.Donation, listquery.Meta, error)
	ValidateDonation(ctx context.Context, moderatorID, donationID string, target entity.DonationStatus, captchaToken, remoteIP string) (*entity.Donation, error)
	BulkValidateDonations(ctx context.Context, moderatorID string, donationIDs []string, target entity.DonationStatus, captchaToken, remoteIP string) ([]BulkResult, error)

	CreateWithdrawal(ctx context.Context, requesterID string, input CreateWithdrawalInput) (*entity.WithdrawalRequest, error)
	DeleteWithdrawal(requesterID, requestID string) error
	ListWithdrawals(params listquery.Params) ([]*entity.WithdrawalRequest, listquery.Meta, error)
	ListOwnWithdrawals(requesterID string, params listquery.Params) ([]*entity.WithdrawalRequest, listquery.Meta, error)
	ValidateWithdrawal(ctx context.Context, moderatorID, requestID string, target entity.WithdrawalStatus, captchaToken, remoteIP string) (*entity.WithdrawalRequest, error)
	BulkValidateWithdrawals(ctx context.Context, moderatorID string, requestIDs []string, target entity.WithdrawalStatus, captchaToken, remoteIP string) ([]BulkResult, error)
}

type moderationUseCase struct {
	donationRepo   persistent.DonationRepository
	withdrawalRepo persistent.WithdrawalRepository
	campaignRepo   persistent.CampaignRepository
	userRepo       persistent.UserRepository
	flagStore      persistent.FlagStore
	verifier       captcha.Verifier
	publisher      EventPublisher
	inflight       *inflight.Set
	logger         *logger.Logger
}

func NewModerationUseCase(
	donationRepo persistent.DonationRepository,
	withdrawalRepo persistent.WithdrawalRepository,
	campaignRepo persistent.CampaignRepository,
	userRepo persistent.UserRepository,
	flagStore persistent.FlagStore,
	verifier captcha.Verifier,
	publisher EventPublisher,
	logger *logger.Logger,
) ModerationUseCase {
	return &moderationUseCase{
		donationRepo:   donationRepo,
		withdrawalRepo: withdrawalRepo,
		campaignRepo:   campaignRepo,
		userRepo:       userRepo,
		flagStore:      flagStore,
		verifier:       verifier,
		publisher:      publisher,
		inflight:       inflight.NewSet(),
		logger:         logger,
	}
}

func (uc *moderationUseCase) CreateDonation(ctx context.Context, input CreateDonationInput) (*entity.Donation, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !entity.ValidPaymentMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("invalid payment method")
	}

	campaign, err := uc.campaignRepo.GetByID(input.CampaignID)
	if err != nil {
		return nil, ErrNotFound
	}
	if campaign.Status != "active" {
		return nil, ErrCampaignNotActive
	}

	donorName := input.DonorName
	if input.IsAnonymous {
		donorName = ""
	}

	donation := &entity.Donation{
		CampaignID:    input.CampaignID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Message:       input.Message,
		DonorName:     donorName,
		IsAnonymous:   input.IsAnonymous,
		Status:        entity.DonationStatusPending,
	}

	if err := uc.donationRepo.Create(donation); err != nil {
		uc.logger.Error("Failed to create donation: %v", err)
		return nil, fmt.Errorf("failed to create donation")
	}

	if err := uc.flagStore.SetThankYou(ctx, input.CampaignID, input.DonorKey); err != nil {
		uc.logger.Warn("Failed to set thank-you flag for campaign %s: %v", input.CampaignID, err)
	}

	return donation, nil
}

func (uc *moderationUseCase) ThankYouPending(ctx context.Context, campaignID, donorKey string) (bool, error) {
	return uc.flagStore.ThankYouPending(ctx, campaignID, donorKey)
}

func (uc *moderationUseCase) ListDonations(params listquery.Params) ([]*entity.Donation, listquery.Meta, error) {
	donations, total, err := uc.donationRepo.List(params)
	if err != nil {
		uc.logger.Error("Failed to list donations: %v", err)
		return nil, listquery.Meta{}, fmt.Errorf("failed to list donations")
	}
	return donations, listquery.NewMeta(total, params), nil
}

func (uc *moderationUseCase) ValidateDonation(ctx context.Context, moderatorID, donationID string, target entity.DonationStatus, captchaToken, remoteIP string) (*entity.Donation, error) {
	if !target.Terminal() {
		return nil, ErrInvalidTarget
	}

	if err := uc.verifier.Verify(ctx, captchaToken, remoteIP); err != nil {
		return nil, err
	}

	if err := uc.transitionDonation(moderatorID, donationID, target); err != nil {
		return nil, err
	}

	return uc.donationRepo.GetByID(donationID)
}

// transitionDonation is the only path that moves a donation out of pending.
// The in-flight reservation spans the whole transition so a second submit
// for the same record is rejected until this one settles.
func (uc *moderationUseCase) transitionDonation(moderatorID, donationID string, target entity.DonationStatus) error {
	if err := uc.inflight.Begin(donationID); err != nil {
		return err
	}
	defer uc.inflight.Complete(donationID)

	donation, err := uc.donationRepo.GetByID(donationID)
	if err != nil {
		return ErrNotFound
	}

	moved, err := uc.donationRepo.TransitionFromPending(donationID, target)
	if err != nil {
		uc.logger.Error("Failed to transition donation %s: %v", donationID, err)
		return fmt.Errorf("failed to update donation status")
	}
	if !moved {
		return ErrNotPending
	}

	if target == entity.DonationStatusCompleted {
		if err := uc.campaignRepo.ApplyCompletedDonation(donation.CampaignID, donation.Amount); err != nil {
			uc.logger.Error("Failed to apply donation %s to campaign %s: %v", donationID, donation.CampaignID, err)
			// Put the row back so the amount is not stranded in a
			// completed donation the campaign never counted
			if revertErr := uc.donationRepo.RevertToPending(donationID, target); revertErr != nil {
				uc.logger.Error("Failed to revert donation %s to pending: %v", donationID, revertErr)
			}
			return fmt.Errorf("failed to update campaign aggregates")
		}
	}

	uc.publish(queue.ModerationEvent{
		RecordKind:  "donation",
		RecordID:    donationID,
		CampaignID:  donation.CampaignID,
		FromStatus:  string(entity.DonationStatusPending),
		ToStatus:    string(target),
		ModeratorID: moderatorID,
	})

	return nil
}

func (uc *moderationUseCase) BulkValidateDonations(ctx context.Context, moderatorID string, donationIDs []string, target entity.DonationStatus, captchaToken, remoteIP string) ([]BulkResult, error) {
	if !target.Terminal() {
		return nil, ErrInvalidTarget
	}

	// One verification covers the whole bulk action
	if err := uc.verifier.Verify(ctx, captchaToken, remoteIP); err != nil {
		return nil, err
	}

	// Sequential submits; earlier successes are kept when a later record
	// fails.
	results := make([]BulkResult, 0, len(donationIDs))
	for _, id := range donationIDs {
		if err := uc.transitionDonation(moderatorID, id, target); err != nil {
			results = append(results, BulkResult{ID: id, OK: false, Reason: err.Error()})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true})
	}
	return results, nil
}

func (uc *moderationUseCase) CreateWithdrawal(ctx context.Context, requesterID string, input CreateWithdrawalInput) (*entity.WithdrawalRequest, error) {
	if err := uc.verifier.Verify(ctx, input.CaptchaToken, input.RemoteIP); err != nil {
		return nil, err
	}

	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	campaign, err := uc.campaignRepo.GetByID(input.CampaignID)
	if err != nil {
		return nil, ErrNotFound
	}
	if campaign.OwnerID != requesterID {
		return nil, ErrNotCampaignOwner
	}

	hash, err := uc.userRepo.GetPasswordHash(requesterID)
	if err != nil {
		return nil, ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	if input.Amount > campaign.AvailableBalance {
		return nil, ErrInsufficientBalance
	}

	request := &entity.WithdrawalRequest{
		CampaignID:    input.CampaignID,
		RequesterID:   requesterID,
		BankInfoID:    input.BankInfoID,
		Amount:        input.Amount,
		Justification: input.Justification,
		Status:        entity.WithdrawalStatusPending,
	}

	if err := uc.withdrawalRepo.Create(request); err != nil {
		uc.logger.Error("Failed to create withdrawal request: %v", err)
		return nil, fmt.Errorf("failed to create withdrawal request")
	}

	return request, nil
}

func (uc *moderationUseCase) DeleteWithdrawal(requesterID, requestID string) error {
	deleted, err := uc.withdrawalRepo.DeleteIfPending(requestID, requesterID)
	if err != nil {
		uc.logger.Error("Failed to delete withdrawal request %s: %v", requestID, err)
		return fmt.Errorf("failed to delete withdrawal request")
	}
	if !deleted {
		// Either not the requester's request or already resolved
		return ErrNotPending
	}
	return nil
}

func (uc *moderationUseCase) ListWithdrawals(params listquery.Params) ([]*entity.WithdrawalRequest, listquery.Meta, error) {
	requests, total, err := uc.withdrawalRepo.List(params)
	if err != nil {
		uc.logger.Error("Failed to list withdrawal requests: %v", err)
		return nil, listquery.Meta{}, fmt.Errorf("failed to list withdrawal requests")
	}
	return requests, listquery.NewMeta(total, params), nil
}

func (uc *moderationUseCase) ListOwnWithdrawals(requesterID string, params listquery.Params) ([]*entity.WithdrawalRequest, listquery.Meta, error) {
	requests, total, err := uc.withdrawalRepo.ListByRequester(requesterID, params)
	if err != nil {
		uc.logger.Error("Failed to list withdrawal requests for %s: %v", requesterID, err)
		return nil, listquery.Meta{}, fmt.Errorf("failed to list withdrawal requests")
	}
	return requests, listquery.NewMeta(total, params), nil
}

func (uc *moderationUseCase) ValidateWithdrawal(ctx context.Context, moderatorID, requestID string, target entity.WithdrawalStatus, captchaToken, remoteIP string) (*entity.WithdrawalRequest, error) {
	if !target.Terminal() {
		return nil, ErrInvalidTarget
	}

	if err := uc.verifier.Verify(ctx, captchaToken, remoteIP); err != nil {
		return nil, err
	}

	if err := uc.transitionWithdrawal(moderatorID, requestID, target); err != nil {
		return nil, err
	}

	return uc.withdrawalRepo.GetByID(requestID)
}

func (uc *moderationUseCase) transitionWithdrawal(moderatorID, requestID string, target entity.WithdrawalStatus) error {
	if err := uc.inflight.Begin(requestID); err != nil {
		return err
	}
	defer uc.inflight.Complete(requestID)

	request, err := uc.withdrawalRepo.GetByID(requestID)
	if err != nil {
		return ErrNotFound
	}
	if request.Status != entity.WithdrawalStatusPending {
		return ErrNotPending
	}

	if target == entity.WithdrawalStatusApproved {
		debited, err := uc.campaignRepo.DebitApprovedWithdrawal(request.CampaignID, request.Amount)
		if err != nil {
			uc.logger.Error("Failed to debit campaign %s: %v", request.CampaignID, err)
			return fmt.Errorf("failed to update campaign balance")
		}
		if !debited {
			return ErrInsufficientBalance
		}
	}

	moved, err := uc.withdrawalRepo.TransitionFromPending(requestID, target, moderatorID)
	if err != nil || !moved {
		// Give the debit back if the approval could not be recorded
		if target == entity.WithdrawalStatusApproved {
			if creditErr := uc.campaignRepo.CreditBalance(request.CampaignID, request.Amount); creditErr != nil {
				uc.logger.Error("Failed to re-credit campaign %s: %v", request.CampaignID, creditErr)
			}
		}
		if err != nil {
			uc.logger.Error("Failed to transition withdrawal %s: %v", requestID, err)
			return fmt.Errorf("failed to update withdrawal status")
		}
		return ErrNotPending
	}

	uc.publish(queue.ModerationEvent{
		RecordKind:  "withdrawal",
		RecordID:    requestID,
		CampaignID:  request.CampaignID,
		FromStatus:  string(entity.WithdrawalStatusPending),
		ToStatus:    string(target),
		ModeratorID: moderatorID,
	})

	return nil
}

func (uc *moderationUseCase) BulkValidateWithdrawals(ctx context.Context, moderatorID string, requestIDs []string, target entity.WithdrawalStatus, captchaToken, remoteIP string) ([]BulkResult, error) {
	if !target.Terminal() {
		return nil, ErrInvalidTarget
	}

	if err := uc.verifier.Verify(ctx, captchaToken, remoteIP); err != nil {
		return nil, err
	}

	results := make([]BulkResult, 0, len(requestIDs))
	for _, id := range requestIDs {
		if err := uc.transitionWithdrawal(moderatorID, id, target); err != nil {
			results = append(results, BulkResult{ID: id, OK: false, Reason: err.Error()})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true})
	}
	return results, nil
}

func (uc *moderationUseCase) publish(event queue.ModerationEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishModerationEvent(event); err != nil {
		uc.logger.Error("Failed to publish moderation event for %s %s: %v", event.RecordKind, event.RecordID, err)
	}
}
