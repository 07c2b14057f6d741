package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"tosika/pkg/captcha"
	"tosika/pkg/listquery"
	"tosika/pkg/logger"
	"tosika/pkg/s3"
	"tosika/services/campaign/internal/entity"
	"tosika/services/campaign/internal/repo/persistent"

	"github.com/google/uuid"
)

type CreateCampaignInput struct {
	Title        string
	Description  string
	CategoryID   string
	TargetAmount float64
	CaptchaToken string
	RemoteIP     string
}

type CampaignUseCase interface {
	CreateCampaign(ctx context.Context, ownerID string, input CreateCampaignInput) (*entity.Campaign, error)
	GetCampaign(campaignID string) (*entity.Campaign, error)
	ListCampaigns(params listquery.Params) ([]*entity.Campaign, listquery.Meta, error)
	ListOwnCampaigns(ownerID string, params listquery.Params) ([]*entity.Campaign, listquery.Meta, error)
	UpdateCampaign(ownerID, campaignID string, title, description, categoryID *string) (*entity.Campaign, error)
	SetAdminStatus(campaignID string, status entity.CampaignStatus) (*entity.Campaign, error)
	UploadImage(ownerID, campaignID string, file multipart.File, header *multipart.FileHeader) (*entity.Campaign, error)
	ListCategories() ([]*entity.Category, error)
	CreateBankInfo(ownerID string, info *entity.BankInfo) (*entity.BankInfo, error)
	ListBankInfos(ownerID string) ([]*entity.BankInfo, error)
	DeleteBankInfo(ownerID, infoID string) error
}

type campaignUseCase struct {
	campaignRepo persistent.CampaignRepository
	bankInfoRepo persistent.BankInfoRepository
	verifier     captcha.Verifier
	s3Client     *s3.Client
	logger       *logger.Logger
}

func NewCampaignUseCase(
	campaignRepo persistent.CampaignRepository,
	bankInfoRepo persistent.BankInfoRepository,
	verifier captcha.Verifier,
	s3Client *s3.Client,
	logger *logger.Logger,
) CampaignUseCase {
	return &campaignUseCase{
		campaignRepo: campaignRepo,
		bankInfoRepo: bankInfoRepo,
		verifier:     verifier,
		s3Client:     s3Client,
		logger:       logger,
	}
}

func (uc *campaignUseCase) CreateCampaign(ctx context.Context, ownerID string, input CreateCampaignInput) (*entity.Campaign, error) {
	if err := uc.verifier.Verify(ctx, input.CaptchaToken, input.RemoteIP); err != nil {
		return nil, err
	}

	if input.TargetAmount <= 0 {
		return nil, fmt.Errorf("target amount must be positive")
	}

	campaign := &entity.Campaign{
		OwnerID:      ownerID,
		CategoryID:   input.CategoryID,
		Title:        input.Title,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		Status:       entity.CampaignStatusActive,
	}

	if err := uc.campaignRepo.Create(campaign); err != nil {
		uc.logger.Error("Failed to create campaign: %v", err)
		return nil, fmt.Errorf("failed to create campaign")
	}

	return campaign, nil
}

func (uc *campaignUseCase) GetCampaign(campaignID string) (*entity.Campaign, error) {
	campaign, err := uc.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found")
	}
	return campaign, nil
}

func (uc *campaignUseCase) ListCampaigns(params listquery.Params) ([]*entity.Campaign, listquery.Meta, error) {
	campaigns, total, err := uc.campaignRepo.List(params)
	if err != nil {
		uc.logger.Error("Failed to list campaigns: %v", err)
		return nil, listquery.Meta{}, fmt.Errorf("failed to list campaigns")
	}
	return campaigns, listquery.NewMeta(total, params), nil
}

func (uc *campaignUseCase) ListOwnCampaigns(ownerID string, params listquery.Params) ([]*entity.Campaign, listquery.Meta, error) {
	campaigns, total, err := uc.campaignRepo.ListByOwner(ownerID, params)
	if err != nil {
		uc.logger.Error("Failed to list campaigns for owner %s: %v", ownerID, err)
		return nil, listquery.Meta{}, fmt.Errorf("failed to list campaigns")
	}
	return campaigns, listquery.NewMeta(total, params), nil
}

func (uc *campaignUseCase) UpdateCampaign(ownerID, campaignID string, title, description, categoryID *string) (*entity.Campaign, error) {
	campaign, err := uc.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found")
	}

	if campaign.OwnerID != ownerID {
		return nil, fmt.Errorf("not the campaign owner")
	}

	if title != nil {
		campaign.Title = *title
	}
	if description != nil {
		campaign.Description = *description
	}
	if categoryID != nil {
		campaign.CategoryID = *categoryID
	}

	if err := uc.campaignRepo.Update(campaign); err != nil {
		uc.logger.Error("Failed to update campaign %s: %v", campaignID, err)
		return nil, fmt.Errorf("failed to update campaign")
	}

	return campaign, nil
}

func (uc *campaignUseCase) SetAdminStatus(campaignID string, status entity.CampaignStatus) (*entity.Campaign, error) {
	switch status {
	case entity.CampaignStatusActive, entity.CampaignStatusSuspended, entity.CampaignStatusClosed:
	default:
		return nil, fmt.Errorf("invalid status")
	}

	if _, err := uc.campaignRepo.GetByID(campaignID); err != nil {
		return nil, fmt.Errorf("campaign not found")
	}

	if err := uc.campaignRepo.UpdateStatus(campaignID, status); err != nil {
		uc.logger.Error("Failed to update campaign status %s: %v", campaignID, err)
		return nil, fmt.Errorf("failed to update campaign status")
	}

	return uc.campaignRepo.GetByID(campaignID)
}

func (uc *campaignUseCase) UploadImage(ownerID, campaignID string, file multipart.File, header *multipart.FileHeader) (*entity.Campaign, error) {
	campaign, err := uc.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found")
	}

	if campaign.OwnerID != ownerID {
		return nil, fmt.Errorf("not the campaign owner")
	}

	key := fmt.Sprintf("campaigns/%s/%s%s", campaignID, uuid.New().String(), filepath.Ext(header.Filename))
	url, err := uc.s3Client.UploadFile(key, file, header.Header.Get("Content-Type"))
	if err != nil {
		uc.logger.Error("Failed to upload campaign image: %v", err)
		return nil, fmt.Errorf("failed to upload image")
	}

	campaign.ImageURL = url
	if err := uc.campaignRepo.Update(campaign); err != nil {
		uc.logger.Error("Failed to save campaign image URL: %v", err)
		return nil, fmt.Errorf("failed to update campaign")
	}

	return campaign, nil
}

func (uc *campaignUseCase) ListCategories() ([]*entity.Category, error) {
	categories, err := uc.campaignRepo.ListCategories()
	if err != nil {
		uc.logger.Error("Failed to list categories: %v", err)
		return nil, fmt.Errorf("failed to list categories")
	}
	return categories, nil
}

func (uc *campaignUseCase) CreateBankInfo(ownerID string, info *entity.BankInfo) (*entity.BankInfo, error) {
	info.OwnerID = ownerID

	switch info.Kind {
	case entity.BankInfoKindMobileMoney, entity.BankInfoKindBankAccount:
	default:
		return nil, fmt.Errorf("invalid bank info kind")
	}

	if err := uc.bankInfoRepo.Create(info); err != nil {
		uc.logger.Error("Failed to create bank info: %v", err)
		return nil, fmt.Errorf("failed to create bank info")
	}
	return info, nil
}

func (uc *campaignUseCase) ListBankInfos(ownerID string) ([]*entity.BankInfo, error) {
	infos, err := uc.bankInfoRepo.ListByOwner(ownerID)
	if err != nil {
		uc.logger.Error("Failed to list bank infos: %v", err)
		return nil, fmt.Errorf("failed to list bank infos")
	}
	return infos, nil
}

func (uc *campaignUseCase) DeleteBankInfo(ownerID, infoID string) error {
	info, err := uc.bankInfoRepo.GetByID(infoID)
	if err != nil {
		return fmt.Errorf("bank info not found")
	}

	if info.OwnerID != ownerID {
		return fmt.Errorf("not the bank info owner")
	}

	if err := uc.bankInfoRepo.Delete(infoID); err != nil {
		uc.logger.Error("Failed to delete bank info %s: %v", infoID, err)
		return fmt.Errorf("failed to delete bank info")
	}
	return nil
}
