package usecase

import (
	"context"
	"testing"

	"tosika/pkg/captcha"
	"tosika/pkg/listquery"
	"tosika/pkg/logger"
	"tosika/services/campaign/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCampaignRepository is a mock implementation of persistent.CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(campaign *entity.Campaign) error {
	args := m.Called(campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) GetByID(campaignID string) (*entity.Campaign, error) {
	args := m.Called(campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Update(campaign *entity.Campaign) error {
	args := m.Called(campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) UpdateStatus(campaignID string, status entity.CampaignStatus) error {
	args := m.Called(campaignID, status)
	return args.Error(0)
}

func (m *MockCampaignRepository) List(params listquery.Params) ([]*entity.Campaign, int64, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignRepository) ListByOwner(ownerID string, params listquery.Params) ([]*entity.Campaign, int64, error) {
	args := m.Called(ownerID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignRepository) ListCategories() ([]*entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

// MockBankInfoRepository is a mock implementation of persistent.BankInfoRepository
type MockBankInfoRepository struct {
	mock.Mock
}

func (m *MockBankInfoRepository) Create(info *entity.BankInfo) error {
	args := m.Called(info)
	return args.Error(0)
}

func (m *MockBankInfoRepository) GetByID(infoID string) (*entity.BankInfo, error) {
	args := m.Called(infoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BankInfo), args.Error(1)
}

func (m *MockBankInfoRepository) ListByOwner(ownerID string) ([]*entity.BankInfo, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BankInfo), args.Error(1)
}

func (m *MockBankInfoRepository) Update(info *entity.BankInfo) error {
	args := m.Called(info)
	return args.Error(0)
}

func (m *MockBankInfoRepository) Delete(infoID string) error {
	args := m.Called(infoID)
	return args.Error(0)
}

// MockVerifier is a mock implementation of captcha.Verifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	args := m.Called(ctx, token, remoteIP)
	return args.Error(0)
}

func newUseCase() (CampaignUseCase, *MockCampaignRepository, *MockBankInfoRepository, *MockVerifier) {
	campaignRepo := new(MockCampaignRepository)
	bankInfoRepo := new(MockBankInfoRepository)
	verifier := new(MockVerifier)
	uc := NewCampaignUseCase(campaignRepo, bankInfoRepo, verifier, nil, logger.New())
	return uc, campaignRepo, bankInfoRepo, verifier
}

func TestCreateCampaign_Success(t *testing.T) {
	uc, campaignRepo, _, verifier := newUseCase()

	verifier.On("Verify", mock.Anything, "tok", "1.2.3.4").Return(nil)
	campaignRepo.On("Create", mock.AnythingOfType("*entity.Campaign")).Return(nil)

	campaign, err := uc.CreateCampaign(context.Background(), "owner-1", CreateCampaignInput{
		Title:        "Rebuild the school roof",
		Description:  "Cyclone damage",
		TargetAmount: 5000000,
		CaptchaToken: "tok",
		RemoteIP:     "1.2.3.4",
	})

	assert.NoError(t, err)
	assert.Equal(t, "owner-1", campaign.OwnerID)
	assert.Equal(t, entity.CampaignStatusActive, campaign.Status)
	campaignRepo.AssertExpectations(t)
}

func TestCreateCampaign_MissingToken(t *testing.T) {
	uc, campaignRepo, _, verifier := newUseCase()

	verifier.On("Verify", mock.Anything, "", "1.2.3.4").Return(captcha.ErrTokenRequired)

	_, err := uc.CreateCampaign(context.Background(), "owner-1", CreateCampaignInput{
		Title:        "Rebuild the school roof",
		TargetAmount: 5000000,
		RemoteIP:     "1.2.3.4",
	})

	assert.ErrorIs(t, err, captcha.ErrTokenRequired)
	campaignRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateCampaign_NonPositiveTarget(t *testing.T) {
	uc, campaignRepo, _, verifier := newUseCase()

	verifier.On("Verify", mock.Anything, "tok", "1.2.3.4").Return(nil)

	_, err := uc.CreateCampaign(context.Background(), "owner-1", CreateCampaignInput{
		Title:        "Rebuild the school roof",
		TargetAmount: 0,
		CaptchaToken: "tok",
		RemoteIP:     "1.2.3.4",
	})

	assert.EqualError(t, err, "target amount must be positive")
	campaignRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateCampaign_NotOwner(t *testing.T) {
	uc, campaignRepo, _, _ := newUseCase()

	campaignRepo.On("GetByID", "camp-1").Return(&entity.Campaign{ID: "camp-1", OwnerID: "owner-1"}, nil)

	title := "New title"
	_, err := uc.UpdateCampaign("someone-else", "camp-1", &title, nil, nil)

	assert.EqualError(t, err, "not the campaign owner")
	campaignRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestSetAdminStatus_InvalidStatus(t *testing.T) {
	uc, campaignRepo, _, _ := newUseCase()

	_, err := uc.SetAdminStatus("camp-1", entity.CampaignStatus("archived"))

	assert.EqualError(t, err, "invalid status")
	campaignRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestSetAdminStatus_Suspend(t *testing.T) {
	uc, campaignRepo, _, _ := newUseCase()

	active := &entity.Campaign{ID: "camp-1", Status: entity.CampaignStatusActive}
	suspended := &entity.Campaign{ID: "camp-1", Status: entity.CampaignStatusSuspended}

	campaignRepo.On("GetByID", "camp-1").Return(active, nil).Once()
	campaignRepo.On("UpdateStatus", "camp-1", entity.CampaignStatusSuspended).Return(nil)
	campaignRepo.On("GetByID", "camp-1").Return(suspended, nil).Once()

	campaign, err := uc.SetAdminStatus("camp-1", entity.CampaignStatusSuspended)

	assert.NoError(t, err)
	assert.Equal(t, entity.CampaignStatusSuspended, campaign.Status)
	campaignRepo.AssertExpectations(t)
}

func TestCreateBankInfo_InvalidKind(t *testing.T) {
	uc, _, bankInfoRepo, _ := newUseCase()

	_, err := uc.CreateBankInfo("owner-1", &entity.BankInfo{Kind: "paypal", AccountName: "H", AccountNumber: "1"})

	assert.EqualError(t, err, "invalid bank info kind")
	bankInfoRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestDeleteBankInfo_NotOwner(t *testing.T) {
	uc, _, bankInfoRepo, _ := newUseCase()

	bankInfoRepo.On("GetByID", "bank-1").Return(&entity.BankInfo{ID: "bank-1", OwnerID: "owner-1"}, nil)

	err := uc.DeleteBankInfo("someone-else", "bank-1")

	assert.EqualError(t, err, "not the bank info owner")
	bankInfoRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestListOwnCampaigns_BuildsMeta(t *testing.T) {
	uc, campaignRepo, _, _ := newUseCase()

	params := listquery.Params{Page: 1, Limit: 20}
	campaignRepo.On("ListByOwner", "owner-1", params).
		Return([]*entity.Campaign{{ID: "camp-1"}, {ID: "camp-2"}}, int64(2), nil)

	campaigns, meta, err := uc.ListOwnCampaigns("owner-1", params)

	assert.NoError(t, err)
	assert.Len(t, campaigns, 2)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, 1, meta.TotalPages)
}
