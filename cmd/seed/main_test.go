package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The seed row types must stay aligned with the tables the migrations create.
func TestSeedRowsTargetMigratedTables(t *testing.T) {
	assert.Equal(t, "users", seedUser{}.TableName())
	assert.Equal(t, "categories", seedCategory{}.TableName())
	assert.Equal(t, "campaigns", seedCampaign{}.TableName())
	assert.Equal(t, "donations", seedDonation{}.TableName())
}

func TestSeedRowsGetGeneratedIDs(t *testing.T) {
	user := &seedUser{Email: "herizo@test.mg"}
	assert.NoError(t, user.BeforeCreate(nil))
	assert.NotEmpty(t, user.ID)

	campaign := &seedCampaign{Title: "Rebuild the school roof"}
	assert.NoError(t, campaign.BeforeCreate(nil))
	assert.NotEmpty(t, campaign.ID)

	// an explicit id is kept
	donation := &seedDonation{ID: "fixed-id"}
	assert.NoError(t, donation.BeforeCreate(nil))
	assert.Equal(t, "fixed-id", donation.ID)
}
