package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"tosika/pkg/config"
	"tosika/pkg/database"
	"tosika/pkg/logger"
	"tosika/pkg/s3"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The seeder writes straight to the service tables, so it carries its own
// row types instead of reaching into any service's internal packages.

type seedUser struct {
	ID        string `gorm:"type:uuid;primary_key"`
	Email     string
	Name      string
	Password  string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (seedUser) TableName() string { return "users" }

func (u *seedUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

type seedCategory struct {
	ID        string `gorm:"type:uuid;primary_key"`
	Name      string
	Slug      string
	CreatedAt time.Time
}

func (seedCategory) TableName() string { return "categories" }

func (c *seedCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type seedCampaign struct {
	ID           string `gorm:"type:uuid;primary_key"`
	OwnerID      string `gorm:"type:uuid"`
	CategoryID   string `gorm:"type:uuid"`
	Title        string
	Description  string
	ImageURL     string
	TargetAmount float64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (seedCampaign) TableName() string { return "campaigns" }

func (c *seedCampaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type seedDonation struct {
	ID            string `gorm:"type:uuid;primary_key"`
	CampaignID    string `gorm:"type:uuid"`
	Amount        float64
	PaymentMethod string
	Message       string
	DonorName     string
	IsAnonymous   bool
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (seedDonation) TableName() string { return "donations" }

func (d *seedDonation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, s3Client, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	testUsers := []struct {
		email    string
		name     string
		password string
		role     string
	}{
		{"admin@tosika.mg", "Admin", "admin12345", "admin"},
		{"herizo@test.mg", "Herizo Rakoto", "password123", "owner"},
		{"voahangy@test.mg", "Voahangy Rabe", "password123", "owner"},
		{"naina@test.mg", "Naina Andriana", "password123", "donor"},
	}

	ownerIDs := make([]string, 0)

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &seedUser{
			Email:    userData.email,
			Name:     userData.name,
			Password: string(hashedPassword),
			Role:     userData.role,
			IsActive: true,
		}

		var existingUser seedUser
		result := db.Where("email = ?", user.Email).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Email)
			if userData.role == "owner" {
				ownerIDs = append(ownerIDs, existingUser.ID)
			}
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Email, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Name, user.Email)
		if userData.role == "owner" {
			ownerIDs = append(ownerIDs, user.ID)
		}
	}

	categoryIDs, err := seedCategories(db, log)
	if err != nil {
		return err
	}

	if len(ownerIDs) == 0 {
		log.Warn("No campaign owners seeded, skipping campaigns")
		return nil
	}

	campaigns := []struct {
		title        string
		description  string
		targetAmount float64
	}{
		{"Rebuild the Ambositra school roof", "Cyclone damage left three classrooms unusable.", 5000000},
		{"Clean water for Ankilimalinika", "Drill a borehole well for 400 families.", 12000000},
		{"Medical care for Fara", "Surgery and recovery costs for a 7-year-old.", 3500000},
	}

	for i, data := range campaigns {
		ownerID := ownerIDs[i%len(ownerIDs)]

		var existing seedCampaign
		result := db.Where("title = ?", data.title).First(&existing)
		if result.Error == nil {
			log.Info("Campaign %q already exists, skipping", data.title)
			continue
		}

		campaign := &seedCampaign{
			OwnerID:      ownerID,
			CategoryID:   categoryIDs[i%len(categoryIDs)],
			Title:        data.title,
			Description:  data.description,
			TargetAmount: data.targetAmount,
			Status:       "active",
		}

		if url, err := uploadPlaceholderImage(s3Client, httpClient, i, log); err != nil {
			log.Warn("Failed to attach image to campaign %q: %v", data.title, err)
		} else {
			campaign.ImageURL = url
		}

		if err := db.Create(campaign).Error; err != nil {
			log.Error("Failed to create campaign %q: %v", data.title, err)
			continue
		}

		log.Info("Created campaign: %s", campaign.Title)
		seedDonations(db, campaign.ID, log)
	}

	return nil
}

func seedCategories(db *gorm.DB, log *logger.Logger) ([]string, error) {
	categories := []struct {
		name string
		slug string
	}{
		{"Education", "education"},
		{"Health", "health"},
		{"Environment", "environment"},
		{"Community", "community"},
	}

	ids := make([]string, 0, len(categories))
	for _, data := range categories {
		var existing seedCategory
		result := db.Where("slug = ?", data.slug).First(&existing)
		if result.Error == nil {
			ids = append(ids, existing.ID)
			continue
		}

		category := &seedCategory{Name: data.name, Slug: data.slug}
		if err := db.Create(category).Error; err != nil {
			return nil, fmt.Errorf("failed to create category %s: %w", data.name, err)
		}
		log.Info("Created category: %s", category.Name)
		ids = append(ids, category.ID)
	}
	return ids, nil
}

func seedDonations(db *gorm.DB, campaignID string, log *logger.Logger) {
	donations := []struct {
		amount    float64
		method    string
		donorName string
		anonymous bool
	}{
		{25000, "mobile_money", "Naina", false},
		{100000, "bank_account", "", true},
		{10000, "espece", "Lova", false},
	}

	for _, data := range donations {
		donation := &seedDonation{
			CampaignID:    campaignID,
			Amount:        data.amount,
			PaymentMethod: data.method,
			DonorName:     data.donorName,
			IsAnonymous:   data.anonymous,
			Status:        "pending",
		}
		if err := db.Create(donation).Error; err != nil {
			log.Error("Failed to create donation for campaign %s: %v", campaignID, err)
		}
	}
	log.Info("Created %d pending donations for campaign %s", len(donations), campaignID)
}

// imageFile adapts an in-memory image to the multipart.File the uploader
// expects.
type imageFile struct {
	*bytes.Reader
}

func (imageFile) Close() error { return nil }

func uploadPlaceholderImage(s3Client *s3.Client, httpClient *http.Client, index int, log *logger.Logger) (string, error) {
	imageURL := fmt.Sprintf("https://picsum.photos/seed/tosika-%d/800/450", index)

	log.Info("Fetching placeholder image from %s", imageURL)
	resp, err := httpClient.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image service returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("received empty image data")
	}

	fileKey := fmt.Sprintf("campaigns/seed_%d.jpg", index)
	uploadedURL, err := s3Client.UploadFile(fileKey, imageFile{bytes.NewReader(imageData)}, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	log.Info("Image uploaded: %s", uploadedURL)
	return uploadedURL, nil
}
