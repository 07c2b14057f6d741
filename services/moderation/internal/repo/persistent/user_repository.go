package persistent

import "gorm.io/gorm"

// UserRepository is the minimal view of the users table the moderation
// service needs: the stored hash for withdrawal password confirmation.
type UserRepository interface {
	GetPasswordHash(userID string) (string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetPasswordHash(userID string) (string, error) {
	var hash string
	err := r.db.Table("users").
		Select("password").
		Where("id = ?", userID).
		Scan(&hash).Error
	if err != nil {
		return "", err
	}
	if hash == "" {
		return "", gorm.ErrRecordNotFound
	}
	return hash, nil
}
