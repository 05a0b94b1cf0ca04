package services

import (
	"context"
	"errors"

	"pollsnip/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ListUsers returns users ordered by identifier ascending for stable
// pagination.
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Scopes(Paginate(page, pageSize)).
		Find(&users).Error
	return users, err
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
