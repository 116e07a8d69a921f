package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Insert creates the user. A duplicate email is a ConflictError.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return errs.FromDB(err, "insert user", "user", "email", user.Email)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, errs.FromDB(err, "get user", "user", "id", id)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, errs.FromDB(err, "get user by email", "user", "email", email)
	}
	return &user, nil
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "external_id = ?", externalID).Error; err != nil {
		return nil, errs.FromDB(err, "get user by external id", "user", "external_id", externalID)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return errs.FromDB(result.Error, "update user", "user", "id", id)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("user", id)
	}
	return nil
}
