package stores

import (
	"context"
	"errors"

	"github.com/kishandholakiya1027/invoice-be/models"
	"gorm.io/gorm"
)

type UserStore struct {
	BaseStore
}

func CreateUserStore(db, readDB *gorm.DB) *UserStore {
	return &UserStore{BaseStore: BaseStore{db: db, readDB: readDB}}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.GetDB(ctx).Create(user).Error
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.GetDB(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.GetDB(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := s.GetDB(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
