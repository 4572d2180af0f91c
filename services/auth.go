package services

import (
	"context"

	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/security"
	"github.com/kishandholakiya1027/invoice-be/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type AuthService struct {
	users  AuthUserStore
	jwt    *security.JWTManager
	logger *utils.Logger
}

func CreateAuthService(users AuthUserStore, jwt *security.JWTManager) *AuthService {
	return &AuthService{
		users:  users,
		jwt:    jwt,
		logger: utils.CreateLogger("auth"),
	}
}

func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthUser, error) {
	taken, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, utils.WrapError(err, "failed to check existing user")
	}
	if taken {
		return nil, utils.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.WrapError(err, "failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, utils.WrapError(err, "failed to create user")
	}

	s.logger.Info(ctx, "user registered", map[string]interface{}{"username": user.Username})

	return &models.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, utils.WrapError(err, "failed to look up user")
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, utils.WrapError(err, "failed to sign token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		User: models.AuthUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
