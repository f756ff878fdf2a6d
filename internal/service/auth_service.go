package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type CreateUserInput struct {
	Email    string
	Mobile   string
	Password string
	Name     string
	Role     models.Role
}

type LoginResult struct {
	Token      string
	User       *models.User
	RedirectTo string
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	RegisterAdmin(ctx context.Context, input CreateUserInput) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: jwtSecret}
}

// Login accepts either an email address or a mobile number.
func (s *authService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindActiveByEmailOrMobile(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:      signed,
		User:       user,
		RedirectTo: redirectFor(user.Role),
	}, nil
}

func redirectFor(role models.Role) string {
	switch role {
	case models.RoleSales:
		return "/sales"
	case models.RoleGate:
		return "/gate"
	default:
		return "/admin"
	}
}

func (s *authService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		Mobile:   input.Mobile,
		Password: string(hash),
		Name:     input.Name,
		Role:     input.Role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// RegisterAdmin bootstraps the first admin account; it refuses once one
// exists.
func (s *authService) RegisterAdmin(ctx context.Context, input CreateUserInput) (*models.User, error) {
	exists, err := s.userRepo.ExistsByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}

	input.Role = models.RoleAdmin
	return s.CreateUser(ctx, input)
}
