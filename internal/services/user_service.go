package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/yukikurage/pastry-manager-api/internal/dto"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"github.com/yukikurage/pastry-manager-api/internal/repository"
	"github.com/yukikurage/pastry-manager-api/internal/result"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles user registration and lookup.
type UserService struct {
	userRepo repository.UserRepository
	hashCost int
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		hashCost: bcrypt.DefaultCost,
	}
}

// RegisterUserInput represents the information needed to create a user.
type RegisterUserInput struct {
	Email       string  `validate:"required,email,max=255" label:"Email"`
	FirstName   string  `validate:"required,max=100" label:"First name"`
	LastName    string  `validate:"required,max=100" label:"Last name"`
	Password    string  `validate:"required,min=8" label:"Password"`
	PhoneNumber *string `validate:"omitempty,max=32" label:"Phone number"`
}

// GetUserInput identifies a user.
type GetUserInput struct {
	UserID uuid.UUID `validate:"required" label:"User ID"`
}

// ListUsersInput requests every user.
type ListUsersInput struct{}

// Register creates an active user with the default role.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (result.Result[dto.UserDTO], error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return result.Result[dto.UserDTO]{}, errors.Wrap(err, "failed to check email")
	}
	if exists {
		return result.Failure[dto.UserDTO](MsgUserExists), nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return result.Result[dto.UserDTO]{}, errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Another registration won the race past the existence check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return result.Failure[dto.UserDTO](MsgUserExists), nil
		}
		return result.Result[dto.UserDTO]{}, errors.Wrap(err, "failed to create user")
	}

	return result.Success(dto.ToUserDTO(*user)), nil
}

// Get returns a user that has not been deleted.
func (s *UserService) Get(ctx context.Context, input GetUserInput) (result.Result[dto.UserDTO], error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failure[dto.UserDTO](MsgUserNotFound), nil
		}
		return result.Result[dto.UserDTO]{}, errors.Wrap(err, "failed to find user")
	}

	return result.Success(dto.ToUserDTO(*user)), nil
}

// List returns every non-deleted user ordered by last name.
func (s *UserService) List(ctx context.Context, _ ListUsersInput) (result.Result[[]dto.UserDTO], error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return result.Result[[]dto.UserDTO]{}, errors.Wrap(err, "failed to list users")
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserDTO(u))
	}
	return result.Success(out), nil
}

// displayName returns the user's full name, or "" when the user is gone.
func displayName(ctx context.Context, users repository.UserRepository, id uuid.UUID) (string, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", errors.Wrap(err, "failed to find user")
	}
	return user.FullName(), nil
}
