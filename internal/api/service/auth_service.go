package service

import (
	"context"
	"ctchen222/bucketlist/internal/api/apperr"
	"ctchen222/bucketlist/internal/api/models"
	"ctchen222/bucketlist/internal/api/repository"

	"golang.org/x/crypto/bcrypt"
)

// RegisterResult is what a successful registration hands back: the new
// user's id and a freshly issued token so the client can skip a
// separate login.
type RegisterResult struct {
	UserID int64
	Token  string
}

// AuthService defines the interface for registration, login and
// profile edits.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	EditUser(ctx context.Context, userID int64, req *models.EditUserRequest) ([]string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens TokenService) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// Register creates a user and issues their first token. The repository
// reports a duplicate email as apperr.ErrEmailTaken.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*RegisterResult, error) {
	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
	}
	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &RegisterResult{UserID: user.ID, Token: token}, nil
}

// Login verifies the credentials and returns a fresh token. Unknown
// email and wrong password are deliberately indistinguishable.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", apperr.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// EditUser applies a partial profile update for the authenticated user
// and returns one outcome keyword per applied change. Changing the
// password requires the current one to verify first. A request that
// changes nothing is an error.
func (s *authService) EditUser(ctx context.Context, userID int64, req *models.EditUserRequest) ([]string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrInvalidCredentials
	}

	var messages []string

	if req.Name != "" && req.Name != user.Name {
		user.Name = req.Name
		messages = append(messages, "name_update_success")
	}
	if req.Email != "" && req.Email != user.Email {
		user.Email = req.Email
		messages = append(messages, "email_update_success")
	}
	if req.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			return nil, apperr.ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		messages = append(messages, "password_update_success")
	}

	if len(messages) == 0 {
		return nil, apperr.ErrNoChanges
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return messages, nil
}
