package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/mypunksoft/auth/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_key_resolver.go -package=mocks github.com/mypunksoft/auth/internal/auth/service KeyResolver

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mypunksoft/auth/internal/auth/codec"
	"github.com/mypunksoft/auth/internal/auth/domain"
	"github.com/mypunksoft/auth/internal/auth/dto"
	autherror "github.com/mypunksoft/auth/internal/errors"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// KeyResolver resolves live key material issued for an owner id.
type KeyResolver interface {
	Resolve(ownerID string) (string, bool)
}

type UserService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	keys   KeyResolver
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, keys KeyResolver) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		keys:   keys,
	}
}

// decryptPayload resolves the owner's key grant and decodes the encrypted
// request body into v.
func (s *UserService) decryptPayload(ownerID, encryptedData string, v any) error {
	key, ok := s.keys.Resolve(ownerID)
	if !ok {
		return autherror.ErrKeyExpired
	}

	if err := codec.DecryptJSON(encryptedData, key, v); err != nil {
		return fmt.Errorf("%w: %w", autherror.ErrInvalidPayload, err)
	}

	return nil
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	var creds dto.Credentials
	if err := s.decryptPayload(input.UserID, input.EncryptedData, &creds); err != nil {
		return nil, err
	}

	if len(creds.Username) < minUsernameLen {
		return nil, autherror.ErrUsernameTooShort
	}
	if len(creds.Password) < minPasswordLen {
		return nil, autherror.ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, creds.Username, string(hashedPassword))
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	var creds dto.Credentials
	if err := s.decryptPayload(input.UserID, input.EncryptedData, &creds); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same error shape as a wrong password, minus the attempt counter.
		return nil, &autherror.InvalidCredentialsError{}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		if err := s.repo.IncrementAttempts(ctx, user.ID); err != nil {
			return nil, err
		}

		attemptsLeft := domain.AttemptsLeft(user.LoginAttempts)
		return nil, &autherror.InvalidCredentialsError{AttemptsLeft: &attemptsLeft}
	}

	if err := s.repo.ResetAttempts(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	return &dto.LoginOutput{
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
	}, nil
}

func (s *UserService) GetUserID(ctx context.Context, username string) (int, error) {
	return s.repo.GetIDByUsername(ctx, username)
}

// SaveAdditionalData decrypts and stores the free-form profile record.
func (s *UserService) SaveAdditionalData(ctx context.Context, input dto.AdditionalDataInput) error {
	var payload dto.ProfilePayload
	if err := s.decryptPayload(input.UserID, input.EncryptedData, &payload); err != nil {
		return err
	}

	if payload.UserID == 0 {
		return autherror.ErrMissingUserID
	}

	return s.repo.SaveDetails(ctx, &domain.UserDetails{
		UserID:      payload.UserID,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		MiddleName:  payload.MiddleName,
		PhoneNumber: payload.PhoneNumber,
		Email:       payload.Email,
		City:        payload.City,
	})
}
