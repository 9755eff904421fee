package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/woodline/backend/internal/domain"
)

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
}

type AccountUC struct {
	Users domain.UserRepo
}

var ErrWeakPassword = errors.New("password must be at least 8 characters")

// Register provisions the identity: user, profile and empty cart are
// created in one transaction by the repo.
func (uc *AccountUC) Register(ctx context.Context, in RegisterInput) (*domain.Profile, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(in.Password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	profile := domain.Profile{
		ID:        uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
	}
	if err := uc.Users.Register(ctx, &user, &profile); err != nil {
		return nil, err
	}
	profile.User = user
	return &profile, nil
}

// Authenticate checks the password and returns the user's profile. Token
// issuance is the HTTP layer's concern, not handled here.
func (uc *AccountUC) Authenticate(ctx context.Context, username, password string) (*domain.Profile, error) {
	user, err := uc.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.Users.ProfileByUserID(ctx, user.ID)
}

func (uc *AccountUC) GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	return uc.Users.ProfileByID(ctx, profileID)
}

func (uc *AccountUC) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	if p.ID == uuid.Nil {
		return domain.ErrNotFound
	}
	return uc.Users.SaveProfile(ctx, p)
}
