// Package identity manages accounts: registration, credential checks,
// profiles, and account removal.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/milestonemotors/motors/internal/metrics"
	"github.com/milestonemotors/motors/internal/photos"
	"github.com/milestonemotors/motors/internal/store"
	domain "github.com/milestonemotors/motors/pkg/types"
)

var (
	// ErrEmailTaken is returned when registering with an email that
	// already has an account. Emails are matched case-insensitively.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	City     string
	State    string
	Country  string
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Username string
	City     string
	State    string
	Country  string
}

// Service implements account management.
type Service struct {
	store      store.Store
	photos     photos.Service
	log        *slog.Logger
	bcryptCost int
}

// NewService creates an identity service. bcryptCost below the bcrypt
// minimum falls back to the library default.
func NewService(s store.Store, p photos.Service, log *slog.Logger, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{store: s, photos: p, log: log, bcryptCost: bcryptCost}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	_, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		City:         domain.TitleCase(in.City),
		State:        domain.TitleCase(in.State),
		Country:      domain.TitleCase(in.Country),
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login checks credentials and returns the account on success.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// Get returns one account by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// UpdateProfile updates the editable profile fields and, when a new
// photo is supplied, swaps the profile photo. The previous photo is
// removed best-effort in the background once the new one is saved.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput, photoFilename string, photoData []byte) (*domain.User, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldPhoto := ""
	if len(photoData) > 0 {
		url, err := s.photos.Upload(ctx, photoFilename, photoData)
		if err != nil {
			return nil, fmt.Errorf("uploading profile photo: %w", err)
		}
		if url != "" {
			oldPhoto = u.ProfilePhotoURL
			u.ProfilePhotoURL = url
		}
	}

	u.Username = strings.TrimSpace(in.Username)
	u.City = domain.TitleCase(in.City)
	u.State = domain.TitleCase(in.State)
	u.Country = domain.TitleCase(in.Country)

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	if oldPhoto != "" {
		s.deleteInBackground(ctx, oldPhoto)
	}

	s.log.Info("profile updated", "user_id", userID)
	return u, nil
}

// DeleteAccount removes the account, its listings via the store
// cascade, and best-effort all photos the account owned.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	// Collect photo URLs before the cascade wipes the listing rows.
	var urls []string
	if u.ProfilePhotoURL != "" {
		urls = append(urls, u.ProfilePhotoURL)
	}
	listings, err := s.store.ListListingsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading listings: %w", err)
	}
	for _, l := range listings {
		urls = append(urls, l.ImageURLs...)
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	s.deleteInBackground(ctx, urls...)

	s.log.Info("account deleted", "user_id", userID, "listings", len(listings))
	return nil
}

func (s *Service) deleteInBackground(ctx context.Context, urls ...string) {
	if len(urls) == 0 {
		return
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		for _, url := range urls {
			if err := s.photos.Delete(bg, url); err != nil {
				metrics.PhotoCleanupFailuresTotal.Inc()
				s.log.Warn("photo cleanup failed", "url", url, "error", err)
			}
		}
	}()
}
