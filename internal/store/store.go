// Package store defines the datastore abstraction for the marketplace.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running
// database.
package store

import (
	"context"
	"errors"

	domain "github.com/milestonemotors/motors/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines all data access operations for the marketplace.
// Every call is implicitly transactional on its own; there are no
// cross-call transactions.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	// DeleteUser removes the account row; owned listings go with it via
	// the store-level foreign key cascade, not application code.
	DeleteUser(ctx context.Context, id string) error

	// Listings
	CreateListing(ctx context.Context, l *domain.Listing) error
	GetListing(ctx context.Context, id int64) (*domain.Listing, error)
	// ListListings returns the complete listing set, newest first. The
	// catalog index re-reads it on every request; there is no cache.
	ListListings(ctx context.Context) ([]domain.Listing, error)
	ListListingsByUser(ctx context.Context, userID string) ([]domain.Listing, error)
	UpdateListing(ctx context.Context, l *domain.Listing) error
	DeleteListing(ctx context.Context, id int64) error

	// Counts feed the periodic metrics refresh job.
	CountListings(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
