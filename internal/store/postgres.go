package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/milestonemotors/motors/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := RunMigrations(ctx, s.pool)
	return err
}

// --- Users ---

// CreateUser inserts a new user row.
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) error {
	args := pgx.NamedArgs{
		"id":                u.ID,
		"email":             u.Email,
		"username":          u.Username,
		"password_hash":     u.PasswordHash,
		"role":              u.Role,
		"profile_photo_url": u.ProfilePhotoURL,
		"city":              u.City,
		"state":             u.State,
		"country":           u.Country,
	}

	if err := s.pool.QueryRow(ctx, queryInsertUser, args).
		Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by id.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getUser(ctx, queryGetUserByID, id)
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, queryGetUserByEmail, email)
}

func (s *PostgresStore) getUser(ctx context.Context, sql, arg string) (*domain.User, error) {
	u := &domain.User{}
	err := s.pool.QueryRow(ctx, sql, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&u.ProfilePhotoURL, &u.City, &u.State, &u.Country,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

// UpdateUser updates all mutable user fields.
func (s *PostgresStore) UpdateUser(ctx context.Context, u *domain.User) error {
	args := pgx.NamedArgs{
		"id":                u.ID,
		"email":             u.Email,
		"username":          u.Username,
		"password_hash":     u.PasswordHash,
		"role":              u.Role,
		"profile_photo_url": u.ProfilePhotoURL,
		"city":              u.City,
		"state":             u.State,
		"country":           u.Country,
	}

	tag, err := s.pool.Exec(ctx, queryUpdateUser, args)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a user; the listings FK cascade removes owned listings.
func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteUser, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Listings ---

// CreateListing inserts a new listing and populates its generated id.
func (s *PostgresStore) CreateListing(ctx context.Context, l *domain.Listing) error {
	if err := s.pool.QueryRow(ctx, queryInsertListing, listingArgs(l)).
		Scan(&l.ID); err != nil {
		return fmt.Errorf("inserting listing: %w", err)
	}
	return nil
}

// GetListing retrieves a listing by id.
func (s *PostgresStore) GetListing(ctx context.Context, id int64) (*domain.Listing, error) {
	l := &domain.Listing{}
	err := scanListing(s.pool.QueryRow(ctx, queryGetListing, id), l)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning listing: %w", err)
	}
	return l, nil
}

// ListListings returns every listing, newest first.
func (s *PostgresStore) ListListings(ctx context.Context) ([]domain.Listing, error) {
	return s.listListings(ctx, queryListListings)
}

// ListListingsByUser returns the listings owned by userID, newest first.
func (s *PostgresStore) ListListingsByUser(
	ctx context.Context,
	userID string,
) ([]domain.Listing, error) {
	return s.listListings(ctx, queryListListingsByUser, userID)
}

func (s *PostgresStore) listListings(
	ctx context.Context,
	sql string,
	args ...any,
) ([]domain.Listing, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, nil
}

// UpdateListing replaces all mutable listing fields.
func (s *PostgresStore) UpdateListing(ctx context.Context, l *domain.Listing) error {
	args := listingArgs(l)
	args["id"] = l.ID
	delete(args, "user_id")
	delete(args, "created_at")

	tag, err := s.pool.Exec(ctx, queryUpdateListing, args)
	if err != nil {
		return fmt.Errorf("updating listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteListing removes a listing by id.
func (s *PostgresStore) DeleteListing(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, queryDeleteListing, id)
	if err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Counts ---

// CountListings returns the total number of listings.
func (s *PostgresStore) CountListings(ctx context.Context) (int, error) {
	return s.count(ctx, queryCountListings)
}

// CountUsers returns the total number of users.
func (s *PostgresStore) CountUsers(ctx context.Context) (int, error) {
	return s.count(ctx, queryCountUsers)
}

func (s *PostgresStore) count(ctx context.Context, sql string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, sql).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}

// --- helpers ---

func listingArgs(l *domain.Listing) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":             l.UserID,
		"condition":           string(l.Condition),
		"brand":               string(l.Brand),
		"model":               l.Model,
		"description":         l.Description,
		"price_amount":        l.PriceAmount,
		"currency":            string(l.Currency),
		"year":                l.Year,
		"mileage_km":          l.MileageKM,
		"body_type":           string(l.BodyType),
		"fuel_type":           string(l.FuelType),
		"engine_capacity_cc":  l.EngineCapacityCC,
		"power_kw":            l.PowerKW,
		"power_hp":            l.PowerHP,
		"fixed_price":         string(l.FixedPrice),
		"exchange":            string(l.Exchange),
		"headliner_image_url": l.HeadlinerImageURL,
		"image_urls":          l.ImageURLs,
		"ad_number":           l.AdNumber,
		"created_at":          l.CreatedAt,
	}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner, l *domain.Listing) error {
	return row.Scan(
		&l.ID, &l.UserID, &l.Condition, &l.Brand, &l.Model, &l.Description,
		&l.PriceAmount, &l.Currency, &l.Year, &l.MileageKM, &l.BodyType,
		&l.FuelType, &l.EngineCapacityCC, &l.PowerKW, &l.PowerHP,
		&l.FixedPrice, &l.Exchange, &l.HeadlinerImageURL, &l.ImageURLs,
		&l.AdNumber, &l.CreatedAt,
	)
}
