package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/milestonemotors/motors/internal/metrics"
	"github.com/milestonemotors/motors/internal/photos"
	"github.com/milestonemotors/motors/internal/store"
	domain "github.com/milestonemotors/motors/pkg/types"
)

// ErrNotOwner is returned when someone other than the listing's owner
// tries to change or delete it. Ownership is the only write-access rule
// for listings; handlers translate this into a 403.
var ErrNotOwner = errors.New("not the listing owner")

// Input carries the seller-editable fields of a listing. Enum fields
// arrive already parsed; handlers reject unrecognized raw values before
// building an Input.
type Input struct {
	Condition        domain.Condition
	Brand            domain.Brand
	Model            string
	Description      string
	PriceAmount      int64
	Year             int
	MileageKM        int
	BodyType         domain.BodyType
	FuelType         domain.FuelType
	EngineCapacityCC int
	PowerKW          int
	PowerHP          int
	FixedPrice       domain.YesNo
	Exchange         domain.YesNo
}

// Upload is one photo slot from the listing form. Empty slots are
// skipped, not errors.
type Upload struct {
	Filename string
	Data     []byte
}

// Service owns the listing lifecycle and the catalog browse surface.
type Service struct {
	store  store.Store
	photos photos.Service
	log    *slog.Logger
}

// NewService creates a catalog service.
func NewService(s store.Store, p photos.Service, log *slog.Logger) *Service {
	return &Service{store: s, photos: p, log: log}
}

// Browse loads the full listing set and runs the browse pipeline over
// it.
func (s *Service) Browse(ctx context.Context, q Query) (Page, error) {
	all, err := s.store.ListListings(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("loading listings: %w", err)
	}
	return Run(all, q), nil
}

// Get returns one listing by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.store.GetListing(ctx, id)
}

// ListByOwner returns the listings a seller owns, newest first.
func (s *Service) ListByOwner(ctx context.Context, userID string) ([]domain.Listing, error) {
	return s.store.ListListingsByUser(ctx, userID)
}

// Create publishes a new listing for userID. Photos are uploaded first;
// the first uploaded image becomes the headliner. Model and description
// are normalized to leading-uppercase with surrounding whitespace trimmed.
func (s *Service) Create(ctx context.Context, userID string, in Input, uploads []Upload) (*domain.Listing, error) {
	urls, err := s.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	model := domain.TitleCase(in.Model)
	l := &domain.Listing{
		UserID:           userID,
		Condition:        in.Condition,
		Brand:            in.Brand,
		Model:            model,
		Description:      domain.TitleCase(in.Description),
		PriceAmount:      in.PriceAmount,
		Currency:         domain.CurrencyEUR,
		Year:             in.Year,
		MileageKM:        in.MileageKM,
		BodyType:         in.BodyType,
		FuelType:         in.FuelType,
		EngineCapacityCC: in.EngineCapacityCC,
		PowerKW:          in.PowerKW,
		PowerHP:          in.PowerHP,
		FixedPrice:       in.FixedPrice,
		Exchange:         in.Exchange,
		ImageURLs:        urls,
		AdNumber:         domain.ComposeAdNumber(userID, in.Brand, model),
		CreatedAt:        time.Now().UTC(),
	}
	if len(urls) > 0 {
		l.HeadlinerImageURL = urls[0]
	}

	if err := s.store.CreateListing(ctx, l); err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}

	s.log.Info("listing created", "listing_id", l.ID, "user_id", userID, "ad_number", l.AdNumber)
	return l, nil
}

// Update replaces the seller-editable fields of a listing. Identity,
// ownership, photos, the ad number, and the creation time all survive
// an edit unchanged. Only the owner may edit.
func (s *Service) Update(ctx context.Context, actorID string, id int64, in Input) (*domain.Listing, error) {
	l, err := s.store.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != actorID {
		return nil, ErrNotOwner
	}

	l.Condition = in.Condition
	l.Brand = in.Brand
	l.Model = domain.TitleCase(in.Model)
	l.Description = domain.TitleCase(in.Description)
	l.PriceAmount = in.PriceAmount
	l.Year = in.Year
	l.MileageKM = in.MileageKM
	l.BodyType = in.BodyType
	l.FuelType = in.FuelType
	l.EngineCapacityCC = in.EngineCapacityCC
	l.PowerKW = in.PowerKW
	l.PowerHP = in.PowerHP
	l.FixedPrice = in.FixedPrice
	l.Exchange = in.Exchange

	if err := s.store.UpdateListing(ctx, l); err != nil {
		return nil, fmt.Errorf("updating listing: %w", err)
	}

	s.log.Info("listing updated", "listing_id", id, "user_id", actorID)
	return l, nil
}

// Delete removes a listing and kicks off a best-effort cleanup of its
// photos. Only the owner may delete. The photo cleanup runs in the
// background and its failures are logged, never surfaced; the listing
// row is gone either way.
func (s *Service) Delete(ctx context.Context, actorID string, id int64) error {
	l, err := s.store.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if l.UserID != actorID {
		return ErrNotOwner
	}

	if err := s.store.DeleteListing(ctx, id); err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}

	s.cleanupPhotos(ctx, l.ImageURLs)

	s.log.Info("listing deleted", "listing_id", id, "user_id", actorID)
	return nil
}

// cleanupPhotos deletes stored images without blocking the caller. The
// request context may be cancelled as soon as the response is written,
// so the background work detaches from it.
func (s *Service) cleanupPhotos(ctx context.Context, urls []string) {
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

func (s *Service) uploadAll(ctx context.Context, uploads []Upload) ([]string, error) {
	var urls []string
	for _, u := range uploads {
		if len(u.Data) == 0 {
			continue
		}
		url, err := s.photos.Upload(ctx, u.Filename, u.Data)
		if err != nil {
			return nil, fmt.Errorf("uploading photo %s: %w", u.Filename, err)
		}
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}
