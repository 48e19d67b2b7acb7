package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/milestonemotors/motors/internal/catalog"
	"github.com/milestonemotors/motors/internal/identity"
	"github.com/milestonemotors/motors/internal/session"
	"github.com/milestonemotors/motors/internal/store"
	domain "github.com/milestonemotors/motors/pkg/types"
)

// PublicProfile is the seller profile shape exposed to other users.
// Email stays private.
type PublicProfile struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	Country         string `json:"country,omitempty"`
}

// UserDetailResponse is a seller page: the profile plus their listings.
type UserDetailResponse struct {
	User     PublicProfile    `json:"user"`
	Listings []domain.Listing `json:"listings"`
}

// UsersHandler implements profile pages and account management.
type UsersHandler struct {
	identity *identity.Service
	catalog  *catalog.Service
	sessions *session.Manager
	log      *slog.Logger
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(id *identity.Service, cat *catalog.Service, sessions *session.Manager, log *slog.Logger) *UsersHandler {
	return &UsersHandler{identity: id, catalog: cat, sessions: sessions, log: log}
}

// Detail returns a seller's public profile and their listings.
func (h *UsersHandler) Detail(c echo.Context) error {
	ctx := c.Request().Context()

	u, err := h.identity.Get(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	}
	if err != nil {
		return err
	}

	listings, err := h.catalog.ListByOwner(ctx, u.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UserDetailResponse{
		User: PublicProfile{
			ID:              u.ID,
			Username:        u.Username,
			ProfilePhotoURL: u.ProfilePhotoURL,
			City:            u.City,
			State:           u.State,
			Country:         u.Country,
		},
		Listings: listings,
	})
}

// Me returns the signed-in account, email included.
func (h *UsersHandler) Me(c echo.Context) error {
	u, err := h.identity.Get(c.Request().Context(), session.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// MyListings returns the signed-in seller's own listings.
func (h *UsersHandler) MyListings(c echo.Context) error {
	listings, err := h.catalog.ListByOwner(c.Request().Context(), session.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"listings": listings})
}

// EditProfile updates the signed-in account's profile. An uploaded
// photo replaces the current one; the old photo is cleaned up in the
// background.
func (h *UsersHandler) EditProfile(c echo.Context) error {
	in := identity.ProfileInput{
		Username: c.FormValue("username"),
		City:     c.FormValue("city"),
		State:    c.FormValue("state"),
		Country:  c.FormValue("country"),
	}
	if in.Username == "" {
		return c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Error:  "profile form has errors",
			Fields: map[string]string{"username": "username is required"},
		})
	}

	filename, data, err := readProfilePhoto(c)
	if err != nil {
		return err
	}

	_, err = h.identity.UpdateProfile(c.Request().Context(), session.CurrentUser(c), in, filename, data)
	if err != nil {
		return err
	}

	session.SetFlash(c, "Profile updated")
	return c.Redirect(http.StatusSeeOther, "/profile")
}

// DeleteAccount removes the signed-in account. Whatever happens, the
// session ends and the browser lands on the home page; a failed
// removal is logged rather than shown.
func (h *UsersHandler) DeleteAccount(c echo.Context) error {
	userID := session.CurrentUser(c)

	if err := h.identity.DeleteAccount(c.Request().Context(), userID); err != nil {
		h.log.Error("account removal failed", "user_id", userID, "error", err)
	}

	h.sessions.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

// readProfilePhoto pulls the optional profile photo from the form.
func readProfilePhoto(c echo.Context) (string, []byte, error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		return "", nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}
