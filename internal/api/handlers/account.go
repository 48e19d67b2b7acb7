package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/milestonemotors/motors/internal/identity"
	"github.com/milestonemotors/motors/internal/metrics"
	"github.com/milestonemotors/motors/internal/session"
)

const minPasswordLength = 8

// AccountHandler implements the register, login, and logout form flows.
// Successful posts answer with a 303 redirect and a flash notice;
// validation failures answer with 422 and per-field errors for the form
// renderer.
type AccountHandler struct {
	identity *identity.Service
	sessions *session.Manager
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *identity.Service, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{identity: svc, sessions: sessions}
}

// Register creates an account from the registration form and signs the
// new user in.
func (h *AccountHandler) Register(c echo.Context) error {
	in := identity.RegisterInput{
		Email:    c.FormValue("email"),
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
		City:     c.FormValue("city"),
		State:    c.FormValue("state"),
		Country:  c.FormValue("country"),
	}

	fields := map[string]string{}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "a valid email address is required"
	}
	if in.Username == "" {
		fields["username"] = "username is required"
	}
	if len(in.Password) < minPasswordLength {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Error:  "registration failed",
			Fields: fields,
		})
	}

	u, err := h.identity.Register(c.Request().Context(), in)
	if errors.Is(err, identity.ErrEmailTaken) {
		return c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Error:  "registration failed",
			Fields: map[string]string{"email": "email is already registered"},
		})
	}
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()

	if err := h.sessions.Issue(c, u.ID); err != nil {
		return err
	}
	session.SetFlash(c, "Welcome to Milestone Motors!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Login checks credentials and starts a session.
func (h *AccountHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if email == "" || password == "" {
		return c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Error:  "login failed",
			Fields: map[string]string{"credentials": "email and password are required"},
		})
	}

	u, err := h.identity.Login(c.Request().Context(), email, password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		metrics.LoginFailuresTotal.Inc()
		return c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Error:  "login failed",
			Fields: map[string]string{"credentials": "invalid email or password"},
		})
	}
	if err != nil {
		return err
	}

	if err := h.sessions.Issue(c, u.ID); err != nil {
		return err
	}

	next := c.QueryParam("next")
	if next == "" || !isLocalPath(next) {
		next = "/"
	}
	return c.Redirect(http.StatusSeeOther, next)
}

// Logout ends the session.
func (h *AccountHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

// isLocalPath accepts only same-site relative redirect targets.
func isLocalPath(p string) bool {
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && len(p) > 0 && p[0] == '/'
}
