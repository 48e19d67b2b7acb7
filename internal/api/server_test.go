package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/milestonemotors/motors/internal/api"
	"github.com/milestonemotors/motors/internal/api/middleware"
	"github.com/milestonemotors/motors/internal/catalog"
	"github.com/milestonemotors/motors/internal/identity"
	"github.com/milestonemotors/motors/internal/photos"
	"github.com/milestonemotors/motors/internal/session"
	storeMocks "github.com/milestonemotors/motors/internal/store/mocks"
)

func testServer(t *testing.T) (*api.Server, *storeMocks.MockStore) {
	t.Helper()

	mockStore := storeMocks.NewMockStore(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	photoSvc := photos.NewNoOp(log)

	srv := api.NewServer(api.Deps{
		Store:        mockStore,
		Catalog:      catalog.NewService(mockStore, photoSvc, log),
		Identity:     identity.NewService(mockStore, photoSvc, log, bcrypt.MinCost),
		Sessions:     session.NewManager("test-secret", time.Hour, "motors_session", false),
		LoginLimiter: middleware.NewLoginLimiter(100, 100),
		Logger:       log,
	})
	return srv, mockStore
}

func TestServerRoutes(t *testing.T) {
	t.Parallel()

	t.Run("healthz is public", func(t *testing.T) {
		t.Parallel()

		srv, _ := testServer(t)
		req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("metrics is public", func(t *testing.T) {
		t.Parallel()

		srv, _ := testServer(t)
		req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("browse api is public", func(t *testing.T) {
		t.Parallel()

		srv, mockStore := testServer(t)
		mockStore.EXPECT().ListListings(mock.Anything).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", http.NoBody)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anonymous listing create redirects to login", func(t *testing.T) {
		t.Parallel()

		srv, _ := testServer(t)
		req := httptest.NewRequest(http.MethodPost, "/listings", http.NoBody)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("anonymous account delete redirects to login", func(t *testing.T) {
		t.Parallel()

		srv, _ := testServer(t)
		req := httptest.NewRequest(http.MethodPost, "/account/delete", http.NoBody)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}
