package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/milestonemotors/motors/internal/api/handlers"
	"github.com/milestonemotors/motors/internal/catalog"
	photoMocks "github.com/milestonemotors/motors/internal/photos/mocks"
	"github.com/milestonemotors/motors/internal/session"
	storeMocks "github.com/milestonemotors/motors/internal/store/mocks"
	domain "github.com/milestonemotors/motors/pkg/types"
)

func validListingForm() url.Values {
	return url.Values{
		"condition":          {"used"},
		"brand":              {"bmw"},
		"model":              {"330d"},
		"description":        {"one owner"},
		"price":              {"15000"},
		"year":               {"2018"},
		"mileage_km":         {"120000"},
		"body_type":          {"sedan"},
		"fuel_type":          {"diesel"},
		"engine_capacity_cc": {"2993"},
		"power_kw":           {"190"},
		"power_hp":           {"258"},
		"fixed_price":        {"no"},
		"exchange":           {"yes"},
	}
}

func postListingForm(t *testing.T, path string, form url.Values, userID string, params ...string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set(session.ContextKey, userID)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	return rec, c
}

func newListingsHandler(t *testing.T) (*handlers.ListingsHandler, *storeMocks.MockStore, *photoMocks.MockService) {
	t.Helper()
	mockStore := storeMocks.NewMockStore(t)
	mockPhotos := photoMocks.NewMockService(t)
	svc := catalog.NewService(mockStore, mockPhotos, discardLogger())
	return handlers.NewListingsHandler(svc), mockStore, mockPhotos
}

func TestListingsCreate(t *testing.T) {
	t.Parallel()

	t.Run("valid form publishes and redirects to the listing", func(t *testing.T) {
		t.Parallel()

		h, mockStore, _ := newListingsHandler(t)
		mockStore.EXPECT().CreateListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.UserID == "seller-1" &&
				l.Brand == domain.BrandBMW &&
				l.PriceAmount == 15000 &&
				l.AdNumber == "seller-1-BMW-330d"
		})).RunAndReturn(func(_ context.Context, l *domain.Listing) error {
			l.ID = 42
			return nil
		})

		rec, c := postListingForm(t, "/listings", validListingForm(), "seller-1")
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/listings/42", rec.Header().Get("Location"))
	})

	t.Run("multipart photos are uploaded with the listing", func(t *testing.T) {
		t.Parallel()

		h, mockStore, mockPhotos := newListingsHandler(t)
		mockPhotos.EXPECT().Upload(mock.Anything, "front.jpg", []byte("imgdata")).
			Return("https://photos.test/motors/photos/a.jpg", nil)
		mockStore.EXPECT().CreateListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.HeadlinerImageURL == "https://photos.test/motors/photos/a.jpg"
		})).Return(nil)

		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		for key, vals := range validListingForm() {
			require.NoError(t, w.WriteField(key, vals[0]))
		}
		fw, err := w.CreateFormFile("photos", "front.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("imgdata"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/listings", &body)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.Set(session.ContextKey, "seller-1")

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("photos past the slot count are dropped", func(t *testing.T) {
		t.Parallel()

		h, mockStore, mockPhotos := newListingsHandler(t)
		mockPhotos.EXPECT().Upload(mock.Anything, mock.Anything, mock.Anything).
			Return("https://photos.test/motors/photos/x.jpg", nil).Times(6)
		mockStore.EXPECT().CreateListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
			return len(l.ImageURLs) == 6
		})).Return(nil)

		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		for key, vals := range validListingForm() {
			require.NoError(t, w.WriteField(key, vals[0]))
		}
		for i := 0; i < 8; i++ {
			fw, err := w.CreateFormFile("photos", fmt.Sprintf("photo-%d.jpg", i))
			require.NoError(t, err)
			_, err = fw.Write([]byte("imgdata"))
			require.NoError(t, err)
		}
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/listings", &body)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.Set(session.ContextKey, "seller-1")

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("unrecognized brand returns 422 with field error", func(t *testing.T) {
		t.Parallel()

		h, _, _ := newListingsHandler(t)
		form := validListingForm()
		form.Set("brand", "zonda")

		rec, c := postListingForm(t, "/listings", form, "seller-1")
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `"brand"`)
	})

	t.Run("non-numeric price returns 422", func(t *testing.T) {
		t.Parallel()

		h, _, _ := newListingsHandler(t)
		form := validListingForm()
		form.Set("price", "cheap")

		rec, c := postListingForm(t, "/listings", form, "seller-1")
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `"price"`)
	})
}

func TestListingsEdit(t *testing.T) {
	t.Parallel()

	t.Run("owner edit redirects to the listing", func(t *testing.T) {
		t.Parallel()

		h, mockStore, _ := newListingsHandler(t)
		mockStore.EXPECT().GetListing(mock.Anything, int64(7)).
			Return(&domain.Listing{ID: 7, UserID: "seller-1", AdNumber: "keep"}, nil)
		mockStore.EXPECT().UpdateListing(mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.AdNumber == "keep" && l.PriceAmount == 15000
		})).Return(nil)

		rec, c := postListingForm(t, "/listings/7", validListingForm(), "seller-1", "id", "7")
		require.NoError(t, h.Edit(c))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/listings/7", rec.Header().Get("Location"))
	})

	t.Run("non-owner gets 403", func(t *testing.T) {
		t.Parallel()

		h, mockStore, _ := newListingsHandler(t)
		mockStore.EXPECT().GetListing(mock.Anything, int64(7)).
			Return(&domain.Listing{ID: 7, UserID: "seller-1"}, nil)

		rec, c := postListingForm(t, "/listings/7", validListingForm(), "intruder", "id", "7")
		require.NoError(t, h.Edit(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("garbage id is a 400", func(t *testing.T) {
		t.Parallel()

		h, _, _ := newListingsHandler(t)
		_, c := postListingForm(t, "/listings/abc", validListingForm(), "seller-1", "id", "abc")

		err := h.Edit(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestListingsDelete(t *testing.T) {
	t.Parallel()

	t.Run("owner delete redirects to my listings", func(t *testing.T) {
		t.Parallel()

		h, mockStore, _ := newListingsHandler(t)
		mockStore.EXPECT().GetListing(mock.Anything, int64(7)).
			Return(&domain.Listing{ID: 7, UserID: "seller-1"}, nil)
		mockStore.EXPECT().DeleteListing(mock.Anything, int64(7)).Return(nil)

		rec, c := postListingForm(t, "/listings/7/delete", url.Values{}, "seller-1", "id", "7")
		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/my/listings", rec.Header().Get("Location"))
	})

	t.Run("non-owner gets 403", func(t *testing.T) {
		t.Parallel()

		h, mockStore, _ := newListingsHandler(t)
		mockStore.EXPECT().GetListing(mock.Anything, int64(7)).
			Return(&domain.Listing{ID: 7, UserID: "seller-1"}, nil)

		rec, c := postListingForm(t, "/listings/7/delete", url.Values{}, "intruder", "id", "7")
		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
