package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/milestonemotors/motors/internal/catalog"
	"github.com/milestonemotors/motors/internal/metrics"
	"github.com/milestonemotors/motors/internal/session"
	"github.com/milestonemotors/motors/internal/store"
	domain "github.com/milestonemotors/motors/pkg/types"
)

// photoFormKey is the multipart field carrying listing photos. Empty
// slots are normal; the form always renders the full row of inputs.
const photoFormKey = "photos"

// maxPhotoUploads is the headliner plus five gallery slots. The form
// renders exactly that many inputs, so anything past it is ignored.
const maxPhotoUploads = 6

// ListingsHandler implements the seller-facing listing form flows.
// Every route here sits behind the session middleware, so the acting
// user always comes from the verified context, never from the form.
type ListingsHandler struct {
	catalog *catalog.Service
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(svc *catalog.Service) *ListingsHandler {
	return &ListingsHandler{catalog: svc}
}

// Create publishes a new listing from the multipart form.
func (h *ListingsHandler) Create(c echo.Context) error {
	in, fields := parseListingForm(c)
	if len(fields) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Error:  "listing form has errors",
			Fields: fields,
		})
	}

	uploads, err := readPhotoUploads(c)
	if err != nil {
		return err
	}

	userID := session.CurrentUser(c)
	l, err := h.catalog.Create(c.Request().Context(), userID, in, uploads)
	if err != nil {
		return err
	}

	metrics.ListingsCreatedTotal.Inc()
	metrics.PhotoUploadsTotal.Add(float64(len(l.ImageURLs)))

	session.SetFlash(c, "Listing published")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/listings/%d", l.ID))
}

// Edit updates the seller-editable fields of an owned listing. Photos,
// the ad number, and the creation time are untouched by edits.
func (h *ListingsHandler) Edit(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}

	in, fields := parseListingForm(c)
	if len(fields) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Error:  "listing form has errors",
			Fields: fields,
		})
	}

	_, err = h.catalog.Update(c.Request().Context(), session.CurrentUser(c), id, in)
	if err != nil {
		return listingError(c, err)
	}

	session.SetFlash(c, "Listing updated")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/listings/%d", id))
}

// Delete removes an owned listing.
func (h *ListingsHandler) Delete(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Request().Context(), session.CurrentUser(c), id); err != nil {
		return listingError(c, err)
	}

	metrics.ListingsDeletedTotal.Inc()
	session.SetFlash(c, "Listing deleted")
	return c.Redirect(http.StatusSeeOther, "/my/listings")
}

// --- helpers ---

func listingID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid listing id")
	}
	return id, nil
}

func listingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "listing not found"})
	case errors.Is(err, catalog.ErrNotOwner):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "not your listing"})
	default:
		return err
	}
}

// parseListingForm binds and validates the listing form. Enum fields go
// through the domain parsers so a value outside the closed sets never
// reaches the service.
func parseListingForm(c echo.Context) (catalog.Input, map[string]string) {
	fields := map[string]string{}
	in := catalog.Input{
		Model:       c.FormValue("model"),
		Description: c.FormValue("description"),
	}

	if in.Model == "" {
		fields["model"] = "model is required"
	}

	var err error
	if in.Condition, err = domain.ParseCondition(c.FormValue("condition")); err != nil {
		fields["condition"] = err.Error()
	}
	if in.Brand, err = domain.ParseBrand(c.FormValue("brand")); err != nil {
		fields["brand"] = err.Error()
	}
	if in.BodyType, err = domain.ParseBodyType(c.FormValue("body_type")); err != nil {
		fields["body_type"] = err.Error()
	}
	if in.FuelType, err = domain.ParseFuelType(c.FormValue("fuel_type")); err != nil {
		fields["fuel_type"] = err.Error()
	}
	if in.FixedPrice, err = domain.ParseYesNo(c.FormValue("fixed_price")); err != nil {
		fields["fixed_price"] = err.Error()
	}
	if in.Exchange, err = domain.ParseYesNo(c.FormValue("exchange")); err != nil {
		fields["exchange"] = err.Error()
	}

	in.PriceAmount = formInt64(c, "price", fields)
	in.Year = formInt(c, "year", fields)
	in.MileageKM = formInt(c, "mileage_km", fields)
	in.EngineCapacityCC = formInt(c, "engine_capacity_cc", fields)
	in.PowerKW = formInt(c, "power_kw", fields)
	in.PowerHP = formInt(c, "power_hp", fields)

	if in.PriceAmount < 0 {
		fields["price"] = "price cannot be negative"
	}

	return in, fields
}

func formInt64(c echo.Context, key string, fields map[string]string) int64 {
	v, err := strconv.ParseInt(c.FormValue(key), 10, 64)
	if err != nil {
		fields[key] = "a whole number is required"
		return 0
	}
	return v
}

func formInt(c echo.Context, key string, fields map[string]string) int {
	v, err := strconv.Atoi(c.FormValue(key))
	if err != nil {
		fields[key] = "a whole number is required"
		return 0
	}
	return v
}

// readPhotoUploads pulls the photo files out of the multipart form. A
// request without multipart content simply has no photos. Files past
// the slot count are dropped.
func readPhotoUploads(c echo.Context) ([]catalog.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File[photoFormKey]
	if len(files) > maxPhotoUploads {
		files = files[:maxPhotoUploads]
	}

	var uploads []catalog.Upload
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, catalog.Upload{Filename: fh.Filename, Data: data})
	}
	return uploads, nil
}
