package marketplace

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/utaskhq/utask/internal/domain"
	"github.com/utaskhq/utask/internal/httpx"
)

type serviceRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Date        string          `json:"date"`
	Location    string          `json:"location"`
	CategoryID  string          `json:"category_id"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Status      string          `json:"status"`
}

// ListServices is the public service discovery endpoint with optional
// category, text, location and status filters.
func (h *Handler) ListServices(c echo.Context) error {
	limit, offset := httpx.Page(c)
	filter := ServiceFilter{
		CategoryID: c.QueryParam("category"),
		Query:      c.QueryParam("q"),
		Location:   c.QueryParam("location"),
		Status:     c.QueryParam("status"),
		Limit:      limit,
		Offset:     offset,
	}
	if filter.Status == "" {
		filter.Status = domain.ServicePending
	}

	services, total, err := h.store.ListServices(c.Request().Context(), filter)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"services":   services,
		"pagination": domain.Pagination{Limit: limit, Offset: offset, Total: total},
	})
}

// CreateService posts a new service request owned by the acting user.
func (h *Handler) CreateService(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	req := new(serviceRequest)
	if err := c.Bind(req); err != nil {
		return httpx.Error(c, domain.E(domain.ErrValidation, "invalid request body"))
	}
	if req.Title == "" || req.Description == "" || req.Date == "" {
		return httpx.Error(c, domain.E(domain.ErrValidation, "title, description, price and date are required"))
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return httpx.Error(c, domain.E(domain.ErrValidation, "price must be greater than zero"))
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return httpx.Error(c, err)
	}

	svc := &domain.Service{
		ID:          uuid.New().String(),
		OwnerID:     uid,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Date:        date,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      domain.ServicePending,
		CreatedAt:   time.Now(),
	}
	if req.CategoryID != "" {
		svc.CategoryID = &req.CategoryID
	}

	if err := h.store.CreateService(c.Request().Context(), svc); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"service": svc})
}

// GetService returns one service with its category, owner and proposals.
func (h *Handler) GetService(c echo.Context) error {
	svc, err := h.store.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}

	proposals, err := h.store.ListServiceProposals(c.Request().Context(), svc.ID)
	if err != nil {
		return httpx.Error(c, err)
	}
	svc.Proposals = proposals

	return c.JSON(http.StatusOK, echo.Map{"service": svc})
}

// UpdateService lets the owner edit an existing service.
func (h *Handler) UpdateService(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	svc, err := h.store.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}
	if svc.OwnerID != uid {
		return httpx.Error(c, domain.E(domain.ErrForbidden, "only the owner can edit this service"))
	}

	req := new(serviceRequest)
	if err := c.Bind(req); err != nil {
		return httpx.Error(c, domain.E(domain.ErrValidation, "invalid request body"))
	}

	if req.Title != "" {
		svc.Title = req.Title
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if !req.Price.IsZero() {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			return httpx.Error(c, domain.E(domain.ErrValidation, "price must be greater than zero"))
		}
		svc.Price = req.Price
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return httpx.Error(c, err)
		}
		svc.Date = date
	}
	if req.Location != "" {
		svc.Location = req.Location
	}
	if req.CategoryID != "" {
		svc.CategoryID = &req.CategoryID
	}
	if req.Latitude != nil {
		svc.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		svc.Longitude = req.Longitude
	}
	if req.Status != "" {
		if !validServiceStatus(req.Status) {
			return httpx.Error(c, domain.E(domain.ErrValidation, "invalid service status"))
		}
		svc.Status = req.Status
	}

	if err := h.store.UpdateService(c.Request().Context(), svc); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"service": svc})
}

// DeleteService removes a service; owner only.
func (h *Handler) DeleteService(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	svc, err := h.store.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}
	if svc.OwnerID != uid {
		return httpx.Error(c, domain.E(domain.ErrForbidden, "only the owner can delete this service"))
	}

	if err := h.store.DeleteService(c.Request().Context(), svc.ID); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// NearbyServices ranks pending services by haversine distance from the
// given coordinates, nearest first.
func (h *Handler) NearbyServices(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return httpx.Error(c, domain.E(domain.ErrValidation, "latitude and longitude are required"))
	}

	radiusKm := 10.0
	if r := c.QueryParam("radius"); r != "" {
		if v, err := strconv.ParseFloat(r, 64); err == nil && v > 0 {
			radiusKm = v
		}
	}

	candidates, err := h.store.ListGeoServices(c.Request().Context())
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"services": rankNearby(candidates, lat, lng, radiusKm)})
}

// ListCategories returns every service category, alphabetically.
func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.store.ListCategories(c.Request().Context())
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.E(domain.ErrValidation, "date must be RFC3339 or YYYY-MM-DD")
}

func validServiceStatus(status string) bool {
	switch status {
	case domain.ServicePending, domain.ServiceInProgress, domain.ServiceCompleted, domain.ServiceCancelled:
		return true
	}
	return false
}
