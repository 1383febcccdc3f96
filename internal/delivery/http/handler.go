package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelfview/backend/internal/domain"
	"github.com/shelfview/backend/internal/usecase"
)

// Version is reported by the health check
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
	options *usecase.OptionsService
	session *usecase.FilterSession
}

// NewHandler creates a new HTTP handler. Any dependency may be nil, in which
// case its endpoints answer 503.
func NewHandler(
	catalog *usecase.CatalogService,
	options *usecase.OptionsService,
	session *usecase.FilterSession,
) *Handler {
	return &Handler{
		catalog: catalog,
		options: options,
		session: session,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shelfview-backend",
		"version": Version,
	})
}

// SearchProducts runs a one-off filter query.
// Body: Criteria JSON (may be empty). Query: sortBy, sortOrder.
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.catalog == nil {
		respondError(c, http.StatusServiceUnavailable, "catalog service not configured")
		return
	}

	criteria, err := bindCriteria(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sort, err := usecase.ParseSort(c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	products, err := h.catalog.Retrieve(c.Request.Context(), criteria)
	if err != nil {
		respondWithError(c, err)
		return
	}

	products = usecase.SortProducts(products, sort)
	c.JSON(http.StatusOK, gin.H{
		"data":  products,
		"count": len(products),
	})
}

// GetOptions returns the selectable values and bounds for each filter
func (h *Handler) GetOptions(c *gin.Context) {
	if h.options == nil {
		respondError(c, http.StatusServiceUnavailable, "options service not configured")
		return
	}

	options, err := h.options.GetOptions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, options)
}

// GetFilters returns the shared filter session. With ?wait=true the response
// is held until queued name/price updates have landed and their retrieval
// has completed.
func (h *Handler) GetFilters(c *gin.Context) {
	if !h.sessionConfigured(c) {
		return
	}

	wait, _ := strconv.ParseBool(c.Query("wait"))
	if !wait {
		c.JSON(http.StatusOK, h.session.Snapshot())
		return
	}

	snapshot, err := h.session.WaitIdle(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type updateFilterRequest struct {
	Value json.RawMessage `json:"value"`
}

// UpdateFilter sets one criteria field. Body: {"value": <json>}; null clears.
func (h *Handler) UpdateFilter(c *gin.Context) {
	if !h.sessionConfigured(c) {
		return
	}

	key, err := domain.ParseFilterKey(c.Param("key"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req updateFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snapshot, err := h.session.Update(key, req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, snapshot)
}

// ReplaceFilters swaps the whole criteria at once
func (h *Handler) ReplaceFilters(c *gin.Context) {
	if !h.sessionConfigured(c) {
		return
	}

	criteria, err := bindCriteria(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.session.Replace(criteria)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, snapshot)
}

// ResetFilters clears every criteria field
func (h *Handler) ResetFilters(c *gin.Context) {
	if !h.sessionConfigured(c) {
		return
	}

	c.JSON(http.StatusAccepted, h.session.Reset())
}

func (h *Handler) sessionConfigured(c *gin.Context) bool {
	if h.session == nil {
		respondError(c, http.StatusServiceUnavailable, "filter session not configured")
		return false
	}
	return true
}

// bindCriteria decodes and validates a Criteria body. An empty body is the
// empty criteria.
func bindCriteria(c *gin.Context) (domain.Criteria, error) {
	var criteria domain.Criteria
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return criteria, nil
	}
	if err := c.ShouldBindJSON(&criteria); err != nil && !errors.Is(err, io.EOF) {
		return domain.Criteria{}, fmt.Errorf("%w: %v", domain.ErrInvalidCriteria, err)
	}
	if err := criteria.Validate(); err != nil {
		return domain.Criteria{}, err
	}
	return criteria, nil
}

// respondWithError maps domain errors to HTTP status codes
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCriteria),
		errors.Is(err, domain.ErrUnknownFilterKey),
		errors.Is(err, domain.ErrInvalidSort):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// client went away; nobody reads this
		respondError(c, http.StatusRequestTimeout, "request cancelled")
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
