package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coordinate-converter/internal/models"
)

// AddressHandler handles queries against the persisted addresses
type AddressHandler struct {
	service AddressLookup
}

// Service interface for dependency injection
type AddressLookup interface {
	Lookup(ctx context.Context, latitude, longitude float64) (*models.Address, error)
	Search(ctx context.Context, query string) ([]models.Address, error)
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(svc AddressLookup) *AddressHandler {
	return &AddressHandler{service: svc}
}

// Lookup handles GET /addresses requests
func (h *AddressHandler) Lookup(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	address, err := h.service.Lookup(c.Request.Context(), lat, lon)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no address resolved for the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, address)
}

// Search handles GET /addresses/search requests
func (h *AddressHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	addresses, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, addresses)
}
