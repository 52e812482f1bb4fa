package handler

import (
	"strconv"

	partnerapp "github.com/pharmalink/backend/internal/application/partner"
	"github.com/pharmalink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DistributorHandler handles distributor endpoints
type DistributorHandler struct {
	BaseHandler
	distributorService *partnerapp.DistributorService
}

// NewDistributorHandler creates a new DistributorHandler
func NewDistributorHandler(distributorService *partnerapp.DistributorService) *DistributorHandler {
	return &DistributorHandler{distributorService: distributorService}
}

// Create creates a new distributor
func (h *DistributorHandler) Create(c *gin.Context) {
	var req partnerapp.CreateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	distributor, err := h.distributorService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, distributor)
}

// GetByID returns a distributor by ID
func (h *DistributorHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid distributor ID")
		return
	}

	distributor, err := h.distributorService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distributor)
}

// List returns distributors with filtering and pagination
func (h *DistributorHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := partnerapp.DistributorListFilter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if raw := c.Query("type"); raw != "" {
		filter.Type = &raw
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid active filter")
			return
		}
		filter.Active = &active
	}

	result, err := h.distributorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates a distributor's contact information
func (h *DistributorHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid distributor ID")
		return
	}

	var req partnerapp.UpdateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	distributor, err := h.distributorService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distributor)
}

// Deactivate marks a distributor as inactive
func (h *DistributorHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid distributor ID")
		return
	}

	if err := h.distributorService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
