package handler

import (
	catalogapp "github.com/pharmalink/backend/internal/application/catalog"
	"github.com/pharmalink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MedicineHandler handles medicine catalog endpoints
type MedicineHandler struct {
	BaseHandler
	medicineService *catalogapp.MedicineService
}

// NewMedicineHandler creates a new MedicineHandler
func NewMedicineHandler(medicineService *catalogapp.MedicineService) *MedicineHandler {
	return &MedicineHandler{medicineService: medicineService}
}

// Create creates a new medicine
func (h *MedicineHandler) Create(c *gin.Context) {
	var req catalogapp.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	medicine, err := h.medicineService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, medicine)
}

// GetByID returns a medicine by ID
func (h *MedicineHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid medicine ID")
		return
	}

	medicine, err := h.medicineService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, medicine)
}

// List returns medicines with filtering and pagination
func (h *MedicineHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := catalogapp.MedicineListFilter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if raw := c.Query("manufacturer_id"); raw != "" {
		manufacturerID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid manufacturer ID")
			return
		}
		filter.ManufacturerID = &manufacturerID
	}

	result, err := h.medicineService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates a medicine's descriptive fields
func (h *MedicineHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid medicine ID")
		return
	}

	var req catalogapp.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	medicine, err := h.medicineService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, medicine)
}

// Deactivate marks a medicine as no longer orderable
func (h *MedicineHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid medicine ID")
		return
	}

	if err := h.medicineService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
