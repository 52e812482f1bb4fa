package handler

import (
	"time"

	reportapp "github.com/pharmalink/backend/internal/application/report"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/report"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler handles the derived report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// AccountStatement returns a distributor's statement for a date range
func (h *ReportHandler) AccountStatement(c *gin.Context) {
	distributorID, err := uuid.Parse(c.Param("distributor_id"))
	if err != nil {
		h.BadRequest(c, "Invalid distributor ID")
		return
	}

	filter := report.StatementFilter{DistributorID: distributorID}
	if filter.From, err = queryDate(c, "from"); err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	if raw := c.Query("currency"); raw != "" {
		currency := valueobject.Currency(raw)
		if !currency.IsValid() {
			h.BadRequest(c, "Unsupported currency: "+raw)
			return
		}
		filter.Currency = &currency
	}

	statement, err := h.reportService.AccountStatement(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}

// StockSummary returns the received/sold/balance rows per medicine
func (h *ReportHandler) StockSummary(c *gin.Context) {
	filter := report.StockSummaryFilter{}

	var err error
	if filter.From, err = queryDate(c, "from"); err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	if raw := c.Query("medicine_id"); raw != "" {
		medicineID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid medicine ID")
			return
		}
		filter.MedicineID = &medicineID
	}
	if raw := c.Query("manufacturer_id"); raw != "" {
		manufacturerID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid manufacturer ID")
			return
		}
		filter.ManufacturerID = &manufacturerID
	}
	if raw := c.Query("mode"); raw != "" {
		mode := inventory.ShipmentMode(raw)
		filter.ShipmentMode = &mode
	}

	rows, err := h.reportService.StockSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// PaymentRegister returns one page of the filtered payment register
func (h *ReportHandler) PaymentRegister(c *gin.Context) {
	filter := report.PaymentRegisterFilter{}

	var err error
	if filter.From, err = queryDate(c, "from"); err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	if raw := c.Query("type"); raw != "" {
		filter.PaymentType = &raw
	}
	if raw := c.Query("currency"); raw != "" {
		currency := valueobject.Currency(raw)
		filter.Currency = &currency
	}
	if raw := c.Query("distributor_id"); raw != "" {
		distributorID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid distributor ID")
			return
		}
		filter.DistributorID = &distributorID
	}
	if raw := c.Query("sales_order_id"); raw != "" {
		orderID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid order ID")
			return
		}
		filter.SalesOrderID = &orderID
	}
	if filter.Page, err = queryInt(c, "page"); err != nil {
		h.BadRequest(c, "Invalid page parameter")
		return
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		h.BadRequest(c, "Invalid limit parameter")
		return
	}

	register, err := h.reportService.PaymentRegister(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, register)
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
