package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not in the
// whitelist, so user-supplied sort keys can never reach SQL unchecked.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// MedicineSortFields contains allowed sort fields for medicines
var MedicineSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"strength":           true,
	"form":               true,
	"manufacturer_id":    true,
	"pack_size":          true,
	"country_of_origin":  true,
	"manufacturing_date": true,
	"active":             true,
}

// ManufacturerSortFields contains allowed sort fields for manufacturers
var ManufacturerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"country":    true,
}

// DistributorSortFields contains allowed sort fields for distributors
var DistributorSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"type":         true,
	"currency":     true,
	"credit_limit": true,
	"country":      true,
	"active":       true,
}

// ShipmentSortFields contains allowed sort fields for shipments
var ShipmentSortFields = map[string]bool{
	"id":                      true,
	"created_at":              true,
	"updated_at":              true,
	"proforma_invoice_number": true,
	"bill_of_lading":          true,
	"supplier_name":           true,
	"mode":                    true,
	"delivery_status":         true,
	"received_date":           true,
}

// ShipmentBatchSortFields contains allowed sort fields for shipment batches
var ShipmentBatchSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"batch_number":      true,
	"medicine_id":       true,
	"shipment_id":       true,
	"received_at":       true,
	"expiry_date":       true,
	"quantity":          true,
	"quantity_received": true,
	"unit_cost":         true,
	"unit_price":        true,
}

// SalesOrderSortFields contains allowed sort fields for sales orders
var SalesOrderSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"order_number":     true,
	"distributor_id":   true,
	"sales_rep_id":     true,
	"currency":         true,
	"order_amount":     true,
	"amount_paid":      true,
	"amount_remaining": true,
	"payment_status":   true,
	"order_date":       true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"sales_order_id": true,
	"distributor_id": true,
	"amount":         true,
	"currency":       true,
	"type":           true,
	"payment_date":   true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"phone":         true,
	"first_name":    true,
	"last_name":     true,
	"role":          true,
	"active":        true,
	"last_login_at": true,
}
