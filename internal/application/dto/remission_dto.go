package dto

import "github.com/shopspring/decimal"

// CreateRemissionRequest body para POST /api/remissions.
// Status es opcional (default "open"); "closed" se rechaza.
type CreateRemissionRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
	Folio   string `json:"folio" validate:"required,max=100"`
	Status  string `json:"status,omitempty"`
}

// UpdateRemissionStatusRequest body para PATCH /api/remissions/:id.
type UpdateRemissionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RemissionListRequest filtros de GET /api/remissions.
type RemissionListRequest struct {
	PageRequest
	OrderID string `query:"order_id"`
	Status  string `query:"status"`
}

// RemissionResponse remisión en respuestas.
type RemissionResponse struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	OrderFolio   string `json:"order_folio,omitempty"`
	CustomerID   string `json:"customer_id,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Folio        string `json:"folio"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// CloseRemissionResponse respuesta de POST /api/remissions/:id/close.
type CloseRemissionResponse struct {
	Status string `json:"status"`
}

// RemissionSummaryResponse totales vigentes de la remisión (GET /api/remissions/:id/summary).
type RemissionSummaryResponse struct {
	RemissionID  string `json:"remission_id"`
	Status       string `json:"status"`
	TotalSales   string `json:"total_sales"`
	TotalCredits string `json:"total_credits"`
	Balance      string `json:"balance"`
	SalesCount   int    `json:"sales_count"`
}

// CreateSaleRequest body para POST /api/remissions/:id/sales.
type CreateSaleRequest struct {
	Subtotal *decimal.Decimal `json:"subtotal" validate:"required,dgte0,money"`
	Tax      *decimal.Decimal `json:"tax" validate:"required,dgte0,money"`
}

// SaleResponse venta en respuestas. Total se calcula, no se almacena.
type SaleResponse struct {
	ID          string `json:"id"`
	RemissionID string `json:"remission_id"`
	Subtotal    string `json:"subtotal"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
	CreatedAt   string `json:"created_at"`
}

// CreateCreditRequest body para POST /api/remissions/:id/credits.
type CreateCreditRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required,dgt0,money"`
	Reason string           `json:"reason" validate:"required,max=100"`
}

// CreditResponse crédito en respuestas.
type CreditResponse struct {
	ID          string `json:"id"`
	RemissionID string `json:"remission_id"`
	Amount      string `json:"amount"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"created_at"`
}
