package dto

// CreateOrderRequest body para POST /api/orders y PUT /api/orders/:id.
type CreateOrderRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	Folio      string `json:"folio" validate:"required,max=100"`
}

// OrderListRequest filtros de GET /api/orders.
type OrderListRequest struct {
	PageRequest
	CustomerID string `query:"customer_id"`
}

// OrderResponse orden en respuestas.
type OrderResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Folio      string `json:"folio"`
	CreatedAt  string `json:"created_at"`
}
