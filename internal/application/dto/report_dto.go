package dto

// DailySalesRequest parámetros de GET /api/reports/daily-sales (ambos obligatorios, YYYY-MM-DD).
type DailySalesRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// DailySalesDTO un día del reporte de ventas.
type DailySalesDTO struct {
	Date       string `json:"date"`        // YYYY-MM-DD
	TotalSales string `json:"total_sales"` // Σ(subtotal + tax)
	TotalTax   string `json:"total_tax"`
	SalesCount int    `json:"sales_count"`
}
