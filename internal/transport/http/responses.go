package rest

import "github.com/Gunvolt24/pos_orders/internal/domain"

const msgInternal = "Internal server error"

// messageResponse: общий ответ {success, message}; для ошибок success=false.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func failure(msg string) messageResponse { return messageResponse{Success: false, Message: msg} }

type createOrderResponse struct {
	Success   bool   `json:"success"`
	OrderID   string `json:"orderId"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

type listFilters struct {
	Status    string `json:"status,omitempty"`
	Search    string `json:"search,omitempty"`
	DateRange string `json:"dateRange,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

type listOrdersResponse struct {
	Success bool           `json:"success"`
	Orders  []domain.Order `json:"orders"`
	Count   int            `json:"count"`
	Stats   domain.Stats   `json:"stats"`
	Filters listFilters    `json:"filters"`
}

type orderResponse struct {
	Success bool          `json:"success"`
	Order   *domain.Order `json:"order"`
}

type statsResponse struct {
	Success bool         `json:"success"`
	Stats   domain.Stats `json:"stats"`
}

type backupResponse struct {
	Success bool   `json:"success"`
	File    string `json:"file"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type healthDatabase struct {
	Connected bool          `json:"connected"`
	Stats     *domain.Stats `json:"stats,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Uptime    float64        `json:"uptime,omitempty"`
	Database  healthDatabase `json:"database"`
}
